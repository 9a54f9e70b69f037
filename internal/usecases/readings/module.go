package readings

import (
	"log/slog"

	"github.com/pjogani/vedics-api/internal/ports/repository"
	"github.com/pjogani/vedics-api/internal/ports/service"
)

// Service отвечает за генерацию и выдачу астрологических чтений:
// по запросу, пачкой для недостающих типов и ежедневно по расписанию
type Service struct {
	profileRepo repository.IProfileRepo
	readingRepo repository.IReadingRepo
	gateway     service.IModelGateway
	log         *slog.Logger
}

// New создаёт новый usecase чтений
func New(
	profileRepo repository.IProfileRepo,
	readingRepo repository.IReadingRepo,
	gateway service.IModelGateway,
	log *slog.Logger,
) *Service {
	return &Service{
		profileRepo: profileRepo,
		readingRepo: readingRepo,
		gateway:     gateway,
		log:         log,
	}
}
