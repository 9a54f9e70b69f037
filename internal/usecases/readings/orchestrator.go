package readings

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pjogani/vedics-api/internal/domain"
)

const systemPrompt = "You are a helpful Vedic astrology assistant."

// emptyChart подставляется, когда карта ещё не рассчитана: модель получает
// промпт без позиций и отвечает общим чтением
const emptyChart = "{}"

// GenerateReading генерирует чтение указанного типа и сохраняет его,
// помечая прежнее живое чтение этого типа удалённым. Ожидаемые сбои модели
// не превращаются в ошибку: сохраняется {"raw": ...} с текстом или извинением.
func (s *Service) GenerateReading(ctx context.Context, userID uuid.UUID, readingType domain.ReadingType) (*domain.Reading, error) {
	return s.generateReading(ctx, userID, readingType, true)
}

// GenerateReadingDirect генерирует чтение одиночным запросом без тредового
// режима. Тредовый опрос блокирует воркер до минуты, поэтому на пути
// HTTP-запроса допустим только этот вариант.
func (s *Service) GenerateReadingDirect(ctx context.Context, userID uuid.UUID, readingType domain.ReadingType) (*domain.Reading, error) {
	return s.generateReading(ctx, userID, readingType, false)
}

func (s *Service) generateReading(ctx context.Context, userID uuid.UUID, readingType domain.ReadingType, threaded bool) (*domain.Reading, error) {
	tpl, err := PromptFor(readingType)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	chart := emptyChart
	if len(profile.BirthChart) > 0 {
		chart = string(profile.BirthChart)
	} else {
		s.log.Warn("birth chart missing, generating generic reading",
			"user_id", userID,
			"reading_type", readingType)
	}

	content := fmt.Sprintf("This is the user's birth chart:\n%s\n\nProvide a detailed reading:\n\n%s\n\n%s",
		chart, tpl, languageInstruction(profile.PreferredLanguage))

	var reply domain.ModelReply
	if threaded {
		reply = s.generate(ctx, content)
	} else {
		reply = s.complete(ctx, content)
	}

	if err := s.readingRepo.SoftDeleteLive(ctx, userID, readingType); err != nil {
		return nil, fmt.Errorf("failed to supersede reading: %w", err)
	}

	reading := &domain.Reading{
		UserID:      userID,
		ReadingType: readingType,
		Content:     reply.Content(),
	}
	if err := s.readingRepo.Create(ctx, reading); err != nil {
		return nil, fmt.Errorf("failed to store reading: %w", err)
	}

	s.log.Info("reading generated",
		"user_id", userID,
		"reading_type", readingType,
		"structured", reply.Kind == domain.ReplyStructured)

	return reading, nil
}

// generate сначала пробует тредовый режим ассистента, при неструктурном
// результате откатывается на одиночный запрос с общим системным промптом
func (s *Service) generate(ctx context.Context, content string) domain.ModelReply {
	if reply, ok := s.generateThreaded(ctx, content); ok {
		return reply
	}

	return s.complete(ctx, content)
}

// complete выполняет одиночный запрос с общим системным промптом
func (s *Service) complete(ctx context.Context, content string) domain.ModelReply {
	return s.gateway.Complete(ctx, []domain.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: content},
	})
}

// generateThreaded пытается получить структурированный ответ через тред;
// ok == false означает, что нужен одиночный запрос
func (s *Service) generateThreaded(ctx context.Context, content string) (domain.ModelReply, bool) {
	threadID, err := s.gateway.OpenThread(ctx)
	if err != nil {
		s.log.Warn("thread mode unavailable, falling back to completion", "error", err)
		return domain.ModelReply{}, false
	}

	if err := s.gateway.Post(ctx, threadID, content); err != nil {
		s.log.Warn("failed to post to thread, falling back to completion",
			"thread_id", threadID,
			"error", err)
		return domain.ModelReply{}, false
	}

	reply := s.gateway.AwaitReply(ctx, threadID)
	if reply.Kind != domain.ReplyStructured {
		s.log.Warn("thread reply not structured, falling back to completion",
			"thread_id", threadID,
			"kind", reply.Kind)
		return domain.ModelReply{}, false
	}

	return reply, true
}

// GetReading возвращает живое чтение пользователя по типу
func (s *Service) GetReading(ctx context.Context, userID uuid.UUID, readingType domain.ReadingType) (*domain.Reading, error) {
	return s.readingRepo.GetLiveByUserAndType(ctx, userID, readingType)
}

// ListLongTerm возвращает живые долгосрочные чтения пользователя
func (s *Service) ListLongTerm(ctx context.Context, userID uuid.UUID) ([]domain.Reading, error) {
	return s.readingRepo.ListLiveLongTerm(ctx, userID)
}

// MissingLongTermTypes возвращает долгосрочные типы без живого чтения
func (s *Service) MissingLongTermTypes(ctx context.Context, userID uuid.UUID) ([]domain.ReadingType, error) {
	existing, err := s.readingRepo.ListLiveTypes(ctx, userID)
	if err != nil {
		return nil, err
	}

	present := make(map[domain.ReadingType]bool, len(existing))
	for _, t := range existing {
		present[t] = true
	}

	var missing []domain.ReadingType
	for _, t := range domain.LongTermReadingTypes() {
		if !present[t] {
			missing = append(missing, t)
		}
	}
	return missing, nil
}
