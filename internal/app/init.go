package app

import (
	"fmt"
	"net/http"

	server "github.com/pjogani/vedics-api/internal/adapters/primary/http"
	adminController "github.com/pjogani/vedics-api/internal/adapters/primary/http/controllers/admin"
	chatController "github.com/pjogani/vedics-api/internal/adapters/primary/http/controllers/chat"
	healthcheckController "github.com/pjogani/vedics-api/internal/adapters/primary/http/controllers/healthcheck"
	profileController "github.com/pjogani/vedics-api/internal/adapters/primary/http/controllers/profile"
	readingsController "github.com/pjogani/vedics-api/internal/adapters/primary/http/controllers/readings"
	kafkaConsumerAdapter "github.com/pjogani/vedics-api/internal/adapters/primary/kafka"
	kafkaHandlers "github.com/pjogani/vedics-api/internal/adapters/primary/kafka/handlers"
	alerterAdapter "github.com/pjogani/vedics-api/internal/adapters/secondary/alerter"
	geocoderAdapter "github.com/pjogani/vedics-api/internal/adapters/secondary/geocoder"
	kafkaAdapter "github.com/pjogani/vedics-api/internal/adapters/secondary/kafka"
	openaiAdapter "github.com/pjogani/vedics-api/internal/adapters/secondary/openai"
	"github.com/pjogani/vedics-api/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/pjogani/vedics-api/internal/adapters/secondary/storage/redis"
	"github.com/pjogani/vedics-api/internal/ports/cache"
	kafkaPorts "github.com/pjogani/vedics-api/internal/ports/kafka"
	"github.com/pjogani/vedics-api/internal/ports/repository"
	"github.com/pjogani/vedics-api/internal/ports/service"
	conversationRepo "github.com/pjogani/vedics-api/internal/repository/conversation"
	profileRepo "github.com/pjogani/vedics-api/internal/repository/profile"
	readingRepo "github.com/pjogani/vedics-api/internal/repository/reading"
	requestLogRepo "github.com/pjogani/vedics-api/internal/repository/request_log"
	alerterService "github.com/pjogani/vedics-api/internal/services/alerter"
	geocoderService "github.com/pjogani/vedics-api/internal/services/geocoder"
	jobScheduler "github.com/pjogani/vedics-api/internal/services/jobs"
	modelGateway "github.com/pjogani/vedics-api/internal/services/modelgateway"
	assistantUsecase "github.com/pjogani/vedics-api/internal/usecases/assistant"
	profilesUsecase "github.com/pjogani/vedics-api/internal/usecases/profiles"
	readingsUsecase "github.com/pjogani/vedics-api/internal/usecases/readings"

	"github.com/jmoiron/sqlx"
)

type Dependencies struct {
	DB            *sqlx.DB
	HTTPServer    *http.Server
	Dispatcher    kafkaPorts.IDispatcher
	KafkaConsumer *kafkaConsumerAdapter.Consumer
	Cache         cache.Cache
	JobScheduler  *jobScheduler.Scheduler
}

// initDependencies инициализирует все зависимости приложения
func (a *App) initDependencies() (*Dependencies, error) {
	db, err := a.initPostgres()
	if err != nil {
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	repos := a.initRepositories(db)
	external, err := a.initExternalServices(repos)
	if err != nil {
		return nil, fmt.Errorf("failed to init external services: %w", err)
	}

	readingsService := readingsUsecase.New(repos.Profile, repos.Reading, external.Gateway, a.Log)

	dispatcher, consumer, err := a.initKafka(readingsService)
	if err != nil {
		return nil, fmt.Errorf("failed to init kafka: %w", err)
	}

	profilesService := profilesUsecase.New(
		repos.Profile,
		repos.Reading,
		external.Geocoder,
		dispatcher, // может быть nil
		external.Cache,
		a.Log,
	)
	assistantService := assistantUsecase.New(
		repos.Conversation,
		repos.Profile,
		external.Gateway,
		a.Cfg.OpenAI.AssistantID,
		a.Log,
	)

	httpServer := a.initHTTP(db, profilesService, readingsService, assistantService, external.Geocoder, dispatcher)
	scheduler := a.initJobScheduler(external.Alerter, readingsService)

	return &Dependencies{
		DB:            db,
		HTTPServer:    httpServer,
		Dispatcher:    dispatcher,
		KafkaConsumer: consumer,
		Cache:         external.Cache,
		JobScheduler:  scheduler,
	}, nil
}

// repositories содержит инициализированные репозитории
type repositories struct {
	Profile      repository.IProfileRepo
	Reading      repository.IReadingRepo
	Conversation repository.IConversationRepo
	RequestLog   repository.IRequestLogRepo
}

// initRepositories инициализирует репозитории для работы с БД
func (a *App) initRepositories(db *sqlx.DB) *repositories {
	persistenceLayer := pg.NewDB(db)
	return &repositories{
		Profile:      profileRepo.New(persistenceLayer, a.Log),
		Reading:      readingRepo.New(persistenceLayer, a.Log),
		Conversation: conversationRepo.New(persistenceLayer, a.Log),
		RequestLog:   requestLogRepo.New(persistenceLayer, a.Log),
	}
}

// externalServices содержит внешние сервисы
type externalServices struct {
	Gateway  service.IModelGateway
	Geocoder service.IGeocoderService
	Alerter  service.IAlerterService
	Cache    cache.Cache
}

// initExternalServices инициализирует шлюз модели, геокодер, алертер и кеш
func (a *App) initExternalServices(repos *repositories) (*externalServices, error) {
	services := &externalServices{}

	// Шлюз модели - обязательный, конфиг проверен на старте
	openaiClient, err := openaiAdapter.NewClient(a.Cfg.OpenAI, a.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to init openai client: %w", err)
	}
	services.Gateway = modelGateway.New(openaiClient, a.Log)

	geocoderClient := geocoderAdapter.NewClient(a.Cfg.Geocoder, a.Log)
	services.Geocoder = geocoderService.New(geocoderClient, repos.RequestLog, a.Log)

	// Alerter - опциональный
	if a.Cfg.Alerter != nil && a.Cfg.Alerter.Enabled() {
		alerterClient := alerterAdapter.NewClient(a.Cfg.Alerter, a.Log)
		services.Alerter = alerterService.New(alerterClient)
	}

	// Redis Cache - опциональный
	if a.Cfg.Redis != nil {
		redisClient, err := a.Cfg.Redis.NewConnection()
		if err != nil {
			a.Log.Warn("failed to init redis cache, continuing without cache", "error", err)
		} else {
			services.Cache = redisAdapter.NewClient(redisClient)
			a.Log.Info("redis cache connected successfully")
		}
	}

	return services, nil
}

// initKafka инициализирует producer заданий и consumer воркера.
// Без настроенной Kafka приложение работает, но фоновая генерация
// выполняется только напрямую по HTTP-запросам.
func (a *App) initKafka(readingsService *readingsUsecase.Service) (
	kafkaPorts.IDispatcher,
	*kafkaConsumerAdapter.Consumer,
	error,
) {
	if a.Cfg.Kafka == nil || !a.Cfg.Kafka.Enabled() {
		a.Log.Warn("kafka is not configured, background generation jobs disabled")
		return nil, nil, nil
	}

	dispatcher, err := kafkaAdapter.NewDispatcher(a.Cfg.Kafka, a.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kafka dispatcher: %w", err)
	}

	handler := kafkaHandlers.NewReadingJobsHandler(readingsService, a.Log)
	consumer, err := kafkaConsumerAdapter.NewConsumer(a.Cfg.Kafka, handler, a.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kafka consumer: %w", err)
	}

	return dispatcher, consumer, nil
}

// initHTTP инициализирует HTTP сервер и контроллеры
func (a *App) initHTTP(
	db *sqlx.DB,
	profilesService *profilesUsecase.Service,
	readingsService *readingsUsecase.Service,
	assistantService *assistantUsecase.Service,
	geocoder service.IGeocoderService,
	dispatcher kafkaPorts.IDispatcher,
) *http.Server {
	controllers := []server.Controller{
		healthcheckController.New(db, a.Log),
		profileController.New(profilesService, a.Log),
		readingsController.New(readingsService, profilesService, dispatcher, a.Log),
		chatController.New(assistantService, a.Log),
		adminController.New(geocoder, a.Log),
	}

	return server.NewHTTPServer(a.Cfg.Server, a.Log, controllers...)
}

// initJobScheduler инициализирует планировщик джоб
func (a *App) initJobScheduler(
	alerterSvc service.IAlerterService,
	readingsService *readingsUsecase.Service,
) *jobScheduler.Scheduler {
	scheduler := jobScheduler.NewScheduler(a.Log, alerterSvc)

	dailyReadings := jobScheduler.NewDailyReadings(readingsService, a.Log)
	scheduler.Register(dailyReadings)
	a.Log.Info("daily readings job registered")

	return scheduler
}

// initPostgres инициализирует подключение к PostgreSQL и запускает миграции
func (a *App) initPostgres() (*sqlx.DB, error) {
	db, err := a.Cfg.Postgres.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	a.Log.Info("postgres connected successfully")

	if err := pg.RunMigrations(db, a.Log); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}
