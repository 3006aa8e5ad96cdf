package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Ilyass-shw/apartment-bot/internal/adapters/degewofetcher"
	"github.com/Ilyass-shw/apartment-bot/internal/adapters/gewobagfetcher"
	logger_adapter "github.com/Ilyass-shw/apartment-bot/internal/adapters/logger"
	postgres_adapter "github.com/Ilyass-shw/apartment-bot/internal/adapters/postgres"
	"github.com/Ilyass-shw/apartment-bot/internal/adapters/rest"
	"github.com/Ilyass-shw/apartment-bot/internal/adapters/telegram"
	"github.com/Ilyass-shw/apartment-bot/internal/adapters/wohnraumkartefetcher"
	"github.com/Ilyass-shw/apartment-bot/internal/configs"
	"github.com/Ilyass-shw/apartment-bot/internal/constants"
	"github.com/Ilyass-shw/apartment-bot/internal/contextkeys"
	"github.com/Ilyass-shw/apartment-bot/internal/core/port"
	usecases_port "github.com/Ilyass-shw/apartment-bot/internal/core/port/usecases"
	"github.com/Ilyass-shw/apartment-bot/internal/core/usecase"
	fluentlogger "github.com/Ilyass-shw/apartment-bot/pkg/fluent_logger"
	"github.com/Ilyass-shw/apartment-bot/pkg/postgres"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
)

// App – структура приложения
type App struct {
	config       *configs.AppConfig
	dbPool       *pgxpool.Pool
	fluentClient *fluent.Fluent
	logger       port.LoggerPort
	baseLogger   port.LoggerPort

	scheduler  *cron.Cron
	restServer *rest.Server

	// Pipelines по источникам; каждый запускается своим cron-расписанием
	wohnraumkarteUC usecases_port.ProcessSourcePort
	gewobagUC       usecases_port.ProcessSourcePort
	degewoUC        usecases_port.ProcessSourcePort
}

// NewApp создает новый экземпляр приложения.
// Это "Composition Root", где все зависимости создаются и связываются.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false, // текстовый формат
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	// Добавляем Fluent Bit логгер, если он включен в конфигурации
	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName, // Используем имя приложения как префикс
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	// Создаем наш композитный логгер
	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. СОЗДАЕМ БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ С КОНТЕКСТОМ ---
	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- 3. НИЗКОУРОВНЕВЫЕ ЗАВИСИМОСТИ ---
	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Database.URL})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

	seenRepo, err := postgres_adapter.NewPostgresSeenListingsRepository(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create seen-listings repository: %w", err)
	}
	if err := seenRepo.Init(context.Background()); err != nil {
		appLogger.Error("Failed to initialize seen-listings schema", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to initialize seen-listings schema: %w", err)
	}
	appLogger.Info("Seen-listings repository initialized.", nil)

	// --- 4. ИСХОДЯЩИЕ АДАПТЕРЫ ---
	notifier := telegram.NewNotifier(appConfig.Telegram.BotToken, appConfig.Telegram.ChatID)

	wohnraumkarteAdapter, err := wohnraumkartefetcher.NewWohnraumkarteFetcherAdapter(constants.WohnraumkarteAPIURL)
	if err != nil {
		appLogger.Error("Failed to create Wohnraumkarte Fetcher Adapter", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to initialize wohnraumkarte fetcher: %w", err)
	}

	applicationSender := wohnraumkartefetcher.NewApplicationSender(constants.WohnraumkarteApplicationURL, wohnraumkartefetcher.ApplicantProfile{
		Name:            appConfig.Applicant.Name,
		FirstName:       appConfig.Applicant.FirstName,
		Phone:           appConfig.Applicant.Phone,
		Email:           appConfig.Applicant.Email,
		ApplicationText: appConfig.Applicant.ApplicationText,
	})

	gewobagAdapter, err := gewobagfetcher.NewGewobagFetcherAdapter(constants.GewobagSearchURL, constants.GewobagBaseURL)
	if err != nil {
		appLogger.Error("Failed to create Gewobag Fetcher Adapter", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to initialize gewobag fetcher: %w", err)
	}

	degewoSession := degewofetcher.NewSessionManager(constants.DegewoSearchURL)
	degewoAdapter, err := degewofetcher.NewDegewoFetcherAdapter(constants.DegewoSearchURL, constants.DegewoBaseURL, degewoSession)
	if err != nil {
		appLogger.Error("Failed to create Degewo Fetcher Adapter", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to initialize degewo fetcher: %w", err)
	}
	appLogger.Info("All outgoing adapters initialized.", nil)

	// --- 5. USE CASES ---
	// Подача заявки есть только у API-источника; порталы только уведомляют.
	wohnraumkarteUC := usecase.NewProcessSourceUseCase(wohnraumkarteAdapter, seenRepo, notifier, applicationSender, appConfig.MarkSeenOnApplyFailure)
	gewobagUC := usecase.NewProcessSourceUseCase(gewobagAdapter, seenRepo, notifier, nil, appConfig.MarkSeenOnApplyFailure)
	degewoUC := usecase.NewProcessSourceUseCase(degewoAdapter, seenRepo, notifier, nil, appConfig.MarkSeenOnApplyFailure)
	appLogger.Info("All use cases initialized.", nil)

	// --- 6. ВХОДЯЩИЕ АДАПТЕРЫ ---
	statsHandler := rest.NewSeenListingsHandler(seenRepo, appConfig.AppName)
	restServer := rest.NewServer(appConfig.HTTP.Port, statsHandler, baseLogger)

	location, err := time.LoadLocation(appConfig.Schedules.Timezone)
	if err != nil {
		appLogger.Error("Failed to load schedule timezone", err, port.Fields{"timezone": appConfig.Schedules.Timezone})
		dbPool.Close()
		return nil, fmt.Errorf("failed to load schedule timezone %q: %w", appConfig.Schedules.Timezone, err)
	}
	cronLogger := &cronLoggerBridge{logger: baseLogger.WithFields(port.Fields{"component": "scheduler"})}
	scheduler := cron.New(
		cron.WithLocation(location),
		cron.WithChain(cron.Recover(cronLogger)),
	)

	// 7. Собираем приложение
	application := &App{
		config:          appConfig,
		dbPool:          dbPool,
		fluentClient:    fluentClient,
		logger:          appLogger,
		baseLogger:      baseLogger,
		scheduler:       scheduler,
		restServer:      restServer,
		wohnraumkarteUC: wohnraumkarteUC,
		gewobagUC:       gewobagUC,
		degewoUC:        degewoUC,
	}

	return application, nil
}

// registerSchedules привязывает pipeline каждого источника к его cron-выражению.
// Невалидное выражение - ошибка конфигурации, приложение не стартует.
func (a *App) registerSchedules(appCtx context.Context) error {
	jobs := []struct {
		name     string
		schedule string
		uc       usecases_port.ProcessSourcePort
	}{
		{"wohnraumkarte", a.config.Schedules.Wohnraumkarte, a.wohnraumkarteUC},
		{"gewobag", a.config.Schedules.Gewobag, a.gewobagUC},
		{"degewo", a.config.Schedules.Degewo, a.degewoUC},
	}

	for _, job := range jobs {
		job := job
		_, err := a.scheduler.AddFunc(job.schedule, func() {
			// Каждый прогон получает свой trace_id и логгер в контексте
			traceID := uuid.New().String()
			runLogger := a.baseLogger.WithFields(port.Fields{"trace_id": traceID})

			ctx := contextkeys.ContextWithLogger(appCtx, runLogger)
			ctx = contextkeys.ContextWithTraceID(ctx, traceID)

			if err := job.uc.Execute(ctx); err != nil {
				runLogger.Error("Scheduled run finished with error", err, port.Fields{"source": job.name})
			}
		})
		if err != nil {
			return fmt.Errorf("invalid cron schedule for %s (%q): %w", job.name, job.schedule, err)
		}
		a.logger.Info("Source scheduled", port.Fields{"source": job.name, "schedule": job.schedule})
	}

	return nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	// Создаем единый контекст для всего приложения для управления graceful shutdown
	appCtx, cancelApp := context.WithCancel(context.Background())

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		// Останавливаем планировщик и дожидаемся текущих прогонов
		stopCtx := a.scheduler.Stop()
		<-stopCtx.Done()
		a.logger.Info("Scheduler stopped, all running jobs finished.", nil)

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelShutdown()
		if err := a.restServer.Stop(shutdownCtx); err != nil {
			a.logger.Error("Error stopping REST server", err, nil)
		}

		if a.dbPool != nil {
			a.dbPool.Close()
			a.logger.Info("PostgreSQL pool closed.", nil)
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			a.logger.Info("Closing Fluent Bit connection...", nil)
			if err := a.fluentClient.Close(); err != nil {
				log.Printf("App: Error closing fluent client: %v\n", err)
			}
		}

	}()

	a.logger.Info("Application is starting...", nil)

	if err := a.registerSchedules(appCtx); err != nil {
		cancelApp()
		return err
	}
	a.scheduler.Start()

	serverErrors := make(chan error, 1)
	go func() {
		if err := a.restServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("rest server error: %w", err)
		}
	}()

	// Ожидание сигнала на завершение или ошибки от одного из компонентов
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received signal, shutting down", port.Fields{"signal": receivedSignal.String()})
	case err := <-serverErrors:
		a.logger.Error("A critical component failed, shutting down", err, nil)
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down", nil)
	}

	// Инициируем graceful shutdown, отменяя главный контекст
	cancelApp()

	return nil
}

// cronLoggerBridge адаптирует LoggerPort к cron.Logger (нужен для Recover-обертки)
type cronLoggerBridge struct {
	logger port.LoggerPort
}

func (b *cronLoggerBridge) Info(msg string, keysAndValues ...interface{}) {
	b.logger.Info(msg, kvToFields(keysAndValues))
}

func (b *cronLoggerBridge) Error(err error, msg string, keysAndValues ...interface{}) {
	b.logger.Error(msg, err, kvToFields(keysAndValues))
}

func kvToFields(keysAndValues []interface{}) port.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}
	fields := make(port.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", keysAndValues[i])
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		// Возвращаем безопасное значение по умолчанию и логируем предупреждение
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
