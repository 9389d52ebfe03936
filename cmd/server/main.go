package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"weatherdash/config"
	"weatherdash/internal/api/v1/handlers"
	"weatherdash/internal/auth"
	"weatherdash/internal/db/weatherrecord"
	"weatherdash/internal/providers"
	"weatherdash/internal/scheduler"
	"weatherdash/internal/service"
	"weatherdash/web"
)

func main() {
	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logLevel, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).
		Level(logLevel).
		With().
		Str("service_name", conf.ServiceName).
		Timestamp().
		Logger()
	log.Logger = logger

	db, dbErr := initializeDatabase(conf)
	if dbErr != nil {
		logger.Fatal().Err(dbErr).Msg("failed to initialize database")
	}

	weatherRepo := weatherrecord.NewRepository(db)
	weatherProvider := providers.NewOpenWeatherService(conf.OpenWeatherAPIKey)
	weatherService := service.NewWeatherService(weatherProvider, weatherRepo, conf.DefaultCity)

	sessionStore := session.New(session.Config{
		Expiration:     24 * time.Hour,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	userDirectory := auth.NewUserDirectory(conf.UserDirectorySize)
	gateway := auth.NewGateway(sessionStore, userDirectory, auth.ProvidersFromConfig(conf))

	app := fiber.New(fiber.Config{
		AppName:               conf.ServiceName,
		DisableStartupMessage: true,
		ReadTimeout:           conf.HTTPTimeoutDuration(),
		WriteTimeout:          conf.HTTPTimeoutDuration(),
		ErrorHandler:          errorHandler,
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": conf.ServiceName,
		})
	})

	gateway.Register(app)
	web.Register(app, gateway.RequireAuth)

	handler := handlers.NewWeatherHandler(weatherService, conf.HTTPTimeoutDuration())
	handler.Register(app, gateway.RequireAuth)

	refresher := scheduler.New(weatherService, conf.RefreshInterval)
	if err := refresher.Start(); err != nil {
		logger.Fatal().Err(err).Msg("failed to start refresh scheduler")
	}
	defer refresher.Stop()

	go func() {
		logger.Info().Msgf("started server on %s", conf.ServerAddress)
		if err := app.Listen(conf.ServerAddress); err != nil {
			logger.Err(err).Msg("server stopped")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
}

// errorHandler converts stray fiber errors into the API's error envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(handlers.ErrorResponse{
		Errors: []handlers.Error{
			{
				Code:   "REQUEST_FAILED",
				Detail: err.Error(),
				Status: code,
				Title:  http.StatusText(code),
			},
		},
	})
}

func initializeDatabase(conf *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		conf.DBHost, conf.DBPort, conf.DBUser, conf.DBPassword, conf.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&weatherrecord.WeatherRecord{}); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(3 * time.Minute)

	return db, nil
}
