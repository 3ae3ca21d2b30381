package main

import (
	"journal/internal/config"
	"journal/internal/domain/sqlite"
	"journal/internal/domain/sqlite/repository"
	handler2 "journal/internal/http/handler"
	authmw "journal/internal/http/middleware"
	"journal/internal/http/routes"
	"journal/internal/infrastructure/brevo"
	"journal/internal/service"
	"journal/internal/validators"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	// Loads from .env when present; real deployments set env vars directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	validate := validator.New()
	registerValidators(validate)

	// Init SQLite
	db, err := sqlite.Init(cfg.DatabasePath)
	if err != nil {
		panic(err)
	}

	// Email provider
	mailer := brevo.NewClient(cfg.BrevoAPIKey, cfg.BrevoSenderEmail)

	// Getting repos
	userRepo := repository.NewUserRepository(db)
	entryRepo := repository.NewEntryRepository(db)
	tagRepo := repository.NewTagRepository(db)

	// Getting services
	authService := service.NewAuthService(userRepo, validate, mailer, []byte(cfg.JWTSecret))
	entryService := service.NewEntryService(entryRepo, validate)
	tagService := service.NewTagService(tagRepo, entryRepo, validate)

	// Getting handlers
	authRoutes := handler2.NewAuthDefault(authService)
	entryRoutes := handler2.NewEntryDefault(entryService)
	tagRoutes := handler2.NewTagDefault(tagService)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = routes.ErrorHandler
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
	}))
	e.Use(middleware.BodyLimit("1M"))

	gate := authmw.NewAuthMiddleware(&authmw.AuthMiddlewareConfig{
		JWTSecret: []byte(cfg.JWTSecret),
	})
	routes.Register(e, routes.Table(authRoutes, entryRoutes, tagRoutes), gate)

	if err := e.Start(":" + cfg.Port); err != nil {
		panic(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("nodupes", validators.NoDupes)
}
