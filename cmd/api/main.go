package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"

	config "github.com/wafulabr/mentor_connect/configs"
	"github.com/wafulabr/mentor_connect/database"
	"github.com/wafulabr/mentor_connect/handlers"
	"github.com/wafulabr/mentor_connect/jobs"
	"github.com/wafulabr/mentor_connect/notifications"
	"github.com/wafulabr/mentor_connect/repository"
	"github.com/wafulabr/mentor_connect/routes"
	"github.com/wafulabr/mentor_connect/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("🔥 Invalid configuration: %v", err)
	}

	db, err := database.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("🔥 %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("🔥 %v", err)
	}

	users := repository.NewGormUserRepository(db)
	resets := repository.NewGormPasswordResetRepository(db)
	slots := repository.NewGormAvailabilityRepository(db)
	appointments := repository.NewGormAppointmentRepository(db)
	conversations := repository.NewGormConversationRepository(db)

	var mailer services.Mailer = notifications.NoopMailer{}
	if cfg.BrevoAPIKey != "" && cfg.EmailSender != "" {
		mailer = notifications.NewBrevoService(cfg.BrevoAPIKey, cfg.EmailSender, cfg.EmailSenderName)
		log.Println("✅ Email service initialized successfully.")
	} else {
		log.Println("⚠️ Email service not configured, reset emails will be skipped.")
	}

	credentials, err := services.NewCredentialService(users, resets, mailer, services.CredentialConfig{
		JWTSecret:     cfg.JWTSecret,
		SessionTTL:    cfg.SessionTTL,
		ResetTokenTTL: cfg.ResetTokenTTL,
		ResetGrantTTL: cfg.ResetGrantTTL,
		BcryptCost:    cfg.BcryptCost,
		ResetLinkBase: cfg.FrontendBaseURL,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to build credential service: %v", err)
	}
	availability := services.NewAvailabilityService(slots)
	bookings := services.NewBookingService(appointments, users)
	chats := services.NewConversationService(conversations, users, appointments)

	c := cron.New()
	cleanup := jobs.NewTokenCleanup(resets)
	c.AddFunc("@hourly", cleanup.Run)
	go c.Start()

	app := fiber.New(fiber.Config{
		AppName:       "Mentor Connect",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.PublicRoutes(app, handlers.NewMentorHandler(credentials, availability))
	routes.AuthRoutes(app, handlers.NewAuthHandler(credentials))
	routes.ProfileRoutes(app, handlers.NewProfileHandler(credentials), cfg.JWTSecret)
	routes.AvailabilityRoutes(app, handlers.NewAvailabilityHandler(availability), cfg.JWTSecret)
	routes.AppointmentRoutes(app, handlers.NewAppointmentHandler(bookings), cfg.JWTSecret)
	routes.MessagingRoutes(app, handlers.NewChatHandler(chats), cfg.JWTSecret)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	log.Printf("✅ Server is running on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
