// Entry point: loads configuration, prepares the database schema, wires the
// repositories and handlers together, and starts the HTTP server.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/davidbc/pesv-backend/internal/config"
	"github.com/davidbc/pesv-backend/internal/database"
	"github.com/davidbc/pesv-backend/internal/handler"
	"github.com/davidbc/pesv-backend/internal/migration"
	"github.com/davidbc/pesv-backend/internal/notification"
	"github.com/davidbc/pesv-backend/internal/queue"
	"github.com/davidbc/pesv-backend/internal/repository"
	"github.com/davidbc/pesv-backend/internal/router"
	"github.com/davidbc/pesv-backend/internal/service"
	"github.com/davidbc/pesv-backend/internal/verification"
)

func main() {
	// .env is optional; real deployments set environment variables directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("base de datos: %v", err)
	}
	defer db.Close()

	// The schema layer is idempotent; every boot verifies tables, columns,
	// indexes and seed rows before the server accepts traffic.
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	if err := migration.Run(ctx, db); err != nil {
		cancel()
		log.Fatalf("migracion: %v", err)
	}
	cancel()

	// Redis is optional.  Without it verification codes live in process
	// memory and rate limiting is disabled.
	rdb := config.NewRedisClient()
	var codes verification.Store
	if rdb != nil {
		codes = verification.NewRedisStore(rdb)
		log.Println("redis: códigos de verificación en Redis")
	} else {
		codes = verification.NewMemoryStore()
		log.Println("redis: no disponible, códigos de verificación en memoria")
	}

	mailer := notification.NewSMTPMailer(cfg)
	if !cfg.MailConfigured() {
		log.Println("correo: EMAIL_USER/EMAIL_PASSWORD sin configurar, las notificaciones fallarán con warning")
	}

	// Review-event consumer: builds the audit log from broker messages.
	// Runs its own reconnect loop for the life of the process.
	go func() {
		if err := queue.StartReviewConsumer(); err != nil {
			log.Printf("review-consumer: %v", err)
		}
	}()

	users := repository.NewUserRepo(db)
	sessions := repository.NewSessionRepo(db)
	companies := repository.NewCompanyRepo(db)
	drivers := repository.NewDriverRepo(db)
	vehicles := repository.NewVehicleRepo(db)
	inspections := repository.NewInspectionRepo(db)

	h := router.Handlers{
		Auth:             handler.NewAuthHandler(cfg, users, sessions),
		Register:         handler.NewRegisterHandler(cfg, companies, drivers),
		Password:         handler.NewPasswordHandler(cfg, users, codes, mailer),
		Inspections:      handler.NewInspectionHandler(inspections, companies, mailer),
		AdminInspections: handler.NewAdminInspectionHandler(inspections, mailer, service.PublishInspectionReviewed),
		Drivers:          handler.NewDriverHandler(drivers),
		Vehicles:         handler.NewVehicleHandler(vehicles),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	router.Register(e, h, router.Deps{
		JWTSecret: cfg.JWTSecret,
		Sessions:  sessions,
		Perms:     users,
		Redis:     rdb,
	})

	addr := ":" + cfg.Port
	log.Printf("servidor PESV escuchando en %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
