package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	gatewayClient "github.com/NKTechDev/wma-backend/internal/account/adapters/gateway"
	accountHttp "github.com/NKTechDev/wma-backend/internal/account/adapters/http/fiber"
	"github.com/NKTechDev/wma-backend/internal/account/core/state"
	accountUsecase "github.com/NKTechDev/wma-backend/internal/account/core/usecase"
	ledgerHttp "github.com/NKTechDev/wma-backend/internal/ledger/adapters/http/fiber"
	ledgerPg "github.com/NKTechDev/wma-backend/internal/ledger/adapters/postgres"
	ledgerSqlite "github.com/NKTechDev/wma-backend/internal/ledger/adapters/sqlite"
	ledgerPorts "github.com/NKTechDev/wma-backend/internal/ledger/core/ports"
	ledgerUsecase "github.com/NKTechDev/wma-backend/internal/ledger/core/usecase"
	"github.com/NKTechDev/wma-backend/internal/logging"
	"github.com/NKTechDev/wma-backend/internal/phone"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/lib/pq"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	_ "modernc.org/sqlite"

	_ "github.com/NKTechDev/wma-backend/docs"
)

// @title WMA Backend API
// @version 1.0
// @description Per-sender voice-message duration ledger for a messaging account.
// @BasePath /
func main() {
	logger := logging.Init()
	defer func() { _ = logger.Sync() }()

	// Config
	driver := envOr("DB_DRIVER", "postgres")
	port := envOr("PORT", "8080")

	var db *sql.DB
	var ledgerStore ledgerPorts.LedgerStorePort
	var seenEvents ledgerPorts.SeenEventsPort

	switch driver {
	case "postgres":
		dsn := os.Getenv("POSTGRES_DSN")
		if dsn == "" {
			logger.Fatal("POSTGRES_DSN is not set")
		}

		var err error
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Fatalf("failed to open postgres: %v", err)
		}

		db.SetMaxOpenConns(20)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)

		if err := db.Ping(); err != nil {
			logger.Fatalf("failed to ping postgres: %v", err)
		}
		if err := ledgerPg.EnsureSchema(context.Background(), db); err != nil {
			logger.Fatalf("failed to migrate ledger schema: %v", err)
		}

		sqldb := ledgerPg.NewSQLDB(db)
		ledgerStore = ledgerPg.NewLedgerRepository(sqldb)
		seenEvents = ledgerPg.NewSeenEventsRepository(sqldb)

	case "sqlite":
		path := envOr("SQLITE_PATH", "data/wma.db")
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			logger.Fatalf("failed to create data dir: %v", err)
		}

		var err error
		db, err = sql.Open("sqlite", path)
		if err != nil {
			logger.Fatalf("failed to open sqlite: %v", err)
		}

		store, err := ledgerSqlite.NewStore(db)
		if err != nil {
			logger.Fatalf("failed to init sqlite ledger: %v", err)
		}
		ledgerStore = store
		seenEvents = store

	default:
		logger.Fatalf("unknown DB_DRIVER: %s", driver)
	}
	defer db.Close()

	// Usecases
	sessionState := state.NewSessionState()
	gateway := gatewayClient.NewClient(envOr("GATEWAY_BASE_URL", "http://127.0.0.1:3001"))

	normalizer := phone.NewNormalizer(os.Getenv("PHONE_DEFAULT_REGION"))
	recordUC := ledgerUsecase.NewRecordVoiceEventUseCase(ledgerStore, seenEvents, gateway, normalizer)
	listUC := ledgerUsecase.NewListLedgerUseCase(ledgerStore)

	loc, err := time.LoadLocation(envOr("SNAPSHOT_TIMEZONE", "Asia/Karachi"))
	if err != nil {
		logger.Warnf("invalid SNAPSHOT_TIMEZONE, falling back to UTC: %v", err)
		loc = time.UTC
	}

	var recorder accountUsecase.VoiceRecorder
	if envOr("CATCHUP_ACCOUNTING", "false") == "true" {
		logger.Info("catch-up accounting enabled on /messages")
		recorder = recordUC
	}
	snapshotUC := accountUsecase.NewChatSnapshotUseCase(gateway, recorder, loc, logger)

	// HTTP (Fiber) app + handlers
	app := fiber.New()
	app.Use(cors.New())

	// ledger endpoints
	ledgerHandler := ledgerHttp.NewLedgerHandler(recordUC, listUC)
	app.Post("/gateway/events", ledgerHandler.RecordEvent)
	app.Post("/gateway/events/bulk", ledgerHandler.BulkRecordEvents)
	app.Get("/user_durations", ledgerHandler.ListDurations)

	// account endpoints
	accountHandler := accountHttp.NewAccountHandler(snapshotUC, sessionState)
	app.Get("/messages", accountHandler.GetMessages)
	app.Get("/whatsapp-status", accountHandler.WhatsappStatus)
	app.Get("/qrcode", accountHandler.QRCode)
	app.Post("/gateway/session", accountHandler.SessionUpdate)

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(":" + port); err != nil {
			logger.Errorf("fiber stopped: %v", err)
		}
	}()

	logger.Infof("server started on :%s (db driver: %s)", port, driver)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Errorf("fiber shutdown error: %v", err)
	}

	logger.Info("server exiting")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
