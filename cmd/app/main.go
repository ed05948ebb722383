package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"tracker/cmd"
	adapterhttp "tracker/internal/adapters/in/http"
	"tracker/internal/adapters/out/postgres/orderrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Fatalf("Error loading .env file")
	}

	// Strict forward-only transitions unless explicitly disabled.
	strict := true
	if raw := os.Getenv("STRICT_STATUS_TRANSITIONS"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			log.Fatalf("Invalid STRICT_STATUS_TRANSITIONS value: %s", raw)
		}
		strict = parsed
	}

	return cmd.Config{
		HTTPPort:                os.Getenv("HTTP_PORT"),
		DBHost:                  os.Getenv("DB_HOST"),
		DBPort:                  os.Getenv("DB_PORT"),
		DBUser:                  os.Getenv("DB_USER"),
		DBPassword:              os.Getenv("DB_PASSWORD"),
		DBName:                  os.Getenv("DB_NAME"),
		DBSslMode:               os.Getenv("DB_SSLMODE"),
		PartnerAuthToken:        os.Getenv("PARTNER_AUTH_TOKEN"),
		StrictStatusTransitions: strict,
	}
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.StatusUpdateDTO{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := adapterhttp.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateChangeOrderStatusCommandHandler(),
		app.CreateTrackOrderQueryHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetOrdersByStatusQueryHandler(),
	)

	auth := adapterhttp.RequireAuth(app.CreateAccessVerifier())

	api := e.Group("/api/v1")
	api.GET("/orders/code/:code", server.TrackOrder)
	api.POST("/orders", server.CreateOrder, auth)
	api.GET("/orders", server.GetOrders, auth)
	api.GET("/orders/:id", server.GetOrder, auth)
	api.PATCH("/orders/:id/status", server.ChangeOrderStatus, auth)

	e.GET("/ws", app.CreateWebSocketServer().Handle)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
