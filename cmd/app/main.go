package main

import (
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"strconv"
	"time"

	"peermint/cmd"
	httpadapter "peermint/internal/adapters/in/http"
	"peermint/internal/adapters/out/postgres/escrowrepo"
	"peermint/internal/adapters/out/postgres/orderrepo"
	"peermint/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)
	mustMigrate(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB)

	jobManager := startJobs(&app, configs)
	defer jobManager.StopAll()

	startWebServer(&app, configs)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                   goDotEnvVariable("HTTP_PORT"),
		DBHost:                     goDotEnvVariable("DB_HOST"),
		DBPort:                     goDotEnvVariable("DB_PORT"),
		DBUser:                     goDotEnvVariable("DB_USER"),
		DBPassword:                 goDotEnvVariable("DB_PASSWORD"),
		DBName:                     goDotEnvVariable("DB_NAME"),
		DBSslMode:                  goDotEnvVariable("DB_SSLMODE"),
		AssetCode:                  goDotEnvVariable("ASSET_CODE"),
		EscrowAuthoritySecret:      goDotEnvVariable("ESCROW_AUTHORITY_SECRET"),
		AutoReleaseIntervalSeconds: goDotEnvVariable("AUTO_RELEASE_INTERVAL_SECONDS"),
	}

	if config.EscrowAuthoritySecret == "" {
		log.Fatalf("ESCROW_AUTHORITY_SECRET must be set")
	}

	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func mustMigrate(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&escrowrepo.EscrowAccountDTO{},
		&escrowrepo.MovementDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func startJobs(app *cmd.CompositionRoot, configs cmd.Config) *jobs.JobManager {
	interval := 5 * time.Second
	if configs.AutoReleaseIntervalSeconds != "" {
		seconds, err := strconv.Atoi(configs.AutoReleaseIntervalSeconds)
		if err != nil || seconds <= 0 {
			log.Fatalf("Invalid AUTO_RELEASE_INTERVAL_SECONDS: %s", configs.AutoReleaseIntervalSeconds)
		}
		interval = time.Duration(seconds) * time.Second
	}

	jobManager := jobs.NewJobManager(
		app.CreateAutoReleaseCommandHandler(),
		app.CreateOrderUoWFactory(),
		interval,
		slog.Default(),
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	return jobManager
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	server := httpadapter.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateJoinOrderCommandHandler(),
		app.CreateMarkPaidCommandHandler(),
		app.CreateAcknowledgeReleaseCommandHandler(),
		app.CreateAutoReleaseCommandHandler(),
		app.CreateRaiseDisputeCommandHandler(),
		app.CreateResolveDisputeCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetOpenOrdersQueryHandler(),
		app.CreateGetCreatorOrdersQueryHandler(),
		configs.AssetCode,
	)

	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(nethttp.StatusOK, "Healthy")
	})
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
