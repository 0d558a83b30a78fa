package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"logistics/cmd"
	adapterhttp "logistics/internal/adapters/in/http"
	"logistics/internal/adapters/out/postgres/orderrepo"
	out_rabbitmq "logistics/internal/adapters/out/rabbitmq"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	amqp "github.com/rabbitmq/amqp091-go"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const defaultOrderDeadline = 10 * time.Minute

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	config := getConfigs(logger)

	gormDB := mustConnectDB(config, logger)

	conn, err := amqp.Dial(config.AmqpURL)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	publishChannel := mustOpenChannel(conn, logger)
	consumeChannel := mustOpenChannel(conn, logger)

	if err = out_rabbitmq.DeclareTopology(publishChannel); err != nil {
		logger.Error("Failed to declare messaging topology", "error", err)
		os.Exit(1)
	}

	root := cmd.NewCompositionRoot(config, gormDB, publishChannel, logger)

	ctx := context.Background()
	if err = root.CreateConsumer(consumeChannel).Start(ctx); err != nil {
		logger.Error("Failed to start consumers", "error", err)
		os.Exit(1)
	}

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		logger.Error("Failed to start jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(&root, config)
}

func getConfigs(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("No .env file found, using process environment")
	}

	config := cmd.Config{
		HTTPPort:      os.Getenv("HTTP_PORT"),
		DBHost:        os.Getenv("DB_HOST"),
		DBPort:        os.Getenv("DB_PORT"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBSslMode:     os.Getenv("DB_SSLMODE"),
		AmqpURL:       os.Getenv("AMQP_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		OrderDeadline: defaultOrderDeadline,
	}

	if raw := os.Getenv("ORDER_DEADLINE"); raw != "" {
		deadline, err := time.ParseDuration(raw)
		if err != nil {
			logger.Error("Invalid ORDER_DEADLINE", "value", raw, "error", err)
			os.Exit(1)
		}
		config.OrderDeadline = deadline
	}

	return config
}

func mustConnectDB(config cmd.Config, logger *slog.Logger) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser,
		config.DBPassword, config.DBName, config.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return gormDB
}

func mustOpenChannel(conn *amqp.Connection, logger *slog.Logger) *amqp.Channel {
	ch, err := conn.Channel()
	if err != nil {
		logger.Error("Failed to open AMQP channel", "error", err)
		os.Exit(1)
	}
	return ch
}

func startWebServer(root *cmd.CompositionRoot, config cmd.Config) {
	e := echo.New()
	e.Use(middleware.Recover())

	server := adapterhttp.NewServer(
		root.CreateSubmitOrderCommandHandler(),
		root.CreateGetOwnerOrdersQueryHandler(),
	)
	server.RegisterRoutes(e, adapterhttp.NewAuthMiddleware([]byte(config.JWTSecret)))

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)))
}
