package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/fekuna/goldsmith-catalog-service/config"
	goldRateH "github.com/fekuna/goldsmith-catalog-service/internal/goldrate/handler"
	goldRateListenerPkg "github.com/fekuna/goldsmith-catalog-service/internal/goldrate/listener"
	goldRateRepoPkg "github.com/fekuna/goldsmith-catalog-service/internal/goldrate/repository"
	goldRateUCPkg "github.com/fekuna/goldsmith-catalog-service/internal/goldrate/usecase"
	"github.com/fekuna/goldsmith-catalog-service/internal/media"
	prodH "github.com/fekuna/goldsmith-catalog-service/internal/product/handler"
	prodRepoPkg "github.com/fekuna/goldsmith-catalog-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/goldsmith-catalog-service/internal/product/usecase"
	"github.com/fekuna/goldsmith-catalog-service/internal/server"
	"github.com/fekuna/goldsmith-catalog-service/pkg/broker"
	"github.com/fekuna/goldsmith-catalog-service/pkg/cache"
	"github.com/fekuna/goldsmith-catalog-service/pkg/database/postgres"
	"github.com/fekuna/goldsmith-catalog-service/pkg/logger"
	"github.com/fekuna/goldsmith-catalog-service/pkg/search"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// @title        Goldsmith Catalog API
// @version      1.0
// @description  Gold rates per karat and a jewelry catalog priced from them.
// @BasePath     /
func main() {
	if err := run(); err != nil {
		log.Fatalf("goldsmith-catalog: %v", err)
	}
}

// run owns every resource so deferred cleanup completes before main exits.
func run() error {
	// 1. Load Configuration
	cfg, err := config.LoadEnv()
	if err != nil {
		return errors.Wrap(err, "load config")
	}

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     cfg.IsDevelopment(),
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
		Filename:          cfg.Logger.Filename,
		MaxSizeMB:         cfg.Logger.MaxSizeMB,
		MaxBackups:        cfg.Logger.MaxBackups,
	}
	if !cfg.IsDevelopment() {
		logConfig.Encoding = "json"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	if err := postgres.Migrate(ctx, db); err != nil {
		return errors.Wrap(err, "apply schema")
	}

	// 4. Initialize Repositories
	goldRateRepo := goldRateRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
	var redisClient *cache.RedisClient
	if cfg.Redis.Addr != "" {
		redisClient, err = cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Redis, gold rate cache disabled", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
			appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		}
	}

	// 6. Initialize Kafka
	var rateEvents goldRateUCPkg.Publisher
	var productEvents prodUCPkg.Publisher
	var rateFeed *broker.KafkaConsumer
	if len(cfg.Kafka.Brokers) > 0 {
		producer := broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.EventsTopic,
		})
		defer producer.Close()
		rateEvents = producer
		productEvents = producer

		rateFeed = broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.RateFeedTopic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer rateFeed.Close()
		appLogger.Info("Connected to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers))
	}

	// 7. Initialize Elasticsearch
	var productIndex prodUCPkg.SearchIndex
	if len(cfg.Elastic.Addresses) > 0 {
		esClient, err := search.NewClient(&search.Config{
			Addresses: cfg.Elastic.Addresses,
			Username:  cfg.Elastic.Username,
			Password:  cfg.Elastic.Password,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Elasticsearch, search falls back to the database", zap.Error(err))
		} else {
			productIndex = esClient
			appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
		}
	}

	// 8. Initialize image storage
	uploader, err := newUploader(&cfg.Storage, appLogger)
	if err != nil {
		return errors.Wrap(err, "initialize image storage")
	}

	// 9. Initialize UseCases
	goldRateUC := goldRateUCPkg.NewGoldRateUseCase(goldRateRepo, redisClient, cfg.Redis.TTL, rateEvents, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, goldRateUC, uploader, productIndex, cfg.Elastic.Index, productEvents, appLogger)

	// 10. Start Listeners
	if rateFeed != nil {
		go goldRateListenerPkg.NewRateFeedListener(rateFeed, goldRateUC, appLogger).Start(ctx)
	}

	// 11. Start Servers
	srv := server.New(cfg, appLogger,
		goldRateH.NewGoldRateHandler(goldRateUC, appLogger),
		prodH.NewProductHandler(prodUC, cfg.Storage.MaxImageBytes, appLogger),
	)
	if err := srv.Run(ctx); err != nil {
		return errors.Wrap(err, "server exited")
	}
	return nil
}

func newUploader(cfg *config.StorageConfig, log logger.ZapLogger) (media.Uploader, error) {
	var backend media.Uploader
	switch cfg.Driver {
	case "sftp":
		sftpUploader, err := media.NewSFTPUploader(media.SFTPConfig{
			Addr:           cfg.SFTPAddr,
			User:           cfg.SFTPUser,
			Password:       cfg.SFTPPassword,
			Dir:            cfg.SFTPDir,
			PublicBaseURL:  cfg.PublicBaseURL,
			KnownHostsFile: cfg.SFTPKnownHosts,
		})
		if err != nil {
			return nil, err
		}
		backend = sftpUploader
	default:
		cld, err := media.NewCloudinaryUploader(cfg.CloudinaryURL, cfg.Folder)
		if err != nil {
			return nil, err
		}
		backend = cld
	}
	log.Info("Image storage ready", zap.String("driver", cfg.Driver))
	return media.NewThrottledUploader(backend, cfg.Driver, cfg.UploadsPerSecond, cfg.UploadBurst, log), nil
}
