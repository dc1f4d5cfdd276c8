package repositories

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"register-server/configs"
	"register-server/internal/loggers"
	"register-server/internal/models"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type dbs struct {
	Postgres *gorm.DB
	Redis    *redis.Client
	MongoDB  *mongo.Client
	S3       *s3.Client
}

// DBS holds the shared clients, initialized once at startup.
var DBS dbs

func Init() {
	initPostgres()
	initRedis()
	initMongoDB()
	initS3()
}

// initPostgres initializes the PostgreSQL connection
func initPostgres() {
	host, port, err := net.SplitHostPort(configs.Configs.Postgres.Address)
	if err != nil {
		configs.Logger.Fatal("Invalid Postgres address", zap.Error(err))
		return
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s",
		host,
		configs.Configs.Postgres.Username,
		configs.Configs.Postgres.Password,
		configs.Configs.Postgres.Database,
		port,
	)

	gormLogger := loggers.NewZapGormLogger(
		logger.Warn,
		200*time.Millisecond,
		true,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		configs.Logger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		return
	}

	if err := AutoMigrate(db); err != nil {
		configs.Logger.Fatal("Failed to migrate database", zap.Error(err))
		return
	}

	DBS.Postgres = db
	configs.Logger.Info("PostgreSQL connected successfully")
}

// AutoMigrate migrates the register tables in dependency order.
func AutoMigrate(db *gorm.DB) error {
	modelsInOrder := []interface{}{
		&models.RefSequence{},
		&models.Inward{},
		&models.Outward{},
		&models.Attachment{},
		&models.NotificationLog{},
	}

	for _, model := range modelsInOrder {
		if err := db.AutoMigrate(model); err != nil {
			return err
		}
	}
	return nil
}

// initRedis initializes the Redis connection used by the assistant cache.
func initRedis() {
	if len(configs.Configs.Redis.Addresses) == 0 {
		configs.Logger.Warn("Redis not configured, assistant cache disabled")
		return
	}

	opt := &redis.Options{
		Addr:     configs.Configs.Redis.Addresses[0],
		Username: configs.Configs.Redis.Username,
		Password: configs.Configs.Redis.Password,
		DB:       configs.Configs.Redis.Database,
	}

	if configs.Configs.Redis.Tls {
		opt.TLSConfig = &tls.Config{}
	}

	DBS.Redis = redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := DBS.Redis.Ping(ctx).Result()
	if err != nil {
		configs.Logger.Fatal("Failed to connect to Redis", zap.Error(err))
		return
	}

	configs.Logger.Info("Redis connected successfully", zap.String("result", result))
}

// initMongoDB initializes the MongoDB connection holding chat transcripts.
func initMongoDB() {
	if configs.Configs.MongoDB.Uri == "" {
		configs.Logger.Warn("MongoDB not configured, chat transcripts disabled")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(configs.Configs.MongoDB.Uri)
	if configs.Configs.MongoDB.Username != "" {
		clientOptions = clientOptions.SetAuth(options.Credential{
			Username: configs.Configs.MongoDB.Username,
			Password: configs.Configs.MongoDB.Password,
		})
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		configs.Logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
		return
	}

	if err := client.Ping(ctx, nil); err != nil {
		configs.Logger.Fatal("Failed to ping MongoDB", zap.Error(err))
		return
	}

	DBS.MongoDB = client
	configs.Logger.Info("MongoDB connected successfully")
}

// initS3 initializes the S3 client holding letter scans.
func initS3() {
	if configs.Configs.S3.AccessKey == "" {
		configs.Logger.Warn("S3 not configured, attachments disabled")
		return
	}

	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(configs.Configs.S3.Region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				configs.Configs.S3.AccessKey,
				configs.Configs.S3.SecretKey,
				"",
			),
		),
	)
	if err != nil {
		configs.Logger.Fatal("Failed to load S3 configuration", zap.Error(err))
		return
	}

	DBS.S3 = s3.NewFromConfig(cfg)
	configs.Logger.Info("S3 client initialized successfully")
}
