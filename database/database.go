package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"submitserver/models"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DefaultConfig はファイルや環境変数で指定されなかった項目の既定値です。
func DefaultConfig() models.Config {
	return models.Config{
		Port:             "8080",
		Storage:          "postgres",
		DBSSLMode:        "disable",
		RedisAddr:        "localhost:6379",
		SessionTTLHours:  24 * 30,
		AllowOrigins:     []string{"http://localhost:3000"},
		ScheduleTimezone: "America/New_York",
	}
}

// LoadConfig loads the configuration from a JSON file (optional) and then
// applies .env and environment variable overrides.
func LoadConfig(filename string) (models.Config, error) {
	config := DefaultConfig()

	if filename != "" {
		configFile, err := os.Open(filename)
		switch {
		case err == nil:
			defer configFile.Close()
			if err := json.NewDecoder(configFile).Decode(&config); err != nil {
				return config, fmt.Errorf("設定ファイルの読み込みに失敗しました: %w", err)
			}
		case errors.Is(err, fs.ErrNotExist):
			// 設定ファイルが無い場合は環境変数のみを使う
		default:
			return config, err
		}
	}

	// .env は存在しなくてもよい
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config, err
	}

	applyEnv(&config)
	if config.SessionSecret == "" {
		return config, errors.New("SESSION_SECRET が設定されていません")
	}
	return config, nil
}

func applyEnv(config *models.Config) {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v, ok := os.LookupEnv(key); ok {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	str("PORT", &config.Port)
	str("STORAGE", &config.Storage)
	if v, ok := os.LookupEnv("AUTO_MIGRATE"); ok {
		config.AutoMigrate, _ = strconv.ParseBool(v)
	}

	str("DB_HOST", &config.DBHost)
	str("DB_USER", &config.DBUser)
	str("DB_PASSWORD", &config.DBPassword)
	str("DB_NAME", &config.DBName)
	str("DB_SSLMODE", &config.DBSSLMode)

	str("REDIS_ADDR", &config.RedisAddr)
	str("REDIS_PASSWORD", &config.RedisPassword)
	num("REDIS_DB", &config.RedisDB)

	str("SESSION_SECRET", &config.SessionSecret)
	num("SESSION_TTL_HOURS", &config.SessionTTLHours)

	str("DISCORD_CLIENT_ID", &config.DiscordClientID)
	str("DISCORD_CLIENT_SECRET", &config.DiscordClientSecret)
	str("DISCORD_REDIRECT_URL", &config.DiscordRedirectURL)
	str("DISCORD_BOT_TOKEN", &config.DiscordBotToken)
	str("DISCORD_SERVER_ID", &config.DiscordServerID)
	str("FRONTEND_URL", &config.FrontendURL)

	if v, ok := os.LookupEnv("ALLOW_ORIGINS"); ok && v != "" {
		config.AllowOrigins = strings.Split(v, ",")
	}
	str("SCHEDULE_TIMEZONE", &config.ScheduleTimezone)
}

func InitPostgreSQL(config models.Config, logger *zap.Logger) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s dbname=%s password=%s sslmode=%s",
		config.DBHost, config.DBUser, config.DBName, config.DBPassword, config.DBSSLMode)

	const maxRetries = 3
	const retryInterval = 5 * time.Second
	var err error
	for i := 0; i <= maxRetries; i++ {
		var gormDB *gorm.DB
		gormDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			return gormDB, nil
		}
		logger.Error("データベース接続のリトライ", zap.Int("retry", i), zap.Error(err))
		time.Sleep(retryInterval)
	}
	return nil, fmt.Errorf("データベース接続に失敗しました: %w", err)
}

func InitRedis(config models.Config, logger *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})

	// Redisへの接続テスト
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		logger.Error("Failed to connect to Redis", zap.Error(err))
		return nil, err
	}

	logger.Info("Connected to Redis", zap.String("addr", config.RedisAddr))
	return rdb, nil
}
