package main

import (
	"flag"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"

	"submitserver/auth"     //セッショントークンとDiscordログイン
	"submitserver/database" //PostgreSQLとRedisの初期化、ストア
	"submitserver/handlers" //HTTPリクエストの処理
	"submitserver/internal/memstore"
	"submitserver/migrations" //スキーマのマイグレーション
	"submitserver/routes"     //ルーティング
	"submitserver/utils"      //ロガーの初期化

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the JSON config file")
	flag.Parse()

	logger, err := utils.InitLogger() // ロガーの初期化
	if err != nil {
		panic(err) // 失敗した場合はプログラム停止
	}
	defer logger.Sync() // ロガーのクリーンアップ

	config, err := database.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("設定ファイルの読み込みに失敗しました", zap.Error(err))
	}

	location, err := time.LoadLocation(config.ScheduleTimezone)
	if err != nil {
		logger.Fatal("タイムゾーンの読み込みに失敗しました", zap.String("timezone", config.ScheduleTimezone), zap.Error(err))
	}
	sessionTTL := time.Duration(config.SessionTTLHours) * time.Hour

	env := &handlers.Env{
		Logger:        logger,
		Location:      location,
		Now:           time.Now,
		FrontendURL:   config.FrontendURL,
		SecureCookies: gin.Mode() == gin.ReleaseMode,
	}

	switch config.Storage {
	case "memory":
		logger.Warn("メモリ上のストアで起動します。再起動するとデータは失われます")
		env.Store = memstore.New()
		env.Sessions = memstore.NewSessions(sessionTTL)
	default:
		// 非同期でPostgreSQLとRedisの初期化
		var db *gorm.DB
		var rdb *redis.Client
		done := make(chan bool)

		go func() {
			var err error
			db, err = database.InitPostgreSQL(config, logger)
			if err != nil {
				logger.Fatal("PostgreSQLの初期化に失敗しました", zap.Error(err))
			}
			done <- true
		}()

		go func() {
			var err error
			rdb, err = database.InitRedis(config, logger)
			if err != nil {
				logger.Fatal("Failed to initialize Redis", zap.Error(err))
			}
			done <- true
		}()

		// 2つの初期化が完了するのを待つ
		<-done
		<-done

		if config.AutoMigrate {
			if err := migrations.Run(db, logger); err != nil {
				logger.Fatal("マイグレーションに失敗しました", zap.Error(err))
			}
		}

		env.Store = database.NewStore(db)
		env.Sessions = database.NewRedisSessions(rdb, sessionTTL)
	}

	provider, err := auth.NewDiscord(config)
	if err != nil {
		logger.Fatal("Discordプロバイダーの初期化に失敗しました", zap.Error(err))
	}
	env.Provider = provider

	tokens := auth.NewTokens(config.SessionSecret, sessionTTL)
	env.Tokens = tokens

	router := routes.SetupRouter(env, tokens, config.AllowOrigins)

	logger.Info("サーバーを起動します", zap.String("port", config.Port), zap.String("storage", config.Storage))
	if err := router.Run(":" + config.Port); err != nil {
		logger.Fatal("Failed to run HTTP server", zap.Error(err))
	}
}
