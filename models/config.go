package models

// Config 構造体はサーバー全体の設定情報を保持します。
// config.json の値は環境変数で上書きできます。
type Config struct {
	Port        string `json:"port"`
	Storage     string `json:"storage"` // "postgres" または "memory"
	AutoMigrate bool   `json:"auto_migrate"`

	DBHost     string `json:"db_host"`
	DBUser     string `json:"db_user"`
	DBPassword string `json:"db_password"`
	DBName     string `json:"db_name"`
	DBSSLMode  string `json:"db_sslmode"`

	RedisAddr     string `json:"redis_addr"`
	RedisPassword string `json:"redis_password"`
	RedisDB       int    `json:"redis_db"`

	SessionSecret   string `json:"session_secret"`
	SessionTTLHours int    `json:"session_ttl_hours"`

	DiscordClientID     string `json:"discord_client_id"`
	DiscordClientSecret string `json:"discord_client_secret"`
	DiscordRedirectURL  string `json:"discord_redirect_url"`
	DiscordBotToken     string `json:"discord_bot_token"`
	DiscordServerID     string `json:"discord_server_id"`
	FrontendURL         string `json:"frontend_url"`

	AllowOrigins     []string `json:"allow_origins"`
	ScheduleTimezone string   `json:"schedule_timezone"`
}
