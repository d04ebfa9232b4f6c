package config

import (
	"fmt"
	"os"
	"strconv"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	GoEnv         string // dev/prod
	SessionSecret string // ローカルトークンの署名シークレット

	KVBackend  string // sqlite/postgres/redis/memory
	SQLitePath string // sqlite時のファイルパス

	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート（5432）

	RedisAddr   string // redis時の接続先
	RedisPrefix string // redis時のキー接頭辞

	NATSURL      string // 空ならイベント中継なし
	OrdersAPIURL string // 空なら注文APIなし（ローカルチェックアウト）

	EnforceStock bool // カート追加時に在庫上限を強制するか
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		Port: os.Getenv("PORT"),

		GoEnv:         getenv("GO_ENV", "dev"),
		SessionSecret: os.Getenv("SESSION_SECRET"),

		KVBackend:  getenv("KV_BACKEND", "sqlite"),
		SQLitePath: getenv("SQLITE_PATH", "shopapp.db"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),

		RedisAddr:   getenv("REDIS_ADDR", "localhost:6379"),
		RedisPrefix: getenv("REDIS_PREFIX", "shopapp:"),

		NATSURL:      os.Getenv("NATS_URL"),
		OrdersAPIURL: os.Getenv("ORDERS_API_URL"),
	}

	//必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.SessionSecret == "" {
		return Config{}, fmt.Errorf("SESSION_SECRET is required")
	}

	switch cfg.KVBackend {
	case "sqlite", "redis", "memory":
	case "postgres":
		if cfg.PostgresUser == "" {
			return Config{}, fmt.Errorf("POSTGRES_USER is required")
		}
		if cfg.PostgresPassword == "" {
			return Config{}, fmt.Errorf("POSTGRES_PASSWORD is required")
		}
		if cfg.PostgresDB == "" {
			return Config{}, fmt.Errorf("POSTGRES_DB is required")
		}
		if cfg.PostgresHost == "" {
			return Config{}, fmt.Errorf("POSTGRES_HOST is required")
		}
		pgPort, err := mustAtoi("POSTGRES_PORT")
		if err != nil {
			return Config{}, err
		}
		cfg.PostgresPort = pgPort
	default:
		return Config{}, fmt.Errorf("KV_BACKEND must be sqlite/postgres/redis/memory")
	}

	if v := os.Getenv("ENFORCE_STOCK"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("ENFORCE_STOCK must be bool: %w", err)
		}
		cfg.EnforceStock = b
	}

	return cfg, nil
}

// PostgresDSN は接続文字列を組み立てる
func (c Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort,
	)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func mustAtoi(key string) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
