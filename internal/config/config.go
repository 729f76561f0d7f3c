package config

import (
	"fmt"
	"os"
	"strconv"
)

// Configはアプリ全体の設定。起動時に一度だけ読む。
type Config struct {
	Port string // HTTPポート。未指定なら8080

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     int

	JWTSecret string // アクセストークンのHS256署名鍵

	GoEnv     string // dev/prod。prodでrefresh cookieがSecureになる
	APIDomain string // cookieのDomain属性に使う
	FEURL     string // 営業フロントのオリジン（CORSの許可先）
}

// Loadは環境変数からConfigを組み立てる。
// DB・JWT・フロントURLは必須。ポートと実行環境には開発用の既定値がある。
func Load() (Config, error) {
	pgPort, err := mustAtoi("POSTGRES_PORT")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: getenvDefault("PORT", "8080"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     pgPort,

		JWTSecret: os.Getenv("JWT_SECRET"),

		GoEnv:     getenvDefault("GO_ENV", "dev"),
		APIDomain: os.Getenv("API_DOMAIN"),
		FEURL:     os.Getenv("FE_URL"),
	}

	//必須チェック
	required := []struct {
		key   string
		value string
	}{
		{"POSTGRES_USER", cfg.PostgresUser},
		{"POSTGRES_PASSWORD", cfg.PostgresPassword},
		{"POSTGRES_DB", cfg.PostgresDB},
		{"POSTGRES_HOST", cfg.PostgresHost},
		{"JWT_SECRET", cfg.JWTSecret},
		{"API_DOMAIN", cfg.APIDomain},
		{"FE_URL", cfg.FEURL},
	}
	for _, r := range required {
		if r.value == "" {
			return Config{}, fmt.Errorf("%s is required", r.key)
		}
	}

	return cfg, nil
}

func getenvDefault(key string, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
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
