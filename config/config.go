package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is built once at startup and passed to every component that needs it.
type Config struct {
	Env  string
	Port string

	MongoURI string
	DBName   string

	JWTSecret string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RabbitMQURL string

	CORSOrigins []string

	AdminUsername string
	AdminPassword string

	LogLevel string
	LogDev   bool
}

// LoadEnv reads a .env file into the process environment when one exists.
func LoadEnv() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func GetEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

// Load builds a Config from the environment. Every problem is collected so
// a misconfigured deployment reports all of them at once.
func Load() (Config, error) {
	var problems []string

	required := func(keys ...string) string {
		for _, k := range keys {
			if v := os.Getenv(k); v != "" {
				return v
			}
		}
		problems = append(problems, "missing required env var: "+keys[0])
		return ""
	}

	cfg := Config{
		Env:           GetEnv("APP_ENV", "development"),
		Port:          GetEnv("PORT", "5000"),
		MongoURI:      required("MONGO_URI"),
		DBName:        GetEnv("DB_NAME", "bookstore"),
		JWTSecret:     required("JWT_SECRET_KEY", "JWT_SECRET"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RabbitMQURL:   os.Getenv("RABBITMQ_URL"),
		CORSOrigins:   splitList(GetEnv("CORS_ORIGINS", "http://localhost:5173")),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
	}

	if s := os.Getenv("REDIS_DB"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			problems = append(problems, fmt.Sprintf("invalid int for REDIS_DB: %q", s))
		}
		cfg.RedisDB = n
	}
	if s := os.Getenv("LOG_DEV"); s != "" {
		dev, err := strconv.ParseBool(s)
		if err != nil {
			problems = append(problems, fmt.Sprintf("invalid bool for LOG_DEV: %q", s))
		}
		cfg.LogDev = dev
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid PORT: %q", cfg.Port))
	}
	if (cfg.AdminUsername == "") != (cfg.AdminPassword == "") {
		problems = append(problems, "ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}

	if len(problems) > 0 {
		return Config{}, errors.New(strings.Join(problems, "; "))
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
