package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config параметры приложения из окружения
type Config struct {
	Addr          string
	MongoURI      string // пусто — работаем на in-memory хранилище
	MongoDatabase string
	RedisAddr     string
	RedisPassword string
	SessionTTL    time.Duration
	AdminUsername string
	AdminPassword string
}

// Load читает .env (если есть) и окружение
func Load(log *logrus.Logger) Config {
	if err := godotenv.Load(); err != nil {
		log.WithError(err).Debug("no .env file, relying on system environment")
	}

	return Config{
		Addr:          getenv("HTTP_ADDR", ":9091"),
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDatabase: getenv("MONGO_DATABASE", "BardiyaSaati"),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		SessionTTL:    getduration("SESSION_TTL", 24*time.Hour),
		AdminUsername: getenv("ADMIN_USERNAME", "admin"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getduration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
