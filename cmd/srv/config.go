package main

import (
	"os"
	"strconv"
	"time"

	"github.com/mealfeed/backend/config"
	"github.com/mealfeed/backend/pkg/logger"
)

func (s *srv) loadConfigs() {
	s.configs = config.Configs{
		Env:      getEnv("ENV", "local"),
		LogLevel: getIntEnv("LOG_LEVEL", logger.INFO),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			Database: getEnv("MYSQL_DATABASE", "mealfeed"),
			User:     getEnv("MYSQL_USER", "mealfeed"),
			Password: getEnv("MYSQL_PASSWORD", "mealfeed"),
		},
		ApiServer: config.ServerConfigs{
			Host:         getEnv("HOST", "localhost"),
			Port:         getEnv("PORT", "8080"),
			Cert:         getEnv("SERVER_CERT", ""),
			Key:          getEnv("SERVER_KEY", ""),
			DefaultLimit: getIntEnv("API_DEFAULT_LIMIT", 50),
			MaxLimit:     getIntEnv("API_MAX_LIMIT", 100),
		},
		Auth: config.AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token_secret"),
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: getDurationEnv("ACCESS_TOKEN_DURATION", time.Hour*24*30),
			},
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", "localhost:6379"),
		},
		Kafka: config.KafkaConfigs{
			Addr: getEnv("KAFKA_ADDRESS", "localhost:9092"),
		},
		Feed: config.FeedConfigs{
			FanoutBatchSize: getIntEnv("FEED_FANOUT_BATCH_SIZE", 500),
			PreviewLength:   getIntEnv("FEED_PREVIEW_LENGTH", 150),
			AsyncTimeout:    getDurationEnv("FEED_ASYNC_TIMEOUT", 30*time.Second),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getIntEnv(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		panic(err)
	}

	return n
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		panic(err)
	}

	return d
}
