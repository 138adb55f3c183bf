package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env      string
	LogLevel int

	Database  DatabaseConfigs
	ApiServer ServerConfigs
	Auth      AuthConfigs
	Redis     RedisConfigs
	Kafka     KafkaConfigs
	Feed      FeedConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
	Cert string
	Key  string

	DefaultLimit int
	MaxLimit     int
}

type AuthConfigs struct {
	TokenSecret string
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type RedisConfigs struct {
	Addr string
}

type KafkaConfigs struct {
	Addr string
}

type FeedConfigs struct {
	// FanoutBatchSize bounds the number of feed entries written in one
	// batched statement during fan-out, backfill, and cleanup.
	FanoutBatchSize int

	// PreviewLength is the character budget of an activity preview.
	PreviewLength int

	// AsyncTimeout bounds each fire-and-forget propagation call.
	AsyncTimeout time.Duration
}
