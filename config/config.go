package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database  DatabaseConfigs
	ApiServer ServerConfigs
	Redis     RedisConfigs
	Loteria   LoteriaConfigs
	Cache     CacheConfigs
	Scoring   ScoringConfigs
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
	Host         string
	Port         string
	AllowCORS    []string
	DefaultLimit int
	MaxLimit     int
}

type RedisConfigs struct {
	Addr string
}

// LoteriaConfigs controls the upstream draw-result provider client.
type LoteriaConfigs struct {
	BaseURL        string
	RequestTimeout time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	MaxBackoff     time.Duration
}

// CacheConfigs controls the tiered result cache expiry policy.
type CacheConfigs struct {
	EphemeralTTL    time.Duration
	CompletedTTL    time.Duration
	PendingTTL      time.Duration
	CleanupInterval time.Duration
}

type ScoringConfigs struct {
	MaxConcurrency int
}
