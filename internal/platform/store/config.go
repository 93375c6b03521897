package store

import (
	"time"

	"formmigrate/internal/platform/validate"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	Ceph  CephConfig
	Redis RedisConfig
}

// CephConfig configures the source bucket on the Ceph RGW gateway
type CephConfig struct {
	Enabled   bool   `env:"-"`
	Endpoint  string `env:"STORAGE_CEPH_HTTP_ENDPOINT" validate:"required,url"`
	AccessKey string `env:"STORAGE_CEPH_ACCESS_KEY" validate:"required"`
	SecretKey string `env:"STORAGE_CEPH_SECRET_KEY" validate:"required"`
	Bucket    string `env:"STORAGE_CEPH_BUCKET" validate:"required,min=3,max=63"`
	Region    string `env:"STORAGE_CEPH_REGION"`
	PathStyle bool   `env:"STORAGE_CEPH_PATH_STYLE"`

	// Guard/boot knobs:
	ConnectRetries int           `env:"STORAGE_CEPH_CONNECT_RETRIES" validate:"min=0,max=30"` // default 6
	PingTimeout    time.Duration `env:"-"`                                                    // default 5s
}

// RedisConfig configures the destination redis, standalone or behind sentinel
type RedisConfig struct {
	Enabled          bool          `env:"-"`
	Addr             string        `env:"STORAGE_REDIS_ADDR" validate:"required_without=SentinelMaster,omitempty,host_port"`
	Username         string        `env:"STORAGE_REDIS_USERNAME"`
	Password         string        `env:"STORAGE_REDIS_PASSWORD"`
	DB               int           `env:"STORAGE_REDIS_DB" validate:"min=0,max=15"`
	SentinelMaster   string        `env:"STORAGE_REDIS_SENTINEL_MASTER"`
	SentinelNodes    []string      `env:"STORAGE_REDIS_SENTINEL_NODES" validate:"required_with=SentinelMaster,omitempty,dive,host_port"`
	SentinelPassword string        `env:"STORAGE_REDIS_SENTINEL_PASSWORD"`
	TTL              time.Duration `env:"STORAGE_REDIS_TTL" validate:"min=0"`
	LogCommands      bool          `env:"STORAGE_REDIS_LOG_COMMANDS"`
	SlowCommand      time.Duration `env:"-"`

	// Guard/boot knobs:
	ConnectRetries int           `env:"STORAGE_REDIS_CONNECT_RETRIES" validate:"min=0,max=30"` // default 6
	PingTimeout    time.Duration `env:"-"`                                                     // default 5s
}

// Validate checks every enabled backend; disabled ones are ignored
func (c Config) Validate() error {
	if c.Ceph.Enabled {
		if err := validate.Struct(c.Ceph); err != nil {
			return err
		}
	}
	if c.Redis.Enabled {
		if err := validate.Struct(c.Redis); err != nil {
			return err
		}
	}
	return nil
}
