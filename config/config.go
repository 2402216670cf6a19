// Package config loads resource pool settings from YAML files, property
// maps and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/respool/codec"
	"github.com/hupe1980/respool/internal/record"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding file and map settings.
const (
	EnvPoolName    = "RESPOOL_POOL_NAME"
	EnvStorageRoot = "RESPOOL_STORAGE_ROOT"
)

// Backend types.
const (
	BackendLocal    = "local"
	BackendMemory   = "memory"
	BackendS3       = "s3"
	BackendMinIO    = "minio"
	BackendRedis    = "redis"
	BackendDynamoDB = "dynamodb"
)

// DefaultRemoteTimeout bounds each remote call unless configured otherwise.
const DefaultRemoteTimeout = 5 * time.Second

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the settings of one pool.
type Config struct {
	PoolName          string        `yaml:"pool_name" mapstructure:"pool_name"`
	StorageRoot       string        `yaml:"storage_root" mapstructure:"storage_root"`
	Codec             string        `yaml:"codec" mapstructure:"codec"`
	Compression       string        `yaml:"compression" mapstructure:"compression"`
	RemoteTimeout     time.Duration `yaml:"remote_timeout" mapstructure:"remote_timeout"`
	CacheBytes        int64         `yaml:"cache_bytes" mapstructure:"cache_bytes"`
	MaxRemoteCalls    int64         `yaml:"max_remote_calls" mapstructure:"max_remote_calls"`
	RemoteCallsPerSec float64       `yaml:"remote_calls_per_sec" mapstructure:"remote_calls_per_sec"`
	LogLevel          string        `yaml:"log_level" mapstructure:"log_level"`
	Backend           Backend       `yaml:"backend" mapstructure:"backend"`
}

// Backend selects and configures the backing medium.
type Backend struct {
	Type      string `yaml:"type" mapstructure:"type"`
	Bucket    string `yaml:"bucket" mapstructure:"bucket"`
	Prefix    string `yaml:"prefix" mapstructure:"prefix"`
	Region    string `yaml:"region" mapstructure:"region"`
	Endpoint  string `yaml:"endpoint" mapstructure:"endpoint"`
	AccessKey string `yaml:"access_key" mapstructure:"access_key"`
	SecretKey string `yaml:"secret_key" mapstructure:"secret_key"`
	Secure    bool   `yaml:"secure" mapstructure:"secure"`
	RedisAddr string `yaml:"redis_addr" mapstructure:"redis_addr"`
	RedisDB   int    `yaml:"redis_db" mapstructure:"redis_db"`
	Table     string `yaml:"table" mapstructure:"table"`
}

// Default returns the default configuration: a local backend, the gob
// codec, no compression and a 5s remote timeout.
func Default() Config {
	return Config{
		Codec:         codec.Default.Name(),
		Compression:   record.CompressionNone.String(),
		RemoteTimeout: DefaultRemoteTimeout,
		LogLevel:      "info",
		Backend:       Backend{Type: BackendLocal},
	}
}

// Load reads a YAML file over the defaults, applies the environment and
// validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(data)
}

// Parse is Load on in-memory YAML.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return cfg.finish()
}

// FromMap builds a configuration from flat properties such as
// {"storage_root": "/var/lib/pool", "pool_name": "worker-1"}. Unknown keys
// are ignored; values are converted weakly ("5s", "1024", "true").
func FromMap(props map[string]string) (Config, error) {
	cfg := Default()

	in := make(map[string]any, len(props))
	for k, v := range props {
		in[k] = v
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(in); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return cfg.finish()
}

func (c Config) finish() (Config, error) {
	c.ApplyEnv()
	if c.PoolName == "" {
		c.PoolName = uuid.NewString()
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// ApplyEnv overrides the pool name and storage root from the environment.
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv(EnvPoolName); ok && v != "" {
		c.PoolName = v
	}
	if v, ok := os.LookupEnv(EnvStorageRoot); ok && v != "" {
		c.StorageRoot = v
	}
}

// Validate checks that the configuration can build a pool.
func (c Config) Validate() error {
	if c.PoolName == "" {
		return fmt.Errorf("%w: pool_name is empty", ErrInvalid)
	}
	if _, ok := codec.ByName(c.Codec); !ok {
		return fmt.Errorf("%w: unknown codec %q", ErrInvalid, c.Codec)
	}
	if _, err := record.ParseCompression(c.Compression); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.RemoteTimeout < 0 {
		return fmt.Errorf("%w: negative remote_timeout", ErrInvalid)
	}
	if c.CacheBytes < 0 || c.MaxRemoteCalls < 0 || c.RemoteCallsPerSec < 0 {
		return fmt.Errorf("%w: negative limit", ErrInvalid)
	}

	b := c.Backend
	switch b.Type {
	case "", BackendLocal:
		if c.StorageRoot == "" {
			return fmt.Errorf("%w: storage_root is required for the local backend", ErrInvalid)
		}
	case BackendMemory:
	case BackendS3, BackendMinIO:
		if b.Bucket == "" {
			return fmt.Errorf("%w: backend.bucket is required for %s", ErrInvalid, b.Type)
		}
		if b.Type == BackendMinIO && b.Endpoint == "" {
			return fmt.Errorf("%w: backend.endpoint is required for minio", ErrInvalid)
		}
	case BackendRedis:
		if b.RedisAddr == "" {
			return fmt.Errorf("%w: backend.redis_addr is required for redis", ErrInvalid)
		}
	case BackendDynamoDB:
		if b.Table == "" {
			return fmt.Errorf("%w: backend.table is required for dynamodb", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown backend type %q", ErrInvalid, b.Type)
	}
	return nil
}
