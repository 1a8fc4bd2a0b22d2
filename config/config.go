package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full application configuration, loaded from a YAML file with
// environment-variable overrides on top.
type Config struct {
	Server ServerConfig `yaml:"server"`
	AWS    AWSConfig    `yaml:"aws"`
	JWT    JWTConfig    `yaml:"jwt"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
	IdleTimeout  time.Duration `yaml:"idleTimeout"`
}

// AWSConfig holds region, optional DynamoDB endpoint override (local
// development) and the media bucket.
type AWSConfig struct {
	Region         string `yaml:"region"`
	DynamoEndpoint string `yaml:"dynamoEndpoint"`
	S3Bucket       string `yaml:"s3Bucket"`
}

// JWTConfig holds the token signing settings. Issued tokens expire after
// ExpireTime (one hour by default).
type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	ExpireTime time.Duration `yaml:"expireTime"`
	Issuer     string        `yaml:"issuer"`
}

// LogConfig holds logging settings. An empty Filename logs to stdout only.
type LogConfig struct {
	Level      string `yaml:"level"`
	Filename   string `yaml:"filename"`
	MaxSize    int    `yaml:"maxSize"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAge     int    `yaml:"maxAge"`
	Compress   bool   `yaml:"compress"`
}

// Load reads config/config.yaml (falling back to defaults when absent) and
// applies environment-variable overrides.
func Load() *Config {
	cfg := loadFromYAML("config/config.yaml")
	overrideWithEnvVars(cfg)
	return cfg
}

func loadFromYAML(filePath string) *Config {
	cfg := defaultConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return cfg
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return defaultConfig()
	}
	return cfg
}

func overrideWithEnvVars(cfg *Config) {
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if region := os.Getenv("AWS_REGION"); region != "" {
		cfg.AWS.Region = region
	}
	if endpoint := os.Getenv("DYNAMO_ENDPOINT"); endpoint != "" {
		cfg.AWS.DynamoEndpoint = endpoint
	}
	if bucket := os.Getenv("S3_BUCKET_NAME"); bucket != "" {
		cfg.AWS.S3Bucket = bucket
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWT.Secret = secret
	}
	if expire := getEnvDuration("JWT_EXPIRE_TIME"); expire > 0 {
		cfg.JWT.ExpireTime = expire
	}
	if issuer := os.Getenv("JWT_ISSUER"); issuer != "" {
		cfg.JWT.Issuer = issuer
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if filename := os.Getenv("LOG_FILENAME"); filename != "" {
		cfg.Log.Filename = filename
	}
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		AWS: AWSConfig{
			Region: "us-east-1",
		},
		JWT: JWTConfig{
			Secret:     "aVerySecretKey",
			ExpireTime: time.Hour,
			Issuer:     "facybook-server",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     7,
			Compress:   true,
		},
	}
}

func getEnvDuration(key string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return 0
}
