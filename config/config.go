package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config 全局配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Media    MediaConfig    `mapstructure:"media"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Sentry   SentryConfig   `mapstructure:"sentry"`
	Trace    TraceConfig    `mapstructure:"trace"`
}

type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release / test
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"` // postgres / sqlite
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

// MediaConfig 远端图床配置（上传/删除由外部服务承担）
type MediaConfig struct {
	BaseURL string  `mapstructure:"base_url"`
	APIKey  string  `mapstructure:"api_key"`
	Folder  string  `mapstructure:"folder"`
	RPS     float64 `mapstructure:"rps"` // 对远端的限速
}

// NotifyConfig 各互动类型是否落通知（comment 默认关闭）
type NotifyConfig struct {
	Like    bool `mapstructure:"like"`
	Follow  bool `mapstructure:"follow"`
	Comment bool `mapstructure:"comment"`
}

type SentryConfig struct {
	DSN string `mapstructure:"dsn"`
}

type TraceConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

// Load 读取 config.yaml，环境变量 SOCIALFEED_* 可覆盖
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")

	v.SetEnvPrefix("SOCIALFEED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "social_feed.db")
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("redis.addr", "")
	v.SetDefault("auth.issuer", "social-feed")
	v.SetDefault("media.rps", 5)
	v.SetDefault("notify.like", true)
	v.SetDefault("notify.follow", true)
	v.SetDefault("notify.comment", false)
	v.SetDefault("trace.enabled", false)

	if err := v.ReadInConfig(); err != nil {
		// 没有配置文件时使用默认值 + 环境变量
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
