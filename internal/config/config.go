package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "CIVICEYE"

type Config struct {
	Server struct {
		Addr            string `mapstructure:"addr"`
		Port            int    `mapstructure:"port"`
		Mode            string `mapstructure:"mode"` // gin mode: debug, release, test
		ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // seconds
	} `mapstructure:"server"`

	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`

	Limits struct {
		MaxTextChars   int   `mapstructure:"max_text_chars"`
		MaxImages      int   `mapstructure:"max_images"`
		MaxImageBytes  int   `mapstructure:"max_image_bytes"`
		MaxImagePixels int   `mapstructure:"max_image_pixels"` // declared width*height ceiling
		MaxBodyBytes   int64 `mapstructure:"max_body_bytes"`
	} `mapstructure:"limits"`

	Model struct {
		Version  string  `mapstructure:"version"`
		Accuracy float64 `mapstructure:"accuracy"`
	} `mapstructure:"model"`

	RateLimit struct {
		Enabled bool    `mapstructure:"enabled"`
		RPS     float64 `mapstructure:"rps"`
		Burst   int     `mapstructure:"burst"`
	} `mapstructure:"rate_limit"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"` // text or json
	} `mapstructure:"log"`
}

// ListenAddr joins the configured address and port.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Addr, c.Server.Port)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "0.0.0.0")
	v.SetDefault("server.port", 8001)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout", 10)

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:5173", "http://localhost:3000"})

	v.SetDefault("limits.max_text_chars", 5000)
	v.SetDefault("limits.max_images", 3)
	v.SetDefault("limits.max_image_bytes", 10*1024*1024)
	v.SetDefault("limits.max_image_pixels", 89478485)
	v.SetDefault("limits.max_body_bytes", 50*1024*1024)

	v.SetDefault("model.version", "1.0.0")
	v.SetDefault("model.accuracy", 0.89)

	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.rps", 50)
	v.SetDefault("rate_limit.burst", 100)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// LoadConfig reads configuration from configFile, or from config.yaml in the
// working directory or $HOME/.civiceye when configFile is empty. Environment
// variables such as CIVICEYE_SERVER_PORT override file values.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.civiceye")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; defaults and env vars still apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	config.CORS.AllowedOrigins = splitOrigins(config.CORS.AllowedOrigins)

	return &config, nil
}

// splitOrigins accepts both a YAML list and a single comma separated env value.
func splitOrigins(in []string) []string {
	var out []string
	for _, o := range in {
		for _, part := range strings.Split(o, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
