package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/canfly/subdomain-router/internal/api/http"
	"github.com/canfly/subdomain-router/internal/catalog"
	"github.com/canfly/subdomain-router/internal/subdomain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log       LogConfig
	Http      http.Config
	Subdomain subdomain.Config  `mapstructure:"subdomain"`
	Services  []catalog.Service `mapstructure:"services"`
}

var config Config

func ParseCommaSeparated(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setDefaults(v *viper.Viper) {
	defaults := subdomain.DefaultConfig()

	v.SetDefault("log.level", LOG_LEVEL_INFO)
	v.SetDefault("http.port", 3000)
	v.SetDefault("http.cors_origins", "*")
	v.SetDefault("subdomain.header_name", defaults.HeaderName)
	v.SetDefault("subdomain.root_host", defaults.RootHost)
	v.SetDefault("subdomain.path_marker", defaults.PathMarker)
	v.SetDefault("subdomain.path_enabled", defaults.PathEnabled)
	v.SetDefault("subdomain.header_enabled", defaults.HeaderEnabled)
}

func loadConfig(v *viper.Viper) (Config, error) {
	var cfg Config

	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Subdomain.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid subdomain config: %w", err)
	}

	return cfg, nil
}

func InitConfig() {
	_ = godotenv.Load()

	v := viper.GetViper()
	v.SetConfigName("application")
	v.AddConfigPath(".")
	v.AddConfigPath("./cmd/subdomain-router-server")
	v.SetConfigType("yaml")

	cfg, err := loadConfig(v)
	if err != nil {
		panic(err)
	}
	config = cfg

	initLogger(config.Log.Level)

	if strings.ToUpper(config.Log.Level) == LOG_LEVEL_DEBUG {
		configJSON, err := json.MarshalIndent(config, "", "  ")
		if err == nil {
			fmt.Println("Config loaded:")
			fmt.Println(string(configJSON))
		}
	}
}
