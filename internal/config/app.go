package config

import (
	"sync"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Name     string
	Env      string
	Port     string
	LogLevel string
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func appFromViper(v *viper.Viper) AppConfig {
	return AppConfig{
		Name:     v.GetString("APP_NAME"),
		Env:      v.GetString("APP_ENV"),
		Port:     v.GetString("PORT"),
		LogLevel: v.GetString("LOG_LEVEL"),
	}
}

// LoadAppConfig returns the process-wide app settings, read once.
func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		cfg := appFromViper(newViper())
		appConfig = &cfg
	})
	return appConfig
}

func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// Addr is the fiber listen address.
func (c AppConfig) Addr() string {
	return ":" + c.Port
}
