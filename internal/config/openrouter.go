package config

import "github.com/spf13/viper"

type OpenRouterConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

func openRouterFromViper(v *viper.Viper) OpenRouterConfig {
	return OpenRouterConfig{
		APIKey:  v.GetString("OPENROUTER_API_KEY"),
		BaseURL: v.GetString("OPENROUTER_BASE_URL"),
		Model:   v.GetString("OPENROUTER_MODEL"),
	}
}
