package config

import "github.com/spf13/viper"

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

func geminiFromViper(v *viper.Viper) GeminiConfig {
	return GeminiConfig{
		APIKey:  v.GetString("GEMINI_API_KEY"),
		Model:   v.GetString("GEMINI_MODEL"),
		BaseURL: v.GetString("GEMINI_BASE_URL"),
	}
}
