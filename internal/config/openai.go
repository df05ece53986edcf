package config

import "github.com/spf13/viper"

// OpenAIConfig drives the quick-insight adapter.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

func openAIFromViper(v *viper.Viper) OpenAIConfig {
	return OpenAIConfig{
		APIKey:  v.GetString("OPENAI_API_KEY"),
		BaseURL: v.GetString("OPENAI_BASE_URL"),
		Model:   v.GetString("OPENAI_MODEL"),
	}
}
