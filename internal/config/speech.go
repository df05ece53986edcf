package config

import "github.com/spf13/viper"

type DeepgramConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// WhisperConfig shares the OpenAI account unless WHISPER_API_KEY is set.
type WhisperConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type TranslateConfig struct {
	APIKey  string
	BaseURL string
}

func deepgramFromViper(v *viper.Viper) DeepgramConfig {
	return DeepgramConfig{
		APIKey:  v.GetString("DEEPGRAM_API_KEY"),
		BaseURL: v.GetString("DEEPGRAM_BASE_URL"),
		Model:   v.GetString("DEEPGRAM_MODEL"),
	}
}

func whisperFromViper(v *viper.Viper) WhisperConfig {
	key := v.GetString("WHISPER_API_KEY")
	if key == "" {
		key = v.GetString("OPENAI_API_KEY")
	}
	return WhisperConfig{
		APIKey:  key,
		BaseURL: v.GetString("OPENAI_BASE_URL"),
		Model:   v.GetString("WHISPER_MODEL"),
	}
}

func translateFromViper(v *viper.Viper) TranslateConfig {
	return TranslateConfig{
		APIKey:  v.GetString("GOOGLE_TRANSLATE_API_KEY"),
		BaseURL: v.GetString("GOOGLE_TRANSLATE_BASE_URL"),
	}
}
