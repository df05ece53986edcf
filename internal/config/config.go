package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full service configuration, read from the environment.
type Config struct {
	App        AppConfig
	Deepgram   DeepgramConfig
	Whisper    WhisperConfig
	Translate  TranslateConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Pipeline   PipelineConfig
	Telemetry  TelemetryConfig
}

type PipelineConfig struct {
	MinTranscriptChars int
	ProviderTimeout    time.Duration
	STTTimeout         time.Duration
	ProviderRetries    uint64
	RetryInterval      time.Duration
	MaxAudioBytes      int64
	MockProviders      bool
}

type TelemetryConfig struct {
	OTLPEndpoint string
	Insecure     bool
}

// MissingCredentialsError lists every required credential that is not set.
type MissingCredentialsError struct {
	Keys []string
}

func (e *MissingCredentialsError) Error() string {
	return fmt.Sprintf("missing required credentials: %s", strings.Join(e.Keys, ", "))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "founder-assessment")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DEEPGRAM_BASE_URL", "https://api.deepgram.com")
	v.SetDefault("DEEPGRAM_MODEL", "nova-2")
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("WHISPER_MODEL", "whisper-1")
	v.SetDefault("GOOGLE_TRANSLATE_BASE_URL", "https://translation.googleapis.com")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1")
	v.SetDefault("OPENROUTER_MODEL", "openai/gpt-4o-mini")

	v.SetDefault("MIN_TRANSCRIPT_CHARS", 50)
	v.SetDefault("PROVIDER_TIMEOUT", 60*time.Second)
	v.SetDefault("STT_TIMEOUT", 120*time.Second)
	v.SetDefault("PROVIDER_RETRIES", 0)
	v.SetDefault("PROVIDER_RETRY_INTERVAL", 500*time.Millisecond)
	v.SetDefault("MAX_AUDIO_BYTES", 10*1024*1024)
	v.SetDefault("MOCK_PROVIDERS", false)

	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", true)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// Load reads the configuration from the process environment. Call
// godotenv.Load beforehand when a .env file should be honoured.
func Load() *Config {
	return fromViper(newViper())
}

func fromViper(v *viper.Viper) *Config {
	retries := v.GetInt("PROVIDER_RETRIES")
	if retries < 0 {
		retries = 0
	}
	return &Config{
		App:        appFromViper(v),
		Deepgram:   deepgramFromViper(v),
		Whisper:    whisperFromViper(v),
		Translate:  translateFromViper(v),
		OpenAI:     openAIFromViper(v),
		Gemini:     geminiFromViper(v),
		OpenRouter: openRouterFromViper(v),
		Pipeline: PipelineConfig{
			MinTranscriptChars: v.GetInt("MIN_TRANSCRIPT_CHARS"),
			ProviderTimeout:    v.GetDuration("PROVIDER_TIMEOUT"),
			STTTimeout:         v.GetDuration("STT_TIMEOUT"),
			ProviderRetries:    uint64(retries),
			RetryInterval:      v.GetDuration("PROVIDER_RETRY_INTERVAL"),
			MaxAudioBytes:      v.GetInt64("MAX_AUDIO_BYTES"),
			MockProviders:      v.GetBool("MOCK_PROVIDERS"),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
			Insecure:     v.GetBool("OTEL_EXPORTER_OTLP_INSECURE"),
		},
	}
}

// MissingCredentials returns the env keys of required providers that have no
// credential. Translation and quick insights are optional stages and are
// never reported here.
func (c *Config) MissingCredentials() []string {
	if c.Pipeline.MockProviders {
		return nil
	}
	var missing []string
	if c.Deepgram.APIKey == "" {
		missing = append(missing, "DEEPGRAM_API_KEY")
	}
	if c.Whisper.APIKey == "" {
		missing = append(missing, "WHISPER_API_KEY (or OPENAI_API_KEY)")
	}
	if c.Gemini.APIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if c.OpenRouter.APIKey == "" {
		missing = append(missing, "OPENROUTER_API_KEY")
	}
	return missing
}

// Validate fails with a *MissingCredentialsError when required credentials are missing.
func (c *Config) Validate() error {
	if missing := c.MissingCredentials(); len(missing) > 0 {
		return &MissingCredentialsError{Keys: missing}
	}
	if c.Pipeline.MinTranscriptChars < 0 {
		return fmt.Errorf("MIN_TRANSCRIPT_CHARS must not be negative, got %d", c.Pipeline.MinTranscriptChars)
	}
	return nil
}
