package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var credentialKeys = []string{
	"DEEPGRAM_API_KEY", "WHISPER_API_KEY", "OPENAI_API_KEY", "GOOGLE_TRANSLATE_API_KEY",
	"GEMINI_API_KEY", "OPENROUTER_API_KEY", "MOCK_PROVIDERS",
}

// clearEnv blanks every key the tests care about. Empty values read as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range credentialKeys {
		t.Setenv(k, "")
	}
	for _, k := range []string{"APP_ENV", "PORT", "MIN_TRANSCRIPT_CHARS", "PROVIDER_TIMEOUT", "STT_TIMEOUT", "PROVIDER_RETRIES", "PROVIDER_RETRY_INTERVAL", "MAX_AUDIO_BYTES", "OPENAI_BASE_URL"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, ":8080", cfg.App.Addr())
	assert.False(t, cfg.App.IsProduction())
	assert.Equal(t, "nova-2", cfg.Deepgram.Model)
	assert.Equal(t, "whisper-1", cfg.Whisper.Model)
	assert.Equal(t, "https://api.openai.com/v1", cfg.Whisper.BaseURL)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.OpenRouter.BaseURL)
	assert.Equal(t, 50, cfg.Pipeline.MinTranscriptChars)
	assert.Equal(t, 60*time.Second, cfg.Pipeline.ProviderTimeout)
	assert.Equal(t, 120*time.Second, cfg.Pipeline.STTTimeout)
	assert.Equal(t, uint64(0), cfg.Pipeline.ProviderRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.Pipeline.RetryInterval)
	assert.Equal(t, int64(10*1024*1024), cfg.Pipeline.MaxAudioBytes)
	assert.False(t, cfg.Pipeline.MockProviders)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("MIN_TRANSCRIPT_CHARS", "120")
	t.Setenv("PROVIDER_TIMEOUT", "5s")
	t.Setenv("STT_TIMEOUT", "2m")
	t.Setenv("PROVIDER_RETRIES", "2")
	t.Setenv("PROVIDER_RETRY_INTERVAL", "250ms")
	t.Setenv("MAX_AUDIO_BYTES", "2048")

	cfg := Load()

	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, ":9000", cfg.App.Addr())
	assert.Equal(t, 120, cfg.Pipeline.MinTranscriptChars)
	assert.Equal(t, 5*time.Second, cfg.Pipeline.ProviderTimeout)
	assert.Equal(t, 2*time.Minute, cfg.Pipeline.STTTimeout)
	assert.Equal(t, uint64(2), cfg.Pipeline.ProviderRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.Pipeline.RetryInterval)
	assert.Equal(t, int64(2048), cfg.Pipeline.MaxAudioBytes)
}

func TestLoad_NegativeRetriesClamp(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROVIDER_RETRIES", "-3")

	assert.Equal(t, uint64(0), Load().Pipeline.ProviderRetries)
}

func TestLoad_WhisperKeyFallsBackToOpenAI(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-openai")

	cfg := Load()
	assert.Equal(t, "sk-openai", cfg.Whisper.APIKey)
	assert.Equal(t, "sk-openai", cfg.OpenAI.APIKey)

	t.Setenv("WHISPER_API_KEY", "sk-whisper")
	assert.Equal(t, "sk-whisper", Load().Whisper.APIKey)
}

func TestMissingCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEEPGRAM_API_KEY", "dg")
	t.Setenv("GEMINI_API_KEY", "gm")

	cfg := Load()

	assert.Equal(t, []string{"WHISPER_API_KEY (or OPENAI_API_KEY)", "OPENROUTER_API_KEY"}, cfg.MissingCredentials())

	err := cfg.Validate()
	var missing *MissingCredentialsError
	require.ErrorAs(t, err, &missing)
	assert.EqualError(t, err, "missing required credentials: WHISPER_API_KEY (or OPENAI_API_KEY), OPENROUTER_API_KEY")
}

func TestMissingCredentials_OptionalStagesNotRequired(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEEPGRAM_API_KEY", "dg")
	t.Setenv("WHISPER_API_KEY", "wh")
	t.Setenv("GEMINI_API_KEY", "gm")
	t.Setenv("OPENROUTER_API_KEY", "or")

	cfg := Load()

	assert.Empty(t, cfg.MissingCredentials())
	assert.NoError(t, cfg.Validate())
	assert.Empty(t, cfg.Translate.APIKey)
}

func TestValidate_MockSkipsCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("MOCK_PROVIDERS", "true")

	cfg := Load()

	assert.True(t, cfg.Pipeline.MockProviders)
	assert.Nil(t, cfg.MissingCredentials())
	assert.NoError(t, cfg.Validate())
}

func TestValidate_NegativeMinimum(t *testing.T) {
	cfg := &Config{Pipeline: PipelineConfig{MockProviders: true, MinTranscriptChars: -1}}
	assert.Error(t, cfg.Validate())
}
