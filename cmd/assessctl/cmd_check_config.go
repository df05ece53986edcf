package main

import (
	"fmt"
	"sort"

	"github.com/fadilmartias/founder-assessment/internal/config"
	"github.com/spf13/cobra"
)

func newCheckConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "Report which provider credentials are configured",
		Long: `Report which provider credentials are configured.

Exits non-zero when a required credential (speech-to-text or deep analysis)
is missing. Translation and quick insights are optional and only reported.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckConfig(cmd, config.Load())
		},
	}
}

func runCheckConfig(cmd *cobra.Command, cfg *config.Config) error {
	out := cmd.OutOrStdout()

	keys := map[string]bool{
		"DEEPGRAM_API_KEY":         cfg.Deepgram.APIKey != "",
		"WHISPER_API_KEY":          cfg.Whisper.APIKey != "",
		"GOOGLE_TRANSLATE_API_KEY": cfg.Translate.APIKey != "",
		"OPENAI_API_KEY":           cfg.OpenAI.APIKey != "",
		"GEMINI_API_KEY":           cfg.Gemini.APIKey != "",
		"OPENROUTER_API_KEY":       cfg.OpenRouter.APIKey != "",
	}
	names := make([]string, 0, len(keys))
	for k := range keys {
		names = append(names, k)
	}
	sort.Strings(names)

	for _, k := range names {
		state := "missing"
		if keys[k] {
			state = "set"
		}
		fmt.Fprintf(out, "%-26s %s\n", k, state)
	}
	if cfg.Pipeline.MockProviders {
		fmt.Fprintln(out, "MOCK_PROVIDERS is on, credentials are not required")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	fmt.Fprintln(out, "configuration OK")
	return nil
}
