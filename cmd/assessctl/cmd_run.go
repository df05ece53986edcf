package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fadilmartias/founder-assessment/internal/config"
	"github.com/fadilmartias/founder-assessment/internal/logger"
	"github.com/fadilmartias/founder-assessment/internal/model"
	"github.com/fadilmartias/founder-assessment/internal/observability"
	"github.com/fadilmartias/founder-assessment/internal/report"
	"github.com/fadilmartias/founder-assessment/internal/repository"
	"github.com/fadilmartias/founder-assessment/internal/service"
	"github.com/fadilmartias/founder-assessment/internal/usecase"
	"github.com/fadilmartias/founder-assessment/internal/util"
	"github.com/spf13/cobra"
)

type runOptions struct {
	founder  string
	company  string
	email    string
	phone    string
	textFile string
	audio    string
	language string
	format   string
	mock     bool
	verbose  bool
}

func newRunCommand() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Assess one founder interview and print the report",
		Long: `Assess one founder interview and print the report.

Pass either --audio with a recording or --text-file with typed answers.
Use "-" as the text file to read answers from stdin.

Examples:
  assessctl run --founder "Maya Chen" --company Churnless --email maya@churnless.io \
    --phone "+1 555 0100" --text-file answers.txt
  assessctl run --mock --audio interview.webm ...`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if opts.mock {
				cfg.Pipeline.MockProviders = true
			}
			return runAssessment(cmd, cfg, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.founder, "founder", "", "Founder name")
	f.StringVar(&opts.company, "company", "", "Company name")
	f.StringVar(&opts.email, "email", "", "Founder email")
	f.StringVar(&opts.phone, "phone", "", "Founder phone")
	f.StringVar(&opts.textFile, "text-file", "", "File with the typed interview answers, or - for stdin")
	f.StringVar(&opts.audio, "audio", "", "Audio recording of the interview")
	f.StringVar(&opts.language, "language", "", "Language of the typed answers (default en)")
	f.StringVar(&opts.format, "format", "text", "Output format: text | html")
	f.BoolVar(&opts.mock, "mock", false, "Use canned provider responses instead of calling vendors")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Log pipeline progress to stderr")
	cmd.MarkFlagsMutuallyExclusive("text-file", "audio")

	return cmd
}

func runAssessment(cmd *cobra.Command, cfg *config.Config, opts *runOptions) error {
	if opts.format != "text" && opts.format != "html" {
		return fmt.Errorf("unknown format %q, want text or html", opts.format)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.Discard()
	if opts.verbose {
		log = logger.New(cfg.App.Env, "debug")
		log.Logger.SetOutput(cmd.ErrOrStderr())
	}

	sub := model.Submission{
		FounderName:       opts.founder,
		CompanyName:       opts.company,
		Email:             opts.email,
		Phone:             opts.phone,
		RequestedLanguage: opts.language,
	}

	switch {
	case opts.audio != "":
		clip, cleanup, err := util.SpoolFile(opts.audio, cfg.Pipeline.MaxAudioBytes, log.Entry)
		defer cleanup()
		if err != nil {
			return err
		}
		sub.InputMode = model.InputModeVoice
		sub.Audio = clip
	case opts.textFile != "":
		text, err := readText(cmd, opts.textFile)
		if err != nil {
			return err
		}
		sub.InputMode = model.InputModeText
		sub.TextContent = text
	default:
		return errors.New("one of --audio or --text-file is required")
	}

	services, err := service.NewSet(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	uc := usecase.NewAssessmentUsecase(
		services,
		repository.NewMemoryReportRepository(),
		usecase.OptionsFromConfig(cfg.Pipeline),
		log,
		observability.Global(),
	)

	res, err := uc.Process(cmd.Context(), sub)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.format == "html" {
		page, err := report.RenderHTML(*res.Report)
		if err != nil {
			return err
		}
		_, err = out.Write(page)
		return err
	}

	fmt.Fprintln(out, res.RenderedText)
	if len(res.Degraded) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "degraded stages: %s\n", strings.Join(res.Degraded, ", "))
	}
	return nil
}

func readText(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read text file: %w", err)
	}
	return string(data), nil
}
