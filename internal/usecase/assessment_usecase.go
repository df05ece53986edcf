package usecase

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fadilmartias/founder-assessment/internal/config"
	"github.com/fadilmartias/founder-assessment/internal/fallback"
	"github.com/fadilmartias/founder-assessment/internal/language"
	"github.com/fadilmartias/founder-assessment/internal/logger"
	"github.com/fadilmartias/founder-assessment/internal/model"
	"github.com/fadilmartias/founder-assessment/internal/observability"
	"github.com/fadilmartias/founder-assessment/internal/report"
	"github.com/fadilmartias/founder-assessment/internal/repository"
	"github.com/fadilmartias/founder-assessment/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Options struct {
	MinTranscriptChars int
	STTTimeout         time.Duration
	ProviderTimeout    time.Duration
	ProviderRetries    uint64
	RetryInterval      time.Duration
}

// OptionsFromConfig maps the pipeline settings onto orchestrator options.
func OptionsFromConfig(cfg config.PipelineConfig) Options {
	return Options{
		MinTranscriptChars: cfg.MinTranscriptChars,
		STTTimeout:         cfg.STTTimeout,
		ProviderTimeout:    cfg.ProviderTimeout,
		ProviderRetries:    cfg.ProviderRetries,
		RetryInterval:      cfg.RetryInterval,
	}
}

// Result is what a successful run hands back to the caller.
type Result struct {
	ReportID         string
	RenderedText     string
	DetectedLanguage string
	Degraded         []string
	Report           *model.Report
}

type AssessmentUsecase struct {
	services  service.Set
	repo      repository.ReportRepository
	opts      Options
	validate  *validator.Validate
	log       *logger.Logger
	telemetry *observability.Telemetry
	now       func() time.Time
}

func NewAssessmentUsecase(services service.Set, repo repository.ReportRepository, opts Options, log *logger.Logger, telemetry *observability.Telemetry) *AssessmentUsecase {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	if log == nil {
		log = logger.Discard()
	}
	if telemetry == nil {
		telemetry = observability.Global()
	}
	return &AssessmentUsecase{
		services:  services,
		repo:      repo,
		opts:      opts,
		validate:  validate,
		log:       log.Component("pipeline"),
		telemetry: telemetry,
		now:       time.Now,
	}
}

// run carries per-request state through the stages.
type run struct {
	sub        model.Submission
	state      State
	log        *logrus.Entry
	transcript *model.TranscriptionResult
	bundle     model.AnalysisBundle
}

func (r *run) advance(to State) {
	r.log.WithFields(logrus.Fields{"from": r.state, "to": to}).Debug("pipeline transition")
	r.state = to
}

// Process runs a submission through every stage and stores the resulting
// report. Nothing is stored when it returns an error, which is always a
// *PipelineError.
func (uc *AssessmentUsecase) Process(ctx context.Context, sub model.Submission) (res *Result, err error) {
	started := uc.now()
	r := &run{sub: sub, state: StateReceived, log: logger.FromContext(ctx, uc.log.Entry).WithField("mode", sub.Mode())}

	ctx, span := uc.telemetry.StartStage(ctx, "process")
	defer func() {
		if p := recover(); p != nil {
			err = fatalError(r.state, fmt.Errorf("panic: %v", p))
			res = nil
		}
		outcome := string(StateReported)
		if err != nil {
			outcome = string(StateErrored)
			uc.logFailure(r, err)
		}
		uc.telemetry.RecordRun(ctx, outcome)
		observability.EndSpan(span, err)
	}()

	if err := uc.validateSubmission(ctx, r); err != nil {
		return nil, err
	}
	if err := uc.transcribe(ctx, r); err != nil {
		return nil, err
	}
	uc.translate(ctx, r)
	uc.quickInsights(ctx, r)
	if err := uc.deepAnalysis(ctx, r); err != nil {
		return nil, err
	}
	return uc.assemble(ctx, r, started)
}

func (uc *AssessmentUsecase) logFailure(r *run, err error) {
	entry := r.log.WithField("state", r.state).WithError(err)
	var pe *PipelineError
	if errors.As(err, &pe) && pe.Kind == KindValidation {
		entry.Warn("submission rejected")
		return
	}
	entry.Error("pipeline failed")
}

func (uc *AssessmentUsecase) validateSubmission(ctx context.Context, r *run) error {
	_, span := uc.telemetry.StartStage(ctx, "validate")
	var err error
	defer func() { observability.EndSpan(span, err) }()

	if verr := uc.validate.Struct(r.sub); verr != nil {
		err = validationError(r.state, missingFieldsMessage(verr), verr)
		return err
	}

	switch r.sub.Mode() {
	case model.InputModeVoice:
		if r.sub.Audio.Empty() {
			err = validationError(r.state, MsgNoAudio, errors.New("audio upload is empty"))
			return err
		}
	default:
		if strings.TrimSpace(r.sub.TextContent) == "" {
			err = validationError(r.state, MsgMissingInput, errors.New("neither audio nor text content supplied"))
			return err
		}
	}

	r.advance(StateValidated)
	return nil
}

func missingFieldsMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return MsgMissingFields
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "oneof" {
			return fmt.Sprintf("Invalid %s: must be voice or text", fe.Field())
		}
		fields = append(fields, fe.Field())
	}
	return fmt.Sprintf("%s: %s", MsgMissingFields, strings.Join(fields, ", "))
}

func (uc *AssessmentUsecase) transcribe(ctx context.Context, r *run) error {
	ctx, span := uc.telemetry.StartStage(ctx, "transcribe")
	var err error
	defer func() { observability.EndSpan(span, err) }()

	if r.sub.Mode() == model.InputModeText {
		r.transcript = &model.TranscriptionResult{
			Transcript:        r.sub.TextContent,
			LanguageCode:      languageOrEnglish(r.sub.RequestedLanguage),
			ConfidencePercent: 100,
		}
	} else {
		clip := r.sub.Audio
		var attempts []fallback.Attempt[*model.TranscriptionResult]
		for _, stt := range []service.TranscriptionServiceInterface{uc.services.PrimarySTT, uc.services.FallbackSTT} {
			if stt == nil {
				continue
			}
			attempts = append(attempts, attempt(uc.telemetry, "transcribe", stt, func(ctx context.Context) (*model.TranscriptionResult, error) {
				return stt.Transcribe(ctx, clip)
			}))
		}
		result, provider, ferr := fallback.First(ctx, uc.policy("transcribe", uc.opts.STTTimeout, r.log), attempts...)
		if ferr != nil {
			err = providerError(r.state, MsgTranscriptionFailed, ferr)
			return err
		}
		result.Provider = provider
		result.LanguageCode = languageOrEnglish(result.LanguageCode)
		r.transcript = result
		r.log.WithFields(logrus.Fields{
			"provider":   provider,
			"language":   result.LanguageCode,
			"confidence": result.ConfidencePercent,
		}).Info("transcription complete")
	}

	if n := utf8.RuneCountInString(strings.TrimSpace(r.transcript.Transcript)); n < uc.opts.MinTranscriptChars {
		err = validationError(r.state, MsgTranscriptTooShort,
			fmt.Errorf("transcript has %d characters, minimum is %d", n, uc.opts.MinTranscriptChars))
		return err
	}

	r.advance(StateTranscribed)
	return nil
}

func languageOrEnglish(code string) string {
	if code = language.Normalize(code); code == "" {
		return language.English
	}
	return code
}

// translate never fails the run. On any problem the original transcript is used.
func (uc *AssessmentUsecase) translate(ctx context.Context, r *run) {
	ctx, span := uc.telemetry.StartStage(ctx, "translate")
	defer func() { observability.EndSpan(span, nil) }()

	r.bundle.EnglishTranscript = r.transcript.Transcript
	defer r.advance(StateTranslated)

	source := r.transcript.LanguageCode
	if language.IsEnglish(source) {
		return
	}

	tr := uc.services.Translator
	if tr == nil || !tr.Configured() {
		uc.degrade(ctx, r, DegradedTranslation, service.ErrNotConfigured)
		return
	}

	translated, _, err := fallback.First(ctx, uc.policy("translate", uc.opts.ProviderTimeout, r.log),
		attempt(uc.telemetry, "translate", tr, func(ctx context.Context) (string, error) {
			return tr.TranslateToEnglish(ctx, r.transcript.Transcript, source)
		}))
	if err != nil {
		uc.degrade(ctx, r, DegradedTranslation, err)
		return
	}
	r.bundle.EnglishTranscript = translated
}

// quickInsights never fails the run. On any problem insights stay empty.
func (uc *AssessmentUsecase) quickInsights(ctx context.Context, r *run) {
	ctx, span := uc.telemetry.StartStage(ctx, "quick_insights")
	defer func() { observability.EndSpan(span, nil) }()
	defer r.advance(StateQuickInsighted)

	qi := uc.services.Insights
	if qi == nil || !qi.Configured() {
		uc.degrade(ctx, r, DegradedQuickInsights, service.ErrNotConfigured)
		return
	}

	result, _, err := fallback.First(ctx, uc.policy("quick_insights", uc.opts.ProviderTimeout, r.log),
		attempt(uc.telemetry, "quick_insights", qi, func(ctx context.Context) (*model.AnalysisResult, error) {
			return qi.QuickInsights(ctx, r.bundle.EnglishTranscript)
		}))
	if err != nil {
		uc.degrade(ctx, r, DegradedQuickInsights, err)
		return
	}
	r.bundle.QuickInsights = result.Text
}

func (uc *AssessmentUsecase) deepAnalysis(ctx context.Context, r *run) error {
	ctx, span := uc.telemetry.StartStage(ctx, "deep_analysis")
	var err error
	defer func() { observability.EndSpan(span, err) }()

	req := service.AnalysisRequest{
		FounderName:       r.sub.FounderName,
		CompanyName:       r.sub.CompanyName,
		EnglishTranscript: r.bundle.EnglishTranscript,
		QuickInsights:     r.bundle.QuickInsights,
		DetectedLanguage:  language.DisplayName(r.transcript.LanguageCode),
	}

	var attempts []fallback.Attempt[*model.AnalysisResult]
	for _, an := range []service.AnalysisServiceInterface{uc.services.PrimaryAnalysis, uc.services.FallbackAnalysis} {
		if an == nil {
			continue
		}
		attempts = append(attempts, attempt(uc.telemetry, "deep_analysis", an, func(ctx context.Context) (*model.AnalysisResult, error) {
			return an.DeepAnalysis(ctx, req)
		}))
	}

	result, provider, ferr := fallback.First(ctx, uc.policy("deep_analysis", uc.opts.ProviderTimeout, r.log), attempts...)
	if ferr != nil {
		err = providerError(r.state, MsgAnalysisFailed, ferr)
		return err
	}
	r.bundle.DeepAnalysis = result.Text
	r.bundle.AnalysisProvider = provider
	r.log.WithFields(logrus.Fields{"provider": provider, "model": result.Model}).Info("deep analysis complete")

	r.advance(StateDeepAnalyzed)
	return nil
}

func (uc *AssessmentUsecase) assemble(ctx context.Context, r *run, started time.Time) (*Result, error) {
	ctx, span := uc.telemetry.StartStage(ctx, "report")
	var err error
	defer func() { observability.EndSpan(span, err) }()

	createdAt := uc.now()
	rep := &model.Report{
		ID:                    NewReportID(createdAt),
		FounderName:           r.sub.FounderName,
		CompanyName:           r.sub.CompanyName,
		Email:                 r.sub.Email,
		Phone:                 r.sub.Phone,
		InputMode:             r.sub.Mode(),
		Transcript:            r.transcript.Transcript,
		EnglishTranscript:     r.bundle.EnglishTranscript,
		LanguageCode:          r.transcript.LanguageCode,
		DetectedLanguage:      language.DisplayName(r.transcript.LanguageCode),
		QuickInsights:         r.bundle.QuickInsights,
		DeepAnalysis:          r.bundle.DeepAnalysis,
		TranscriptionProvider: r.transcript.Provider,
		AnalysisProvider:      r.bundle.AnalysisProvider,
		Degraded:              r.bundle.Degraded,
		CreatedAt:             createdAt,
	}
	rep.RenderedText = report.Render(*rep)
	rep.ProcessingTimeMs = uc.now().Sub(started).Milliseconds()

	if serr := uc.repo.Save(ctx, rep); serr != nil {
		err = fatalError(r.state, fmt.Errorf("save report: %w", serr))
		return nil, err
	}
	span.SetAttributes(observability.ReportIDAttr(rep.ID))

	r.advance(StateReported)
	r.log.WithFields(logrus.Fields{
		"report_id":          rep.ID,
		"processing_time_ms": rep.ProcessingTimeMs,
		"degraded":           rep.Degraded,
	}).Info("report stored")

	return &Result{
		ReportID:         rep.ID,
		RenderedText:     rep.RenderedText,
		DetectedLanguage: rep.DetectedLanguage,
		Degraded:         rep.Degraded,
		Report:           rep.Clone(),
	}, nil
}

func (uc *AssessmentUsecase) degrade(ctx context.Context, r *run, stage string, cause error) {
	r.bundle.Degraded = append(r.bundle.Degraded, stage)
	uc.telemetry.RecordDegraded(ctx, stage)
	r.log.WithField("stage", stage).WithError(cause).Warn("stage degraded, continuing")
}

func (uc *AssessmentUsecase) policy(stage string, timeout time.Duration, log *logrus.Entry) fallback.Policy {
	return fallback.Policy{
		Timeout:         timeout,
		Retries:         uc.opts.ProviderRetries,
		InitialInterval: uc.opts.RetryInterval,
		OnFailure: func(name string, err error) {
			uc.telemetry.RecordProviderFailure(context.Background(), stage, name)
			log.WithFields(logrus.Fields{"stage": stage, "provider": name}).WithError(err).Warn("provider attempt failed")
		},
	}
}

// attempt wraps an adapter call in a provider span.
func attempt[T any](tel *observability.Telemetry, stage string, a service.Adapter, call func(ctx context.Context) (T, error)) fallback.Attempt[T] {
	name := a.Name()
	return fallback.Attempt[T]{
		Name: name,
		Call: func(ctx context.Context) (T, error) {
			ctx, span := tel.StartAttempt(ctx, stage, name)
			v, err := call(ctx)
			observability.EndSpan(span, err)
			return v, err
		},
	}
}

// GetReport returns a stored report or repository.ErrReportNotFound.
func (uc *AssessmentUsecase) GetReport(ctx context.Context, id string) (*model.Report, error) {
	return uc.repo.FindByID(ctx, id)
}

// Health reports, per provider, whether a credential is present.
func (uc *AssessmentUsecase) Health() map[string]bool {
	out := make(map[string]bool)
	for _, a := range uc.services.All() {
		if a == nil {
			continue
		}
		out[a.Name()] = a.Configured()
	}
	return out
}

// NewReportID is "RPT", the unix millisecond timestamp, then six hex chars.
func NewReportID(at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return "RPT" + strconv.FormatInt(at.UnixMilli(), 10) + suffix
}
