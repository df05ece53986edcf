package usecase

import "fmt"

// State is a step of the assessment pipeline. Reported and Errored are terminal.
type State string

const (
	StateReceived       State = "received"
	StateValidated      State = "validated"
	StateTranscribed    State = "transcribed"
	StateTranslated     State = "translated"
	StateQuickInsighted State = "quick_insighted"
	StateDeepAnalyzed   State = "deep_analyzed"
	StateReported       State = "reported"
	StateErrored        State = "errored"
)

type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindProvider   ErrorKind = "provider"
	KindFatal      ErrorKind = "fatal"
)

// Degraded stage names recorded on reports.
const (
	DegradedTranslation   = "translation"
	DegradedQuickInsights = "quick_insights"
)

// User-facing failure messages.
const (
	MsgMissingFields       = "Missing required fields"
	MsgNoAudio             = "No audio file received"
	MsgMissingInput        = "No interview content received. Please record your answers or type them in the text field."
	MsgTranscriptTooShort  = "Transcript too short. Please speak for at least 30 seconds or give more detail in your answers."
	MsgTranscriptionFailed = "Transcription failed. Please try again with a clearer recording."
	MsgAnalysisFailed      = "Analysis failed. Our analysis providers are unavailable, please try again later."
	MsgInternal            = "Failed to process interview"
)

// PipelineError ends a run in the Errored state. Message is safe to show
// to the caller, Cause is operator detail.
type PipelineError struct {
	State   State
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *PipelineError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s (%s)", e.Message, e.State)
	}
	return fmt.Sprintf("%s (%s): %v", e.Message, e.State, e.Cause)
}

func (e *PipelineError) Unwrap() error { return e.Cause }

func validationError(state State, msg string, cause error) *PipelineError {
	return &PipelineError{State: state, Kind: KindValidation, Message: msg, Cause: cause}
}

func providerError(state State, msg string, cause error) *PipelineError {
	return &PipelineError{State: state, Kind: KindProvider, Message: msg, Cause: cause}
}

func fatalError(state State, cause error) *PipelineError {
	return &PipelineError{State: state, Kind: KindFatal, Message: MsgInternal, Cause: cause}
}
