package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fadilmartias/founder-assessment/internal/usecase"
)

// Exit codes for different failure modes
const (
	ExitSuccess        = 0
	ExitPipelineFailed = 1 // the interview was rejected or a required stage failed
	ExitError          = 2 // configuration or runtime error
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var pe *usecase.PipelineError
	if errors.As(err, &pe) && pe.Kind != usecase.KindFatal {
		return ExitPipelineFailed
	}
	return ExitError
}
