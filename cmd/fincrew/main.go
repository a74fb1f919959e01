package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess = 0 // Command completed
	ExitRequest = 1 // The pipeline ran but failed to produce a report
	ExitError   = 2 // Configuration or runtime error
)

// RequestFailureError indicates that startup succeeded but the question
// pipeline itself failed (provider error, tool loop exhausted, ...).
type RequestFailureError struct {
	Message string
}

func (e *RequestFailureError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var reqErr *RequestFailureError
		if errors.As(err, &reqErr) {
			os.Exit(ExitRequest)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
