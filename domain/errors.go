package domain

import (
	"errors"
	"fmt"
)

// ErrRunInProgress is returned when a second pipeline run is started
// while one is still active.
var ErrRunInProgress = errors.New("a pipeline run is already in progress")

// ValidationError reports a missing or malformed input detected before
// any remote call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ServiceError reports a failed call to a remote service, either a
// transport failure or a non-success response.
type ServiceError struct {
	Service    string
	StatusCode int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s returned status %d: %v", e.Service, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s request failed: %v", e.Service, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// TimeoutError reports an async job that did not reach a terminal state
// within the configured number of polls.
type TimeoutError struct {
	JobID    string
	Attempts int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("job %s still processing after %d polls", e.JobID, e.Attempts)
}

// StageError wraps any failure with the pipeline stage it occurred in.
type StageError struct {
	Stage PipelineStage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// PersistenceWarning marks the non-fatal failure of recording an already
// produced video against the user's account.
type PersistenceWarning struct {
	Err error
}

func (e *PersistenceWarning) Error() string {
	return fmt.Sprintf("video produced but not recorded: %v", e.Err)
}

func (e *PersistenceWarning) Unwrap() error {
	return e.Err
}
