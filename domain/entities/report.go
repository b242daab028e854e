package entities

import (
	"time"
)

// OutcomeStatus is the result of one initialization attempt.
type OutcomeStatus string

const (
	// OutcomeSuccess indicates the entry point returned without a fault.
	OutcomeSuccess OutcomeStatus = "success"

	// OutcomeFailure indicates the entry point faulted. The fault was captured
	// and did not affect other mount points.
	OutcomeFailure OutcomeStatus = "failure"
)

// Outcome records a single initialization attempt.
type Outcome struct {
	// Error holds the captured fault when Status is OutcomeFailure.
	Error *ErrorDetail `json:"error,omitempty"`

	Mount    MountPoint    `json:"mount"`
	Status   OutcomeStatus `json:"status"`
	Duration time.Duration `json:"duration"`
}

// IsSuccess returns true if the attempt succeeded.
func (o Outcome) IsSuccess() bool {
	return o.Status == OutcomeSuccess
}

// Report is the accumulated result of a dispatcher run.
// Outcomes are stored in document order, one per attempted mount point.
type Report struct {
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Outcomes   []Outcome `json:"outcomes"`
	State      RunState  `json:"state"`
}

// Attempted returns the number of initialization attempts.
func (r *Report) Attempted() int {
	return len(r.Outcomes)
}

// Succeeded returns the number of attempts that completed without a fault.
func (r *Report) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.IsSuccess() {
			n++
		}
	}
	return n
}

// Failed returns the number of attempts that faulted.
func (r *Report) Failed() int {
	return r.Attempted() - r.Succeeded()
}

// Faults returns the failed outcomes in document order.
func (r *Report) Faults() []Outcome {
	var faults []Outcome
	for _, o := range r.Outcomes {
		if !o.IsSuccess() {
			faults = append(faults, o)
		}
	}
	return faults
}

// Duration returns the wall time of the run.
func (r *Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
