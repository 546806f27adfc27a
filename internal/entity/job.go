package entity

import (
	"encoding/json"
	"strings"
	"time"
)

// JobStatus is the lifecycle state of an actor run as reported by the platform.
type JobStatus string

const (
	StatusReady     JobStatus = "READY"
	StatusRunning   JobStatus = "RUNNING"
	StatusSucceeded JobStatus = "SUCCEEDED"
	StatusFailed    JobStatus = "FAILED"
	StatusTimedOut  JobStatus = "TIMED-OUT"
	StatusAborted   JobStatus = "ABORTED"

	// StatusUnknown replaces any value the platform sends that is not one of the above.
	StatusUnknown JobStatus = "UNKNOWN"
)

// ParseJobStatus never fails: unrecognized input maps to StatusUnknown.
func ParseJobStatus(s string) JobStatus {
	switch st := JobStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusReady, StatusRunning, StatusSucceeded, StatusFailed, StatusTimedOut, StatusAborted:
		return st
	default:
		return StatusUnknown
	}
}

func (s *JobStatus) UnmarshalJSON(b []byte) error {
	var raw *string
	if err := json.Unmarshal(b, &raw); err != nil {
		*s = StatusUnknown
		return nil
	}
	if raw == nil {
		*s = StatusUnknown
		return nil
	}
	*s = ParseJobStatus(*raw)
	return nil
}

// Terminal reports whether the run can no longer change state.
func (s JobStatus) Terminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusTimedOut, StatusAborted:
		return true
	default:
		return false
	}
}

// DisplayStatus is the coarse status shown next to a run in the dashboard.
type DisplayStatus string

const (
	DisplayCompleted DisplayStatus = "completed"
	DisplayRunning   DisplayStatus = "running"
	DisplayPending   DisplayStatus = "pending"
	DisplayFailed    DisplayStatus = "failed"
)

func (s JobStatus) Display() DisplayStatus {
	switch s {
	case StatusSucceeded:
		return DisplayCompleted
	case StatusRunning:
		return DisplayRunning
	case StatusFailed, StatusAborted, StatusTimedOut:
		return DisplayFailed
	default:
		return DisplayPending
	}
}

// Job is one run of the scraping actor. It is a read-only snapshot.
type Job struct {
	ID                     string          `json:"id"`
	ActorID                string          `json:"actId"`
	UserID                 string          `json:"userId,omitempty"`
	Status                 JobStatus       `json:"status"`
	StartedAt              time.Time       `json:"startedAt"`
	FinishedAt             *time.Time      `json:"finishedAt,omitempty"`
	DefaultDatasetID       string          `json:"defaultDatasetId"`
	DefaultKeyValueStoreID string          `json:"defaultKeyValueStoreId,omitempty"`
	BuildNumber            string          `json:"buildNumber,omitempty"`
	ExitCode               *int            `json:"exitCode,omitempty"`
	Stats                  json.RawMessage `json:"stats,omitempty"`
}

const displayNameLayout = "Jan 2, 15:04"

// DisplayName is the label the dashboard uses for a run, e.g. "Run Mar 4, 09:30".
func (j Job) DisplayName() string {
	return "Run " + j.StartedAt.Format(displayNameLayout)
}

// DownloadFilename suggests a file name for an export of the run's dataset.
func (j Job) DownloadFilename(format ExportFormat) string {
	return strings.Join(strings.Fields(j.DisplayName()), "_") + "." + string(format)
}
