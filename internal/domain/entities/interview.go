package entities

import "time"

// InterviewStatus is the scheduling state of a candidate interview. It is
// derived by the workflow engine; this service only renders it.
type InterviewStatus string

const (
	InterviewTooEarly InterviewStatus = "too_early"
	InterviewActive   InterviewStatus = "active"
	InterviewExpired  InterviewStatus = "expired"
)

// IsValid checks the status is one the workflow engine can return
func (s InterviewStatus) IsValid() bool {
	switch s {
	case InterviewTooEarly, InterviewActive, InterviewExpired:
		return true
	}
	return false
}

// InterviewSession is the view model for one scheduled interview, keyed
// upstream by (eventId, email). Field names follow the workflow wire format.
type InterviewSession struct {
	FirstName     string          `json:"firstName"`
	EventName     string          `json:"eventName"`
	ScheduledTime string          `json:"scheduled_time"` // ISO timestamp
	Status        InterviewStatus `json:"interview_status"`

	// Present only when Status == too_early.
	TimeUntilStartMs int64 `json:"time_until_start_ms,omitempty"`

	// Present only when Status == active.
	TimeRemainingMins int `json:"time_remaining_mins,omitempty"`
}

// CountdownSeconds returns the whole seconds until the scheduled start,
// clamped at zero. Meaningful only for too_early sessions.
func (s *InterviewSession) CountdownSeconds() int64 {
	secs := s.TimeUntilStartMs / 1000
	if secs < 0 {
		return 0
	}
	return secs
}

// SyntheticTestSession manufactures an active session for test mode. The
// schedule check is bypassed entirely; no workflow call is made.
func SyntheticTestSession(email string, now time.Time) *InterviewSession {
	first := email
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			first = email[:i]
			break
		}
	}
	return &InterviewSession{
		FirstName:         first,
		EventName:         "Interview (Test Mode)",
		ScheduledTime:     now.UTC().Format(time.RFC3339),
		Status:            InterviewActive,
		TimeRemainingMins: 30,
	}
}
