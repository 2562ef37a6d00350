package models

import "time"

// DefaultInterviewDuration applies when a round is created without one.
const DefaultInterviewDuration = 60

// InterviewRound is one ordered round of an application's interview process.
type InterviewRound struct {
	ID               string          `json:"id"`
	ApplicationID    string          `json:"application_id"`
	RoundNumber      int             `json:"round_number"`
	Type             InterviewType   `json:"type"`
	InterviewerName  string          `json:"interviewer_name"`
	InterviewerEmail string          `json:"interviewer_email"`
	ScheduledDate    time.Time       `json:"scheduled_date"`
	DurationMinutes  int             `json:"duration_minutes"`
	Location         string          `json:"location"`
	Status           InterviewStatus `json:"status"`
	Feedback         string          `json:"feedback"`
	Notes            string          `json:"notes"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// UpcomingInterview joins a round with its application's position and company.
type UpcomingInterview struct {
	Round         InterviewRound `json:"round"`
	PositionTitle string         `json:"position_title"`
	CompanyName   string         `json:"company_name"`
}

// ApplicationNote is a timestamped free-text note on an application.
type ApplicationNote struct {
	ID            string    `json:"id"`
	ApplicationID string    `json:"application_id"`
	Note          string    `json:"note"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
