package models

import (
	"time"

	"github.com/Shubham-musmade/interview-tracker/internal/timex"
)

// JobApplication tracks one user's application to one position.
type JobApplication struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	PositionID        string     `json:"position_id"`
	Status            Status     `json:"status"`
	Priority          Priority   `json:"priority"`
	Platform          Platform   `json:"platform"`
	PlatformURL       string     `json:"platform_url"`
	HREmail           string     `json:"hr_email"`
	HRName            string     `json:"hr_name"`
	HRPhone           string     `json:"hr_phone"`
	RecruiterEmail    string     `json:"recruiter_email"`
	RecruiterName     string     `json:"recruiter_name"`
	AppliedDate       *time.Time `json:"applied_date"`
	Deadline          *time.Time `json:"deadline"`
	ResumeID          *string    `json:"resume_id"`
	CoverLetterID     *string    `json:"cover_letter_id"`
	SenderEmailID     *string    `json:"sender_email_id"`
	Notes             string     `json:"notes"`
	SalaryExpectation *float64   `json:"salary_expectation"`
	EmailSent         bool       `json:"email_sent"`
	EmailSentDate     *time.Time `json:"email_sent_date"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// MarkSent records a successful email hand-off at now. A DRAFT application
// moves to APPLIED with today's date; any other status is left alone.
func (a *JobApplication) MarkSent(now time.Time) {
	a.EmailSent = true
	sent := now
	a.EmailSentDate = &sent
	if a.Status == StatusDraft {
		a.Status = StatusApplied
		day := timex.StartOfDay(now)
		a.AppliedDate = &day
	}
}

// ApplicationContext is an application together with the records needed to
// address and render mail about it.
type ApplicationContext struct {
	Application JobApplication `json:"application"`
	User        User           `json:"user"`
	Position    JobPosition    `json:"position"`
	Company     Company        `json:"company"`
}

// ApplicationDetail is the full read model of one application.
type ApplicationDetail struct {
	ApplicationContext
	Resume      *Document         `json:"resume"`
	CoverLetter *Document         `json:"cover_letter"`
	Sender      *UserEmail        `json:"sender"`
	Interviews  []InterviewRound  `json:"interviews"`
	Notes       []ApplicationNote `json:"notes"`
}

// ApplicationSummary is the list/statistics projection of an application.
type ApplicationSummary struct {
	ID            string     `json:"id"`
	Status        Status     `json:"status"`
	Priority      Priority   `json:"priority"`
	PositionTitle string     `json:"position_title"`
	CompanyID     string     `json:"company_id"`
	CompanyName   string     `json:"company_name"`
	Industry      string     `json:"industry"`
	AppliedDate   *time.Time `json:"applied_date"`
	Deadline      *time.Time `json:"deadline"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ApplicationFilter narrows List results. Empty fields match everything.
type ApplicationFilter struct {
	Search   string   `json:"search"`
	Status   Status   `json:"status"`
	Priority Priority `json:"priority"`
}
