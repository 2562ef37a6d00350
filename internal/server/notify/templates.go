package notify

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	"text/template"
	"time"

	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
)

//go:embed templates/*
var templateFS embed.FS

const (
	tmplInterviewReminder = "interview_reminder.txt"
	tmplStatusUpdate      = "status_update.txt"
	tmplDeadlineReminder  = "deadline_reminder.txt"
	tmplHRText            = "hr_application.txt"
	tmplHRHTML            = "hr_application.html"
)

var funcs = map[string]any{
	"date":     formatDate,
	"datetime": formatDateTime,
}

var (
	textTemplates = template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.txt"))
	htmlTemplates = htmltemplate.Must(htmltemplate.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
)

// mailContext is the data every template renders against.
type mailContext struct {
	User           models.User
	UserName       string
	Application    models.JobApplication
	Position       models.JobPosition
	Company        models.Company
	PositionTitle  string
	CompanyName    string
	CurrentDate    time.Time
	Round          models.InterviewRound
	OldStatus      string
	NewStatus      string
	HRName         string
	CustomMessage  string
	HasResume      bool
	HasCoverLetter bool
}

func newMailContext(c models.ApplicationContext, now time.Time) mailContext {
	return mailContext{
		User:          c.User,
		UserName:      c.User.DisplayName(),
		Application:   c.Application,
		Position:      c.Position,
		Company:       c.Company,
		PositionTitle: c.Position.Title,
		CompanyName:   c.Company.Name,
		CurrentDate:   now,
	}
}

func renderText(name string, data mailContext) (string, error) {
	var buf bytes.Buffer
	if err := textTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderHTML(name string, data mailContext) (string, error) {
	var buf bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatDate(v any) string {
	switch t := v.(type) {
	case time.Time:
		return t.Format("January 2, 2006")
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.Format("January 2, 2006")
	}
	return ""
}

func formatDateTime(v any) string {
	switch t := v.(type) {
	case time.Time:
		return t.Format("Monday, January 2, 2006 at 15:04 MST")
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.Format("Monday, January 2, 2006 at 15:04 MST")
	}
	return ""
}
