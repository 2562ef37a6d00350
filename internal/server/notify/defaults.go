package notify

import (
	"fmt"

	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
)

// EmailDefaults prefills the send-email forms of an application.
type EmailDefaults struct {
	To      string `json:"to"`
	Cc      string `json:"cc"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// DefaultSubject is "Application for {title} - {user display name}".
func DefaultSubject(c models.ApplicationContext) string {
	return fmt.Sprintf("Application for %s - %s", c.Position.Title, c.User.DisplayName())
}

// Defaults addresses the HR contact when known, otherwise the recruiter. The
// recruiter is copied when both are set.
func Defaults(c models.ApplicationContext) EmailDefaults {
	a := c.Application
	d := EmailDefaults{
		To:      a.HREmail,
		Subject: DefaultSubject(c),
		Message: defaultMessage(c),
	}
	if d.To == "" {
		d.To = a.RecruiterEmail
	} else {
		d.Cc = a.RecruiterEmail
	}
	return d
}

func defaultMessage(c models.ApplicationContext) string {
	return fmt.Sprintf(`Dear Hiring Manager,

I am writing to express my strong interest in the %s position at %s. I have attached my resume and cover letter for your review.

I am excited about the opportunity to contribute to your team and would welcome the chance to discuss how my skills and experience align with your needs.

Thank you for your time and consideration. I look forward to hearing from you.

Best regards,
%s`, c.Position.Title, c.Company.Name, c.User.DisplayName())
}
