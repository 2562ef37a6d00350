package api

import (
	"context"

	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
	"github.com/Shubham-musmade/interview-tracker/internal/server/services"
	"github.com/Shubham-musmade/interview-tracker/internal/server/stats"
)

// The interfaces below are the slices of the services package the handlers
// call. Each is implemented by the matching *services.XService.

type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	Login(ctx context.Context, userName, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

type EmailService interface {
	List(ctx context.Context, userID string) ([]models.UserEmail, error)
	Create(ctx context.Context, userID string, in services.EmailInput) (*models.UserEmail, error)
	Update(ctx context.Context, userID, id string, in services.EmailInput) (*models.UserEmail, error)
	SetPrimary(ctx context.Context, userID, id string) (*models.UserEmail, error)
	Delete(ctx context.Context, userID, id string) error
}

type CompanyService interface {
	List(ctx context.Context, search string) ([]models.Company, error)
	Get(ctx context.Context, id string) (*models.Company, error)
	Create(ctx context.Context, in services.CompanyInput) (*models.Company, error)
	Update(ctx context.Context, id string, in services.CompanyInput) (*models.Company, error)
	Delete(ctx context.Context, id string) error
}

type PositionService interface {
	Get(ctx context.Context, id string) (*models.JobPosition, error)
	ListByCompany(ctx context.Context, companyID string) ([]models.JobPosition, error)
	Create(ctx context.Context, in services.PositionInput) (*models.JobPosition, error)
	Update(ctx context.Context, id string, in services.PositionInput) (*models.JobPosition, error)
}

type DocumentService interface {
	List(ctx context.Context, userID string, docType models.DocumentType) ([]models.Document, error)
	Upload(ctx context.Context, userID string, in services.DocumentInput, f services.UploadFile) (*models.Document, error)
	Update(ctx context.Context, userID, id string, in services.DocumentInput) (*models.Document, error)
	Delete(ctx context.Context, userID, id string) error
	Download(ctx context.Context, userID, id string) (*services.Download, error)
}

type ApplicationService interface {
	List(ctx context.Context, userID string, f models.ApplicationFilter) ([]models.ApplicationSummary, error)
	Create(ctx context.Context, userID string, in services.ApplicationInput) (*models.JobApplication, error)
	CreateWithCompany(ctx context.Context, userID string, in services.QuickApplicationInput) (*models.JobApplication, error)
	Get(ctx context.Context, userID, id string) (*models.ApplicationDetail, error)
	Update(ctx context.Context, userID, id string, in services.ApplicationInput) (*models.JobApplication, error)
	Delete(ctx context.Context, userID, id string) error
	EmailDefaults(ctx context.Context, userID, id string) (*services.EmailDefaults, error)
	SendEmail(ctx context.Context, userID, id string, in services.SendEmailInput) (*models.JobApplication, error)
	SendHREmail(ctx context.Context, userID, id string, in services.SendHREmailInput) (*models.JobApplication, error)
}

type InterviewService interface {
	List(ctx context.Context, userID, applicationID string) ([]models.InterviewRound, error)
	Add(ctx context.Context, userID, applicationID string, in services.InterviewInput) (*models.InterviewRound, error)
	Update(ctx context.Context, userID, applicationID string, round int, in services.InterviewInput) (*models.InterviewRound, error)
	Delete(ctx context.Context, userID, applicationID string, round int) error
	Remind(ctx context.Context, userID, applicationID string, round int) error
}

type NoteService interface {
	List(ctx context.Context, userID, applicationID string) ([]models.ApplicationNote, error)
	Add(ctx context.Context, userID, applicationID string, in services.NoteInput) (*models.ApplicationNote, error)
	Update(ctx context.Context, userID, id string, in services.NoteInput) (*models.ApplicationNote, error)
	Delete(ctx context.Context, userID, id string) error
}

type StatisticsService interface {
	Dashboard(ctx context.Context, userID string) (*stats.Dashboard, error)
	Statistics(ctx context.Context, userID string) (*stats.Statistics, error)
}

// Services bundles the use cases served over HTTP.
type Services struct {
	Users        UserService
	Emails       EmailService
	Companies    CompanyService
	Positions    PositionService
	Documents    DocumentService
	Applications ApplicationService
	Interviews   InterviewService
	Notes        NoteService
	Statistics   StatisticsService
}

var (
	_ UserService        = (*services.UserService)(nil)
	_ EmailService       = (*services.EmailService)(nil)
	_ CompanyService     = (*services.CompanyService)(nil)
	_ PositionService    = (*services.PositionService)(nil)
	_ DocumentService    = (*services.DocumentService)(nil)
	_ ApplicationService = (*services.ApplicationService)(nil)
	_ InterviewService   = (*services.InterviewService)(nil)
	_ NoteService        = (*services.NoteService)(nil)
	_ StatisticsService  = (*services.StatisticsService)(nil)
)
