package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/Shubham-musmade/interview-tracker/internal/common"
	"github.com/Shubham-musmade/interview-tracker/internal/dbx"
	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/repomanager"
)

// PositionInput creates or edits a job position. An empty CompanyID attaches
// the position to "Unknown Company". EmploymentType defaults to FULL_TIME.
type PositionInput struct {
	CompanyID      string                `json:"company_id"`
	Title          string                `json:"title" validate:"required,max=200"`
	Description    string                `json:"description"`
	Requirements   string                `json:"requirements"`
	EmploymentType models.EmploymentType `json:"employment_type" validate:"omitempty,enum"`
	SalaryMin      *float64              `json:"salary_min" validate:"omitempty,gte=0"`
	SalaryMax      *float64              `json:"salary_max" validate:"omitempty,gte=0"`
	Location       string                `json:"location" validate:"max=200"`
	RemoteAllowed  bool                  `json:"remote_allowed"`
	JobURL         string                `json:"job_url" validate:"omitempty,url"`
}

func (in *PositionInput) check() error {
	in.Title = strings.TrimSpace(in.Title)
	if err := validateInput(*in); err != nil {
		return err
	}
	if in.SalaryMin != nil && in.SalaryMax != nil && *in.SalaryMax < *in.SalaryMin {
		return common.NewValidationError("salary_max", "must be greater than or equal to salary_min")
	}
	return nil
}

type PositionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPositionService(db *sql.DB, m repomanager.RepositoryManager) *PositionService {
	return &PositionService{db: db, repomanager: m}
}

func (s *PositionService) Get(ctx context.Context, id string) (*models.JobPosition, error) {
	return s.repomanager.Positions(s.db).Get(ctx, id)
}

// ListByCompany returns the company's positions; an unknown company is
// ErrorNotFound.
func (s *PositionService) ListByCompany(ctx context.Context, companyID string) ([]models.JobPosition, error) {
	if _, err := s.repomanager.Companies(s.db).Get(ctx, companyID); err != nil {
		return nil, err
	}
	return s.repomanager.Positions(s.db).ListByCompany(ctx, companyID)
}

func (s *PositionService) Create(ctx context.Context, in PositionInput) (*models.JobPosition, error) {
	if err := in.check(); err != nil {
		return nil, err
	}
	var p *models.JobPosition
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		p, err = createPosition(ctx, s.repomanager, tx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PositionService) Update(ctx context.Context, id string, in PositionInput) (*models.JobPosition, error) {
	if err := in.check(); err != nil {
		return nil, err
	}
	var p *models.JobPosition
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Positions(tx)
		var err error
		if p, err = repo.Get(ctx, id); err != nil {
			return err
		}
		c, err := resolveCompany(ctx, s.repomanager.Companies(tx), in.CompanyID)
		if err != nil {
			return err
		}
		applyPositionInput(p, in)
		p.CompanyID = c.ID
		return repo.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// createPosition resolves the company and inserts the position on tx. in must
// already be checked.
func createPosition(ctx context.Context, rm repomanager.RepositoryManager, tx dbx.DBTX, in PositionInput) (*models.JobPosition, error) {
	c, err := resolveCompany(ctx, rm.Companies(tx), in.CompanyID)
	if err != nil {
		return nil, err
	}
	p := &models.JobPosition{ID: uuid.NewString(), CompanyID: c.ID}
	applyPositionInput(p, in)
	if err := rm.Positions(tx).Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func applyPositionInput(p *models.JobPosition, in PositionInput) {
	p.Title = in.Title
	p.Description = in.Description
	p.Requirements = in.Requirements
	p.EmploymentType = in.EmploymentType
	if p.EmploymentType == "" {
		p.EmploymentType = models.FullTime
	}
	p.SalaryMin = in.SalaryMin
	p.SalaryMax = in.SalaryMax
	p.Location = strings.TrimSpace(in.Location)
	p.RemoteAllowed = in.RemoteAllowed
	p.JobURL = strings.TrimSpace(in.JobURL)
}
