package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/Shubham-musmade/interview-tracker/internal/common"
	"github.com/Shubham-musmade/interview-tracker/internal/dbx"
	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/companies"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/repomanager"
)

type CompanyInput struct {
	Name        string `json:"name" validate:"required,max=200"`
	Website     string `json:"website" validate:"omitempty,url,max=200"`
	Location    string `json:"location" validate:"max=200"`
	Industry    string `json:"industry" validate:"max=100"`
	Description string `json:"description"`
}

// CompanyService manages the shared company directory.
type CompanyService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCompanyService(db *sql.DB, m repomanager.RepositoryManager) *CompanyService {
	return &CompanyService{db: db, repomanager: m}
}

func (s *CompanyService) List(ctx context.Context, search string) ([]models.Company, error) {
	return s.repomanager.Companies(s.db).List(ctx, strings.TrimSpace(search))
}

func (s *CompanyService) Get(ctx context.Context, id string) (*models.Company, error) {
	return s.repomanager.Companies(s.db).Get(ctx, id)
}

func (s *CompanyService) Create(ctx context.Context, in CompanyInput) (*models.Company, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	c := &models.Company{ID: uuid.NewString()}
	applyCompanyInput(c, in)
	if err := s.repomanager.Companies(s.db).Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CompanyService) Update(ctx context.Context, id string, in CompanyInput) (*models.Company, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	var c *models.Company
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Companies(tx)
		var err error
		if c, err = repo.Get(ctx, id); err != nil {
			return err
		}
		applyCompanyInput(c, in)
		return repo.Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes the company together with its positions and their
// applications.
func (s *CompanyService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Companies(s.db).Delete(ctx, id)
}

func applyCompanyInput(c *models.Company, in CompanyInput) {
	c.Name = in.Name
	c.Website = strings.TrimSpace(in.Website)
	c.Location = strings.TrimSpace(in.Location)
	c.Industry = strings.TrimSpace(in.Industry)
	c.Description = in.Description
}

// resolveCompany returns the company with id, or the find-or-create
// "Unknown Company" when id is empty. Nothing prevents two concurrent calls
// from both creating it.
func resolveCompany(ctx context.Context, repo companies.Repository, id string) (*models.Company, error) {
	if id != "" {
		c, err := repo.Get(ctx, id)
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewValidationError("company_id", "unknown company")
		}
		return c, err
	}

	c, err := repo.FindByName(ctx, common.UnknownCompanyName)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}
	c = &models.Company{ID: uuid.NewString(), Name: common.UnknownCompanyName}
	if err := repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
