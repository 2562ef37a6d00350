package models

import "time"

// Company is shared reference data; it is not owned by any user.
type Company struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Website     string    `json:"website"`
	Location    string    `json:"location"`
	Industry    string    `json:"industry"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// JobPosition is a role posted by a Company.
type JobPosition struct {
	ID             string         `json:"id"`
	CompanyID      string         `json:"company_id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Requirements   string         `json:"requirements"`
	EmploymentType EmploymentType `json:"employment_type"`
	SalaryMin      *float64       `json:"salary_min"`
	SalaryMax      *float64       `json:"salary_max"`
	Location       string         `json:"location"`
	RemoteAllowed  bool           `json:"remote_allowed"`
	JobURL         string         `json:"job_url"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
