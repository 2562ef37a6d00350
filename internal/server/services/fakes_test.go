package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Shubham-musmade/interview-tracker/internal/common"
	"github.com/Shubham-musmade/interview-tracker/internal/dbx"
	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/applications"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/companies"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/documents"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/interviews"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/notes"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/positions"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/refreshtokens"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/useremails"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/users"
	"github.com/Shubham-musmade/interview-tracker/internal/timex"
)

// newTxDB returns an in-memory sqlite database. Services only use it to
// begin and commit transactions; the fakes below ignore the handle.
func newTxDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+strings.ReplaceAll(t.Name(), "/", "_")+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// memDB is an in-memory stand-in for the PostgreSQL schema, shared by every
// fake repository handed out by memManager.
type memDB struct {
	mu        sync.Mutex
	clock     time.Time
	users     map[string]*models.User
	tokens    map[string]*models.RefreshToken
	emails    map[string]*models.UserEmail
	companies map[string]*models.Company
	positions map[string]*models.JobPosition
	documents map[string]*models.Document
	apps      map[string]*models.JobApplication
	rounds    map[string]*models.InterviewRound
	notes     map[string]*models.ApplicationNote
	// fail injects an error into the named call, e.g. "Applications.MarkSent".
	fail map[string]error
}

func newMemDB() *memDB {
	return &memDB{
		clock:     time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC),
		users:     map[string]*models.User{},
		tokens:    map[string]*models.RefreshToken{},
		emails:    map[string]*models.UserEmail{},
		companies: map[string]*models.Company{},
		positions: map[string]*models.JobPosition{},
		documents: map[string]*models.Document{},
		apps:      map[string]*models.JobApplication{},
		rounds:    map[string]*models.InterviewRound{},
		notes:     map[string]*models.ApplicationNote{},
		fail:      map[string]error{},
	}
}

func (m *memDB) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memDB) err(name string) error { return m.fail[name] }

type memManager struct{ db *memDB }

func (m *memManager) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (m *memManager) Users(dbx.DBTX) users.Repository                 { return memUsers{m.db} }
func (m *memManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return memTokens{m.db} }
func (m *memManager) UserEmails(dbx.DBTX) useremails.Repository       { return memEmails{m.db} }
func (m *memManager) Companies(dbx.DBTX) companies.Repository         { return memCompanies{m.db} }
func (m *memManager) Positions(dbx.DBTX) positions.Repository         { return memPositions{m.db} }
func (m *memManager) Documents(dbx.DBTX) documents.Repository         { return memDocuments{m.db} }
func (m *memManager) Applications(dbx.DBTX) applications.Repository   { return memApps{m.db} }
func (m *memManager) Interviews(dbx.DBTX) interviews.Repository       { return memRounds{m.db} }
func (m *memManager) Notes(dbx.DBTX) notes.Repository                 { return memNotes{m.db} }

// --- users ---

type memUsers struct{ m *memDB }

func (r memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.err("Users.Create"); err != nil {
		return nil, err
	}
	for _, x := range r.m.users {
		if x.UserName == u.UserName {
			return nil, fmt.Errorf("%w: users_username_key", common.ErrorAlreadyExists)
		}
	}
	c := *u
	c.CreatedAt = r.m.tick()
	r.m.users[c.ID] = &c
	out := c
	return &out, nil
}

func (r memUsers) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.err("Users.GetUserByLogin"); err != nil {
		return nil, err
	}
	for _, u := range r.m.users {
		if u.UserName == login {
			c := *u
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	return &c, nil
}

// --- refresh tokens ---

type memTokens struct{ m *memDB }

func (r memTokens) Create(_ context.Context, userID, token string, validity time.Duration) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.err("RefreshTokens.Create"); err != nil {
		return err
	}
	r.m.tokens[token] = &models.RefreshToken{UserID: userID, Token: token, Expires: time.Now().Add(validity)}
	return nil
}

func (r memTokens) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	t, ok := r.m.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *t
	return &c, nil
}

func (r memTokens) Delete(_ context.Context, token string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.err("RefreshTokens.Delete"); err != nil {
		return err
	}
	delete(r.m.tokens, token)
	return nil
}

// --- user emails ---

type memEmails struct{ m *memDB }

func (r memEmails) List(_ context.Context, userID string) ([]models.UserEmail, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.UserEmail
	for _, e := range r.m.emails {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsPrimary != out[j].IsPrimary {
			return out[i].IsPrimary
		}
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Label < out[j].Label
	})
	return out, nil
}

func (r memEmails) Get(_ context.Context, userID, id string) (*models.UserEmail, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	e, ok := r.m.emails[id]
	if !ok || e.UserID != userID {
		return nil, common.ErrorNotFound
	}
	c := *e
	return &c, nil
}

func (r memEmails) conflict(e *models.UserEmail) error {
	primaries := 0
	for _, x := range r.m.emails {
		if x.ID == e.ID || x.UserID != e.UserID {
			continue
		}
		if x.Email == e.Email {
			return fmt.Errorf("%w: user_emails_user_id_email_key", common.ErrorAlreadyExists)
		}
		if x.IsPrimary {
			primaries++
		}
	}
	if e.IsPrimary && primaries > 0 {
		return fmt.Errorf("%w: user_emails_one_primary", common.ErrorAlreadyExists)
	}
	return nil
}

func (r memEmails) Create(_ context.Context, e *models.UserEmail) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.conflict(e); err != nil {
		return err
	}
	e.CreatedAt = r.m.tick()
	e.UpdatedAt = e.CreatedAt
	c := *e
	r.m.emails[e.ID] = &c
	return nil
}

func (r memEmails) Update(_ context.Context, e *models.UserEmail) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	x, ok := r.m.emails[e.ID]
	if !ok || x.UserID != e.UserID {
		return common.ErrorNotFound
	}
	if err := r.conflict(e); err != nil {
		return err
	}
	e.UpdatedAt = r.m.tick()
	c := *e
	r.m.emails[e.ID] = &c
	return nil
}

func (r memEmails) Delete(_ context.Context, userID, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	e, ok := r.m.emails[id]
	if !ok || e.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.m.emails, id)
	for _, a := range r.m.apps {
		if a.SenderEmailID != nil && *a.SenderEmailID == id {
			a.SenderEmailID = nil
		}
	}
	return nil
}

func (r memEmails) ClaimPrimary(_ context.Context, userID, keepID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.err("UserEmails.ClaimPrimary"); err != nil {
		return err
	}
	for _, e := range r.m.emails {
		if e.UserID == userID && e.ID != keepID {
			e.IsPrimary = false
		}
	}
	return nil
}

// --- companies ---

type memCompanies struct{ m *memDB }

func (r memCompanies) List(_ context.Context, search string) ([]models.Company, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	q := strings.ToLower(search)
	var out []models.Company
	for _, c := range r.m.companies {
		if q == "" || strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Industry), q) || strings.Contains(strings.ToLower(c.Location), q) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memCompanies) Get(_ context.Context, id string) (*models.Company, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.companies[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *c
	return &out, nil
}

func (r memCompanies) FindByName(_ context.Context, name string) (*models.Company, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var found *models.Company
	for _, c := range r.m.companies {
		if c.Name == name && (found == nil || c.CreatedAt.Before(found.CreatedAt)) {
			found = c
		}
	}
	if found == nil {
		return nil, common.ErrorNotFound
	}
	out := *found
	return &out, nil
}

func (r memCompanies) Create(_ context.Context, c *models.Company) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.err("Companies.Create"); err != nil {
		return err
	}
	c.CreatedAt = r.m.tick()
	c.UpdatedAt = c.CreatedAt
	out := *c
	r.m.companies[c.ID] = &out
	return nil
}

func (r memCompanies) Update(_ context.Context, c *models.Company) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.companies[c.ID]; !ok {
		return common.ErrorNotFound
	}
	c.UpdatedAt = r.m.tick()
	out := *c
	r.m.companies[c.ID] = &out
	return nil
}

func (r memCompanies) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.companies[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.m.companies, id)
	for pid, p := range r.m.positions {
		if p.CompanyID == id {
			delete(r.m.positions, pid)
			for aid, a := range r.m.apps {
				if a.PositionID == pid {
					delete(r.m.apps, aid)
				}
			}
		}
	}
	return nil
}

// --- positions ---

type memPositions struct{ m *memDB }

func (r memPositions) Get(_ context.Context, id string) (*models.JobPosition, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.positions[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *p
	return &out, nil
}

func (r memPositions) ListByCompany(_ context.Context, companyID string) ([]models.JobPosition, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.JobPosition
	for _, p := range r.m.positions {
		if p.CompanyID == companyID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memPositions) Create(_ context.Context, p *models.JobPosition) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.err("Positions.Create"); err != nil {
		return err
	}
	p.CreatedAt = r.m.tick()
	p.UpdatedAt = p.CreatedAt
	out := *p
	r.m.positions[p.ID] = &out
	return nil
}

func (r memPositions) Update(_ context.Context, p *models.JobPosition) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.positions[p.ID]; !ok {
		return common.ErrorNotFound
	}
	p.UpdatedAt = r.m.tick()
	out := *p
	r.m.positions[p.ID] = &out
	return nil
}

// --- documents ---

type memDocuments struct{ m *memDB }

func (r memDocuments) List(_ context.Context, userID string, docType models.DocumentType) ([]models.Document, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.Document
	for _, d := range r.m.documents {
		if d.UserID == userID && (docType == "" || d.Type == docType) {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDefault != out[j].IsDefault {
			return out[i].IsDefault
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r memDocuments) Get(_ context.Context, userID, id string) (*models.Document, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	d, ok := r.m.documents[id]
	if !ok || d.UserID != userID {
		return nil, common.ErrorNotFound
	}
	out := *d
	return &out, nil
}

func (r memDocuments) GetDefault(_ context.Context, userID string, docType models.DocumentType) (*models.Document, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, d := range r.m.documents {
		if d.UserID == userID && d.Type == docType && d.IsDefault {
			out := *d
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memDocuments) conflict(d *models.Document) error {
	if !d.IsDefault {
		return nil
	}
	for _, x := range r.m.documents {
		if x.ID != d.ID && x.UserID == d.UserID && x.Type == d.Type && x.IsDefault {
			return fmt.Errorf("%w: documents_one_default", common.ErrorAlreadyExists)
		}
	}
	return nil
}

func (r memDocuments) Create(_ context.Context, d *models.Document) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.err("Documents.Create"); err != nil {
		return err
	}
	if err := r.conflict(d); err != nil {
		return err
	}
	d.CreatedAt = r.m.tick()
	d.UpdatedAt = d.CreatedAt
	out := *d
	r.m.documents[d.ID] = &out
	return nil
}

func (r memDocuments) Update(_ context.Context, d *models.Document) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	x, ok := r.m.documents[d.ID]
	if !ok || x.UserID != d.UserID {
		return common.ErrorNotFound
	}
	if err := r.conflict(d); err != nil {
		return err
	}
	d.StorageKey = x.StorageKey
	d.UpdatedAt = r.m.tick()
	out := *d
	r.m.documents[d.ID] = &out
	return nil
}

func (r memDocuments) Delete(_ context.Context, userID, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	d, ok := r.m.documents[id]
	if !ok || d.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.m.documents, id)
	for _, a := range r.m.apps {
		if a.ResumeID != nil && *a.ResumeID == id {
			a.ResumeID = nil
		}
		if a.CoverLetterID != nil && *a.CoverLetterID == id {
			a.CoverLetterID = nil
		}
	}
	return nil
}

func (r memDocuments) ClaimDefault(_ context.Context, userID string, docType models.DocumentType, keepID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, d := range r.m.documents {
		if d.UserID == userID && d.Type == docType && d.ID != keepID {
			d.IsDefault = false
		}
	}
	return nil
}

// --- applications ---

type memApps struct{ m *memDB }

func (r memApps) Create(_ context.Context, a *models.JobApplication) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.err("Applications.Create"); err != nil {
		return err
	}
	for _, x := range r.m.apps {
		if x.UserID == a.UserID && x.PositionID == a.PositionID {
			return fmt.Errorf("%w: job_applications_user_id_position_id_key", common.ErrorAlreadyExists)
		}
	}
	a.CreatedAt = r.m.tick()
	a.UpdatedAt = a.CreatedAt
	out := *a
	r.m.apps[a.ID] = &out
	return nil
}

func (r memApps) Get(_ context.Context, userID, id string) (*models.JobApplication, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a, ok := r.m.apps[id]
	if !ok || a.UserID != userID {
		return nil, common.ErrorNotFound
	}
	out := *a
	return &out, nil
}

func (r memApps) Update(_ context.Context, a *models.JobApplication) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	x, ok := r.m.apps[a.ID]
	if !ok || x.UserID != a.UserID {
		return common.ErrorNotFound
	}
	a.UpdatedAt = r.m.tick()
	out := *a
	r.m.apps[a.ID] = &out
	return nil
}

func (r memApps) Delete(_ context.Context, userID, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a, ok := r.m.apps[id]
	if !ok || a.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.m.apps, id)
	for rid, x := range r.m.rounds {
		if x.ApplicationID == id {
			delete(r.m.rounds, rid)
		}
	}
	for nid, n := range r.m.notes {
		if n.ApplicationID == id {
			delete(r.m.notes, nid)
		}
	}
	return nil
}

func (r memApps) MarkSent(_ context.Context, a *models.JobApplication, sentAt time.Time) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.err("Applications.MarkSent"); err != nil {
		return err
	}
	x, ok := r.m.apps[a.ID]
	if !ok || x.UserID != a.UserID {
		return common.ErrorNotFound
	}
	x.EmailSent = true
	x.EmailSentDate = &sentAt
	if x.Status == models.StatusDraft {
		x.Status = models.StatusApplied
		applied := timex.StartOfDay(sentAt)
		x.AppliedDate = &applied
	}
	a.EmailSent, a.EmailSentDate, a.Status, a.AppliedDate = x.EmailSent, x.EmailSentDate, x.Status, x.AppliedDate
	return nil
}

func (r memApps) SaveContacts(_ context.Context, a *models.JobApplication) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	x, ok := r.m.apps[a.ID]
	if !ok || x.UserID != a.UserID {
		return common.ErrorNotFound
	}
	x.SenderEmailID, x.HREmail, x.HRName = a.SenderEmailID, a.HREmail, a.HRName
	return nil
}

func (r memApps) summary(a *models.JobApplication) models.ApplicationSummary {
	p := r.m.positions[a.PositionID]
	c := r.m.companies[p.CompanyID]
	return models.ApplicationSummary{
		ID: a.ID, Status: a.Status, Priority: a.Priority,
		PositionTitle: p.Title, CompanyID: c.ID, CompanyName: c.Name, Industry: c.Industry,
		AppliedDate: a.AppliedDate, Deadline: a.Deadline, CreatedAt: a.CreatedAt,
	}
}

func (r memApps) List(_ context.Context, userID string, f models.ApplicationFilter) ([]models.ApplicationSummary, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	q := strings.ToLower(f.Search)
	var out []models.ApplicationSummary
	for _, a := range r.m.apps {
		if a.UserID != userID || (f.Status != "" && a.Status != f.Status) || (f.Priority != "" && a.Priority != f.Priority) {
			continue
		}
		s := r.summary(a)
		if q != "" && !strings.Contains(strings.ToLower(s.PositionTitle), q) &&
			!strings.Contains(strings.ToLower(s.CompanyName), q) && !strings.Contains(strings.ToLower(a.Notes), q) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memApps) context(a *models.JobApplication) models.ApplicationContext {
	p := r.m.positions[a.PositionID]
	c := r.m.companies[p.CompanyID]
	var u models.User
	if x, ok := r.m.users[a.UserID]; ok {
		u = *x
	}
	return models.ApplicationContext{Application: *a, User: u, Position: *p, Company: *c}
}

func (r memApps) GetContext(_ context.Context, userID, id string) (*models.ApplicationContext, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a, ok := r.m.apps[id]
	if !ok || (userID != "" && a.UserID != userID) {
		return nil, common.ErrorNotFound
	}
	c := r.context(a)
	return &c, nil
}

func (r memApps) ListDeadlineBetween(_ context.Context, from, to time.Time, exclude []models.Status) ([]models.ApplicationContext, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.ApplicationContext
	for _, a := range r.m.apps {
		if a.Deadline == nil || a.Deadline.Before(from) || a.Deadline.After(to) {
			continue
		}
		skip := false
		for _, s := range exclude {
			if a.Status == s {
				skip = true
			}
		}
		if !skip {
			out = append(out, r.context(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Application.ID < out[j].Application.ID })
	return out, nil
}

// --- interview rounds ---

type memRounds struct{ m *memDB }

func (r memRounds) List(_ context.Context, applicationID string) ([]models.InterviewRound, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.InterviewRound
	for _, x := range r.m.rounds {
		if x.ApplicationID == applicationID {
			out = append(out, *x)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoundNumber < out[j].RoundNumber })
	return out, nil
}

func (r memRounds) Get(_ context.Context, applicationID string, round int) (*models.InterviewRound, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, x := range r.m.rounds {
		if x.ApplicationID == applicationID && x.RoundNumber == round {
			out := *x
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memRounds) MaxRound(_ context.Context, applicationID string) (int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	n := 0
	for _, x := range r.m.rounds {
		if x.ApplicationID == applicationID && x.RoundNumber > n {
			n = x.RoundNumber
		}
	}
	return n, nil
}

func (r memRounds) conflict(x *models.InterviewRound) error {
	for _, y := range r.m.rounds {
		if y.ID != x.ID && y.ApplicationID == x.ApplicationID && y.RoundNumber == x.RoundNumber {
			return fmt.Errorf("%w: interview_rounds_application_id_round_number_key", common.ErrorAlreadyExists)
		}
	}
	return nil
}

func (r memRounds) Create(_ context.Context, x *models.InterviewRound) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.conflict(x); err != nil {
		return err
	}
	x.CreatedAt = r.m.tick()
	x.UpdatedAt = x.CreatedAt
	out := *x
	r.m.rounds[x.ID] = &out
	return nil
}

func (r memRounds) Update(_ context.Context, x *models.InterviewRound) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	y, ok := r.m.rounds[x.ID]
	if !ok || y.ApplicationID != x.ApplicationID {
		return common.ErrorNotFound
	}
	if err := r.conflict(x); err != nil {
		return err
	}
	x.UpdatedAt = r.m.tick()
	out := *x
	r.m.rounds[x.ID] = &out
	return nil
}

func (r memRounds) Delete(_ context.Context, applicationID string, round int) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, x := range r.m.rounds {
		if x.ApplicationID == applicationID && x.RoundNumber == round {
			delete(r.m.rounds, id)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r memRounds) ListScheduledBetween(_ context.Context, from, to time.Time) ([]models.InterviewRound, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.InterviewRound
	for _, x := range r.m.rounds {
		if x.Status == models.RoundScheduled && !x.ScheduledDate.Before(from) && x.ScheduledDate.Before(to) {
			out = append(out, *x)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledDate.Before(out[j].ScheduledDate) })
	return out, nil
}

func (r memRounds) UpcomingForUser(_ context.Context, userID string, now time.Time, limit int) ([]models.UpcomingInterview, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.UpcomingInterview
	for _, x := range r.m.rounds {
		a := r.m.apps[x.ApplicationID]
		if a == nil || a.UserID != userID || x.Status != models.RoundScheduled || x.ScheduledDate.Before(now) {
			continue
		}
		p := r.m.positions[a.PositionID]
		out = append(out, models.UpcomingInterview{Round: *x, PositionTitle: p.Title, CompanyName: r.m.companies[p.CompanyID].Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Round.ScheduledDate.Before(out[j].Round.ScheduledDate) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// --- notes ---

type memNotes struct{ m *memDB }

func (r memNotes) List(_ context.Context, applicationID string) ([]models.ApplicationNote, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.ApplicationNote
	for _, n := range r.m.notes {
		if n.ApplicationID == applicationID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memNotes) Create(_ context.Context, n *models.ApplicationNote) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	n.CreatedAt = r.m.tick()
	n.UpdatedAt = n.CreatedAt
	out := *n
	r.m.notes[n.ID] = &out
	return nil
}

func (r memNotes) owned(userID, id string) (*models.ApplicationNote, bool) {
	n, ok := r.m.notes[id]
	if !ok {
		return nil, false
	}
	a, ok := r.m.apps[n.ApplicationID]
	return n, ok && a.UserID == userID
}

func (r memNotes) Update(_ context.Context, userID string, n *models.ApplicationNote) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	x, ok := r.owned(userID, n.ID)
	if !ok {
		return common.ErrorNotFound
	}
	x.Note = n.Note
	x.UpdatedAt = r.m.tick()
	n.ApplicationID, n.CreatedAt, n.UpdatedAt = x.ApplicationID, x.CreatedAt, x.UpdatedAt
	return nil
}

func (r memNotes) Delete(_ context.Context, userID, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.owned(userID, id); !ok {
		return common.ErrorNotFound
	}
	delete(r.m.notes, id)
	return nil
}
