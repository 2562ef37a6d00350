package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/Shubham-musmade/interview-tracker/internal/logging"
	"github.com/Shubham-musmade/interview-tracker/internal/server/config"
	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
	"github.com/Shubham-musmade/interview-tracker/internal/server/notify"
	"github.com/Shubham-musmade/interview-tracker/internal/server/storage"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

// recordingTransport captures outgoing mail; addresses in fail are rejected.
type recordingTransport struct {
	mu   sync.Mutex
	sent []*notify.Message
	fail map[string]bool
}

func (r *recordingTransport) Send(_ context.Context, msg *notify.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, to := range msg.To {
		if r.fail[to] {
			return errors.New("smtp: 550 mailbox unavailable")
		}
	}
	r.sent = append(r.sent, msg)
	return nil
}

type fixture struct {
	db         *sql.DB
	mem        *memDB
	rm         *memManager
	cfg        *config.Config
	store      *storage.LocalStore
	mediaRoot  string
	transport  *recordingTransport
	dispatcher *notify.Dispatcher
	logger     logging.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()

	root := t.TempDir()
	store, err := storage.NewLocalStore(root)
	require.NoError(t, err)

	mem := newMemDB()
	tr := &recordingTransport{fail: map[string]bool{}}
	logger := logging.NewNopLogger()
	return &fixture{
		db:         newTxDB(t),
		mem:        mem,
		rm:         &memManager{db: mem},
		cfg:        cfg,
		store:      store,
		mediaRoot:  root,
		transport:  tr,
		dispatcher: notify.NewDispatcher(notify.Config{FromAddress: cfg.FromAddress}, tr, store, logger),
		logger:     logger,
	}
}

func (f *fixture) applications() *ApplicationService {
	return NewApplicationService(f.db, f.rm, f.dispatcher, f.cfg, f.logger)
}

func (f *fixture) seedUser(id, userName, email string) *models.User {
	u := &models.User{ID: id, UserName: userName, Email: email, FullName: "Jane Doe", CreatedAt: f.mem.tick()}
	f.mem.users[id] = u
	return u
}

func (f *fixture) seedCompany(name, industry string) *models.Company {
	c := &models.Company{ID: "c-" + name, Name: name, Industry: industry, CreatedAt: f.mem.tick()}
	f.mem.companies[c.ID] = c
	return c
}

func (f *fixture) seedPosition(c *models.Company, title string) *models.JobPosition {
	p := &models.JobPosition{ID: "p-" + c.Name + "-" + title, CompanyID: c.ID, Title: title, EmploymentType: models.FullTime, CreatedAt: f.mem.tick()}
	f.mem.positions[p.ID] = p
	return p
}

func (f *fixture) seedApplication(id, userID string, p *models.JobPosition, status models.Status) *models.JobApplication {
	a := &models.JobApplication{ID: id, UserID: userID, PositionID: p.ID, Status: status, Priority: models.PriorityMedium, CreatedAt: f.mem.tick()}
	f.mem.apps[id] = a
	return a
}

func (f *fixture) seedDocument(id, userID string, t models.DocumentType, key string, isDefault bool) *models.Document {
	d := &models.Document{ID: id, UserID: userID, Name: id, Type: t, StorageKey: key, IsDefault: isDefault, CreatedAt: f.mem.tick()}
	f.mem.documents[id] = d
	return d
}

func ptr[T any](v T) *T { return &v }

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
