// Package notify composes and sends the tracker's outgoing email: application
// emails to recruiters and reminders to the user.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Shubham-musmade/interview-tracker/internal/common"
	"github.com/Shubham-musmade/interview-tracker/internal/logging"
	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
	"github.com/Shubham-musmade/interview-tracker/internal/server/storage"
)

// ErrNoRecipient is returned when the user to notify has no email address.
var ErrNoRecipient = errors.New("recipient has no email address")

// Config is the mail configuration the dispatcher needs beyond its transport.
type Config struct {
	// FromAddress is used when no sender alias is given, either a bare
	// address or "Name <address>".
	FromAddress string
}

// ApplicationEmail is a plain application email written by the user.
type ApplicationEmail struct {
	To                string
	Cc                string
	Subject           string
	Body              string
	AttachResume      bool
	AttachCoverLetter bool
}

// HREmail is a templated application email. The sender alias, if any, is
// taken from ApplicationDetail.Sender.
type HREmail struct {
	To                string
	Cc                string
	Subject           string
	HRName            string
	CustomMessage     string
	AttachResume      bool
	AttachCoverLetter bool
}

// RoundReminder pairs an interview round with its application.
type RoundReminder struct {
	Round       models.InterviewRound
	Application models.ApplicationContext
}

// Dispatcher renders and sends email. Failures are logged and returned
// wrapped in common.ErrSendFailed; nothing is retried.
type Dispatcher struct {
	cfg       Config
	transport Transport
	store     storage.Store
	logger    logging.Logger
	now       func() time.Time
}

func NewDispatcher(cfg Config, transport Transport, store storage.Store, logger logging.Logger) *Dispatcher {
	return &Dispatcher{
		cfg:       cfg,
		transport: transport,
		store:     store,
		logger:    logger.With("module", "notify"),
		now:       time.Now,
	}
}

// SendApplicationEmail sends e about d and, on success, marks d.Application
// as sent. The caller persists the change.
func (d *Dispatcher) SendApplicationEmail(ctx context.Context, detail *models.ApplicationDetail, e ApplicationEmail) error {
	atts, _, _ := d.attachments(ctx, detail, e.AttachResume, e.AttachCoverLetter)
	msg := &Message{
		From:        d.defaultFrom(),
		To:          []string{e.To},
		Cc:          ccList(e.Cc),
		Subject:     e.Subject,
		Text:        e.Body,
		Attachments: atts,
	}
	if err := d.deliver(ctx, msg, "application_id", detail.Application.ID); err != nil {
		return err
	}
	detail.Application.MarkSent(d.now())
	return nil
}

// SendHREmail renders the HR application templates and sends them as a
// multipart message. From is formatted from detail.Sender when present.
// On success detail.Application is marked as sent.
func (d *Dispatcher) SendHREmail(ctx context.Context, detail *models.ApplicationDetail, e HREmail) error {
	atts, hasResume, hasCover := d.attachments(ctx, detail, e.AttachResume, e.AttachCoverLetter)

	data := newMailContext(detail.ApplicationContext, d.now())
	data.HRName = e.HRName
	data.CustomMessage = e.CustomMessage
	data.HasResume = hasResume
	data.HasCoverLetter = hasCover

	text, err := renderText(tmplHRText, data)
	if err != nil {
		return d.failed(ctx, fmt.Errorf("render %s: %w", tmplHRText, err), "application_id", detail.Application.ID)
	}
	html, err := renderHTML(tmplHRHTML, data)
	if err != nil {
		return d.failed(ctx, fmt.Errorf("render %s: %w", tmplHRHTML, err), "application_id", detail.Application.ID)
	}

	subject := e.Subject
	if subject == "" {
		subject = DefaultSubject(detail.ApplicationContext)
	}
	from := d.defaultFrom()
	if detail.Sender != nil {
		from = SenderAddress(*detail.Sender, detail.User)
	}

	msg := &Message{
		From:        from,
		To:          []string{e.To},
		Cc:          ccList(e.Cc),
		Subject:     subject,
		Text:        text,
		HTML:        html,
		Attachments: atts,
	}
	if err := d.deliver(ctx, msg, "application_id", detail.Application.ID); err != nil {
		return err
	}
	detail.Application.MarkSent(d.now())
	return nil
}

// InterviewReminder emails the application's owner about round r.
func (d *Dispatcher) InterviewReminder(ctx context.Context, c models.ApplicationContext, r models.InterviewRound) error {
	if c.User.Email == "" {
		return ErrNoRecipient
	}
	data := newMailContext(c, d.now())
	data.Round = r
	subject := fmt.Sprintf("Interview Reminder: %s at %s", c.Position.Title, c.Company.Name)
	return d.sendToUser(ctx, c, subject, tmplInterviewReminder, data)
}

// StatusUpdate emails the application's owner about a status change.
func (d *Dispatcher) StatusUpdate(ctx context.Context, c models.ApplicationContext, oldStatus, newStatus models.Status) error {
	if c.User.Email == "" {
		return ErrNoRecipient
	}
	data := newMailContext(c, d.now())
	data.OldStatus = oldStatus.Label()
	data.NewStatus = newStatus.Label()
	subject := fmt.Sprintf("Status Update: %s at %s", c.Position.Title, c.Company.Name)
	return d.sendToUser(ctx, c, subject, tmplStatusUpdate, data)
}

// DeadlineReminders emails every owner with an address about the upcoming
// deadline of their application. Owners without an address are skipped and a
// failed send does not stop the batch. It returns the number of emails sent.
func (d *Dispatcher) DeadlineReminders(ctx context.Context, apps []models.ApplicationContext) int {
	sent := 0
	for _, c := range apps {
		if c.User.Email == "" {
			d.logger.Debug(ctx, "deadline reminder skipped, no email", "application_id", c.Application.ID, "user", c.User.UserName)
			continue
		}
		subject := fmt.Sprintf("Application Deadline Reminder: %s", c.Position.Title)
		if err := d.sendToUser(ctx, c, subject, tmplDeadlineReminder, newMailContext(c, d.now())); err != nil {
			continue
		}
		sent++
	}
	return sent
}

// InterviewReminders sends InterviewReminder for each item with the same
// skip-and-continue rules as DeadlineReminders.
func (d *Dispatcher) InterviewReminders(ctx context.Context, items []RoundReminder) int {
	sent := 0
	for _, it := range items {
		if it.Application.User.Email == "" {
			d.logger.Debug(ctx, "interview reminder skipped, no email", "application_id", it.Application.Application.ID)
			continue
		}
		if err := d.InterviewReminder(ctx, it.Application, it.Round); err != nil {
			continue
		}
		sent++
	}
	return sent
}

func (d *Dispatcher) sendToUser(ctx context.Context, c models.ApplicationContext, subject, tmpl string, data mailContext) error {
	body, err := renderText(tmpl, data)
	if err != nil {
		return d.failed(ctx, fmt.Errorf("render %s: %w", tmpl, err), "application_id", c.Application.ID)
	}
	msg := &Message{
		From:    d.defaultFrom(),
		To:      []string{c.User.Email},
		Subject: subject,
		Text:    body,
	}
	return d.deliver(ctx, msg, "application_id", c.Application.ID, "template", tmpl)
}

func (d *Dispatcher) deliver(ctx context.Context, msg *Message, args ...any) error {
	if err := d.transport.Send(ctx, msg); err != nil {
		return d.failed(ctx, err, append(args, "to", strings.Join(msg.To, ","))...)
	}
	d.logger.Info(ctx, "email sent", append(args, "to", strings.Join(msg.To, ","), "attachments", len(msg.Attachments))...)
	return nil
}

func (d *Dispatcher) failed(ctx context.Context, err error, args ...any) error {
	d.logger.Error(ctx, "email send failed", append(args, "error", err)...)
	return fmt.Errorf("%w: %w", common.ErrSendFailed, err)
}

func (d *Dispatcher) defaultFrom() Address {
	return ParseAddress(d.cfg.FromAddress)
}

// attachments loads the requested documents. A document that is not linked,
// missing from storage or unreadable is skipped with a warning.
func (d *Dispatcher) attachments(ctx context.Context, detail *models.ApplicationDetail, resume, cover bool) ([]Attachment, bool, bool) {
	var out []Attachment
	hasResume, hasCover := false, false
	if resume {
		if a, ok := d.load(ctx, detail.Resume, "resume"); ok {
			out = append(out, a)
			hasResume = true
		}
	}
	if cover {
		if a, ok := d.load(ctx, detail.CoverLetter, "cover_letter"); ok {
			out = append(out, a)
			hasCover = true
		}
	}
	return out, hasResume, hasCover
}

func (d *Dispatcher) load(ctx context.Context, doc *models.Document, kind string) (Attachment, bool) {
	if doc == nil || doc.StorageKey == "" {
		return Attachment{}, false
	}
	ok, err := d.store.Exists(ctx, doc.StorageKey)
	if err != nil || !ok {
		d.logger.Warn(ctx, "attachment skipped, file missing", "kind", kind, "document_id", doc.ID, "key", doc.StorageKey, "error", err)
		return Attachment{}, false
	}
	rc, err := d.store.Open(ctx, doc.StorageKey)
	if err != nil {
		d.logger.Warn(ctx, "attachment skipped, open failed", "kind", kind, "document_id", doc.ID, "error", err)
		return Attachment{}, false
	}
	defer rc.Close()
	content, err := io.ReadAll(rc)
	if err != nil {
		d.logger.Warn(ctx, "attachment skipped, read failed", "kind", kind, "document_id", doc.ID, "error", err)
		return Attachment{}, false
	}
	return Attachment{Name: AttachmentName(doc.StorageKey), Content: content}, true
}

// AttachmentName strips the directory and the upload uuid prefix from a
// storage key: documents/2026/10/<uuid>-cv.pdf -> cv.pdf.
func AttachmentName(key string) string {
	base := path.Base(key)
	if len(base) > 37 && base[36] == '-' && uuid.Validate(base[:36]) == nil {
		return base[37:]
	}
	return base
}

// SenderAddress formats a sender alias as "label or display name <alias>".
func SenderAddress(alias models.UserEmail, user models.User) Address {
	name := alias.Label
	if name == "" {
		name = user.DisplayName()
	}
	return Address{Name: name, Email: alias.Email}
}

func ccList(cc string) []string {
	if cc == "" {
		return nil
	}
	return []string{cc}
}
