package services

import (
	"context"
	"errors"

	"github.com/Shubham-musmade/interview-tracker/internal/common"
	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
	"github.com/Shubham-musmade/interview-tracker/internal/server/notify"
)

// Notifier sends the tracker's email. *notify.Dispatcher implements it.
type Notifier interface {
	SendApplicationEmail(ctx context.Context, detail *models.ApplicationDetail, e notify.ApplicationEmail) error
	SendHREmail(ctx context.Context, detail *models.ApplicationDetail, e notify.HREmail) error
	InterviewReminder(ctx context.Context, c models.ApplicationContext, r models.InterviewRound) error
	InterviewReminders(ctx context.Context, items []notify.RoundReminder) int
	StatusUpdate(ctx context.Context, c models.ApplicationContext, oldStatus, newStatus models.Status) error
	DeadlineReminders(ctx context.Context, apps []models.ApplicationContext) int
}

var _ Notifier = (*notify.Dispatcher)(nil)

func isNotFound(err error) bool {
	return errors.Is(err, common.ErrorNotFound)
}
