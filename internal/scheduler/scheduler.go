package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"go-backoffice/internal/config"
	"go-backoffice/internal/model"
	"go-backoffice/internal/repository/mongodb"
	"go-backoffice/internal/repository/sheets"
	"go-backoffice/internal/service"
	"go-backoffice/internal/ws"
)

const digestTimeout = 2 * time.Minute

// AdminLookup finds the users who receive the daily digest.
type AdminLookup interface {
	FindActiveByRole(roleCode string) ([]model.User, error)
}

// NotificationStore persists in-app notifications.
type NotificationStore interface {
	Create(n *model.Notification) error
}

// Scheduler runs the daily sales digest on a cron schedule.
type Scheduler struct {
	cron          *cron.Cron
	schedule      string
	loc           *time.Location
	reports       service.ReportService
	archive       mongodb.ReportArchive
	sheet         sheets.ReportSheet
	users         AdminLookup
	notifications NotificationStore
	events        service.EventPublisher
	logger        *zap.Logger
	now           func() time.Time
}

// Option attaches an optional digest destination.
type Option func(*Scheduler)

func WithArchive(archive mongodb.ReportArchive) Option {
	return func(s *Scheduler) { s.archive = archive }
}

func WithSheet(sheet sheets.ReportSheet) Option {
	return func(s *Scheduler) { s.sheet = sheet }
}

// NewScheduler creates a new scheduler instance. Schedules are evaluated in the reporting time zone.
func NewScheduler(cfg config.ReportingConfig, reports service.ReportService, users AdminLookup,
	notifications NotificationStore, events service.EventPublisher, logger *zap.Logger, opts ...Option) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	loc := cfg.Location()

	s := &Scheduler{
		cron:          cron.New(cron.WithLocation(loc)),
		schedule:      cfg.CronSchedule,
		loc:           loc,
		reports:       reports,
		users:         users,
		notifications: notifications,
		events:        events,
		logger:        logger,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start schedules the digest and starts the cron runner.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runDailyDigest); err != nil {
		return fmt.Errorf("schedule daily digest %q: %w", s.schedule, err)
	}
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule), zap.String("timezone", s.loc.String()))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running digest to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runDailyDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), digestTimeout)
	defer cancel()

	if err := s.RunDailyDigest(ctx); err != nil {
		s.logger.Error("daily digest failed", zap.Error(err))
	}
}

// RunDailyDigest computes the global summary, exports it to the configured
// destinations and notifies every active admin. Export failures do not stop
// the admin notification; all failures are returned together.
func (s *Scheduler) RunDailyDigest(ctx context.Context) error {
	summary, err := s.reports.Summary(ctx, service.Scope{All: true}, service.Window{})
	if err != nil {
		return fmt.Errorf("compute summary: %w", err)
	}
	day := s.now().In(s.loc).Format("2006-01-02")

	var errs []error
	if s.archive != nil {
		if err := s.archive.SaveDailySummary(ctx, day, *summary); err != nil {
			errs = append(errs, fmt.Errorf("archive summary: %w", err))
		}
	}
	if s.sheet != nil {
		if err := s.sheet.AppendDailySummary(ctx, day, *summary); err != nil {
			errs = append(errs, fmt.Errorf("append summary row: %w", err))
		}
	}

	if err := s.notifyAdmins(ctx, day, summary); err != nil {
		errs = append(errs, err)
	}

	s.logger.Info("daily digest done",
		zap.String("day", day),
		zap.Int64("today_transactions", summary.TodayTransactions),
		zap.String("today_revenue", summary.TodayRevenue.StringFixed(2)),
		zap.Int("errors", len(errs)))
	return errors.Join(errs...)
}

func (s *Scheduler) notifyAdmins(ctx context.Context, day string, summary *model.SalesSummary) error {
	admins, err := s.users.FindActiveByRole(model.RoleAdmin)
	if err != nil {
		return fmt.Errorf("find admins: %w", err)
	}

	message := DigestMessage(day, summary)
	var (
		errs    []error
		created []model.Notification
	)
	for _, admin := range admins {
		n := model.Notification{UserID: admin.ID, Message: message, Type: model.NotificationInfo}
		if err := s.notifications.Create(&n); err != nil {
			errs = append(errs, fmt.Errorf("notify %s: %w", admin.ID, err))
			continue
		}
		created = append(created, n)
	}

	if s.events == nil {
		return errors.Join(errs...)
	}
	for _, n := range created {
		event := ws.Event{Type: ws.EventNotification, Data: n}
		if err := s.events.SendToUsers(ctx, []uuid.UUID{n.UserID}, event); err != nil {
			s.logger.Warn("digest push failed", zap.String("user_id", n.UserID.String()), zap.Error(err))
		}
	}
	return errors.Join(errs...)
}

// DigestMessage is the admin notification text for one day's summary.
func DigestMessage(day string, s *model.SalesSummary) string {
	return fmt.Sprintf("Daily summary for %s: %d sales today (%s %s), %d this week (%s %s), %d of %d products low on stock",
		day,
		s.TodayTransactions, s.Currency, s.TodayRevenue.StringFixed(2),
		s.WeekTransactions, s.Currency, s.WeekRevenue.StringFixed(2),
		s.LowStockProducts, s.TotalProducts)
}
