// Package reminder periodically scans for equipment that is overdue for
// cleaning and dispatches push reminders through the worker pool.
package reminder

import (
	"context"
	"log"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"equipment-tracker-backend/config"
	"equipment-tracker-backend/internal/notification"
	"equipment-tracker-backend/internal/store"
)

// Service orchestrates the periodic overdue-equipment scan.
type Service struct {
	cfg        *config.Config
	store      store.Store
	workerPool *notification.WorkerPool
}

// NewService creates and initializes a new reminder service.
func NewService(cfg *config.Config, s store.Store) *Service {
	webpushOptions := webpush.Options{
		VAPIDPublicKey:  cfg.Push.PublicKey,
		VAPIDPrivateKey: cfg.Push.PrivateKey,
		Subscriber:      cfg.Push.Subject,
		TTL:             cfg.Push.TTL,
	}

	return &Service{
		cfg:        cfg,
		store:      s,
		workerPool: notification.NewWorkerPool(cfg.WorkerPool.Size, s, &webpushOptions),
	}
}

// Run starts the scan loop. It blocks until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Reminder.Enabled {
		log.Println("Reminder service is disabled. Not starting.")
		return
	}
	log.Println("Starting reminder service...")

	s.workerPool.Start(ctx)

	s.CheckOnce(ctx)

	timer := time.NewTimer(s.cfg.Reminder.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Reminder service shutting down.")
			return
		case <-timer.C:
			s.CheckOnce(ctx)
			timer.Reset(s.cfg.Reminder.Interval)
		}
	}
}

// CheckOnce performs a single scan and dispatches a reminder job for
// every overdue record.
func (s *Service) CheckOnce(ctx context.Context) {
	cutoff := s.overdueCutoff(time.Now().UTC())

	overdue, err := s.store.ListCleaningOverdue(ctx, cutoff)
	if err != nil {
		log.Printf("Error listing overdue equipment: %v", err)
		return
	}
	if len(overdue) == 0 {
		return
	}

	log.Printf("Dispatching reminders for %d overdue equipment records", len(overdue))
	for _, e := range overdue {
		s.workerPool.Dispatch(e.ID)
	}
}

// overdueCutoff returns the date before which a last cleaned date counts
// as overdue, formatted to match the stored fixed-width ISO strings.
func (s *Service) overdueCutoff(now time.Time) string {
	return now.AddDate(0, 0, -s.cfg.Reminder.OverdueAfterDays).Format("2006-01-02")
}
