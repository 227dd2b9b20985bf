package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"

	"equipment-tracker-backend/internal/model"
	"equipment-tracker-backend/internal/store"
)

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of Sender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool manages a pool of workers for sending cleaning reminders.
type WorkerPool struct {
	size    int
	jobs    chan int64
	store   store.Store
	webpush *webpush.Options
	sender  Sender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, s store.Store, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan int64, size), // Buffered channel
		store:   s,
		webpush: webpushOptions,
		sender:  &WebPushSender{}, // Use the real sender by default
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

// worker is the actual worker goroutine.
func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Reminder worker %d started", id)
	for {
		select {
		case equipmentID := <-wp.jobs:
			log.Printf("Reminder worker %d processing equipment %d", id, equipmentID)
			wp.sendRemindersForEquipment(ctx, equipmentID)
		case <-ctx.Done():
			log.Printf("Reminder worker %d shutting down", id)
			return
		}
	}
}

// Dispatch sends a job to the worker pool.
func (wp *WorkerPool) Dispatch(equipmentID int64) {
	wp.jobs <- equipmentID
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan int64 {
	return wp.jobs
}

// sendRemindersForEquipment fetches all subscriptions and sends a
// cleaning-overdue reminder for the given equipment.
func (wp *WorkerPool) sendRemindersForEquipment(ctx context.Context, equipmentID int64) {
	var subscriptions []model.PushSubscription
	if err := wp.store.DB().WithContext(ctx).Find(&subscriptions).Error; err != nil {
		log.Printf("Error fetching subscriptions for equipment %d: %v", equipmentID, err)
		return
	}

	if len(subscriptions) == 0 {
		return
	}

	label := fmt.Sprintf("#%d", equipmentID)
	if equipment, err := wp.store.GetEquipment(ctx, equipmentID); err != nil {
		log.Printf("Error fetching equipment %d: %v", equipmentID, err)
	} else if equipment.Name != "" {
		label = equipment.Name
	}

	log.Printf("Sending %d reminders for equipment %d", len(subscriptions), equipmentID)

	message := fmt.Sprintf("Equipment %s is overdue for cleaning", label)
	for _, sub := range subscriptions {
		wp.sendReminder(ctx, sub, []byte(message))
	}
}

// sendReminder sends a single web push notification.
func (wp *WorkerPool) sendReminder(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending reminder to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.store.DB().WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
