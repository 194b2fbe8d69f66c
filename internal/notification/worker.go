package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/rs/zerolog/log"

	"room-booking-console/internal/model"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// SubscriptionStore is the part of the store the workers need.
type SubscriptionStore interface {
	SubscriptionsForRoom(ctx context.Context, tenant string, roomID int64) ([]model.PushSubscription, error)
	DeleteSubscription(ctx context.Context, endpoint string) error
}

// Payload is the JSON body delivered to the browser.
type Payload struct {
	Title     string              `json:"title"`
	Body      string              `json:"body"`
	RoomID    int64               `json:"room_id"`
	BookingID int64               `json:"booking_id,omitempty"`
	Action    model.BookingAction `json:"action"`
}

// WorkerPool manages a pool of workers for sending notifications.
type WorkerPool struct {
	size    int
	jobs    chan model.BookingEvent
	store   SubscriptionStore
	webpush *webpush.Options
	sender  NotificationSender
	wg      sync.WaitGroup
}

// NewWorkerPool creates a new worker pool. queueSize bounds the number of
// events waiting for a worker.
func NewWorkerPool(size, queueSize int, store SubscriptionStore, webpushOptions *webpush.Options) *WorkerPool {
	if size < 1 {
		size = 1
	}
	if queueSize < 1 {
		queueSize = size
	}
	return &WorkerPool{
		size:    size,
		jobs:    make(chan model.BookingEvent, queueSize),
		store:   store,
		webpush: webpushOptions,
		sender:  &WebPushSender{}, // Use the real sender by default
	}
}

// Start launches the worker goroutines. They stop when ctx is done.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, i)
	}
}

// Wait blocks until every worker has returned.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	defer wp.wg.Done()
	log.Debug().Int("worker", id).Msg("notification worker started")
	for {
		select {
		case event := <-wp.jobs:
			wp.sendNotificationsForEvent(ctx, event)
		case <-ctx.Done():
			log.Debug().Int("worker", id).Msg("notification worker shutting down")
			return
		}
	}
}

// Dispatch queues an event without blocking. When the queue is full the
// event is dropped.
func (wp *WorkerPool) Dispatch(event model.BookingEvent) {
	select {
	case wp.jobs <- event:
	default:
		log.Warn().
			Str("tenant", event.Tenant).
			Int64("room_id", event.RoomID).
			Int64("booking_id", event.BookingID).
			Msg("notification queue full, dropping booking event")
	}
}

// UseSender replaces the push transport. It must be called before Start.
func (wp *WorkerPool) UseSender(s NotificationSender) {
	wp.sender = s
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan model.BookingEvent {
	return wp.jobs
}

// Message renders the notification text of an event.
func Message(event model.BookingEvent) Payload {
	label := event.Title
	if label == "" {
		label = fmt.Sprintf("#%d", event.BookingID)
	}
	p := Payload{RoomID: event.RoomID, BookingID: event.BookingID, Action: event.Action}
	switch event.Action {
	case model.BookingCreated:
		p.Title = "Đặt phòng mới"
	case model.BookingUpdated:
		p.Title = "Đặt phòng đã cập nhật"
	case model.BookingDeleted:
		p.Title = "Đặt phòng đã bị xóa"
	default:
		p.Title = "Đặt phòng thay đổi"
	}
	p.Body = fmt.Sprintf("%s (phòng %d)", label, event.RoomID)
	return p
}

func (wp *WorkerPool) sendNotificationsForEvent(ctx context.Context, event model.BookingEvent) {
	if event.RoomID == 0 {
		return
	}
	subscriptions, err := wp.store.SubscriptionsForRoom(ctx, event.Tenant, event.RoomID)
	if err != nil {
		log.Error().Err(err).Int64("room_id", event.RoomID).Msg("failed to fetch subscriptions")
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	payload, err := json.Marshal(Message(event))
	if err != nil {
		log.Error().Err(err).Msg("failed to encode notification payload")
		return
	}

	log.Info().Int("count", len(subscriptions)).Int64("room_id", event.RoomID).Str("action", string(event.Action)).Msg("sending booking notifications")
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, payload)
	}
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Warn().Err(err).Str("endpoint", sub.Endpoint).Msg("failed to send notification")
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == http.StatusGone {
		log.Info().Str("endpoint", sub.Endpoint).Msg("subscription expired, deleting")
		if err := wp.store.DeleteSubscription(ctx, sub.Endpoint); err != nil {
			log.Error().Err(err).Str("endpoint", sub.Endpoint).Msg("failed to delete expired subscription")
		}
	}
}
