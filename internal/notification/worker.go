package notification

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"

	"rental-admin-backend/internal/model"
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

// SubscriptionSource lists and removes push subscriptions.
type SubscriptionSource interface {
	ListPushSubscriptions(ctx context.Context) ([]model.PushSubscription, error)
	DeletePushSubscription(ctx context.Context, endpoint string) error
}

// WorkerPool pushes action outcomes to subscribed browsers.
type WorkerPool struct {
	size    int
	jobs    chan Notice
	subs    SubscriptionSource
	webpush *webpush.Options
	sender  NotificationSender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, subs SubscriptionSource, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan Notice, size*16),
		subs:    subs,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Worker %d started", id)
	for {
		select {
		case n := <-wp.jobs:
			wp.push(ctx, n)
		case <-ctx.Done():
			log.Printf("Worker %d shutting down", id)
			return
		}
	}
}

// Notify queues n for delivery. Notices are dropped when the queue is full
// so a slow push service never stalls a dashboard request.
func (wp *WorkerPool) Notify(_ context.Context, n Notice) {
	select {
	case wp.jobs <- n:
	default:
		log.Printf("Push queue full, dropping %s notice for %s", n.Kind, n.Action)
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan Notice {
	return wp.jobs
}

type pushPayload struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Kind     Kind   `json:"kind"`
	Vertical string `json:"vertical"`
}

func (wp *WorkerPool) push(ctx context.Context, n Notice) {
	subscriptions, err := wp.subs.ListPushSubscriptions(ctx)
	if err != nil {
		log.Printf("Error fetching push subscriptions: %v", err)
		return
	}

	payload, err := json.Marshal(pushPayload{Title: n.Title, Body: n.Message, Kind: n.Kind, Vertical: n.Vertical})
	if err != nil {
		log.Printf("Error encoding notice for %s: %v", n.Action, err)
		return
	}

	sent := 0
	for _, sub := range subscriptions {
		if !sub.Wants(n.Vertical) {
			continue
		}
		wp.sendNotification(ctx, sub, payload)
		sent++
	}
	if sent > 0 {
		log.Printf("Pushed %s notice for %s to %d subscriptions", n.Kind, n.Action, sent)
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
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.subs.DeletePushSubscription(ctx, sub.Endpoint); err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
