package client

import (
	"context"
	"net/http"
	"time"
)

// DefaultPollInterval is how often the notification bell refreshes
const DefaultPollInterval = 180 * time.Second

// NotificationPoller refreshes the notification list in the background
type NotificationPoller struct {
	client   *Client
	interval time.Duration
	onUpdate func(NotificationList)
	onError  func(error)
}

// NewNotificationPoller calls onUpdate after every successful fetch. A zero
// interval uses DefaultPollInterval.
func NewNotificationPoller(c *Client, interval time.Duration, onUpdate func(NotificationList)) *NotificationPoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &NotificationPoller{client: c, interval: interval, onUpdate: onUpdate}
}

// OnError registers a handler for failures other than 401.
func (p *NotificationPoller) OnError(fn func(error)) *NotificationPoller {
	p.onError = fn
	return p
}

// Run fetches immediately, then on every tick until ctx is done.
func (p *NotificationPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *NotificationPoller) poll(ctx context.Context) {
	// anonymous visitors poll too; their 401s are expected
	if p.client.store.Token() == "" {
		return
	}
	list, err := p.client.Notifications(ctx)
	switch {
	case err == nil:
		if p.onUpdate != nil {
			p.onUpdate(*list)
		}
	case IsStatus(err, http.StatusUnauthorized), ctx.Err() != nil:
	default:
		if p.onError != nil {
			p.onError(err)
		}
	}
}
