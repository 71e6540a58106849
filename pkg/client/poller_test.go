package client

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationPoller_Updates(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.handle("GET /notifications", http.StatusOK,
		`{"notifications":[{"id":1,"user_id":3001,"message":"yeni etkinlik","is_read":false,"created_at":"2025-05-01T10:00:00Z"}],"unread_count":1}`)

	store := NewMemoryStore()
	require.NoError(t, store.Set(TokenKey, "tok"))
	c := New(srv.URL, WithTokenStore(store))

	var mu sync.Mutex
	var got []NotificationList
	p := NewNotificationPoller(c, 10*time.Millisecond, func(l NotificationList) {
		mu.Lock()
		got = append(got, l)
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) >= 2
	}, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, int64(1), got[0].UnreadCount)
	assert.Equal(t, "Bearer tok", api.calls()[0].Auth)
}

func TestNotificationPoller_Swallows401(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.handle("GET /notifications", http.StatusUnauthorized,
		`{"success":false,"error":{"code":"AUTH_006","message":"Token expired"}}`)

	store := NewMemoryStore()
	require.NoError(t, store.Set(TokenKey, "expired"))
	c := New(srv.URL, WithTokenStore(store))

	var errs []error
	updated := false
	p := NewNotificationPoller(c, time.Hour, func(NotificationList) { updated = true }).
		OnError(func(err error) { errs = append(errs, err) })

	p.poll(context.Background())
	assert.False(t, updated)
	assert.Empty(t, errs)
	assert.Len(t, api.calls(), 1)
}

func TestNotificationPoller_ReportsOtherErrors(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.handle("GET /notifications", http.StatusInternalServerError,
		`{"success":false,"error":{"code":"SRV_001","message":"Internal server error"}}`)

	store := NewMemoryStore()
	require.NoError(t, store.Set(TokenKey, "tok"))

	var errs []error
	p := NewNotificationPoller(New(srv.URL, WithTokenStore(store)), 0, nil).
		OnError(func(err error) { errs = append(errs, err) })
	assert.Equal(t, DefaultPollInterval, p.interval)

	p.poll(context.Background())
	require.Len(t, errs, 1)
	var apiErr *APIError
	assert.True(t, errors.As(errs[0], &apiErr))
}

func TestNotificationPoller_SkipsAnonymous(t *testing.T) {
	api, srv := newFakeAPI(t)
	p := NewNotificationPoller(New(srv.URL), time.Hour, nil)
	p.poll(context.Background())
	assert.Empty(t, api.calls())
}
