package client

import (
	"sync"
	"time"
)

// DefaultToastDuration applies when Add is given a zero duration
const DefaultToastDuration = 3 * time.Second

// ToastType picks the toast styling
type ToastType string

const (
	ToastSuccess ToastType = "success"
	ToastError   ToastType = "error"
	ToastInfo    ToastType = "info"
	ToastWarning ToastType = "warning"
)

// Toast is one transient message
type Toast struct {
	ID      int64
	Message string
	Type    ToastType
	Expires time.Time
}

// Timer is the handle returned by Clock.AfterFunc
type Timer interface {
	Stop() bool
}

// Clock schedules toast expiry
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Toaster is a queue of messages that each expire on their own
type Toaster struct {
	clock Clock

	mu     sync.Mutex
	nextID int64
	toasts []Toast
	timers map[int64]Timer
}

// NewToaster creates a Toaster. A nil clock uses wall time.
func NewToaster(clock Clock) *Toaster {
	if clock == nil {
		clock = realClock{}
	}
	return &Toaster{clock: clock, timers: map[int64]Timer{}}
}

// Add queues message and returns its id. It disappears after d, or after
// DefaultToastDuration when d is zero.
func (t *Toaster) Add(message string, typ ToastType, d time.Duration) int64 {
	if d <= 0 {
		d = DefaultToastDuration
	}
	switch typ {
	case ToastSuccess, ToastError, ToastWarning:
	default:
		typ = ToastInfo
	}

	t.mu.Lock()
	t.nextID++
	id := t.nextID
	t.toasts = append(t.toasts, Toast{ID: id, Message: message, Type: typ, Expires: t.clock.Now().Add(d)})
	t.mu.Unlock()

	timer := t.clock.AfterFunc(d, func() { t.Remove(id) })

	t.mu.Lock()
	if t.exists(id) {
		t.timers[id] = timer
	} else {
		timer.Stop()
	}
	t.mu.Unlock()
	return id
}

func (t *Toaster) Success(message string) int64 { return t.Add(message, ToastSuccess, 0) }
func (t *Toaster) Error(message string) int64   { return t.Add(message, ToastError, 0) }
func (t *Toaster) Info(message string) int64    { return t.Add(message, ToastInfo, 0) }
func (t *Toaster) Warning(message string) int64 { return t.Add(message, ToastWarning, 0) }

// Remove drops a toast early. Unknown ids are ignored.
func (t *Toaster) Remove(id int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if timer, ok := t.timers[id]; ok {
		timer.Stop()
		delete(t.timers, id)
	}
	for i, toast := range t.toasts {
		if toast.ID == id {
			t.toasts = append(t.toasts[:i], t.toasts[i+1:]...)
			return
		}
	}
}

// Active returns the visible toasts, oldest first.
func (t *Toaster) Active() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Toast, len(t.toasts))
	copy(out, t.toasts)
	return out
}

func (t *Toaster) exists(id int64) bool {
	for _, toast := range t.toasts {
		if toast.ID == id {
			return true
		}
	}
	return false
}
