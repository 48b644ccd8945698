// Package notify delivers owner alerts to whichever transport is configured.
// Delivery is best effort: callers go through Dispatcher, which bounds each
// send with a timeout and logs failures instead of returning them.
package notify

import (
	"context"
	"log/slog"
	"time"
)

type Kind string

const (
	KindReservationCreated    Kind = "reservation.created"
	KindInquiryCreated        Kind = "inquiry.created"
	KindBankTransferSubmitted Kind = "bank_transfer.submitted"
)

type Message struct {
	Kind      Kind      `json:"kind"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	SubjectID uint      `json:"subject_id,omitempty"`
	SentAt    time.Time `json:"sent_at"`
}

type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// Nop drops every message. Used when NOTIFY_TRANSPORT=none.
type Nop struct{}

func (Nop) Notify(context.Context, Message) error { return nil }

type Dispatcher struct {
	notifier Notifier
	log      *slog.Logger
	timeout  time.Duration
	now      func() time.Time
}

func NewDispatcher(n Notifier, log *slog.Logger, timeout time.Duration) *Dispatcher {
	if n == nil {
		n = Nop{}
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Dispatcher{notifier: n, log: log, timeout: timeout, now: time.Now}
}

// OwnerAlert sends msg and reports whether it was delivered. The send is
// detached from ctx cancellation so an aborted request still alerts the
// owner about work that already committed.
func (d *Dispatcher) OwnerAlert(ctx context.Context, msg Message) bool {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()

	if msg.SentAt.IsZero() {
		msg.SentAt = d.now().UTC()
	}
	if err := d.notifier.Notify(ctx, msg); err != nil {
		d.log.Warn("owner notification failed", "kind", msg.Kind, "subject_id", msg.SubjectID, "error", err)
		return false
	}
	return true
}
