package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/scriptorium/curation-reconciler/internal/adapter"
	"github.com/scriptorium/curation-reconciler/internal/domain"
	"github.com/scriptorium/curation-reconciler/internal/logger"
)

const (
	// SubjectPaymentConfirmed carries confirmations of settled donations
	SubjectPaymentConfirmed = "donation.payment.confirmed"
	// SubjectDonationNotification carries recipient-facing notifications
	SubjectDonationNotification = "donation.notification"
)

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	// PublishRetryMax bounds the per-publish retry loop
	PublishRetryMax uint64
}

// PaymentConfirmedEvent is published when a donation reaches a terminal
// succeeded state on the ledger
type PaymentConfirmedEvent struct {
	EventID       string                  `json:"event_id"`
	TransactionID uuid.UUID               `json:"transaction_id"`
	Chain         domain.Chain            `json:"chain"`
	TxHash        string                  `json:"tx_hash"`
	Amount        string                  `json:"amount"`
	Currency      string                  `json:"currency"`
	SenderID      uint64                  `json:"sender_id"`
	RecipientID   uint64                  `json:"recipient_id"`
	TargetID      uint64                  `json:"target_id"`
	Outcome       domain.ReconcileOutcome `json:"outcome"`
	Timestamp     time.Time               `json:"timestamp"`
}

// DonationNotificationEvent is published so the recipient can be notified
// of a confirmed donation
type DonationNotificationEvent struct {
	EventID       string    `json:"event_id"`
	TransactionID uuid.UUID `json:"transaction_id"`
	SenderID      uint64    `json:"sender_id"`
	RecipientID   uint64    `json:"recipient_id"`
	TargetID      uint64    `json:"target_id"`
	Timestamp     time.Time `json:"timestamp"`
}

// Notifier publishes donation lifecycle events to NATS JetStream
//
//go:generate mockgen -source=notifier.go -destination=../mocks/notifier.go -package=mocks -mock_names=Notifier=MockNotifier
type Notifier interface {
	// PublishPaymentConfirmed publishes a payment confirmation event
	PublishPaymentConfirmed(ctx context.Context, event PaymentConfirmedEvent) error
	// PublishDonationNotification publishes a recipient notification event
	PublishDonationNotification(ctx context.Context, event DonationNotificationEvent) error
	// Close closes the NATS connection
	Close()
}

type notifier struct {
	nc       adapter.NatsConn
	js       adapter.JetStream
	json     adapter.JSON
	clock    adapter.Clock
	retryMax uint64
}

// NewNotifier connects to NATS and creates a JetStream notifier
func NewNotifier(cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON, clock adapter.Clock) (Notifier, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	retryMax := cfg.PublishRetryMax
	if retryMax == 0 {
		retryMax = 5
	}

	return &notifier{
		nc:       nc,
		js:       js,
		json:     jsonAdapter,
		clock:    clock,
		retryMax: retryMax,
	}, nil
}

// NewEventID returns a lexicographically sortable event identifier
func NewEventID() string {
	return ulid.Make().String()
}

// PublishPaymentConfirmed publishes a payment confirmation event
func (n *notifier) PublishPaymentConfirmed(ctx context.Context, event PaymentConfirmedEvent) error {
	if event.EventID == "" {
		event.EventID = NewEventID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = n.clock.Now().UTC()
	}
	return n.publish(ctx, SubjectPaymentConfirmed, event)
}

// PublishDonationNotification publishes a recipient notification event
func (n *notifier) PublishDonationNotification(ctx context.Context, event DonationNotificationEvent) error {
	if event.EventID == "" {
		event.EventID = NewEventID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = n.clock.Now().UTC()
	}
	return n.publish(ctx, SubjectDonationNotification, event)
}

func (n *notifier) publish(ctx context.Context, subject string, event interface{}) error {
	data, err := n.json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	operation := func() error {
		_, err := n.js.Publish(ctx, subject, data)
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), n.retryMax),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}

	return nil
}

// Close closes the NATS connection
func (n *notifier) Close() {
	if n.nc == nil {
		return
	}

	n.nc.Close()
}
