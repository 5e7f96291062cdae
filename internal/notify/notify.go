// Package notify announces finished merges on NATS so downstream renderers
// can pick up the new document.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	ferrors "git.home.luguber.info/inful/docmerge/internal/foundation/errors"
	"git.home.luguber.info/inful/docmerge/internal/logfields"
)

// DefaultSubject is used when no subject is configured.
const DefaultSubject = "docmerge.built"

// FlushTimeout bounds the wait for the server acknowledgement when the
// caller's context carries no deadline.
const FlushTimeout = 5 * time.Second

// Event is the JSON payload published after a successful write.
type Event struct {
	BuildID     string    `json:"build_id"`
	Output      string    `json:"output"`
	Fingerprint string    `json:"fingerprint"`
	Unchanged   bool      `json:"unchanged"`
	Mode        string    `json:"mode"`
	Files       int       `json:"files"`
	Revision    string    `json:"revision,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Publisher sends run events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NATSPublisher publishes events on a core NATS subject.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
}

// Connect dials the NATS server at url.
func Connect(url, subject string) (*NATSPublisher, error) {
	if subject == "" {
		subject = DefaultSubject
	}
	conn, err := nats.Connect(url,
		nats.Name("docmerge"),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, ferrors.NotifyError(fmt.Sprintf("failed to connect to NATS at %s", url)).
			WithCause(err).
			WithContext("url", url).
			Build()
	}
	slog.Debug("NATS publisher connected", logfields.URL(url), slog.String("subject", subject))
	return &NATSPublisher{conn: conn, subject: subject}, nil
}

// Subject returns the subject events go to.
func (p *NATSPublisher) Subject() string { return p.subject }

// Publish sends event and waits for the server to acknowledge the flush.
func (p *NATSPublisher) Publish(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return ferrors.InternalError("failed to marshal event").WithCause(err).Build()
	}

	if err := p.conn.Publish(p.subject, data); err != nil {
		return publishError(p.subject, err)
	}
	// FlushWithContext rejects contexts without a deadline.
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, FlushTimeout)
		defer cancel()
	}
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return publishError(p.subject, err)
	}

	slog.Debug("Published build event", logfields.BuildID(event.BuildID), slog.String("subject", p.subject))
	return nil
}

// Close drains and closes the connection.
func (p *NATSPublisher) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Drain()
}

func publishError(subject string, err error) error {
	return ferrors.NotifyError(fmt.Sprintf("failed to publish to %s", subject)).
		WithCause(err).
		WithContext("subject", subject).
		Build()
}
