// Package notify publishes dataset refresh events to NATS.
package notify

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/laninge/indexfonder-se/internal/config"
)

// DatasetUpdatedEvent announces a refreshed funds.json.
type DatasetUpdatedEvent struct {
	RunID       string    `json:"run_id"`
	Source      string    `json:"source"`
	GlobalFunds int       `json:"global_funds"`
	SwedenFunds int       `json:"sweden_funds"`
	Output      string    `json:"output"`
	Timestamp   time.Time `json:"timestamp"`
}

// Publisher wraps a NATS connection for event publishing.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

// NewPublisher connects to NATS using the daemon's nats section.
func NewPublisher(cfg *config.NATSConfig) (*Publisher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nats config is required")
	}
	conn, err := nats.Connect(cfg.URL,
		nats.Name("indexfonder"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	slog.Info("NATS publisher connected", "url", cfg.URL, "subject", cfg.Subject)
	return &Publisher{conn: conn, subject: cfg.Subject}, nil
}

// PublishDatasetUpdated emits one event; timestamps are stamped here.
func (p *Publisher) PublishDatasetUpdated(event *DatasetUpdatedEvent) error {
	event.Timestamp = time.Now()
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Close flushes and closes the connection.
func (p *Publisher) Close() {
	if p.conn != nil {
		_ = p.conn.Flush()
		p.conn.Close()
	}
}
