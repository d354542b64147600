// Package messaging provides the NATS JetStream implementation of the batch
// event publisher.
package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/acailic/video-nugget/internal/config"
	"github.com/acailic/video-nugget/internal/domain/messaging"
	"github.com/acailic/video-nugget/internal/port/outbound"

	"github.com/nats-io/nats.go"
)

const (
	// NATS connection timeout.
	natsConnectionTimeoutSeconds = 5

	// Stream configuration.
	streamName        = "BATCH_EVENTS"
	streamSubjects    = "batch.>"
	streamMaxAgeHours = 24
)

// PublishMetrics tracks event publishing metrics.
type PublishMetrics struct {
	PublishedCount    int64     `json:"published_count"`
	FailedCount       int64     `json:"failed_count"`
	LastPublishedTime time.Time `json:"last_published_time"`
}

// NATSEventPublisher publishes batch lifecycle events to NATS JetStream.
type NATSEventPublisher struct {
	config     config.NATSConfig
	conn       *nats.Conn
	js         nats.JetStreamContext
	isTestMode bool
	metrics    PublishMetrics
	published  []messaging.BatchEvent // test mode capture
	mutex      sync.Mutex
}

// NewNATSEventPublisher creates a NATS event publisher. In test mode no
// connection is made and published events are captured in memory.
func NewNATSEventPublisher(cfg config.NATSConfig) (*NATSEventPublisher, error) {
	if cfg.URL == "" {
		return nil, errors.New("NATS URL cannot be empty")
	}
	if !strings.HasPrefix(cfg.URL, "nats://") {
		return nil, errors.New("invalid NATS URL scheme")
	}
	if cfg.MaxReconnects < 0 {
		return nil, errors.New("max reconnects cannot be negative")
	}
	if cfg.ReconnectWait < 0 {
		return nil, errors.New("reconnect wait cannot be negative")
	}

	publisher := &NATSEventPublisher{
		config:     cfg,
		isTestMode: cfg.TestMode,
	}
	if cfg.TestMode {
		return publisher, nil
	}

	if err := publisher.connect(); err != nil {
		return nil, err
	}
	return publisher, nil
}

func (p *NATSEventPublisher) connect() error {
	conn, err := nats.Connect(
		p.config.URL,
		nats.MaxReconnects(p.config.MaxReconnects),
		nats.ReconnectWait(p.config.ReconnectWait),
		nats.Timeout(natsConnectionTimeoutSeconds*time.Second),
	)
	if err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create JetStream context: %w", err)
	}

	p.conn = conn
	p.js = js
	return p.ensureStream()
}

// ensureStream creates the batch event stream if it does not exist yet.
func (p *NATSEventPublisher) ensureStream() error {
	_, err := p.js.StreamInfo(streamName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, nats.ErrStreamNotFound) {
		return fmt.Errorf("failed to look up stream: %w", err)
	}

	_, err = p.js.AddStream(&nats.StreamConfig{
		Name:     streamName,
		Subjects: []string{streamSubjects},
		MaxAge:   streamMaxAgeHours * time.Hour,
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}
	return nil
}

// PublishBatchEvent publishes one lifecycle event on its type subject.
func (p *NATSEventPublisher) PublishBatchEvent(ctx context.Context, event messaging.BatchEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to serialize batch event: %w", err)
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.isTestMode {
		p.published = append(p.published, event)
		p.metrics.PublishedCount++
		p.metrics.LastPublishedTime = time.Now()
		return nil
	}

	if _, err := p.js.Publish(string(event.Type), data); err != nil {
		p.metrics.FailedCount++
		return fmt.Errorf("failed to publish batch event: %w", err)
	}

	p.metrics.PublishedCount++
	p.metrics.LastPublishedTime = time.Now()
	return nil
}

// Metrics returns a copy of the publishing metrics.
func (p *NATSEventPublisher) Metrics() PublishMetrics {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.metrics
}

// PublishedEvents returns events captured in test mode.
func (p *NATSEventPublisher) PublishedEvents() []messaging.BatchEvent {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return append([]messaging.BatchEvent(nil), p.published...)
}

// Close drains the NATS connection.
func (p *NATSEventPublisher) Close() error {
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}

var _ outbound.EventPublisher = (*NATSEventPublisher)(nil)
