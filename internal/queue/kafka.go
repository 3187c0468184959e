package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"brewmetrics/internal/metrics"
	"brewmetrics/internal/models"
)

// Producer errors
var (
	ErrProducerClosed  = errors.New("producer is closed")
	ErrSerializeFailed = errors.New("failed to serialize alert")
)

// ProducerStats is a snapshot of the producer counters
type ProducerStats struct {
	MessagesSent   uint64
	MessagesFailed uint64
	BytesWritten   uint64
}

// Producer publishes alerts to the alerts topic. Messages are partitioned by
// alert category, so alerts of one category stay ordered.
type Producer struct {
	writer *kafka.Writer
	closed atomic.Bool

	messagesSent   atomic.Uint64
	messagesFailed atomic.Uint64
	bytesWritten   atomic.Uint64
}

// NewProducer creates a synchronous producer for the given topic
func NewProducer(brokers []string, topic string) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("at least one broker is required")
	}
	if topic == "" {
		return nil, errors.New("topic is required")
	}

	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{}, // Partition by key
			RequiredAcks: kafka.RequireOne,
			Async:        false, // Sync for reliability
		},
	}, nil
}

// Publish sends one alert to the topic
func (p *Producer) Publish(ctx context.Context, alert *models.Alert) error {
	if p.closed.Load() {
		return ErrProducerClosed
	}

	data, err := json.Marshal(alert)
	if err != nil {
		p.messagesFailed.Add(1)
		metrics.KafkaPublishTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("%w: %v", ErrSerializeFailed, err)
	}

	msg := kafka.Message{
		Key:   []byte(alert.Category),
		Value: data,
		Headers: []kafka.Header{
			{Key: "alert_id", Value: []byte(alert.ID)},
			{Key: "severity", Value: []byte(alert.Severity)},
		},
		Time: alert.Timestamp,
	}

	start := time.Now()
	err = p.writer.WriteMessages(ctx, msg)
	metrics.KafkaPublishDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		p.messagesFailed.Add(1)
		metrics.KafkaPublishTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("write alert: %w", err)
	}

	p.messagesSent.Add(1)
	p.bytesWritten.Add(uint64(len(data)))
	metrics.KafkaPublishTotal.WithLabelValues("success").Inc()
	metrics.KafkaBytesWritten.Add(float64(len(data)))

	return nil
}

// Stats returns a snapshot of the producer counters
func (p *Producer) Stats() ProducerStats {
	return ProducerStats{
		MessagesSent:   p.messagesSent.Load(),
		MessagesFailed: p.messagesFailed.Load(),
		BytesWritten:   p.bytesWritten.Load(),
	}
}

// Close flushes and closes the writer. Safe to call more than once.
func (p *Producer) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	return p.writer.Close()
}

// Consumer reads alerts from the alerts topic as part of a consumer group.
// Offsets are committed explicitly after the message is handled.
type Consumer struct {
	reader *kafka.Reader
}

// NewConsumer creates a group consumer for the given topic
func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        brokers,
			Topic:          topic,
			GroupID:        groupID,
			MinBytes:       1,
			MaxBytes:       10e6,
			CommitInterval: 0, // Manual commit
			StartOffset:    kafka.LastOffset,
		}),
	}
}

// Fetch blocks until the next message arrives
func (c *Consumer) Fetch(ctx context.Context) (kafka.Message, error) {
	msg, err := c.reader.FetchMessage(ctx)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("fetch message: %w", err)
	}
	return msg, nil
}

// DecodeAlert decodes a fetched message into an alert
func DecodeAlert(msg kafka.Message) (*models.Alert, error) {
	var alert models.Alert
	if err := json.Unmarshal(msg.Value, &alert); err != nil {
		return nil, fmt.Errorf("decode alert: %w", err)
	}
	return &alert, nil
}

// Commit marks the message as processed
func (c *Consumer) Commit(ctx context.Context, msg kafka.Message) error {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		return fmt.Errorf("commit message: %w", err)
	}
	return nil
}

// Close closes the group reader
func (c *Consumer) Close() error {
	return c.reader.Close()
}
