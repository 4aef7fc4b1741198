// Package feed consumes gauge readings from Kafka.
//
// Each message carries one reading as JSON:
//
//	{"gauge": "cpu", "value": 42.5}
//
// When "gauge" is missing the message key is used as the gauge name. A
// [Consumer] decodes messages and hands them to a [Handler], which the server
// points at its live gauges. Messages that cannot be decoded or applied are
// logged and committed so a bad message never stalls the partition.
package feed

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/matzehuels/gaugechart/pkg/errors"
	"github.com/matzehuels/gaugechart/pkg/observability"
)

// Reading is one value for one gauge.
type Reading struct {
	Gauge string    `json:"gauge"`
	Value float64   `json:"value"`
	Time  time.Time `json:"-"`
}

// Handler applies a reading.
type Handler func(ctx context.Context, r Reading) error

// Config selects the topic to consume.
type Config struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Validate checks that brokers and a topic are set.
func (c Config) Validate() error {
	if len(c.Brokers) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "kafka feed needs at least one broker")
	}
	if c.Topic == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "kafka feed needs a topic")
	}
	return nil
}

// messageReader is the part of *kafkago.Reader the consumer uses.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Consumer reads readings from a Kafka topic.
type Consumer struct {
	reader messageReader
	topic  string
	logger *log.Logger
}

// NewConsumer creates a consumer group reader for cfg. Without a GroupID the
// reader starts at the newest offset and commits nothing.
func NewConsumer(cfg Config, logger *log.Logger) (*Consumer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		GroupID:     cfg.GroupID,
		MinBytes:    1,
		MaxBytes:    1 << 20,
		MaxWait:     500 * time.Millisecond,
		StartOffset: kafkago.LastOffset,
	})
	return newConsumer(r, cfg.Topic, cfg.GroupID != "", logger), nil
}

func newConsumer(r messageReader, topic string, commit bool, logger *log.Logger) *Consumer {
	if logger == nil {
		logger = log.Default()
	}
	if !commit {
		r = noCommit{r}
	}
	return &Consumer{reader: r, topic: topic, logger: logger.With("topic", topic)}
}

// Run consumes until ctx is cancelled. It returns nil on cancellation and the
// reader's error otherwise.
func (c *Consumer) Run(ctx context.Context, h Handler) error {
	c.logger.Info("consuming readings")
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			observability.Feed().OnFeedError(ctx, c.topic, err)
			return errors.Wrap(errors.ErrCodeNetwork, err, "fetch from %s", c.topic)
		}

		c.handle(ctx, msg, h)

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Warn("commit failed", "offset", msg.Offset, "error", err)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, msg kafkago.Message, h Handler) {
	r, err := Decode(msg)
	if err != nil {
		observability.Feed().OnFeedError(ctx, c.topic, err)
		c.logger.Warn("skipping message", "offset", msg.Offset, "error", err)
		return
	}
	observability.Feed().OnFeedMessage(ctx, c.topic, r.Gauge)
	if err := h(ctx, r); err != nil {
		c.logger.Warn("reading not applied", "gauge", r.Gauge, "value", r.Value, "error", err)
	}
}

// Close closes the underlying reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}

// Decode parses a message into a reading.
func Decode(msg kafkago.Message) (Reading, error) {
	var body struct {
		Gauge string   `json:"gauge"`
		Value *float64 `json:"value"`
	}
	if err := json.Unmarshal(msg.Value, &body); err != nil {
		return Reading{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode reading")
	}
	if body.Gauge == "" {
		body.Gauge = string(msg.Key)
	}
	if err := errors.ValidateGaugeName(body.Gauge); err != nil {
		return Reading{}, err
	}
	if body.Value == nil {
		return Reading{}, errors.New(errors.ErrCodeInvalidInput, "reading for %s has no value", body.Gauge)
	}
	return Reading{Gauge: body.Gauge, Value: *body.Value, Time: msg.Time}, nil
}

// noCommit drops commits for readers outside a consumer group, where
// kafka-go rejects them.
type noCommit struct{ messageReader }

func (noCommit) CommitMessages(context.Context, ...kafkago.Message) error { return nil }

