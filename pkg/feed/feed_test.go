package feed

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/gaugechart/pkg/errors"
)

func TestDecode(t *testing.T) {
	now := time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC)
	r, err := Decode(kafkago.Message{Value: []byte(`{"gauge":"cpu","value":42.5}`), Time: now})
	require.NoError(t, err)
	assert.Equal(t, Reading{Gauge: "cpu", Value: 42.5, Time: now}, r)
}

func TestDecodeKeyFallback(t *testing.T) {
	r, err := Decode(kafkago.Message{Key: []byte("mem"), Value: []byte(`{"value":0}`)})
	require.NoError(t, err)
	assert.Equal(t, "mem", r.Gauge)
	assert.Equal(t, 0.0, r.Value)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		msg  kafkago.Message
		code errors.Code
	}{
		{"not json", kafkago.Message{Value: []byte("not-json{{{")}, errors.ErrCodeInvalidInput},
		{"no gauge", kafkago.Message{Value: []byte(`{"value":1}`)}, errors.ErrCodeInvalidName},
		{"bad gauge", kafkago.Message{Value: []byte(`{"gauge":"../etc","value":1}`)}, errors.ErrCodeInvalidName},
		{"no value", kafkago.Message{Value: []byte(`{"gauge":"cpu"}`)}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.msg)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestConfigValidate(t *testing.T) {
	assert.Error(t, Config{Topic: "readings"}.Validate())
	assert.Error(t, Config{Brokers: []string{"localhost:9092"}}.Validate())
	assert.NoError(t, Config{Brokers: []string{"localhost:9092"}, Topic: "readings"}.Validate())

	_, err := NewConsumer(Config{}, nil)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
}

// fakeReader serves queued messages, then blocks until the context ends.
type fakeReader struct {
	mu        sync.Mutex
	msgs      []kafkago.Message
	committed []int64
	closed    bool
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	f.mu.Lock()
	if len(f.msgs) > 0 {
		m := f.msgs[0]
		f.msgs = f.msgs[1:]
		f.mu.Unlock()
		return m, nil
	}
	f.mu.Unlock()
	<-ctx.Done()
	return kafkago.Message{}, ctx.Err()
}

func (f *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range msgs {
		f.committed = append(f.committed, m.Offset)
	}
	return nil
}

func (f *fakeReader) Close() error {
	f.closed = true
	return nil
}

func discardLogger() *log.Logger { return log.NewWithOptions(io.Discard, log.Options{}) }

func TestConsumerRun(t *testing.T) {
	fr := &fakeReader{msgs: []kafkago.Message{
		{Offset: 1, Value: []byte(`{"gauge":"cpu","value":10}`)},
		{Offset: 2, Value: []byte(`garbage`)},
		{Offset: 3, Value: []byte(`{"gauge":"cpu","value":20}`)},
	}}
	c := newConsumer(fr, "readings", true, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	var got []Reading
	done := make(chan error, 1)
	go func() {
		done <- c.Run(ctx, func(_ context.Context, r Reading) error {
			got = append(got, r)
			if len(got) == 2 {
				cancel()
			}
			return nil
		})
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("consumer did not stop")
	}

	require.Len(t, got, 2)
	assert.Equal(t, 10.0, got[0].Value)
	assert.Equal(t, 20.0, got[1].Value)
	assert.Contains(t, fr.committed, int64(2), "undecodable messages are committed")

	require.NoError(t, c.Close())
	assert.True(t, fr.closed)
}

func TestConsumerWithoutGroupSkipsCommits(t *testing.T) {
	fr := &fakeReader{msgs: []kafkago.Message{{Offset: 7, Value: []byte(`{"gauge":"cpu","value":1}`)}}}
	c := newConsumer(fr, "readings", false, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	err := c.Run(ctx, func(context.Context, Reading) error {
		cancel()
		return nil
	})
	require.NoError(t, err)
	assert.Empty(t, fr.committed)
}

func TestConsumerHandlerErrorDoesNotStop(t *testing.T) {
	fr := &fakeReader{msgs: []kafkago.Message{
		{Offset: 1, Value: []byte(`{"gauge":"missing","value":1}`)},
		{Offset: 2, Value: []byte(`{"gauge":"cpu","value":2}`)},
	}}
	c := newConsumer(fr, "readings", true, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	var applied []string
	err := c.Run(ctx, func(_ context.Context, r Reading) error {
		if r.Gauge == "missing" {
			return errors.New(errors.ErrCodeNotFound, "no gauge %s", r.Gauge)
		}
		applied = append(applied, r.Gauge)
		cancel()
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"cpu"}, applied)
	assert.Equal(t, []int64{1}, fr.committed[:1])
}
