package telemetry

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultQueueSize   = 64
	defaultSinkTimeout = 5 * time.Second
)

// Options tunes a Dispatcher. Zero values select the defaults.
type Options struct {
	QueueSize   int
	SinkTimeout time.Duration
}

// Dispatcher fans records out to sinks on a background worker. Dispatch never
// blocks the caller; sink failures are logged and dropped.
type Dispatcher struct {
	sinks   []Sink
	timeout time.Duration
	logger  *zap.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan Record
	done   chan struct{}
}

// NewDispatcher starts the worker. With no sinks the dispatcher is a no-op.
func NewDispatcher(sinks []Sink, opts Options, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}
	if opts.SinkTimeout <= 0 {
		opts.SinkTimeout = defaultSinkTimeout
	}

	d := &Dispatcher{
		sinks:   sinks,
		timeout: opts.SinkTimeout,
		logger:  logger,
		done:    make(chan struct{}),
	}

	if len(sinks) == 0 {
		d.closed = true
		close(d.done)
		return d
	}

	d.queue = make(chan Record, opts.QueueSize)
	go d.run()

	for _, sink := range sinks {
		logger.Info("telemetry sink enabled", zap.String("sink", sink.Name()))
	}
	return d
}

// Dispatch enqueues rec. A full queue or a closed dispatcher drops it.
func (d *Dispatcher) Dispatch(rec Record) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.queue <- rec:
	default:
		d.logger.Warn("telemetry queue full, dropping record", zap.String("record_id", rec.ID))
	}
}

// Close stops accepting records and waits for queued ones to be delivered or
// for ctx to expire.
func (d *Dispatcher) Close(ctx context.Context) error {
	if d == nil {
		return nil
	}

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for rec := range d.queue {
		for _, sink := range d.sinks {
			d.deliver(sink, rec)
		}
	}
}

func (d *Dispatcher) deliver(sink Sink, rec Record) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := sink.Send(ctx, rec); err != nil {
		d.logger.Warn("telemetry delivery failed",
			zap.String("sink", sink.Name()),
			zap.String("record_id", rec.ID),
			zap.Error(err),
		)
		return
	}
	d.logger.Debug("telemetry delivered", zap.String("sink", sink.Name()), zap.String("record_id", rec.ID))
}
