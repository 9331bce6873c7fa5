package event

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/osse101/HatcheryOps_Go/internal/logger"
)

type retryItem struct {
	event   Event
	attempt int
	dueAt   time.Time
	lastErr error
}

// ResilientPublisher wraps a Bus with background retries and a dead-letter file.
// A failed publish is queued and retried with exponential backoff; once retries
// are exhausted, the queue is full, or the publisher shuts down, the event is
// written to the dead-letter file.
type ResilientPublisher struct {
	bus        Bus
	maxRetries int
	baseDelay  time.Duration
	deadLetter *DeadLetterWriter

	retryQueue chan retryItem
	shutdown   chan struct{}
	once       sync.Once
	wg         sync.WaitGroup
}

// NewResilientPublisher starts the retry worker
func NewResilientPublisher(bus Bus, maxRetries int, baseDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	p := newResilientPublisher(bus, maxRetries, baseDelay, RetryQueueBufferSize)
	p.deadLetter = dl
	p.wg.Add(1)
	go p.retryWorker()
	return p, nil
}

func newResilientPublisher(bus Bus, maxRetries int, baseDelay time.Duration, queueSize int) *ResilientPublisher {
	if maxRetries <= 0 {
		maxRetries = RetryMaxAttempts
	}
	if baseDelay <= 0 {
		baseDelay = RetryInitialDelaySeconds * time.Second
	}
	return &ResilientPublisher{
		bus:        bus,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		retryQueue: make(chan retryItem, queueSize),
		shutdown:   make(chan struct{}),
	}
}

// Publish implements Bus. Delivery failures are absorbed by the retry queue,
// so callers only see nil.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	p.PublishWithRetry(ctx, event)
	return nil
}

// PublishWithRetry publishes once and queues the event for retry on failure
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := p.bus.Publish(ctx, event)
	if err == nil {
		return
	}

	logger.Warn(LogMsgEventPublishFailed, "event_type", event.Type, "error", err)
	p.enqueue(retryItem{
		event:   event,
		attempt: 1,
		dueAt:   time.Now().Add(CalculateRetryDelay(p.baseDelay, 1)),
		lastErr: err,
	})
}

func (p *ResilientPublisher) enqueue(item retryItem) {
	select {
	case <-p.shutdown:
		logger.Warn(LogMsgEventDroppedShutdown, "event_type", item.event.Type)
		p.writeDeadLetter(item)
		return
	default:
	}

	select {
	case p.retryQueue <- item:
	default:
		logger.Error(LogMsgRetryQueueFull, "event_type", item.event.Type)
		p.writeDeadLetter(item)
	}
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.bus.Subscribe(eventType, handler)
}

func (p *ResilientPublisher) retryWorker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.shutdown:
			p.drain()
			return
		case item := <-p.retryQueue:
			if wait := time.Until(item.dueAt); wait > 0 {
				timer := time.NewTimer(wait)
				select {
				case <-timer.C:
				case <-p.shutdown:
					timer.Stop()
					p.finalAttempt(item)
					p.drain()
					return
				}
			}
			p.retry(item)
		}
	}
}

func (p *ResilientPublisher) retry(item retryItem) {
	err := p.bus.Publish(context.Background(), item.event)
	if err == nil {
		logger.Info(LogMsgEventRetrySucceeded, "event_type", item.event.Type, "attempt", item.attempt)
		return
	}

	item.lastErr = err
	if item.attempt >= p.maxRetries {
		logger.Error(LogMsgEventRetryExhausted, "event_type", item.event.Type, "attempts", item.attempt)
		p.writeDeadLetter(item)
		return
	}

	item.attempt++
	item.dueAt = time.Now().Add(CalculateRetryDelay(p.baseDelay, item.attempt))
	logger.Warn(LogMsgEventRetryFailed, "event_type", item.event.Type, "attempt", item.attempt-1, "error", err)
	p.enqueue(item)
}

// finalAttempt makes one last delivery try during shutdown
func (p *ResilientPublisher) finalAttempt(item retryItem) {
	if err := p.bus.Publish(context.Background(), item.event); err != nil {
		item.lastErr = err
		p.writeDeadLetter(item)
	}
}

func (p *ResilientPublisher) drain() {
	drained := 0
	for {
		select {
		case item := <-p.retryQueue:
			p.finalAttempt(item)
			drained++
		default:
			if drained > 0 {
				logger.Info(LogMsgQueueDrainedShutdown, "count", drained)
			}
			return
		}
	}
}

func (p *ResilientPublisher) writeDeadLetter(item retryItem) {
	if p.deadLetter == nil {
		return
	}
	if err := p.deadLetter.Write(item.event, item.attempt, item.lastErr); err != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, "event_type", item.event.Type, "error", err)
	}
}

// Shutdown stops the retry worker, flushing queued events with one final attempt
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.once.Do(func() { close(p.shutdown) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}

	if p.deadLetter != nil {
		if err := p.deadLetter.Close(); err != nil && !errors.Is(err, errDeadLetterClosed) {
			return err
		}
	}
	return nil
}
