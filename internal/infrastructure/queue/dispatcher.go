package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cargoline/shipping-core/internal/api/metrics"
	"github.com/cargoline/shipping-core/internal/core/domain"
	"github.com/cargoline/shipping-core/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// ErrStopped is returned when enqueueing into a dispatcher that is shutting down.
var ErrStopped = errors.New("dispatcher stopped")

// Dispatcher routes lifecycle events to a fixed set of workers using
// consistent hashing on the tracking number, so events of one shipment are
// applied in arrival order while different shipments proceed in parallel.
type Dispatcher struct {
	workers []chan ports.TrackingEventInput
	service ports.EventService
	log     zerolog.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.EventService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.TrackingEventInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.TrackingEventInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers exit when ctx is cancelled or
// after Stop has drained their channel.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its tracking number.
// The call blocks only once that worker's buffer is full.
func (d *Dispatcher) Enqueue(event ports.TrackingEventInput) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return ErrStopped
	}

	idx := d.shardIndex(event.TrackingNumber)
	d.workers[idx] <- event
	metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	return nil
}

// EnqueueBatch enqueues multiple events preserving per-shipment ordering.
func (d *Dispatcher) EnqueueBatch(events []ports.TrackingEventInput) error {
	for _, e := range events {
		if err := d.Enqueue(e); err != nil {
			return err
		}
	}
	return nil
}

// Stop rejects new events, lets workers drain what is already queued and
// waits for them to finish.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// shardIndex maps a tracking number deterministically to a worker index.
func (d *Dispatcher) shardIndex(trackingNumber string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(trackingNumber))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.TrackingEventInput) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.EventsQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.handle(ctx, id, event)
		}
	}
}

func (d *Dispatcher) handle(ctx context.Context, id int, event ports.TrackingEventInput) {
	start := time.Now()
	err := d.service.Process(ctx, event)
	if err != nil {
		metrics.EventProcessingDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		metrics.EventsErrorsTotal.WithLabelValues(reasonOf(err)).Inc()
		d.log.Error().Err(err).
			Str("tracking_number", event.TrackingNumber).
			Str("stage", event.Stage).
			Int("worker_id", id).
			Msg("event processing failed")
		return
	}
	metrics.EventProcessingDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	metrics.EventsProcessedTotal.WithLabelValues(stageLabel(event.Stage)).Inc()
}

// stageLabel keeps the stage label within the canonical set.
func stageLabel(raw string) string {
	stage, err := domain.ParseStage(raw)
	if err != nil {
		return "unknown"
	}
	return string(stage)
}

// reasonOf maps a processing error to a low-cardinality metric label.
func reasonOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnknownStage):
		return "unknown_stage"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrShipmentNotFound):
		return "shipment_not_found"
	case errors.Is(err, domain.ErrStageRegression):
		return "stage_regression"
	case errors.Is(err, domain.ErrEventOutOfOrder):
		return "out_of_order"
	case errors.Is(err, domain.ErrShipmentDelivered):
		return "delivered"
	case errors.Is(err, domain.ErrConcurrentUpdate):
		return "conflict"
	default:
		return "internal"
	}
}
