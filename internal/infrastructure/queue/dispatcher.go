package queue

import (
	"context"
	"hash/fnv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/peoplehub/recognition-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes outbound emails to a fixed set of workers using
// consistent hashing on the recipient address, so mails to the same person
// are delivered in the order they were enqueued. Delivery failures are
// logged and counted, never surfaced to the producer.
type Dispatcher struct {
	workers  []chan ports.Email
	mailer   ports.Mailer
	failures prometheus.Counter
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used. failures may be nil.
func NewDispatcher(numWorkers int, mailer ports.Mailer, failures prometheus.Counter, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan ports.Email, numWorkers),
		mailer:   mailer,
		failures: failures,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Email, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an email to the worker responsible for its recipient. The
// call never blocks: when the worker's buffer is full (for example after
// shutdown stopped the workers), the email is dropped and counted.
func (d *Dispatcher) Enqueue(email ports.Email) {
	select {
	case d.workers[d.shardIndex(email.To)] <- email:
	default:
		if d.failures != nil {
			d.failures.Inc()
		}
		d.log.Error().
			Str("recipient", email.To).
			Str("subject", email.Subject).
			Msg("email queue full, message dropped")
	}
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipient))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Email) {
	for {
		select {
		case <-ctx.Done():
			return
		case email, ok := <-ch:
			if !ok {
				return
			}
			if err := d.mailer.Send(email); err != nil {
				if d.failures != nil {
					d.failures.Inc()
				}
				d.log.Error().Err(err).
					Str("recipient", email.To).
					Str("subject", email.Subject).
					Int("worker_id", id).
					Msg("email delivery failed")
			}
		}
	}
}
