package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/de-tools/maturity-atlas/pkg/metrics"
	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	dropQueueFull = "queue_full"
	dropDelivery  = "delivery_failed"
)

type Config struct {
	// Endpoint is the tracker collection URL. Empty disables forwarding.
	Endpoint      string
	APIKey        string
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	// RatePerSecond bounds tracker requests, not events.
	RatePerSecond float64
	RetryMax      int
	RetryWaitMin  time.Duration
	Timeout       time.Duration
}

func DefaultConfig() Config {
	return Config{
		QueueSize:     1024,
		BatchSize:     50,
		FlushInterval: 5 * time.Second,
		RatePerSecond: 2,
		RetryMax:      3,
		RetryWaitMin:  500 * time.Millisecond,
		Timeout:       10 * time.Second,
	}
}

// Forwarder buffers events and ships them to the tracker in batches.
// Track never blocks a request; Run owns all network I/O.
type Forwarder struct {
	config  Config
	client  *retryablehttp.Client
	limiter *rate.Limiter
	metrics *metrics.Metrics
	queue   chan domain.Event
	done    chan struct{}
	running atomic.Bool
	dropped atomic.Int64
	sent    atomic.Int64
}

func NewForwarder(cfg Config, m *metrics.Metrics) *Forwarder {
	def := DefaultConfig()
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = def.QueueSize
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = def.FlushInterval
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = def.RatePerSecond
	}
	if cfg.RetryMax < 0 {
		cfg.RetryMax = 0
	}
	if cfg.RetryWaitMin <= 0 {
		cfg.RetryWaitMin = def.RetryWaitMin
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}

	client := retryablehttp.NewClient()
	client.RetryMax = cfg.RetryMax
	client.RetryWaitMin = cfg.RetryWaitMin
	client.RetryWaitMax = 10 * cfg.RetryWaitMin
	client.HTTPClient.Timeout = cfg.Timeout
	client.Logger = nil

	return &Forwarder{
		config:  cfg,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1),
		metrics: m,
		queue:   make(chan domain.Event, cfg.QueueSize),
		done:    make(chan struct{}),
	}
}

func (f *Forwarder) Enabled() bool {
	return f.config.Endpoint != ""
}

func (f *Forwarder) Done() <-chan struct{} {
	return f.done
}

// Dropped counts events lost to a full queue or failed delivery.
func (f *Forwarder) Dropped() int64 {
	return f.dropped.Load()
}

func (f *Forwarder) Sent() int64 {
	return f.sent.Load()
}

// Track enqueues e and reports whether it was accepted. With forwarding
// disabled every event is accepted and discarded.
func (f *Forwarder) Track(ctx context.Context, e domain.Event) bool {
	if !f.Enabled() {
		zerolog.Ctx(ctx).Debug().
			Str("type", string(e.Type)).
			Str("path", e.Path).
			Msg("analytics disabled, discarding event")
		return true
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	select {
	case f.queue <- e:
		return true
	default:
		f.drop(dropQueueFull, 1)
		return false
	}
}

// Run drains the queue until ctx is cancelled, then flushes what is left
// with a bounded timeout and closes Done. Only the first call runs; later
// calls return immediately.
func (f *Forwarder) Run(ctx context.Context) {
	logger := zerolog.Ctx(ctx).With().Str("component", "analytics").Logger()
	if !f.running.CompareAndSwap(false, true) {
		logger.Warn().Msg("analytics forwarder already started")
		return
	}
	defer close(f.done)

	if !f.Enabled() {
		logger.Info().Msg("analytics forwarding disabled")
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(f.config.FlushInterval)
	defer ticker.Stop()

	batch := make([]domain.Event, 0, f.config.BatchSize)
	flush := func(ctx context.Context, wait bool) {
		if len(batch) == 0 {
			return
		}
		if wait {
			if err := f.limiter.Wait(ctx); err != nil {
				return
			}
		}
		if err := f.send(ctx, batch); err != nil {
			logger.Error().Err(err).Int("events", len(batch)).Msg("failed to forward analytics batch")
			f.drop(dropDelivery, len(batch))
		} else {
			f.sent.Add(int64(len(batch)))
			if f.metrics != nil {
				f.metrics.EventsForwarded.Add(float64(len(batch)))
			}
		}
		batch = batch[:0]
	}

	for {
		select {
		case <-ctx.Done():
		drain:
			for {
				select {
				case e := <-f.queue:
					batch = append(batch, e)
				default:
					break drain
				}
			}
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.config.Timeout)
			flush(logger.WithContext(shutdownCtx), false)
			cancel()
			logger.Info().Int64("sent", f.Sent()).Int64("dropped", f.Dropped()).Msg("analytics forwarder stopped")
			return
		case e := <-f.queue:
			batch = append(batch, e)
			if len(batch) >= f.config.BatchSize {
				flush(ctx, true)
			}
		case <-ticker.C:
			flush(ctx, true)
		}
	}
}

func (f *Forwarder) drop(reason string, n int) {
	f.dropped.Add(int64(n))
	if f.metrics != nil {
		f.metrics.EventsDropped.WithLabelValues(reason).Add(float64(n))
	}
}

type trackerEvent struct {
	Type       string            `json:"type"`
	Path       string            `json:"path,omitempty"`
	Name       string            `json:"name,omitempty"`
	SessionID  string            `json:"session_id,omitempty"`
	Referrer   string            `json:"referrer,omitempty"`
	UserAgent  string            `json:"user_agent,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

type trackerBatch struct {
	Events []trackerEvent `json:"events"`
}

func (f *Forwarder) send(ctx context.Context, events []domain.Event) error {
	payload := trackerBatch{Events: make([]trackerEvent, 0, len(events))}
	for _, e := range events {
		payload.Events = append(payload.Events, trackerEvent{
			Type:       string(e.Type),
			Path:       e.Path,
			Name:       e.Name,
			SessionID:  e.SessionID,
			Referrer:   e.Referrer,
			UserAgent:  e.UserAgent,
			Properties: e.Properties,
			Timestamp:  e.Timestamp,
		})
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal events: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, f.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build tracker request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if f.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.config.APIKey)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("post events: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("tracker responded with status %d", resp.StatusCode)
	}
	return nil
}
