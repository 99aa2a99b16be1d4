package live

import (
	"context"
	"livevote/internal/providers"
	"livevote/internal/services"
	"sync"
)

// Push event names sent by the backend.
const (
	EventCandidatesUpdated = "candidates-updated"
	EventVoteSubmitted     = "vote-submitted"
)

// EventSource delivers backend push event names until ctx ends.
type EventSource interface {
	Subscribe(ctx context.Context, onEvent func(event string)) error
}

type ChannelInterface interface {
	Dispatch(event string) bool
	Run(ctx context.Context) error
	Wait()
}

// queue is a single-slot signal drained by one worker. A signal raised
// while the worker is busy produces exactly one more run.
type queue struct {
	kind   string
	signal chan struct{}
	handle func(ctx context.Context) error
}

type Channel struct {
	source  EventSource
	queues  map[string]*queue
	logger  providers.Logger
	metrics providers.MetricsProviderInterface

	mu      sync.Mutex
	idle    *sync.Cond
	pending int
	stopped bool
}

func NewChannel(
	source EventSource,
	sync services.SyncServiceInterface,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) ChannelInterface {
	return newChannel(source, map[string]func(context.Context) error{
		EventCandidatesUpdated: sync.ResyncCandidates,
		EventVoteSubmitted:     sync.ResyncVotes,
	}, logger, metrics)
}

func newChannel(source EventSource, handlers map[string]func(context.Context) error, logger providers.Logger, metrics providers.MetricsProviderInterface) *Channel {
	c := &Channel{
		source:  source,
		queues:  make(map[string]*queue, len(handlers)),
		logger:  logger,
		metrics: metrics,
	}
	c.idle = sync.NewCond(&c.mu)
	for kind, h := range handlers {
		c.queues[kind] = &queue{kind: kind, signal: make(chan struct{}, 1), handle: h}
	}
	return c
}

// Dispatch queues a resync for event. It reports false for unknown events,
// for events folded into an already queued resync and once Run has
// returned, since no worker is left to drain the queue.
func (c *Channel) Dispatch(event string) bool {
	q, ok := c.queues[event]
	if !ok {
		c.logger.Debugf(providers.TypeSync, "Ignoring unknown event %q", event)
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		c.logger.Debugf(providers.TypeSync, "Dropping %s after shutdown", event)
		return false
	}
	select {
	case q.signal <- struct{}{}:
		c.pending++
		return true
	default:
		c.metrics.IncCoalescedEvents(q.kind)
		return false
	}
}

// Run starts one worker per event kind and consumes the event source until
// ctx is done.
func (c *Channel) Run(ctx context.Context) error {
	c.mu.Lock()
	c.stopped = false
	c.mu.Unlock()

	var wg sync.WaitGroup
	for _, q := range c.queues {
		wg.Add(1)
		go func(q *queue) {
			defer wg.Done()
			c.work(ctx, q)
		}(q)
	}

	var subErr error
	if c.source != nil {
		c.logger.Infof(providers.TypeSync, "Subscribing to live updates")
		err := c.source.Subscribe(ctx, func(event string) {
			c.Dispatch(event)
		})
		if err != nil && ctx.Err() == nil {
			c.logger.Errorf(providers.TypeSync, "Live update subscription ended: %v", err)
			subErr = err
		}
	}

	<-ctx.Done()
	c.mu.Lock()
	c.stopped = true
	c.mu.Unlock()
	wg.Wait()
	c.discardQueued()
	return subErr
}

// Wait blocks until every queued resync has run.
func (c *Channel) Wait() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.pending > 0 {
		c.idle.Wait()
	}
}

func (c *Channel) work(ctx context.Context, q *queue) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-q.signal:
			if err := q.handle(ctx); err != nil {
				c.logger.Warnf(providers.TypeSync, "Resync after %s failed: %v", q.kind, err)
			}
			c.done()
		}
	}
}

func (c *Channel) done() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending--
	c.idle.Broadcast()
}

func (c *Channel) discardQueued() {
	for _, q := range c.queues {
		select {
		case <-q.signal:
			c.done()
		default:
		}
	}
}
