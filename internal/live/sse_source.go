package live

import (
	"bytes"
	"context"
	"livevote/internal/providers"
	"livevote/internal/remote"
	"livevote/internal/structures"
	"time"

	"github.com/r3labs/sse/v2"
	"gopkg.in/cenkalti/backoff.v1"
)

// SSESource subscribes to the backend's server-sent event stream. The sse
// client reconnects on its own; the backoff never gives up before ctx ends.
type SSESource struct {
	url     string
	client  *sse.Client
	logger  providers.Logger
	backoff time.Duration
}

func NewSSESource(conf *structures.Config, logger providers.Logger) *SSESource {
	url := conf.EventsEndpoint()
	client := sse.NewClient(url)
	if conf.Client.DeviceID != "" {
		client.Headers[remote.DeviceHeader] = conf.Client.DeviceID
	}
	client.OnConnect(func(_ *sse.Client) {
		logger.Infof(providers.TypeSync, "Connected to live updates at %s", url)
	})
	client.OnDisconnect(func(_ *sse.Client) {
		logger.Warnf(providers.TypeSync, "Disconnected from live updates at %s", url)
	})
	client.ReconnectNotify = func(err error, next time.Duration) {
		logger.Warnf(providers.TypeSync, "Live updates unavailable (%v), retrying in %s", err, next)
	}

	return &SSESource{url: url, client: client, logger: logger, backoff: 30 * time.Second}
}

func (s *SSESource) Subscribe(ctx context.Context, onEvent func(event string)) error {
	strategy := backoff.NewExponentialBackOff()
	strategy.MaxInterval = s.backoff
	strategy.MaxElapsedTime = 0
	s.client.ReconnectStrategy = backoff.WithContext(strategy, ctx)

	return s.client.SubscribeWithContext(ctx, "", func(msg *sse.Event) {
		if name := eventName(msg); name != "" {
			onEvent(name)
		}
	})
}

// eventName prefers the SSE event field; streams that only send unnamed
// messages carry the name as the data line.
func eventName(msg *sse.Event) string {
	if len(msg.Event) > 0 {
		return string(msg.Event)
	}
	return string(bytes.TrimSpace(msg.Data))
}
