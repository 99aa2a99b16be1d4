package live

import (
	"livevote/internal/providers"
	"livevote/internal/structures"
	"sync"

	"github.com/roylee0704/gron"
)

type SchedulerInterface interface {
	Init()
	Stop()
}

// Dispatcher accepts event names; the Channel is the production one.
type Dispatcher interface {
	Dispatch(event string) bool
}

// Scheduler periodically replays both push events so a missed
// notification is repaired within one interval. Scheduled resyncs go
// through the same queues as pushed ones and coalesce with them.
type Scheduler struct {
	config     *structures.Config
	logger     providers.Logger
	dispatcher Dispatcher
	cron       *gron.Cron
	mu         sync.Mutex
}

func (s *Scheduler) Init() {
	interval := s.config.Backend.ResyncInterval
	if interval <= 0 {
		s.logger.Infof(providers.TypeSync, "Periodic resync disabled")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		return
	}

	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(interval), func() {
		s.logger.Debugf(providers.TypeSync, "Periodic resync")
		s.dispatcher.Dispatch(EventCandidatesUpdated)
		s.dispatcher.Dispatch(EventVoteSubmitted)
	})
	s.cron.Start()
	s.logger.Infof(providers.TypeSync, "Periodic resync every %s", interval)
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		s.cron.Stop()
		s.cron = nil
	}
}

func NewScheduler(config *structures.Config, logger providers.Logger, channel ChannelInterface) SchedulerInterface {
	return &Scheduler{
		config:     config,
		logger:     logger,
		dispatcher: channel,
	}
}
