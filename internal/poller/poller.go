package poller

import (
	"context"

	"streakd/internal/leetcode"
	"streakd/internal/models"
	"streakd/internal/providers"
	"streakd/internal/services"
)

// Poller is the slow completion path: a periodic best-effort query against
// the judge endpoint. Failures are logged and dropped; the next tick is the
// retry.
type Poller struct {
	store   *models.StateStore
	client  leetcode.ClientInterface
	service services.TrackerServiceInterface
	clock   providers.Clock
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewPoller(store *models.StateStore, client leetcode.ClientInterface, service services.TrackerServiceInterface, clock providers.Clock, logger providers.Logger, metrics providers.MetricsProviderInterface) *Poller {
	return &Poller{
		store:   store,
		client:  client,
		service: service,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
	}
}

// Poll checks whether today's challenge is solved. Already-solved days
// short-circuit before any network traffic.
func (p *Poller) Poll(ctx context.Context) {
	today := models.Today(p.clock.Now())
	snap := p.store.Snapshot()
	if snap.SolvedOn(today) {
		p.metrics.IncPollsTotal("skipped")
		return
	}

	status, err := p.client.FetchDailyStatus(ctx)
	if err != nil {
		p.logger.Debugf(providers.TypePoll, "poll failed: %s", err)
		p.metrics.IncPollsTotal("error")
		return
	}

	p.service.RecordChallenge(status)

	if !status.SignedIn {
		p.metrics.IncPollsTotal("signed_out")
		return
	}

	if !status.CompletedToday {
		p.metrics.IncPollsTotal("unsolved")
		return
	}

	p.service.ApplyCompletion(status.Streak, status.Username, status.Avatar)
	p.metrics.IncPollsTotal("completed")
}
