package tracker

import (
	"context"
	"sync"
	"time"

	"streakd/internal/badge"
	"streakd/internal/models"
	"streakd/internal/poller"
	"streakd/internal/providers"
	"streakd/internal/reminder"
	"streakd/internal/structures"
	"streakd/internal/tracker/interfaces"

	"github.com/roylee0704/gron"
)

// Scheduler drives every recurring job: the completion poll, the urgent
// reminder check, the periodic state save, and the daily reminder (which
// the reminder scheduler arms itself, since its cadence is a wall-clock
// time rather than a fixed interval).
type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	store       *models.StateStore
	badge       *badge.Controller
	poller      *poller.Poller
	reminders   *reminder.Scheduler
	fileManager *FileManager
	metrics     providers.MetricsProviderInterface
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Persistence.SaveInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		if !s.store.ConsumeDirty() {
			return
		}
		start := time.Now()
		err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
		if err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
			return
		}
		s.metrics.ObservePersistenceDuration(time.Since(start))
		s.logger.Infof(providers.TypeApp, "Persisted state to file %s", s.config.Persistence.FilePath)
	})

	s.cron.AddFunc(gron.Every(s.config.Poller.Interval), func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.poller.Poll(ctx)
		s.badge.Redraw()
	})

	s.cron.AddFunc(gron.Every(s.config.Reminder.UrgentInterval), func() {
		s.reminders.CheckUrgent()
	})

	s.cron.Start()

	// Arm the daily reminder from the persisted time and run the setup-time
	// urgent check; the first poll happens on the first cron tick.
	snap := s.store.Snapshot()
	if err := s.reminders.InstallDaily(snap.ReminderTime); err != nil {
		s.logger.Errorf(providers.TypeReminder, "Daily reminder not armed: %s", err)
	}
	s.reminders.CheckUrgent()
	s.badge.Redraw()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
	s.reminders.Stop()
	s.badge.StopBlinking()
}

func (s *Scheduler) Restore() error {
	err := s.fileManager.LoadFromFile(s.config.Persistence.FilePath)
	if err != nil {
		return err
	}
	return nil
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting tracker state to file...")
	err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, store *models.StateStore, badgeCtrl *badge.Controller, pollerJob *poller.Poller, reminders *reminder.Scheduler, fileManager *FileManager, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		store:       store,
		badge:       badgeCtrl,
		poller:      pollerJob,
		reminders:   reminders,
		fileManager: fileManager,
		metrics:     metrics,
	}
}
