// Package scheduler runs the periodic bulk re-sync that re-derives
// document-store state from the relational store.
package scheduler

import (
	"context"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	syncer "github.com/estantedigital/plataforma/internal/sync"
)

// SyncScheduler triggers Synchronizer.SyncAll on a cron schedule.
type SyncScheduler struct {
	synchronizer *syncer.Synchronizer
	schedule     string

	cron      *cron.Cron
	mu        sync.Mutex
	isRunning bool
}

// NewSyncScheduler creates a new scheduler instance.
func NewSyncScheduler(synchronizer *syncer.Synchronizer, schedule string) *SyncScheduler {
	return &SyncScheduler{
		synchronizer: synchronizer,
		schedule:     schedule,
		cron:         cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler.
func (s *SyncScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.runSync); err != nil {
		return err
	}

	s.cron.Start()
	s.isRunning = true
	log.Printf("Sync scheduler: started with schedule %q", s.schedule)
	return nil
}

// Stop halts the scheduler, waiting for a running job to finish.
func (s *SyncScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	log.Printf("Sync scheduler: stopped")
}

func (s *SyncScheduler) runSync() {
	log.Printf("Sync scheduler: starting bulk migration")

	outcomes, err := s.synchronizer.SyncAll(context.Background())
	if err != nil {
		log.Printf("Sync scheduler: bulk migration failed: %v", err)
		return
	}

	summary := syncer.Summarize(outcomes)
	log.Printf("Sync scheduler: migration finished (total=%d successful=%d failed=%d)",
		summary.Total, summary.Successful, summary.Failed)
}
