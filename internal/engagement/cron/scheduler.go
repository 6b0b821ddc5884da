// Package cronjob runs the nightly like-count reconciliation. The toggle
// path keeps the counter and the like relations in one transaction, so
// drift only appears after manual data surgery or a restored backup; the
// job repairs it either way.
package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/appli-farm/applifarm-backend/internal/engagement/store"
)

type Scheduler struct {
	store store.Store
	cron  *cron.Cron
}

func NewScheduler(st store.Store) *Scheduler {
	return &Scheduler{store: st}
}

// Start initializes cron tasks: reconciliation nightly at 12:00 AM.
func (s *Scheduler) Start() {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc("0 0 0 * * *", s.runReconciliation)
	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Println("Cron scheduler started (like-count reconciliation nightly at 12:00AM)")
	c.Start()
	s.cron = c
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

func (s *Scheduler) runReconciliation() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	fixed, err := s.store.ReconcileLikeCounts(ctx)
	if err != nil {
		log.Printf("Like-count reconciliation failed: %v", err)
		return
	}
	if fixed > 0 {
		log.Printf("Like-count reconciliation fixed %d project(s)", fixed)
	}
	log.Println("Like-count reconciliation completed at:", time.Now().Format(time.RFC1123))
}
