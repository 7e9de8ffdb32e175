package jobs

import (
	"context"
	"log"
	"time"

	"investmap/internal/repositories"
	"investmap/internal/services"
)

// AlertMatchJob scans recently created listings and notifies investors
// whose alert-enabled saved searches match. Eligibility gating happens in
// the alerts service, not here.
type AlertMatchJob struct {
	startupsRepo  repositories.StartupsRepository
	alertsSvc     services.AlertsService
	lookback      time.Duration
}

func NewAlertMatchJob(startupsRepo repositories.StartupsRepository, alertsSvc services.AlertsService, lookback time.Duration) *AlertMatchJob {
	return &AlertMatchJob{
		startupsRepo: startupsRepo,
		alertsSvc:    alertsSvc,
		lookback:     lookback,
	}
}

func (j *AlertMatchJob) Run(ctx context.Context) error {
	since := time.Now().Add(-j.lookback)
	startups, err := j.startupsRepo.CreatedSince(ctx, since)
	if err != nil {
		log.Printf("Alert matching: failed to load recent startups: %v", err)
		return err
	}
	if len(startups) == 0 {
		return nil
	}

	created, err := j.alertsSvc.NotifyMatches(ctx, startups)
	if err != nil {
		log.Printf("Alert matching: notification fan-out failed: %v", err)
		return err
	}
	if created > 0 {
		log.Printf("Alert matching: created %d notifications from %d recent listings", created, len(startups))
	}
	return nil
}
