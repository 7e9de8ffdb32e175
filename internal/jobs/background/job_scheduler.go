package background

import (
	"context"
	"log"
	"sync"
	"time"

	"investmap/internal/config"
	"investmap/internal/jobs"
	"investmap/internal/repositories"
	"investmap/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler manages the recurring background work: saved-search alert
// matching, rankings cache refresh, and stale session cleanup.
type JobScheduler struct {
	scheduler    gocron.Scheduler
	alertJob     *jobs.AlertMatchJob
	startupSvc   services.StartupService
	sessionsRepo repositories.SessionsRepository
	cfg          config.JobsConfig
	registered   map[string]gocron.Job
	mu           sync.RWMutex
}

func NewJobScheduler(
	alertJob *jobs.AlertMatchJob,
	startupSvc services.StartupService,
	sessionsRepo repositories.SessionsRepository,
	cfg config.JobsConfig,
) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:    scheduler,
		alertJob:     alertJob,
		startupSvc:   startupSvc,
		sessionsRepo: sessionsRepo,
		cfg:          cfg,
		registered:   make(map[string]gocron.Job),
	}
	js.registerJobs()
	return js, nil
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	js.register("alert-matching",
		time.Duration(js.cfg.AlertMatchIntervalMinutes)*time.Minute,
		js.runAlertMatching)

	js.register("rankings-refresh",
		time.Duration(js.cfg.RankingRefreshIntervalMinutes)*time.Minute,
		js.runRankingsRefresh)

	js.register("session-sweep",
		time.Duration(js.cfg.SessionSweepIntervalMinutes)*time.Minute,
		js.runSessionSweep)
}

func (js *JobScheduler) register(name string, interval time.Duration, task func()) {
	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create %s job: %v", name, err)
		return
	}
	js.mu.Lock()
	js.registered[name] = job
	js.mu.Unlock()
}

func (js *JobScheduler) runAlertMatching() {
	if err := js.alertJob.Run(context.Background()); err != nil {
		log.Printf("Alert matching job failed: %v", err)
	}
}

func (js *JobScheduler) runRankingsRefresh() {
	// Scores are time-dependent; the cache is refreshed with a fresh
	// "now" so served rankings stay close to on-demand computation.
	if _, err := js.startupSvc.RefreshRankings(context.Background(), time.Now()); err != nil {
		log.Printf("Rankings refresh job failed: %v", err)
	}
}

func (js *JobScheduler) runSessionSweep() {
	deleted, err := js.sessionsRepo.DeleteInactiveOlderThan(context.Background(), js.cfg.SessionRetentionDays)
	if err != nil {
		log.Printf("Session sweep job failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("Session sweep removed %d stale sessions", deleted)
	}
}
