package jobs

import (
	"webinar-token-service/internal/config"
	"webinar-token-service/internal/logger"
	"webinar-token-service/internal/storage"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	forms  storage.FormStore
	config *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(forms storage.FormStore, cfg *config.Config) *JobRunner {
	return &JobRunner{
		forms:  forms,
		config: cfg,
	}
}

// Config returns the configuration jobs were built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Debug("Starting job", "job", jobName)
	jobFunc()
	logger.Debug("Job completed", "job", jobName)
}
