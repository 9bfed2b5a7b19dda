package scheduler

import (
	"testing"

	"webinar-token-service/internal/config"
	"webinar-token-service/internal/jobs"
	"webinar-token-service/internal/service"
	"webinar-token-service/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRunner(spec string) *jobs.JobRunner {
	cfg := &config.Config{Scheduler: config.SchedulerConfig{SweepSessions: spec}}
	store := storage.NewMemoryFormStore(service.NewTokenService(nil, "https://discover.daily.co"))
	return jobs.NewJobRunner(store, cfg)
}

func TestNewScheduler(t *testing.T) {
	t.Run("Registers sweep job", func(t *testing.T) {
		s, err := NewScheduler(newRunner("0 * * * * *"))
		require.NoError(t, err)
		assert.True(t, s.IsRunning())

		s.Start()
		s.Stop()
	})

	t.Run("Rejects bad spec", func(t *testing.T) {
		_, err := NewScheduler(newRunner("not a cron spec"))
		assert.Error(t, err)
	})
}
