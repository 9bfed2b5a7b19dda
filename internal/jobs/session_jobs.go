package jobs

import (
	"webinar-token-service/internal/logger"
)

// SweepIdleSessions closes form sessions nobody has touched within the idle
// timeout. Closing a form cancels its in-flight token request.
func (jr *JobRunner) SweepIdleSessions() {
	jr.runWithRecovery("SweepIdleSessions", func() {
		removed := jr.forms.SweepIdle(jr.config.GetSessionIdleTimeout())
		if removed > 0 {
			logger.Info("Idle form sessions closed", "count", removed, "remaining", jr.forms.Len())
		}
	})
}
