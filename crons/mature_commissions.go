package crons

import (
	"time"

	"github.com/rs/zerolog/log"

	"gitlab.com/missiondax-platform/ledger_api/monitor"
	"gitlab.com/missiondax-platform/ledger_api/service"
)

// CronMatureCommissions advances every commission whose hold window has
// elapsed. Safe to run on any schedule, the sweep is idempotent.
func CronMatureCommissions(svc *service.Service) {
	start := time.Now()
	if _, err := svc.MatureCommissions(start); err != nil {
		log.Error().Err(err).
			Str("cron", "mature_commissions").
			Msg("Unable to mature commissions")
	}
	monitor.SweepDuration.WithLabelValues("mature_commissions").Observe(time.Since(start).Seconds())
}
