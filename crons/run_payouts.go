package crons

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"gitlab.com/missiondax-platform/ledger_api/monitor"
	"gitlab.com/missiondax-platform/ledger_api/service"
)

// CronRunPayouts pays out every seller whose available balance reached
// the configured minimum. Each seller's run is idempotent per period, so
// a partially failed sweep can simply run again.
func CronRunPayouts(svc *service.Service) {
	start := time.Now()
	if err := svc.RunPayoutsSweep(context.Background(), start); err != nil {
		log.Error().Err(err).
			Str("cron", "run_payouts").
			Msg("Unable to run payouts sweep")
	}
	monitor.SweepDuration.WithLabelValues("run_payouts").Observe(time.Since(start).Seconds())
}
