package crons

import (
	"github.com/robfig/cron"

	"gitlab.com/missiondax-platform/ledger_api/config"
	"gitlab.com/missiondax-platform/ledger_api/service"
)

var cronService *cron.Cron

// Start initiates the crons based on the given configuration
func Start(crons config.Crons, svc *service.Service) {
	cronService = cron.New()
	for id, schedule := range crons {
		callback := GetCronByID(id, svc)
		_ = cronService.AddFunc(schedule, callback)
	}
	cronService.Start()
}

// GetCronByID get a function to execute based on the id
func GetCronByID(id string, svc *service.Service) func() {
	switch id {
	case "mature_commissions":
		return func() {
			CronMatureCommissions(svc)
		}
	case "run_payouts":
		return func() {
			CronRunPayouts(svc)
		}
	}
	return (func() {})
}

// Close godoc
func Close() {
	if cronService != nil {
		cronService.Stop()
	}
}
