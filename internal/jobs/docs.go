// Package jobs provides the background tasks of the bicycle service.
//
// # Available Jobs
//
// 1. RepairWorkflowJob - observes BreakdownReported events and runs one repair
// workflow per report: dispatch delay, haul to the repair center, repair, haul
// back. Concurrency is bounded by a weighted semaphore.
// 2. FleetStatsJob - cron job (github.com/robfig/cron/v3) that logs the fleet by
// status and exports the counts as gauges.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(repairWorkflowJob, fleetStatsJob)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Workflow failures never reach the reporter. They are logged with the run,
// report and bicycle ids and counted by outcome.
package jobs
