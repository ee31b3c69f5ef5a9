package jobs

import (
	"fmt"
)

// JobManager coordinates the background jobs of the application.
type JobManager struct {
	repairWorkflowJob *RepairWorkflowJob
	fleetStatsJob     *FleetStatsJob
}

// NewJobManager creates a job manager over already constructed jobs.
func NewJobManager(repairWorkflowJob *RepairWorkflowJob, fleetStatsJob *FleetStatsJob) *JobManager {
	return &JobManager{
		repairWorkflowJob: repairWorkflowJob,
		fleetStatsJob:     fleetStatsJob,
	}
}

// StartAll starts all jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.repairWorkflowJob.Start(); err != nil {
		return fmt.Errorf("failed to start repair workflow job: %w", err)
	}

	if err := jm.fleetStatsJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.repairWorkflowJob.Stop()
		return fmt.Errorf("failed to start fleet stats job: %w", err)
	}

	return nil
}

// StopAll stops the fleet stats job, then cancels in-flight repair workflows
// and waits for them.
func (jm *JobManager) StopAll() {
	jm.fleetStatsJob.Stop()
	jm.repairWorkflowJob.Stop()
}
