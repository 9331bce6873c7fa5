package scheduler

import "time"

// Default job intervals
const (
	DefaultCycleCloseInterval = 5 * time.Minute
	DefaultStoryPurgeInterval = 15 * time.Minute
)

// Log messages
const (
	LogMsgTickSkipped      = "Scheduled tick skipped"
	LogMsgCyclesClosed     = "Expired hatchery cycles closed"
	LogMsgStoriesPurgedJob = "Story purge finished"
)
