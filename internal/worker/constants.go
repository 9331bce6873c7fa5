package worker

import "time"

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// LogMsgWorkerQueueFull is logged when a job is dropped because the queue is full
const LogMsgWorkerQueueFull = "Worker queue full, job dropped"

// DefaultJobTimeout bounds a single pooled job
const DefaultJobTimeout = 2 * time.Minute

// ============================================================================
// Log Messages - Slot Unlock Worker
// ============================================================================

const (
	LogMsgUnlockScheduled     = "Slot unlock notification scheduled"
	LogMsgUnlockCancelled     = "Slot unlock notification cancelled"
	LogMsgUnlockSent          = "Slot unlock notification sent"
	LogMsgUnlockSendFailed    = "Failed to send slot unlock notification"
	LogMsgUnlockRestoreFailed = "Failed to restore slot unlock timers on startup"
	LogMsgUnlockBadPayload    = "Ignoring slot event with unreadable payload"
)

// Slot unlock notification text
const (
	UnlockTitleFormat = "Slot %d is unlocked"
	UnlockBodyFormat  = "You can now upload image %d of %d for this cycle."
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
