package jobs

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// HeartbeatJob appends a liveness line on every run and records whether
// the CRM endpoint answered.
type HeartbeatJob struct {
	client   *Client
	log      *LogWriter
	interval time.Duration
	logger   *zap.Logger
}

// NewHeartbeatJob creates a new HeartbeatJob.
func NewHeartbeatJob(client *Client, log *LogWriter, interval time.Duration, logger *zap.Logger) *HeartbeatJob {
	return &HeartbeatJob{client: client, log: log, interval: interval, logger: logger}
}

func (j *HeartbeatJob) Name() string { return "heartbeat" }

func (j *HeartbeatJob) Interval() time.Duration { return j.interval }

// Run writes "<ts> CRM is alive | <status>". An unreachable endpoint is
// reported in the status, never raised.
func (j *HeartbeatJob) Run() {
	timestamp := time.Now().Format("02/01/2006-15:04:05")

	status := "CRM endpoint is responsive."
	if err := j.client.Health(); err != nil {
		status = fmt.Sprintf("CRM endpoint is not accessible. Error: %v", err)
	}

	line := fmt.Sprintf("%s CRM is alive | %s", timestamp, status)
	if err := j.log.Append(line); err != nil {
		j.logger.Error("failed to write heartbeat log", zap.Error(err))
	}
}
