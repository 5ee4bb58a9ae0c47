package jobs

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ReportJob fetches the CRM aggregates and appends one summary line per
// run.
type ReportJob struct {
	client   *Client
	log      *LogWriter
	interval time.Duration
	logger   *zap.Logger
}

// NewReportJob creates a new ReportJob.
func NewReportJob(client *Client, log *LogWriter, interval time.Duration, logger *zap.Logger) *ReportJob {
	return &ReportJob{client: client, log: log, interval: interval, logger: logger}
}

func (j *ReportJob) Name() string { return "crm-report" }

func (j *ReportJob) Interval() time.Duration { return j.interval }

// Run writes "<ts> - Report: N customers, M orders, $R revenue." or an
// ERROR line when the aggregates cannot be fetched.
func (j *ReportJob) Run() {
	timestamp := time.Now().Format("2006-01-02 15:04:05")

	customers, orders, revenue, err := j.client.Totals()
	if err != nil {
		line := fmt.Sprintf("%s - ERROR: Failed to generate CRM report. Reason: %v", timestamp, err)
		if werr := j.log.Append(line); werr != nil {
			j.logger.Error("failed to write report log", zap.Error(werr))
		}
		return
	}

	line := fmt.Sprintf("%s - Report: %d customers, %d orders, $%.2f revenue.",
		timestamp, customers, orders, revenue)
	if err := j.log.Append(line); err != nil {
		j.logger.Error("failed to write report log", zap.Error(err))
	}
}
