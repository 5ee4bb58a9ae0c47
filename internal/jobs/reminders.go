package jobs

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// OrderRemindersJob looks up orders placed within the reminder window
// and appends one reminder line per order.
type OrderRemindersJob struct {
	client   *Client
	log      *LogWriter
	interval time.Duration
	window   time.Duration
	logger   *zap.Logger
}

// NewOrderRemindersJob creates a new OrderRemindersJob. window is how
// far back to look for orders, 7 days in the stock configuration.
func NewOrderRemindersJob(client *Client, log *LogWriter, interval, window time.Duration, logger *zap.Logger) *OrderRemindersJob {
	return &OrderRemindersJob{client: client, log: log, interval: interval, window: window, logger: logger}
}

func (j *OrderRemindersJob) Name() string { return "order-reminders" }

func (j *OrderRemindersJob) Interval() time.Duration { return j.interval }

// Run fetches recent orders and logs a reminder per order, or a single
// "none found" line. API failures become an ERROR log line.
func (j *OrderRemindersJob) Run() {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	since := time.Now().UTC().Add(-j.window)

	orders, err := j.client.RecentOrders(since)
	if err != nil {
		line := fmt.Sprintf("[%s] ERROR: An error occurred while processing order reminders: %v", timestamp, err)
		if werr := j.log.Append(line); werr != nil {
			j.logger.Error("failed to write reminders log", zap.Error(werr))
		}
		return
	}

	if len(orders) == 0 {
		days := int(j.window.Hours() / 24)
		line := fmt.Sprintf("[%s] No pending orders found within the last %d days.", timestamp, days)
		if err := j.log.Append(line); err != nil {
			j.logger.Error("failed to write reminders log", zap.Error(err))
		}
		return
	}

	for _, order := range orders {
		line := fmt.Sprintf("[%s] Reminder for Order ID: %s, Customer: %s",
			timestamp, order.ID, order.Customer.Email)
		if err := j.log.Append(line); err != nil {
			j.logger.Error("failed to write reminders log", zap.Error(err))
			return
		}
	}
}
