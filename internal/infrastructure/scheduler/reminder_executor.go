package scheduler

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// reminderOrder is one order in the list response, narrowed to the
// fields the reminder line needs
type reminderOrder struct {
	ID       string `json:"id"`
	Customer struct {
		Email string `json:"email"`
	} `json:"customer"`
	OrderDate time.Time `json:"order_date"`
}

// ordersEnvelope is the API response envelope of the orders list query
type ordersEnvelope struct {
	Success bool            `json:"success"`
	Data    []reminderOrder `json:"data"`
}

// OrderRemindersExecutor scans for orders placed within the reminder
// window and appends one reminder line per order.
type OrderRemindersExecutor struct {
	api     *APIClient
	window  time.Duration
	logPath string
	logger  *zap.Logger
}

// NewOrderRemindersExecutor creates a new order reminders executor
func NewOrderRemindersExecutor(api *APIClient, window time.Duration, logPath string, logger *zap.Logger) *OrderRemindersExecutor {
	return &OrderRemindersExecutor{api: api, window: window, logPath: logPath, logger: logger}
}

// Execute queries recent orders and logs a reminder per order
func (e *OrderRemindersExecutor) Execute(ctx context.Context, job *Job) error {
	now := time.Now().UTC()
	query := url.Values{}
	query.Set("order_date_gte", now.Add(-e.window).Format(time.RFC3339))
	query.Set("order_date_lte", now.Format(time.RFC3339))

	var envelope ordersEnvelope
	status, err := e.api.GetJSON(ctx, "/crm/orders", query, &envelope)
	if err != nil {
		return err
	}
	if status != 200 || !envelope.Success {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, status)
	}

	ts := time.Now().Format(reporterTimeFormat)
	lines := make([]string, 0, len(envelope.Data))
	for _, order := range envelope.Data {
		lines = append(lines, fmt.Sprintf("[%s] OrderID=%s -> %s", ts, order.ID, order.Customer.Email))
	}
	if err := appendLogLines(e.logPath, lines...); err != nil {
		return err
	}

	e.logger.Info("Order reminders processed!", zap.Int("orders", len(envelope.Data)))
	return nil
}

var _ JobExecutor = (*OrderRemindersExecutor)(nil)
