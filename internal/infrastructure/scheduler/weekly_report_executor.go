package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// reportCustomer is one customer in the list response; only identity matters
type reportCustomer struct {
	ID string `json:"id"`
}

// reportOrder is one order in the list response, narrowed to its total
type reportOrder struct {
	ID          string `json:"id"`
	TotalAmount string `json:"total_amount"`
}

// customersEnvelope is the API response envelope of the customers list query
type customersEnvelope struct {
	Success bool             `json:"success"`
	Data    []reportCustomer `json:"data"`
}

// reportOrdersEnvelope is the API response envelope of the orders list query
type reportOrdersEnvelope struct {
	Success bool          `json:"success"`
	Data    []reportOrder `json:"data"`
}

// WeeklyReportExecutor counts customers and orders and sums revenue from
// the serialized order totals, then appends one summary line per run.
// A total that fails to parse is skipped rather than failing the whole
// aggregate, since it travels through a serialization boundary.
type WeeklyReportExecutor struct {
	api     *APIClient
	logPath string
	logger  *zap.Logger
}

// NewWeeklyReportExecutor creates a new weekly report executor
func NewWeeklyReportExecutor(api *APIClient, logPath string, logger *zap.Logger) *WeeklyReportExecutor {
	return &WeeklyReportExecutor{api: api, logPath: logPath, logger: logger}
}

// Execute produces and logs the weekly report line
func (e *WeeklyReportExecutor) Execute(ctx context.Context, job *Job) error {
	ts := time.Now().Format(reporterTimeFormat)

	customers, orders, err := e.fetch(ctx)
	if err != nil {
		line := fmt.Sprintf("%s - Report ERROR: %s: %v", ts, ErrorKind(err), err)
		if logErr := appendLogLines(e.logPath, line); logErr != nil {
			e.logger.Error("Failed to write report log", zap.Error(logErr))
		}
		return err
	}

	var revenue float64
	for _, order := range orders {
		value, parseErr := strconv.ParseFloat(order.TotalAmount, 64)
		if parseErr != nil {
			e.logger.Warn("Skipping unparsable order total",
				zap.String("order_id", order.ID),
				zap.String("total_amount", order.TotalAmount),
			)
			continue
		}
		revenue += value
	}

	line := fmt.Sprintf("%s - Report: %d customers, %d orders, %.2f revenue",
		ts, len(customers), len(orders), revenue)
	return appendLogLines(e.logPath, line)
}

// fetch retrieves the customer and order lists
func (e *WeeklyReportExecutor) fetch(ctx context.Context) ([]reportCustomer, []reportOrder, error) {
	var customers customersEnvelope
	status, err := e.api.GetJSON(ctx, "/crm/customers", nil, &customers)
	if err != nil {
		return nil, nil, err
	}
	if status != 200 || !customers.Success {
		return nil, nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, status)
	}

	var orders reportOrdersEnvelope
	status, err = e.api.GetJSON(ctx, "/crm/orders", nil, &orders)
	if err != nil {
		return nil, nil, err
	}
	if status != 200 || !orders.Success {
		return nil, nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, status)
	}

	return customers.Data, orders.Data, nil
}

var _ JobExecutor = (*WeeklyReportExecutor)(nil)
