package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// reporterTimeFormat is the timestamp layout shared by the restock,
// reminder and report logs
const reporterTimeFormat = "2006-01-02 15:04:05"

// restockRequest is the body of the restock mutation
type restockRequest struct {
	Amount int `json:"amount"`
}

// restockedProduct is one restocked product in the mutation response
type restockedProduct struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// restockEnvelope is the API response envelope of the restock mutation
type restockEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		Products []restockedProduct `json:"products"`
		Message  string             `json:"message"`
	} `json:"data"`
}

// LowStockRestockExecutor triggers the restock mutation and logs which
// products were topped up. It is the only writer among the reporters;
// its contract is one mutation per run, outcome logged, bounded retries
// handled by the API client.
type LowStockRestockExecutor struct {
	api     *APIClient
	amount  int
	logPath string
	logger  *zap.Logger
}

// NewLowStockRestockExecutor creates a new low-stock restock executor
func NewLowStockRestockExecutor(api *APIClient, amount int, logPath string, logger *zap.Logger) *LowStockRestockExecutor {
	return &LowStockRestockExecutor{api: api, amount: amount, logPath: logPath, logger: logger}
}

// Execute triggers the restock mutation and appends the outcome
func (e *LowStockRestockExecutor) Execute(ctx context.Context, job *Job) error {
	ts := time.Now().Format(reporterTimeFormat)

	var envelope restockEnvelope
	status, err := e.api.PostJSON(ctx, "/crm/products/restock-low-stock", restockRequest{Amount: e.amount}, &envelope)
	if err != nil {
		line := fmt.Sprintf("[%s] ERROR: %s: %v", ts, ErrorKind(err), err)
		if logErr := appendLogLines(e.logPath, line); logErr != nil {
			e.logger.Error("Failed to write restock log", zap.Error(logErr))
		}
		return err
	}
	if status != 200 || !envelope.Success {
		line := fmt.Sprintf("[%s] ERROR: UnexpectedStatus: HTTP %d", ts, status)
		if logErr := appendLogLines(e.logPath, line); logErr != nil {
			e.logger.Error("Failed to write restock log", zap.Error(logErr))
		}
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, status)
	}

	lines := make([]string, 0, len(envelope.Data.Products)+1)
	lines = append(lines, fmt.Sprintf("[%s] %s", ts, envelope.Data.Message))
	for _, p := range envelope.Data.Products {
		lines = append(lines, fmt.Sprintf("- %s: stock=%d", p.Name, p.Stock))
	}
	return appendLogLines(e.logPath, lines...)
}

var _ JobExecutor = (*LowStockRestockExecutor)(nil)
