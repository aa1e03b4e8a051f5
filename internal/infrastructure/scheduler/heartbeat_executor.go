package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// heartbeatTimeFormat is the timestamp layout of heartbeat log lines
const heartbeatTimeFormat = "02/01/2006-15:04:05"

// helloResponse is the shape of the hello probe endpoint
type helloResponse struct {
	Message string `json:"message"`
}

// HeartbeatExecutor appends one "CRM is alive" line per run and
// best-effort probes the hello endpoint. The probe result is appended to
// the same line; a failed probe never suppresses the heartbeat itself.
type HeartbeatExecutor struct {
	api     *APIClient
	logPath string
	logger  *zap.Logger
}

// NewHeartbeatExecutor creates a new heartbeat executor
func NewHeartbeatExecutor(api *APIClient, logPath string, logger *zap.Logger) *HeartbeatExecutor {
	return &HeartbeatExecutor{api: api, logPath: logPath, logger: logger}
}

// Execute writes the heartbeat line
func (e *HeartbeatExecutor) Execute(ctx context.Context, job *Job) error {
	line := time.Now().Format(heartbeatTimeFormat) + " CRM is alive" + e.probe(ctx)
	return appendLogLines(e.logPath, line)
}

// probe checks the hello endpoint and renders the status suffix
func (e *HeartbeatExecutor) probe(ctx context.Context) string {
	var hello helloResponse
	status, err := e.api.GetJSON(ctx, "/hello", nil, &hello)
	switch {
	case err != nil && status == 0:
		return " | API: ERR " + ErrorKind(err)
	case status != 200:
		return fmt.Sprintf(" | API: HTTP %d", status)
	case hello.Message != "Hello, CRM!":
		return " | API: Unexpected response"
	default:
		return " | API: OK"
	}
}

var _ JobExecutor = (*HeartbeatExecutor)(nil)
