package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/crm/backend/internal/domain/catalog"
	"github.com/crm/backend/internal/domain/partner"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/domain/trade"
)

// AuditLogHandler writes a structured audit line for every CRM mutation
// event. It subscribes to the creation and restock events so the log
// carries a trail of who/what changed without the write path having to
// know about auditing.
type AuditLogHandler struct {
	logger *zap.Logger
}

// NewAuditLogHandler creates a new audit log handler
func NewAuditLogHandler(logger *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{logger: logger.Named("audit")}
}

// EventTypes returns the CRM mutation events this handler records
func (h *AuditLogHandler) EventTypes() []string {
	return []string{
		partner.EventTypeCustomerCreated,
		catalog.EventTypeProductCreated,
		catalog.EventTypeProductRestocked,
		trade.EventTypeOrderCreated,
	}
}

// Handle writes one audit entry per event
func (h *AuditLogHandler) Handle(ctx context.Context, e shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_id", e.EventID().String()),
		zap.String("aggregate_type", e.AggregateType()),
		zap.String("aggregate_id", e.AggregateID().String()),
		zap.Time("occurred_at", e.OccurredAt()),
	}

	switch ev := e.(type) {
	case *partner.CustomerCreatedEvent:
		fields = append(fields, zap.String("email", ev.Email))
	case *catalog.ProductCreatedEvent:
		fields = append(fields, zap.String("name", ev.Name), zap.Int("stock", ev.Stock))
	case *catalog.ProductRestockedEvent:
		fields = append(fields, zap.String("name", ev.Name),
			zap.Int("old_stock", ev.OldStock), zap.Int("new_stock", ev.NewStock))
	case *trade.OrderCreatedEvent:
		fields = append(fields, zap.String("customer_id", ev.CustomerID.String()),
			zap.String("total_amount", ev.TotalAmount.StringFixed(2)))
	}

	h.logger.Info(e.EventType(), fields...)
	return nil
}

// Ensure AuditLogHandler implements EventHandler
var _ shared.EventHandler = (*AuditLogHandler)(nil)
