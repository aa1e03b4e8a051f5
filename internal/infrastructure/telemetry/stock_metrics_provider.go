package telemetry

import (
	"context"

	"gorm.io/gorm"
)

// GormStockMetricsProvider implements StockMetricsProvider using GORM.
type GormStockMetricsProvider struct {
	db *gorm.DB
}

// NewGormStockMetricsProvider creates a new GormStockMetricsProvider.
func NewGormStockMetricsProvider(db *gorm.DB) *GormStockMetricsProvider {
	return &GormStockMetricsProvider{db: db}
}

// CountLowStock returns the number of products whose stock is below threshold.
func (p *GormStockMetricsProvider) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("products").
		Where("stock < ?", threshold).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
