package persistence

import (
	"github.com/crm/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applySort appends an ORDER BY clause when the sort key is inside the
// entity's allow-list. A key outside the allow-list is silently ignored
// and the result keeps its default order.
func applySort(query *gorm.DB, sort shared.Sort, allowed map[string]struct{}) *gorm.DB {
	if sort.IsZero() {
		return query
	}
	if _, ok := allowed[sort.Key]; !ok {
		return query
	}

	dir := "ASC"
	if sort.Direction == shared.SortDesc {
		dir = "DESC"
	}
	return query.Order(sort.Key + " " + dir)
}
