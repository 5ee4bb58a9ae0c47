package repositories

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Pagination is shared by the filtered list queries. A zero value means
// no paging: the full result set is returned.
type Pagination struct {
	Page    int
	PerPage int
}

// CustomerFilter narrows and orders the allCustomers listing.
type CustomerFilter struct {
	NameContains  string
	EmailContains string
	CreatedAtGte  *time.Time
	CreatedAtLte  *time.Time
	OrderBy       []string
	Pagination
}

// ProductFilter narrows and orders the allProducts listing.
type ProductFilter struct {
	NameContains string
	PriceGte     *float64
	PriceLte     *float64
	StockGte     *int
	StockLte     *int
	OrderBy      []string
	Pagination
}

// OrderFilter narrows and orders the allOrders listing.
type OrderFilter struct {
	CustomerEmail  string
	TotalAmountGte *float64
	TotalAmountLte *float64
	OrderDateGte   *time.Time
	OrderDateLte   *time.Time
	OrderBy        []string
	Pagination
}

// Sortable columns per entity. Anything outside the whitelist is ignored
// rather than interpolated into SQL.
var (
	customerSortColumns = map[string]bool{"name": true, "email": true, "created_at": true}
	productSortColumns  = map[string]bool{"name": true, "price": true, "stock": true}
	orderSortColumns    = map[string]bool{"total_amount": true, "order_date": true}
)

// applyOrderBy appends ORDER BY clauses for each requested field. A
// leading '-' requests descending order, mirroring the wire convention.
func applyOrderBy(db *gorm.DB, orderBy []string, allowed map[string]bool) *gorm.DB {
	for _, field := range orderBy {
		column := strings.TrimPrefix(field, "-")
		if !allowed[column] {
			continue
		}
		if strings.HasPrefix(field, "-") {
			db = db.Order(column + " DESC")
		} else {
			db = db.Order(column)
		}
	}
	return db
}

func applyPagination(db *gorm.DB, p Pagination) *gorm.DB {
	if p.PerPage <= 0 {
		return db
	}
	page := p.Page
	if page < 1 {
		page = 1
	}
	return db.Offset((page - 1) * p.PerPage).Limit(p.PerPage)
}
