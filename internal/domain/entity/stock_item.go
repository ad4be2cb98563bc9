package entity

import "time"

// StockItem representa un producto en inventario propiedad de un tenant.
type StockItem struct {
	ID          int64
	TenantID    int64
	ProductName string
	Quantity    int // >= 0
	UpdatedAt   time.Time
}
