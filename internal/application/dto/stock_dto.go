package dto

import "time"

// CreateStockRequest entrada para crear un item de stock.
// Quantity es puntero para distinguir "ausente" de cero.
type CreateStockRequest struct {
	TenantID    *int64 `json:"tenant_id,omitempty"`
	ProductName string `json:"product_name"`
	Quantity    *int   `json:"quantity"`
}

// UpdateStockRequest entrada para actualizar un item (campos opcionales).
type UpdateStockRequest struct {
	TenantID    *int64  `json:"tenant_id,omitempty"`
	ProductName *string `json:"product_name"`
	Quantity    *int    `json:"quantity"`
}

// StockResponse salida de un item de stock.
type StockResponse struct {
	ID          int64     `json:"id"`
	TenantID    int64     `json:"tenant_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StockListResponse lista paginada de items de stock.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
