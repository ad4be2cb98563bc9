package dto

import "time"

// CreateTenantRequest entrada para crear un tenant. Si Domain viene vacío se deriva del nombre.
type CreateTenantRequest struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`
}

// TenantResponse salida de un tenant.
type TenantResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Domain    string    `json:"domain"`
	CreatedAt time.Time `json:"created_at"`
}

// TenantListResponse lista de tenants visibles para el llamador.
type TenantListResponse struct {
	Items []TenantResponse `json:"items"`
}
