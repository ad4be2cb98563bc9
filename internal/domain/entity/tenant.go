package entity

import "time"

// Tenant representa una organización aislada (registro de tenants).
// Se crea en el registro y no se modifica después.
type Tenant struct {
	ID        int64
	Name      string
	Domain    string
	CreatedAt time.Time
}
