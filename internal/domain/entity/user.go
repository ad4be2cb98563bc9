package entity

import "time"

// User representa un usuario del sistema. Pertenece a un único Tenant durante toda su vida:
// TenantID lo fija el gate de datos al crear y nunca se actualiza.
type User struct {
	ID           int64
	TenantID     int64
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	CreatedAt    time.Time
}
