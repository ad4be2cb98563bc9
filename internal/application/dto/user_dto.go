package dto

import "time"

// CreateUserRequest entrada para crear un usuario en el tenant del alcance.
// TenantID es opcional: si viene y difiere del alcance el request se rechaza.
type CreateUserRequest struct {
	TenantID *int64 `json:"tenant_id,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest entrada para actualizar un usuario (campos opcionales).
type UpdateUserRequest struct {
	TenantID *int64  `json:"tenant_id,omitempty"`
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        int64     `json:"id"`
	TenantID  int64     `json:"tenant_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// RegisterRequest entrada para registro: crea un tenant nuevo con su primer usuario.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse salida del registro.
type RegisterResponse struct {
	Tenant TenantResponse `json:"tenant"`
	User   UserResponse   `json:"user"`
}

// LoginRequest entrada para login. El email identifica al usuario en todos los tenants.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse salida con el token de sesión.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}
