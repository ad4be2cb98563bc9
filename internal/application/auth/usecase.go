package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Multitenant-api/internal/application/dto"
	"github.com/jhoicas/Multitenant-api/internal/domain"
	"github.com/jhoicas/Multitenant-api/internal/domain/entity"
	"github.com/jhoicas/Multitenant-api/internal/domain/repository"
	"github.com/jhoicas/Multitenant-api/internal/domain/tenancy"
	"github.com/jhoicas/Multitenant-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// RegistrationTx ejecuta fn con repositorios atados a una única transacción.
// Si fn devuelve error no queda ninguna escritura.
type RegistrationTx interface {
	RunRegistration(ctx context.Context, fn func(
		tenants repository.TenantRepository,
		users repository.UserRepository,
		creds repository.CredentialLookup,
	) error) error
}

// Option ajusta parámetros de AuthUseCase.
type Option func(*AuthUseCase)

// WithBcryptCost cambia el costo de bcrypt (los tests usan bcrypt.MinCost).
func WithBcryptCost(cost int) Option {
	return func(uc *AuthUseCase) { uc.cost = cost }
}

// WithClock reemplaza el reloj usado para emitir tokens.
func WithClock(now func() time.Time) Option {
	return func(uc *AuthUseCase) { uc.now = now }
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	tx           RegistrationTx
	creds        repository.CredentialLookup
	jwtCfg       JWTConfig
	domainSuffix string
	cost         int
	now          func() time.Time

	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(tx RegistrationTx, creds repository.CredentialLookup, jwtCfg JWTConfig, domainSuffix string, opts ...Option) *AuthUseCase {
	uc := &AuthUseCase{
		tx:           tx,
		creds:        creds,
		jwtCfg:       jwtCfg,
		domainSuffix: domainSuffix,
		cost:         bcrypt.DefaultCost,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Register crea un tenant nuevo y su primer usuario en la misma transacción.
// El dominio se deriva del nombre y el username es la parte local del email.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email y password son obligatorios", domain.ErrMissingField)
	}
	username, ok := localPart(email)
	if !ok {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}

	// El hash se calcula fuera de la transacción para no retenerla.
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, fmt.Errorf("%w: hash de password: %w", domain.ErrInternal, err)
	}

	tenant := &entity.Tenant{Name: name, Domain: tenancy.DomainFor(name, uc.domainSuffix)}
	user := &entity.User{Username: username, Email: email, PasswordHash: string(hash)}

	err = uc.tx.RunRegistration(ctx, func(tenants repository.TenantRepository, users repository.UserRepository, creds repository.CredentialLookup) error {
		exists, err := creds.EmailExists(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicateEmail
		}
		if err := tenants.Create(ctx, tenant); err != nil {
			return err
		}
		scope, err := tenancy.NewScope(tenant.ID)
		if err != nil {
			return err
		}
		return users.Create(ctx, scope, user)
	})
	if err != nil {
		if isClientError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: registro: %w", domain.ErrInternal, err)
	}

	return &dto.RegisterResponse{
		Tenant: toTenantResponse(tenant),
		User:   toUserResponse(user),
	}, nil
}

// Login verifica email/password y emite un token firmado con user_id y tenant_id.
// Email inexistente y password incorrecto devuelven el mismo ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email y password son obligatorios", domain.ErrMissingField)
	}

	user, err := uc.creds.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: buscar usuario: %w", domain.ErrInternal, err)
	}

	// Se compara siempre contra algún hash para que el tiempo de respuesta no revele si el email existe.
	hash := uc.fallbackHash()
	if user != nil {
		hash = []byte(user.PasswordHash)
	}
	cmpErr := bcrypt.CompareHashAndPassword(hash, []byte(in.Password))
	if user == nil || cmpErr != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := jwt.GenerateAt(uc.now(), uc.jwtCfg.Secret, user.ID, user.TenantID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: emitir token: %w", domain.ErrInternal, err)
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      toUserResponse(user),
	}, nil
}

func (uc *AuthUseCase) fallbackHash() []byte {
	uc.dummyOnce.Do(func() {
		uc.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("multitenant-api-dummy-password"), uc.cost)
	})
	return uc.dummyHash
}

func isClientError(err error) bool {
	return errors.Is(err, domain.ErrDuplicateEmail) ||
		errors.Is(err, domain.ErrInvalidInput)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func localPart(email string) (string, bool) {
	local, host, ok := strings.Cut(email, "@")
	if !ok || local == "" || host == "" || strings.Contains(host, "@") {
		return "", false
	}
	return local, true
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		TenantID:  u.TenantID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func toTenantResponse(t *entity.Tenant) dto.TenantResponse {
	return dto.TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		Domain:    t.Domain,
		CreatedAt: t.CreatedAt,
	}
}
