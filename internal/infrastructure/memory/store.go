// Package memory implementa los puertos de persistencia en memoria, con el mismo contrato de
// alcance que el adaptador PostgreSQL. Sirve para tests y despliegues livianos; los datos se
// pierden al reiniciar el proceso.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jhoicas/Multitenant-api/internal/application/auth"
	"github.com/jhoicas/Multitenant-api/internal/domain"
	"github.com/jhoicas/Multitenant-api/internal/domain/entity"
	"github.com/jhoicas/Multitenant-api/internal/domain/repository"
	"github.com/jhoicas/Multitenant-api/internal/domain/tenancy"
)

// Ensure Store implements auth.RegistrationTx.
var _ auth.RegistrationTx = (*Store)(nil)

// Store guarda tenants, usuarios y stock. Todas las vistas comparten el mismo estado.
type Store struct {
	mu     sync.RWMutex
	data   *state
	calls  atomic.Int64
	failOn atomic.Pointer[error]
}

type state struct {
	nextID  int64
	tenants map[int64]entity.Tenant
	users   map[int64]entity.User
	stocks  map[int64]entity.StockItem
}

func newState() *state {
	return &state{
		tenants: make(map[int64]entity.Tenant),
		users:   make(map[int64]entity.User),
		stocks:  make(map[int64]entity.StockItem),
	}
}

func (s *state) clone() *state {
	c := &state{
		nextID:  s.nextID,
		tenants: make(map[int64]entity.Tenant, len(s.tenants)),
		users:   make(map[int64]entity.User, len(s.users)),
		stocks:  make(map[int64]entity.StockItem, len(s.stocks)),
	}
	for k, v := range s.tenants {
		c.tenants[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.stocks {
		c.stocks[k] = v
	}
	return c
}

func (s *state) id() int64 {
	s.nextID++
	return s.nextID
}

// New crea un store vacío.
func New() *Store {
	return &Store{data: newState()}
}

// Calls devuelve cuántas operaciones de almacenamiento se ejecutaron.
func (s *Store) Calls() int64 { return s.calls.Load() }

// FailWith hace que toda operación siguiente devuelva err (nil para restablecer).
func (s *Store) FailWith(err error) {
	if err == nil {
		s.failOn.Store(nil)
		return
	}
	s.failOn.Store(&err)
}

func (s *Store) begin() error {
	s.calls.Add(1)
	if p := s.failOn.Load(); p != nil {
		return *p
	}
	return nil
}

// Tenants devuelve el registro de tenants.
func (s *Store) Tenants() repository.TenantRepository { return tenantView{s: s} }

// Users devuelve el repositorio de usuarios con alcance.
func (s *Store) Users() repository.UserRepository { return userView{s: s} }

// Stocks devuelve el repositorio de stock con alcance.
func (s *Store) Stocks() repository.StockRepository { return stockView{s: s} }

// Credentials devuelve la búsqueda global por email.
func (s *Store) Credentials() repository.CredentialLookup { return credentialView{s: s} }

// RunRegistration ejecuta fn sobre una copia del estado y la publica solo si fn no falla.
func (s *Store) RunRegistration(ctx context.Context, fn func(
	tenants repository.TenantRepository,
	users repository.UserRepository,
	creds repository.CredentialLookup,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Store{data: s.data.clone()}
	if p := s.failOn.Load(); p != nil {
		tx.failOn.Store(p)
	}
	err := fn(tenantView{s: tx}, userView{s: tx}, credentialView{s: tx})
	s.calls.Add(tx.calls.Load())
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.data = tx.data
	return nil
}

// ─── tenants ─────────────────────────────────────────────────────────────────

type tenantView struct{ s *Store }

func (v tenantView) Create(_ context.Context, t *entity.Tenant) error {
	if err := v.s.begin(); err != nil {
		return err
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	t.ID = v.s.data.id()
	t.Domain = strings.ToLower(t.Domain)
	t.CreatedAt = time.Now().UTC()
	v.s.data.tenants[t.ID] = *t
	return nil
}

func (v tenantView) GetByID(_ context.Context, id int64) (*entity.Tenant, error) {
	if err := v.s.begin(); err != nil {
		return nil, err
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	t, ok := v.s.data.tenants[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (v tenantView) Exists(_ context.Context, id int64) (bool, error) {
	if err := v.s.begin(); err != nil {
		return false, err
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	_, ok := v.s.data.tenants[id]
	return ok, nil
}

// ─── usuarios ────────────────────────────────────────────────────────────────

type userView struct{ s *Store }

func (v userView) Create(_ context.Context, scope tenancy.Scope, u *entity.User) error {
	if !scope.Valid() {
		return domain.ErrNoScope
	}
	if err := v.s.begin(); err != nil {
		return err
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if _, ok := v.s.data.tenants[scope.TenantID()]; !ok {
		return domain.ErrTenantNotFound
	}
	email := strings.ToLower(u.Email)
	if v.s.emailTaken(email, 0) {
		return domain.ErrDuplicateEmail
	}
	u.ID = v.s.data.id()
	u.TenantID = scope.TenantID()
	u.Email = email
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	v.s.data.users[u.ID] = *u
	return nil
}

func (v userView) GetByID(_ context.Context, scope tenancy.Scope, id int64) (*entity.User, error) {
	if !scope.Valid() {
		return nil, domain.ErrNoScope
	}
	if err := v.s.begin(); err != nil {
		return nil, err
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	u, ok := v.s.data.users[id]
	if !ok || u.TenantID != scope.TenantID() {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (v userView) List(_ context.Context, scope tenancy.Scope, limit, offset int) ([]*entity.User, error) {
	if limit <= 0 || offset < 0 {
		return nil, domain.ErrInvalidInput
	}
	if !scope.Valid() {
		return nil, domain.ErrNoScope
	}
	if err := v.s.begin(); err != nil {
		return nil, err
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	list := make([]*entity.User, 0)
	for _, u := range v.s.data.users {
		if u.TenantID == scope.TenantID() {
			u := u
			list = append(list, &u)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return page(list, limit, offset), nil
}

func (v userView) Update(_ context.Context, scope tenancy.Scope, u *entity.User) error {
	if !scope.Valid() {
		return domain.ErrNoScope
	}
	if err := v.s.begin(); err != nil {
		return err
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	cur, ok := v.s.data.users[u.ID]
	if !ok || cur.TenantID != scope.TenantID() {
		return domain.ErrNotFound
	}
	email := strings.ToLower(u.Email)
	if v.s.emailTaken(email, u.ID) {
		return domain.ErrDuplicateEmail
	}
	cur.Username = u.Username
	cur.Email = email
	cur.PasswordHash = u.PasswordHash
	v.s.data.users[cur.ID] = cur
	*u = cur
	return nil
}

func (v userView) Delete(_ context.Context, scope tenancy.Scope, id int64) error {
	if !scope.Valid() {
		return domain.ErrNoScope
	}
	if err := v.s.begin(); err != nil {
		return err
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	u, ok := v.s.data.users[id]
	if !ok || u.TenantID != scope.TenantID() {
		return domain.ErrNotFound
	}
	delete(v.s.data.users, id)
	return nil
}

// emailTaken requiere s.mu tomado.
func (s *Store) emailTaken(email string, exceptID int64) bool {
	for _, u := range s.data.users {
		if u.Email == email && u.ID != exceptID {
			return true
		}
	}
	return false
}

// ─── credenciales ────────────────────────────────────────────────────────────

type credentialView struct{ s *Store }

func (v credentialView) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if err := v.s.begin(); err != nil {
		return nil, err
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	email = strings.ToLower(email)
	for _, u := range v.s.data.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (v credentialView) EmailExists(ctx context.Context, email string) (bool, error) {
	u, err := v.FindByEmail(ctx, email)
	return u != nil, err
}

// ─── stock ───────────────────────────────────────────────────────────────────

type stockView struct{ s *Store }

func (v stockView) Create(_ context.Context, scope tenancy.Scope, item *entity.StockItem) error {
	if !scope.Valid() {
		return domain.ErrNoScope
	}
	if item.Quantity < 0 {
		return domain.ErrNegativeQuantity
	}
	if err := v.s.begin(); err != nil {
		return err
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if _, ok := v.s.data.tenants[scope.TenantID()]; !ok {
		return domain.ErrTenantNotFound
	}
	item.ID = v.s.data.id()
	item.TenantID = scope.TenantID()
	item.UpdatedAt = time.Now().UTC()
	v.s.data.stocks[item.ID] = *item
	return nil
}

func (v stockView) GetByID(_ context.Context, scope tenancy.Scope, id int64) (*entity.StockItem, error) {
	if !scope.Valid() {
		return nil, domain.ErrNoScope
	}
	if err := v.s.begin(); err != nil {
		return nil, err
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	it, ok := v.s.data.stocks[id]
	if !ok || it.TenantID != scope.TenantID() {
		return nil, domain.ErrNotFound
	}
	return &it, nil
}

func (v stockView) List(_ context.Context, scope tenancy.Scope, limit, offset int) ([]*entity.StockItem, error) {
	if limit <= 0 || offset < 0 {
		return nil, domain.ErrInvalidInput
	}
	if !scope.Valid() {
		return nil, domain.ErrNoScope
	}
	if err := v.s.begin(); err != nil {
		return nil, err
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	list := make([]*entity.StockItem, 0)
	for _, it := range v.s.data.stocks {
		if it.TenantID == scope.TenantID() {
			it := it
			list = append(list, &it)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return page(list, limit, offset), nil
}

func (v stockView) Update(_ context.Context, scope tenancy.Scope, item *entity.StockItem) error {
	if !scope.Valid() {
		return domain.ErrNoScope
	}
	if item.Quantity < 0 {
		return domain.ErrNegativeQuantity
	}
	if err := v.s.begin(); err != nil {
		return err
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	cur, ok := v.s.data.stocks[item.ID]
	if !ok || cur.TenantID != scope.TenantID() {
		return domain.ErrNotFound
	}
	cur.ProductName = item.ProductName
	cur.Quantity = item.Quantity
	cur.UpdatedAt = time.Now().UTC()
	v.s.data.stocks[cur.ID] = cur
	*item = cur
	return nil
}

func (v stockView) Delete(_ context.Context, scope tenancy.Scope, id int64) error {
	if !scope.Valid() {
		return domain.ErrNoScope
	}
	if err := v.s.begin(); err != nil {
		return err
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	it, ok := v.s.data.stocks[id]
	if !ok || it.TenantID != scope.TenantID() {
		return domain.ErrNotFound
	}
	delete(v.s.data.stocks, id)
	return nil
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return list[:0]
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}
