package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Multitenant-api/internal/application/auth"
	"github.com/jhoicas/Multitenant-api/internal/domain/repository"
)

// Ensure TxRunner implements auth.RegistrationTx.
var _ auth.RegistrationTx = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn y hace Commit o Rollback.
// Si ctx se cancela a mitad, el Commit falla y el Rollback diferido deshace todo.
func (r *TxRunner) Run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunRegistration ejecuta fn con repos de tenants, usuarios y credenciales atados a una misma tx:
// el tenant y su primer usuario se crean juntos o no se crea ninguno.
func (r *TxRunner) RunRegistration(ctx context.Context, fn func(
	tenants repository.TenantRepository,
	users repository.UserRepository,
	creds repository.CredentialLookup,
) error) error {
	return r.Run(ctx, func(tx pgx.Tx) error {
		return fn(NewTenantRepository(tx), NewUserRepository(tx), NewCredentialRepository(tx))
	})
}
