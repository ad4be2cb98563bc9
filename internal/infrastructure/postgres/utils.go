package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool { return pgCode(err) == codeUniqueViolation }

func isForeignKeyViolation(err error) bool { return pgCode(err) == codeForeignKeyViolation }

func isCheckViolation(err error) bool { return pgCode(err) == codeCheckViolation }

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// withRetry reintenta fn una sola vez si el fallo ocurrió antes de que el servidor recibiera
// la sentencia (pgconn.SafeToRetry). Los errores de datos no se reintentan.
func withRetry(ctx context.Context, fn func() error) error {
	err := fn()
	if err == nil || !pgconn.SafeToRetry(err) || ctx.Err() != nil {
		return err
	}
	return fn()
}
