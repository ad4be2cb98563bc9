package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Multitenant-api/internal/application/dto"
	"github.com/jhoicas/Multitenant-api/internal/domain"
	"github.com/jhoicas/Multitenant-api/pkg/logger"
)

type registrar interface {
	Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error)
}

type result struct {
	created, skipped, failed int
}

// readRows lee filas name,email,password. Con latin1 decodifica ISO-8859-1 a UTF-8.
func readRows(r io.Reader, latin1 bool) ([]dto.RegisterRequest, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var rows []dto.RegisterRequest
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer CSV: %w", err)
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "name") {
			continue
		}
		rows = append(rows, dto.RegisterRequest{
			Name:     strings.TrimSpace(rec[0]),
			Email:    strings.TrimSpace(rec[1]),
			Password: rec[2],
		})
	}
	return rows, nil
}

// seed registra cada fila; un email repetido se omite sin cortar la carga.
func seed(ctx context.Context, uc registrar, rows []dto.RegisterRequest, log *logger.Logger) result {
	var res result
	for _, in := range rows {
		out, err := uc.Register(ctx, in)
		switch {
		case err == nil:
			res.created++
			log.Info().Int64("tenant_id", out.Tenant.ID).Str("domain", out.Tenant.Domain).Msg("tenant creado")
		case errors.Is(err, domain.ErrDuplicateEmail):
			res.skipped++
			log.Warn().Str("email", in.Email).Err(err).Msg("fila omitida")
		default:
			res.failed++
			log.Error().Str("email", in.Email).Err(err).Msg("fila con error")
		}
	}
	return res
}
