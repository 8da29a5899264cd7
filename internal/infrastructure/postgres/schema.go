package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
)

//go:embed schema.sql
var schemaSQL string

// schemaStatements divide schema.sql en sentencias (el DDL no contiene ';' dentro de literales).
func schemaStatements() []string {
	var out []string
	for _, stmt := range strings.Split(schemaSQL, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// EnsureSchema aplica el DDL idempotente en una sola transacción. No es un sistema de migraciones.
func EnsureSchema(ctx context.Context, tx *TxRunner) error {
	return tx.Run(ctx, func(q Querier) error {
		for _, stmt := range schemaStatements() {
			if _, err := q.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("apply schema: %w", err)
			}
		}
		return nil
	})
}
