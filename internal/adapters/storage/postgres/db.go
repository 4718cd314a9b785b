package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Schema es el esquema de referencia (mismas tablas/columnas que usa Supabase).
// El diseño del esquema no es responsabilidad de esta app; esto existe para dev,
// tests de integración y el comando migrate.
const Schema = `
CREATE TABLE IF NOT EXISTS vacas (
	id              BIGSERIAL PRIMARY KEY,
	nome            TEXT NOT NULL DEFAULT '',
	identificacao   TEXT NOT NULL DEFAULT '',
	raca            TEXT,
	data_nascimento DATE,
	status          TEXT,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS avaliacoes (
	id            BIGSERIAL PRIMARY KEY,
	vaca_id       BIGINT NOT NULL REFERENCES vacas(id) ON DELETE CASCADE,
	sintomas      JSONB NOT NULL DEFAULT '[]'::jsonb,
	cmt           TEXT,
	condutividade DOUBLE PRECISION,
	observacoes   TEXT,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS avaliacoes_vaca_created_idx ON avaliacoes (vaca_id, created_at DESC);
`

// Migrate aplica Schema (idempotente).
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("postgres: apply schema: %w", err)
	}
	return nil
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func toNullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func fromNullFloat(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
