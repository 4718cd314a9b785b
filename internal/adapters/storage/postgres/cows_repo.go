package postgres

import (
	"context"
	"database/sql"
	"errors"

	"cattle-health-records/internal/domain/cows"
)

const cowColumns = `id, nome, identificacao, raca, data_nascimento::text, status`

type CowsRepo struct {
	db *sql.DB
}

func NewCowsRepo(db *sql.DB) *CowsRepo {
	return &CowsRepo{db: db}
}

func (r *CowsRepo) List(ctx context.Context) ([]cows.Cow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+cowColumns+`
		FROM vacas
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]cows.Cow, 0)
	for rows.Next() {
		c, err := scanCow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CowsRepo) GetByID(ctx context.Context, id int64) (cows.Cow, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+cowColumns+`
		FROM vacas
		WHERE id = $1
	`, id)
	return scanCowRow(row)
}

// Create: data_nascimento vacío se guarda como NULL (una columna DATE no acepta '').
func (r *CowsRepo) Create(ctx context.Context, c cows.Cow) (cows.Cow, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO vacas (nome, identificacao, raca, data_nascimento, status)
		VALUES ($1, $2, $3, NULLIF($4::text, '')::date, $5)
		RETURNING `+cowColumns,
		c.Name,
		c.Tag,
		toNullString(c.Breed),
		toNullString(c.BirthDate),
		toNullString(c.Status),
	)
	return scanCowRow(row)
}

func (r *CowsRepo) Update(ctx context.Context, c cows.Cow) (cows.Cow, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE vacas
		SET
			nome = $2,
			identificacao = $3,
			raca = $4,
			data_nascimento = NULLIF($5::text, '')::date,
			status = $6
		WHERE id = $1
		RETURNING `+cowColumns,
		c.ID,
		c.Name,
		c.Tag,
		toNullString(c.Breed),
		toNullString(c.BirthDate),
		toNullString(c.Status),
	)
	return scanCowRow(row)
}

func (r *CowsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vacas WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return cows.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCow(s scanner) (cows.Cow, error) {
	var (
		c                       cows.Cow
		breed, birthDate, state sql.NullString
	)
	if err := s.Scan(&c.ID, &c.Name, &c.Tag, &breed, &birthDate, &state); err != nil {
		return cows.Cow{}, err
	}
	c.Breed = fromNullString(breed)
	c.BirthDate = fromNullString(birthDate)
	c.Status = fromNullString(state)
	return c, nil
}

func scanCowRow(row *sql.Row) (cows.Cow, error) {
	c, err := scanCow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return cows.Cow{}, cows.ErrNotFound
	}
	return c, err
}
