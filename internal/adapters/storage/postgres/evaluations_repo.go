package postgres

import (
	"context"
	"database/sql"
	"errors"

	"cattle-health-records/internal/domain/evaluations"
)

const evaluationColumns = `id, vaca_id, sintomas::text, cmt, condutividade, observacoes, created_at, updated_at`

type EvaluationsRepo struct {
	db *sql.DB
}

func NewEvaluationsRepo(db *sql.DB) *EvaluationsRepo {
	return &EvaluationsRepo{db: db}
}

func (r *EvaluationsRepo) Latest(ctx context.Context, cowID int64) (evaluations.Evaluation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+evaluationColumns+`
		FROM avaliacoes
		WHERE vaca_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, cowID)
	return scanEvaluationRow(row)
}

func (r *EvaluationsRepo) Create(ctx context.Context, e evaluations.Evaluation) (evaluations.Evaluation, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO avaliacoes (vaca_id, sintomas, cmt, condutividade, observacoes, updated_at)
		VALUES ($1, $2::jsonb, $3, $4, $5, $6)
		RETURNING `+evaluationColumns,
		e.CowID,
		e.Symptoms,
		toNullString(e.CMT),
		toNullFloat(e.Conductivity),
		toNullString(e.Notes),
		toNullTime(e.UpdatedAt),
	)
	return scanEvaluationRow(row)
}

func (r *EvaluationsRepo) Update(ctx context.Context, e evaluations.Evaluation) (evaluations.Evaluation, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE avaliacoes
		SET
			sintomas = $3::jsonb,
			cmt = $4,
			condutividade = $5,
			observacoes = $6,
			updated_at = $7
		WHERE id = $1 AND vaca_id = $2
		RETURNING `+evaluationColumns,
		e.ID,
		e.CowID,
		e.Symptoms,
		toNullString(e.CMT),
		toNullFloat(e.Conductivity),
		toNullString(e.Notes),
		toNullTime(e.UpdatedAt),
	)
	return scanEvaluationRow(row)
}

func scanEvaluationRow(row *sql.Row) (evaluations.Evaluation, error) {
	var (
		e            evaluations.Evaluation
		cmt, notes   sql.NullString
		conductivity sql.NullFloat64
		updatedAt    sql.NullTime
	)
	err := row.Scan(
		&e.ID,
		&e.CowID,
		&e.Symptoms,
		&cmt,
		&conductivity,
		&notes,
		&e.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return evaluations.Evaluation{}, evaluations.ErrNotFound
		}
		return evaluations.Evaluation{}, err
	}

	e.CMT = fromNullString(cmt)
	e.Conductivity = fromNullFloat(conductivity)
	e.Notes = fromNullString(notes)
	e.UpdatedAt = fromNullTime(updatedAt)
	return e, nil
}
