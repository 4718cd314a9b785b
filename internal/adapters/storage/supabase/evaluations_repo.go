package supabase

import (
	"context"
	"time"

	"cattle-health-records/internal/domain/evaluations"
)

const evaluationsTable = "avaliacoes"

type evaluationRow struct {
	ID            int64                `json:"id"`
	VacaID        int64                `json:"vaca_id"`
	Sintomas      evaluations.Symptoms `json:"sintomas"`
	Cmt           *string              `json:"cmt"`
	Condutividade *float64             `json:"condutividade"`
	Observacoes   *string              `json:"observacoes"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     *time.Time           `json:"updated_at"`
}

type evaluationPayload struct {
	VacaID        int64                `json:"vaca_id"`
	Sintomas      evaluations.Symptoms `json:"sintomas"`
	Cmt           *string              `json:"cmt"`
	Condutividade *float64             `json:"condutividade"`
	Observacoes   *string              `json:"observacoes"`
	UpdatedAt     *time.Time           `json:"updated_at"`
}

type EvaluationsRepo struct {
	c *Client
}

func NewEvaluationsRepo(c *Client) *EvaluationsRepo {
	return &EvaluationsRepo{c: c}
}

func (r *EvaluationsRepo) Latest(ctx context.Context, cowID int64) (evaluations.Evaluation, error) {
	var rows []evaluationRow
	q := from(evaluationsTable).
		sel("*").
		eq("vaca_id", cowID).
		order("created_at", false).
		order("id", false).
		limit(1)
	if err := r.c.selectRows(ctx, q, &rows); err != nil {
		return evaluations.Evaluation{}, err
	}
	return firstEvaluation(rows)
}

func (r *EvaluationsRepo) Create(ctx context.Context, e evaluations.Evaluation) (evaluations.Evaluation, error) {
	var rows []evaluationRow
	if err := r.c.insertRows(ctx, from(evaluationsTable), []evaluationPayload{toEvaluationPayload(e)}, &rows); err != nil {
		return evaluations.Evaluation{}, err
	}
	return firstEvaluation(rows)
}

func (r *EvaluationsRepo) Update(ctx context.Context, e evaluations.Evaluation) (evaluations.Evaluation, error) {
	var rows []evaluationRow
	q := from(evaluationsTable).
		eq("id", e.ID).
		eq("vaca_id", e.CowID)
	if err := r.c.updateRows(ctx, q, toEvaluationPayload(e), &rows); err != nil {
		return evaluations.Evaluation{}, err
	}
	return firstEvaluation(rows)
}

func firstEvaluation(rows []evaluationRow) (evaluations.Evaluation, error) {
	if len(rows) == 0 {
		return evaluations.Evaluation{}, evaluations.ErrNotFound
	}
	row := rows[0]
	return evaluations.Evaluation{
		ID:           row.ID,
		CowID:        row.VacaID,
		Symptoms:     row.Sintomas,
		CMT:          row.Cmt,
		Conductivity: row.Condutividade,
		Notes:        row.Observacoes,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}

func toEvaluationPayload(e evaluations.Evaluation) evaluationPayload {
	return evaluationPayload{
		VacaID:        e.CowID,
		Sintomas:      e.Symptoms,
		Cmt:           e.CMT,
		Condutividade: e.Conductivity,
		Observacoes:   e.Notes,
		UpdatedAt:     e.UpdatedAt,
	}
}
