package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"cattle-health-records/internal/domain/evaluations"
)

type evaluationRepo struct {
	mu     sync.RWMutex
	byID   map[int64]evaluations.Evaluation
	nextID int64
	now    func() time.Time
}

func NewEvaluationRepo() evaluations.Repository {
	return &evaluationRepo{
		byID: make(map[int64]evaluations.Evaluation),
		now:  time.Now,
	}
}

// Latest: created_at desc; empate => id más alto (insert más nuevo).
func (r *evaluationRepo) Latest(ctx context.Context, cowID int64) (evaluations.Evaluation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var winner evaluations.Evaluation
	has := false
	for _, e := range r.byID {
		if e.CowID != cowID {
			continue
		}
		if !has ||
			e.CreatedAt.After(winner.CreatedAt) ||
			(e.CreatedAt.Equal(winner.CreatedAt) && e.ID > winner.ID) {
			winner = e
			has = true
		}
	}

	if !has {
		return evaluations.Evaluation{}, evaluations.ErrNotFound
	}
	return clone(winner), nil
}

func (r *evaluationRepo) Create(ctx context.Context, e evaluations.Evaluation) (evaluations.Evaluation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID != 0 {
		return evaluations.Evaluation{}, errors.New("evaluation id is assigned by the store")
	}
	if e.CowID <= 0 {
		return evaluations.Evaluation{}, errors.New("vaca_id required")
	}

	r.nextID++
	e.ID = r.nextID
	e.CreatedAt = r.now()
	r.byID[e.ID] = clone(e)
	return clone(e), nil
}

func (r *evaluationRepo) Update(ctx context.Context, e evaluations.Evaluation) (evaluations.Evaluation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// la fila tiene que ser de la misma vaca; nunca se mueve entre vacas
	current, exists := r.byID[e.ID]
	if !exists || current.CowID != e.CowID {
		return evaluations.Evaluation{}, evaluations.ErrNotFound
	}

	// created_at no se toca en un update
	e.CreatedAt = current.CreatedAt
	r.byID[e.ID] = clone(e)
	return clone(e), nil
}

// clone evita compartir el slice de sintomas con el caller.
func clone(e evaluations.Evaluation) evaluations.Evaluation {
	if e.Symptoms.Items != nil {
		e.Symptoms.Items = append([]string(nil), e.Symptoms.Items...)
	}
	return e
}
