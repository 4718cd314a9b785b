package evaluations

import "context"

type Repository interface {
	// Latest devuelve la evaluación más reciente de la vaca
	// (created_at desc, limit 1). ErrNotFound si no hay ninguna.
	Latest(ctx context.Context, cowID int64) (Evaluation, error)
	Create(ctx context.Context, e Evaluation) (Evaluation, error)
	// Update reemplaza la fila e.ID de la vaca e.CowID y devuelve lo que quedó
	// guardado. ErrNotFound si el id no existe o es de otra vaca.
	Update(ctx context.Context, e Evaluation) (Evaluation, error)
}
