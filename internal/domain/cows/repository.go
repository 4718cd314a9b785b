package cows

import "context"

type Repository interface {
	// List devuelve todas las vacas ordenadas por id ascendente.
	List(ctx context.Context) ([]Cow, error)
	GetByID(ctx context.Context, id int64) (Cow, error)
	// Create inserta y devuelve la fila con el id asignado por el store.
	Create(ctx context.Context, c Cow) (Cow, error)
	Update(ctx context.Context, c Cow) (Cow, error)
	Delete(ctx context.Context, id int64) error
}
