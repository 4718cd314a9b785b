package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"cattle-health-records/internal/domain/cows"
)

type cowRepo struct {
	mu     sync.RWMutex
	byID   map[int64]cows.Cow
	nextID int64
}

func NewCowRepo() cows.Repository {
	return &cowRepo{
		byID: make(map[int64]cows.Cow),
	}
}

func (r *cowRepo) List(ctx context.Context) ([]cows.Cow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]cows.Cow, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *cowRepo) GetByID(ctx context.Context, id int64) (cows.Cow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return cows.Cow{}, cows.ErrNotFound
	}
	return c, nil
}

func (r *cowRepo) Create(ctx context.Context, c cows.Cow) (cows.Cow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID != 0 {
		return cows.Cow{}, errors.New("cow id is assigned by the store")
	}
	r.nextID++
	c.ID = r.nextID
	r.byID[c.ID] = c
	return c, nil
}

func (r *cowRepo) Update(ctx context.Context, c cows.Cow) (cows.Cow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[c.ID]; !exists {
		return cows.Cow{}, cows.ErrNotFound
	}
	r.byID[c.ID] = c
	return c, nil
}

func (r *cowRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return cows.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// Seed carga vacas ya existentes (ids incluidos); útil en dev y tests.
func Seed(repo cows.Repository, items ...cows.Cow) error {
	r, ok := repo.(*cowRepo)
	if !ok {
		return errors.New("memory: not a memory cow repo")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range items {
		if c.ID <= 0 || strings.TrimSpace(c.Name) == "" && strings.TrimSpace(c.Tag) == "" {
			return errors.New("memory: seed cow needs id and nome or identificacao")
		}
		r.byID[c.ID] = c
		if c.ID > r.nextID {
			r.nextID = c.ID
		}
	}
	return nil
}
