package cows

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Cow, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Cow, error) {
	if id <= 0 {
		return Cow{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (Cow, error) {
	return s.repo.Create(ctx, in.ToCow())
}

// Update reemplaza todos los campos editables de la vaca id.
func (s *Service) Update(ctx context.Context, id int64, in Input) (Cow, error) {
	if id <= 0 {
		return Cow{}, ErrInvalidInput
	}
	c := in.ToCow()
	c.ID = id
	return s.repo.Update(ctx, c)
}

// Save es el submit del formulario: con id => update, sin id (0) => insert.
func (s *Service) Save(ctx context.Context, id int64, in Input) (Cow, error) {
	if id == 0 {
		return s.Create(ctx, in)
	}
	return s.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
