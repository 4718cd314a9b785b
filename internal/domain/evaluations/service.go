package evaluations

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Current devuelve la evaluación "actual" de la vaca (la más reciente).
// found=false cuando todavía no hay ninguna: el próximo Save crea.
func (s *Service) Current(ctx context.Context, cowID int64) (Evaluation, bool, error) {
	if cowID <= 0 {
		return Evaluation{}, false, ErrInvalidInput
	}

	e, err := s.repo.Latest(ctx, cowID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Evaluation{}, false, nil
		}
		return Evaluation{}, false, err
	}
	return e, true, nil
}

// Save hace el upsert de la evaluación actual.
// currentID es la evaluación que se está editando (0 = ninguna => insert).
// Devuelve la fila guardada, que pasa a ser la nueva "actual".
func (s *Service) Save(ctx context.Context, cowID, currentID int64, in Input) (Evaluation, error) {
	if cowID <= 0 || currentID < 0 {
		return Evaluation{}, ErrInvalidInput
	}

	now := s.now()
	e := Evaluation{
		ID:           currentID,
		CowID:        cowID,
		Symptoms:     ParseSymptoms(in.Symptoms),
		CMT:          optional(in.CMT),
		Conductivity: ParseConductivity(in.Conductivity),
		Notes:        optional(in.Notes),
		UpdatedAt:    &now,
	}

	if currentID > 0 {
		return s.repo.Update(ctx, e)
	}
	return s.repo.Create(ctx, e)
}

// ParseConductivity: vacío => nil; si no parsea (o no es finito) también nil,
// igual que un NaN que termina serializado como null. Sin validación de rango.
func ParseConductivity(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func FormatConductivity(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// optional: cmt/observacoes en blanco se guardan como null, nunca como "".
func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
