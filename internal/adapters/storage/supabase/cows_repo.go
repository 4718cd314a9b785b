package supabase

import (
	"context"
	"strings"

	"cattle-health-records/internal/domain/cows"
)

const cowsTable = "vacas"

type cowRow struct {
	ID             int64   `json:"id"`
	Nome           string  `json:"nome"`
	Identificacao  string  `json:"identificacao"`
	Raca           *string `json:"raca"`
	DataNascimento *string `json:"data_nascimento"`
	Status         *string `json:"status"`
}

// cowPayload es lo que se manda en insert/update (sin id).
type cowPayload struct {
	Nome           string  `json:"nome"`
	Identificacao  string  `json:"identificacao"`
	Raca           *string `json:"raca"`
	DataNascimento *string `json:"data_nascimento"`
	Status         *string `json:"status"`
}

type CowsRepo struct {
	c *Client
}

func NewCowsRepo(c *Client) *CowsRepo {
	return &CowsRepo{c: c}
}

func (r *CowsRepo) List(ctx context.Context) ([]cows.Cow, error) {
	var rows []cowRow
	if err := r.c.selectRows(ctx, from(cowsTable).sel("*").order("id", true), &rows); err != nil {
		return nil, err
	}
	out := make([]cows.Cow, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toCow())
	}
	return out, nil
}

func (r *CowsRepo) GetByID(ctx context.Context, id int64) (cows.Cow, error) {
	var rows []cowRow
	if err := r.c.selectRows(ctx, from(cowsTable).sel("*").eq("id", id).limit(1), &rows); err != nil {
		return cows.Cow{}, err
	}
	return firstCow(rows)
}

func (r *CowsRepo) Create(ctx context.Context, c cows.Cow) (cows.Cow, error) {
	var rows []cowRow
	if err := r.c.insertRows(ctx, from(cowsTable), []cowPayload{toCowPayload(c)}, &rows); err != nil {
		return cows.Cow{}, err
	}
	return firstCow(rows)
}

func (r *CowsRepo) Update(ctx context.Context, c cows.Cow) (cows.Cow, error) {
	var rows []cowRow
	if err := r.c.updateRows(ctx, from(cowsTable).eq("id", c.ID), toCowPayload(c), &rows); err != nil {
		return cows.Cow{}, err
	}
	return firstCow(rows)
}

func (r *CowsRepo) Delete(ctx context.Context, id int64) error {
	var rows []struct {
		ID int64 `json:"id"`
	}
	if err := r.c.deleteRows(ctx, from(cowsTable).eq("id", id), &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return cows.ErrNotFound
	}
	return nil
}

func firstCow(rows []cowRow) (cows.Cow, error) {
	if len(rows) == 0 {
		return cows.Cow{}, cows.ErrNotFound
	}
	return rows[0].toCow(), nil
}

func (row cowRow) toCow() cows.Cow {
	return cows.Cow{
		ID:        row.ID,
		Name:      row.Nome,
		Tag:       row.Identificacao,
		Breed:     row.Raca,
		BirthDate: row.DataNascimento,
		Status:    row.Status,
	}
}

// toCowPayload: data_nascimento vacío va como null (la columna es DATE).
func toCowPayload(c cows.Cow) cowPayload {
	p := cowPayload{
		Nome:           c.Name,
		Identificacao:  c.Tag,
		Raca:           c.Breed,
		DataNascimento: c.BirthDate,
		Status:         c.Status,
	}
	if p.DataNascimento != nil && strings.TrimSpace(*p.DataNascimento) == "" {
		p.DataNascimento = nil
	}
	return p
}
