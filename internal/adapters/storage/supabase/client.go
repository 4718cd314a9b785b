// Package supabase implementa los repositorios contra la API REST (PostgREST)
// de un proyecto Supabase, autenticando con la anon/public key.
package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cattle-health-records/internal/platform/httpclient"
)

var ErrNotConfigured = errors.New("supabase: url and key are required")

type Config struct {
	URL     string // https://<project>.supabase.co
	Key     string // anon / public key
	Timeout time.Duration
}

// Client expone el contrato del store por tabla:
// select+eq+order+limit, insert, update+eq, delete+eq.
type Client struct {
	http *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	key := strings.TrimSpace(cfg.Key)
	if base == "" || key == "" {
		return nil, ErrNotConfigured
	}

	hc, err := httpclient.NewWithBaseURL(base+"/rest/v1", cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("supabase: %w", err)
	}
	hc.Headers["apikey"] = key
	hc.Headers["Authorization"] = "Bearer " + key

	return &Client{http: hc}, nil
}

// query acumula los filtros de PostgREST para una tabla.
type query struct {
	table  string
	params url.Values
}

func from(table string) *query {
	return &query{table: table, params: url.Values{}}
}

func (q *query) sel(columns string) *query {
	if strings.TrimSpace(columns) == "" {
		columns = "*"
	}
	q.params.Set("select", columns)
	return q
}

func (q *query) eq(column string, value int64) *query {
	q.params.Add(column, "eq."+strconv.FormatInt(value, 10))
	return q
}

func (q *query) order(column string, ascending bool) *query {
	dir := "desc"
	if ascending {
		dir = "asc"
	}
	term := column + "." + dir
	if prev := q.params.Get("order"); prev != "" {
		term = prev + "," + term
	}
	q.params.Set("order", term)
	return q
}

func (q *query) limit(n int) *query {
	q.params.Set("limit", strconv.Itoa(n))
	return q
}

func (c *Client) selectRows(ctx context.Context, q *query, out any) error {
	return c.http.DoJSON(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   q.table,
		Query:  q.params,
	}, out)
}

// insertRows inserta y devuelve las filas creadas (Prefer: return=representation).
func (c *Client) insertRows(ctx context.Context, q *query, rows any, out any) error {
	return c.http.DoJSON(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   q.table,
		Query:  q.sel("*").params,
		Header: map[string]string{"Prefer": "return=representation"},
		Body:   rows,
	}, out)
}

func (c *Client) updateRows(ctx context.Context, q *query, patch any, out any) error {
	return c.http.DoJSON(ctx, httpclient.Request{
		Method: http.MethodPatch,
		Path:   q.table,
		Query:  q.sel("*").params,
		Header: map[string]string{"Prefer": "return=representation"},
		Body:   patch,
	}, out)
}

// deleteRows devuelve las filas borradas para poder distinguir "no existía".
func (c *Client) deleteRows(ctx context.Context, q *query, out any) error {
	return c.http.DoJSON(ctx, httpclient.Request{
		Method: http.MethodDelete,
		Path:   q.table,
		Query:  q.sel("id").params,
		Header: map[string]string{"Prefer": "return=representation"},
	}, out)
}
