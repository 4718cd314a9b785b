package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"cattle-health-records/internal/domain/cows"
	"cattle-health-records/internal/domain/evaluations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("rebanho"),
		tcpostgres.WithUsername("user"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := Open(connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(ctx, db))
	// idempotente
	require.NoError(t, Migrate(ctx, db))
	return db
}

func TestPostgresRepos(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	cowRepo := NewCowsRepo(db)
	evalRepo := NewEvaluationsRepo(db)

	t.Run("cow crud", func(t *testing.T) {
		created, err := cowRepo.Create(ctx, cows.Input{
			Name: " Mimosa ", Tag: "BR-001", Breed: "Gir", BirthDate: "2023-05-01", Status: "lactante",
		}.ToCow())
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, "Mimosa", created.Name)
		require.NotNil(t, created.BirthDate)
		assert.Equal(t, "2023-05-01", *created.BirthDate)

		noDate, err := cowRepo.Create(ctx, cows.Input{Name: "Estrela", Tag: "BR-002"}.ToCow())
		require.NoError(t, err)
		assert.Nil(t, noDate.BirthDate, "empty birth date must be stored as NULL")

		items, err := cowRepo.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Less(t, items[0].ID, items[1].ID)

		in := cows.InputFrom(created)
		in.Status = "seca"
		updated, err := cowRepo.Update(ctx, cows.Cow{ID: created.ID, Name: in.Name, Tag: in.Tag, Status: &in.Status})
		require.NoError(t, err)
		assert.Equal(t, "seca", *updated.Status)

		_, err = cowRepo.Update(ctx, cows.Cow{ID: 999999, Name: "x"})
		assert.ErrorIs(t, err, cows.ErrNotFound)

		require.NoError(t, cowRepo.Delete(ctx, noDate.ID))
		assert.ErrorIs(t, cowRepo.Delete(ctx, noDate.ID), cows.ErrNotFound)

		_, err = cowRepo.GetByID(ctx, noDate.ID)
		assert.ErrorIs(t, err, cows.ErrNotFound)
	})

	t.Run("evaluation upsert and dual-format symptoms", func(t *testing.T) {
		cow, err := cowRepo.Create(ctx, cows.Input{Name: "Malhada", Tag: "BR-042"}.ToCow())
		require.NoError(t, err)

		_, err = evalRepo.Latest(ctx, cow.ID)
		assert.ErrorIs(t, err, evaluations.ErrNotFound)

		now := time.Now().UTC().Truncate(time.Millisecond)
		created, err := evalRepo.Create(ctx, evaluations.Evaluation{
			CowID:     cow.ID,
			Symptoms:  evaluations.ParseSymptoms("febre, mastite , , apatia"),
			UpdatedAt: &now,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"febre", "mastite", "apatia"}, created.Symptoms.Items)
		assert.Nil(t, created.Conductivity)

		cond := 5.4
		created.Conductivity = &cond
		updated, err := evalRepo.Update(ctx, created)
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		require.NotNil(t, updated.Conductivity)
		assert.InDelta(t, 5.4, *updated.Conductivity, 0.0001)

		other, err := cowRepo.Create(ctx, cows.Input{Name: "Pintada", Tag: "BR-043"}.ToCow())
		require.NoError(t, err)
		moved := updated
		moved.CowID = other.ID
		_, err = evalRepo.Update(ctx, moved)
		assert.ErrorIs(t, err, evaluations.ErrNotFound, "update must not move an evaluation to another cow")
		_, err = evalRepo.Latest(ctx, other.ID)
		assert.ErrorIs(t, err, evaluations.ErrNotFound)

		_, err = db.ExecContext(ctx,
			`INSERT INTO avaliacoes (vaca_id, sintomas, created_at) VALUES ($1, '"tosse"'::jsonb, now() + interval '1 minute')`, cow.ID)
		require.NoError(t, err)

		latest, err := evalRepo.Latest(ctx, cow.ID)
		require.NoError(t, err)
		assert.True(t, latest.Symptoms.IsLegacy())
		assert.Equal(t, "tosse", latest.Symptoms.FormValue())
	})
}
