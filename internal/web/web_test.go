package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	mem "cattle-health-records/internal/adapters/storage/memory"
	"cattle-health-records/internal/domain/cows"
	"cattle-health-records/internal/domain/evaluations"
	"cattle-health-records/internal/platform/logger"
	"cattle-health-records/internal/platform/notify"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStore = errors.New("boom")

// failingCows falla en las operaciones marcadas y delega el resto.
type failingCows struct {
	cows.Repository
	list, get bool
}

func (f failingCows) List(ctx context.Context) ([]cows.Cow, error) {
	if f.list {
		return nil, errStore
	}
	return f.Repository.List(ctx)
}

func (f failingCows) GetByID(ctx context.Context, id int64) (cows.Cow, error) {
	if f.get {
		return cows.Cow{}, errStore
	}
	return f.Repository.GetByID(ctx, id)
}

// recordingEvals cuenta inserts/updates; failLatest/failSave fuerzan errores.
type recordingEvals struct {
	evaluations.Repository

	mu         sync.Mutex
	creates    int
	updates    int
	last       evaluations.Evaluation
	failLatest bool
	failSave   bool
}

func (r *recordingEvals) Latest(ctx context.Context, cowID int64) (evaluations.Evaluation, error) {
	if r.failLatest {
		return evaluations.Evaluation{}, errStore
	}
	return r.Repository.Latest(ctx, cowID)
}

func (r *recordingEvals) Create(ctx context.Context, e evaluations.Evaluation) (evaluations.Evaluation, error) {
	if r.failSave {
		return evaluations.Evaluation{}, errStore
	}
	saved, err := r.Repository.Create(ctx, e)
	r.mu.Lock()
	r.creates++
	r.last = saved
	r.mu.Unlock()
	return saved, err
}

func (r *recordingEvals) Update(ctx context.Context, e evaluations.Evaluation) (evaluations.Evaluation, error) {
	if r.failSave {
		return evaluations.Evaluation{}, errStore
	}
	saved, err := r.Repository.Update(ctx, e)
	r.mu.Lock()
	r.updates++
	r.last = saved
	r.mu.Unlock()
	return saved, err
}

type fixture struct {
	router http.Handler
	cows   cows.Repository
	evals  *recordingEvals
}

func newFixture(t *testing.T, cowRepo cows.Repository, evals *recordingEvals) *fixture {
	t.Helper()
	if cowRepo == nil {
		cowRepo = mem.NewCowRepo()
	}
	if evals == nil {
		evals = &recordingEvals{Repository: mem.NewEvaluationRepo()}
	}

	h, err := NewHandler(Options{
		Cows:        cows.NewService(cowRepo),
		Evaluations: evaluations.NewService(evals),
		Flash:       notify.NewFlash(),
		Logger:      logger.Nop(),
		Location:    time.UTC,
	})
	require.NoError(t, err)

	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return &fixture{router: r, cows: cowRepo, evals: evals}
}

func seedCows(t *testing.T, repo cows.Repository, items ...cows.Cow) {
	t.Helper()
	require.NoError(t, mem.Seed(repo, items...))
}

func (f *fixture) do(t *testing.T, method, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

// follow hace el GET al Location de un 303 llevando la cookie del flash.
func (f *fixture) follow(t *testing.T, rec *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, rec.Code)
	return f.do(t, http.MethodGet, rec.Header().Get("Location"), nil, rec.Result().Cookies()...)
}

func listAll(t *testing.T, repo cows.Repository) []cows.Cow {
	t.Helper()
	items, err := repo.List(context.Background())
	require.NoError(t, err)
	return items
}

func strp(s string) *string { return &s }

// --- lista ---

func TestDirectory_EmptyAndRootRedirect(t *testing.T) {
	f := newFixture(t, nil, nil)

	rec := f.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/lista", rec.Header().Get("Location"))

	rec = f.do(t, http.MethodGet, "/lista", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nenhuma vaca cadastrada ainda.")
}

func TestDirectory_RowsWithPlaceholders(t *testing.T) {
	f := newFixture(t, nil, nil)
	seedCows(t, f.cows,
		cows.Cow{ID: 2, Name: "Estrela", Tag: "BR-02"},
		cows.Cow{ID: 1, Name: "Mimosa", Tag: "BR-01", Breed: strp("Gir"), BirthDate: strp("2023-05-01"), Status: strp("lactação")},
	)

	rec := f.do(t, http.MethodGet, "/lista", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "<td>01/05/2023</td>")
	assert.Contains(t, body, "<td>Gir</td>")
	assert.Equal(t, 3, strings.Count(body, "<td>-</td>"))
	assert.Less(t, strings.Index(body, "BR-01"), strings.Index(body, "BR-02"))

	assert.Contains(t, body, `href="/avaliacao?id=1"`)
	assert.Contains(t, body, `href="/cadastro?id=2"`)
	assert.Contains(t, body, `href="/vacas/2/excluir"`)
}

func TestDirectory_LoadErrorStillRenders(t *testing.T) {
	f := newFixture(t, failingCows{Repository: mem.NewCowRepo(), list: true}, nil)

	rec := f.do(t, http.MethodGet, "/lista", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Erro ao carregar vacas: boom")
}

// --- excluir ---

func TestDelete_ConfirmPageDoesNotTouchStore(t *testing.T) {
	f := newFixture(t, nil, nil)
	seedCows(t, f.cows, cows.Cow{ID: 3, Name: "Mimosa", Tag: "BR-03"})

	rec := f.do(t, http.MethodGet, "/vacas/3/excluir", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Deseja realmente excluir esta vaca?")
	assert.Contains(t, rec.Body.String(), `action="/vacas/3/excluir"`)

	// cancelar = no confirmar
	rec = f.do(t, http.MethodPost, "/vacas/3/excluir", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
	assert.Len(t, listAll(t, f.cows), 1)
}

func TestDelete_ConfirmedRemovesOnlyThatCow(t *testing.T) {
	f := newFixture(t, nil, nil)
	seedCows(t, f.cows,
		cows.Cow{ID: 3, Name: "Mimosa", Tag: "BR-03"},
		cows.Cow{ID: 4, Name: "Estrela", Tag: "BR-04"},
	)

	rec := f.do(t, http.MethodPost, "/vacas/3/excluir", url.Values{"confirmar": {"sim"}})
	page := f.follow(t, rec)

	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "✅ Vaca excluída!")
	assert.Contains(t, page.Body.String(), `class="alerta sucesso"`)
	assert.Contains(t, page.Body.String(), `data-duration="5000"`)
	assert.NotContains(t, page.Body.String(), "BR-03")

	items := listAll(t, f.cows)
	require.Len(t, items, 1)
	assert.EqualValues(t, 4, items[0].ID)
}

func TestDelete_FailureKeepsRows(t *testing.T) {
	f := newFixture(t, nil, nil)
	seedCows(t, f.cows, cows.Cow{ID: 3, Name: "Mimosa", Tag: "BR-03"})

	rec := f.do(t, http.MethodPost, "/vacas/99/excluir", url.Values{"confirmar": {"sim"}})
	page := f.follow(t, rec)

	assert.Contains(t, page.Body.String(), "❌ Erro ao excluir: not found")
	assert.Contains(t, page.Body.String(), `class="alerta erro"`)
	assert.Contains(t, page.Body.String(), "BR-03")
	assert.Len(t, listAll(t, f.cows), 1)
}

func TestDelete_FlashShownOnce(t *testing.T) {
	f := newFixture(t, nil, nil)
	seedCows(t, f.cows, cows.Cow{ID: 3, Name: "Mimosa", Tag: "BR-03"})

	rec := f.do(t, http.MethodPost, "/vacas/3/excluir", url.Values{"confirmar": {"sim"}})
	cookies := rec.Result().Cookies()

	first := f.do(t, http.MethodGet, "/lista", nil, cookies...)
	assert.Contains(t, first.Body.String(), "✅ Vaca excluída!")

	second := f.do(t, http.MethodGet, "/lista", nil, cookies...)
	assert.NotContains(t, second.Body.String(), "✅ Vaca excluída!")
}

// --- cadastro ---

func TestCowForm_CreateModeInsertsOneTrimmedRecord(t *testing.T) {
	f := newFixture(t, nil, nil)

	rec := f.do(t, http.MethodGet, "/cadastro", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cadastro de Vaca")
	assert.Contains(t, rec.Body.String(), ">Cadastrar</button>")

	rec = f.do(t, http.MethodPost, "/cadastro", url.Values{
		"nome":           {"  Mimosa "},
		"identificacao":  {" BR-01"},
		"raca":           {" Gir "},
		"dataNascimento": {"2021-03-04"},
		"status":         {"lactação"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "✅ Vaca cadastrada com sucesso!")
	assert.Contains(t, body, `<meta http-equiv="refresh" content="1.5;url=/lista">`)

	items := listAll(t, f.cows)
	require.Len(t, items, 1)
	assert.Equal(t, "Mimosa", items[0].Name)
	assert.Equal(t, "BR-01", items[0].Tag)
	require.NotNil(t, items[0].Breed)
	assert.Equal(t, "Gir", *items[0].Breed)
	require.NotNil(t, items[0].BirthDate)
	assert.Equal(t, "2021-03-04", *items[0].BirthDate)
}

func TestCowForm_EditModeLoadsAndUpdatesByID(t *testing.T) {
	f := newFixture(t, nil, nil)
	seedCows(t, f.cows, cows.Cow{ID: 7, Name: "Mimosa", Tag: "BR-07", Breed: strp("Gir")})

	rec := f.do(t, http.MethodGet, "/cadastro?id=7", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Editar Cadastro")
	assert.Contains(t, body, ">Salvar Alterações</button>")
	assert.Contains(t, body, `name="nome" value="Mimosa"`)
	assert.Contains(t, body, `name="status" value=""`)
	assert.Contains(t, body, `action="/cadastro?id=7"`)

	rec = f.do(t, http.MethodPost, "/cadastro?id=7", url.Values{
		"nome":          {"Mimosa II"},
		"identificacao": {"BR-07"},
		"raca":          {"Girolando"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "✅ Dados atualizados com sucesso!")

	items := listAll(t, f.cows)
	require.Len(t, items, 1)
	assert.EqualValues(t, 7, items[0].ID)
	assert.Equal(t, "Mimosa II", items[0].Name)
	assert.Equal(t, "Girolando", *items[0].Breed)
}

func TestCowForm_EditLoadFailure(t *testing.T) {
	f := newFixture(t, nil, nil)

	rec := f.do(t, http.MethodGet, "/cadastro?id=99", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Editar Cadastro")
	assert.Contains(t, body, "❌ Erro ao carregar dados da vaca: not found")
	assert.Contains(t, body, ">Cadastrar</button>")
	assert.Contains(t, body, `name="nome" value=""`)

	rec = f.do(t, http.MethodGet, "/cadastro?id=abc", nil)
	assert.Contains(t, rec.Body.String(), "❌ Erro ao carregar dados da vaca: invalid input")
}

func TestCowForm_SaveFailureKeepsSubmittedValues(t *testing.T) {
	f := newFixture(t, nil, nil)

	rec := f.do(t, http.MethodPost, "/cadastro?id=99", url.Values{"nome": {"Mimosa"}})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "❌ Erro ao salvar: not found")
	assert.Contains(t, body, `name="nome" value="Mimosa"`)
	assert.NotContains(t, body, `http-equiv="refresh"`)
	assert.Empty(t, listAll(t, f.cows))
}

// --- avaliacao ---

func TestEvaluation_GuardRedirectsWithoutStoreAccess(t *testing.T) {
	evals := &recordingEvals{Repository: mem.NewEvaluationRepo(), failLatest: true}
	f := newFixture(t, failingCows{Repository: mem.NewCowRepo(), get: true}, evals)

	for _, target := range []string{"/avaliacao", "/avaliacao?id=", "/avaliacao?id=abc", "/avaliacao?id=0"} {
		rec := f.do(t, http.MethodGet, target, nil)
		require.Equal(t, http.StatusSeeOther, rec.Code, target)
		assert.Equal(t, "/lista", rec.Header().Get("Location"))

		page := f.follow(t, rec)
		assert.Contains(t, page.Body.String(), "Nenhuma vaca selecionada. Volte para a lista e escolha uma vaca.")
	}

	rec := f.do(t, http.MethodPost, "/avaliacao", url.Values{"sintomas": {"febre"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Zero(t, evals.creates)
}

func TestEvaluation_LoadSaveReloadKeepsSameEvaluation(t *testing.T) {
	f := newFixture(t, nil, nil)
	seedCows(t, f.cows, cows.Cow{ID: 42, Name: "Mimosa", Tag: "BR-42", Status: strp("seca")})

	rec := f.do(t, http.MethodGet, "/avaliacao?id=42", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `name="nome" value="Mimosa" readonly`)
	assert.Contains(t, body, `name="raca" value="" readonly`)
	assert.Contains(t, body, `name="avaliacao_id" value=""`)

	rec = f.do(t, http.MethodPost, "/avaliacao?id=42", url.Values{
		"nome":          {"Mimosa"},
		"identificacao": {"BR-42"},
		"sintomas":      {"febre, mastite , , apatia"},
		"cmt":           {""},
		"condutividade": {""},
		"observacoes":   {""},
		"avaliacao_id":  {""},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body = rec.Body.String()
	assert.Contains(t, body, "Avaliação salva com sucesso!")
	assert.Contains(t, body, `data-duration="4000"`)
	assert.Contains(t, body, `content="0.9;url=/lista"`)

	require.Equal(t, 1, f.evals.creates)
	first := f.evals.last
	assert.Equal(t, []string{"febre", "mastite", "apatia"}, first.Symptoms.Items)
	assert.Nil(t, first.Conductivity)
	assert.Nil(t, first.CMT)
	assert.Nil(t, first.Notes)
	assert.EqualValues(t, 42, first.CowID)
	require.NotNil(t, first.UpdatedAt)

	rec = f.do(t, http.MethodGet, "/avaliacao?id=42", nil)
	body = rec.Body.String()
	assert.Contains(t, body, `name="sintomas" value="febre, mastite, apatia"`)
	assert.Contains(t, body, `name="avaliacao_id" value="`+itoa(first.ID)+`"`)

	rec = f.do(t, http.MethodPost, "/avaliacao?id=42", url.Values{
		"sintomas":      {"febre"},
		"condutividade": {"5.2"},
		"avaliacao_id":  {itoa(first.ID)},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 1, f.evals.creates)
	assert.Equal(t, 1, f.evals.updates)
	assert.Equal(t, first.ID, f.evals.last.ID)
	require.NotNil(t, f.evals.last.Conductivity)
	assert.InDelta(t, 5.2, *f.evals.last.Conductivity, 1e-9)

	rec = f.do(t, http.MethodGet, "/avaliacao?id=42", nil)
	assert.Contains(t, rec.Body.String(), `name="condutividade" value="5.2"`)
}

func TestEvaluation_LegacySymptomsRenderedRaw(t *testing.T) {
	f := newFixture(t, nil, nil)
	seedCows(t, f.cows, cows.Cow{ID: 5, Name: "Estrela", Tag: "BR-05"})

	legacy := "tosse seca"
	_, err := f.evals.Repository.Create(context.Background(), evaluations.Evaluation{
		CowID:    5,
		Symptoms: evaluations.Symptoms{Legacy: &legacy},
	})
	require.NoError(t, err)

	rec := f.do(t, http.MethodGet, "/avaliacao?id=5", nil)
	assert.Contains(t, rec.Body.String(), `name="sintomas" value="tosse seca"`)
}

func TestEvaluation_LoadFailuresLastNoticeWins(t *testing.T) {
	evals := &recordingEvals{Repository: mem.NewEvaluationRepo(), failLatest: true}
	f := newFixture(t, failingCows{Repository: mem.NewCowRepo(), get: true}, evals)

	rec := f.do(t, http.MethodGet, "/avaliacao?id=42", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Erro ao carregar avaliação.")
	assert.NotContains(t, body, "Erro ao carregar dados da vaca.")
	assert.Contains(t, body, `name="nome" value="" readonly`)
}

func TestEvaluation_CowContextFailureContinues(t *testing.T) {
	f := newFixture(t, nil, nil)

	rec := f.do(t, http.MethodGet, "/avaliacao?id=42", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Erro ao carregar dados da vaca.")
	assert.Contains(t, rec.Body.String(), `id="formAvaliacao"`)
}

func TestEvaluation_SaveFailureIsGeneric(t *testing.T) {
	evals := &recordingEvals{Repository: mem.NewEvaluationRepo(), failSave: true}
	f := newFixture(t, nil, evals)

	rec := f.do(t, http.MethodPost, "/avaliacao?id=42", url.Values{
		"nome":          {"Mimosa"},
		"sintomas":      {"febre, apatia"},
		"condutividade": {"abc"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Falha ao salvar avaliação.")
	assert.NotContains(t, body, "boom")
	assert.NotContains(t, body, `http-equiv="refresh"`)
	assert.Contains(t, body, `name="sintomas" value="febre, apatia"`)
	assert.Contains(t, body, `name="condutividade" value="abc"`)
	assert.Contains(t, body, `name="nome" value="Mimosa" readonly`)
}

func TestEvaluation_TrackedIDOfAnotherCowIsRejected(t *testing.T) {
	f := newFixture(t, nil, nil)
	seedCows(t, f.cows,
		cows.Cow{ID: 1, Name: "Mimosa", Tag: "BR-01"},
		cows.Cow{ID: 2, Name: "Estrela", Tag: "BR-02"},
	)

	rec := f.do(t, http.MethodPost, "/avaliacao?id=2", url.Values{"sintomas": {"mastite"}})
	require.Equal(t, http.StatusOK, rec.Code)
	owned := f.evals.last
	require.EqualValues(t, 2, owned.CowID)

	rec = f.do(t, http.MethodPost, "/avaliacao?id=1", url.Values{
		"sintomas":     {"febre"},
		"avaliacao_id": {itoa(owned.ID)},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Falha ao salvar avaliação.")
	assert.NotContains(t, body, `http-equiv="refresh"`)

	ctx := context.Background()
	current, err := f.evals.Repository.Latest(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, owned.ID, current.ID)
	assert.Equal(t, []string{"mastite"}, current.Symptoms.Items)

	_, err = f.evals.Repository.Latest(ctx, 1)
	assert.ErrorIs(t, err, evaluations.ErrNotFound)
}

func TestTrackedEvaluationID(t *testing.T) {
	assert.Zero(t, trackedEvaluationID(""))
	assert.Zero(t, trackedEvaluationID("x"))
	assert.Zero(t, trackedEvaluationID("-4"))
	assert.EqualValues(t, 9, trackedEvaluationID(" 9 "))
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
