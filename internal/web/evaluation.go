package web

import (
	"net/http"
	"strconv"
	"strings"

	"cattle-health-records/internal/domain/evaluations"
	"cattle-health-records/internal/platform/notify"
)

const (
	msgNoCowSelected       = "Nenhuma vaca selecionada. Volte para a lista e escolha uma vaca."
	msgLoadCowContextError = "Erro ao carregar dados da vaca."
	msgLoadEvaluationError = "Erro ao carregar avaliação."
	msgEvaluationSaved     = "Avaliação salva com sucesso!"
	msgSaveEvaluationError = "Falha ao salvar avaliação."
)

// cowContext son los datos de solo lectura de la vaca evaluada.
type cowContext struct {
	Name   string
	Tag    string
	Breed  string
	Status string
}

type evaluationView struct {
	layout
	Action string
	Cow    cowContext
	// EvaluationID es la evaluación actual que se está editando (0 = ninguna).
	EvaluationID int64
	Form         evaluations.Form
}

// selectedCow aplica la guarda de la página: sin un id válido se vuelve a la
// lista antes de tocar el store.
func (h *Handler) selectedCow(w http.ResponseWriter, r *http.Request) (int64, bool) {
	cowID, ok := parseID(r.URL.Query().Get("id"))
	if !ok {
		h.redirectWithNotice(w, r, directoryPath,
			notify.Error(msgNoCowSelected).WithDuration(evaluationNoticeDuration))
		return 0, false
	}
	return cowID, true
}

func newEvaluationView(cowID int64) evaluationView {
	return evaluationView{
		layout: layout{Title: "Avaliação"},
		Action: EvaluateURL(cowID),
	}
}

func (h *Handler) evaluationPage(w http.ResponseWriter, r *http.Request) {
	cowID, ok := h.selectedCow(w, r)
	if !ok {
		return
	}
	view := newEvaluationView(cowID)

	h.loadCowContext(r, cowID, &view)
	h.loadCurrentEvaluation(r, cowID, &view)

	h.render(w, pageEvaluation, view)
}

func (h *Handler) loadCowContext(r *http.Request, cowID int64, view *evaluationView) {
	c, err := h.cows.Get(r.Context(), cowID)
	if err != nil {
		h.log.Error("load cow context failed", map[string]any{"workflow": "evaluation", "cow_id": cowID, "error": err.Error()})
		view.Notice = notify.Error(msgLoadCowContextError).WithDuration(evaluationNoticeDuration)
		return
	}
	view.Cow = cowContext{
		Name:   c.Name,
		Tag:    c.Tag,
		Breed:  deref(c.Breed),
		Status: deref(c.Status),
	}
}

func (h *Handler) loadCurrentEvaluation(r *http.Request, cowID int64, view *evaluationView) {
	e, found, err := h.evals.Current(r.Context(), cowID)
	if err != nil {
		h.log.Error("load evaluation failed", map[string]any{"workflow": "evaluation", "cow_id": cowID, "error": err.Error()})
		view.Notice = notify.Error(msgLoadEvaluationError).WithDuration(evaluationNoticeDuration)
		return
	}
	if !found {
		return
	}
	view.EvaluationID = e.ID
	view.Form = evaluations.FormFrom(e)
}

func (h *Handler) saveEvaluation(w http.ResponseWriter, r *http.Request) {
	cowID, ok := h.selectedCow(w, r)
	if !ok {
		return
	}
	view := newEvaluationView(cowID)

	if err := r.ParseForm(); err != nil {
		h.log.Error("parse evaluation form failed", map[string]any{"workflow": "evaluation", "cow_id": cowID, "error": err.Error()})
		view.Notice = notify.Error(msgSaveEvaluationError).WithDuration(evaluationNoticeDuration)
		h.render(w, pageEvaluation, view)
		return
	}

	form := r.PostForm
	view.Cow = cowContext{
		Name:   form.Get("nome"),
		Tag:    form.Get("identificacao"),
		Breed:  form.Get("raca"),
		Status: form.Get("status"),
	}
	view.EvaluationID = trackedEvaluationID(form.Get("avaliacao_id"))

	in := evaluations.Input{
		Symptoms:     form.Get("sintomas"),
		CMT:          form.Get("cmt"),
		Conductivity: form.Get("condutividade"),
		Notes:        form.Get("observacoes"),
	}

	saved, err := h.evals.Save(r.Context(), cowID, view.EvaluationID, in)
	if err != nil {
		h.log.Error("save evaluation failed", map[string]any{
			"workflow":      "evaluation",
			"cow_id":        cowID,
			"evaluation_id": view.EvaluationID,
			"error":         err.Error(),
		})
		view.Form = evaluations.FormFromInput(in)
		view.Notice = notify.Error(msgSaveEvaluationError).WithDuration(evaluationNoticeDuration)
		h.render(w, pageEvaluation, view)
		return
	}

	h.log.Info("evaluation saved", map[string]any{"cow_id": cowID, "evaluation_id": saved.ID})

	view.EvaluationID = saved.ID
	view.Form = evaluations.FormFrom(saved)
	view.Notice = notify.Success(msgEvaluationSaved).WithDuration(evaluationNoticeDuration)
	view.Redirect = &notify.Redirect{URL: directoryPath, After: evaluationRedirectDelay}
	h.render(w, pageEvaluation, view)
}

// trackedEvaluationID lee el campo oculto; vacío o basura => 0 (se inserta).
func trackedEvaluationID(raw string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
