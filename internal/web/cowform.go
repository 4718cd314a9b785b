package web

import (
	"net/http"
	"net/url"
	"strings"

	"cattle-health-records/internal/domain/cows"
	"cattle-health-records/internal/platform/notify"
)

const (
	titleCreate  = "Cadastro de Vaca"
	titleEdit    = "Editar Cadastro"
	submitCreate = "Cadastrar"
	submitEdit   = "Salvar Alterações"

	msgLoadCowError = "❌ Erro ao carregar dados da vaca: "
	msgCowCreated   = "✅ Vaca cadastrada com sucesso!"
	msgCowUpdated   = "✅ Dados atualizados com sucesso!"
	msgSaveCowError = "❌ Erro ao salvar: "
)

type cowFormView struct {
	layout
	Action string
	Form   cows.Input
	Submit string
}

// editTarget: el modo edición lo decide la presencia de ?id=, aunque no parsee.
type editTarget struct {
	raw   string
	id    int64
	valid bool
}

func (t editTarget) editing() bool {
	return t.raw != ""
}

func editTargetFrom(r *http.Request) editTarget {
	raw := strings.TrimSpace(r.URL.Query().Get("id"))
	id, ok := parseID(raw)
	return editTarget{raw: raw, id: id, valid: ok}
}

func newCowFormView(t editTarget) cowFormView {
	v := cowFormView{
		layout: layout{Title: titleCreate},
		Action: "/cadastro",
		Submit: submitCreate,
	}
	if t.editing() {
		v.Title = titleEdit
		v.Action = "/cadastro?id=" + url.QueryEscape(t.raw)
	}
	return v
}

func (h *Handler) cowFormPage(w http.ResponseWriter, r *http.Request) {
	target := editTargetFrom(r)
	view := newCowFormView(target)

	if target.editing() {
		c, err := h.loadCowForEdit(r, target)
		if err != nil {
			h.log.Error("load cow for edit failed", map[string]any{"workflow": "cow_form", "id": target.raw, "error": err.Error()})
			view.Notice = notify.Error(msgLoadCowError + err.Error()).WithDuration(cowNoticeDuration)
		} else {
			view.Form = cows.InputFrom(c)
			view.Submit = submitEdit
		}
	}

	h.render(w, pageCowForm, view)
}

func (h *Handler) loadCowForEdit(r *http.Request, t editTarget) (cows.Cow, error) {
	if !t.valid {
		return cows.Cow{}, cows.ErrInvalidInput
	}
	return h.cows.Get(r.Context(), t.id)
}

func (h *Handler) saveCow(w http.ResponseWriter, r *http.Request) {
	target := editTargetFrom(r)
	view := newCowFormView(target)

	if err := r.ParseForm(); err != nil {
		view.Notice = notify.Error(msgSaveCowError + err.Error()).WithDuration(cowNoticeDuration)
		h.render(w, pageCowForm, view)
		return
	}

	in := cows.Input{
		Name:      r.PostForm.Get("nome"),
		Tag:       r.PostForm.Get("identificacao"),
		Breed:     r.PostForm.Get("raca"),
		BirthDate: r.PostForm.Get("dataNascimento"),
		Status:    r.PostForm.Get("status"),
	}.Normalize()
	view.Form = in
	if target.editing() {
		view.Submit = submitEdit
	}

	saved, err := h.saveCowInput(r, target, in)
	if err != nil {
		h.log.Error("save cow failed", map[string]any{"workflow": "cow_form", "id": target.raw, "error": err.Error()})
		view.Notice = notify.Error(msgSaveCowError + err.Error()).WithDuration(cowNoticeDuration)
		h.render(w, pageCowForm, view)
		return
	}

	msg := msgCowCreated
	if target.editing() {
		msg = msgCowUpdated
	}
	h.log.Info("cow saved", map[string]any{"cow_id": saved.ID, "edit": target.editing()})

	view.Notice = notify.Success(msg).WithDuration(cowNoticeDuration)
	view.Redirect = &notify.Redirect{URL: directoryPath, After: cowRedirectDelay}
	h.render(w, pageCowForm, view)
}

// saveCowInput: sin id => insert; id inválido en modo edición no llega al store.
func (h *Handler) saveCowInput(r *http.Request, t editTarget, in cows.Input) (cows.Cow, error) {
	if t.editing() && !t.valid {
		return cows.Cow{}, cows.ErrInvalidInput
	}
	return h.cows.Save(r.Context(), t.id, in)
}
