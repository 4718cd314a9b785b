package web

import (
	"net/http"

	"cattle-health-records/internal/domain/cows"
	"cattle-health-records/internal/platform/notify"

	"github.com/go-chi/chi/v5"
)

const (
	msgNoCows        = "Nenhuma vaca cadastrada ainda."
	msgLoadCowsError = "Erro ao carregar vacas: "
	msgDeleted       = "✅ Vaca excluída!"
	msgDeleteError   = "❌ Erro ao excluir: "
)

type directoryRow struct {
	ID        int64
	Tag       string
	Name      string
	Breed     string
	BirthDate string
	Status    string

	EvaluateURL string
	EditURL     string
	DeleteURL   string
}

type directoryView struct {
	layout
	Rows []directoryRow
	// Message reemplaza la tabla entera (vacía o error de carga).
	Message string
}

type confirmView struct {
	layout
	Action string
}

func (h *Handler) directoryPage(w http.ResponseWriter, r *http.Request) {
	view := directoryView{layout: layout{Title: "Vacas"}}
	if n, ok := h.flash.Pop(w, r); ok {
		view.Notice = n
	}

	items, err := h.cows.List(r.Context())
	switch {
	case err != nil:
		h.log.Error("load cows failed", map[string]any{"workflow": "directory", "error": err.Error()})
		view.Message = msgLoadCowsError + err.Error()
	case len(items) == 0:
		view.Message = msgNoCows
	default:
		view.Rows = make([]directoryRow, 0, len(items))
		for _, c := range items {
			view.Rows = append(view.Rows, h.toDirectoryRow(c))
		}
	}

	h.render(w, pageDirectory, view)
}

func (h *Handler) toDirectoryRow(c cows.Cow) directoryRow {
	return directoryRow{
		ID:          c.ID,
		Tag:         c.Tag,
		Name:        c.Name,
		Breed:       orPlaceholder(c.Breed),
		BirthDate:   formatDatePtr(c.BirthDate, h.loc),
		Status:      orPlaceholder(c.Status),
		EvaluateURL: EvaluateURL(c.ID),
		EditURL:     EditURL(c.ID),
		DeleteURL:   DeleteURL(c.ID),
	}
}

// confirmDeletePage pide confirmación; no toca el store.
func (h *Handler) confirmDeletePage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "cowID"))
	if !ok {
		h.redirectWithNotice(w, r, directoryPath,
			notify.Error(msgDeleteError+cows.ErrInvalidInput.Error()).WithDuration(cowNoticeDuration))
		return
	}

	h.render(w, pageConfirm, confirmView{
		layout: layout{Title: "Excluir vaca"},
		Action: DeleteURL(id),
	})
}

func (h *Handler) deleteCow(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil || r.PostForm.Get("confirmar") != "sim" {
		http.Redirect(w, r, directoryPath, http.StatusSeeOther)
		return
	}

	id, ok := parseID(chi.URLParam(r, "cowID"))
	if !ok {
		h.redirectWithNotice(w, r, directoryPath,
			notify.Error(msgDeleteError+cows.ErrInvalidInput.Error()).WithDuration(cowNoticeDuration))
		return
	}

	if err := h.cows.Delete(r.Context(), id); err != nil {
		h.log.Error("delete cow failed", map[string]any{"workflow": "directory", "cow_id": id, "error": err.Error()})
		h.redirectWithNotice(w, r, directoryPath,
			notify.Error(msgDeleteError+err.Error()).WithDuration(cowNoticeDuration))
		return
	}

	h.log.Info("cow deleted", map[string]any{"cow_id": id})
	h.redirectWithNotice(w, r, directoryPath, notify.Success(msgDeleted).WithDuration(cowNoticeDuration))
}
