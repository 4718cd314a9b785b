// Package web sirve las tres páginas de la app (lista, cadastro, avaliação)
// renderizadas en el server. Cada request corre su flujo de forma secuencial y
// todo fallo termina en un aviso visible más una línea de log.
package web

import (
	"errors"
	"net/http"
	"time"

	"cattle-health-records/internal/domain/cows"
	"cattle-health-records/internal/domain/evaluations"
	"cattle-health-records/internal/platform/logger"
	"cattle-health-records/internal/platform/notify"

	"github.com/go-chi/chi/v5"
)

const (
	cowNoticeDuration        = 5 * time.Second
	cowRedirectDelay         = 1500 * time.Millisecond
	evaluationNoticeDuration = 4 * time.Second
	evaluationRedirectDelay  = 900 * time.Millisecond

	directoryPath = "/lista"
)

type Options struct {
	Cows        *cows.Service
	Evaluations *evaluations.Service
	Flash       *notify.Flash
	Logger      logger.Logger
	// Location para mostrar fechas; nil => time.Local.
	Location *time.Location
}

type Handler struct {
	cows  *cows.Service
	evals *evaluations.Service
	flash *notify.Flash
	log   logger.Logger
	loc   *time.Location
	views *renderer
}

func NewHandler(opts Options) (*Handler, error) {
	if opts.Cows == nil || opts.Evaluations == nil {
		return nil, errors.New("web: cows and evaluations services are required")
	}

	views, err := newRenderer()
	if err != nil {
		return nil, err
	}

	h := &Handler{
		cows:  opts.Cows,
		evals: opts.Evaluations,
		flash: opts.Flash,
		log:   opts.Logger,
		loc:   opts.Location,
		views: views,
	}
	if h.flash == nil {
		h.flash = notify.NewFlash()
	}
	if h.log == nil {
		h.log = logger.Nop()
	}
	if h.loc == nil {
		h.loc = time.Local
	}
	return h, nil
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, directoryPath, http.StatusSeeOther)
	})

	r.Get(directoryPath, h.directoryPage)
	r.Get("/vacas/{cowID}/excluir", h.confirmDeletePage)
	r.Post("/vacas/{cowID}/excluir", h.deleteCow)

	r.Get("/cadastro", h.cowFormPage)
	r.Post("/cadastro", h.saveCow)

	r.Get("/avaliacao", h.evaluationPage)
	r.Post("/avaliacao", h.saveEvaluation)
}

// layout son los datos comunes a todas las páginas.
type layout struct {
	Title    string
	Notice   notify.Notice
	Redirect *notify.Redirect
}

func (h *Handler) render(w http.ResponseWriter, page string, data any) {
	if err := h.views.render(w, page, data); err != nil {
		h.log.Error("render page failed", map[string]any{"page": page, "error": err.Error()})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// redirectWithNotice deja n en el flash y manda al navegador a url.
func (h *Handler) redirectWithNotice(w http.ResponseWriter, r *http.Request, url string, n notify.Notice) {
	h.flash.Put(w, n)
	http.Redirect(w, r, url, http.StatusSeeOther)
}
