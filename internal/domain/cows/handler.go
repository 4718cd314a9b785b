package cows

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"cattle-health-records/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/vacas", func(vr chi.Router) {
		vr.Get("/", listCowsHandler(svc, log))
		vr.Post("/", createCowHandler(svc, log))

		vr.Get("/{cowID}", getCowHandler(svc, log))
		vr.Put("/{cowID}", updateCowHandler(svc, log))
		vr.Delete("/{cowID}", deleteCowHandler(svc, log))
	})
}

// cowRequest es el cuerpo para crear o actualizar una vaca.
type cowRequest struct {
	Name      string `json:"nome"`
	Tag       string `json:"identificacao"`
	Breed     string `json:"raca"`
	BirthDate string `json:"data_nascimento"` // YYYY-MM-DD opcional
	Status    string `json:"status"`
}

// cowResponse representa una vaca devuelta por la API.
type cowResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"nome"`
	Tag       string  `json:"identificacao"`
	Breed     *string `json:"raca"`
	BirthDate *string `json:"data_nascimento"`
	Status    *string `json:"status"`
}

// listCowsHandler godoc
// @Summary Listar vacas
// @Description Devuelve todas las vacas ordenadas por id ascendente.
// @Tags vacas
// @Produce json
// @Success 200 {array} cowResponse
// @Failure 500 {string} string "internal error"
// @Router /vacas [get]
func listCowsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			log.Error("list cows failed", map[string]any{"error": err.Error()})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]cowResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCowResponse(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createCowHandler godoc
// @Summary Cadastrar vaca
// @Description Crea una vaca. nome, identificacao y raca se recortan; data_nascimento y status pasan tal cual.
// @Tags vacas
// @Accept json
// @Produce json
// @Param payload body cowRequest true "Datos de la vaca"
// @Success 201 {object} cowResponse
// @Failure 400 {string} string "invalid json"
// @Failure 500 {string} string "internal error"
// @Router /vacas [post]
func createCowHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cowRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Create(r.Context(), req.toInput())
		if err != nil {
			log.Error("create cow failed", map[string]any{"error": err.Error()})
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toCowResponse(c))
	}
}

// getCowHandler godoc
// @Summary Obtener vaca
// @Tags vacas
// @Produce json
// @Param cowID path int true "ID de la vaca"
// @Success 200 {object} cowResponse
// @Failure 400 {string} string "invalid id"
// @Failure 404 {string} string "cow not found"
// @Router /vacas/{cowID} [get]
func getCowHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := cowIDParam(w, r)
		if !ok {
			return
		}

		c, err := svc.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, log, "get cow failed", id, err)
			return
		}
		writeJSON(w, http.StatusOK, toCowResponse(c))
	}
}

// updateCowHandler godoc
// @Summary Atualizar vaca
// @Description Reemplaza los campos editables de la vaca (mismo trim que el alta).
// @Tags vacas
// @Accept json
// @Produce json
// @Param cowID path int true "ID de la vaca"
// @Param payload body cowRequest true "Datos de la vaca"
// @Success 200 {object} cowResponse
// @Failure 400 {string} string "invalid json / invalid id"
// @Failure 404 {string} string "cow not found"
// @Failure 500 {string} string "internal error"
// @Router /vacas/{cowID} [put]
func updateCowHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := cowIDParam(w, r)
		if !ok {
			return
		}

		var req cowRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Update(r.Context(), id, req.toInput())
		if err != nil {
			writeServiceError(w, log, "update cow failed", id, err)
			return
		}
		writeJSON(w, http.StatusOK, toCowResponse(c))
	}
}

// deleteCowHandler godoc
// @Summary Excluir vaca
// @Description Borrado inmediato (sin soft-delete).
// @Tags vacas
// @Param cowID path int true "ID de la vaca"
// @Success 204
// @Failure 400 {string} string "invalid id"
// @Failure 404 {string} string "cow not found"
// @Failure 500 {string} string "internal error"
// @Router /vacas/{cowID} [delete]
func deleteCowHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := cowIDParam(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			writeServiceError(w, log, "delete cow failed", id, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (req cowRequest) toInput() Input {
	return Input{
		Name:      req.Name,
		Tag:       req.Tag,
		Breed:     req.Breed,
		BirthDate: req.BirthDate,
		Status:    req.Status,
	}
}

func cowIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(chi.URLParam(r, "cowID")), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeServiceError(w http.ResponseWriter, log logger.Logger, msg string, id int64, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "cow not found", http.StatusNotFound)
	default:
		log.Error(msg, map[string]any{"cow_id": id, "error": err.Error()})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toCowResponse(c Cow) cowResponse {
	return cowResponse{
		ID:        c.ID,
		Name:      c.Name,
		Tag:       c.Tag,
		Breed:     c.Breed,
		BirthDate: c.BirthDate,
		Status:    c.Status,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos (cows/evaluations)
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
