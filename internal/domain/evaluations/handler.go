package evaluations

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cattle-health-records/internal/domain/cows"
	"cattle-health-records/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, cowsSvc *cows.Service, log logger.Logger) {
	r.Route("/vacas/{cowID}/avaliacao", func(er chi.Router) {
		er.Get("/", currentEvaluationHandler(svc, cowsSvc, log))
		er.Put("/", saveEvaluationHandler(svc, cowsSvc, log))
	})
}

// saveEvaluationRequest es el cuerpo para guardar la evaluación actual de una vaca.
// ID es la evaluación que el cliente está editando; si viene vacío se crea una nueva.
type saveEvaluationRequest struct {
	ID           int64  `json:"id"`
	Symptoms     string `json:"sintomas"`      // CSV: "febre, mastite"
	CMT          string `json:"cmt"`           // opcional
	Conductivity string `json:"condutividade"` // opcional, numérico
	Notes        string `json:"observacoes"`   // opcional
}

// evaluationResponse representa una evaluación devuelta por la API.
type evaluationResponse struct {
	ID           int64      `json:"id"`
	CowID        int64      `json:"vaca_id"`
	Symptoms     Symptoms   `json:"sintomas" swaggertype:"array,string"`
	CMT          *string    `json:"cmt"`
	Conductivity *float64   `json:"condutividade"`
	Notes        *string    `json:"observacoes"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

// currentEvaluationHandler godoc
// @Summary Evaluación actual de una vaca
// @Description Devuelve la evaluación más reciente (created_at desc) de la vaca.
// @Tags avaliacoes
// @Produce json
// @Param cowID path int true "ID de la vaca"
// @Success 200 {object} evaluationResponse
// @Failure 400 {string} string "invalid id"
// @Failure 404 {string} string "cow not found / evaluation not found"
// @Failure 500 {string} string "internal error"
// @Router /vacas/{cowID}/avaliacao [get]
func currentEvaluationHandler(svc *Service, cowsSvc *cows.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cowID, ok := cowIDParam(w, r)
		if !ok {
			return
		}

		if _, err := cowsSvc.Get(r.Context(), cowID); err != nil {
			writeCowLookupError(w, log, cowID, err)
			return
		}

		e, found, err := svc.Current(r.Context(), cowID)
		if err != nil {
			log.Error("load current evaluation failed", map[string]any{"cow_id": cowID, "error": err.Error()})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !found {
			http.Error(w, "evaluation not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toEvaluationResponse(e))
	}
}

// saveEvaluationHandler godoc
// @Summary Guardar evaluación de una vaca
// @Description Upsert de la evaluación actual: con id actualiza esa fila, sin id crea una nueva. sintomas se separa por coma; condutividade vacía se guarda como null.
// @Tags avaliacoes
// @Accept json
// @Produce json
// @Param cowID path int true "ID de la vaca"
// @Param payload body saveEvaluationRequest true "Datos de la evaluación"
// @Success 200 {object} evaluationResponse
// @Failure 400 {string} string "invalid json / invalid id"
// @Failure 404 {string} string "cow not found / evaluation not found"
// @Failure 500 {string} string "internal error"
// @Router /vacas/{cowID}/avaliacao [put]
func saveEvaluationHandler(svc *Service, cowsSvc *cows.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cowID, ok := cowIDParam(w, r)
		if !ok {
			return
		}

		if _, err := cowsSvc.Get(r.Context(), cowID); err != nil {
			writeCowLookupError(w, log, cowID, err)
			return
		}

		var req saveEvaluationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		e, err := svc.Save(r.Context(), cowID, req.ID, Input{
			Symptoms:     req.Symptoms,
			CMT:          req.CMT,
			Conductivity: req.Conductivity,
			Notes:        req.Notes,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "evaluation not found", http.StatusNotFound)
			default:
				log.Error("save evaluation failed", map[string]any{
					"cow_id":        cowID,
					"evaluation_id": req.ID,
					"error":         err.Error(),
				})
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toEvaluationResponse(e))
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

func writeCowLookupError(w http.ResponseWriter, log logger.Logger, cowID int64, err error) {
	if errors.Is(err, cows.ErrNotFound) {
		http.Error(w, "cow not found", http.StatusNotFound)
		return
	}
	log.Error("load cow failed", map[string]any{"cow_id": cowID, "error": err.Error()})
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func toEvaluationResponse(e Evaluation) evaluationResponse {
	return evaluationResponse{
		ID:           e.ID,
		CowID:        e.CowID,
		Symptoms:     e.Symptoms,
		CMT:          e.CMT,
		Conductivity: e.Conductivity,
		Notes:        e.Notes,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
