package cryanalysis

import (
	"net/http"
	"time"

	"babysafety/internal/domain/babies"
	"babysafety/internal/middleware"
	"babysafety/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

// BabyRoutes cuelga /baby/{id}/cry-analysis.
func BabyRoutes(svc *Service) func(chi.Router) {
	return func(br chi.Router) {
		br.Post("/{id}/cry-analysis", analyzeHandler(svc))
		br.Get("/{id}/cry-analysis", listHandler(svc))
	}
}

type analyzeRequest struct {
	RoomTemperature *float64 `json:"roomTemperature"`
	FoodTemperature *float64 `json:"foodTemperature"`
	Crying          bool     `json:"crying"`
}

type AnalysisResponse struct {
	ID              string       `json:"id"`
	BabyID          string       `json:"babyId"`
	Time            string       `json:"time"`
	Reason          string       `json:"reason"`
	Confidence      float64      `json:"confidence"`
	Recommendation  string       `json:"recommendation"`
	Reasons         []string     `json:"reasons,omitempty"`
	Recommendations []string     `json:"recommendations,omitempty"`
	Suitability     *Suitability `json:"suitability,omitempty"`
	Source          Source       `json:"source"`
	CreatedAt       time.Time    `json:"createdAt"`
}

// analyzeHandler godoc
// @Summary Analizar llanto
// @Description Usa la última toma del bebé y la temperatura de la habitación. Si el servicio externo falla se usan reglas locales.
// @Tags cry-analysis
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param id path string true "Baby ID"
// @Param body body analyzeRequest false "Contexto"
// @Success 201 {object} AnalysisResponse
// @Failure 403 {object} httpjson.ErrorBody
// @Failure 404 {object} httpjson.ErrorBody
// @Router /baby/{id}/cry-analysis [post]
func analyzeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.RequireUser(w, r)
		if !ok {
			return
		}

		var req analyzeRequest
		if err := httpjson.DecodeOptional(r, &req); err != nil {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		a, err := svc.Analyze(r.Context(), userID, chi.URLParam(r, "id"), Input{
			RoomTemperature: req.RoomTemperature,
			FoodTemperature: req.FoodTemperature,
			Crying:          req.Crying,
		})
		if err != nil {
			babies.WriteError(w, err)
			return
		}
		httpjson.Write(w, http.StatusCreated, toResponse(a))
	}
}

// listHandler godoc
// @Summary Historial de análisis
// @Description Del más nuevo al más viejo.
// @Tags cry-analysis
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param id path string true "Baby ID"
// @Success 200 {array} AnalysisResponse
// @Router /baby/{id}/cry-analysis [get]
func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.RequireUser(w, r)
		if !ok {
			return
		}

		items, err := svc.List(r.Context(), userID, chi.URLParam(r, "id"))
		if err != nil {
			babies.WriteError(w, err)
			return
		}

		out := make([]AnalysisResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toResponse(a))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

func toResponse(a Analysis) AnalysisResponse {
	return AnalysisResponse{
		ID:              a.ID,
		BabyID:          a.BabyID,
		Time:            a.Time,
		Reason:          a.Reason,
		Confidence:      a.Confidence,
		Recommendation:  a.Recommendation,
		Reasons:         a.Reasons,
		Recommendations: a.Recommendations,
		Suitability:     a.Suitability,
		Source:          a.Source,
		CreatedAt:       a.CreatedAt,
	}
}
