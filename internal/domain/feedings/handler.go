package feedings

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"babysafety/internal/domain/babies"
	"babysafety/internal/middleware"
	"babysafety/internal/platform/httpjson"
	"babysafety/internal/stats"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/feeding", func(fr chi.Router) {
		fr.Post("/add", createFeedingHandler(svc))
		fr.Get("/{babyId}", listFeedingsHandler(svc))
		fr.Get("/{babyId}/today", todayHandler(svc))
		fr.Delete("/{babyId}/{entryId}", deleteFeedingHandler(svc))
	})
}

// BabyRoutes cuelga GET /baby/babyFeed/{babyId} (ruta histórica del cliente).
func BabyRoutes(svc *Service) func(chi.Router) {
	return func(br chi.Router) {
		br.Get("/babyFeed/{babyId}", listFeedingsHandler(svc))
	}
}

type createFeedingRequest struct {
	BabyID   string `json:"babyId"`
	Time     string `json:"time"` // HH:MM
	Date     string `json:"date"` // YYYY-MM-DD opcional
	FoodType string `json:"foodType"`
	Amount   string `json:"amount"`
	Notes    string `json:"notes"`
}

type EntryResponse struct {
	ID        string    `json:"id"`
	BabyID    string    `json:"babyId"`
	Time      string    `json:"time"`
	Date      string    `json:"date"`
	FoodType  string    `json:"foodType"`
	Amount    string    `json:"amount"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

type TodayResponse struct {
	stats.FeedSummary
	Entries []EntryResponse `json:"entries"`
}

// createFeedingHandler godoc
// @Summary Registrar toma
// @Tags feedings
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param body body createFeedingRequest true "Toma"
// @Success 201 {object} EntryResponse
// @Failure 400 {object} httpjson.ErrorBody
// @Failure 403 {object} httpjson.ErrorBody
// @Failure 404 {object} httpjson.ErrorBody
// @Router /feeding/add [post]
func createFeedingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.RequireUser(w, r)
		if !ok {
			return
		}

		var req createFeedingRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		e, err := svc.Create(r.Context(), userID, CreateInput{
			BabyID:   req.BabyID,
			Time:     req.Time,
			Date:     req.Date,
			FoodType: req.FoodType,
			Amount:   req.Amount,
			Notes:    req.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		httpjson.Write(w, http.StatusCreated, toEntryResponse(e))
	}
}

// listFeedingsHandler godoc
// @Summary Tomas de un bebé
// @Description Ordenadas por fecha y hora ascendente.
// @Tags feedings
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param babyId path string true "Baby ID"
// @Success 200 {array} EntryResponse
// @Router /feeding/{babyId} [get]
func listFeedingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.RequireUser(w, r)
		if !ok {
			return
		}

		items, err := svc.ListByBaby(r.Context(), userID, chi.URLParam(r, "babyId"))
		if err != nil {
			writeError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toEntryResponses(items))
	}
}

// todayHandler godoc
// @Summary Resumen del día
// @Description Total de tomas, última toma y próxima sugerida (+3h). date opcional, default hoy.
// @Tags feedings
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param babyId path string true "Baby ID"
// @Param date query string false "YYYY-MM-DD"
// @Success 200 {object} TodayResponse
// @Router /feeding/{babyId}/today [get]
func todayHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.RequireUser(w, r)
		if !ok {
			return
		}

		sum, err := svc.Today(r.Context(), userID, chi.URLParam(r, "babyId"), r.URL.Query().Get("date"))
		if err != nil {
			writeError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, TodayResponse{
			FeedSummary: sum.FeedSummary,
			Entries:     toEntryResponses(sum.Entries),
		})
	}
}

// deleteFeedingHandler godoc
// @Summary Eliminar toma
// @Tags feedings
// @Param Authorization header string false "Bearer token"
// @Param babyId path string true "Baby ID"
// @Param entryId path string true "Entry ID"
// @Success 204
// @Failure 404 {object} httpjson.ErrorBody
// @Router /feeding/{babyId}/{entryId} [delete]
func deleteFeedingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.RequireUser(w, r)
		if !ok {
			return
		}

		err := svc.Delete(r.Context(), userID, chi.URLParam(r, "babyId"), chi.URLParam(r, "entryId"))
		if err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toEntryResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		BabyID:    e.BabyID,
		Time:      e.Time,
		Date:      e.Date,
		FoodType:  e.FoodType,
		Amount:    e.Amount,
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
	}
}

func toEntryResponses(items []Entry) []EntryResponse {
	out := make([]EntryResponse, 0, len(items))
	for _, e := range items {
		out = append(out, toEntryResponse(e))
	}
	return out
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpjson.Error(w, http.StatusBadRequest, strings.TrimPrefix(err.Error(), ErrInvalidInput.Error()+": "))
	case errors.Is(err, ErrNotFound):
		httpjson.Error(w, http.StatusNotFound, err.Error())
	default:
		babies.WriteError(w, err)
	}
}
