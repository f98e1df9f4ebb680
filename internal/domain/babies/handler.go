package babies

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"babysafety/internal/middleware"
	"babysafety/internal/platform/httpjson"
	"babysafety/internal/stats"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /baby. extra permite que otros módulos cuelguen rutas
// bajo /baby (babyFeed, cry-analysis) sin ciclos de imports.
func RegisterRoutes(r chi.Router, svc *Service, extra ...func(chi.Router)) {
	r.Route("/baby", func(br chi.Router) {
		br.Post("/add", createBabyHandler(svc))
		br.Get("/my-babies", listBabiesHandler(svc))
		br.Get("/{id}", getBabyHandler(svc))
		br.Put("/{id}", updateBabyHandler(svc))
		br.Delete("/{id}", deleteBabyHandler(svc))

		for _, f := range extra {
			f(br)
		}
	})
}

type babyRequest struct {
	Name         string `json:"name"`
	BirthDate    string `json:"birthDate"` // YYYY-MM-DD
	Gender       string `json:"gender"`
	Weight       string `json:"weight"`
	Height       string `json:"height"`
	HealthIssues string `json:"healthIssues"`
	Allergies    string `json:"allergies"`
	Notes        string `json:"notes"`
}

type BabyResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	BirthDate    string    `json:"birthDate"`
	Gender       string    `json:"gender"`
	Weight       string    `json:"weight"`
	Height       string    `json:"height"`
	HealthIssues string    `json:"healthIssues"`
	Allergies    string    `json:"allergies"`
	Notes        string    `json:"notes"`
	AgeInMonths  int       `json:"ageInMonths"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (req babyRequest) input() Input {
	return Input{
		Name:         req.Name,
		BirthDate:    req.BirthDate,
		Gender:       req.Gender,
		Weight:       req.Weight,
		Height:       req.Height,
		HealthIssues: req.HealthIssues,
		Allergies:    req.Allergies,
		Notes:        req.Notes,
	}
}

// createBabyHandler godoc
// @Summary Crear perfil de bebé
// @Description ageInMonths se calcula en el servidor a partir de birthDate.
// @Tags babies
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param body body babyRequest true "Perfil"
// @Success 201 {object} BabyResponse
// @Failure 400 {object} httpjson.ErrorBody
// @Failure 401 {object} httpjson.ErrorBody
// @Router /baby/add [post]
func createBabyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.RequireUser(w, r)
		if !ok {
			return
		}

		var req babyRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		b, err := svc.Create(r.Context(), userID, req.input())
		if err != nil {
			WriteError(w, err)
			return
		}
		httpjson.Write(w, http.StatusCreated, ToResponse(b))
	}
}

// listBabiesHandler godoc
// @Summary Mis bebés
// @Tags babies
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Success 200 {array} BabyResponse
// @Router /baby/my-babies [get]
func listBabiesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.RequireUser(w, r)
		if !ok {
			return
		}

		items, err := svc.ListByUser(r.Context(), userID)
		if err != nil {
			WriteError(w, err)
			return
		}

		out := make([]BabyResponse, 0, len(items))
		for _, b := range items {
			out = append(out, ToResponse(b))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

// getBabyHandler godoc
// @Summary Perfil de un bebé
// @Tags babies
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param id path string true "Baby ID"
// @Success 200 {object} BabyResponse
// @Failure 403 {object} httpjson.ErrorBody
// @Failure 404 {object} httpjson.ErrorBody
// @Router /baby/{id} [get]
func getBabyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.RequireUser(w, r)
		if !ok {
			return
		}

		b, err := svc.Owned(r.Context(), chi.URLParam(r, "id"), userID)
		if err != nil {
			WriteError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, ToResponse(b))
	}
}

// updateBabyHandler godoc
// @Summary Reemplazar perfil de bebé
// @Tags babies
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param id path string true "Baby ID"
// @Param body body babyRequest true "Perfil completo"
// @Success 200 {object} BabyResponse
// @Failure 400 {object} httpjson.ErrorBody
// @Failure 403 {object} httpjson.ErrorBody
// @Failure 404 {object} httpjson.ErrorBody
// @Router /baby/{id} [put]
func updateBabyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.RequireUser(w, r)
		if !ok {
			return
		}

		var req babyRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		b, err := svc.Update(r.Context(), chi.URLParam(r, "id"), userID, req.input())
		if err != nil {
			WriteError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, ToResponse(b))
	}
}

// deleteBabyHandler godoc
// @Summary Eliminar bebé
// @Description También elimina sus tomas y análisis.
// @Tags babies
// @Param Authorization header string false "Bearer token"
// @Param id path string true "Baby ID"
// @Success 204
// @Failure 403 {object} httpjson.ErrorBody
// @Failure 404 {object} httpjson.ErrorBody
// @Router /baby/{id} [delete]
func deleteBabyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.RequireUser(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
			WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ToResponse(b Baby) BabyResponse {
	return BabyResponse{
		ID:           b.ID,
		UserID:       b.UserID,
		Name:         b.Name,
		BirthDate:    stats.DayString(b.BirthDate),
		Gender:       b.Gender,
		Weight:       b.Weight,
		Height:       b.Height,
		HealthIssues: b.HealthIssues,
		Allergies:    b.Allergies,
		Notes:        b.Notes,
		AgeInMonths:  b.AgeInMonths,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// WriteError mapea los errores de ownership/validación a status HTTP.
// Lo reutilizan los módulos que cuelgan de /baby.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpjson.Error(w, http.StatusBadRequest, strings.TrimPrefix(err.Error(), ErrInvalidInput.Error()+": "))
	case errors.Is(err, ErrNotFound):
		httpjson.Error(w, http.StatusNotFound, "baby not found")
	case errors.Is(err, ErrForbidden):
		httpjson.Error(w, http.StatusForbidden, "forbidden")
	default:
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
	}
}
