package monitoring

import (
	"net/http"

	"babysafety/internal/middleware"
	"babysafety/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, reg *Registry) {
	r.Route("/monitors/{kind}", func(mr chi.Router) {
		mr.Get("/", statusHandler(reg))
		mr.Post("/start", startHandler(reg))
		mr.Post("/stop", stopHandler(reg))
		mr.Post("/emergency", emergencyHandler(reg))
	})
}

// toggleResponse indica si la llamada cambió el estado (false = ya estaba así).
type toggleResponse struct {
	Changed  bool     `json:"changed"`
	Snapshot Snapshot `json:"snapshot"`
}

// statusHandler godoc
// @Summary Estado del monitor
// @Description Devuelve estado (idle/active), alerta derivada, historial acotado (10, más viejo primero) y conteo por categoría.
// @Tags monitors
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param kind path string true "object | emotion"
// @Success 200 {object} Snapshot
// @Failure 401 {object} httpjson.ErrorBody
// @Failure 404 {object} httpjson.ErrorBody "unknown monitor kind"
// @Router /monitors/{kind} [get]
func statusHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, ok := monitorFor(w, r, reg)
		if !ok {
			return
		}
		httpjson.Write(w, http.StatusOK, m.Snapshot())
	}
}

// startHandler godoc
// @Summary Iniciar monitor
// @Description Pasa el monitor a activo. Idempotente: si ya estaba activo no crea otro timer.
// @Tags monitors
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param kind path string true "object | emotion"
// @Success 200 {object} toggleResponse
// @Router /monitors/{kind}/start [post]
func startHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, ok := monitorFor(w, r, reg)
		if !ok {
			return
		}
		changed := m.Start()
		httpjson.Write(w, http.StatusOK, toggleResponse{Changed: changed, Snapshot: m.Snapshot()})
	}
}

// stopHandler godoc
// @Summary Detener monitor
// @Tags monitors
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param kind path string true "object | emotion"
// @Success 200 {object} toggleResponse
// @Router /monitors/{kind}/stop [post]
func stopHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, ok := monitorFor(w, r, reg)
		if !ok {
			return
		}
		changed := m.Stop()
		httpjson.Write(w, http.StatusOK, toggleResponse{Changed: changed, Snapshot: m.Snapshot()})
	}
}

// emergencyHandler godoc
// @Summary Acción de emergencia (simulada)
// @Description Solo confirma la solicitud; no realiza ninguna llamada real.
// @Tags monitors
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param kind path string true "object | emotion"
// @Success 202 {object} Acknowledgement
// @Router /monitors/{kind}/emergency [post]
func emergencyHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, ok := monitorFor(w, r, reg)
		if !ok {
			return
		}
		httpjson.Write(w, http.StatusAccepted, m.Emergency())
	}
}

func monitorFor(w http.ResponseWriter, r *http.Request, reg *Registry) (*Monitor, bool) {
	userID, ok := middleware.RequireUser(w, r)
	if !ok {
		return nil, false
	}

	kind, err := ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, err.Error())
		return nil, false
	}

	m, err := reg.Get(userID, kind)
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return m, true
}
