package users

import (
	"errors"
	"net/http"
	"strings"

	"babysafety/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/signup", signupHandler(svc))
		ar.Post("/login", loginHandler(svc))
	})
}

type signupRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	MobileNumber string `json:"mobileNumber"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Type     string `json:"type"`
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// signupHandler godoc
// @Summary Registrar usuario
// @Tags auth
// @Accept json
// @Produce json
// @Param body body signupRequest true "Datos de registro"
// @Success 200 {object} httpjson.MessageBody
// @Failure 400 {object} httpjson.ErrorBody "validación o usuario/email duplicado"
// @Router /auth/signup [post]
func signupHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		_, err := svc.Signup(r.Context(), SignupInput{
			Username:     req.Username,
			Email:        req.Email,
			Password:     req.Password,
			MobileNumber: req.MobileNumber,
		})
		switch {
		case err == nil:
			httpjson.Write(w, http.StatusOK, httpjson.MessageBody{Message: "User registered successfully!"})
		case errors.Is(err, ErrUsernameTaken):
			httpjson.Error(w, http.StatusBadRequest, "Error: Username is already taken!")
		case errors.Is(err, ErrEmailInUse):
			httpjson.Error(w, http.StatusBadRequest, "Error: Email is already in use!")
		case errors.Is(err, ErrInvalidInput):
			httpjson.Error(w, http.StatusBadRequest, strings.TrimPrefix(err.Error(), ErrInvalidInput.Error()+": "))
		default:
			httpjson.Error(w, http.StatusInternalServerError, "internal error")
		}
	}
}

// loginHandler godoc
// @Summary Iniciar sesión
// @Description Devuelve un JWT HS256 para usar como Bearer.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "Credenciales"
// @Success 200 {object} loginResponse
// @Failure 401 {object} httpjson.ErrorBody
// @Router /auth/login [post]
func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		res, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				httpjson.Error(w, http.StatusUnauthorized, "Invalid email or password")
				return
			}
			httpjson.Error(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpjson.Write(w, http.StatusOK, loginResponse{
			Token:    res.Token,
			Type:     res.Type,
			ID:       res.User.ID,
			Username: res.User.Username,
			Email:    res.User.Email,
		})
	}
}
