package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/hlog"

	"szabo-data/inkwell/internal/api"
	"szabo-data/inkwell/internal/shared/respond"
	"szabo-data/inkwell/internal/shared/session"
	"szabo-data/inkwell/internal/view"
)

type Router struct {
	auth     *api.AuthAPI
	views    *view.Engine
	validate *validator.Validate
}

func NewRouter(authAPI *api.AuthAPI, views *view.Engine) *Router {
	return &Router{
		auth:     authAPI,
		views:    views,
		validate: validator.New(),
	}
}

func (r *Router) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/login", r.LoginPage)
	router.Get("/register", r.RegisterPage)
	router.Post("/logout", r.HandleLogout)
	// Credential submissions are rate limited per IP.
	router.Group(func(g chi.Router) {
		g.Use(httprate.LimitByIP(10, time.Minute))
		g.Post("/login", r.HandleLogin)
		g.Post("/register", r.HandleRegister)
	})
	return router
}

type loginForm struct {
	EmailOrUsername string `validate:"required"`
	Password        string `validate:"required"`
}

type registerForm struct {
	Username string `validate:"required,min=3,max=50"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

type authPageData struct {
	Form   any
	Errors map[string]string
}

func (r *Router) LoginPage(w http.ResponseWriter, req *http.Request) {
	r.renderLogin(w, req, loginForm{}, nil, http.StatusOK)
}

func (r *Router) HandleLogin(w http.ResponseWriter, req *http.Request) {
	logger := hlog.FromRequest(req)

	form := loginForm{
		EmailOrUsername: req.PostFormValue("emailOrUsername"),
		Password:        req.PostFormValue("password"),
	}
	if fieldErrors := validate(r.validate, form); len(fieldErrors) > 0 {
		r.renderLogin(w, req, form, fieldErrors, http.StatusBadRequest)
		return
	}

	resp, err := r.auth.Login(req.Context(), api.LoginRequest{
		EmailOrUsername: form.EmailOrUsername,
		Password:        form.Password,
	})
	if err != nil {
		logger.Warn().Err(err).Str("user", form.EmailOrUsername).Msg("login failed")
		respond.Fail(w, req, err, "/auth/login")
		return
	}

	sess := session.FromContext(req.Context())
	if err := sess.SetAuth(resp.Token, resp.User); err != nil {
		logger.Error().Err(err).Msg("could not establish session")
		respond.Fail(w, req, err, "/auth/login")
		return
	}
	logger.Debug().Str("user", resp.User.Username).Msg("login successful")
	sess.AddFlash(session.FlashSuccess, "Welcome back, "+resp.User.Username+".")
	http.Redirect(w, req, "/", http.StatusSeeOther)
}

func (r *Router) RegisterPage(w http.ResponseWriter, req *http.Request) {
	r.renderRegister(w, req, registerForm{}, nil, http.StatusOK)
}

func (r *Router) HandleRegister(w http.ResponseWriter, req *http.Request) {
	logger := hlog.FromRequest(req)

	form := registerForm{
		Username: req.PostFormValue("username"),
		Email:    req.PostFormValue("email"),
		Password: req.PostFormValue("password"),
	}
	if fieldErrors := validate(r.validate, form); len(fieldErrors) > 0 {
		r.renderRegister(w, req, form, fieldErrors, http.StatusBadRequest)
		return
	}

	resp, err := r.auth.Register(req.Context(), api.RegisterRequest{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		logger.Warn().Err(err).Str("user", form.Username).Msg("registration failed")
		respond.Fail(w, req, err, "/auth/register")
		return
	}

	sess := session.FromContext(req.Context())
	if err := sess.SetAuth(resp.Token, resp.User); err != nil {
		logger.Error().Err(err).Msg("could not establish session")
		respond.Fail(w, req, err, "/auth/login")
		return
	}
	sess.AddFlash(session.FlashSuccess, "Welcome to Inkwell, "+resp.User.Username+".")
	http.Redirect(w, req, "/", http.StatusSeeOther)
}

func (r *Router) HandleLogout(w http.ResponseWriter, req *http.Request) {
	session.FromContext(req.Context()).Clear()
	http.Redirect(w, req, "/", http.StatusSeeOther)
}

func (r *Router) renderLogin(w http.ResponseWriter, req *http.Request, form loginForm, fieldErrors map[string]string, status int) {
	form.Password = ""
	data := view.BaseData(req, "Log in", authPageData{Form: form, Errors: fieldErrors})
	if status != http.StatusOK {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
	}
	if err := r.views.Render(w, "pages/login.html", data); err != nil {
		hlog.FromRequest(req).Error().Err(err).Msg("render login page")
	}
}

func (r *Router) renderRegister(w http.ResponseWriter, req *http.Request, form registerForm, fieldErrors map[string]string, status int) {
	form.Password = ""
	data := view.BaseData(req, "Register", authPageData{Form: form, Errors: fieldErrors})
	if status != http.StatusOK {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
	}
	if err := r.views.Render(w, "pages/register.html", data); err != nil {
		hlog.FromRequest(req).Error().Err(err).Msg("render register page")
	}
}

// validate runs shape checks only; business rules stay with the API.
func validate(v *validator.Validate, form any) map[string]string {
	err := v.Struct(form)
	if err == nil {
		return nil
	}
	fieldErrors := make(map[string]string)
	if invalid, ok := err.(validator.ValidationErrors); ok {
		for _, fieldErr := range invalid {
			fieldErrors[fieldName(fieldErr.Field())] = fieldMessage(fieldErr)
		}
		return fieldErrors
	}
	fieldErrors["general"] = "Please check the form and try again."
	return fieldErrors
}

func fieldName(structField string) string {
	switch structField {
	case "EmailOrUsername":
		return "emailOrUsername"
	case "Username":
		return "username"
	case "Email":
		return "email"
	case "Password":
		return "password"
	}
	return structField
}

func fieldMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return "Too short (minimum " + err.Param() + " characters)."
	case "max":
		return "Too long (maximum " + err.Param() + " characters)."
	}
	return "Invalid value."
}
