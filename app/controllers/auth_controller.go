package controllers

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"blog/app/services"
	"blog/app/sessions"
)

// AuthController handles registration, login and logout
type AuthController struct {
	*Base
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(base *Base, authService *services.AuthService) *AuthController {
	return &AuthController{Base: base, authService: authService}
}

// ShowRegister displays the registration form
func (ac *AuthController) ShowRegister(w http.ResponseWriter, r *http.Request) {
	ac.render(w, r, "register", http.StatusOK, nil)
}

// Register creates an account and sends the user to the login page
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	form := &credentialsForm{}
	if !ac.parseForm(w, r, form) {
		return
	}

	user, err := ac.authService.Register(r.Context(), form.Username, form.Password)
	if errors.Is(err, services.ErrDuplicateUsername) {
		ac.render(w, r, "register", http.StatusConflict, &page{
			Username: form.Username,
			Error:    "Username already taken.",
		})
		return
	}
	if err != nil {
		ac.handleError(w, r, err)
		return
	}

	ac.metrics.Registration()
	ac.log.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("User registered")
	ac.flashRedirect(w, r, sessions.FlashSuccess, "Registration successful! Please log in.", "/login")
}

// ShowLogin displays the login form
func (ac *AuthController) ShowLogin(w http.ResponseWriter, r *http.Request) {
	ac.render(w, r, "login", http.StatusOK, nil)
}

// Login authenticates the user and starts a fresh session
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	form := &credentialsForm{}
	if !ac.parseForm(w, r, form) {
		return
	}

	user, err := ac.authService.Login(r.Context(), form.Username, form.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		ac.metrics.Login("failure")
		ac.log.WithField("username", form.Username).Warn("Failed login attempt")
		ac.render(w, r, "login", http.StatusOK, &page{
			Username: form.Username,
			Error:    "Invalid username or password.",
		})
		return
	}
	if err != nil {
		ac.handleError(w, r, err)
		return
	}

	// rotate the id so a pre-login cookie cannot be reused
	old := ac.session(r)
	sess := ac.store.New()
	sess.UserID = user.ID
	sess.Flashes = old.Flashes
	if !old.IsNew() {
		if err := ac.store.Delete(old.ID); err != nil {
			ac.serverError(w, r, err)
			return
		}
	}
	if err := ac.store.Save(w, sess); err != nil {
		ac.serverError(w, r, err)
		return
	}

	ac.metrics.Login("success")
	ac.log.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("User logged in")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout destroys the session
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := ac.store.Destroy(w, ac.session(r)); err != nil {
		ac.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
