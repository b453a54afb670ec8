package controllers

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"blog/app/metrics"
	"blog/app/middleware"
	"blog/app/models"
	"blog/app/repositories"
	"blog/app/sessions"
)

// page is the data every template receives.
type page struct {
	UserID  uint
	Flashes []sessions.Flash
	Error   string

	Username   string
	Posts      []*models.PostSummary
	Categories []*models.Category
	Category   *models.Category
	Post       *models.Post
	Comments   []*models.CommentView
	IsAuthor   bool
}

// Base carries what every controller needs to answer a request.
type Base struct {
	templates map[string]*template.Template
	store     *sessions.Store
	metrics   *metrics.Metrics
	log       logrus.FieldLogger
}

// NewBase creates the shared controller dependencies
func NewBase(templates map[string]*template.Template, store *sessions.Store, m *metrics.Metrics, log logrus.FieldLogger) *Base {
	return &Base{
		templates: templates,
		store:     store,
		metrics:   m,
		log:       log,
	}
}

// session returns the request's session, loading it when no middleware did.
func (b *Base) session(r *http.Request) *sessions.Session {
	if sess := sessions.FromContext(r.Context()); sess != nil {
		return sess
	}
	return b.store.Load(r)
}

// render executes a page template, consuming any pending flash messages.
func (b *Base) render(w http.ResponseWriter, r *http.Request, name string, status int, data *page) {
	tmpl, ok := b.templates[name]
	if !ok {
		b.serverError(w, r, errors.New("template "+name+" not loaded"))
		return
	}
	if data == nil {
		data = &page{}
	}
	data.UserID = middleware.UserIDFromContext(r.Context())

	sess := b.session(r)
	if data.Flashes = sess.PopFlashes(); len(data.Flashes) > 0 {
		if err := b.store.Save(w, sess); err != nil {
			b.serverError(w, r, err)
			return
		}
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		b.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// flashRedirect queues a flash message and sends a 303 to url.
func (b *Base) flashRedirect(w http.ResponseWriter, r *http.Request, category, message, url string) {
	sess := b.session(r)
	sess.AddFlash(category, message)
	if err := b.store.Save(w, sess); err != nil {
		b.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// handleError maps service and repository errors to HTTP responses.
func (b *Base) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		http.Error(w, "Not Found", http.StatusNotFound)
	case errors.As(err, &verrs), errors.Is(err, models.ErrEmptyPassword), errors.Is(err, bcrypt.ErrPasswordTooLong):
		http.Error(w, "Bad Request", http.StatusBadRequest)
	default:
		b.serverError(w, r, err)
	}
}

func (b *Base) serverError(w http.ResponseWriter, r *http.Request, err error) {
	b.log.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).WithError(err).Error("Request failed")
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// parseForm decodes the request form and checks required fields.
func (b *Base) parseForm(w http.ResponseWriter, r *http.Request, form interface{ bind(*http.Request) }) bool {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	form.bind(r)
	if err := models.ValidateStruct(form); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	return true
}

// pathID reads the numeric {id} route variable.
func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
