package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"blog/app/logging"
	"blog/app/metrics"
	"blog/app/middleware"
	"blog/app/models"
	"blog/app/repositories/mock"
	"blog/app/services"
	"blog/app/sessions"
	"blog/app/views"
)

type testEnv struct {
	repos      *mock.Set
	store      *sessions.Store
	auth       *AuthController
	posts      *PostController
	comments   *CommentController
	categories *CategoryController
	category   *models.Category
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	templates, err := views.Load()
	require.NoError(t, err)
	store, err := sessions.Open("", sessions.Options{TTL: time.Hour}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	repos := mock.NewSet()
	category, _, err := repos.Categories.FirstOrCreate(context.Background(), "Fanfics")
	require.NoError(t, err)

	base := NewBase(templates, store, metrics.New(), logging.Discard())
	postService := services.NewPostService(repos.Posts, repos.Comments, repos.Categories)
	return &testEnv{
		repos:      repos,
		store:      store,
		auth:       NewAuthController(base, services.NewAuthService(repos.Users)),
		posts:      NewPostController(base, postService, services.NewCategoryService(repos.Categories)),
		comments:   NewCommentController(base, services.NewCommentService(repos.Comments, repos.Posts)),
		categories: NewCategoryController(base, postService),
		category:   category,
	}
}

func (e *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username}
	require.NoError(t, user.SetPassword("secret"))
	require.NoError(t, e.repos.Users.Create(context.Background(), user))
	return user
}

func (e *testEnv) createPost(t *testing.T, userID uint, title string) *models.Post {
	t.Helper()
	post := &models.Post{Title: title, Content: "Body", UserID: userID, CategoryID: e.category.ID}
	require.NoError(t, e.repos.Posts.Create(context.Background(), post))
	return post
}

// serve routes a single request through pattern so mux.Vars is populated.
func serve(handler http.HandlerFunc, pattern, method, target string, form url.Values, userID uint, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc(pattern, handler).Methods(method)

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	if userID != 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
