package routes

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"blog/app/application"
	"blog/app/controllers"
	"blog/app/middleware"
	"blog/app/repositories"
	"blog/app/services"
	"blog/app/views"
)

// SetupRoutes defines the blog's routes and returns a router.
func SetupRoutes(app *application.Application) (*mux.Router, error) {
	templates, err := views.Load()
	if err != nil {
		return nil, err
	}

	userRepo := repositories.NewGormUserRepository(app.DB)
	categoryRepo := repositories.NewGormCategoryRepository(app.DB)
	postRepo := repositories.NewGormPostRepository(app.DB)
	commentRepo := repositories.NewGormCommentRepository(app.DB)

	postService := services.NewPostService(postRepo, commentRepo, categoryRepo)
	categoryService := services.NewCategoryService(categoryRepo)

	base := controllers.NewBase(templates, app.Sessions, app.Metrics, app.Log)
	authController := controllers.NewAuthController(base, services.NewAuthService(userRepo))
	postController := controllers.NewPostController(base, postService, categoryService)
	commentController := controllers.NewCommentController(base, services.NewCommentService(commentRepo, postRepo))
	categoryController := controllers.NewCategoryController(base, postService)

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Recoverer(app.Log))
	router.Use(middleware.Sessions(app.Sessions))
	router.Use(middleware.Logger(app.Log))
	router.Use(app.Metrics.Middleware)

	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", staticHandler(app.Config.StaticDir)))
	router.Handle("/metrics", app.Metrics.Handler()).Methods("GET")
	router.HandleFunc("/healthz", healthz(app)).Methods("GET")

	// Public pages
	router.HandleFunc("/register", authController.ShowRegister).Methods("GET")
	router.HandleFunc("/register", authController.Register).Methods("POST")
	router.HandleFunc("/login", authController.ShowLogin).Methods("GET")
	router.HandleFunc("/login", authController.Login).Methods("POST")
	router.HandleFunc("/logout", authController.Logout).Methods("GET")
	router.HandleFunc("/category/{id:[0-9]+}", categoryController.Show).Methods("GET")

	// Pages that act on behalf of the logged in user
	auth := func(h http.HandlerFunc) http.Handler { return middleware.RequireAuth(h) }
	router.Handle("/", auth(postController.Index)).Methods("GET")
	router.Handle("/home", auth(postController.Index)).Methods("GET")
	router.Handle("/posts", auth(postController.New)).Methods("GET")
	router.Handle("/posts", auth(postController.Create)).Methods("POST")
	router.Handle("/post/{id:[0-9]+}", auth(postController.Show)).Methods("GET")
	router.Handle("/post/{id:[0-9]+}", auth(commentController.Create)).Methods("POST")
	router.Handle("/post/{id:[0-9]+}/comments", auth(commentController.CreateFromForm)).Methods("POST")
	router.Handle("/post/{id:[0-9]+}/delete", auth(postController.Delete)).Methods("POST")
	router.Handle("/criar-post/{id:[0-9]+}", auth(postController.NewInCategory)).Methods("GET")
	router.Handle("/criar-post/{id:[0-9]+}", auth(postController.CreateInCategory)).Methods("POST")

	return router, nil
}

// staticHandler serves dir when it exists on disk and the embedded assets otherwise.
func staticHandler(dir string) http.Handler {
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return http.FileServer(http.Dir(dir))
		}
	}
	return http.FileServer(http.FS(views.Static()))
}

func healthz(app *application.Application) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := app.Ping(ctx); err != nil {
			app.Log.WithError(err).Error("Health check failed")
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	}
}
