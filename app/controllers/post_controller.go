package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"blog/app/middleware"
	"blog/app/models"
	"blog/app/repositories"
	"blog/app/services"
	"blog/app/sessions"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	*Base
	postService     *services.PostService
	categoryService *services.CategoryService
}

// NewPostController creates a new PostController
func NewPostController(base *Base, postService *services.PostService, categoryService *services.CategoryService) *PostController {
	return &PostController{
		Base:            base,
		postService:     postService,
		categoryService: categoryService,
	}
}

// Index lists every post with its author and comment count
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPosts(r.Context())
	if err != nil {
		pc.handleError(w, r, err)
		return
	}
	categories, err := pc.categoryService.List(r.Context())
	if err != nil {
		pc.handleError(w, r, err)
		return
	}

	pc.render(w, r, "home", http.StatusOK, &page{Posts: posts, Categories: categories})
}

// New displays the form for creating a new post
func (pc *PostController) New(w http.ResponseWriter, r *http.Request) {
	categories, err := pc.categoryService.List(r.Context())
	if err != nil {
		pc.handleError(w, r, err)
		return
	}
	pc.render(w, r, "posts", http.StatusOK, &page{Categories: categories})
}

// Create handles creating a new post from the general form
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	form := &postForm{categoryFromForm: true}
	if !pc.parseForm(w, r, form) {
		return
	}
	if pc.createPost(w, r, form) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// NewInCategory displays the form for a post in the category from the URL
func (pc *PostController) NewInCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	category, err := pc.categoryService.Get(r.Context(), id)
	if err != nil {
		pc.handleError(w, r, err)
		return
	}
	pc.render(w, r, "create_post", http.StatusOK, &page{Category: category})
}

// CreateInCategory creates a post in the category from the URL
func (pc *PostController) CreateInCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	form := &postForm{Category: uint64(id)}
	if !pc.parseForm(w, r, form) {
		return
	}
	if pc.createPost(w, r, form) {
		http.Redirect(w, r, "/category/"+strconv.FormatUint(uint64(id), 10), http.StatusSeeOther)
	}
}

func (pc *PostController) createPost(w http.ResponseWriter, r *http.Request, form *postForm) bool {
	post := &models.Post{
		Title:      form.Title,
		Content:    form.Content,
		CategoryID: uint(form.Category),
		UserID:     middleware.UserIDFromContext(r.Context()),
	}
	if err := pc.postService.CreatePost(r.Context(), post); err != nil {
		pc.handleError(w, r, err)
		return false
	}

	pc.metrics.PostCreated()
	pc.log.WithFields(logrus.Fields{
		"post_id":     post.ID,
		"user_id":     post.UserID,
		"category_id": post.CategoryID,
	}).Info("Post created")
	return true
}

// Show displays a single post with its comments
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	post, comments, err := pc.postService.GetPost(r.Context(), id)
	if err != nil {
		pc.handleError(w, r, err)
		return
	}

	pc.render(w, r, "post_details", http.StatusOK, &page{
		Post:     post,
		Comments: comments,
		IsAuthor: post.IsAuthoredBy(middleware.UserIDFromContext(r.Context())),
	})
}

// Delete removes a post written by the current user
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		pc.flashRedirect(w, r, sessions.FlashDanger, "Post not found.", "/")
		return
	}
	userID := middleware.UserIDFromContext(r.Context())

	err := pc.postService.DeletePost(r.Context(), id, userID)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		pc.flashRedirect(w, r, sessions.FlashDanger, "Post not found.", "/")
	case errors.Is(err, services.ErrForbidden):
		pc.log.WithFields(logrus.Fields{"post_id": id, "user_id": userID}).Warn("Rejected delete by non-author")
		pc.flashRedirect(w, r, sessions.FlashDanger, "You can't delete a post you didn't create.", "/")
	case err != nil:
		pc.handleError(w, r, err)
	default:
		pc.metrics.PostDeleted()
		pc.log.WithFields(logrus.Fields{"post_id": id, "user_id": userID}).Info("Post deleted")
		pc.flashRedirect(w, r, sessions.FlashSuccess, "Post deleted successfully!", "/")
	}
}
