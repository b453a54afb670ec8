package controllers

import (
	"net/http"
	"strconv"

	"blog/app/middleware"
	"blog/app/models"
	"blog/app/services"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	*Base
	commentService *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(base *Base, commentService *services.CommentService) *CommentController {
	return &CommentController{Base: base, commentService: commentService}
}

// Create adds a comment from the inline form on the post page
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	cc.create(w, r, "content")
}

// CreateFromForm adds a comment posted to /post/{id}/comments
func (cc *CommentController) CreateFromForm(w http.ResponseWriter, r *http.Request) {
	cc.create(w, r, "comment")
}

func (cc *CommentController) create(w http.ResponseWriter, r *http.Request, field string) {
	postID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	form := &commentForm{field: field}
	if !cc.parseForm(w, r, form) {
		return
	}

	comment := &models.Comment{
		Content: form.Content,
		PostID:  postID,
		UserID:  middleware.UserIDFromContext(r.Context()),
	}
	if err := cc.commentService.CreateComment(r.Context(), comment); err != nil {
		cc.handleError(w, r, err)
		return
	}

	cc.metrics.CommentCreated()
	http.Redirect(w, r, "/post/"+strconv.FormatUint(uint64(postID), 10), http.StatusSeeOther)
}
