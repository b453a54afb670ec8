package controllers

import (
	"net/http"

	"blog/app/services"
)

// CategoryController lists posts per category
type CategoryController struct {
	*Base
	postService *services.PostService
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(base *Base, postService *services.PostService) *CategoryController {
	return &CategoryController{Base: base, postService: postService}
}

// Show lists the posts of one category, 404 when it does not exist
func (cc *CategoryController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	category, posts, err := cc.postService.ListPostsByCategory(r.Context(), id)
	if err != nil {
		cc.handleError(w, r, err)
		return
	}
	cc.render(w, r, "category", http.StatusOK, &page{Category: category, Posts: posts})
}
