package controllers

import (
	"net/http"
	"strconv"
	"strings"
)

type credentialsForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

func (f *credentialsForm) bind(r *http.Request) {
	f.Username = strings.TrimSpace(r.PostFormValue("username"))
	f.Password = r.PostFormValue("password")
}

// postForm takes the category from the form unless it is fixed by the URL.
type postForm struct {
	Title    string `validate:"required"`
	Content  string `validate:"required"`
	Category uint64 `validate:"required"`

	categoryFromForm bool
}

func (f *postForm) bind(r *http.Request) {
	f.Title = strings.TrimSpace(r.PostFormValue("title"))
	f.Content = r.PostFormValue("content")
	if f.categoryFromForm {
		// an unparsable id stays 0 and fails the required check
		f.Category, _ = strconv.ParseUint(strings.TrimSpace(r.PostFormValue("category")), 10, 64)
	}
}

// commentForm reads the comment body from the named field.
type commentForm struct {
	Content string `validate:"required"`

	field string
}

func (f *commentForm) bind(r *http.Request) {
	f.Content = r.PostFormValue(f.field)
}
