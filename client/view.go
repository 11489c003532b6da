package client

import (
	"context"
	"errors"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

// ArticleView holds the state of one article page. It fetches an article
// when opened and only fetches again when the name changes.
type ArticleView struct {
	client *Client

	name     string
	loaded   bool
	Article  *model.Article
	NotFound bool
}

func NewArticleView(c *Client) *ArticleView {
	return &ArticleView{client: c}
}

func (v *ArticleView) Name() string { return v.name }

// Open loads name unless it is already the loaded article. An unknown
// article sets NotFound instead of returning an error.
func (v *ArticleView) Open(ctx context.Context, name string) error {
	if v.loaded && name == v.name {
		return nil
	}

	a, err := v.client.GetArticle(ctx, name)
	switch {
	case errors.Is(err, ErrNotFound):
		v.set(name, nil)

		return nil
	case err != nil:
		return err
	}

	v.set(name, a)

	return nil
}

func (v *ArticleView) set(name string, a *model.Article) {
	v.name = name
	v.loaded = true
	v.Article = a
	v.NotFound = a == nil
}

// Upvotes is what the upvote section displays.
func (v *ArticleView) Upvotes() int64 {
	if v.Article == nil {
		return 0
	}

	return v.Article.Upvotes
}

func (v *ArticleView) Comments() []model.Comment {
	if v.Article == nil {
		return nil
	}

	return v.Article.Comments
}

// Upvote replaces the local state with the server's answer.
func (v *ArticleView) Upvote(ctx context.Context) error {
	if !v.loaded || v.NotFound {
		return ErrNotFound
	}

	a, err := v.client.Upvote(ctx, v.name)
	if err != nil {
		return err
	}
	v.Article = a

	return nil
}

// CommentForm holds the two inputs of the comment form.
type CommentForm struct {
	Username string
	Text     string
}

func (f *CommentForm) Clear() {
	f.Username = ""
	f.Text = ""
}

// Submit sends the form as a comment, replaces the local state with the
// response and clears the form. The form is kept when the request fails.
func (v *ArticleView) Submit(ctx context.Context, form *CommentForm) error {
	if !v.loaded || v.NotFound {
		return ErrNotFound
	}

	a, err := v.client.AddComment(ctx, v.name, model.Comment{Username: form.Username, Text: form.Text})
	if err != nil {
		return err
	}
	v.Article = a
	form.Clear()

	return nil
}
