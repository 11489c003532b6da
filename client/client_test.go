package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/blog/internal/app"
	"github.com/SergeyParamoshkin/blog/internal/article"
	"github.com/SergeyParamoshkin/blog/internal/config"
	"github.com/SergeyParamoshkin/blog/internal/model"
)

type testServer struct {
	*httptest.Server
	gets int64
}

func newTestServer(t *testing.T, store article.Store) *testServer {
	t.Helper()

	a := app.New(app.Params{Logger: zap.NewNop(), Config: config.Default(), Store: store})
	router := a.Router()

	ts := &testServer{}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			atomic.AddInt64(&ts.gets, 1)
		}
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(ts.Close)

	return ts
}

func seededStore() *article.MemoryStore {
	return article.NewMemoryStore(
		&model.Article{Name: "learn-react", Title: "React", Content: []string{"p1"}},
		&model.Article{Name: "learn-node", Title: "Node"},
	)
}

func TestClientScenario(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t, seededStore())
	c := &Client{Addr: ts.URL}

	if s, err := c.Ping(ctx); err != nil || s != "pong" {
		t.Fatalf("Ping = %q, %v", s, err)
	}

	for i := 0; i < 2; i++ {
		if _, err := c.Upvote(ctx, "learn-react"); err != nil {
			t.Fatal(err)
		}
	}

	a, err := c.AddComment(ctx, "learn-react", model.Comment{Username: "al", Text: "hi"})
	if err != nil {
		t.Fatal(err)
	}
	if a.Upvotes != 2 || len(a.Comments) != 1 || a.Comments[0].Username != "al" || a.Comments[0].Text != "hi" {
		t.Errorf("article = %+v", a)
	}

	if _, err := c.GetArticle(ctx, "does-not-exist"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetArticle missing err = %v", err)
	}

	list, err := c.ListArticles(ctx)
	if err != nil || len(list) != 2 {
		t.Errorf("ListArticles = %v, %v", list, err)
	}
}

type brokenStore struct{ article.MemoryStore }

func (b *brokenStore) Upvote(context.Context, string) (*model.Article, error) {
	return nil, errors.New("no reachable servers")
}

func TestClientAPIError(t *testing.T) {
	ts := newTestServer(t, &brokenStore{})
	c := &Client{Addr: ts.URL}

	_, err := c.Upvote(context.Background(), "learn-react")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError || apiErr.Message != "Error connecting to database" || apiErr.Detail != "no reachable servers" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestArticleViewFetchesOnNameChange(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t, seededStore())
	v := NewArticleView(&Client{Addr: ts.URL})

	for i := 0; i < 3; i++ {
		if err := v.Open(ctx, "learn-react"); err != nil {
			t.Fatal(err)
		}
	}
	if got := atomic.LoadInt64(&ts.gets); got != 1 {
		t.Errorf("gets after reopening same article = %d, want 1", got)
	}
	if v.Article.Title != "React" || v.NotFound {
		t.Errorf("view = %+v", v)
	}

	if err := v.Open(ctx, "learn-node"); err != nil {
		t.Fatal(err)
	}
	if got := atomic.LoadInt64(&ts.gets); got != 2 {
		t.Errorf("gets after switching article = %d, want 2", got)
	}
	if v.Name() != "learn-node" {
		t.Errorf("name = %q", v.Name())
	}
}

func TestArticleViewNotFound(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t, seededStore())
	v := NewArticleView(&Client{Addr: ts.URL})

	if err := v.Open(ctx, "does-not-exist"); err != nil {
		t.Fatal(err)
	}
	if !v.NotFound || v.Article != nil {
		t.Errorf("view = %+v, want not found", v)
	}
	if err := v.Upvote(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("Upvote on missing article err = %v", err)
	}
}

func TestArticleViewUpvoteAndComment(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t, seededStore())
	v := NewArticleView(&Client{Addr: ts.URL})

	if err := v.Open(ctx, "learn-react"); err != nil {
		t.Fatal(err)
	}
	if err := v.Upvote(ctx); err != nil {
		t.Fatal(err)
	}
	if v.Upvotes() != 1 {
		t.Errorf("upvotes = %d, want 1", v.Upvotes())
	}

	form := &CommentForm{Username: "al", Text: "hi"}
	if err := v.Submit(ctx, form); err != nil {
		t.Fatal(err)
	}
	if form.Username != "" || form.Text != "" {
		t.Errorf("form not cleared: %+v", form)
	}
	comments := v.Comments()
	if len(comments) != 1 || comments[0] != (model.Comment{Username: "al", Text: "hi"}) {
		t.Errorf("comments = %+v", comments)
	}
	if v.Upvotes() != 1 {
		t.Errorf("upvotes after comment = %d, want 1", v.Upvotes())
	}
}
