//go:build integration
// +build integration

package article

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/blog/internal/config"
	"github.com/SergeyParamoshkin/blog/internal/model"
)

func newMongoStore(t *testing.T) *MongoStore {
	t.Helper()

	uri := os.Getenv("BLOG_MONGO_URI")
	if uri == "" {
		t.Skip("BLOG_MONGO_URI not set")
	}

	cfg := config.MongoConfig{
		URI:         uri,
		Database:    "blog-test",
		Collection:  fmt.Sprintf("articles_%d", time.Now().UnixNano()),
		TimeoutSec:  5,
		MaxPoolSize: 10,
	}

	s, err := NewMongoStore(context.Background(), cfg, zap.NewNop().Sugar())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = s.articles.Drop(context.Background())
		_ = s.Close(context.Background())
	})

	err = s.Seed(context.Background(), []*model.Article{{Name: "learn-react", Title: "React", Content: []string{"p"}}})
	if err != nil {
		t.Fatal(err)
	}

	return s
}

func TestMongoStoreScenario(t *testing.T) {
	ctx := context.Background()
	s := newMongoStore(t)

	for i := 0; i < 2; i++ {
		if _, err := s.Upvote(ctx, "learn-react"); err != nil {
			t.Fatal(err)
		}
	}
	a, err := s.AddComment(ctx, "learn-react", model.Comment{Username: "al", Text: "hi"})
	if err != nil {
		t.Fatal(err)
	}
	if a.Upvotes != 2 || len(a.Comments) != 1 || a.Comments[0].Username != "al" {
		t.Errorf("article = %+v", a)
	}

	if _, err := s.Get(ctx, "does-not-exist"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing err = %v", err)
	}
}

func TestMongoStoreConcurrentUpvotes(t *testing.T) {
	ctx := context.Background()
	s := newMongoStore(t)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Upvote(ctx, "learn-react")
		}()
	}
	wg.Wait()

	a, err := s.Get(ctx, "learn-react")
	if err != nil {
		t.Fatal(err)
	}
	if a.Upvotes != n {
		t.Errorf("upvotes = %d, want %d", a.Upvotes, n)
	}
}

func TestMongoStoreSeedKeepsCounters(t *testing.T) {
	ctx := context.Background()
	s := newMongoStore(t)

	if _, err := s.Upvote(ctx, "learn-react"); err != nil {
		t.Fatal(err)
	}
	if err := s.Seed(ctx, []*model.Article{{Name: "learn-react", Title: "Renamed"}}); err != nil {
		t.Fatal(err)
	}

	a, err := s.Get(ctx, "learn-react")
	if err != nil {
		t.Fatal(err)
	}
	if a.Title != "Renamed" || a.Upvotes != 1 {
		t.Errorf("article = %+v", a)
	}
}
