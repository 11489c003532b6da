package article

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

// ErrNotFound is returned when no article has the requested name.
var ErrNotFound = errors.New("article not found")

// Store is the persistence layer for articles. Upvote and AddComment are
// atomic on the store side and return the record as it is after the change.
type Store interface {
	Get(ctx context.Context, name string) (*model.Article, error)
	List(ctx context.Context) ([]*model.Article, error)
	Upvote(ctx context.Context, name string) (*model.Article, error)
	AddComment(ctx context.Context, name string, comment model.Comment) (*model.Article, error)
}

// Seeder loads articles out of band. Title and content are replaced, while
// upvotes and comments of an existing record are left untouched.
type Seeder interface {
	Seed(ctx context.Context, articles []*model.Article) error
}

// MemoryStore keeps articles in process. Every method holds the lock for
// the whole read-modify-write, so concurrent upvotes are never lost.
type MemoryStore struct {
	mu       sync.RWMutex
	articles map[string]*model.Article
}

var (
	_ Store  = (*MemoryStore)(nil)
	_ Seeder = (*MemoryStore)(nil)
)

func NewMemoryStore(articles ...*model.Article) *MemoryStore {
	s := &MemoryStore{articles: make(map[string]*model.Article, len(articles))}
	for _, a := range articles {
		s.articles[a.Name] = a.Clone()
	}

	return s
}

func (s *MemoryStore) Get(ctx context.Context, name string) (*model.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.articles[name]
	if !ok {
		return nil, ErrNotFound
	}

	return a.Clone(), nil
}

func (s *MemoryStore) List(ctx context.Context) ([]*model.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*model.Article, 0, len(s.articles))
	for _, a := range s.articles {
		list = append(list, a.Clone())
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })

	return list, nil
}

func (s *MemoryStore) Upvote(ctx context.Context, name string) (*model.Article, error) {
	return s.update(ctx, name, func(a *model.Article) {
		a.Upvotes++
	})
}

func (s *MemoryStore) AddComment(ctx context.Context, name string, comment model.Comment) (*model.Article, error) {
	return s.update(ctx, name, func(a *model.Article) {
		a.Comments = append(a.Comments, comment)
	})
}

func (s *MemoryStore) update(ctx context.Context, name string, fn func(*model.Article)) (*model.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.articles[name]
	if !ok {
		return nil, ErrNotFound
	}
	fn(a)

	return a.Clone(), nil
}

func (s *MemoryStore) Seed(ctx context.Context, articles []*model.Article) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, in := range articles {
		if existing, ok := s.articles[in.Name]; ok {
			existing.Title = in.Title
			existing.Content = append([]string(nil), in.Content...)

			continue
		}

		a := in.Clone()
		a.Upvotes = 0
		a.Comments = []model.Comment{}
		s.articles[a.Name] = a
	}

	return nil
}
