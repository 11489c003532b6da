package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/SergeyParamoshkin/blog/internal/article"
	"github.com/SergeyParamoshkin/blog/internal/model"
)

type File struct {
	Articles []*model.Article `yaml:"articles"`
}

func Load(path string) ([]*model.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	return Parse(data)
}

// Parse decodes and checks a seed document. Names must be present and
// unique.
func Parse(data []byte) ([]*model.Article, error) {
	var f File
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	seen := make(map[string]struct{}, len(f.Articles))
	for i, a := range f.Articles {
		if a == nil || a.Name == "" {
			return nil, fmt.Errorf("seed article %d has no name", i)
		}
		if _, ok := seen[a.Name]; ok {
			return nil, fmt.Errorf("seed article %q is listed twice", a.Name)
		}
		seen[a.Name] = struct{}{}
	}

	return f.Articles, nil
}

// Run seeds store with the articles in path.
func Run(ctx context.Context, store article.Store, path string) (int, error) {
	seeder, ok := store.(article.Seeder)
	if !ok {
		return 0, errors.New("store does not support seeding")
	}

	articles, err := Load(path)
	if err != nil {
		return 0, err
	}

	if err := seeder.Seed(ctx, articles); err != nil {
		return 0, err
	}

	return len(articles), nil
}
