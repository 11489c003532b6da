package article

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/blog/internal/config"
	"github.com/SergeyParamoshkin/blog/internal/model"
)

// MongoStore keeps articles in one collection, keyed by a unique index on
// name. The client holds a connection pool shared by all requests.
type MongoStore struct {
	client   *mongo.Client
	articles *mongo.Collection
	timeout  time.Duration
	logger   *zap.SugaredLogger
}

var (
	_ Store  = (*MongoStore)(nil)
	_ Seeder = (*MongoStore)(nil)
)

func NewMongoStore(ctx context.Context, cfg config.MongoConfig, logger *zap.SugaredLogger) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*cfg.Timeout())
	defer cancel()

	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())

		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	s := &MongoStore{
		client:   client,
		articles: client.Database(cfg.Database).Collection(cfg.Collection),
		timeout:  cfg.Timeout(),
		logger:   logger,
	}

	if err := s.createIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())

		return nil, err
	}

	logger.Infow("connected to MongoDB", "database", cfg.Database, "collection", cfg.Collection)

	return s, nil
}

func (s *MongoStore) createIndexes(ctx context.Context) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	if _, err := s.articles.Indexes().CreateOne(ctx, indexModel); err != nil {
		return fmt.Errorf("create name index: %w", err)
	}

	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) Get(ctx context.Context, name string) (*model.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var a model.Article
	err := s.articles.FindOne(ctx, bson.M{"name": name}).Decode(&a)

	return decodeResult(&a, err)
}

func (s *MongoStore) List(ctx context.Context) ([]*model.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cursor, err := s.articles.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find articles: %w", err)
	}
	defer cursor.Close(ctx)

	articles := []*model.Article{}
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, fmt.Errorf("decode articles: %w", err)
	}

	return articles, nil
}

// Upvote uses $inc so concurrent upvotes are summed by the server.
func (s *MongoStore) Upvote(ctx context.Context, name string) (*model.Article, error) {
	return s.findOneAndUpdate(ctx, name, bson.M{"$inc": bson.M{"upvotes": 1}})
}

// AddComment uses $push so concurrent comments are all kept.
func (s *MongoStore) AddComment(ctx context.Context, name string, comment model.Comment) (*model.Article, error) {
	return s.findOneAndUpdate(ctx, name, bson.M{"$push": bson.M{"comments": comment}})
}

func (s *MongoStore) findOneAndUpdate(ctx context.Context, name string, update bson.M) (*model.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var a model.Article
	err := s.articles.FindOneAndUpdate(ctx, bson.M{"name": name}, update, opts).Decode(&a)

	return decodeResult(&a, err)
}

func (s *MongoStore) Seed(ctx context.Context, articles []*model.Article) error {
	opts := options.Update().SetUpsert(true)

	for _, a := range articles {
		content := a.Content
		if content == nil {
			content = []string{}
		}

		update := bson.M{
			"$set": bson.M{"title": a.Title, "content": content},
			"$setOnInsert": bson.M{
				"upvotes":  int64(0),
				"comments": []model.Comment{},
			},
		}

		if err := s.upsert(ctx, a.Name, update, opts); err != nil {
			return err
		}
	}

	return nil
}

func (s *MongoStore) upsert(ctx context.Context, name string, update bson.M, opts *options.UpdateOptions) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.articles.UpdateOne(ctx, bson.M{"name": name}, update, opts); err != nil {
		return fmt.Errorf("seed article %s: %w", name, err)
	}

	return nil
}

func decodeResult(a *model.Article, err error) (*model.Article, error) {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, ErrNotFound
	case err != nil:
		return nil, err
	}

	if a.Comments == nil {
		a.Comments = []model.Comment{}
	}

	return a, nil
}
