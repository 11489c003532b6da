//
// BLOG
// ====
// Article API behind a single page blog front end.
//
// Boot the server:
// ----------------
// $ go run . -config config.yaml
// $ go run . -seed articles.yaml   # upsert seed articles and exit
// $ go run . -routes               # print route docs and exit
//
// Client requests:
// ----------------
// $ curl http://localhost:8000/api/articles/learn-react
// {"name":"learn-react","title":"...","content":[...],"upvotes":0,"comments":[]}
//
// $ curl -X POST http://localhost:8000/api/articles/learn-react/upvote
// {"name":"learn-react",...,"upvotes":1,"comments":[]}
//
// $ curl -X POST -H 'Content-Type: application/json' \
//     -d '{"username":"al","text":"hi"}' http://localhost:8000/api/articles/learn-react/add-comment
// {"name":"learn-react",...,"comments":[{"username":"al","text":"hi"}]}
//
// $ curl http://localhost:8000/api/articles/does-not-exist
// {"message":"Resource not found."}
//
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-chi/docgen"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/blog/internal/app"
	"github.com/SergeyParamoshkin/blog/internal/article"
	"github.com/SergeyParamoshkin/blog/internal/config"
	"github.com/SergeyParamoshkin/blog/internal/events"
	"github.com/SergeyParamoshkin/blog/internal/logging"
	"github.com/SergeyParamoshkin/blog/internal/metrics"
	"github.com/SergeyParamoshkin/blog/internal/seed"
)

func main() {
	var (
		configPath = flag.String("config", config.GetEnv(config.ServiceName+"_CONFIG", "config.yaml"), "config file")
		routes     = flag.Bool("routes", config.GetEnvBool(config.ServiceName+"_ROUTES", false), "Generate router documentation")
		addr       = flag.String("addr", "", "application address, overrides config")
		diagAddr   = flag.String("diag_addr", "", "diag address, overrides config")
		seedPath   = flag.String("seed", "", "seed articles from a YAML file and exit")
	)

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *addr != "" {
		cfg.HTTP.Addr = *addr
	}
	if *diagAddr != "" {
		cfg.HTTP.DiagAddr = *diagAddr
	}

	// Passing -routes to the program will generate docs for the router
	// without connecting to any backing service.
	if *routes {
		a := app.New(app.Params{
			Logger: zap.NewNop(),
			Config: cfg,
			Store:  article.NewMemoryStore(),
		})
		fmt.Println(docgen.MarkdownRoutesDoc(a.Router(), docgen.MarkdownOpts{
			ProjectPath: "github.com/SergeyParamoshkin/blog",
			Intro:       "Blog article API routes.",
		}))

		return
	}

	invoke := fx.Invoke(app.RegisterServers)
	if *seedPath != "" {
		invoke = fx.Invoke(func(lc fx.Lifecycle, shutdowner fx.Shutdowner, store article.Store, logger *zap.Logger) {
			lc.Append(fx.StartHook(func(ctx context.Context) error {
				n, err := seed.Run(ctx, store, *seedPath)
				if err != nil {
					return err
				}
				logger.Info("seeded articles", zap.Int("count", n), zap.String("file", *seedPath))

				return shutdowner.Shutdown()
			}))
		})
	}

	fxApp := fx.New(
		fx.Supply(cfg),
		fx.Provide(
			NewLogger,
			NewStore,
			NewPublisher,
			metrics.New,
			app.New,
		),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),
		invoke,
	)

	fxApp.Run()

	if err := fxApp.Err(); err != nil {
		os.Exit(1)
	}
}

func NewLogger(lc fx.Lifecycle, cfg *config.Config) (*zap.Logger, error) {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(func() {
		_ = logger.Sync() // flushes buffer, if any
	}))

	return logger, nil
}

type NewStoreParams struct {
	fx.In
	Lifecycle fx.Lifecycle

	Config *config.Config
	Logger *zap.Logger
}

// NewStore opens the article store once for the whole process. The mongo
// client pool is released when the app stops.
func NewStore(params NewStoreParams) (article.Store, error) {
	switch params.Config.Store.Driver {
	case config.DriverMemory:
		params.Logger.Warn("using in-memory article store, data is lost on exit")

		return article.NewMemoryStore(), nil
	default:
		store, err := article.NewMongoStore(context.Background(), params.Config.Mongo, params.Logger.Sugar())
		if err != nil {
			return nil, err
		}
		params.Lifecycle.Append(fx.StopHook(store.Close))

		return store, nil
	}
}

func NewPublisher(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (events.Publisher, error) {
	if cfg.Nats.URL == "" {
		return events.Nop{}, nil
	}

	publisher, err := events.Connect(cfg.Nats.URL, cfg.Nats.SubjectPrefix)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(publisher.Close))
	logger.Info("publishing article events", zap.String("url", cfg.Nats.URL), zap.String("prefix", cfg.Nats.SubjectPrefix))

	return publisher, nil
}
