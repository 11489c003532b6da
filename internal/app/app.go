package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/blog/internal/article"
	"github.com/SergeyParamoshkin/blog/internal/config"
	"github.com/SergeyParamoshkin/blog/internal/events"
	"github.com/SergeyParamoshkin/blog/internal/logging"
	"github.com/SergeyParamoshkin/blog/internal/metrics"
	"github.com/SergeyParamoshkin/blog/internal/spa"
)

type App struct {
	sugarLogger *zap.SugaredLogger
	config      config.HTTPConfig
	articles    *article.API
	metrics     *metrics.Metrics
}

type Params struct {
	fx.In

	Logger    *zap.Logger
	Config    *config.Config
	Store     article.Store
	Publisher events.Publisher `optional:"true"`
	Metrics   *metrics.Metrics `optional:"true"`
}

func New(p Params) *App {
	return &App{
		sugarLogger: p.Logger.Sugar(),
		config:      p.Config.HTTP,
		articles:    article.NewAPI(p.Store, p.Publisher, p.Metrics),
		metrics:     p.Metrics,
	}
}

// Router builds the public router: the article API under /api and the
// single page application shell for every other GET.
func (a *App) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(logging.Middleware(a.sugarLogger))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(a.metrics.Middleware)

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte("pong"))
		if err != nil {
			logging.FromContext(r.Context()).Errorw(err.Error())
		}
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Route("/articles", a.articles.Routes)
	})

	r.Get("/*", spa.Handler(spa.Dir(a.config.StaticDir)).ServeHTTP)

	return r
}

// DiagRouter serves operational endpoints on the diag port.
func (a *App) DiagRouter() chi.Router {
	r := chi.NewRouter()
	r.Get("/metrics", a.metrics.Handler().ServeHTTP)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	return r
}
