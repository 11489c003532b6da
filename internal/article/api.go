package article

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/blog/internal/articlerequest"
	"github.com/SergeyParamoshkin/blog/internal/articleresponse"
	"github.com/SergeyParamoshkin/blog/internal/errresponse"
	"github.com/SergeyParamoshkin/blog/internal/events"
	"github.com/SergeyParamoshkin/blog/internal/logging"
	"github.com/SergeyParamoshkin/blog/internal/metrics"
	"github.com/SergeyParamoshkin/blog/internal/model"
)

// API serves the article endpoints over a Store.
type API struct {
	store   Store
	events  events.Publisher
	metrics *metrics.Metrics
}

// NewAPI returns an API. A nil publisher drops events, nil metrics record
// nothing.
func NewAPI(store Store, publisher events.Publisher, m *metrics.Metrics) *API {
	if publisher == nil {
		publisher = events.Nop{}
	}

	return &API{store: store, events: publisher, metrics: m}
}

// Routes mounts under /api/articles.
func (a *API) Routes(r chi.Router) {
	r.Get("/", a.ListArticles)

	r.Route("/{name}", func(r chi.Router) {
		r.With(a.ArticleCtx).Get("/", a.GetArticle)
		r.Post("/upvote", a.UpvoteArticle)
		r.Post("/add-comment", a.AddComment)
	})
}

func (a *API) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := a.store.List(r.Context())
	if err != nil {
		a.renderStoreError(w, r, err)

		return
	}

	if err := render.RenderList(w, r, articleresponse.NewArticleListResponse(articles)); err != nil {
		a.renderError(w, r, err)
	}
}

// GetArticle renders the Article loaded by ArticleCtx.
func (a *API) GetArticle(w http.ResponseWriter, r *http.Request) {
	article := articleFromContext(r.Context())

	if err := render.Render(w, r, articleresponse.NewArticleResponse(article)); err != nil {
		a.renderError(w, r, err)
	}
}

func (a *API) UpvoteArticle(w http.ResponseWriter, r *http.Request) {
	article, err := a.store.Upvote(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		a.renderStoreError(w, r, err)

		return
	}

	a.metrics.Upvoted(r.Context(), article.Name)
	a.publish(r, events.Upvoted(article))
	a.respond(w, r, article)
}

// AddComment appends the posted comment. An empty body is accepted and
// stored as an empty comment.
func (a *API) AddComment(w http.ResponseWriter, r *http.Request) {
	data := &articlerequest.CommentRequest{}
	if err := render.Bind(r, data); err != nil && !errors.Is(err, io.EOF) {
		if err := render.Render(w, r, errresponse.ErrInvalidRequest(err)); err != nil {
			logging.FromContext(r.Context()).Errorw("render error response", "error", err)
		}

		return
	}

	comment := data.Comment()
	article, err := a.store.AddComment(r.Context(), chi.URLParam(r, "name"), comment)
	if err != nil {
		a.renderStoreError(w, r, err)

		return
	}

	a.metrics.Commented(r.Context(), article.Name)
	a.publish(r, events.Commented(article, comment))
	a.respond(w, r, article)
}

func (a *API) respond(w http.ResponseWriter, r *http.Request, article *model.Article) {
	if err := render.Render(w, r, articleresponse.NewArticleResponse(article)); err != nil {
		a.renderError(w, r, err)
	}
}

func (a *API) renderError(w http.ResponseWriter, r *http.Request, err error) {
	if err := render.Render(w, r, errresponse.ErrRender(err)); err != nil {
		logging.FromContext(r.Context()).Errorw("render error response", "error", err)
	}
}

func (a *API) publish(r *http.Request, e events.Event) {
	if err := a.events.Publish(r.Context(), e); err != nil {
		logging.FromContext(r.Context()).Warnw("publish article event", "kind", e.Kind, "article", e.Name, "error", err)
	}
}
