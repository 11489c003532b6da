package article

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/blog/internal/errresponse"
	"github.com/SergeyParamoshkin/blog/internal/logging"
	"github.com/SergeyParamoshkin/blog/internal/model"
)

type ctxKey int8

const ctxKeyArticle ctxKey = iota

// ArticleCtx middleware is used to load an Article object from
// the URL parameters passed through as the request. In case
// the Article could not be found, we stop here and return a 404.
func (a *API) ArticleCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		article, err := a.store.Get(r.Context(), chi.URLParam(r, "name"))
		if err != nil {
			a.renderStoreError(w, r, err)

			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyArticle, article)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func articleFromContext(ctx context.Context) *model.Article {
	article, _ := ctx.Value(ctxKeyArticle).(*model.Article)

	return article
}

func (a *API) renderStoreError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.FromContext(r.Context())

	var resp render.Renderer
	if errors.Is(err, ErrNotFound) {
		a.metrics.NotFound(r.Context())
		resp = errresponse.ErrNotFound
	} else {
		logger.Errorw("store failure", "article", chi.URLParam(r, "name"), "error", err)
		resp = errresponse.ErrStorage(err)
	}

	if err := render.Render(w, r, resp); err != nil {
		logger.Errorw("render error response", "error", err)
	}
}
