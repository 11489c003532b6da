package articleresponse

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

// ArticleResponse is the response payload for the Article data model.
type ArticleResponse struct {
	*model.Article
}

func NewArticleListResponse(articles []*model.Article) []render.Renderer {
	list := []render.Renderer{}
	for _, article := range articles {
		list = append(list, NewArticleResponse(article))
	}

	return list
}

func NewArticleResponse(article *model.Article) *ArticleResponse {
	return &ArticleResponse{Article: article}
}

func (rd *ArticleResponse) Render(w http.ResponseWriter, r *http.Request) error {
	// clients iterate both lists, never send null
	if rd.Content == nil {
		rd.Content = []string{}
	}
	if rd.Comments == nil {
		rd.Comments = []model.Comment{}
	}

	return nil
}
