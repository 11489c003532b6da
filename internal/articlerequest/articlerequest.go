package articlerequest

import (
	"net/http"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

// CommentRequest is the request payload for add-comment. Fields are not
// validated; an absent username or text is stored as an empty string.
type CommentRequest struct {
	Username string `json:"username"`
	Text     string `json:"text"`
}

func (c *CommentRequest) Bind(r *http.Request) error {
	return nil
}

func (c *CommentRequest) Comment() model.Comment {
	return model.Comment{Username: c.Username, Text: c.Text}
}
