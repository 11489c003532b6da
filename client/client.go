package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

// ErrNotFound is returned when the requested article does not exist.
var ErrNotFound = errors.New("article not found")

// APIError is any non-2xx answer other than 404.
type APIError struct {
	StatusCode int
	Message    string `json:"message"`
	Detail     string `json:"error"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Message, e.Detail)
	}

	return fmt.Sprintf("%d %s", e.StatusCode, e.Message)
}

type Client struct {
	http.Client
	Addr string
}

func (c *Client) Ping(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Addr+"/ping", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), err
}

func (c *Client) ListArticles(ctx context.Context) ([]model.Article, error) {
	var articles []model.Article
	if err := c.call(ctx, http.MethodGet, "/api/articles", nil, &articles); err != nil {
		return nil, err
	}

	return articles, nil
}

func (c *Client) GetArticle(ctx context.Context, name string) (*model.Article, error) {
	var a model.Article
	if err := c.call(ctx, http.MethodGet, articlePath(name, ""), nil, &a); err != nil {
		return nil, err
	}

	return &a, nil
}

func (c *Client) Upvote(ctx context.Context, name string) (*model.Article, error) {
	var a model.Article
	if err := c.call(ctx, http.MethodPost, articlePath(name, "upvote"), nil, &a); err != nil {
		return nil, err
	}

	return &a, nil
}

func (c *Client) AddComment(ctx context.Context, name string, comment model.Comment) (*model.Article, error) {
	var a model.Article
	if err := c.call(ctx, http.MethodPost, articlePath(name, "add-comment"), comment, &a); err != nil {
		return nil, err
	}

	return &a, nil
}

func articlePath(name, action string) string {
	p := "/api/articles/" + url.PathEscape(name)
	if action != "" {
		p += "/" + action
	}

	return p
}

func (c *Client) call(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimSuffix(c.Addr, "/")+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}

		return apiErr
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
