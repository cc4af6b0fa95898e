package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// PostsAPI wraps the post endpoints. Every method is one HTTP call; no
// retries, no caching, and page indexes are passed straight through.
type PostsAPI struct {
	c *Client
}

func NewPostsAPI(c *Client) *PostsAPI {
	return &PostsAPI{c: c}
}

// List returns published posts, newest first. Pages are zero-based.
func (p *PostsAPI) List(ctx context.Context, page int) (*PostPage, error) {
	var out PostPage
	if err := p.c.get(ctx, "/posts", pageQuery(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *PostsAPI) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	var out Post
	if err := p.c.get(ctx, "/posts/"+url.PathEscape(slug), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// My returns the authenticated user's own posts, optionally filtered by status.
func (p *PostsAPI) My(ctx context.Context, page int, status string) (*PostPage, error) {
	query := pageQuery(page)
	if status != "" {
		query.Set("status", status)
	}
	var out PostPage
	if err := p.c.get(ctx, "/posts/my", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *PostsAPI) Search(ctx context.Context, q string, page int) (*PostPage, error) {
	query := pageQuery(page)
	query.Set("q", q)
	var out PostPage
	if err := p.c.get(ctx, "/posts/search", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *PostsAPI) Create(ctx context.Context, req PostRequest) (*Post, error) {
	var out Post
	if err := p.c.post(ctx, "/posts", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *PostsAPI) Update(ctx context.Context, id int64, req PostRequest) (*Post, error) {
	var out Post
	if err := p.c.put(ctx, fmt.Sprintf("/posts/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *PostsAPI) Delete(ctx context.Context, id int64) error {
	return p.c.delete(ctx, fmt.Sprintf("/posts/%d", id))
}

func pageQuery(page int) url.Values {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	return query
}
