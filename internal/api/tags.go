package api

import (
	"context"
	"net/url"
)

// TagsAPI wraps the read-only tag endpoints.
type TagsAPI struct {
	c *Client
}

func NewTagsAPI(c *Client) *TagsAPI {
	return &TagsAPI{c: c}
}

func (a *TagsAPI) List(ctx context.Context) ([]Tag, error) {
	var out []Tag
	if err := a.c.get(ctx, "/tags", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *TagsAPI) Posts(ctx context.Context, slug string, page int) (*PostPage, error) {
	var out PostPage
	if err := a.c.get(ctx, "/tags/"+url.PathEscape(slug)+"/posts", pageQuery(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
