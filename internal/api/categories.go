package api

import (
	"context"
	"fmt"
	"net/url"
)

// CategoriesAPI wraps the category endpoints. Creation and mutation are
// admin-only on the server side; this client does not re-check that.
type CategoriesAPI struct {
	c *Client
}

func NewCategoriesAPI(c *Client) *CategoriesAPI {
	return &CategoriesAPI{c: c}
}

func (a *CategoriesAPI) List(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := a.c.get(ctx, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *CategoriesAPI) Posts(ctx context.Context, slug string, page int) (*PostPage, error) {
	var out PostPage
	if err := a.c.get(ctx, "/categories/"+url.PathEscape(slug)+"/posts", pageQuery(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *CategoriesAPI) Create(ctx context.Context, req CategoryRequest) (*Category, error) {
	var out Category
	if err := a.c.post(ctx, "/categories", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *CategoriesAPI) Update(ctx context.Context, id int64, req CategoryRequest) (*Category, error) {
	var out Category
	if err := a.c.put(ctx, fmt.Sprintf("/categories/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *CategoriesAPI) Delete(ctx context.Context, id int64) error {
	return a.c.delete(ctx, fmt.Sprintf("/categories/%d", id))
}
