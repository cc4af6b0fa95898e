package api

import (
	"context"
	"fmt"
)

// AdminAPI wraps the moderation endpoints. All of them require an ADMIN
// credential; a non-admin caller gets the server's 403 back verbatim.
type AdminAPI struct {
	c *Client
}

func NewAdminAPI(c *Client) *AdminAPI {
	return &AdminAPI{c: c}
}

func (a *AdminAPI) Stats(ctx context.Context) (*Stats, error) {
	var out Stats
	if err := a.c.get(ctx, "/admin/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AdminAPI) Users(ctx context.Context) ([]User, error) {
	var out []User
	if err := a.c.get(ctx, "/admin/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *AdminAPI) DeleteUser(ctx context.Context, id int64) error {
	return a.c.delete(ctx, fmt.Sprintf("/admin/users/%d", id))
}

// Posts lists posts of every author and status for moderation.
func (a *AdminAPI) Posts(ctx context.Context, page int, status string) (*PostPage, error) {
	query := pageQuery(page)
	if status != "" {
		query.Set("status", status)
	}
	var out PostPage
	if err := a.c.get(ctx, "/admin/posts", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AdminAPI) Approve(ctx context.Context, id int64) (*Post, error) {
	var out Post
	if err := a.c.put(ctx, fmt.Sprintf("/admin/posts/%d/approve", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AdminAPI) Reject(ctx context.Context, id int64, reason string) (*Post, error) {
	body := map[string]string{"reason": reason}
	var out Post
	if err := a.c.put(ctx, fmt.Sprintf("/admin/posts/%d/reject", id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AdminAPI) Publish(ctx context.Context, id int64) (*Post, error) {
	var out Post
	if err := a.c.put(ctx, fmt.Sprintf("/admin/posts/%d/publish", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
