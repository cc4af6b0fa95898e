package api

// Role of an authenticated user, as issued by the blog API.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleAuthor Role = "AUTHOR"
)

// PostStatus is the moderation state of a post.
type PostStatus string

const (
	StatusDraft     PostStatus = "DRAFT"
	StatusPending   PostStatus = "PENDING"
	StatusPublished PostStatus = "PUBLISHED"
	StatusRejected  PostStatus = "REJECTED"
)

// User is the authenticated identity record. It is issued by the API at
// login/registration and replaced wholesale on re-login, never updated in place.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// AuthResponse is returned by login and registration.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Category struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// PostAuthor is the embedded author reference on a post.
type PostAuthor struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type Post struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Content       string     `json:"content,omitempty"`
	Excerpt       string     `json:"excerpt"`
	FeaturedImage string     `json:"featuredImage,omitempty"`
	Status        PostStatus `json:"status"`
	Author        PostAuthor `json:"author"`
	Category      Category   `json:"category"`
	Tags          []Tag      `json:"tags"`
	CreatedAt     string     `json:"createdAt"`
	UpdatedAt     string     `json:"updatedAt"`
}

// PostPage is the page envelope every list endpoint of the API returns.
type PostPage struct {
	Content       []Post `json:"content"`
	Page          int    `json:"page"`
	Size          int    `json:"size"`
	TotalElements int64  `json:"totalElements"`
	TotalPages    int    `json:"totalPages"`
	First         bool   `json:"first"`
	Last          bool   `json:"last"`
}

// Stats is the admin dashboard summary.
type Stats struct {
	TotalPosts      int64 `json:"totalPosts"`
	TotalUsers      int64 `json:"totalUsers"`
	TotalCategories int64 `json:"totalCategories"`
	TotalTags       int64 `json:"totalTags"`
}

type LoginRequest struct {
	EmailOrUsername string `json:"emailOrUsername"`
	Password        string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PostRequest struct {
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Slug          string     `json:"slug,omitempty"`
	CategoryID    int64      `json:"categoryId"`
	Tags          []string   `json:"tags,omitempty"`
	Status        PostStatus `json:"status"`
	FeaturedImage string     `json:"featuredImage,omitempty"`
}

type CategoryRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// CanModify reports whether the user may edit or delete the given post:
// the owning author, or any admin. The post must already be fetched; the
// decision needs author info the client does not have up front.
func (u *User) CanModify(p *Post) bool {
	if u == nil || p == nil {
		return false
	}
	return u.Role == RoleAdmin || u.ID == p.Author.ID
}
