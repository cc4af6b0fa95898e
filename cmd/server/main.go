package main

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"szabo-data/inkwell/internal/api"
	"szabo-data/inkwell/internal/components/admin"
	"szabo-data/inkwell/internal/components/auth"
	"szabo-data/inkwell/internal/components/categories"
	"szabo-data/inkwell/internal/components/posts"
	"szabo-data/inkwell/internal/components/tags"
	"szabo-data/inkwell/internal/server"
	"szabo-data/inkwell/internal/shared/config"
	"szabo-data/inkwell/internal/shared/logging"
	"szabo-data/inkwell/internal/shared/session"
	"szabo-data/inkwell/internal/view"
)

func newAPIClient(cfg *config.Config, sessions *session.Manager, logger zerolog.Logger) *api.Client {
	return api.NewClient(cfg.APIBaseURL, sessions, logger)
}

func main() {
	fx.New(
		fx.Provide(
			config.NewConfig,
			logging.NewLogger,
			session.NewRedisClient,
			session.NewManager,
			newAPIClient,
			api.NewAuthAPI,
			api.NewPostsAPI,
			api.NewCategoriesAPI,
			api.NewTagsAPI,
			api.NewAdminAPI,
			view.NewEngine,
			auth.NewRouter,
			posts.NewRouter,
			categories.NewRouter,
			tags.NewRouter,
			admin.NewRouter,
			server.NewServer,
			server.NewHealthSrvc,
			server.NewHealthHandler,
		),
		fx.Invoke(server.Register),
	).Run()
}
