package di

import (
	"go.uber.org/fx"

	"github.com/ahmedmubarak14/poconfirm/internal/adapter/notify"
	"github.com/ahmedmubarak14/poconfirm/internal/adapter/submitlock"
	"github.com/ahmedmubarak14/poconfirm/internal/app"
	"github.com/ahmedmubarak14/poconfirm/internal/config"
	"github.com/ahmedmubarak14/poconfirm/internal/logger"
	"github.com/ahmedmubarak14/poconfirm/internal/pkg/auth"
	"github.com/ahmedmubarak14/poconfirm/internal/server/http/handlers"
	"github.com/ahmedmubarak14/poconfirm/internal/server/http/router"
	"github.com/ahmedmubarak14/poconfirm/internal/storage/postgres"
	"github.com/ahmedmubarak14/poconfirm/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		submitlock.Module,
		notify.Module,
		usecase.Module,
		fx.Provide(func(f *app.POFacade) handlers.Facade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
