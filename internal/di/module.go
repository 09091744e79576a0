package di

import (
	"go.uber.org/fx"

	"github.com/linkmart/linkmart/internal/app"
	"github.com/linkmart/linkmart/internal/config"
	"github.com/linkmart/linkmart/internal/event"
	"github.com/linkmart/linkmart/internal/logger"
	"github.com/linkmart/linkmart/internal/pkg/auth"
	"github.com/linkmart/linkmart/internal/server/http/handlers"
	"github.com/linkmart/linkmart/internal/server/http/router"
	"github.com/linkmart/linkmart/internal/storage/postgres"
	"github.com/linkmart/linkmart/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		event.Module,
		usecase.Module,
		fx.Provide(func(f *app.MarketFacade) handlers.MarketFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
