package event

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/linkmart/linkmart/internal/config"
)

// Module wires the order event publisher. Without configured brokers the
// service runs with a no-op publisher.
var Module = fx.Options(
	fx.Provide(newPublisher),
	fx.Invoke(registerLifecycle),
)

type publisherParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newPublisher(p publisherParams) Publisher {
	if len(p.Config.KafkaBrokers) == 0 {
		p.Logger.Info("kafka brokers not configured, order events disabled")
		return Noop{}
	}
	return NewKafkaPublisher(p.Config.KafkaBrokers, p.Config.OrderEventsTopic, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, publisher Publisher) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return publisher.Close()
		},
	})
}
