package config

import "go.uber.org/fx"

// Module makes the parsed configuration available to the fx graph.
var Module = fx.Provide(Load)
