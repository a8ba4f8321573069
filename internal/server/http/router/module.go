package router

import "go.uber.org/fx"

// Module registers construction of the directory's gin engine.
var Module = fx.Provide(Setup)
