package commands

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/jakechorley/shiftgen/internal/config"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg    *config.Config
	Logger *zap.Logger
	Ctx    context.Context
	Out    io.Writer
}
