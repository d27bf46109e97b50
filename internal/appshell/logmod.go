package appshell

import (
	"context"
	"fmt"
	"log/slog"
)

// LogModule exposes logger to scripts as debug, info, warn and error functions.
// The first argument is the message, the remaining ones are key/value pairs.
func LogModule(logger *slog.Logger, alias string) *Module {
	if alias == "" {
		alias = "log"
	}
	logMod := NewModule(alias)
	for name, level := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		level := level
		logMod.AddFuncRaw(name, DynFuncNR0(func(args ...any) error {
			if len(args) == 0 {
				return nil
			}
			logger.Log(context.Background(), level, fmt.Sprint(args[0]), args[1:]...)
			return nil
		}))
	}
	return logMod
}
