package common

import (
	"errors"
	"log/slog"

	"github.com/dtnitsch/sitegen/models"
	"github.com/urfave/cli/v2"
)

const (
	ExitContent = 1 // malformed content or usage
	ExitFatal   = 2 // output root or other infrastructure failure
)

// ExitCode maps a build error to the process exit status.
func ExitCode(err error) int {
	var pe *models.PageError
	switch {
	case err == nil:
		return 0
	case errors.Is(err, models.ErrOutputRoot):
		return ExitFatal
	case errors.As(err, &pe), errors.Is(err, models.ErrContent):
		return ExitContent
	default:
		return ExitFatal
	}
}

// Fail logs err and returns the cli exit error for it.
func Fail(logger *slog.Logger, msg string, err error) error {
	logger.Error(msg, "error", err)
	return cli.Exit("", ExitCode(err))
}

// Usage logs a configuration or usage problem and exits with ExitContent.
func Usage(logger *slog.Logger, msg string, err error) error {
	logger.Error(msg, "error", err)
	return cli.Exit("", ExitContent)
}
