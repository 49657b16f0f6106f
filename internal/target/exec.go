package target

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/RiPetitor/rCleaner/internal/logger"
	"github.com/RiPetitor/rCleaner/internal/types"
)

var execCommand = exec.CommandContext

// commandOutput runs program and returns its stdout. A non-zero exit becomes
// a Command error carrying stderr.
func commandOutput(ctx context.Context, program string, args ...string) (string, error) {
	logger.Debug("running command", "program", program, "args", args)
	out, err := execCommand(ctx, program, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			msg := strings.TrimSpace(string(exitErr.Stderr))
			if msg == "" {
				msg = exitErr.Error()
			}
			return "", types.Errorf(types.KindCommand, "%s command failed: %s", program, msg)
		}
		return "", types.NewError(types.KindCommand, program, err)
	}
	return string(out), nil
}
