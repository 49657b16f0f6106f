package pkgmgr

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/RiPetitor/rCleaner/internal/logger"
	"github.com/RiPetitor/rCleaner/internal/types"
)

var execCommand = exec.CommandContext

type commandOutput struct {
	stdout  string
	stderr  string
	success bool
}

// run executes program and captures its output. A non-zero exit is reported
// through success, an error is returned only when the program could not run.
func run(ctx context.Context, program string, args ...string) (commandOutput, error) {
	var stdout, stderr bytes.Buffer
	cmd := execCommand(ctx, program, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("running command", "program", program, "args", args)
	err := cmd.Run()
	out := commandOutput{stdout: stdout.String(), stderr: stderr.String(), success: err == nil}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return out, nil
		}
		return out, types.NewError(types.KindCommand, program, err)
	}
	return out, nil
}

// runChecked is run plus a Command error on non-zero exit.
func runChecked(ctx context.Context, program string, args ...string) (commandOutput, error) {
	out, err := run(ctx, program, args...)
	if err != nil {
		return out, err
	}
	if !out.success {
		return out, commandFailed(program, out)
	}
	return out, nil
}

func commandFailed(program string, out commandOutput) error {
	msg := strings.TrimSpace(out.stderr)
	if msg == "" {
		msg = strings.TrimSpace(out.stdout)
	}
	return types.Errorf(types.KindCommand, "%s command failed: %s", program, msg)
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func firstLine(s string) string {
	lines := splitLines(s)
	if len(lines) == 0 {
		return ""
	}
	return lines[0]
}
