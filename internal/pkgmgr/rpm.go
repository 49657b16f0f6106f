package pkgmgr

import (
	"context"
	"strings"

	"github.com/RiPetitor/rCleaner/internal/logger"
)

// noRequiresMarkers are the messages rpm prints when nothing requires a
// package, in the locales we have seen in the wild.
var noRequiresMarkers = []string{
	"no package requires",
	"no packages require",
	"ни один из пакетов не требует",
	"не требует",
	"не требуется",
}

type Rpm struct{}

func NewRpm() *Rpm { return &Rpm{} }

func (r *Rpm) Name() string { return "rpm" }

func (r *Rpm) Available() bool { return commandAvailable("rpm") }

func (r *Rpm) Version(ctx context.Context) (string, error) {
	return versionOf(ctx, "rpm", "--version")
}

func (r *Rpm) ListInstalled(ctx context.Context) ([]string, error) {
	out, err := runChecked(ctx, "rpm", "-qa", "--qf", "%{NAME}\n")
	if err != nil {
		return nil, err
	}
	return splitLines(out.stdout), nil
}

func (r *Rpm) CheckDependencies(ctx context.Context, pkg string) ([]string, error) {
	return rpmWhatRequires(ctx, pkg)
}

func (r *Rpm) RemovePackages(ctx context.Context, names []string, dryRun bool) error {
	if len(names) == 0 {
		return nil
	}
	if err := ensureNoDependents(ctx, r, names); err != nil {
		return err
	}

	prefix := []string{"-e"}
	if dryRun {
		prefix = append(prefix, "--test")
	}
	_, err := runChecked(ctx, "rpm", removeArgs(prefix, names)...)
	if err == nil {
		logger.Info("packages removed", "manager", r.Name(), "packages", names, "dryRun", dryRun)
	}
	return err
}

// Kernels lists installed kernel, kernel-core and kernel-modules packages.
func (r *Rpm) Kernels(ctx context.Context) ([]string, error) {
	// rpm exits non-zero when one of the names is not installed but still
	// prints the ones that are.
	out, err := run(ctx, "rpm", "-q", "kernel", "kernel-core", "kernel-modules")
	if err != nil {
		return nil, err
	}
	var pkgs []string
	for _, line := range splitLines(out.stdout) {
		if strings.Contains(line, "is not installed") {
			continue
		}
		pkgs = append(pkgs, line)
	}
	return pkgs, nil
}

// rpmWhatRequires is shared by rpm and dnf.
func rpmWhatRequires(ctx context.Context, pkg string) ([]string, error) {
	if !commandAvailable("rpm") {
		return nil, nil
	}
	out, err := run(ctx, "rpm", "-q", "--whatrequires", pkg)
	if err != nil {
		return nil, err
	}
	if !out.success {
		if isNoRequiresMessage(out.stderr) || isNoRequiresMessage(out.stdout) {
			return nil, nil
		}
		return nil, commandFailed("rpm", out)
	}
	lines := splitLines(out.stdout)
	if len(lines) == 1 && isNoRequiresMessage(lines[0]) {
		return nil, nil
	}
	return lines, nil
}

func isNoRequiresMessage(msg string) bool {
	lower := strings.ToLower(msg)
	for _, marker := range noRequiresMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
