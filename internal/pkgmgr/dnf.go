package pkgmgr

import (
	"context"
	"strings"

	"github.com/RiPetitor/rCleaner/internal/logger"
)

type Dnf struct{}

func NewDnf() *Dnf { return &Dnf{} }

func (d *Dnf) Name() string { return "dnf" }

func (d *Dnf) Available() bool { return commandAvailable("dnf") }

func (d *Dnf) Version(ctx context.Context) (string, error) {
	return versionOf(ctx, "dnf", "--version")
}

func (d *Dnf) ListInstalled(ctx context.Context) ([]string, error) {
	out, err := runChecked(ctx, "dnf", "list", "installed")
	if err != nil {
		return nil, err
	}
	return parseDnfList(out.stdout), nil
}

func (d *Dnf) CheckDependencies(ctx context.Context, pkg string) ([]string, error) {
	return rpmWhatRequires(ctx, pkg)
}

func (d *Dnf) RemovePackages(ctx context.Context, names []string, dryRun bool) error {
	if len(names) == 0 {
		return nil
	}
	if err := ensureNoDependents(ctx, d, names); err != nil {
		return err
	}

	if dryRun {
		return d.simulateRemove(ctx, names)
	}
	_, err := runChecked(ctx, "dnf", removeArgs([]string{"remove", "-y"}, names)...)
	if err == nil {
		logger.Info("packages removed", "manager", d.Name(), "packages", names)
	}
	return err
}

// simulateRemove resolves the transaction with --assumeno. dnf answers the
// prompt with "no" and exits 1 with "Operation aborted", which is the
// expected outcome; any other failure is a resolution error.
func (d *Dnf) simulateRemove(ctx context.Context, names []string) error {
	out, err := run(ctx, "dnf", removeArgs([]string{"remove", "--assumeno"}, names)...)
	if err != nil {
		return err
	}
	if !out.success && !isAssumeNoAbort(out) {
		return commandFailed("dnf", out)
	}
	logger.Info("dry run: would remove", "manager", d.Name(), "packages", names)
	return nil
}

func isAssumeNoAbort(out commandOutput) bool {
	text := strings.ToLower(out.stdout + out.stderr)
	return strings.Contains(text, "operation aborted")
}

// Orphans lists packages dnf considers unneeded.
func (d *Dnf) Orphans(ctx context.Context) ([]string, error) {
	out, err := runChecked(ctx, "dnf", "repoquery", "--unneeded", "--qf", "%{name}")
	if err != nil {
		return nil, err
	}
	return splitLines(out.stdout), nil
}

func parseDnfList(output string) []string {
	var pkgs []string
	for _, line := range splitLines(output) {
		if strings.HasPrefix(line, "Installed") ||
			strings.HasPrefix(line, "Available") ||
			strings.HasPrefix(line, "Last metadata") {
			continue
		}
		if fields := strings.Fields(line); len(fields) > 0 {
			pkgs = append(pkgs, fields[0])
		}
	}
	return pkgs
}
