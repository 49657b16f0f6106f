package pkgmgr

import (
	"context"
	"strings"

	"github.com/RiPetitor/rCleaner/internal/logger"
)

type Apt struct{}

func NewApt() *Apt { return &Apt{} }

func (a *Apt) Name() string { return "apt" }

func (a *Apt) Available() bool { return commandAvailable("apt-get") }

func (a *Apt) Version(ctx context.Context) (string, error) {
	return versionOf(ctx, "apt", "--version")
}

func (a *Apt) ListInstalled(ctx context.Context) ([]string, error) {
	out, err := runChecked(ctx, "dpkg-query", "-W", "-f=${binary:Package}\n")
	if err != nil {
		return nil, err
	}
	return splitLines(out.stdout), nil
}

func (a *Apt) CheckDependencies(ctx context.Context, pkg string) ([]string, error) {
	if !commandAvailable("apt-cache") {
		return nil, nil
	}
	out, err := runChecked(ctx, "apt-cache", "rdepends", "--installed", pkg)
	if err != nil {
		return nil, err
	}
	return parseAptRdepends(out.stdout, pkg), nil
}

func (a *Apt) RemovePackages(ctx context.Context, names []string, dryRun bool) error {
	if len(names) == 0 {
		return nil
	}
	if err := ensureNoDependents(ctx, a, names); err != nil {
		return err
	}

	mode := "-y"
	if dryRun {
		mode = "-s"
	}
	_, err := runChecked(ctx, "apt-get", removeArgs([]string{"remove", mode}, names)...)
	if err == nil {
		logger.Info("packages removed", "manager", a.Name(), "packages", names, "dryRun", dryRun)
	}
	return err
}

// Orphans lists the packages apt-get autoremove would remove.
func (a *Apt) Orphans(ctx context.Context) ([]string, error) {
	out, err := runChecked(ctx, "apt-get", "-s", "autoremove")
	if err != nil {
		return nil, err
	}
	return parseAptAutoremove(out.stdout), nil
}

// Kernels lists installed linux-image packages.
func (a *Apt) Kernels(ctx context.Context) ([]string, error) {
	out, err := runChecked(ctx, "dpkg", "-l", "linux-image-*")
	if err != nil {
		return nil, err
	}
	return parseDpkgKernels(out.stdout), nil
}

func parseAptRdepends(output, pkg string) []string {
	seen := map[string]bool{pkg: true}
	var deps []string
	for i, line := range splitLines(output) {
		if i == 0 && line == pkg {
			continue
		}
		if strings.HasPrefix(line, "Reverse Depends") {
			continue
		}
		name := strings.TrimSpace(strings.TrimLeft(line, "|"))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		deps = append(deps, name)
	}
	return deps
}

func parseAptAutoremove(output string) []string {
	var pkgs []string
	for _, line := range splitLines(output) {
		rest, ok := strings.CutPrefix(line, "Remv ")
		if !ok {
			continue
		}
		if fields := strings.Fields(rest); len(fields) > 0 {
			pkgs = append(pkgs, fields[0])
		}
	}
	return pkgs
}

func parseDpkgKernels(output string) []string {
	var pkgs []string
	for _, line := range splitLines(output) {
		if !strings.HasPrefix(line, "ii") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 || !strings.HasPrefix(fields[1], "linux-image-") {
			continue
		}
		pkgs = append(pkgs, fields[1])
	}
	return pkgs
}
