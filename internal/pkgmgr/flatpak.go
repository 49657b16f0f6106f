package pkgmgr

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/RiPetitor/rCleaner/internal/logger"
	"github.com/RiPetitor/rCleaner/internal/utils"
)

type Flatpak struct{}

func NewFlatpak() *Flatpak { return &Flatpak{} }

func (f *Flatpak) Name() string { return "flatpak" }

func (f *Flatpak) Available() bool { return commandAvailable("flatpak") }

func (f *Flatpak) Version(ctx context.Context) (string, error) {
	return versionOf(ctx, "flatpak", "--version")
}

func (f *Flatpak) ListInstalled(ctx context.Context) ([]string, error) {
	out, err := runChecked(ctx, "flatpak", "list", "--app", "--columns=application")
	if err != nil {
		return nil, err
	}
	return splitLines(out.stdout), nil
}

// CheckDependencies always reports none; flatpak apps share runtimes, not
// reverse dependencies.
func (f *Flatpak) CheckDependencies(context.Context, string) ([]string, error) {
	return nil, nil
}

func (f *Flatpak) RemovePackages(ctx context.Context, names []string, dryRun bool) error {
	if len(names) == 0 {
		return nil
	}
	prefix := []string{"uninstall", "-y"}
	if dryRun {
		prefix = append(prefix, "--dry-run")
	}
	_, err := runChecked(ctx, "flatpak", removeArgs(prefix, names)...)
	if err == nil {
		logger.Info("packages removed", "manager", f.Name(), "packages", names, "dryRun", dryRun)
	}
	return err
}

// ListWithSizes falls back to zero sizes when the size column is unsupported.
func (f *Flatpak) ListWithSizes(ctx context.Context) ([]Package, error) {
	out, err := runChecked(ctx, "flatpak", "list", "--app", "--columns=application,size")
	if err == nil {
		if pkgs := parseFlatpakSizes(out.stdout); len(pkgs) > 0 {
			return pkgs, nil
		}
	}

	names, err := f.ListInstalled(ctx)
	if err != nil {
		return nil, err
	}
	pkgs := make([]Package, 0, len(names))
	for _, n := range names {
		pkgs = append(pkgs, Package{Name: n})
	}
	return pkgs, nil
}

func parseFlatpakSizes(output string) []Package {
	var pkgs []Package
	for _, line := range splitLines(output) {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		var size uint64
		if len(fields) > 1 {
			size, _ = utils.ParseSize(strings.Join(fields[1:], " "))
		}
		pkgs = append(pkgs, Package{Name: fields[0], Size: size})
	}
	return pkgs
}

type Snap struct {
	snapsDir string
}

func NewSnap() *Snap { return &Snap{snapsDir: "/var/lib/snapd/snaps"} }

func (s *Snap) Name() string { return "snap" }

func (s *Snap) Available() bool { return commandAvailable("snap") }

func (s *Snap) Version(ctx context.Context) (string, error) {
	return versionOf(ctx, "snap", "version")
}

func (s *Snap) ListInstalled(ctx context.Context) ([]string, error) {
	pkgs, err := s.ListWithSizes(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(pkgs))
	for i, p := range pkgs {
		names[i] = p.Name
	}
	return names, nil
}

func (s *Snap) CheckDependencies(context.Context, string) ([]string, error) {
	return nil, nil
}

func (s *Snap) RemovePackages(ctx context.Context, names []string, dryRun bool) error {
	if len(names) == 0 {
		return nil
	}
	if dryRun {
		logger.Info("dry run: would remove", "manager", s.Name(), "packages", names)
		return nil
	}
	_, err := runChecked(ctx, "snap", removeArgs([]string{"remove"}, names)...)
	if err == nil {
		logger.Info("packages removed", "manager", s.Name(), "packages", names)
	}
	return err
}

// ListWithSizes sizes each snap by its squashfs image for the installed revision.
func (s *Snap) ListWithSizes(ctx context.Context) ([]Package, error) {
	out, err := runChecked(ctx, "snap", "list")
	if err != nil {
		return nil, err
	}

	lines := splitLines(out.stdout)
	var pkgs []Package
	for i, line := range lines {
		if i == 0 {
			continue // header
		}
		fields := strings.Fields(line)
		if len(fields) == 0 || fields[0] == "Name" {
			continue
		}
		pkg := Package{Name: fields[0]}
		if len(fields) >= 3 {
			image := fmt.Sprintf("%s/%s_%s.snap", s.snapsDir, fields[0], fields[2])
			if info, err := os.Stat(image); err == nil {
				pkg.Size = uint64(info.Size())
			}
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs, nil
}
