package pkgmgr

import (
	"context"
	"strings"

	"github.com/RiPetitor/rCleaner/internal/logger"
)

type Pacman struct{}

func NewPacman() *Pacman { return &Pacman{} }

func (p *Pacman) Name() string { return "pacman" }

func (p *Pacman) Available() bool { return commandAvailable("pacman") }

func (p *Pacman) Version(ctx context.Context) (string, error) {
	return versionOf(ctx, "pacman", "-V")
}

func (p *Pacman) ListInstalled(ctx context.Context) ([]string, error) {
	out, err := runChecked(ctx, "pacman", "-Qq")
	if err != nil {
		return nil, err
	}
	return splitLines(out.stdout), nil
}

func (p *Pacman) CheckDependencies(ctx context.Context, pkg string) ([]string, error) {
	if !p.Available() {
		return nil, nil
	}
	out, err := runChecked(ctx, "pacman", "-Qi", pkg)
	if err != nil {
		return nil, err
	}
	return parsePacmanRequiredBy(out.stdout), nil
}

func (p *Pacman) RemovePackages(ctx context.Context, names []string, dryRun bool) error {
	if len(names) == 0 {
		return nil
	}
	if err := ensureNoDependents(ctx, p, names); err != nil {
		return err
	}
	if dryRun {
		logger.Info("dry run: would remove", "manager", p.Name(), "packages", names)
		return nil
	}
	_, err := runChecked(ctx, "pacman", removeArgs([]string{"-R", "--noconfirm"}, names)...)
	if err == nil {
		logger.Info("packages removed", "manager", p.Name(), "packages", names)
	}
	return err
}

// Orphans lists packages installed as dependencies that nothing requires.
func (p *Pacman) Orphans(ctx context.Context) ([]string, error) {
	out, err := run(ctx, "pacman", "-Qtdq")
	if err != nil {
		return nil, err
	}
	// pacman exits 1 when there are no orphans
	if !out.success && strings.TrimSpace(out.stdout) == "" {
		return nil, nil
	}
	return splitLines(out.stdout), nil
}

func parsePacmanRequiredBy(output string) []string {
	for _, line := range splitLines(output) {
		if !strings.HasPrefix(line, "Required By") {
			continue
		}
		_, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil
		}
		value = strings.TrimSpace(value)
		if value == "" || value == "None" {
			return nil
		}
		return strings.Fields(value)
	}
	return nil
}
