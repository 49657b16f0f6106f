package pkgmgr

import (
	"context"
	"strings"

	"github.com/RiPetitor/rCleaner/internal/logger"
	"github.com/RiPetitor/rCleaner/internal/utils"
)

// Image is a container image reference (repository:tag) and its size.
type Image struct {
	Ref  string
	Size uint64
}

// Runtime drives a docker-compatible CLI (docker, podman).
type Runtime struct {
	name string
}

func NewRuntime(name string) *Runtime { return &Runtime{name: name} }

// Runtimes returns the container runtimes we know how to drive.
func Runtimes() []*Runtime {
	return []*Runtime{NewRuntime("docker"), NewRuntime("podman")}
}

func (r *Runtime) Name() string { return r.name }

func (r *Runtime) Available() bool { return commandAvailable(r.name) }

func (r *Runtime) ListImages(ctx context.Context) ([]Image, error) {
	out, err := runChecked(ctx, r.name, "images", "--format", "{{.Repository}}:{{.Tag}}\t{{.Size}}")
	if err != nil {
		return nil, err
	}
	return parseImages(out.stdout), nil
}

func (r *Runtime) RemoveImages(ctx context.Context, refs []string, dryRun bool) error {
	if len(refs) == 0 {
		return nil
	}
	if dryRun {
		logger.Info("dry run: would remove images", "runtime", r.name, "images", refs)
		return nil
	}
	_, err := runChecked(ctx, r.name, removeArgs([]string{"rmi", "-f"}, refs)...)
	if err == nil {
		logger.Info("images removed", "runtime", r.name, "images", refs)
	}
	return err
}

func parseImages(output string) []Image {
	var images []Image
	for _, line := range splitLines(output) {
		ref, sizeText, _ := strings.Cut(line, "\t")
		ref = strings.TrimSpace(ref)
		if ref == "" || ref == "<none>:<none>" {
			continue
		}
		size, _ := utils.ParseSize(sizeText)
		images = append(images, Image{Ref: ref, Size: size})
	}
	return images
}
