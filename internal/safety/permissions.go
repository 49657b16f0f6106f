package safety

import (
	"path/filepath"

	"github.com/RiPetitor/rCleaner/internal/utils"
)

var (
	isRoot  = utils.IsRoot
	homeDir = utils.HomeDir
)

var userWritableRoots = []string{"/tmp", "/var/tmp"}

// CanCleanPath reports whether the current user may remove path.
// Root may clean anything; others only temp dirs and their home.
func CanCleanPath(path string) bool {
	if isRoot() {
		return true
	}
	path = filepath.Clean(utils.ExpandPath(path))
	for _, root := range userWritableRoots {
		if utils.IsWithin(path, root) {
			return true
		}
	}
	if home := homeDir(); home != "" && utils.IsWithin(path, home) {
		return true
	}
	return false
}
