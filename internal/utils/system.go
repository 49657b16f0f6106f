package utils

import (
	"github.com/shirou/gopsutil/v4/disk"
	"golang.org/x/sys/unix"
)

var (
	geteuid   = unix.Geteuid
	diskUsage = disk.Usage
)

// IsRoot reports whether the process runs with effective uid 0.
func IsRoot() bool {
	return geteuid() == 0
}

// DiskFree returns the free bytes of the filesystem holding path.
func DiskFree(path string) (uint64, error) {
	usage, err := diskUsage(ExpandPath(path))
	if err != nil {
		return 0, err
	}
	return usage.Free, nil
}

// DiskUsage returns total and used bytes of the filesystem holding path.
func DiskUsage(path string) (total, used uint64, err error) {
	usage, err := diskUsage(ExpandPath(path))
	if err != nil {
		return 0, 0, err
	}
	return usage.Total, usage.Used, nil
}
