// Package fsid identifies filesystem nodes by device+inode so that
// excluded directories given as paths on the command line can be matched
// against directory entries encountered deep in a recursive walk.
package fsid

import (
	"fmt"
	"os"
	"syscall"
)

// ID is the device/inode pair that uniquely identifies a filesystem node
// on a single machine, standing in for ngp.c's bare ino_t comparison.
type ID struct {
	Dev uint64
	Ino uint64
}

// Of extracts the ID from a FileInfo already obtained via Stat/Lstat.
// ok is false on platforms whose Sys() doesn't expose a *syscall.Stat_t.
func Of(info os.FileInfo) (ID, bool) {
	sys, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return ID{}, false
	}
	return ID{Dev: uint64(sys.Dev), Ino: sys.Ino}, true
}

// FromPath resolves a user-supplied path (as given to -x) to its ID once
// at startup, the way ngp.c's get_inode_from_path does.
func FromPath(path string) (ID, error) {
	info, err := os.Stat(path)
	if err != nil {
		return ID{}, err
	}
	id, ok := Of(info)
	if !ok {
		return ID{}, fmt.Errorf("fsid: cannot resolve identifier for %s", path)
	}
	return id, nil
}
