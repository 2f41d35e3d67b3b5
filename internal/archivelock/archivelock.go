// Package archivelock provides an advisory, per-archive-directory lock
// used to keep a build from writing into a directory a search process (or
// another build) currently holds open (SPEC_FULL.md §4, grounded on
// libuat/named_mutex.hpp's intent — a single named mutex scoped to one
// archive). Unlike the original's named semaphore, this uses flock(2) on a
// sentinel file inside the archive directory, the idiomatic POSIX
// equivalent and the one yellowstone-faithful itself reaches for via
// golang.org/x/sys/unix.
package archivelock

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/wolfpld/usenetarchive-sub002/internal/archiveerrors"
)

const lockFileName = ".uat.lock"

// Lock holds an exclusive or shared advisory lock on an archive directory.
// The zero value is not usable; construct with Acquire.
type Lock struct {
	f *os.File
}

// Acquire opens (creating if necessary) the lock sentinel file under dir
// and takes a non-blocking flock. exclusive distinguishes a writer (build)
// from a reader (search), matching flock's LOCK_EX/LOCK_SH distinction.
func Acquire(dir string, exclusive bool) (*Lock, error) {
	path := filepath.Join(dir, lockFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, archiveerrors.NewBuildError("archivelock open", err)
	}

	op := unix.LOCK_SH | unix.LOCK_NB
	if exclusive {
		op = unix.LOCK_EX | unix.LOCK_NB
	}
	if err := unix.Flock(int(f.Fd()), op); err != nil {
		f.Close()
		return nil, archiveerrors.NewBuildError("archivelock flock", fmt.Errorf("%s is held by another process: %w", dir, err))
	}
	return &Lock{f: f}, nil
}

// Release drops the lock and closes the sentinel file handle.
func (l *Lock) Release() error {
	if l == nil || l.f == nil {
		return nil
	}
	if err := unix.Flock(int(l.f.Fd()), unix.LOCK_UN); err != nil {
		l.f.Close()
		return err
	}
	return l.f.Close()
}
