// Package flock provides advisory file locks used to keep two notesync
// processes from syncing the same repository at once.
//
// Usage:
//
//	lock, err := flock.Acquire(filepath.Join(repo, ".git", "notesync.lock"))
//	if err != nil {
//	    // another sync holds the repository
//	}
//	defer lock.Release()
package flock
