package naming

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrTooManyDuplicates is returned when every suffix up to the configured bound is taken.
var ErrTooManyDuplicates = errors.New("too many duplicate names")

// DirState answers whether a name is currently taken in a directory.
type DirState interface {
	Exists(name string) (bool, error)
}

// LiveDir queries the filesystem on every call.
type LiveDir struct {
	Dir string
}

// Exists uses Lstat so a dangling symlink still counts as taken. Errors other
// than "not exist" (name too long, permission denied) are returned as is.
func (d LiveDir) Exists(name string) (bool, error) {
	_, err := os.Lstat(filepath.Join(d.Dir, name))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// PlannedDir overlays renames that were planned but not applied on top of a
// base state. Dry runs use it so later files see the names claimed by earlier ones.
type PlannedDir struct {
	base    DirState
	taken   map[string]bool
	vacated map[string]bool
}

// NewPlannedDir creates an empty overlay over base.
func NewPlannedDir(base DirState) *PlannedDir {
	return &PlannedDir{
		base:    base,
		taken:   make(map[string]bool),
		vacated: make(map[string]bool),
	}
}

// Plan records that from will be renamed to to.
func (p *PlannedDir) Plan(from, to string) {
	if from == to {
		return
	}
	delete(p.taken, from)
	p.vacated[from] = true
	delete(p.vacated, to)
	p.taken[to] = true
}

func (p *PlannedDir) Exists(name string) (bool, error) {
	if p.taken[name] {
		return true, nil
	}
	if p.vacated[name] {
		return false, nil
	}
	return p.base.Exists(name)
}

// ResolveDuplicate returns the name the file currently called current should
// be renamed to so that it does not overwrite another entry. A candidate equal
// to current is returned unchanged since a file never collides with itself.
// Otherwise "stem (N)ext" is tried for N = 1..maxSuffix. A name that cannot
// be checked stops the search with that error, not ErrTooManyDuplicates.
func ResolveDuplicate(state DirState, current, candidate string, maxSuffix int) (string, error) {
	free, err := isFree(state, current, candidate)
	if err != nil {
		return "", err
	}
	if free {
		return candidate, nil
	}

	stem, ext := SplitExt(candidate)
	for n := 1; n <= maxSuffix; n++ {
		next := fmt.Sprintf("%s (%d)%s", stem, n, ext)
		free, err = isFree(state, current, next)
		if err != nil {
			return "", err
		}
		if free {
			return next, nil
		}
	}
	return "", fmt.Errorf("%w: %q has no free slot up to (%d)", ErrTooManyDuplicates, candidate, maxSuffix)
}

func isFree(state DirState, current, name string) (bool, error) {
	if name == current {
		return true, nil
	}
	taken, err := state.Exists(name)
	if err != nil {
		return false, fmt.Errorf("failed to check %q: %w", name, err)
	}
	return !taken, nil
}
