package naming

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidName is returned for suggestions that cannot name an entry of the directory.
var ErrInvalidName = errors.New("invalid filename")

// SplitExt splits name into stem and extension. The extension starts at the
// last dot; leading dots belong to the stem, so ".bashrc" has no extension.
func SplitExt(name string) (stem, ext string) {
	dot := strings.LastIndexByte(name, '.')
	if dot <= 0 {
		return name, ""
	}
	if strings.Trim(name[:dot], ".") == "" {
		return name, ""
	}
	return name[:dot], name[dot:]
}

// ValidateName rejects names that would leave the directory or are not names at all.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, "/\\\x00"):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	case strings.IndexFunc(name, unicode.IsControl) >= 0:
		return fmt.Errorf("%w: %q contains a control character", ErrInvalidName, name)
	}
	return nil
}
