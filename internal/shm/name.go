package shm

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// maxNameLen mirrors NAME_MAX on the filesystems we create objects in.
const maxNameLen = 255

// GenerateName returns a fresh collision-resistant object name.
func GenerateName() string {
	return "mirrormap-" + uuid.NewString()
}

// cleanName normalizes a caller-supplied object name. A single leading
// slash is accepted for shm_open familiarity; anything else path-like is
// rejected so the object cannot escape its directory.
func cleanName(name string) (string, error) {
	name = strings.TrimPrefix(name, "/")
	if name == "" || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if strings.ContainsRune(name, '/') {
		return "", fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	if len(name) > maxNameLen {
		return "", fmt.Errorf("%w: %q exceeds %d bytes", ErrInvalidName, name, maxNameLen)
	}
	return name, nil
}
