package farmstand

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxUploadSize is the per-file ceiling for image uploads.
const MaxUploadSize = 10 << 20 // 10 MiB

// ImagePathPrefix is the public URL prefix under which stored images are served.
const ImagePathPrefix = "/images/"

var allowedImageExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
}

// AllowedImageName reports whether the client-supplied filename carries an
// extension from the image allow-list. The check is case-insensitive and
// looks at the extension only; the rest of the name is never trusted.
func AllowedImageName(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	_, ok := allowedImageExts[ext]
	return ok
}

// NewImageName returns a fresh storage filename for an upload: a random UUID
// plus the lowercased extension of the original name. The stored name is
// never derived from client content, which rules out collisions and path
// traversal by construction.
func NewImageName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return uuid.NewString() + ext
}

// ImageSrc returns the public-facing path for a stored image name.
func ImageSrc(name string) string {
	return ImagePathPrefix + name
}

// ImageFileName extracts the storage filename from a public src path. Only
// the base name is kept, so a src holding directory components cannot reach
// outside the image directory.
func ImageFileName(src string) (string, error) {
	name := path.Base(src)
	if name == "." || name == "/" || name == "" {
		return "", fmt.Errorf("image file name: %w: empty src", ErrInvalidInput)
	}
	return name, nil
}
