package media

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// ObjectKey builds "<kind>/<slug(basename)>-<uuid><ext>".
func ObjectKey(kind ResourceKind, localPath string) string {
	base := filepath.Base(localPath)
	ext := strings.ToLower(filepath.Ext(base))
	name := slug.Make(strings.TrimSuffix(base, filepath.Ext(base)))
	if name == "" {
		name = "file"
	}
	if len(name) > 60 {
		name = strings.Trim(name[:60], "-")
	}
	return string(kind) + "/" + name + "-" + uuid.NewString() + ext
}
