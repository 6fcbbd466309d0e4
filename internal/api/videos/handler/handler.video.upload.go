package videoshdl

import (
	"os"
	"path/filepath"

	"github.com/Kapilrajreddy/youtube-api/internal/common"
	"github.com/Kapilrajreddy/youtube-api/internal/global"

	"github.com/gofiber/fiber/v3"
)

const defaultUploadDir = "./public/temp"

// uploadDir creates a per-request directory under UPLOAD_DIR. The caller removes it.
func uploadDir() (string, error) {
	root := defaultUploadDir
	if cfg := global.MongoDB_ServerConfig; cfg != nil && cfg.UploadDir != "" {
		root = cfg.UploadDir
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", common.NewInternalError("", err)
	}
	dir, err := os.MkdirTemp(root, "upload-")
	if err != nil {
		return "", common.NewInternalError("", err)
	}
	return dir, nil
}

// saveFormFile stores the multipart file field in dir. A missing field yields "".
func saveFormFile(c fiber.Ctx, field, dir string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil {
		return "", nil
	}
	name := filepath.Base(fh.Filename)
	if name == "." || name == string(filepath.Separator) {
		name = field
	}
	path := filepath.Join(dir, name)
	if err := c.SaveFile(fh, path); err != nil {
		return "", common.NewInternalError("failed to store upload", err)
	}
	return path, nil
}
