package productcontroller

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// uploadRoot resolves the local directory that gin serves at /uploads.
func uploadRoot() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "./uploads"
}

// saveUploadedImages writes every "images" file from the multipart form under
// uploadRoot()/<subdir> and returns their public URLs.
func saveUploadedImages(c *gin.Context, subdir string) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil // no multipart body, nothing to save
	}
	files := form.File["images"]
	if len(files) == 0 {
		return nil, nil
	}

	saveDir := filepath.Join(uploadRoot(), subdir)
	if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
		return nil, err
	}

	var urls []string
	for _, file := range files {
		ext := filepath.Ext(file.Filename)
		base := strings.TrimSuffix(filepath.Base(file.Filename), ext)
		base = strings.ReplaceAll(base, " ", "_")

		filename := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), base, ext)
		if err := c.SaveUploadedFile(file, filepath.Join(saveDir, filename)); err != nil {
			return nil, err
		}
		urls = append(urls, fmt.Sprintf("/uploads/%s/%s", subdir, filename))
	}
	return urls, nil
}
