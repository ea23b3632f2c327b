package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/doeshing/drupai-go/internal/domain"
	"github.com/doeshing/drupai-go/internal/intent"
)

// UploadMedia pushes a local file into the backend's media library.
type UploadMedia struct {
	FilePath string
	AltText  string
	Title    string

	deps *Deps
}

func newUploadMedia(in domain.Intent, deps *Deps) Command {
	cmd := &UploadMedia{deps: deps}
	cmd.FilePath, _ = in.Params.String("file_path")
	cmd.AltText, _ = in.Params.String("alt_text")
	cmd.Title, _ = in.Params.String("title")
	return cmd
}

func (c *UploadMedia) Validate() error {
	if c.FilePath == "" {
		return missingParam("file_path")
	}
	return nil
}

func (c *UploadMedia) Execute(ctx context.Context) domain.Result {
	info, err := os.Stat(c.FilePath)
	if err != nil {
		return domain.NewFailure(domain.NotFoundFailure, "file not found: %s", c.FilePath).
			WithSuggestions("check the path and try again").Result()
	}
	if info.IsDir() {
		return domain.NewFailure(domain.ValidationFailure, "%s is a directory, not a file", c.FilePath).Result()
	}

	title := c.Title
	if title == "" {
		title = titleFromFilename(c.FilePath)
	}
	alt := c.AltText
	if alt == "" {
		alt = title
	}

	ref, err := c.deps.Content.UploadMedia(ctx, c.FilePath, alt, title)
	if err != nil {
		return domain.ResultFromError(err)
	}

	return domain.OK(
		fmt.Sprintf("Uploaded %s (%s)", ref.Filename, humanize.Bytes(uint64(info.Size()))),
		map[string]any{
			"media_id": ref.ID,
			"uuid":     ref.UUID,
			"filename": ref.Filename,
			"size":     info.Size(),
			"alt_text": alt,
		},
	)
}

func titleFromFilename(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return intent.TitleFromTopic(name)
}
