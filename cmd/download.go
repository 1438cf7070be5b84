package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/glimt/glimt/internal/fsutil"
	"github.com/glimt/glimt/internal/imaging"
)

// maxFilenameLen caps the prompt-derived part of a download filename.
const maxFilenameLen = 50

// sanitizePrompt turns a prompt into a filename stem: lowercased, stripped
// of everything but ASCII alphanumerics, spaces and hyphens, whitespace
// runs collapsed to single hyphens, truncated to maxFilenameLen.
func sanitizePrompt(prompt string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(prompt) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	name := strings.Join(strings.Fields(b.String()), "-")
	if len(name) > maxFilenameLen {
		name = name[:maxFilenameLen]
	}
	return name
}

// downloadFilename derives the filename for the current image; an empty
// sanitized prompt falls back to a timestamp-based name.
func downloadFilename(prompt, mimeType string) string {
	name := sanitizePrompt(prompt)
	if name == "" {
		name = fmt.Sprintf("image-%d", time.Now().Unix())
	}
	return name + imaging.Ext(mimeType)
}

// saveDownload writes the image to dir (or the working directory) and
// returns the path written.
func saveDownload(dir, prompt, mimeType string, data []byte) (string, error) {
	path := downloadFilename(prompt, mimeType)
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("error creating output folder: %w", err)
		}
		path = filepath.Join(dir, path)
	}
	if err := fsutil.AtomicWriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("error saving image: %w", err)
	}
	return path, nil
}
