// Package media handles attachments picked from disk and recorded blobs.
package media

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

const mebibyte = 1024 * 1024

// Attachment is a file chosen for sending.
type Attachment struct {
	Name     string
	Size     int64
	SizeText string
	URL      string
	MIMEType string
}

// FormatSize renders a byte count in КБ below 1 MiB and МБ from 1 MiB up,
// with one decimal.
func FormatSize(n int64) string {
	if n < mebibyte {
		return fmt.Sprintf("%.1f КБ", float64(n)/1024)
	}
	return fmt.Sprintf("%.1f МБ", float64(n)/mebibyte)
}

// Pick reads the metadata of the file at path.
func Pick(path string) (*Attachment, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat attachment: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("attachment %q is a directory", path)
	}
	mt, err := mimetype.DetectFile(abs)
	if err != nil {
		return nil, fmt.Errorf("detect mime type: %w", err)
	}
	return &Attachment{
		Name:     info.Name(),
		Size:     info.Size(),
		SizeText: FormatSize(info.Size()),
		URL:      (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(),
		MIMEType: mt.String(),
	}, nil
}
