package services

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"
)

// DefaultMaxFileBytes caps how much file content is read and sent to the
// generation endpoint. Anything larger is treated as unreadable.
const DefaultMaxFileBytes int64 = 1 << 20

// FileClassifier decides whether a file's content is textual and worth
// summarizing, so binary payloads never reach the remote service.
type FileClassifier struct {
	maxBytes int64
}

func NewFileClassifier(maxBytes int64) FileClassifier {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFileBytes
	}
	return FileClassifier{maxBytes: maxBytes}
}

// Classify reads the file and reports whether it is summarizable text.
// A false readable flag with a nil error means the file was rejected by
// policy (too large, NUL bytes, not valid UTF-8); a non-nil error means the
// filesystem refused the read. Either way the caller records the file as
// unreadable rather than failing the walk.
func (c FileClassifier) Classify(path string) (content string, readable bool, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", false, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > c.maxBytes {
		return "", false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", path, err)
	}
	if bytes.IndexByte(data, 0) >= 0 || !utf8.Valid(data) {
		return "", false, nil
	}
	return string(data), true, nil
}
