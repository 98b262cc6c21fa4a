package storage

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// Errors reported to callers; anything else is a storage failure.
var (
	ErrNotImage = errors.New("file is not a supported image type")
	ErrTooLarge = errors.New("file exceeds the maximum allowed size")
)

var imageExts = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// AvatarStore writes avatar images to a directory on disk. Files are named
// by user ID so a re-upload overwrites the previous avatar.
type AvatarStore struct {
	dir      string
	maxBytes int64
}

// NewAvatarStore creates an AvatarStore rooted at dir.
func NewAvatarStore(dir string, maxBytes int64) *AvatarStore {
	return &AvatarStore{dir: dir, maxBytes: maxBytes}
}

// Save validates and stores an avatar, returning the public URL path under
// /uploads/. The content type is sniffed from the file bytes, not trusted
// from the request.
func (s *AvatarStore) Save(userID string, r io.Reader) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	ext, ok := imageExts[contentType]
	if !ok {
		return "", ErrNotImage
	}

	name := userID + ext
	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := f.Write(head); err != nil {
		os.Remove(path)
		return "", err
	}
	// +1 so a stream at exactly the limit is distinguishable from one past it.
	written, err := io.Copy(f, io.LimitReader(r, s.maxBytes-int64(n)+1))
	if err != nil {
		os.Remove(path)
		return "", err
	}
	if int64(n)+written > s.maxBytes {
		os.Remove(path)
		return "", ErrTooLarge
	}

	// A user switching image formats would otherwise leave the old file
	// behind under a different extension.
	for _, other := range imageExts {
		if other != ext {
			os.Remove(filepath.Join(s.dir, userID+other))
		}
	}

	return fmt.Sprintf("/uploads/%s", name), nil
}
