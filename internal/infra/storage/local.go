package storage

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"local-deals/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrUnsupportedType = errs.Mark(errs.New("only image uploads are allowed"), errs.ErrDomainValidation)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// LocalStore writes uploads under dir and serves them from publicPrefix.
type LocalStore struct {
	dir          string
	publicPrefix string
}

func NewLocalStore(dir, publicPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.Wrapf(err, "create upload dir %s", dir)
	}
	return &LocalStore{dir: dir, publicPrefix: strings.TrimRight(publicPrefix, "/")}, nil
}

func (s *LocalStore) Dir() string { return s.dir }

// SaveImage stores r under a random name and returns its public URL path.
func (s *LocalStore) SaveImage(ctx context.Context, contentType string, r io.Reader) (string, error) {
	ext, ok := imageExtensions[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return "", ErrUnsupportedType
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", errs.Wrap(err, "create upload file")
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", errs.Wrap(err, "write upload file")
	}
	if err := f.Close(); err != nil {
		return "", errs.Wrap(err, "close upload file")
	}
	return path.Join(s.publicPrefix, name), nil
}
