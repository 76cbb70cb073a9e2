package media

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/vidstream/vidstream/view"
)

// LocalStore keeps uploaded files on the local disk and serves them from
// a static route. Filenames are rewritten to fresh ids so uploads can
// never collide or traverse out of the media directory.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create media directory")
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *LocalStore) Save(ctx context.Context, kind, filename string, r io.Reader) (string, error) {
	name := view.NewID().String() + strings.ToLower(filepath.Ext(filename))

	dir := filepath.Join(s.dir, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", pkgerrors.Wrap(err, "failed to create media subdirectory")
	}

	file, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", pkgerrors.Wrap(err, "failed to create media file")
	}
	defer file.Close()

	if _, err := io.Copy(file, r); err != nil {
		os.Remove(file.Name())
		return "", pkgerrors.Wrap(err, "failed to write media file")
	}

	return s.baseURL + "/" + kind + "/" + name, nil
}

func (s *LocalStore) Remove(ctx context.Context, url string) error {
	rel, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok {
		return pkgerrors.Errorf("url outside media base: %s", url)
	}
	// rel is kind/id.ext produced by Save; reject anything else
	rel = filepath.Clean(rel)
	if strings.Contains(rel, "..") || filepath.IsAbs(rel) {
		return pkgerrors.Errorf("invalid media path: %s", rel)
	}

	err := os.Remove(filepath.Join(s.dir, rel))
	if err != nil && !os.IsNotExist(err) {
		return pkgerrors.Wrap(err, "failed to remove media file")
	}
	return nil
}

// Dir exposes the root for static file serving.
func (s *LocalStore) Dir() string {
	return s.dir
}
