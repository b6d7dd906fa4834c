package publish

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// DirPublisher writes documents below a local directory.
type DirPublisher struct {
	dir string
}

// NewDirPublisher creates a DirPublisher, creating dir if needed.
func NewDirPublisher(dir string) (*DirPublisher, error) {
	// Ensure directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &DirPublisher{dir: dir}, nil
}

// Publish writes r to dir/name through a temp file so readers never see a
// partial document. It returns the file path.
func (p *DirPublisher) Publish(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name, err := cleanName(name)
	if err != nil {
		return "", err
	}

	dst := filepath.Join(p.dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}

	f, err := os.CreateTemp(filepath.Dir(dst), ".publish-*")
	if err != nil {
		return "", err
	}
	tmp := f.Name()

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return "", err
	}
	return dst, nil
}
