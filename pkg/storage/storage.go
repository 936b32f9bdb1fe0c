package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// URLPrefix is where the storage root is served over HTTP.
const URLPrefix = "/uploads"

var (
	ErrUnsupportedType = errors.New("unsupported content type")
	ErrTooLarge        = errors.New("file exceeds size limit")
	ErrNotLocal        = errors.New("url does not point to local storage")
)

// Kind selects the subdirectory a file lands in.
type Kind string

const (
	KindPDF   Kind = "pdfs"
	KindImage Kind = "images"
)

// Accepts reports whether the declared content type is allowed for the kind.
func (k Kind) Accepts(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	switch k {
	case KindPDF:
		return ct == "application/pdf"
	case KindImage:
		return strings.HasPrefix(ct, "image/")
	}
	return false
}

// StoredFile describes a file written to storage.
type StoredFile struct {
	Filename     string
	OriginalName string
	Size         int64
	URL          string
}

// FileInfo describes a file already present in storage.
type FileInfo struct {
	URL     string
	ModTime time.Time
}

// LocalStorage keeps uploads on the local filesystem.
type LocalStorage struct {
	root    string
	maxSize int64
}

// NewLocalStorage creates the kind subdirectories under root.
func NewLocalStorage(root string, maxSize int64) (*LocalStorage, error) {
	for _, k := range []Kind{KindPDF, KindImage} {
		if err := os.MkdirAll(filepath.Join(root, string(k)), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload dir: %w", err)
		}
	}
	return &LocalStorage{root: root, maxSize: maxSize}, nil
}

// Root is the directory served at URLPrefix.
func (s *LocalStorage) Root() string {
	return s.root
}

// MaxSize is the per-file byte limit; zero means unlimited.
func (s *LocalStorage) MaxSize() int64 {
	return s.maxSize
}

// Save writes r under the kind directory with a generated name of the form
// <field>-<uuid><ext>. Partially written files are removed on failure.
func (s *LocalStorage) Save(kind Kind, field, originalName string, r io.Reader) (*StoredFile, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	name := fmt.Sprintf("%s-%s%s", field, uuid.New().String(), ext)
	full := filepath.Join(s.root, string(kind), name)

	dst, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	src := r
	if s.maxSize > 0 {
		src = io.LimitReader(r, s.maxSize+1)
	}
	n, err := io.Copy(dst, src)
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && s.maxSize > 0 && n > s.maxSize {
		err = ErrTooLarge
	}
	if err != nil {
		_ = os.Remove(full)
		return nil, err
	}

	return &StoredFile{
		Filename:     name,
		OriginalName: originalName,
		Size:         n,
		URL:          path.Join(URLPrefix, string(kind), name),
	}, nil
}

// Delete removes the file a storage URL points to. Missing files are not an error.
func (s *LocalStorage) Delete(url string) error {
	full, err := s.resolve(url)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// IsLocal reports whether url was produced by this storage.
func (s *LocalStorage) IsLocal(url string) bool {
	_, err := s.resolve(url)
	return err == nil
}

// List returns every stored file of the given kind.
func (s *LocalStorage) List(kind Kind) ([]FileInfo, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, string(kind)))
	if err != nil {
		return nil, err
	}
	files := make([]FileInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			URL:     path.Join(URLPrefix, string(kind), e.Name()),
			ModTime: info.ModTime(),
		})
	}
	return files, nil
}

// resolve maps /uploads/<kind>/<name> to a path inside root.
func (s *LocalStorage) resolve(url string) (string, error) {
	rest, ok := strings.CutPrefix(url, URLPrefix+"/")
	if !ok {
		return "", ErrNotLocal
	}
	dir, name, ok := strings.Cut(rest, "/")
	if !ok || name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", ErrNotLocal
	}
	switch Kind(dir) {
	case KindPDF, KindImage:
	default:
		return "", ErrNotLocal
	}
	return filepath.Join(s.root, dir, name), nil
}
