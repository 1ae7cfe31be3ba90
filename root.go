package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultRootName is the assets directory used by DefaultRoot, relative to
// the working directory.
const DefaultRootName = "Assets"

// Identity is the normalized path of an asset relative to its Root.
// It is the cache key and the logical identity of every handle.
type Identity string

// String returns the identity as a slash-separated path.
func (id Identity) String() string { return string(id) }

// Normalize converts a user supplied name into an Identity.
//
// Names are NFC-normalized, backslashes become slashes and the result is
// cleaned, so "sprites\\tree.png", "./sprites/tree.png" and
// "sprites/x/../tree.png" all yield "sprites/tree.png". Empty names,
// absolute paths and names escaping the root return ErrInvalidName.
func Normalize(name string) (Identity, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if filepath.IsAbs(name) || filepath.VolumeName(name) != "" {
		return "", fmt.Errorf("%w: %q is absolute", ErrInvalidName, name)
	}

	s := norm.NFC.String(name)
	s = strings.ReplaceAll(s, `\`, "/")
	if path.IsAbs(s) {
		return "", fmt.Errorf("%w: %q is absolute", ErrInvalidName, name)
	}

	s = path.Clean(s)
	if s == "." || s == ".." || strings.HasPrefix(s, "../") || !fs.ValidPath(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return Identity(s), nil
}

// Root is a directory of assets. All identities are resolved against it.
//
// Root only reads; it is safe for concurrent use when its fs.FS is.
type Root struct {
	dir  string
	fsys fs.FS
}

// NewRoot returns a Root reading from the OS directory dir.
func NewRoot(dir string) *Root {
	return &Root{dir: dir, fsys: os.DirFS(dir)}
}

// NewRootFS returns a Root reading from fsys. The dir is reported by Dir and
// Path only; it need not exist on disk.
func NewRootFS(fsys fs.FS, dir string) *Root {
	return &Root{dir: dir, fsys: fsys}
}

// DefaultRoot returns the DefaultRootName directory under the working
// directory. If the working directory cannot be determined the relative path
// is used.
func DefaultRoot() *Root {
	wd, err := os.Getwd()
	if err != nil {
		return NewRoot(DefaultRootName)
	}
	return NewRoot(filepath.Join(wd, DefaultRootName))
}

// Dir returns the directory the root was created with.
func (r *Root) Dir() string { return r.dir }

// FS returns the file system backing the root.
func (r *Root) FS() fs.FS { return r.fsys }

// Identity normalizes name. It is equivalent to Normalize.
func (r *Root) Identity(name string) (Identity, error) {
	return Normalize(name)
}

// Path returns the OS path of name under the root directory.
func (r *Root) Path(name string) (string, error) {
	id, err := Normalize(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(r.dir, filepath.FromSlash(string(id))), nil
}

// Exists reports whether name resolves to a regular file under the root.
// It never loads or decodes the file.
func (r *Root) Exists(name string) bool {
	id, err := Normalize(name)
	if err != nil {
		return false
	}
	return r.exists(id)
}

func (r *Root) exists(id Identity) bool {
	info, err := fs.Stat(r.fsys, string(id))
	return err == nil && !info.IsDir()
}

// ReadFile returns the raw bytes of the asset id.
// A missing file returns an error matching ErrNotFound.
func (r *Root) ReadFile(id Identity) ([]byte, error) {
	data, err := fs.ReadFile(r.fsys, string(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("assets: read %s: %w", id, err)
	}
	return data, nil
}

// Walk calls fn for every regular file under the root, in lexical order.
func (r *Root) Walk(fn func(id Identity) error) error {
	return fs.WalkDir(r.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		return fn(Identity(norm.NFC.String(p)))
	})
}
