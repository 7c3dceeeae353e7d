package artifacts

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"picbox/internal/config"
	"picbox/internal/logging"
)

var (
	// ErrUnsupportedFormat indicates the upload stream could not be decoded
	// as an image.
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrExtensionRejected indicates the supplied extension is not in the
	// configured allow-list.
	ErrExtensionRejected = errors.New("file extension not allowed")
	// ErrUnsafeName indicates an artifact name that is not a bare generated
	// filename. Artifact names never contain path separators.
	ErrUnsafeName = errors.New("unsafe artifact name")
)

// Stored names the pair of files produced for one upload.
type Stored struct {
	Original  string
	Thumbnail string
}

// Manager owns the files in the content store directory: originals named
// <uuid>.<ext> and thumbnails named <uuid>.thumb.<ext>, all in one flat
// directory. It never touches the database.
type Manager struct {
	root      string
	maxWidth  int
	maxHeight int
	allowed   map[string]struct{}
	logger    *slog.Logger
}

// NewManager creates the content store directory if needed and returns a
// manager bound to it.
func NewManager(cfg *config.Config, logger *slog.Logger) (*Manager, error) {
	root := strings.TrimSpace(cfg.Paths.StoreDir)
	if root == "" {
		return nil, errors.New("content store directory is not configured")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create content store directory %q: %w", root, err)
	}

	allowed := make(map[string]struct{}, len(cfg.Catalog.AllowedExtensions))
	for _, ext := range cfg.Catalog.AllowedExtensions {
		allowed[ext] = struct{}{}
	}

	return &Manager{
		root:      root,
		maxWidth:  cfg.Thumbnails.MaxWidth,
		maxHeight: cfg.Thumbnails.MaxHeight,
		allowed:   allowed,
		logger:    logging.NewComponentLogger(logger, "artifacts"),
	}, nil
}

// Root returns the content store directory.
func (m *Manager) Root() string {
	return m.root
}

// Store reads the source stream, writes it verbatim as a new original file,
// and derives a thumbnail alongside it. The returned names are freshly
// generated identifiers, never derived from caller input. Nothing is written
// when the extension is rejected or the stream does not decode.
func (m *Manager) Store(source io.Reader, extension string) (Stored, error) {
	ext := NormalizeExtension(extension)
	if _, ok := m.allowed[ext]; !ok {
		return Stored{}, fmt.Errorf("%w: %q", ErrExtensionRejected, ext)
	}

	data, err := io.ReadAll(source)
	if err != nil {
		return Stored{}, fmt.Errorf("read upload stream: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return Stored{}, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}

	id := uuid.NewString()
	stored := Stored{
		Original:  id + ext,
		Thumbnail: ThumbnailName(id + ext),
	}

	if err := os.WriteFile(m.path(stored.Original), data, 0o644); err != nil {
		return Stored{}, fmt.Errorf("write original: %w", err)
	}
	if err := m.writeThumbnail(img, stored.Thumbnail); err != nil {
		// Never leave a half-stored pair behind.
		if removeErr := os.Remove(m.path(stored.Original)); removeErr != nil {
			m.logger.Error("orphan original left after thumbnail failure",
				logging.String("file", stored.Original),
				logging.Error(removeErr),
			)
		}
		return Stored{}, err
	}

	return stored, nil
}

// Delete removes the named artifacts. Missing files are treated as already
// removed so the operation is idempotent.
func (m *Manager) Delete(names ...string) error {
	var errs []error
	for _, name := range names {
		if name == "" {
			continue
		}
		if err := checkName(name); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := os.Remove(m.path(name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("remove %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Regenerate re-reads a stored original and replaces its thumbnail, returning
// the thumbnail name. A missing original surfaces as fs.ErrNotExist so bulk
// callers can skip it and continue.
func (m *Manager) Regenerate(original string) (string, error) {
	if err := checkName(original); err != nil {
		return "", err
	}

	img, err := imaging.Open(m.path(original), imaging.AutoOrientation(true))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("original %s: %w", original, err)
		}
		return "", fmt.Errorf("%w: decode original %s: %w", ErrUnsupportedFormat, original, err)
	}

	thumbnail := ThumbnailName(original)
	if err := m.writeThumbnail(img, thumbnail); err != nil {
		return "", err
	}
	return thumbnail, nil
}

// Path resolves an artifact name to its location inside the content store,
// rejecting anything that is not a bare filename.
func (m *Manager) Path(name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	return m.path(name), nil
}

func (m *Manager) writeThumbnail(img image.Image, name string) error {
	thumb := imaging.Fit(img, m.maxWidth, m.maxHeight, imaging.Lanczos)
	if err := imaging.Save(thumb, m.path(name)); err != nil {
		return fmt.Errorf("write thumbnail: %w", err)
	}
	return nil
}

func (m *Manager) path(name string) string {
	return filepath.Join(m.root, name)
}

// ThumbnailName derives the thumbnail filename for an original: the ".thumb"
// marker is inserted before the extension.
func ThumbnailName(original string) string {
	ext := filepath.Ext(original)
	return strings.TrimSuffix(original, ext) + ".thumb" + ext
}

// NormalizeExtension lowercases an extension and ensures a leading dot.
func NormalizeExtension(extension string) string {
	ext := strings.ToLower(strings.TrimSpace(extension))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func checkName(name string) error {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrUnsafeName, name)
	}
	return nil
}
