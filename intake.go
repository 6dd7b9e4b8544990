package main

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/hajimehoshi/ebiten/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/maruel/natural"
	"github.com/nwaples/rardecode"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// MockSource identifies one displayable mock: a plain file, an entry inside a
// mock bundle (zip/rar/7z archive), or raw bytes handed over by a drop.
type MockSource struct {
	Path        string // file path, or archive:entry for bundle entries
	ArchivePath string // empty for regular files and drops
	EntryPath   string // empty for regular files and drops
	Data        []byte // non-nil for in-memory drops; Path is a display name then
}

// cacheKey is the identity of the decoded image in the importer's cache.
func (s MockSource) cacheKey() string {
	if s.Data != nil {
		return "drop:" + s.Path
	}
	return s.Path
}

// displayName is the short name shown in the UI and recorded in history.
func (s MockSource) displayName() string {
	if s.EntryPath != "" {
		return filepath.Base(s.EntryPath)
	}
	return filepath.Base(s.Path)
}

// persistentPath is the path recorded for restart restore, empty for
// in-memory drops that have no stable location.
func (s MockSource) persistentPath() string {
	if s.Data != nil {
		return ""
	}
	return s.Path
}

// readBytes resolves the source to its raw image bytes.
func (s MockSource) readBytes() ([]byte, error) {
	if s.Data != nil {
		return s.Data, nil
	}
	if s.ArchivePath == "" {
		return os.ReadFile(s.Path)
	}
	ext := strings.ToLower(filepath.Ext(s.ArchivePath))
	switch ext {
	case ".zip":
		return readZipEntry(s.ArchivePath, s.EntryPath)
	case ".rar":
		return readRarEntry(s.ArchivePath, s.EntryPath)
	case ".7z":
		return read7zEntry(s.ArchivePath, s.EntryPath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", ext)
	}
}

// SelectedImage is the mock currently loaded for display. The GPU image is a
// transient, process-local resource owned by the Importer; release it through
// Importer.Release (or ReleaseAll) when the selection is replaced or cleared.
type SelectedImage struct {
	Name       string
	Bytes      []byte
	SourcePath string
	Image      *ebiten.Image

	cacheKey string
}

// Importer resolves user-provided mocks into SelectedImages and keeps a
// bounded cache of decoded images so cycling through bundle pages does not
// re-decode on every flip. Evicted images are deallocated.
type Importer struct {
	cache *lru.Cache[string, *ebiten.Image]
}

// NewImporter creates an importer whose cache holds up to cacheSize decoded
// images.
func NewImporter(cacheSize int) *Importer {
	onEvict := func(_ string, img *ebiten.Image) {
		if img != nil {
			img.Deallocate()
		}
	}
	cache, err := lru.NewWithEvict[string, *ebiten.Image](cacheSize, onEvict)
	if err != nil {
		log.Printf("Error: Failed to create mock cache: %v", err)
		cache, _ = lru.NewWithEvict[string, *ebiten.Image](defaultCacheSize, onEvict)
	}
	return &Importer{cache: cache}
}

// ImportSource loads the source's bytes and decodes them into a displayable
// image, reusing the cached decode when available.
func (im *Importer) ImportSource(src MockSource) (*SelectedImage, error) {
	data, err := src.readBytes()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", src.Path, err)
	}

	key := src.cacheKey()
	img, ok := im.cache.Get(key)
	if !ok {
		img, err = decodeMockImage(data, src.displayName())
		if err != nil {
			return nil, err
		}
		im.cache.Add(key, img)
	}

	return &SelectedImage{
		Name:       src.displayName(),
		Bytes:      data,
		SourcePath: src.persistentPath(),
		Image:      img,
		cacheKey:   key,
	}, nil
}

// ImportFromPath imports a mock from a filesystem path.
func (im *Importer) ImportFromPath(path string) (*SelectedImage, error) {
	return im.ImportSource(parseMockSource(path))
}

// ImportFromDrop imports a mock from raw bytes delivered by a drag-and-drop.
func (im *Importer) ImportFromDrop(name string, data []byte) (*SelectedImage, error) {
	return im.ImportSource(MockSource{Path: name, Data: data})
}

// Release drops the selection's decoded image from the cache, deallocating
// the GPU resource via the eviction callback.
func (im *Importer) Release(sel *SelectedImage) {
	if sel == nil {
		return
	}
	im.cache.Remove(sel.cacheKey)
	sel.Image = nil
}

// ReleaseAll releases every cached image. Called when a new bundle replaces
// the current one and at shutdown.
func (im *Importer) ReleaseAll() {
	im.cache.Purge()
}

func decodeMockImage(data []byte, name string) (*ebiten.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %v", name, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

func isSupportedExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".webp", ".bmp", ".gif":
		return true
	default:
		return false
	}
}

func isArchiveExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip", ".rar", ".7z":
		return true
	default:
		return false
	}
}

// parseMockSource turns a persisted path back into a MockSource, recognizing
// the archive:entry composite form used for bundle entries.
func parseMockSource(path string) MockSource {
	lower := strings.ToLower(path)
	for _, marker := range []string{".zip:", ".rar:", ".7z:"} {
		idx := strings.Index(lower, marker)
		if idx < 0 {
			continue
		}
		split := idx + len(marker) - 1
		return MockSource{
			Path:        path,
			ArchivePath: path[:split],
			EntryPath:   path[split+1:],
		}
	}
	return MockSource{Path: path}
}

// Archive entry readers

func readZipEntry(archivePath, entryPath string) ([]byte, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == entryPath {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func readRarEntry(archivePath, entryPath string) ([]byte, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if header.Name == entryPath {
			return io.ReadAll(r)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func read7zEntry(archivePath, entryPath string) ([]byte, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == entryPath {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

// Bundle expansion

func expandZip(archivePath string) ([]MockSource, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var sources []MockSource
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			sources = append(sources, MockSource{
				Path:        archivePath + ":" + f.Name,
				ArchivePath: archivePath,
				EntryPath:   f.Name,
			})
		}
	}
	return sources, nil
}

func expandRar(archivePath string) ([]MockSource, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	var sources []MockSource
	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if !header.IsDir && isSupportedExt(header.Name) {
			sources = append(sources, MockSource{
				Path:        archivePath + ":" + header.Name,
				ArchivePath: archivePath,
				EntryPath:   header.Name,
			})
		}
	}
	return sources, nil
}

func expand7z(archivePath string) ([]MockSource, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var sources []MockSource
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			sources = append(sources, MockSource{
				Path:        archivePath + ":" + f.Name,
				ArchivePath: archivePath,
				EntryPath:   f.Name,
			})
		}
	}
	return sources, nil
}

// expandArchive lists the image entries of a mock bundle.
func expandArchive(archivePath string) ([]MockSource, error) {
	ext := strings.ToLower(filepath.Ext(archivePath))
	switch ext {
	case ".zip":
		return expandZip(archivePath)
	case ".rar":
		return expandRar(archivePath)
	case ".7z":
		return expand7z(archivePath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", ext)
	}
}

// collectMockSources resolves command-line arguments into an ordered mock
// list: plain images as-is, directories walked recursively, archives expanded
// to their image entries. The result is in natural order so page2 sorts
// before page10.
func collectMockSources(args []string) ([]MockSource, error) {
	var list []MockSource

	addPath := func(path string) {
		if isSupportedExt(path) {
			list = append(list, MockSource{Path: path})
		} else if isArchiveExt(path) {
			expanded, err := expandArchive(path)
			if err != nil {
				log.Printf("Error: Failed to expand bundle %s: %v", path, err)
				return
			}
			list = append(list, expanded...)
		}
	}

	for _, p := range args {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			addPath(p)
			continue
		}
		err = filepath.Walk(p, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !fi.IsDir() {
				addPath(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(list, func(i, j int) bool {
		return natural.Less(list[i].Path, list[j].Path)
	})
	return list, nil
}

// Restart restore

// lastImageRecord is the persisted payload for byte-sourced selections.
type lastImageRecord struct {
	Name string `json:"name"`
	Data []byte `json:"data"`
}

// rememberSelection records the active mock under last_image_path (stable
// path sources) or last_image (byte payload) for restart restore. Failures
// are logged; losing the record is not worth interrupting the user.
func rememberSelection(ctx context.Context, store Store, sel *SelectedImage) {
	if sel.SourcePath != "" {
		data, err := json.Marshal(sel.SourcePath)
		if err != nil {
			log.Printf("Error: encoding last image path: %v", err)
			return
		}
		if err := store.Set(ctx, keyLastImagePath, data); err != nil {
			log.Printf("Warning: saving last image path: %v", err)
		}
		if err := store.Remove(ctx, keyLastImage); err != nil {
			log.Printf("Warning: clearing last image payload: %v", err)
		}
		return
	}

	data, err := json.Marshal(lastImageRecord{Name: sel.Name, Data: sel.Bytes})
	if err != nil {
		log.Printf("Error: encoding last image: %v", err)
		return
	}
	if err := store.Set(ctx, keyLastImage, data); err != nil {
		log.Printf("Warning: saving last image: %v", err)
	}
	if err := store.Remove(ctx, keyLastImagePath); err != nil {
		log.Printf("Warning: clearing last image path: %v", err)
	}
}

// forgetSelection removes both restore keys.
func forgetSelection(ctx context.Context, store Store) {
	if err := store.Remove(ctx, keyLastImagePath); err != nil {
		log.Printf("Warning: clearing last image path: %v", err)
	}
	if err := store.Remove(ctx, keyLastImage); err != nil {
		log.Printf("Warning: clearing last image payload: %v", err)
	}
}

// restoreSelection loads the mock recorded by rememberSelection, preferring
// the path form. Returns nil when nothing usable is recorded.
func restoreSelection(ctx context.Context, store Store, im *Importer) *SelectedImage {
	if data, ok, err := store.Get(ctx, keyLastImagePath); err == nil && ok {
		var path string
		if err := json.Unmarshal(data, &path); err != nil {
			log.Printf("Warning: corrupt last image path, ignoring: %v", err)
		} else if sel, err := im.ImportFromPath(path); err != nil {
			log.Printf("Warning: could not restore %s: %v", path, err)
		} else {
			return sel
		}
	} else if err != nil {
		log.Printf("Warning: loading last image path: %v", err)
	}

	if data, ok, err := store.Get(ctx, keyLastImage); err == nil && ok {
		var rec lastImageRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			log.Printf("Warning: corrupt last image payload, ignoring: %v", err)
		} else if sel, err := im.ImportFromDrop(rec.Name, rec.Data); err != nil {
			log.Printf("Warning: could not restore %s: %v", rec.Name, err)
		} else {
			return sel
		}
	} else if err != nil {
		log.Printf("Warning: loading last image: %v", err)
	}

	return nil
}
