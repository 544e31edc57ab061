package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cleared-dev/extracto/internal/config"
	"github.com/cleared-dev/extracto/internal/sheet"
)

// Reader loads a spreadsheet file into a sheet.Grid.
type Reader interface {
	Read(path string) (*sheet.Grid, error)
	Format() string
}

// Registry holds readers by format and maps file extensions to them.
type Registry struct {
	readers map[string]Reader
	exts    map[string]string
}

// FileInfo describes a spreadsheet in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty reader registry.
func NewRegistry() *Registry {
	return &Registry{
		readers: make(map[string]Reader),
		exts:    make(map[string]string),
	}
}

// Register adds a reader for the given extensions. Panics on duplicate
// format or extension.
func (r *Registry) Register(rd Reader, exts ...string) {
	key := strings.ToLower(rd.Format())
	if _, ok := r.readers[key]; ok {
		panic("duplicate reader format: " + key)
	}
	r.readers[key] = rd
	for _, ext := range exts {
		ext = strings.ToLower(ext)
		if _, ok := r.exts[ext]; ok {
			panic("duplicate reader extension: " + ext)
		}
		r.exts[ext] = key
	}
}

// Get returns the reader for format, or nil.
func (r *Registry) Get(format string) Reader {
	return r.readers[strings.ToLower(format)]
}

// ForPath returns the reader registered for path's extension.
func (r *Registry) ForPath(path string) (Reader, error) {
	ext := strings.ToLower(filepath.Ext(path))
	format, ok := r.exts[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported file type %q", ext)
	}
	return r.readers[format], nil
}

// Supports reports whether path has a registered extension.
func (r *Registry) Supports(path string) bool {
	_, ok := r.exts[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Extensions returns the registered extensions, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.exts))
	for ext := range r.exts {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// DefaultRegistry returns a registry with all built-in readers configured
// from cfg.
func DefaultRegistry(cfg *config.Config) *Registry {
	r := NewRegistry()
	r.Register(&XLSXReader{Sheet: cfg.Input.Sheet}, ".xlsx", ".xlsm")
	r.Register(&XLSReader{}, ".xls")
	r.Register(&CSVReader{Comma: cfg.CSVComma(), Encoding: cfg.Input.CSVEncoding}, ".csv")
	return r
}

// ImportDir is the subdirectory for files waiting to be normalized.
const ImportDir = "import"

// ProcessedDir is the subdirectory for files already normalized.
const ProcessedDir = "import/processed"

// Scan returns the files in <repoRoot>/import/ that reg can read, sorted
// by name.
func Scan(repoRoot string, reg *Registry) ([]FileInfo, error) {
	dir := filepath.Join(repoRoot, ImportDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), "~$") {
			continue
		}
		if !reg.Supports(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(repoRoot, fileName string) error {
	src := filepath.Join(repoRoot, ImportDir, fileName)
	dstDir := filepath.Join(repoRoot, ProcessedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
