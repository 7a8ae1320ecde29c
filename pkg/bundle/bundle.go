// ABOUTME: Bundled asset resolution
// ABOUTME: Locates sound files across an ordered list of search directories
package bundle

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
)

// ErrAssetNotFound is returned when no search location holds the asset
var ErrAssetNotFound = errors.New("asset not found")

// DefaultSearchPaths lists the primary location first, then the fallbacks.
// The empty string is the bundle root.
var DefaultSearchPaths = []string{
	"Assets/Sounds/VerticalAudio",
	"Assets/Sounds",
	"Sounds/VerticalAudio",
	"VerticalAudio",
	"",
}

// DefaultCacheTTL is how long a resolved path is remembered
const DefaultCacheTTL = 5 * time.Minute

//go:embed Assets/Sounds/VerticalAudio/*.wav
var embedded embed.FS

// Config controls resolution
type Config struct {
	// SearchPaths overrides DefaultSearchPaths when non-empty
	SearchPaths []string
	// CacheTTL is the lifetime of a resolved path. Zero means
	// DefaultCacheTTL, negative means never expire.
	CacheTTL time.Duration
	Logger   zerolog.Logger
}

// Bundle resolves asset names to paths inside an fs.FS
type Bundle struct {
	fsys        fs.FS
	searchPaths []string
	resolved    *cache.Cache
	logger      zerolog.Logger
}

// New creates a bundle over fsys
func New(fsys fs.FS, cfg Config) *Bundle {
	paths := cfg.SearchPaths
	if len(paths) == 0 {
		paths = DefaultSearchPaths
	}

	ttl := cfg.CacheTTL
	switch {
	case ttl == 0:
		ttl = DefaultCacheTTL
	case ttl < 0:
		ttl = cache.NoExpiration
	}
	cleanup := 2 * ttl
	if ttl == cache.NoExpiration {
		cleanup = 0
	}

	return &Bundle{
		fsys:        fsys,
		searchPaths: append([]string(nil), paths...),
		resolved:    cache.New(ttl, cleanup),
		logger:      cfg.Logger.With().Str("component", "bundle").Logger(),
	}
}

// Dir creates a bundle rooted at a directory on disk
func Dir(root string, cfg Config) *Bundle {
	return New(os.DirFS(root), cfg)
}

// Embedded creates a bundle over the sounds compiled into the binary
func Embedded(cfg Config) *Bundle {
	return New(embedded, cfg)
}

// FS returns the underlying file system
func (b *Bundle) FS() fs.FS { return b.fsys }

// SearchPaths returns a copy of the ordered search locations
func (b *Bundle) SearchPaths() []string {
	return append([]string(nil), b.searchPaths...)
}

// Resolve finds name.ext in the first search location that has it
func (b *Bundle) Resolve(name, ext string) (string, error) {
	file := name + "." + ext

	if p, ok := b.resolved.Get(file); ok {
		return p.(string), nil
	}

	for i, dir := range b.searchPaths {
		candidate := path.Join(dir, file)
		info, err := fs.Stat(b.fsys, candidate)
		if err != nil || !info.Mode().IsRegular() {
			if i == 0 {
				b.logger.Warn().Str("file", file).Str("dir", dir).Msg("Asset not in primary location, trying fallbacks")
			}
			continue
		}

		if i > 0 {
			b.logger.Info().Str("path", candidate).Msg("Found asset in alternative location")
		}
		b.resolved.SetDefault(file, candidate)
		return candidate, nil
	}

	return "", fmt.Errorf("%s: %w", file, ErrAssetNotFound)
}

// Forget drops every remembered path, e.g. after the bundle contents change
func (b *Bundle) Forget() {
	b.resolved.Flush()
}
