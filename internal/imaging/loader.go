package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Source is a decoded image together with what was learned while loading it.
type Source struct {
	Image image.Image

	// Format is the decoder name: "png", "jpeg", "gif", "webp", "bmp" or "tiff".
	Format string

	// SizeBytes is the size of the encoded file or download.
	SizeBytes int64
}

// ImageCache provides thread-safe caching of decoded images keyed by the
// exact source string (file path or URL) they were loaded from.
//
// Cached images remain in memory until explicitly removed via Evict() or
// Clear(). Remote images are fetched once and then served from memory.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	src, err := cache.Load(ctx, "https://example.com/logo.png")
//	if err != nil {
//	    return err
//	}
//	palette := pipeline.Process(src.Image, 50, true)
type ImageCache struct {
	mu      sync.RWMutex
	sources map[string]*Source
	fetch   FetchOptions
}

// NewImageCache creates an empty cache that fetches URLs with the default
// timeout.
func NewImageCache() *ImageCache {
	return &ImageCache{
		sources: make(map[string]*Source),
	}
}

// NewImageCacheWithFetch creates an empty cache that fetches URLs with opts.
func NewImageCacheWithFetch(opts FetchOptions) *ImageCache {
	c := NewImageCache()
	c.fetch = opts
	return c
}

// Load retrieves an image from the cache, or reads and decodes it if it has
// not been seen before.
//
// Parameters:
//   - ctx: Bounds remote fetches. Local files ignore it.
//   - source: A file path, or an http:// or https:// URL.
//
// Returns:
//   - *Source: The decoded image with its format and encoded size.
//   - error: Non-nil if the file cannot be read, the URL cannot be fetched,
//     or the bytes are not a supported image.
func (c *ImageCache) Load(ctx context.Context, source string) (*Source, error) {
	c.mu.RLock()
	if src, ok := c.sources[source]; ok {
		c.mu.RUnlock()
		return src, nil
	}
	c.mu.RUnlock()

	data, err := c.read(ctx, source)
	if err != nil {
		return nil, err
	}

	src, err := Decode(data)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.sources[source] = src
	c.mu.Unlock()

	return src, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.sources = make(map[string]*Source)
	c.mu.Unlock()
}

// Evict removes a single source from the cache. Unknown sources are ignored.
func (c *ImageCache) Evict(source string) {
	c.mu.Lock()
	delete(c.sources, source)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sources)
}

func (c *ImageCache) read(ctx context.Context, source string) ([]byte, error) {
	if source == "" {
		return nil, fmt.Errorf("image source cannot be empty")
	}
	if IsURL(source) {
		return Fetch(ctx, source, c.fetch)
	}

	info, err := os.Stat(source)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s", source)
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", source)
	}

	data, err := os.ReadFile(source) // #nosec G304 - user-specified image path
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return data, nil
}

// Decode decodes an encoded image held in memory. JPEG EXIF orientation is
// applied so the pixels come out the way a viewer would display them.
func Decode(data []byte) (*Source, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unsupported or invalid image format: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	return &Source{
		Image:     img,
		Format:    format,
		SizeBytes: int64(len(data)),
	}, nil
}

// IsURL reports whether source should be fetched over HTTP.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Info contains metadata about a loaded image.
type Info struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the detected decoder name, see Source.Format.
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the decoded color model carries alpha.
	// Alpha is dropped during palette extraction either way.
	HasAlpha bool `json:"has_alpha"`

	// SizeBytes is the size of the encoded image in bytes.
	SizeBytes int64 `json:"size_bytes"`
}

// Describe returns the metadata of a loaded source.
//
// # Color Depth Detection
//
// Color depth is determined by the Go image type:
//   - *image.RGBA64, *image.NRGBA64, *image.Gray16 -> "16-bit"
//   - All other types -> "8-bit"
func Describe(src *Source) Info {
	hasAlpha := false
	colorDepth := "8-bit"
	switch src.Image.(type) {
	case *image.RGBA, *image.NRGBA, *image.Paletted:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	}

	bounds := src.Image.Bounds()
	return Info{
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		Format:     src.Format,
		ColorDepth: colorDepth,
		HasAlpha:   hasAlpha,
		SizeBytes:  src.SizeBytes,
	}
}
