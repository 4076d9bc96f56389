// Package imaging loads, normalizes, crops and encodes images for the
// palette pipeline.
//
// Nothing in this package looks at colors. It turns a file path or an
// http(s) URL into a decoded image.Image, optionally narrows it to a region
// of interest or shrinks it, and turns rendered palettes back into bytes.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner:
//   - X increases rightward, Y increases downward
//   - For regions, (X1,Y1) is inclusive and (X2,Y2) is exclusive
//
// # Supported Formats
//
// Decoding: PNG, JPEG, GIF, WebP, BMP and TIFF. JPEG EXIF orientation is
// applied on load.
//
// Encoding: PNG, JPEG and BMP, selected by file extension when saving.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. All other functions are stateless.
package imaging
