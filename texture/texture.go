// Package texture decodes image assets into textures with named sprite
// regions.
//
// Supported formats: PNG, JPEG, GIF (first frame), BMP, TIFF and WebP.
// Pixels are stored as non-premultiplied RGBA8, matching
// gputypes.TextureFormatRGBA8Unorm for upload.
//
//	tex, err := texture.Decode(data)
//	tex.AddSprites("walk", image.Rect(0, 0, 64, 16), image.Pt(4, 1), image.Pt(16, 16))
//	frame, _ := tex.Sprite("walk_2_0")
//
// Decode and DecodeTileSet have the assets.DecodeFunc shape and can be passed
// to assets.New or assets.Register directly.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"slices"

	"github.com/gogpu/gputypes"
	_ "golang.org/x/image/bmp" // register BMP decoder
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// ErrEmptyData is returned when image data is empty.
var ErrEmptyData = errors.New("texture: empty data")

// Texture is a decoded image plus a set of named sprite rectangles into it.
//
// Texture is not safe for concurrent mutation; sprites are expected to be
// registered right after loading.
type Texture struct {
	pixels  *image.NRGBA
	format  string // source format reported by image.Decode
	sprites map[string]image.Rectangle
}

// New creates a texture from img. The pixels are copied unless img is
// already an *image.NRGBA anchored at the origin.
func New(img image.Image) *Texture {
	return &Texture{
		pixels:  toNRGBA(img),
		sprites: make(map[string]image.Rectangle),
	}
}

// Decode decodes an image from data, auto-detecting the format.
func Decode(data []byte) (*Texture, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("texture: decode: %w", err)
	}

	t := New(img)
	t.format = format
	return t, nil
}

// toNRGBA converts img to an *image.NRGBA with bounds starting at (0, 0).
func toNRGBA(img image.Image) *image.NRGBA {
	bounds := img.Bounds()

	// Fast path for NRGBA images already at the origin
	if nrgba, ok := img.(*image.NRGBA); ok && bounds.Min == (image.Point{}) {
		return nrgba
	}

	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	// Fast path for NRGBA sub-images: row-by-row copy
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := range bounds.Dy() {
			srcStart := nrgba.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:], nrgba.Pix[srcStart:srcStart+bounds.Dx()*4])
		}
		return dst
	}

	// Generic path for any image type
	xdraw.Draw(dst, dst.Bounds(), img, bounds.Min, xdraw.Src)
	return dst
}

// Width returns the texture width in pixels, or 0 after Release.
func (t *Texture) Width() int {
	if t.pixels == nil {
		return 0
	}
	return t.pixels.Rect.Dx()
}

// Height returns the texture height in pixels, or 0 after Release.
func (t *Texture) Height() int {
	if t.pixels == nil {
		return 0
	}
	return t.pixels.Rect.Dy()
}

// Bounds returns the texture rectangle, anchored at (0, 0).
func (t *Texture) Bounds() image.Rectangle {
	if t.pixels == nil {
		return image.Rectangle{}
	}
	return t.pixels.Rect
}

// Pixels returns the pixel buffer. It is a borrow owned by the texture.
func (t *Texture) Pixels() *image.NRGBA { return t.pixels }

// Format returns the GPU texture format of the pixel buffer.
func (t *Texture) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// SourceFormat returns the name of the decoded source format ("png",
// "jpeg", ...), or "" for textures built with New.
func (t *Texture) SourceFormat() string { return t.format }

// Size returns the size of the pixel buffer in bytes.
func (t *Texture) Size() int {
	if t.pixels == nil {
		return 0
	}
	return len(t.pixels.Pix)
}

// AddSprite registers a named region, replacing any sprite of the same name.
// It returns t for chaining.
func (t *Texture) AddSprite(name string, rect image.Rectangle) *Texture {
	if t.sprites == nil {
		t.sprites = make(map[string]image.Rectangle)
	}
	t.sprites[name] = rect
	return t
}

// AddSprites registers a size.X by size.Y grid of cells, each offset.X by
// offset.Y pixels, starting at rect.Min. Cells are named
// "<base>_<x>_<y>" and replace existing sprites of the same name.
// It returns t for chaining.
func (t *Texture) AddSprites(base string, rect image.Rectangle, size, offset image.Point) *Texture {
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			origin := image.Pt(rect.Min.X+x*offset.X, rect.Min.Y+y*offset.Y)
			cell := image.Rectangle{Min: origin, Max: origin.Add(offset)}
			t.AddSprite(fmt.Sprintf("%s_%d_%d", base, x, y), cell)
		}
	}
	return t
}

// Sprite returns the named sprite.
func (t *Texture) Sprite(name string) (Sprite, bool) {
	rect, ok := t.sprites[name]
	if !ok {
		return Sprite{}, false
	}
	return Sprite{Name: name, Rect: rect, texture: t}, true
}

// SpriteNames returns the registered sprite names in sorted order.
func (t *Texture) SpriteNames() []string {
	names := make([]string, 0, len(t.sprites))
	for name := range t.sprites {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Release drops the pixel buffer and all sprites.
// It is called by the asset cache when the last owner releases the texture.
func (t *Texture) Release() {
	t.pixels = nil
	t.sprites = nil
}

// Released reports whether Release has been called.
func (t *Texture) Released() bool { return t.pixels == nil }

// Sprite is a named region of a texture. A sprite borrows the texture's
// pixels; it never keeps the texture alive on its own.
type Sprite struct {
	Name string
	Rect image.Rectangle

	texture *Texture
}

// Image copies the sprite region into a new image anchored at (0, 0).
// Regions outside the texture are transparent. Returns nil if the texture
// has been released.
func (s Sprite) Image() *image.NRGBA {
	if s.texture == nil || s.texture.pixels == nil {
		return nil
	}
	dst := image.NewNRGBA(image.Rect(0, 0, s.Rect.Dx(), s.Rect.Dy()))
	xdraw.Copy(dst, image.Point{}, s.texture.pixels, s.Rect, xdraw.Src, nil)
	return dst
}
