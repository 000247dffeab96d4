package scene

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp"
)

// ErrUnknownTexture is returned for texture ids outside the catalogue.
var ErrUnknownTexture = errors.New("no such texture")

// Texture holds CPU-side pixel data for a 2D texture in RGBA8, rows ordered
// bottom-to-top as GL expects.
type Texture struct {
	Name   string
	Width  int
	Height int
	Pixels []byte
}

// TextureProvider resolves texture references.
type TextureProvider interface {
	Texture(id TextureID) (*Texture, error)
}

// TextureFiles loads texture<id>.bmp, .png or .jpg from a directory.
type TextureFiles struct {
	dir   string
	count int
	cache map[TextureID]*Texture
}

func NewTextureFiles(dir string, count int) *TextureFiles {
	return &TextureFiles{
		dir:   dir,
		count: count,
		cache: make(map[TextureID]*Texture),
	}
}

func (t *TextureFiles) Count() int { return t.count }

func (t *TextureFiles) Texture(id TextureID) (*Texture, error) {
	if id < 0 || int(id) >= t.count {
		return nil, fmt.Errorf("texture %d: %w", id, ErrUnknownTexture)
	}
	if tex, ok := t.cache[id]; ok {
		return tex, nil
	}
	for _, ext := range []string{".bmp", ".png", ".jpg"} {
		p := filepath.Join(t.dir, fmt.Sprintf("texture%d%s", id, ext))
		if _, err := os.Stat(p); err != nil {
			continue
		}
		tex, err := LoadTexture(p)
		if err != nil {
			return nil, err
		}
		t.cache[id] = tex
		return tex, nil
	}
	return nil, fmt.Errorf("texture %d in %q: %w", id, t.dir, os.ErrNotExist)
}

// LoadTexture decodes a BMP, PNG or JPEG file.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", path, err)
	}
	rgba := transform.FlipV(img)
	bounds := rgba.Bounds()
	return &Texture{
		Name:   path,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pixels: rgba.Pix,
	}, nil
}

// SolidTexture is a 1x1 texture of one colour.
func SolidTexture(name string, c color.RGBA) *Texture {
	return &Texture{Name: name, Width: 1, Height: 1, Pixels: []byte{c.R, c.G, c.B, c.A}}
}

// CheckerTexture is a size x size texture of 8x8 alternating blocks.
func CheckerTexture(name string, size int, c1, c2 color.RGBA) *Texture {
	size = max(size, 1)
	block := max(size/8, 1)
	pixels := make([]byte, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := c2
			if (x/block+y/block)%2 == 0 {
				c = c1
			}
			i := (y*size + x) * 4
			pixels[i], pixels[i+1], pixels[i+2], pixels[i+3] = c.R, c.G, c.B, c.A
		}
	}
	return &Texture{Name: name, Width: size, Height: size, Pixels: pixels}
}

// Procedural stands in for texture files: texture 0 is plain white and
// every other id a checkerboard tinted by the id.
type Procedural struct{}

var plainWhite = SolidTexture("plain", color.RGBA{255, 255, 255, 255})

func (Procedural) Texture(id TextureID) (*Texture, error) {
	if id < 0 {
		return nil, ErrUnknownTexture
	}
	if id == 0 {
		return plainWhite, nil
	}
	tint := color.RGBA{
		R: uint8(96 + 37*int(id)%160),
		G: uint8(96 + 71*int(id)%160),
		B: uint8(96 + 113*int(id)%160),
		A: 255,
	}
	return CheckerTexture(fmt.Sprintf("checker%d", id), 64, color.RGBA{255, 255, 255, 255}, tint), nil
}

// FallbackTextures asks Primary first and Fallback when Primary fails.
type FallbackTextures struct {
	Primary  TextureProvider
	Fallback TextureProvider
}

func (f FallbackTextures) Texture(id TextureID) (*Texture, error) {
	t, err := f.Primary.Texture(id)
	if err == nil {
		return t, nil
	}
	t, ferr := f.Fallback.Texture(id)
	if ferr != nil {
		return nil, errors.Join(err, ferr)
	}
	return t, nil
}
