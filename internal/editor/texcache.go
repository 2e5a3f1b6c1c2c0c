package editor

import (
	"image"
	"image/draw"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	_ "github.com/ftrvxmtrx/tga"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/varenx/nwn-emitter-editor/internal/dds"
	"github.com/varenx/nwn-emitter-editor/internal/emitter"
)

// Extension search order for bare texture names.
var textureExtensions = []string{".dds", ".tga", ".png", ".jpg"}

// TextureCache loads textures on demand and keeps them GPU-resident. A
// failed load is cached as 0 so the miss is not retried every frame.
type TextureCache struct {
	dir   string
	cache map[string]uint32
}

func NewTextureCache(dir string) *TextureCache {
	return &TextureCache{
		dir:   dir,
		cache: make(map[string]uint32),
	}
}

// SetDirectory points bare-name lookups at the directory of the currently
// loaded model.
func (tc *TextureCache) SetDirectory(dir string) {
	tc.dir = dir
}

// Get returns the GL texture for an emitter, preferring the resolved path
// over the logical name. 0 means no texture.
func (tc *TextureCache) Get(e *emitter.Node) uint32 {
	key := e.TexturePath
	if key == "" {
		key = e.Texture
	}
	return tc.Lookup(key)
}

// Lookup resolves a texture name or path, loading and caching on first use.
func (tc *TextureCache) Lookup(nameOrPath string) uint32 {
	if nameOrPath == "" {
		return 0
	}
	if tex, ok := tc.cache[nameOrPath]; ok {
		return tex
	}

	var img image.Image
	var loadedPath string

	if strings.ContainsAny(nameOrPath, "/\\") {
		img = decodeFile(nameOrPath)
		loadedPath = nameOrPath
	} else {
		for _, ext := range textureExtensions {
			path := filepath.Join(tc.dir, nameOrPath+ext)
			if img = decodeFile(path); img != nil {
				loadedPath = path
				break
			}
		}
	}

	if img == nil {
		log.Printf("failed to load texture %q (tried %v)", nameOrPath, textureExtensions)
		tc.cache[nameOrPath] = 0
		return 0
	}

	tex := uploadTexture(img)
	tc.cache[nameOrPath] = tex
	b := img.Bounds()
	log.Printf("loaded texture %s (%dx%d)", loadedPath, b.Dx(), b.Dy())
	return tex
}

// Destroy releases all GL textures.
func (tc *TextureCache) Destroy() {
	for _, tex := range tc.cache {
		if tex != 0 {
			gl.DeleteTextures(1, &tex)
		}
	}
	tc.cache = make(map[string]uint32)
}

func decodeFile(path string) image.Image {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var img image.Image
	if strings.HasSuffix(strings.ToLower(path), ".dds") {
		img, err = dds.Decode(f)
	} else {
		img, _, err = image.Decode(f)
	}
	if err != nil {
		return nil
	}
	return img
}

// uploadTexture converts to NRGBA, flips vertically to match GL's UV origin
// and uploads with mipmaps.
func uploadTexture(img image.Image) uint32 {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	nrgba := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)

	flipped := make([]byte, len(nrgba.Pix))
	rowLen := nrgba.Stride
	for y := 0; y < h; y++ {
		copy(flipped[y*rowLen:(y+1)*rowLen], nrgba.Pix[(h-1-y)*rowLen:(h-y)*rowLen])
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(flipped))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	return tex
}
