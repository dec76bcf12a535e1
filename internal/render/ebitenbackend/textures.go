package ebitenbackend

import (
	"bytes"
	"fmt"
	_ "image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	resource "github.com/quasilyte/ebitengine-resource"
)

// Textures loads atlas images through an ebitengine-resource loader.
// Images are decoded on first use and cached by the loader.
type Textures struct {
	loader *resource.Loader
	ids    map[string]resource.ImageID
}

// NewTextures registers one image per atlas, relative to dir. Missing files
// are reported here so a bad asset path fails at startup, not mid-frame.
func NewTextures(dir string, images map[string]string) (*Textures, error) {
	loader := resource.NewLoader(nil)
	loader.OpenAssetFunc = func(path string) io.ReadCloser {
		data, err := os.ReadFile(filepath.Join(dir, path))
		if err != nil {
			panic(err)
		}
		return io.NopCloser(bytes.NewReader(data))
	}

	t := &Textures{
		loader: loader,
		ids:    make(map[string]resource.ImageID, len(images)),
	}
	registry := make(map[resource.ImageID]resource.ImageInfo, len(images))
	next := resource.ImageID(1)
	for atlas, path := range images {
		if _, err := os.Stat(filepath.Join(dir, path)); err != nil {
			return nil, fmt.Errorf("atlas %q image: %w", atlas, err)
		}
		t.ids[atlas] = next
		registry[next] = resource.ImageInfo{Path: path}
		next++
	}
	loader.ImageRegistry.Assign(registry)
	return t, nil
}

// Image returns the atlas texture, or nil for an unknown atlas.
func (t *Textures) Image(atlas string) *ebiten.Image {
	id, ok := t.ids[atlas]
	if !ok {
		return nil
	}
	return t.loader.LoadImage(id).Data
}
