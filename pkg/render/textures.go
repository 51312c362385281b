package render

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/leterax/go-tessellation/internal/openglhelper"
	"github.com/leterax/go-tessellation/pkg/config"
	"github.com/leterax/go-tessellation/pkg/texgen"
)

// surfaceTextures are the three maps sampled by the quad
type surfaceTextures struct {
	diffuse      *openglhelper.Texture
	displacement *openglhelper.Texture
	normal       *openglhelper.Texture
}

// loadSurfaceTextures loads each configured map, generating the ones without a path
func loadSurfaceTextures(cfg config.TexturesConfig) (*surfaceTextures, error) {
	size := cfg.GeneratedSize
	height := texgen.Height(size, 4)

	diffuseImg, err := surfaceImage(cfg.Diffuse, cfg.MaxSize, func() *image.RGBA {
		return texgen.Diffuse(size, 8)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load diffuse texture: %w", err)
	}
	dispImg, err := surfaceImage(cfg.Displacement, cfg.MaxSize, func() *image.RGBA {
		return texgen.ToRGBA(height, 0)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load displacement texture: %w", err)
	}
	normalImg, err := surfaceImage(cfg.Normal, cfg.MaxSize, func() *image.RGBA {
		return texgen.NormalMap(height, 4)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load normal texture: %w", err)
	}

	return &surfaceTextures{
		diffuse:      openglhelper.NewTexture(diffuseImg, openglhelper.FilterLinear),
		displacement: openglhelper.NewTexture(dispImg, openglhelper.FilterPoint),
		normal:       openglhelper.NewTexture(normalImg, openglhelper.FilterLinear),
	}, nil
}

// surfaceImage decodes path, or calls generate when path is empty
func surfaceImage(path string, maxSize int, generate func() *image.RGBA) (*image.RGBA, error) {
	if path == "" {
		return generate(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	rgba := texgen.ToRGBA(img, maxSize)
	Logger().Debug("texture loaded", "path", path, "format", format,
		"width", rgba.Bounds().Dx(), "height", rgba.Bounds().Dy())
	return rgba, nil
}

func (t *surfaceTextures) bind() {
	t.diffuse.Bind(diffuseUnit)
	t.displacement.Bind(displacementUnit)
	t.normal.Bind(normalUnit)
}

func (t *surfaceTextures) delete() {
	t.diffuse.Delete()
	t.displacement.Delete()
	t.normal.Delete()
}
