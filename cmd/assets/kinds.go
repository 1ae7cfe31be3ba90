package main

import (
	"fmt"
	"path"
	"strings"

	"github.com/gogpu/assets"
	"github.com/gogpu/assets/shader"
	"github.com/gogpu/assets/texture"
	"github.com/gogpu/assets/typeface"
)

// Kind names registered on the library.
const (
	kindTexture = "texture"
	kindFont    = "font"
	kindShader  = "shader"
)

// kindByExt maps lower-case file extensions to the kind decoding them.
var kindByExt = map[string]string{
	".png":  kindTexture,
	".jpg":  kindTexture,
	".jpeg": kindTexture,
	".gif":  kindTexture,
	".bmp":  kindTexture,
	".tif":  kindTexture,
	".tiff": kindTexture,
	".webp": kindTexture,
	".ttf":  kindFont,
	".otf":  kindFont,
	".wgsl": kindShader,
}

// kindOf returns the kind for name, or "" if no decoder handles it.
func kindOf(name string) string {
	return kindByExt[strings.ToLower(path.Ext(strings.ReplaceAll(name, `\`, "/")))]
}

func newLibrary(root *assets.Root, opts ...assets.Option) (*assets.Library, error) {
	lib := assets.NewLibrary(root, opts...)
	if err := assets.Register(lib, kindTexture, texture.Decode); err != nil {
		return nil, err
	}
	if err := assets.Register(lib, kindFont, typeface.Decode); err != nil {
		return nil, err
	}
	if err := assets.Register(lib, kindShader, shader.Decode); err != nil {
		return nil, err
	}
	return lib, nil
}

// loaded is the kind-independent view of one loaded resource.
type loaded struct {
	id      assets.Identity
	refs    int
	size    int
	release func()
}

func loadKind(lib *assets.Library, kind, name string) (loaded, error) {
	switch kind {
	case kindTexture:
		return loadAs(lib, name, (*texture.Texture).Size)
	case kindFont:
		return loadAs(lib, name, (*typeface.Font).Size)
	case kindShader:
		return loadAs(lib, name, (*shader.Shader).Size)
	default:
		return loaded{}, fmt.Errorf("%s: no decoder for this file type", name)
	}
}

func loadAs[T any](lib *assets.Library, name string, size func(*T) int) (loaded, error) {
	r, err := assets.Load[T](lib, name)
	if err != nil {
		return loaded{}, err
	}
	return loaded{
		id:      r.Identity(),
		refs:    r.RefCount(),
		size:    size(r.Data()),
		release: r.Release,
	}, nil
}
