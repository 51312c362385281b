package render

import (
	"embed"
	"io/fs"
	"os"

	"github.com/leterax/go-tessellation/internal/openglhelper"
)

//go:embed shaders/*.glsl
var embeddedShaders embed.FS

// Stage files shared by both programs; only the fragment stage differs
var (
	texturedProgram = openglhelper.ShaderFiles{
		Vertex:      "vert.glsl",
		TessControl: "tesc.glsl",
		TessEval:    "tese.glsl",
		Fragment:    "frag.glsl",
	}
	solidProgram = openglhelper.ShaderFiles{
		Vertex:      "vert.glsl",
		TessControl: "tesc.glsl",
		TessEval:    "tese.glsl",
		Fragment:    "solid.glsl",
	}
)

// shaderFS returns the directory shaders are read from: dir on disk when
// set, the embedded copies otherwise.
func shaderFS(dir string) fs.FS {
	if dir != "" {
		return os.DirFS(dir)
	}
	sub, err := fs.Sub(embeddedShaders, "shaders")
	if err != nil {
		// The embed pattern guarantees the directory exists
		panic(err)
	}
	return sub
}
