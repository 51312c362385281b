package openglhelper

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Shader represents an OpenGL shader program
type Shader struct {
	ID       uint32
	uniforms map[string]int32
}

// ShaderSources holds the GLSL source of each stage. Empty stages are skipped;
// a vertex and a fragment stage are required.
type ShaderSources struct {
	Vertex      string
	TessControl string
	TessEval    string
	Fragment    string
}

// ShaderFiles names the file of each stage inside a filesystem
type ShaderFiles struct {
	Vertex      string
	TessControl string
	TessEval    string
	Fragment    string
}

// compileShader compiles a single shader
func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("failed to compile shader: %v", strings.TrimRight(log, "\x00"))
	}

	return shader, nil
}

// NewShader creates a new shader program from the given stage sources
func NewShader(src ShaderSources) (*Shader, error) {
	if src.Vertex == "" || src.Fragment == "" {
		return nil, fmt.Errorf("shader program needs vertex and fragment stages")
	}
	if (src.TessControl == "") != (src.TessEval == "") {
		return nil, fmt.Errorf("tessellation control and evaluation stages must be given together")
	}

	stages := []struct {
		name   string
		source string
		kind   uint32
	}{
		{"vertex", src.Vertex, gl.VERTEX_SHADER},
		{"tessellation control", src.TessControl, gl.TESS_CONTROL_SHADER},
		{"tessellation evaluation", src.TessEval, gl.TESS_EVALUATION_SHADER},
		{"fragment", src.Fragment, gl.FRAGMENT_SHADER},
	}

	var compiled []uint32
	defer func() {
		for _, s := range compiled {
			gl.DeleteShader(s)
		}
	}()

	for _, stage := range stages {
		if stage.source == "" {
			continue
		}
		s, err := compileShader(stage.source, stage.kind)
		if err != nil {
			return nil, fmt.Errorf("%s shader compilation failed: %w", stage.name, err)
		}
		compiled = append(compiled, s)
	}

	program, err := linkProgram(compiled)
	if err != nil {
		return nil, err
	}

	return &Shader{ID: program, uniforms: make(map[string]int32)}, nil
}

// linkProgram links compiled stages into a program
func linkProgram(shaders []uint32) (uint32, error) {
	program := gl.CreateProgram()

	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, fmt.Errorf("failed to link program: %v", strings.TrimRight(log, "\x00"))
	}

	for _, s := range shaders {
		gl.DetachShader(program, s)
	}

	return program, nil
}

// Use activates the shader program
func (s *Shader) Use() {
	gl.UseProgram(s.ID)
}

// Delete releases the shader program
func (s *Shader) Delete() {
	gl.DeleteProgram(s.ID)
	s.ID = 0
}

// location looks up a uniform once and caches it; -1 means the uniform was
// optimized out and GL ignores writes to it
func (s *Shader) location(name string) int32 {
	if loc, ok := s.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(s.ID, gl.Str(name+"\x00"))
	s.uniforms[name] = loc
	return loc
}

// SetInt sets an integer uniform
func (s *Shader) SetInt(name string, value int32) {
	gl.Uniform1i(s.location(name), value)
}

// SetFloat sets a float uniform
func (s *Shader) SetFloat(name string, value float32) {
	gl.Uniform1f(s.location(name), value)
}

// SetVec4 sets a vec4 uniform
func (s *Shader) SetVec4(name string, vec mgl32.Vec4) {
	gl.Uniform4f(s.location(name), vec[0], vec[1], vec[2], vec[3])
}

// SetMat4 sets a mat4 uniform
func (s *Shader) SetMat4(name string, mat mgl32.Mat4) {
	gl.UniformMatrix4fv(s.location(name), 1, false, &mat[0])
}

// LoadShader reads each stage named in files from fsys and builds a program
func LoadShader(fsys fs.FS, files ShaderFiles) (*Shader, error) {
	read := func(name string) (string, error) {
		if name == "" {
			return "", nil
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return "", fmt.Errorf("failed to read shader file: %w", err)
		}
		return string(data), nil
	}

	var src ShaderSources
	var err error
	if src.Vertex, err = read(files.Vertex); err != nil {
		return nil, err
	}
	if src.TessControl, err = read(files.TessControl); err != nil {
		return nil, err
	}
	if src.TessEval, err = read(files.TessEval); err != nil {
		return nil, err
	}
	if src.Fragment, err = read(files.Fragment); err != nil {
		return nil, err
	}

	shader, err := NewShader(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", files.Fragment, err)
	}
	return shader, nil
}
