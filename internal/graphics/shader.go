package graphics

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

//go:embed shaders/*
var shaderFS embed.FS

// Shader represents an OpenGL shader program
type Shader struct {
	ID uint32
}

type shaderStage struct {
	kind   uint32
	source string
}

// NewShader creates a program from vertex, geometry and fragment source files.
// geometryPath may be empty.
func NewShader(vertexPath, geometryPath, fragmentPath string) (*Shader, error) {
	paths := []struct {
		kind uint32
		path string
	}{
		{gl.VERTEX_SHADER, vertexPath},
		{gl.GEOMETRY_SHADER, geometryPath},
		{gl.FRAGMENT_SHADER, fragmentPath},
	}
	var stages []shaderStage
	for _, p := range paths {
		if p.path == "" {
			continue
		}
		src, err := os.ReadFile(p.path)
		if err != nil {
			return nil, fmt.Errorf("could not read shader file: %w", err)
		}
		stages = append(stages, shaderStage{kind: p.kind, source: string(src)})
	}
	return newProgram(stages)
}

// NewChunkShader builds the embedded point-expanding chunk program.
func NewChunkShader() (*Shader, error) {
	var stages []shaderStage
	for _, s := range []struct {
		kind uint32
		name string
	}{
		{gl.VERTEX_SHADER, "shaders/chunk.vert"},
		{gl.GEOMETRY_SHADER, "shaders/chunk.geom"},
		{gl.FRAGMENT_SHADER, "shaders/chunk.frag"},
	} {
		src, err := shaderFS.ReadFile(s.name)
		if err != nil {
			return nil, err
		}
		stages = append(stages, shaderStage{kind: s.kind, source: string(src)})
	}
	return newProgram(stages)
}

func newProgram(stages []shaderStage) (*Shader, error) {
	program, err := compileProgram(stages)
	if err != nil {
		return nil, err
	}
	return &Shader{ID: program}, nil
}

// Use activates the shader program
func (s *Shader) Use() {
	gl.UseProgram(s.ID)
}

// Delete frees the program
func (s *Shader) Delete() {
	gl.DeleteProgram(s.ID)
}

func (s *Shader) uniform(name string) int32 {
	return gl.GetUniformLocation(s.ID, gl.Str(name+"\x00"))
}

// SetInt sets an integer uniform
func (s *Shader) SetInt(name string, value int32) {
	gl.Uniform1i(s.uniform(name), value)
}

// SetVec3 sets a vector3 uniform
func (s *Shader) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3f(s.uniform(name), v.X(), v.Y(), v.Z())
}

// SetMatrix4 sets a 4x4 matrix uniform
func (s *Shader) SetMatrix4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(s.uniform(name), 1, false, &m[0])
}

func compileProgram(stages []shaderStage) (uint32, error) {
	program := gl.CreateProgram()
	shaders := make([]uint32, 0, len(stages))
	defer func() {
		for _, sh := range shaders {
			gl.DeleteShader(sh)
		}
	}()

	for _, st := range stages {
		sh, err := compileShader(st.source, st.kind)
		if err != nil {
			gl.DeleteProgram(program)
			return 0, err
		}
		gl.AttachShader(program, sh)
		shaders = append(shaders, sh)
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

		return 0, fmt.Errorf("failed to link program: %v", log)
	}
	return program, nil
}

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

		return 0, fmt.Errorf("failed to compile shader: %v", log)
	}
	return shader, nil
}
