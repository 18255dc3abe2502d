package graphics

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

var ErrUniformNotFound = errors.New("uniform not found")

// Shader represents a linked OpenGL shader program
type Shader struct {
	ID       uint32
	uniforms map[string]int32
}

// NewShaderFromFile parses a combined shader file and links its stages
func NewShaderFromFile(path string, logger *zap.Logger) (*Shader, error) {
	src, err := ParseShaderFile(path)
	if err != nil {
		return nil, err
	}
	return NewShader(src, logger)
}

// NewShader compiles and links a program from already split sources
func NewShader(src ProgramSource, logger *zap.Logger) (*Shader, error) {
	program, err := createProgram(src.Vertex, src.Fragment, logger)
	if err != nil {
		return nil, err
	}
	return &Shader{ID: program, uniforms: make(map[string]int32)}, nil
}

// Use activates the shader program
func (s *Shader) Use() {
	gl.UseProgram(s.ID)
}

// Delete releases the program object
func (s *Shader) Delete() {
	if s.ID != 0 {
		gl.DeleteProgram(s.ID)
		s.ID = 0
	}
}

// UniformLocation looks up and caches the location of a uniform.
// Uniforms the linker optimised away report ErrUniformNotFound.
func (s *Shader) UniformLocation(name string) (int32, error) {
	if loc, ok := s.uniforms[name]; ok {
		return loc, nil
	}
	loc := gl.GetUniformLocation(s.ID, gl.Str(name+"\x00"))
	if loc == -1 {
		return -1, fmt.Errorf("%w: %s", ErrUniformNotFound, name)
	}
	s.uniforms[name] = loc
	return loc, nil
}

// SetVec4 sets a vec4 uniform; the program must be in use
func (s *Shader) SetVec4(name string, v mgl32.Vec4) error {
	loc, err := s.UniformLocation(name)
	if err != nil {
		return err
	}
	gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	return nil
}

func createProgram(vertexSrc, fragmentSrc string, logger *zap.Logger) (uint32, error) {
	vertexShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		log := programInfoLog(program)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %s", log)
	}

	// Validation depends on current GL state, so a failure here is only reported.
	gl.ValidateProgram(program)
	gl.GetProgramiv(program, gl.VALIDATE_STATUS, &status)
	if status == gl.FALSE {
		logger.Warn("shader program failed validation",
			zap.Uint32("program", program),
			zap.String("log", programInfoLog(program)))
	}

	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)
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

		return 0, fmt.Errorf("failed to compile %s shader: %s", stageName(shaderType), trimLog(log))
	}
	return shader, nil
}

func programInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return trimLog(log)
}

func stageName(shaderType uint32) string {
	switch shaderType {
	case gl.VERTEX_SHADER:
		return StageVertex.String()
	case gl.FRAGMENT_SHADER:
		return StageFragment.String()
	default:
		return fmt.Sprintf("0x%X", shaderType)
	}
}

func trimLog(log string) string {
	return strings.TrimSpace(strings.TrimRight(log, "\x00"))
}
