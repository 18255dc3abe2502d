package graphics

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// Upper bound on codes drained per check. Without a current context some
// drivers keep returning GL_INVALID_OPERATION forever.
const maxPendingErrors = 32

var getError = gl.GetError

// Error carries the GL error codes raised by one operation
type Error struct {
	Op    string
	File  string
	Line  int
	Codes []uint32
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Codes))
	for i, code := range e.Codes {
		parts[i] = fmt.Sprintf("[OpenGL Error] (0x%04X %s): %s %s:%d", code, ErrorName(code), e.Op, e.File, e.Line)
	}
	return strings.Join(parts, "; ")
}

// ErrorName maps a glGetError code to its symbolic name
func ErrorName(code uint32) string {
	switch code {
	case gl.NO_ERROR:
		return "GL_NO_ERROR"
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	default:
		return "GL_UNKNOWN_ERROR"
	}
}

// ClearErrors discards any pending GL error codes
func ClearErrors() {
	drainErrors()
}

// Check returns an *Error if GL has recorded errors since the last drain
func Check(op string) error {
	return check(op, 2)
}

// Call runs fn with the error queue cleared before and checked after.
// Usage: err := graphics.Call("glDrawElements", func() { gl.DrawElements(...) })
func Call(op string, fn func()) error {
	drainErrors()
	fn()
	return check(op, 2)
}

func check(op string, skip int) error {
	codes := drainErrors()
	if len(codes) == 0 {
		return nil
	}
	_, file, line, _ := runtime.Caller(skip)
	return &Error{Op: op, File: filepath.Base(file), Line: line, Codes: codes}
}

func drainErrors() []uint32 {
	var codes []uint32
	for i := 0; i < maxPendingErrors; i++ {
		code := getError()
		if code == gl.NO_ERROR {
			break
		}
		codes = append(codes, code)
	}
	return codes
}
