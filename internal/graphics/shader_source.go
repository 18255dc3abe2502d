package graphics

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ShaderStage identifies one section of a combined shader file
type ShaderStage int

const (
	StageNone ShaderStage = iota - 1
	StageVertex
	StageFragment
)

func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "none"
	}
}

const shaderDirective = "#shader"

var (
	ErrUnknownStage = errors.New("unknown shader stage")
	ErrOrphanSource = errors.New("shader source before first #shader directive")
	ErrMissingStage = errors.New("missing shader stage")
)

// ProgramSource holds the vertex and fragment sources split out of one file
type ProgramSource struct {
	Vertex   string
	Fragment string
}

// ParseShaderFile reads a combined shader file from disk
func ParseShaderFile(path string) (ProgramSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return ProgramSource{}, fmt.Errorf("could not read shader file: %w", err)
	}
	defer f.Close()

	src, err := ParseShaderSource(f)
	if err != nil {
		return ProgramSource{}, fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}

// ParseShaderSource splits a combined shader into its stages.
//
// A line containing "#shader" selects the stage that following lines belong to:
// "vertex" is checked before "fragment". Directive lines are not emitted and
// every other line is written back with a trailing newline. Repeated sections
// of one stage are concatenated in file order.
func ParseShaderSource(r io.Reader) (ProgramSource, error) {
	var (
		sections [2]strings.Builder
		seen     [2]bool
		stage    = StageNone
		lineNo   int
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if strings.Contains(line, shaderDirective) {
			switch {
			case strings.Contains(line, "vertex"):
				stage = StageVertex
			case strings.Contains(line, "fragment"):
				stage = StageFragment
			default:
				return ProgramSource{}, fmt.Errorf("line %d: %w: %q", lineNo, ErrUnknownStage, strings.TrimSpace(line))
			}
			seen[stage] = true
			continue
		}

		if stage == StageNone {
			if strings.TrimSpace(line) != "" {
				return ProgramSource{}, fmt.Errorf("line %d: %w", lineNo, ErrOrphanSource)
			}
			continue
		}

		sections[stage].WriteString(line)
		sections[stage].WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return ProgramSource{}, fmt.Errorf("could not scan shader source: %w", err)
	}

	for _, s := range []ShaderStage{StageVertex, StageFragment} {
		if !seen[s] {
			return ProgramSource{}, fmt.Errorf("%w: %s", ErrMissingStage, s)
		}
	}

	return ProgramSource{
		Vertex:   sections[StageVertex].String(),
		Fragment: sections[StageFragment].String(),
	}, nil
}
