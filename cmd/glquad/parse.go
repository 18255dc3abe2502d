package main

import (
	"fmt"
	"io"

	"glquad/internal/graphics"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var parseStage string

// parseCmd splits a shader file without creating a GL context
var parseCmd = &cobra.Command{
	Use:   "parse [shader-file]",
	Short: "Print the vertex and fragment sections of a combined shader file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			path = cfg.Shader.Path
		}

		src, err := graphics.ParseShaderFile(path)
		if err != nil {
			return err
		}
		logger.Debug("parsed shader",
			zap.String("path", path),
			zap.Int("vertex_bytes", len(src.Vertex)),
			zap.Int("fragment_bytes", len(src.Fragment)))

		return printSource(cmd.OutOrStdout(), src, parseStage)
	},
}

func init() {
	parseCmd.Flags().StringVar(&parseStage, "stage", "", "print only this stage (vertex or fragment)")
}

func printSource(w io.Writer, src graphics.ProgramSource, stage string) error {
	switch stage {
	case graphics.StageVertex.String():
		_, err := io.WriteString(w, src.Vertex)
		return err
	case graphics.StageFragment.String():
		_, err := io.WriteString(w, src.Fragment)
		return err
	case "":
		_, err := fmt.Fprintf(w, "--- vertex ---\n%s--- fragment ---\n%s", src.Vertex, src.Fragment)
		return err
	default:
		return fmt.Errorf("%w: %q", graphics.ErrUnknownStage, stage)
	}
}
