package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"glquad/internal/app"
	"glquad/internal/config"

	"github.com/spf13/cobra"
	"github.com/xlab/closer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func init() {
	// GLFW and GL calls must stay on the main OS thread
	runtime.LockOSThread()
}

var (
	configPath string
	verbose    bool
	overrides  config.Config

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "glquad",
	Short: "Draw a color-pulsing quad with OpenGL",
	Long: `glquad opens a window, uploads a single quad to the GPU, builds a shader
program from a combined #shader file and animates its u_Color uniform.

Keys: Esc quits, R reloads the shader, Space pauses the animation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	RunE: runWindow,
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		return cfg.Build()
	}
	return zap.NewProductionConfig().Build()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "YAML config file")
	flags.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	run := rootCmd.Flags()
	run.StringVar(&overrides.Shader.Path, "shader", "", "combined shader file (default res/shaders/Basic.shader)")
	run.IntVar(&overrides.Window.Width, "width", 0, "window width")
	run.IntVar(&overrides.Window.Height, "height", 0, "window height")
	run.StringVar(&overrides.Window.Title, "title", "", "window title")
	run.IntVar(&overrides.Window.SwapInterval, "swap-interval", 1, "buffer swap interval, 0 disables vsync")
	run.IntVar(&overrides.Window.FPSLimit, "fps-limit", 0, "frame cap when vsync is off, 0 for none")
	run.BoolVar(&overrides.Shader.Watch, "watch", false, "reload the shader when the file changes")
	run.BoolVar(&overrides.DebugGL, "debug-gl", false, "check glGetError after each draw call")

	rootCmd.AddCommand(parseCmd)
}

// loadConfig reads the config file and applies flags the user set explicitly
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("shader") {
		cfg.Shader.Path = overrides.Shader.Path
	}
	if flags.Changed("width") {
		cfg.Window.Width = overrides.Window.Width
	}
	if flags.Changed("height") {
		cfg.Window.Height = overrides.Window.Height
	}
	if flags.Changed("title") {
		cfg.Window.Title = overrides.Window.Title
	}
	if flags.Changed("swap-interval") {
		cfg.Window.SwapInterval = overrides.Window.SwapInterval
	}
	if flags.Changed("fps-limit") {
		cfg.Window.FPSLimit = overrides.Window.FPSLimit
	}
	if flags.Changed("watch") {
		cfg.Shader.Watch = overrides.Shader.Watch
	}
	if flags.Changed("debug-gl") {
		cfg.DebugGL = overrides.DebugGL
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	a, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	logger.Info("render loop started",
		zap.String("shader", cfg.Shader.Path),
		zap.Int("swap_interval", cfg.Window.SwapInterval),
		zap.Bool("debug_gl", cfg.DebugGL))

	return a.Run(context.Background())
}

func main() {
	// closer runs bound cleanups on exit and on SIGINT/SIGTERM
	closer.Bind(func() {
		_ = logger.Sync()
	})
	closer.Checked(func() error {
		if err := rootCmd.Execute(); err != nil {
			logger.Error("glquad failed", zap.Error(err))
			fmt.Fprintln(os.Stderr, err)
			return err
		}
		return nil
	}, false)
	closer.Close()
}
