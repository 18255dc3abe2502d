package app

import (
	"context"
	"fmt"
	"time"

	"glquad/internal/animation"
	"glquad/internal/config"
	"glquad/internal/graphics"
	"glquad/internal/graphics/renderables/quad"
	"glquad/internal/graphics/renderer"
	"glquad/internal/input"
	"glquad/internal/profiling"
	"glquad/internal/watch"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

const slowFrame = 16 * time.Millisecond

// App owns the window, the shader program and the render loop.
// All methods must be called from the main OS thread.
type App struct {
	cfg    *config.Config
	logger *zap.Logger

	window   *glfw.Window
	input    *input.InputManager
	renderer *renderer.Renderer
	shader   *graphics.Shader
	color    *animation.ColorPulse
	watcher  *watch.ShaderWatcher

	limiter  *FPSLimiter
	fps      *FPSCounter
	frame    uint64
	lastTime time.Time
}

// New opens the window and uploads everything needed for the first frame.
// On error every resource acquired so far has been released.
func New(cfg *config.Config, logger *zap.Logger) (_ *App, err error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("could not initialize GLFW: %w", err)
	}

	a := &App{
		cfg:    cfg,
		logger: logger,
		input:  input.NewInputManager(),
		color: animation.NewColorPulse(
			config.Vec4(cfg.Animation.Base),
			cfg.Animation.Channel,
			cfg.Animation.Start,
			cfg.Animation.Step,
		),
	}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	a.window, err = SetupWindow(cfg.Window)
	if err != nil {
		return nil, err
	}
	a.logContextInfo()

	a.shader, err = graphics.NewShaderFromFile(cfg.Shader.Path, logger)
	if err != nil {
		return nil, err
	}
	a.shader.Use()
	if err = a.shader.SetVec4(cfg.Shader.Uniform, config.Vec4(cfg.Animation.Initial)); err != nil {
		return nil, err
	}

	a.renderer, err = renderer.NewRenderer(logger, config.Vec4(cfg.Animation.ClearColor),
		quad.NewQuad(cfg.Shader.Uniform, cfg.DebugGL),
	)
	if err != nil {
		return nil, err
	}

	if cfg.Shader.Watch {
		a.watcher, err = watch.New(cfg.Shader.Path, logger)
		if err != nil {
			return nil, err
		}
	}

	a.input.Attach(a.window)
	a.window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		a.renderer.UpdateViewport(width, height)
	})

	limit := 0
	if cfg.Window.SwapInterval == 0 {
		limit = cfg.Window.FPSLimit
	}
	a.limiter = NewFPSLimiter(limit)

	return a, nil
}

// Run draws frames until the window is closed or ctx is done
func (a *App) Run(ctx context.Context) error {
	var reloads <-chan string
	if a.watcher != nil {
		if err := a.watcher.Start(ctx); err != nil {
			return err
		}
		reloads = a.watcher.Reloads()
	}

	a.lastTime = time.Now()
	a.fps = NewFPSCounter(a.lastTime, time.Second)

	for !a.window.ShouldClose() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case path := <-reloads:
			a.reloadShader(path)
		default:
		}
		a.tick()
	}
	return nil
}

func (a *App) tick() {
	profiling.ResetFrame()
	start := time.Now()
	dt := start.Sub(a.lastTime).Seconds()
	a.lastTime = start

	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()
	a.handleInput()

	a.renderer.Render(renderer.RenderContext{
		Shader: a.shader,
		Color:  a.color.Color(),
		Frame:  a.frame,
		DT:     dt,
	})
	a.color.Step()

	if work := time.Since(start); work > slowFrame {
		a.logger.Warn("slow frame",
			zap.Uint64("frame", a.frame),
			zap.Duration("duration", work),
			profiling.Field("top", profiling.TopN(5)))
	}

	a.window.SwapBuffers()
	a.input.PostUpdate()
	a.frame++

	if fps, ok := a.fps.Tick(time.Now()); ok {
		a.logger.Debug("frame rate", zap.Int("fps", fps))
	}

	a.limiter.Wait()
}

func (a *App) handleInput() {
	if a.input.JustPressed(input.ActionQuit) {
		a.window.SetShouldClose(true)
	}
	if a.input.JustPressed(input.ActionReloadShader) {
		a.reloadShader(a.cfg.Shader.Path)
	}
	if a.input.JustPressed(input.ActionTogglePause) {
		paused := a.color.Pulse.TogglePause()
		a.logger.Info("animation toggled", zap.Bool("paused", paused))
	}
}

// reloadShader swaps in a freshly built program. A program that fails to
// build, or lacks the color uniform, is discarded and the old one kept.
func (a *App) reloadShader(path string) {
	defer profiling.Track("shader.Reload")()

	next, err := graphics.NewShaderFromFile(path, a.logger)
	if err != nil {
		a.logger.Error("shader reload failed, keeping previous program", zap.String("path", path), zap.Error(err))
		return
	}
	next.Use()
	if err := next.SetVec4(a.cfg.Shader.Uniform, a.color.Color()); err != nil {
		next.Delete()
		a.shader.Use()
		a.logger.Error("reloaded shader rejected, keeping previous program", zap.String("path", path), zap.Error(err))
		return
	}

	a.shader.Delete()
	a.shader = next
	a.logger.Info("shader reloaded", zap.String("path", path), zap.Uint32("program", next.ID))
}

func (a *App) logContextInfo() {
	a.logger.Info("OpenGL context ready",
		zap.String("vendor", gl.GoStr(gl.GetString(gl.VENDOR))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)
}

// Close releases GPU objects, the window and GLFW. Safe after a partial New.
func (a *App) Close() {
	if a.watcher != nil {
		a.watcher.Stop()
		a.watcher = nil
	}
	if a.renderer != nil {
		a.renderer.Dispose()
		a.renderer = nil
	}
	if a.shader != nil {
		a.shader.Delete()
		a.shader = nil
	}
	if a.window != nil {
		a.window.Destroy()
		a.window = nil
	}
	glfw.Terminate()
}
