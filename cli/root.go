// Package cli 实现 dictsheet 命令行：generate、units、preview 与 plan。
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ByLCY/dictsheet/config"
	"github.com/ByLCY/dictsheet/fonts"
	"github.com/ByLCY/dictsheet/logger"
	"github.com/ByLCY/dictsheet/renderer"
	canvasrenderer "github.com/ByLCY/dictsheet/renderer/canvas"
	"github.com/ByLCY/dictsheet/version"
)

// Deps 是命令行运行所需的外部依赖，测试时可替换。
type Deps struct {
	Fs  afero.Fs
	Out io.Writer
	Err io.Writer
	Now func() time.Time
	// NewBackend 创建排版与渲染后端。
	NewBackend func(fs afero.Fs) renderer.Backend
}

func (d Deps) withDefaults() Deps {
	if d.Fs == nil {
		d.Fs = afero.NewOsFs()
	}
	if d.Out == nil {
		d.Out = os.Stdout
	}
	if d.Err == nil {
		d.Err = os.Stderr
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.NewBackend == nil {
		d.NewBackend = func(fs afero.Fs) renderer.Backend {
			return canvasrenderer.NewRenderer(canvasrenderer.Options{Fs: fs, Fallback: fonts.Fallback})
		}
	}
	return d
}

// app 在 PersistentPreRunE 中完成配置加载后供各子命令共享。
type app struct {
	deps Deps
	cfg  *config.Config
}

// Execute 运行命令行。
func Execute(ctx context.Context) error {
	return NewRootCmd(Deps{}).ExecuteContext(ctx)
}

// NewRootCmd 构造根命令。
func NewRootCmd(deps Deps) *cobra.Command {
	a := &app{deps: deps.withDefaults()}

	root := &cobra.Command{
		Use:           "dictsheet",
		Short:         "英语单词默写纸生成器",
		Long:          "从词汇 CSV 中按单元、年级与类别抽取词汇，生成带四线三格书写格的默写纸及答案页（PDF）。",
		Version:       version.Get().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(a.deps.Out)
	root.SetErr(a.deps.Err)
	root.SetVersionTemplate("dictsheet {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.String("config", "", "YAML 配置文件路径")
	pf.String("log-level", "", "日志级别：debug, info, warn, error")
	pf.Bool("log-json", false, "以 JSON 格式输出日志")

	root.AddCommand(
		newGenerateCmd(a),
		newUnitsCmd(a),
		newPreviewCmd(a),
		newPlanCmd(a),
	)
	return root
}

// setup 加载配置，按命令行参数调整日志设置，并把日志器放入命令的 context。
func (a *app) setup(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	cfg, err := config.NewLoader(a.deps.Fs).Load(path)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		level, _ := cmd.Flags().GetString("log-level")
		switch logger.LogLevel(level) {
		case logger.DebugLevel, logger.InfoLevel, logger.WarnLevel, logger.ErrorLevel:
			cfg.Log.Level = level
		default:
			return fmt.Errorf("无效的日志级别：%s", level)
		}
	}
	if cmd.Flags().Changed("log-json") {
		cfg.Log.JSON, _ = cmd.Flags().GetBool("log-json")
	}
	a.cfg = cfg

	log := logger.NewLogger(&logger.Config{
		Level:      logger.LogLevel(cfg.Log.Level),
		Output:     a.deps.Err,
		JSON:       cfg.Log.JSON,
		TimeFormat: "15:04:05",
	})
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logger.ContextWithLogger(ctx, log))
	return nil
}
