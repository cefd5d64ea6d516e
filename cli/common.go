package cli

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ByLCY/dictsheet/generator"
	"github.com/ByLCY/dictsheet/layout"
	"github.com/ByLCY/dictsheet/logger"
	"github.com/ByLCY/dictsheet/selection"
	"github.com/ByLCY/dictsheet/vocab"
)

// scopeFlags 是 generate 与 preview 共用的抽取范围参数。
type scopeFlags struct {
	csv   string
	unit  []string
	units string
	grade string
	types string
}

func (s *scopeFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&s.csv, "csv", "", "词汇 CSV 文件（默认取配置 data.csv）")
	fs.StringSliceVar(&s.unit, "unit", nil, "单元，可重复指定")
	fs.StringVar(&s.units, "units", "", "以逗号分隔的单元列表")
	fs.StringVar(&s.grade, "grade", "", "年级，展开为该年级的全部单元")
	fs.StringVar(&s.types, "type", "", "类别过滤：word/phrase/sentence 或 单词/短语/句子，逗号分隔")
}

// csvPath 返回命令行或配置中的 CSV 路径。
func (s *scopeFlags) csvPath(a *app) string {
	if s.csv != "" {
		return s.csv
	}
	return a.cfg.Data.CSV
}

// request 把参数解析为抽取请求。单元按 --unit、--units、--grade 的顺序合并。
func (s *scopeFlags) request(ix *vocab.Index) (selection.Request, error) {
	units := append([]string(nil), s.unit...)
	units = append(units, splitList(s.units)...)
	if s.grade != "" {
		gradeUnits := ix.UnitsFor(s.grade)
		if len(gradeUnits) == 0 {
			return selection.Request{}, fmt.Errorf("年级 %s 下没有单元", s.grade)
		}
		units = append(units, gradeUnits...)
	}
	if len(units) == 0 {
		return selection.Request{}, fmt.Errorf("请通过 --unit、--units 或 --grade 指定至少一个单元")
	}
	types, err := vocab.ParseTypes(s.types)
	if err != nil {
		return selection.Request{}, err
	}
	return selection.Request{Units: units, Types: types}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// loadIndex 读取 CSV 并建立索引。
func (a *app) loadIndex(path string) (*vocab.Index, error) {
	f, err := a.deps.Fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开词汇文件 %s 失败: %w", path, err)
	}
	defer f.Close()
	records, err := vocab.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("读取词汇文件 %s 失败: %w", path, err)
	}
	ix := vocab.NewIndex()
	if err := ix.Load(records); err != nil {
		return nil, fmt.Errorf("加载词汇文件 %s 失败: %w", path, err)
	}
	return ix, nil
}

// renderSettings 是生成时可由命令行覆盖的排版参数。
type renderSettings struct {
	font  string
	debug string
	seed  uint64
}

func (r *renderSettings) register(fs *pflag.FlagSet) {
	fs.StringVar(&r.font, "font", "", "所有文字使用的字体文件或 builtin:名称")
	fs.StringVar(&r.debug, "debug", "", "布局调试 JSON 输出目录")
	fs.Uint64Var(&r.seed, "seed", 0, "随机种子，便于复现（默认取当前时间）")
}

// newGenerator 按配置与参数组装 Generator，进度事件转发给日志。
func (a *app) newGenerator(cmd *cobra.Command, ix *vocab.Index, rs renderSettings) (*generator.Generator, error) {
	cfg := a.cfg
	page, err := cfg.PageSpec()
	if err != nil {
		return nil, err
	}
	labels, err := cfg.LayoutLabels()
	if err != nil {
		return nil, err
	}
	fontCfg := cfg.Fonts
	if rs.font != "" {
		fontCfg.Title, fontCfg.Gloss, fontCfg.Term = rs.font, rs.font, rs.font
	}
	fontSet := fontCfg.Resources(a.deps.Fs)

	seed := rs.seed
	if !cmd.Flags().Changed("seed") {
		seed = uint64(a.deps.Now().UnixNano())
	}
	debugDir := rs.debug
	if debugDir == "" {
		debugDir = cfg.Output.Debug
	}

	log := logger.FromContext(cmd.Context())
	log.Debug("生成参数", "seed", seed, "page", page.Size, "gloss_font", fontSet[layout.FontGloss].Src)

	return generator.New(generator.Options{
		Index:    ix,
		Backend:  a.deps.NewBackend(a.deps.Fs),
		Fs:       a.deps.Fs,
		Source:   rand.New(rand.NewPCG(seed, seed)),
		Now:      a.deps.Now,
		Progress: progressLogger(log),
		Page:     page,
		Fonts:    fontSet,
		Labels:   labels,
		Prefix:   cfg.Output.Prefix,
		Ext:      cfg.Output.Ext,
		DebugDir: debugDir,
		Meta:     layout.DocumentMeta{Creator: "dictsheet", Author: "dictsheet"},
	})
}

// progressLogger 按事件种类选择日志级别。
func progressLogger(log logger.Logger) generator.ProgressFunc {
	return func(ev generator.Event) {
		switch {
		case ev.Kind == generator.EventCopyFailed:
			log.Error(ev.Message)
		case ev.Warning():
			log.Warn(ev.Message)
		default:
			log.Info(ev.Message)
		}
	}
}

// reportError 汇总非系统性失败。
func reportError(report *generator.Report) error {
	if report == nil || len(report.Failed) == 0 {
		return nil
	}
	return fmt.Errorf("共有 %d 份生成失败", len(report.Failed))
}

// abortError 在系统性失败时保留部分成功的结果：记录并在错误中带上已写出的份数。
func abortError(log logger.Logger, report *generator.Report, err error) error {
	if report == nil {
		return err
	}
	log.Warn("生成已中止", "files", len(report.Files), "failed", len(report.Failed))
	return fmt.Errorf("已生成 %d 份后中止: %w", len(report.Files), err)
}
