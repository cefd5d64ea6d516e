// Package generator 把抽取、排版、渲染与写出串成一次多份默写纸的生成过程。
package generator

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/ByLCY/dictsheet/layout"
	"github.com/ByLCY/dictsheet/renderer"
	"github.com/ByLCY/dictsheet/selection"
	"github.com/ByLCY/dictsheet/vocab"
)

// 默认的文件名前缀与扩展名。
const (
	DefaultPrefix = "默写纸"
	DefaultExt    = "pdf"
)

// Options 配置 Generator。Index 与 Backend 必填，其余字段有默认值。
type Options struct {
	Index    *vocab.Index
	Backend  renderer.Backend
	Fs       afero.Fs
	Source   selection.Source
	Now      func() time.Time
	Progress ProgressFunc

	Page   layout.PageSpec
	Fonts  map[string]layout.FontResource
	Labels layout.Labels
	Meta   layout.DocumentMeta

	Prefix string
	Ext    string
	// DebugDir 非空时每份额外写出布局 JSON。
	DebugDir string
}

// Job 是一次生成请求。
type Job struct {
	Units     []string
	Types     []vocab.Type
	Count     *int
	Copies    int
	OutputDir string
	// Prefix 覆盖文件名前缀。
	Prefix string
}

// Report 汇总一次 Run 的结果。
type Report struct {
	Files   []string
	Skipped []int
	Failed  []*RenderError
}

// Generator 顺序生成各份文档，运行期间只读访问索引。
type Generator struct {
	index    *vocab.Index
	backend  renderer.Backend
	fs       afero.Fs
	source   selection.Source
	now      func() time.Time
	progress ProgressFunc
	opts     Options
}

// New 校验并补全 Options。
func New(opts Options) (*Generator, error) {
	if opts.Index == nil {
		return nil, errors.New("generator: 缺少词汇索引")
	}
	if opts.Backend == nil {
		return nil, errors.New("generator: 缺少渲染后端")
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	if opts.Ext == "" {
		opts.Ext = DefaultExt
	}
	if opts.Page.Size == "" {
		opts.Page = layout.DefaultPageSpec()
	}
	return &Generator{
		index:    opts.Index,
		backend:  opts.Backend,
		fs:       opts.Fs,
		source:   opts.Source,
		now:      opts.Now,
		progress: opts.Progress,
		opts:     opts,
	}, nil
}

// LoadCSV 从文件系统读取 CSV 并整体替换索引内容，返回记录条数。
func (g *Generator) LoadCSV(path string) (int, error) {
	f, err := g.fs.Open(path)
	if err != nil {
		return 0, fmt.Errorf("打开词汇文件 %s 失败: %w", path, err)
	}
	defer f.Close()

	records, err := vocab.ReadCSV(f)
	if err != nil {
		return 0, fmt.Errorf("读取词汇文件 %s 失败: %w", path, err)
	}
	if err := g.index.Load(records); err != nil {
		return 0, fmt.Errorf("加载词汇文件 %s 失败: %w", path, err)
	}
	n := g.index.Len()
	g.emit(loadedEvent(n))
	return n, nil
}

// Run 依次生成 job.Copies 份文档。
// 空抽取的份被跳过；普通失败记入 Report 后继续；系统性失败立即中止，
// 此时同时返回已完成部分的 Report 与该错误。
func (g *Generator) Run(job Job) (*Report, error) {
	if len(job.Units) == 0 {
		return nil, errors.New("至少需要指定一个单元")
	}
	if job.Copies < 1 {
		return nil, fmt.Errorf("份数至少为 1，实际为 %d", job.Copies)
	}
	dir := job.OutputDir
	if dir == "" {
		dir = "."
	}
	prefix := job.Prefix
	if prefix == "" {
		prefix = g.opts.Prefix
	}

	report := &Report{}
	if err := g.fs.MkdirAll(dir, 0o755); err != nil {
		return report, g.abort(report, &RenderError{Path: dir, Systemic: true, Err: err}, job.Copies)
	}

	req := selection.Request{Units: job.Units, Types: job.Types, Count: job.Count}
	for i := 1; i <= job.Copies; i++ {
		g.emit(startedEvent(i, job.Copies))

		sel := selection.Select(g.index, req, g.source)
		if len(sel) == 0 {
			report.Skipped = append(report.Skipped, i)
			g.emit(skippedEvent(i, job.Copies, job))
			continue
		}

		path := filepath.Join(dir, OutputName(prefix, job.Units, g.now(), i, g.opts.Ext))
		if err := g.produce(sel, SectionTitle(job.Units), path); err != nil {
			rerr := &RenderError{Copy: i, Path: path, Systemic: isSystemic(err), Err: err}
			report.Failed = append(report.Failed, rerr)
			if rerr.Systemic {
				return report, g.abort(report, rerr, job.Copies)
			}
			g.emit(failedEvent(rerr, job.Copies))
			continue
		}
		report.Files = append(report.Files, path)
		g.emit(writtenEvent(i, job.Copies, path))
	}

	g.emit(finishedEvent(len(report.Files)))
	return report, nil
}

// abort 在系统性失败时仍发出失败与完成事件，完成事件中的份数为实际写出的文件数。
func (g *Generator) abort(report *Report, rerr *RenderError, total int) error {
	g.emit(failedEvent(rerr, total))
	g.emit(finishedEvent(len(report.Files)))
	return rerr
}

// produce 完成一份文档的排版、渲染与写出。
func (g *Generator) produce(sel []vocab.Record, title, path string) error {
	doc, err := layout.Compose(sel, title, layout.ComposeOptions{
		Typesetter: g.backend,
		Fonts:      g.opts.Fonts,
		Labels:     g.opts.Labels,
		Meta:       g.opts.Meta,
	})
	if err != nil {
		return err
	}
	res, err := layout.Build(doc, layout.BuildOptions{
		Typesetter: g.backend,
		Page:       g.opts.Page,
		Fonts:      g.opts.Fonts,
	})
	if err != nil {
		return fmt.Errorf("布局计算失败: %w", err)
	}
	if g.opts.DebugDir != "" {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if err := layout.WriteDebugJSON(g.fs, res, filepath.Join(g.opts.DebugDir, base+".layout.json")); err != nil {
			return fmt.Errorf("写入布局调试文件失败: %w", err)
		}
	}
	data, err := g.backend.Render(res)
	if err != nil {
		return fmt.Errorf("渲染失败: %w", err)
	}
	if err := afero.WriteFile(g.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("写入文件失败: %w", err)
	}
	return nil
}
