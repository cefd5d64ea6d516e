// Package config 汇总 dictsheet 的运行配置：默认值、YAML 配置文件与 DICTSHEET_ 环境变量，
// 依次覆盖后解码并校验。
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/ByLCY/dictsheet/fonts"
	"github.com/ByLCY/dictsheet/layout"
	"github.com/ByLCY/dictsheet/vocab"
)

// Config 是完整配置。
type Config struct {
	Data     DataConfig     `koanf:"data"`
	Output   OutputConfig   `koanf:"output"`
	Page     PageConfig     `koanf:"page"`
	Fonts    FontsConfig    `koanf:"fonts"`
	Labels   LabelsConfig   `koanf:"labels"`
	Generate GenerateConfig `koanf:"generate"`
	Log      LogConfig      `koanf:"log"`
}

type DataConfig struct {
	CSV string `koanf:"csv" validate:"required"`
}

// OutputConfig 控制输出位置与文件名。Debug 非空时额外写出布局 JSON。
type OutputConfig struct {
	Dir    string `koanf:"dir"    validate:"required"`
	Prefix string `koanf:"prefix" validate:"required,excludesall=/\\"`
	Ext    string `koanf:"ext"    validate:"required,alphanum"`
	Debug  string `koanf:"debug"`
}

type PageConfig struct {
	Size      string `koanf:"size"      validate:"pagesize"`
	Landscape bool   `koanf:"landscape"`
	Margin    string `koanf:"margin"    validate:"required,margin"`
}

// FontsConfig 为各字体角色指定字体来源（文件路径或 builtin:名称）。
// 留空的角色依次尝试 Candidates 中第一个存在的文件，最后退回内置字体。
type FontsConfig struct {
	Title      string   `koanf:"title"`
	Gloss      string   `koanf:"gloss"`
	Term       string   `koanf:"term"`
	Candidates []string `koanf:"candidates"`
}

// LabelsConfig 对应 layout.Labels。Sections 的键可写英文或中文类别名。
type LabelsConfig struct {
	Document string            `koanf:"document" validate:"required"`
	Answer   string            `koanf:"answer"   validate:"required"`
	Title    string            `koanf:"title"    validate:"required,template=label section"`
	Heading  string            `koanf:"heading"  validate:"required,template=number name"`
	Info     string            `koanf:"info"`
	Numerals []string          `koanf:"numerals" validate:"min=1,dive,required"`
	Sections map[string]string `koanf:"sections"`
}

// GenerateConfig 是 generate 命令的默认参数。Count 为 -1 表示全部。
type GenerateConfig struct {
	Copies int `koanf:"copies" validate:"min=1,max=100"`
	Count  int `koanf:"count"  validate:"min=-1"`
}

type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `koanf:"json"`
}

// Default 返回内置默认配置。
func Default() *Config {
	labels := layout.DefaultLabels()
	return &Config{
		Data: DataConfig{CSV: "words.csv"},
		Output: OutputConfig{
			Dir:    "output",
			Prefix: "默写纸",
			Ext:    "pdf",
		},
		Page: PageConfig{Size: "A4", Margin: "2cm"},
		Fonts: FontsConfig{
			Candidates: append([]string(nil), fonts.DefaultCandidates...),
		},
		Labels: LabelsConfig{
			Document: labels.Document,
			Answer:   labels.Answer,
			Title:    labels.TitleTemplate,
			Heading:  labels.Heading,
			Info:     labels.Info,
			Numerals: labels.Numerals,
			Sections: map[string]string{},
		},
		Generate: GenerateConfig{Copies: 1, Count: -1},
		Log:      LogConfig{Level: "info"},
	}
}

// PageSpec 把纸张配置转换为排版参数。
func (c *Config) PageSpec() (layout.PageSpec, error) {
	margin, err := layout.ParseMargin(c.Page.Margin)
	if err != nil {
		return layout.PageSpec{}, fmt.Errorf("page.margin: %w", err)
	}
	return layout.PageSpec{Size: strings.ToUpper(c.Page.Size), Landscape: c.Page.Landscape, Margin: margin}, nil
}

// LayoutLabels 把文字配置转换为 layout.Labels。
func (c *Config) LayoutLabels() (layout.Labels, error) {
	l := c.Labels
	out := layout.Labels{
		Document:      l.Document,
		Answer:        l.Answer,
		TitleTemplate: l.Title,
		Heading:       l.Heading,
		Info:          l.Info,
		Numerals:      l.Numerals,
	}
	if len(l.Sections) > 0 {
		out.Sections = make(map[vocab.Type]string, len(l.Sections))
		for key, name := range l.Sections {
			t, err := vocab.ParseType(key)
			if err != nil {
				return layout.Labels{}, fmt.Errorf("labels.sections: %w", err)
			}
			out.Sections[t] = name
		}
	}
	return out, nil
}

// CountLimit 返回抽取数量，nil 表示全部。
func (g GenerateConfig) CountLimit() *int {
	if g.Count < 0 {
		return nil
	}
	n := g.Count
	return &n
}

// Resources 为每个字体角色确定字体来源。fs 用于探测候选字体文件是否存在。
func (f FontsConfig) Resources(fs afero.Fs) map[string]layout.FontResource {
	located, ok := fonts.Locate(fs, f.Candidates)
	if !ok {
		located = fonts.Fallback
	}
	pick := func(src string) string {
		if strings.TrimSpace(src) != "" {
			return src
		}
		return located
	}
	return map[string]layout.FontResource{
		layout.FontTitle: {Name: layout.FontTitle, Src: pick(f.Title), Fallback: fonts.Fallback},
		layout.FontGloss: {Name: layout.FontGloss, Src: pick(f.Gloss), Fallback: fonts.Fallback},
		layout.FontTerm:  {Name: layout.FontTerm, Src: pick(f.Term), Fallback: fonts.Fallback},
	}
}
