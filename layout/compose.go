package layout

import (
	"fmt"

	"github.com/ByLCY/dictsheet/binding"
	"github.com/ByLCY/dictsheet/vocab"
)

// 文本字号（毫米）。
const (
	TitleSize   = 24 * PtToMm
	InfoSize    = 12 * PtToMm
	HeadingSize = 16 * PtToMm
	GlossSize   = 10 * PtToMm
	TermSize    = 12 * PtToMm
)

// 块间距（毫米）。
const (
	titleGap   = 10.0
	infoGap    = 12.0
	headingGap = 4.0
	sectionGap = 8.0
)

// Labels 是文档中出现的固定文字。
type Labels struct {
	Document      string
	Answer        string
	TitleTemplate string // 可用变量：${label} ${section}
	Heading       string // 可用变量：${number} ${name}
	Info          string
	Numerals      []string
	Sections      map[vocab.Type]string
}

// DefaultLabels 返回中文默写纸的默认文字。
func DefaultLabels() Labels {
	return Labels{
		Document:      "英语单词默写",
		Answer:        "英语单词默写答案",
		TitleTemplate: "${label} - ${section}",
		Heading:       "${number}、${name}",
		Info:          "日期：__________  姓名：__________  分数：__________",
		Numerals:      []string{"一", "二", "三"},
	}
}

func (l Labels) withDefaults() Labels {
	def := DefaultLabels()
	if l.Document == "" {
		l.Document = def.Document
	}
	if l.Answer == "" {
		l.Answer = def.Answer
	}
	if l.TitleTemplate == "" {
		l.TitleTemplate = def.TitleTemplate
	}
	if l.Heading == "" {
		l.Heading = def.Heading
	}
	if l.Info == "" {
		l.Info = def.Info
	}
	if len(l.Numerals) == 0 {
		l.Numerals = def.Numerals
	}
	return l
}

func (l Labels) sectionName(t vocab.Type) string {
	if name, ok := l.Sections[t]; ok && name != "" {
		return name
	}
	return t.Label()
}

func (l Labels) heading(idx int, t vocab.Type) string {
	num := fmt.Sprint(idx + 1)
	if idx < len(l.Numerals) {
		num = l.Numerals[idx]
	}
	return binding.Interpolate(l.Heading, binding.Vars{"number": num, "name": l.sectionName(t)})
}

// ComposeOptions 提供测量文字所需的排版后端与字体，以及文档文字和元信息。
type ComposeOptions struct {
	Typesetter Typesetter
	Fonts      map[string]FontResource
	Labels     Labels
	Meta       DocumentMeta
}

func (o ComposeOptions) style(role string, size float64) LabelStyle {
	return LabelStyle{Typesetter: o.Typesetter, Font: o.Fonts[role], Role: role, Size: size}
}

// Compose 生成一份完整文档：标题、信息栏、按单词/短语/句子分节的练习网格，
// 分页后是结构相同的答案页。相同输入总是得到结构相同的文档。
func Compose(selection []vocab.Record, sectionTitle string, opts ComposeOptions) (*Document, error) {
	labels := opts.Labels.withDefaults()
	groups := partition(selection)

	title := binding.Interpolate(labels.TitleTemplate, binding.Vars{"label": labels.Document, "section": sectionTitle})
	answerTitle := binding.Interpolate(labels.TitleTemplate, binding.Vars{"label": labels.Answer, "section": sectionTitle})

	meta := opts.Meta
	meta.Title = title
	meta.Subject = sectionTitle
	doc := &Document{Meta: meta}

	doc.text(TextBlock{Content: title, Role: FontTitle, Size: TitleSize, Align: "center"})
	doc.spacer(titleGap)
	doc.text(TextBlock{Content: labels.Info, Role: FontGloss, Size: InfoSize})
	doc.spacer(infoGap)

	glossStyle := opts.style(FontGloss, GlossSize)
	practice := func(rec vocab.Record, width float64) (Cell, error) {
		return NewPracticeCell(rec.Gloss, width, glossStyle)
	}
	if err := addSections(doc, groups, labels, practice); err != nil {
		return nil, fmt.Errorf("排版练习页失败: %w", err)
	}

	doc.pageBreak()
	doc.text(TextBlock{Content: answerTitle, Role: FontTitle, Size: TitleSize, Align: "center"})
	doc.spacer(infoGap)

	termStyle := opts.style(FontTerm, TermSize)
	answer := func(rec vocab.Record, width float64) (Cell, error) {
		return NewAnswerCell(rec.Gloss, rec.Term, width, glossStyle, termStyle)
	}
	if err := addSections(doc, groups, labels, answer); err != nil {
		return nil, fmt.Errorf("排版答案页失败: %w", err)
	}
	return doc, nil
}

// partition 按类别稳定分组。
func partition(records []vocab.Record) map[vocab.Type][]vocab.Record {
	out := make(map[vocab.Type][]vocab.Record, len(vocab.Types))
	for _, r := range records {
		out[r.Type] = append(out[r.Type], r)
	}
	return out
}

// addSections 按 word、phrase、sentence 顺序输出非空分节，标题序号按实际输出的分节连续计数。
func addSections(doc *Document, groups map[vocab.Type][]vocab.Record, labels Labels, factory CellFactory) error {
	emitted := 0
	for _, t := range vocab.Types {
		grid, err := Pack(groups[t], t, factory)
		if err != nil {
			return err
		}
		if grid == nil {
			continue
		}
		if emitted > 0 {
			doc.spacer(sectionGap)
		}
		doc.text(TextBlock{Content: labels.heading(emitted, t), Role: FontTitle, Size: HeadingSize, KeepWithNext: true})
		doc.spacer(headingGap)
		doc.grid(grid)
		emitted++
	}
	return nil
}
