package layout

import "math"

// 单元格几何常量（毫米）。
const (
	LabelBandHeight  = 8.0
	AnswerCellHeight = 14.0
	answerInset      = 1.5
	answerGap        = 1.5
)

// Drawing 是单元格在页面坐标下产出的绘制原语。
type Drawing struct {
	Lines []Line
	Texts []TextBox
}

// Cell 是网格中的一个格子。实现均为值类型，Draw 只返回绝对坐标的原语。
type Cell interface {
	Width() float64
	Height() float64
	// Placeholder 为 true 时格子只占位，不绘制任何内容。
	Placeholder() bool
	Draw(x, y float64) Drawing
}

// LabelStyle 是文本的测量上下文：字体角色、字号（mm）以及测量用的排版后端。
type LabelStyle struct {
	Typesetter Typesetter
	Font       FontResource
	Role       string
	Size       float64
}

// Measure 返回 text 以该样式单行排版时的宽度。没有排版后端时按字符粗略估算。
func (s LabelStyle) Measure(text string) (float64, error) {
	if s.Typesetter == nil {
		return estimateTextWidth(text, s.Size), nil
	}
	lines, err := s.Typesetter.LayoutLines(text, 0, s.Font, s.Size, s.Size, "nowrap")
	if err != nil {
		return 0, err
	}
	w := 0.0
	for _, ln := range lines {
		w = math.Max(w, ln.Width)
	}
	return w, nil
}

// estimateTextWidth 以 CJK 全角、其余半角粗估宽度。
func estimateTextWidth(content string, size float64) float64 {
	w := 0.0
	for _, r := range content {
		if r >= 0x2E80 {
			w += size
		} else {
			w += size * 0.55
		}
	}
	return w
}

// label 是一行已测量的居中文本。
type label struct {
	content string
	role    string
	size    float64
	width   float64
}

func newLabel(content string, style LabelStyle) (label, error) {
	w, err := style.Measure(content)
	if err != nil {
		return label{}, err
	}
	return label{content: content, role: style.Role, size: style.Size, width: w}, nil
}

// box 把 label 在宽 cellWidth 的格子中水平居中；文本超宽时两侧对称溢出。
func (l label) box(x, y, cellWidth float64) TextBox {
	return TextBox{
		Content:    l.content,
		X:          x + (cellWidth-l.width)/2,
		Y:          y,
		Width:      l.width,
		LineHeight: l.size,
		Font:       l.role,
		FontSize:   l.size,
		Color:      ColorText,
		Lines:      []TextLine{{Content: l.content, Width: l.width, Height: l.size}},
		Height:     l.size,
	}
}

// PracticeCell 是练习页的格子：上方四线格，下方居中显示中文释义。
type PracticeCell struct {
	width float64
	gloss label
}

// NewPracticeCell 通过 style 测量释义宽度并构造格子。
func NewPracticeCell(gloss string, width float64, style LabelStyle) (PracticeCell, error) {
	l, err := newLabel(gloss, style)
	if err != nil {
		return PracticeCell{}, err
	}
	return PracticeCell{width: width, gloss: l}, nil
}

func (c PracticeCell) Width() float64    { return c.width }
func (c PracticeCell) Height() float64   { return GuideHeight + LabelBandHeight }
func (c PracticeCell) Placeholder() bool { return false }
func (c PracticeCell) Gloss() string     { return c.gloss.content }

// LabelOffset 是释义相对格子左边缘的水平偏移，可为负。
func (c PracticeCell) LabelOffset() float64 { return (c.width - c.gloss.width) / 2 }

func (c PracticeCell) Draw(x, y float64) Drawing {
	bandTop := y + GuideHeight + (LabelBandHeight-c.gloss.size)/2
	return Drawing{
		Lines: guideLines(x, y, c.width, GuideHeight),
		Texts: []TextBox{c.gloss.box(x, bandTop, c.width)},
	}
}

// AnswerCell 是答案页的格子：释义在上、英文在下，均居中，没有四线格。
type AnswerCell struct {
	width float64
	gloss label
	term  label
}

// NewAnswerCell 分别用 glossStyle 与 termStyle 测量两行文本。
func NewAnswerCell(gloss, term string, width float64, glossStyle, termStyle LabelStyle) (AnswerCell, error) {
	g, err := newLabel(gloss, glossStyle)
	if err != nil {
		return AnswerCell{}, err
	}
	t, err := newLabel(term, termStyle)
	if err != nil {
		return AnswerCell{}, err
	}
	return AnswerCell{width: width, gloss: g, term: t}, nil
}

func (c AnswerCell) Width() float64    { return c.width }
func (c AnswerCell) Height() float64   { return AnswerCellHeight }
func (c AnswerCell) Placeholder() bool { return false }
func (c AnswerCell) Term() string      { return c.term.content }

func (c AnswerCell) Draw(x, y float64) Drawing {
	return Drawing{Texts: []TextBox{
		c.gloss.box(x, y+answerInset, c.width),
		c.term.box(x, y+answerInset+c.gloss.size+answerGap, c.width),
	}}
}

// placeholder 用于补齐网格最后一行。
type placeholder struct {
	width, height float64
}

// Placeholder 返回一个不绘制任何内容的格子。
func Placeholder(width, height float64) Cell { return placeholder{width: width, height: height} }

func (p placeholder) Width() float64                { return p.width }
func (p placeholder) Height() float64               { return p.height }
func (p placeholder) Placeholder() bool             { return true }
func (p placeholder) Draw(float64, float64) Drawing { return Drawing{} }
