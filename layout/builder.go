package layout

import (
	"fmt"
	"math"
	"strings"
)

// Build 把文档元素流排到页面上：文本块顺序堆叠，网格按行分页，
// 标题与其后第一行保持在同一页。
func Build(doc *Document, opts BuildOptions) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	if opts.Typesetter == nil {
		return nil, fmt.Errorf("layout: 缺少排版后端 Typesetter")
	}
	page := opts.Page
	if page.Size == "" && page.Margin == (Margin{}) {
		page = DefaultPageSpec()
	}
	width, height, err := ResolvePageSize(page)
	if err != nil {
		return nil, err
	}
	margin := page.Margin
	contentWidth := width - margin.Left - margin.Right
	if contentWidth <= 0 || height-margin.Top-margin.Bottom <= 0 {
		return nil, fmt.Errorf("边距过大，页面没有可用的内容区域")
	}

	fonts := make(map[string]FontResource, len(opts.Fonts))
	for k, v := range opts.Fonts {
		fonts[k] = v
	}

	collector := newPageCollector(width, height, margin)
	root := &flowContext{
		baseX:      margin.Left,
		width:      contentWidth,
		cursorY:    collector.contentTop(),
		typesetter: opts.Typesetter,
		fonts:      fonts,
		collector:  collector,
	}

	for i, el := range doc.Elements {
		switch el.Kind {
		case ElementText:
			if err := root.placeText(el.Text, doc.Elements[i+1:]); err != nil {
				return nil, err
			}
		case ElementSpacer:
			root.space(el.Space)
		case ElementGrid:
			root.placeGrid(el.Grid)
		case ElementPageBreak:
			root.pageBreak()
		default:
			return nil, fmt.Errorf("未知的文档元素：%s", el.Kind)
		}
	}

	return &Result{
		Pages:     collector.pages(),
		Resources: ResourceSet{Fonts: fonts},
		Meta:      doc.Meta,
	}, nil
}

type pageAccumulator struct {
	texts []TextBox
	lines []Line
}

func (p *pageAccumulator) appendText(tb TextBox) {
	p.texts = append(p.texts, tb)
}

func (p *pageAccumulator) appendDrawing(d Drawing) {
	p.lines = append(p.lines, d.Lines...)
	p.texts = append(p.texts, d.Texts...)
}

type pageCollector struct {
	width   float64
	height  float64
	margin  Margin
	accs    []*pageAccumulator
	current int
}

func newPageCollector(width, height float64, margin Margin) *pageCollector {
	pc := &pageCollector{
		width:  width,
		height: height,
		margin: margin,
	}
	pc.newPage()
	return pc
}

func (pc *pageCollector) newPage() *pageAccumulator {
	acc := &pageAccumulator{}
	pc.accs = append(pc.accs, acc)
	pc.current = len(pc.accs) - 1
	return acc
}

func (pc *pageCollector) curr() *pageAccumulator {
	if len(pc.accs) == 0 {
		return pc.newPage()
	}
	return pc.accs[pc.current]
}

func (pc *pageCollector) contentTop() float64 { return pc.margin.Top }

func (pc *pageCollector) contentBottom() float64 { return pc.height - pc.margin.Bottom }

func (pc *pageCollector) pages() []Page {
	out := make([]Page, len(pc.accs))
	for i, acc := range pc.accs {
		out[i] = Page{
			Width:  pc.width,
			Height: pc.height,
			Margin: pc.margin,
			Texts:  acc.texts,
			Lines:  acc.lines,
		}
	}
	return out
}

type flowContext struct {
	baseX      float64
	width      float64
	cursorY    float64
	typesetter Typesetter
	fonts      map[string]FontResource
	collector  *pageCollector
}

func (ctx *flowContext) atTop() bool {
	return ctx.cursorY <= ctx.collector.contentTop()
}

// ensureSpace 在剩余空间放不下 height 时换页。页顶仍放不下的元素直接溢出，避免无限换页。
func (ctx *flowContext) ensureSpace(height float64) {
	if ctx.cursorY+height <= ctx.collector.contentBottom() || ctx.atTop() {
		return
	}
	ctx.pageBreak()
}

func (ctx *flowContext) pageBreak() {
	ctx.collector.newPage()
	ctx.cursorY = ctx.collector.contentTop()
}

// space 在页顶不留白；超出页底时由下一个元素触发换页。
func (ctx *flowContext) space(h float64) {
	if h <= 0 || ctx.atTop() {
		return
	}
	ctx.cursorY += h
}

func (ctx *flowContext) placeText(block *TextBlock, rest []Element) error {
	if block == nil {
		return fmt.Errorf("文本元素缺少内容")
	}
	tb, err := ctx.composeTextBox(block)
	if err != nil {
		return err
	}
	need := tb.Height
	if block.KeepWithNext {
		need += keepHeight(rest)
	}
	ctx.ensureSpace(need)
	tb.Y = ctx.cursorY
	ctx.collector.curr().appendText(tb)
	ctx.cursorY += tb.Height
	return nil
}

// keepHeight 计算紧随其后的留白与第一个网格行的高度。
func keepHeight(rest []Element) float64 {
	h := 0.0
	for _, el := range rest {
		switch el.Kind {
		case ElementSpacer:
			h += el.Space
		case ElementGrid:
			if el.Grid != nil && len(el.Grid.Rows) > 0 {
				h += el.Grid.RowHeight(0) + 2*el.Grid.RowPadding
			}
			return h
		default:
			return 0
		}
	}
	return 0
}

// placeGrid 将网格水平居中于内容区，逐行检查剩余空间，行内格子顶对齐。
func (ctx *flowContext) placeGrid(g *Grid) {
	if g == nil {
		return
	}
	x0 := ctx.baseX + math.Max(0, (ctx.width-g.Width())/2)
	for i, row := range g.Rows {
		rowHeight := g.RowHeight(i) + 2*g.RowPadding
		ctx.ensureSpace(rowHeight)
		acc := ctx.collector.curr()
		for c, cell := range row {
			if cell.Placeholder() {
				continue
			}
			acc.appendDrawing(cell.Draw(x0+float64(c)*g.ColumnWidth, ctx.cursorY+g.RowPadding))
		}
		ctx.cursorY += rowHeight
	}
}

func (ctx *flowContext) composeTextBox(block *TextBlock) (TextBox, error) {
	fontSize := block.Size
	if fontSize <= 0 {
		fontSize = 12 * PtToMm
	}
	lineHeight := fontSize * 1.4
	fontRes, err := resolveFontResource(block.Role, ctx.fonts)
	if err != nil {
		return TextBox{}, err
	}
	lines, err := layoutLines(block.Content, ctx.width, fontRes, fontSize, lineHeight, ctx.typesetter, "anywhere")
	if err != nil {
		return TextBox{}, err
	}

	totalHeight := 0.0
	defaultLeading := math.Max(lineHeight-fontSize, 0)
	for i := range lines {
		if lines[i].Height <= 0 {
			lines[i].Height = fontSize
		}
		if i == 0 {
			lines[i].GapBefore = 0
		} else if lines[i].GapBefore <= 0 {
			lines[i].GapBefore = defaultLeading
		}
		totalHeight += lines[i].GapBefore + lines[i].Height
	}

	tb := TextBox{
		Content:    block.Content,
		X:          ctx.baseX,
		Width:      ctx.width,
		LineHeight: lineHeight,
		Font:       block.Role,
		FontSize:   fontSize,
		Color:      ColorText,
		Lines:      lines,
		Height:     totalHeight,
	}
	if v := strings.ToLower(strings.TrimSpace(block.Align)); v == "center" || v == "right" {
		tb.Align = v
	}
	return tb, nil
}

func resolveFontResource(role string, fonts map[string]FontResource) (FontResource, error) {
	if font, ok := fonts[role]; ok {
		return font, nil
	}
	if font, ok := fonts[FontGloss]; ok {
		return font, nil
	}
	for _, font := range fonts {
		return font, nil
	}
	return FontResource{}, fmt.Errorf("字体 %s 未定义，且没有可用的默认字体", role)
}

func layoutLines(content string, width float64, font FontResource, fontSize, lineHeight float64, ts Typesetter, wrap string) ([]TextLine, error) {
	lines, err := ts.LayoutLines(content, width, font, fontSize, lineHeight, wrap)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		lines = []TextLine{{Content: "", Width: width, Height: fontSize}}
	}
	lines[0].GapBefore = 0
	return lines, nil
}
