package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"strings"
	"sync"
	"unicode"

	"github.com/spf13/afero"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/dictsheet/fonts"
	"github.com/ByLCY/dictsheet/layout"
	"github.com/ByLCY/dictsheet/renderer"
)

const defaultStrokeWidth = 0.2

// Renderer draws layout results via github.com/tdewolff/canvas.
type Renderer struct {
	fs       afero.Fs
	fallback string

	fontMu         sync.Mutex
	fontFamilies   map[string]*fontFamilyEntry
	fallbackFamily *canvas.FontFamily
}

var _ renderer.Backend = (*Renderer)(nil)

type fontFamilyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

// Options configures the canvas renderer.
type Options struct {
	// Fs resolves font file paths; nil means the OS filesystem.
	Fs afero.Fs
	// Fallback is the font source used whenever a font cannot be loaded.
	Fallback string
}

// NewRenderer creates a canvas-based renderer.
func NewRenderer(opts Options) *Renderer {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Fallback == "" {
		opts.Fallback = fonts.Fallback
	}
	return &Renderer{
		fs:           opts.Fs,
		fallback:     opts.Fallback,
		fontFamilies: map[string]*fontFamilyEntry{},
	}
}

// Render renders the result into a PDF byte slice.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, result.Pages[0].Width, result.Pages[0].Height, nil)
	applyMeta(writer, result.Meta)
	for i, page := range result.Pages {
		if i > 0 {
			writer.NewPage(page.Width, page.Height)
		}
		c := canvas.New(page.Width, page.Height)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

		if err := r.drawPage(ctx, page, result.Resources); err != nil {
			return nil, fmt.Errorf("渲染第 %d 页失败: %w", i+1, err)
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

// LayoutLines 实现 layout.Typesetter 接口，使用贪心换行算法。
// 约定：fontSize/lineHeight 入参均为毫米（mm）。字体面按 pt 创建，canvas 返回的宽度为 mm。
func (r *Renderer) LayoutLines(content string, width float64, font layout.FontResource, fontSize, lineHeight float64, wrap string) ([]layout.TextLine, error) {
	face, err := r.fontFace(font, toPt(fontSize), layout.ColorText)
	if err != nil {
		return nil, err
	}

	lines := greedyWrap(content, width, face, wrap)
	textHeight := face.Metrics().LineHeight
	if textHeight <= 0 {
		textHeight = lineHeight
	}
	leading := math.Max(lineHeight-textHeight, 0)
	if len(lines) == 0 {
		lines = []layout.TextLine{{Content: ""}}
	}
	for i := range lines {
		lines[i].Height = textHeight
		if i > 0 {
			lines[i].GapBefore = leading
		}
	}
	return lines, nil
}

func (r *Renderer) drawPage(ctx *canvas.Context, page layout.Page, resources layout.ResourceSet) error {
	// 先画线（四线格），再画文字
	drawLines(ctx, page.Lines)
	for _, tb := range page.Texts {
		fontRes := resolveFontResource(tb.Font, resources.Fonts)
		if err := r.drawTextBox(ctx, tb, fontRes); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) drawTextBox(ctx *canvas.Context, tb layout.TextBox, fontRes layout.FontResource) error {
	// TextBox 的坐标/字号/行高均为 mm；创建字体面需要 pt，这里做一次 mm→pt。
	face, err := r.fontFace(fontRes, toPt(tb.FontSize), tb.Color)
	if err != nil {
		return err
	}

	lines := tb.Lines
	if len(lines) == 0 {
		lines = []layout.TextLine{{Content: tb.Content, Width: tb.Width, Height: tb.LineHeight}}
	}

	var textAlign canvas.TextAlign
	var anchorX float64
	switch strings.ToLower(tb.Align) {
	case "center":
		textAlign = canvas.Center
		anchorX = tb.X + tb.Width/2
	case "right":
		textAlign = canvas.Right
		anchorX = tb.X + tb.Width
	default:
		textAlign = canvas.Left
		anchorX = tb.X
	}

	ascent := face.Metrics().Ascent
	cursorY := tb.Y
	for _, line := range lines {
		cursorY += line.GapBefore
		lineHeight := line.Height
		if lineHeight <= 0 {
			lineHeight = tb.FontSize
		}
		// 基线位置：行顶部加上字体上升部
		ctx.DrawText(anchorX, cursorY+ascent, canvas.NewTextLine(face, line.Content, textAlign))
		cursorY += lineHeight
	}
	return nil
}

// drawLines 绘制直线列表（毫米单位），Dash 非空时绘制虚线。
func drawLines(ctx *canvas.Context, lines []layout.Line) {
	for _, ln := range lines {
		w := ln.Width
		if w <= 0 {
			w = defaultStrokeWidth
		}
		ctx.SetFillColor(color.Transparent)
		ctx.SetStrokeColor(colorFromLayout(ln.Color))
		ctx.SetStrokeWidth(w)
		ctx.SetDashes(0, ln.Dash...)
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(ln.X2-ln.X1, ln.Y2-ln.Y1)
		ctx.DrawPath(ln.X1, ln.Y1, p)
	}
	ctx.SetDashes(0)
}

func (r *Renderer) fontFace(font layout.FontResource, size float64, col layout.Color) (*canvas.FontFace, error) {
	family, style, err := r.ensureFontFamily(font)
	if err != nil {
		return nil, err
	}
	return family.Face(size, colorFromLayout(col), style, canvas.FontNormal), nil
}

// ensureFontFamily 加载并缓存字体；加载失败时退回 fallback 字体。
func (r *Renderer) ensureFontFamily(font layout.FontResource) (*canvas.FontFamily, canvas.FontStyle, error) {
	key := fontCacheKey(font)
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if entry, ok := r.fontFamilies[key]; ok {
		return entry.family, entry.style, nil
	}

	style := parseFontStyle(font.Style)
	familyName := font.Family
	if familyName == "" {
		familyName = font.Name
	}
	if familyName == "" {
		familyName = "dictsheet"
	}
	family := canvas.NewFontFamily(familyName)

	if err := r.loadFontIntoFamily(family, font, style); err != nil {
		fallback, fbErr := r.fallbackFont(font.Fallback)
		if fbErr != nil {
			return nil, canvas.FontRegular, fmt.Errorf("%w（后备字体同样不可用: %v）", err, fbErr)
		}
		r.fontFamilies[key] = &fontFamilyEntry{family: fallback, style: canvas.FontRegular}
		return fallback, canvas.FontRegular, nil
	}

	r.fontFamilies[key] = &fontFamilyEntry{family: family, style: style}
	return family, style, nil
}

func (r *Renderer) loadFontIntoFamily(family *canvas.FontFamily, font layout.FontResource, style canvas.FontStyle) error {
	data, err := fonts.Load(r.fs, font.Src)
	if err != nil {
		return err
	}
	if err := family.LoadFont(data, 0, style); err != nil {
		return fmt.Errorf("解析字体 %s 失败: %w", font.Src, err)
	}
	return nil
}

// fallbackFont 优先使用字体自带的 fallback，其次是渲染器级别的 fallback。
func (r *Renderer) fallbackFont(preferred string) (*canvas.FontFamily, error) {
	if preferred != "" && preferred != r.fallback {
		if data, err := fonts.Load(r.fs, preferred); err == nil {
			family := canvas.NewFontFamily("dictsheet-fallback-" + preferred)
			if err := family.LoadFont(data, 0, canvas.FontRegular); err == nil {
				return family, nil
			}
		}
	}
	if r.fallbackFamily != nil {
		return r.fallbackFamily, nil
	}
	data, err := fonts.Load(r.fs, r.fallback)
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily("dictsheet-fallback")
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, err
	}
	r.fallbackFamily = family
	return family, nil
}

func resolveFontResource(name string, fonts map[string]layout.FontResource) layout.FontResource {
	if font, ok := fonts[name]; ok {
		return font
	}
	if font, ok := fonts[layout.FontGloss]; ok {
		return font
	}
	for _, font := range fonts {
		return font
	}
	return layout.FontResource{}
}

func parseFontStyle(style string) canvas.FontStyle {
	s := strings.ToLower(style)
	result := canvas.FontRegular
	switch {
	case strings.Contains(s, "black"):
		result = canvas.FontBlack
	case strings.Contains(s, "extrabold"):
		result = canvas.FontExtraBold
	case strings.Contains(s, "semibold"), strings.Contains(s, "demibold"):
		result = canvas.FontSemiBold
	case strings.Contains(s, "bold"):
		result = canvas.FontBold
	case strings.Contains(s, "medium"):
		result = canvas.FontMedium
	case strings.Contains(s, "light"):
		result = canvas.FontLight
	}
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") {
		result |= canvas.FontItalic
	}
	return result
}

func fontCacheKey(font layout.FontResource) string {
	return fmt.Sprintf("%s|%s|%s", font.Name, font.Src, font.Style)
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return mm * layout.MmToPt }

// greedyWrap 按宽度贪心折行：空白处与中日韩字符之间均可断行，单个过长的词按字符拆分。
// wrap 为 nowrap 时只按显式换行划分。width<=0 表示不限宽。
func greedyWrap(content string, width float64, face *canvas.FontFace, wrap string) []layout.TextLine {
	if wrap == "nowrap" {
		parts := strings.Split(content, "\n")
		lines := make([]layout.TextLine, 0, len(parts))
		for _, p := range parts {
			lines = append(lines, layout.TextLine{Content: p, Width: face.TextWidth(p)})
		}
		return lines
	}

	limit := width
	if limit <= 0 {
		limit = math.MaxFloat64
	}
	var lines []layout.TextLine
	var builder strings.Builder
	current := 0.0
	emit := func() {
		lines = append(lines, layout.TextLine{Content: strings.TrimRight(builder.String(), " "), Width: current})
		builder.Reset()
		current = 0
	}
	add := func(token string, w float64) {
		if current > 0 && current+w > limit {
			emit()
			token = strings.TrimLeft(token, " ")
			w = face.TextWidth(token)
		}
		builder.WriteString(token)
		current += w
	}

	for _, token := range tokenize(content) {
		if token == "\n" {
			emit()
			continue
		}
		w := face.TextWidth(token)
		if w <= limit {
			add(token, w)
			continue
		}
		for _, r := range token {
			s := string(r)
			add(s, face.TextWidth(s))
		}
	}
	emit()
	return lines
}

// tokenize 把文本拆成断行单位：连续的非空白拉丁字符为一个词，空白串为一个单位，
// 每个中日韩字符单独成为一个单位，换行符单独输出。
func tokenize(s string) []string {
	var tokens []string
	var builder strings.Builder
	flush := func() {
		if builder.Len() > 0 {
			tokens = append(tokens, builder.String())
			builder.Reset()
		}
	}
	lastSpace := false
	for _, r := range s {
		switch {
		case r == '\r':
			continue
		case r == '\n':
			flush()
			tokens = append(tokens, "\n")
		case isWide(r):
			flush()
			tokens = append(tokens, string(r))
		default:
			space := unicode.IsSpace(r)
			if builder.Len() > 0 && space != lastSpace {
				flush()
			}
			lastSpace = space
			builder.WriteRune(r)
		}
	}
	flush()
	return tokens
}

func isWide(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul) ||
		(r >= 0x3000 && r <= 0x303F) || (r >= 0xFF00 && r <= 0xFFEF)
}
