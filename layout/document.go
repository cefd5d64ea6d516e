package layout

// ElementKind 区分文档流中的元素类型。
type ElementKind int

const (
	ElementText ElementKind = iota
	ElementSpacer
	ElementGrid
	ElementPageBreak
)

func (k ElementKind) String() string {
	switch k {
	case ElementText:
		return "text"
	case ElementSpacer:
		return "spacer"
	case ElementGrid:
		return "grid"
	case ElementPageBreak:
		return "pagebreak"
	default:
		return "unknown"
	}
}

// TextBlock 是流式排版的一段文本，Role 为字体角色名。
type TextBlock struct {
	Content string
	Role    string
	Size    float64
	Align   string
	// KeepWithNext 要求与后续第一个网格行处于同一页。
	KeepWithNext bool
}

// Element 是文档流中的一项，按 Kind 使用对应字段。
type Element struct {
	Kind  ElementKind
	Text  *TextBlock
	Grid  *Grid
	Space float64
}

// Document 是一份待分页的默写纸：有序元素流加 PDF 元信息。
type Document struct {
	Meta     DocumentMeta
	Elements []Element
}

func (d *Document) text(tb TextBlock) {
	d.Elements = append(d.Elements, Element{Kind: ElementText, Text: &tb})
}

func (d *Document) spacer(h float64) {
	d.Elements = append(d.Elements, Element{Kind: ElementSpacer, Space: h})
}

func (d *Document) grid(g *Grid) {
	d.Elements = append(d.Elements, Element{Kind: ElementGrid, Grid: g})
}

func (d *Document) pageBreak() {
	d.Elements = append(d.Elements, Element{Kind: ElementPageBreak})
}
