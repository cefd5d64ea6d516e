package layout

// 该文件定义分页后的版面结果，供排版、渲染与调试 JSON 共用。所有长度单位为毫米。

// Result 保存分页后的页面与资源信息。
type Result struct {
	Pages     []Page       `json:"pages"`
	Resources ResourceSet  `json:"resources"`
	Meta      DocumentMeta `json:"meta"`
}

// ResourceSet 记录按角色命名的字体（title/gloss/term）。
type ResourceSet struct {
	Fonts map[string]FontResource `json:"fonts"`
}

// FontResource 描述字体资源，src 可以是文件路径或 builtin:<name>（见 fonts 包）。
type FontResource struct {
	Name     string `json:"name"`
	Src      string `json:"src"`
	Style    string `json:"style,omitempty"`
	Family   string `json:"family"`   // 渲染器使用的 Family 名称
	Fallback string `json:"fallback"` // src 加载失败时使用
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

var (
	ColorBlack = Color{}
	ColorRed   = Color{R: 255}
	ColorText  = Color{R: 30, G: 30, B: 30}
)

// Page 记录页面尺寸、边距与最终可以直接渲染的元素。
type Page struct {
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	Margin Margin    `json:"margin"`
	Texts  []TextBox `json:"texts"`
	Lines  []Line    `json:"lines,omitempty"`
}

// Margin 以毫米为单位。
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// TextBox 表示一个已经排好坐标的文本块。
type TextBox struct {
	Content    string     `json:"content"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Width      float64    `json:"width"`
	LineHeight float64    `json:"lineHeight"`
	Font       string     `json:"font"`
	FontSize   float64    `json:"fontSize"`
	Color      Color      `json:"color"`
	Lines      []TextLine `json:"lines"`
	Height     float64    `json:"height"`
	Align      string     `json:"align,omitempty"` // left/center/right（默认 left）
}

// TextLine 表示排版后的一行文本内容及其宽高。
type TextLine struct {
	Content   string  `json:"content"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	GapBefore float64 `json:"gapBefore,omitempty"`
}

// Line 表示一条线段；Dash 非空时按 on/off 交替绘制虚线。
type Line struct {
	X1    float64   `json:"x1"`
	Y1    float64   `json:"y1"`
	X2    float64   `json:"x2"`
	Y2    float64   `json:"y2"`
	Color Color     `json:"color"`
	Width float64   `json:"width"` // 线宽（mm），<=0 时由渲染器给默认值
	Dash  []float64 `json:"dash,omitempty"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
