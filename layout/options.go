package layout

// 字体角色名。TextBox.Font 与 ResourceSet.Fonts 的键均取这些值。
const (
	FontTitle = "title"
	FontGloss = "gloss"
	FontTerm  = "term"
)

// BuildOptions 配置分页阶段所需的依赖与页面参数。
type BuildOptions struct {
	Typesetter Typesetter
	Page       PageSpec
	Fonts      map[string]FontResource
}

// PageSpec 描述纸张。Size 取 A4/A5。
type PageSpec struct {
	Size      string
	Landscape bool
	Margin    Margin
}

// DefaultPageSpec 与原始默写纸一致：A4 纵向，四边 2cm。
func DefaultPageSpec() PageSpec {
	return PageSpec{Size: "A4", Margin: Margin{Top: 20, Right: 20, Bottom: 20, Left: 20}}
}

// Typesetter 负责根据字体与宽度约束将文本拆成可绘制的行。
// 约定：width/fontSize/lineHeight 均为毫米；width<=0 表示不限宽。
type Typesetter interface {
	LayoutLines(content string, width float64, font FontResource, fontSize float64, lineHeight float64, wrap string) ([]TextLine, error)
}
