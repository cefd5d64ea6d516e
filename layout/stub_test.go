package layout

import "unicode/utf8"

// stubTypesetter 是测试用的最小排版后端：每个字符宽半个字号，不折行。
type stubTypesetter struct {
	err error
}

func (s *stubTypesetter) LayoutLines(content string, width float64, font FontResource, fontSize float64, lineHeight float64, wrap string) ([]TextLine, error) {
	if s.err != nil {
		return nil, s.err
	}
	w := float64(utf8.RuneCountInString(content)) * fontSize * 0.5
	return []TextLine{{Content: content, Width: w, Height: fontSize}}, nil
}

func stubWidth(content string, size float64) float64 {
	return float64(utf8.RuneCountInString(content)) * size * 0.5
}

var testFonts = map[string]FontResource{
	FontTitle: {Name: "title", Src: "builtin:gobold", Family: "title"},
	FontGloss: {Name: "gloss", Src: "builtin:goregular", Family: "gloss"},
	FontTerm:  {Name: "term", Src: "builtin:goregular", Family: "term"},
}
