package layout

import "math"

// 四线格几何常量（毫米）。
const (
	GuideHeight      = 12.0
	GuideLineSpacing = 3.0
	GuideLineWidth   = 0.5 * PtToMm
)

// LineStyle 区分实线与虚线。
type LineStyle int

const (
	Solid LineStyle = iota
	Dashed
)

// DashPattern 为虚线的 on/off 长度：3pt 实、2pt 空，换算为毫米。
var DashPattern = []float64{3 * PtToMm, 2 * PtToMm}

// GuideLine 是四线格中的一条横线，Y 为距格子顶部的偏移。
type GuideLine struct {
	Y     float64
	Style LineStyle
}

var guideStyles = [4]LineStyle{Solid, Solid, Dashed, Solid}

// Guide 计算宽 width、高 height 的四线格的四条横线，自上而下依次为
// 实线、实线、虚线（中线）、实线。线间距为 min(GuideLineSpacing, height/4)，
// 第 i 条线位于 (i+1)·间距 处；尺寸为 0 时四线重合。横线贯穿整个 width。
func Guide(width, height float64) [4]GuideLine {
	spacing := math.Min(GuideLineSpacing, math.Max(height, 0)/4)
	var lines [4]GuideLine
	for i, style := range guideStyles {
		lines[i] = GuideLine{Y: float64(i+1) * spacing, Style: style}
	}
	return lines
}

// guideLines 把四线格放到页面坐标 (x, y) 处。
func guideLines(x, y, width, height float64) []Line {
	out := make([]Line, 0, 4)
	for _, g := range Guide(width, height) {
		ln := Line{
			X1: x, Y1: y + g.Y,
			X2: x + width, Y2: y + g.Y,
			Color: ColorBlack,
			Width: GuideLineWidth,
		}
		if g.Style == Dashed {
			ln.Color = ColorRed
			ln.Dash = append([]float64(nil), DashPattern...)
		}
		out = append(out, ln)
	}
	return out
}
