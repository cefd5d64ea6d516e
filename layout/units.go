package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// This file defines unit-safe types and helpers for lengths coming from config.

// Unit represents the original unit of a length value as written by the user.
type Unit int

const (
	UnitNone Unit = iota // bare numbers, read as millimeters
	UnitMM               // millimeters
	UnitCM               // centimeters
	UnitIN               // inches
	UnitPT               // points
)

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

// ToMM converts the length to millimeters. Unit-less values are already mm.
func (l Length) ToMM() float64 {
	switch l.Unit {
	case UnitCM:
		return l.Value * 10
	case UnitIN:
		return l.Value * 25.4
	case UnitPT:
		return l.Value * PtToMm
	default:
		return l.Value
	}
}

func (l Length) ToPT() float64 { return l.ToMM() * MmToPt }

// ParseRawLengthStr parses a length string preserving its unit.
func ParseRawLengthStr(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, fmt.Errorf("长度为空")
	}
	unit := UnitNone
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, fmt.Errorf("无法解析长度 %q: %w", value, err)
	}
	if f < 0 {
		return Length{}, fmt.Errorf("长度不能为负数：%q", value)
	}
	return Length{Value: f, Unit: unit}, nil
}

// ParseMargin 按 CSS 语义解析以空白分隔的 1-4 个长度：
// 1 个值四边相同；2 个值为 上下/左右；3 个值为 上/左右/下；4 个值为 上/右/下/左。
func ParseMargin(spec string) (Margin, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 || len(fields) > 4 {
		return Margin{}, fmt.Errorf("边距需要 1-4 个长度值：%q", spec)
	}
	vals := make([]float64, len(fields))
	for i, f := range fields {
		l, err := ParseRawLengthStr(f)
		if err != nil {
			return Margin{}, err
		}
		vals[i] = l.ToMM()
	}
	switch len(vals) {
	case 1:
		v := vals[0]
		return Margin{Top: v, Right: v, Bottom: v, Left: v}, nil
	case 2:
		return Margin{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}, nil
	case 3:
		return Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[1]}, nil
	default:
		return Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}, nil
	}
}

var pagePresets = map[string][2]float64{
	"A4": {210, 297},
	"A5": {148, 210},
}

// PageSizes lists the supported paper names.
func PageSizes() []string { return []string{"A4", "A5"} }

// ResolvePageSize returns page width and height in millimeters.
func ResolvePageSize(spec PageSpec) (float64, float64, error) {
	name := strings.ToUpper(strings.TrimSpace(spec.Size))
	if name == "" {
		name = "A4"
	}
	base, ok := pagePresets[name]
	if !ok {
		return 0, 0, fmt.Errorf("暂不支持的纸张尺寸：%s", spec.Size)
	}
	width, height := base[0], base[1]
	if spec.Landscape {
		width, height = height, width
	}
	return width, height, nil
}
