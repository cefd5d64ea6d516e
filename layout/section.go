package layout

import (
	"fmt"

	"github.com/ByLCY/dictsheet/vocab"
)

// 各类别的列宽（毫米）。列数 × 列宽恒为 GridWidth。
const (
	WordColumnWidth     = 40.0
	PhraseColumnWidth   = 80.0
	SentenceColumnWidth = 160.0
	GridWidth           = 160.0
	RowPadding          = 5 * PtToMm
)

// ColumnsFor 返回该类别每行的格子数。
func ColumnsFor(t vocab.Type) int {
	switch t {
	case vocab.TypeWord:
		return 4
	case vocab.TypePhrase:
		return 2
	default:
		return 1
	}
}

// ColumnWidthFor 返回该类别的列宽。
func ColumnWidthFor(t vocab.Type) float64 {
	switch t {
	case vocab.TypeWord:
		return WordColumnWidth
	case vocab.TypePhrase:
		return PhraseColumnWidth
	default:
		return SentenceColumnWidth
	}
}

// CellFactory 为一条记录构造指定列宽的格子。
type CellFactory func(rec vocab.Record, width float64) (Cell, error)

// Grid 是某一类别的记录按行排列后的格子矩阵。
type Grid struct {
	Type        vocab.Type
	Columns     int
	ColumnWidth float64
	RowPadding  float64
	Rows        [][]Cell
}

// Width 返回整行宽度。
func (g *Grid) Width() float64 { return float64(g.Columns) * g.ColumnWidth }

// RowHeight 返回第 i 行内容高度（不含上下留白），即该行最高格子的高度。
func (g *Grid) RowHeight(i int) float64 {
	h := 0.0
	for _, c := range g.Rows[i] {
		if c.Height() > h {
			h = c.Height()
		}
	}
	return h
}

// Placeholders 统计网格中的占位格数量。
func (g *Grid) Placeholders() int {
	n := 0
	for _, row := range g.Rows {
		for _, c := range row {
			if c.Placeholder() {
				n++
			}
		}
	}
	return n
}

// Pack 把同一类别的记录按行优先排入网格，最后一行用占位格补齐。
// records 为空时返回 nil。
func Pack(records []vocab.Record, t vocab.Type, factory CellFactory) (*Grid, error) {
	if len(records) == 0 {
		return nil, nil
	}
	cols := ColumnsFor(t)
	width := ColumnWidthFor(t)
	g := &Grid{Type: t, Columns: cols, ColumnWidth: width, RowPadding: RowPadding}

	var row []Cell
	for i, rec := range records {
		if rec.Type != t {
			return nil, fmt.Errorf("第 %d 条记录类别为 %s，与分组类别 %s 不一致", i+1, rec.Type, t)
		}
		cell, err := factory(rec, width)
		if err != nil {
			return nil, fmt.Errorf("构造格子 %q 失败: %w", rec.Term, err)
		}
		row = append(row, cell)
		if len(row) == cols {
			g.Rows = append(g.Rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		h := row[0].Height()
		for len(row) < cols {
			row = append(row, Placeholder(width, h))
		}
		g.Rows = append(g.Rows, row)
	}
	return g, nil
}
