package vocab

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// 每个字段可接受的表头写法（中文表头来自原始数据表）。
var headerAliases = map[string][]string{
	"gloss": {"中文", "gloss", "chinese"},
	"term":  {"英文", "term", "english"},
	"unit":  {"单元", "unit"},
	"grade": {"年级", "grade"},
	"type":  {"类别", "type"},
}

var headerFields = []string{"gloss", "term", "unit", "grade", "type"}

// ReadCSV 读取带表头的词汇 CSV。列按表头名定位，顺序不限；
// 单元格去除首尾空白并做 NFC 规范化。类别无法识别时原样保留，由 Index.Load 报告。
func ReadCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取 CSV 表头失败: %w", err)
	}
	cols, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("读取 CSV 失败: %w", err)
		}
		if blankRow(row) {
			continue
		}
		cell := func(field string) string {
			idx := cols[field]
			if idx >= len(row) {
				return ""
			}
			return clean(row[idx])
		}
		rec := Record{
			Gloss: cell("gloss"),
			Term:  cell("term"),
			Unit:  cell("unit"),
			Grade: cell("grade"),
		}
		rawType := cell("type")
		if t, err := ParseType(rawType); err == nil {
			rec.Type = t
		} else {
			rec.Type = Type(rawType)
		}
		records = append(records, rec)
	}
	return records, nil
}

func mapHeader(header []string) (map[string]int, error) {
	cols := map[string]int{}
	for i, h := range header {
		name := strings.ToLower(clean(strings.TrimPrefix(h, "\ufeff")))
		for field, aliases := range headerAliases {
			for _, a := range aliases {
				if name == a {
					if _, dup := cols[field]; !dup {
						cols[field] = i
					}
				}
			}
		}
	}
	for _, field := range headerFields {
		if _, ok := cols[field]; !ok {
			return nil, &DataError{Field: field, Reason: fmt.Sprintf("CSV 缺少列（可用表头：%s）", strings.Join(headerAliases[field], "/"))}
		}
	}
	return cols, nil
}

func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
