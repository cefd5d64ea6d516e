package vocab

import (
	"errors"
	"fmt"
	"strings"
)

// Type 表示词汇条目的类别。
type Type string

const (
	TypeWord     Type = "word"
	TypePhrase   Type = "phrase"
	TypeSentence Type = "sentence"
)

// Types 按文档中的固定分区顺序列出全部类别。
var Types = []Type{TypeWord, TypePhrase, TypeSentence}

var typeLabels = map[Type]string{
	TypeWord:     "单词",
	TypePhrase:   "短语",
	TypeSentence: "句子",
}

// Label 返回类别在 CSV 与版面中使用的中文名称。
func (t Type) Label() string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return string(t)
}

// Valid 判断是否为已知类别。
func (t Type) Valid() bool {
	_, ok := typeLabels[t]
	return ok
}

// ParseType 同时接受英文（word/phrase/sentence）与中文（单词/短语/句子）写法。
func ParseType(s string) (Type, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for t, label := range typeLabels {
		if v == string(t) || v == label {
			return t, nil
		}
	}
	return "", fmt.Errorf("未知的词汇类别：%q", s)
}

// ParseTypes 解析逗号分隔的类别列表，空字符串返回 nil（不过滤）。
func ParseTypes(s string) ([]Type, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []Type
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		t, err := ParseType(part)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Record 是一条词汇记录。加载后不可变，身份由位置决定，允许重复。
type Record struct {
	Gloss string `json:"gloss"`
	Term  string `json:"term"`
	Unit  string `json:"unit"`
	Grade string `json:"grade"`
	Type  Type   `json:"type"`
}

// ErrInvalidRecord 是所有加载期数据错误的哨兵。
var ErrInvalidRecord = errors.New("invalid vocabulary record")

// DataError 描述一条缺字段或格式错误的记录。
// Row 为记录在输入序列中的位置（从 1 开始）；CSV 头部错误时为 0。
type DataError struct {
	Row    int
	Field  string
	Reason string
}

func (e *DataError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("第 %d 条记录的字段 %s 无效: %s", e.Row, e.Field, e.Reason)
	}
	return fmt.Sprintf("字段 %s 无效: %s", e.Field, e.Reason)
}

func (e *DataError) Unwrap() error { return ErrInvalidRecord }

func (r Record) validate(row int) error {
	required := []struct {
		name  string
		value string
	}{
		{"gloss", r.Gloss},
		{"term", r.Term},
		{"unit", r.Unit},
		{"grade", r.Grade},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &DataError{Row: row, Field: f.name, Reason: "缺少必填值"}
		}
	}
	if !r.Type.Valid() {
		return &DataError{Row: row, Field: "type", Reason: fmt.Sprintf("未知类别 %q", r.Type)}
	}
	return nil
}

// MatchesAny 判断记录类别是否落在 types 中；types 为空时视为不过滤。
func (r Record) MatchesAny(types []Type) bool {
	if len(types) == 0 {
		return true
	}
	for _, t := range types {
		if r.Type == t {
			return true
		}
	}
	return false
}
