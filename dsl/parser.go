// Package dsl 解析批量生成计划文件。
//
// 计划文件示例：
//
//	plan "三年级上册" v1 {
//	  defaults { copies: 2  output: "out" }
//	  job week1 {
//	    units: ["M1", "M2"]
//	    types: [word, phrase]
//	    count: 20
//	  }
//	  job review { grade: "三上"  count: 30  label: "期中复习" }
//	}
package dsl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	planLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Comment", Pattern: `(?:#|//)[^\n]*`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Int", Pattern: `-?\d+`},
		{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_\-]*`},
		{Name: "Punct", Pattern: `[{}\[\]:,;]`},
	})

	planParser = participle.MustBuild[Plan](
		participle.Lexer(planLexer),
		participle.Elide("Whitespace", "Comment"),
	)
)

// Plan is the root AST node for a plan file.
type Plan struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Name    Name           `parser:"'plan' @(String | Ident)"`
	Version string         `parser:"@Ident?"`
	Entries []*Entry       `parser:"'{' @@* '}'"`
}

// Entry is either the defaults block or a job.
type Entry struct {
	Defaults *Block `parser:"  'defaults' @@"`
	Job      *Job   `parser:"| @@"`
}

// Job describes one generation run.
type Job struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Name  Name           `parser:"'job' @(String | Ident)"`
	Block *Block         `parser:"@@"`
}

// Block is a delimited list of assignments.
type Block struct {
	Assignments []*Assignment `parser:"'{' ( @@ ( ';' | ',' )? )* '}'"`
}

// Assignment uses colon syntax (key: value).
type Assignment struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident ':'"`
	Value *Value         `parser:"@@"`
}

// Value represents a property value.
type Value struct {
	String *Name `parser:"  @String"`
	Int    *int  `parser:"| @Int"`
	List   *List `parser:"| @@"`
	Ident  *Name `parser:"| @Ident"`
}

// List captures `[ a, b ]` expressions.
type List struct {
	Values []*Value `parser:"'[' ( @@ ( ',' @@ )* ','? )? ']'"`
}

// Name unquotes Go-style strings on capture and keeps bare identifiers as-is.
type Name string

// Capture implements participle.Capture.
func (n *Name) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("name capture requires value")
	}
	v := values[0]
	if strings.HasPrefix(v, `"`) {
		unquoted, err := strconv.Unquote(v)
		if err != nil {
			return err
		}
		v = unquoted
	}
	*n = Name(v)
	return nil
}

// Parse parses a plan from an io.Reader; filename is only used in positions.
func Parse(filename string, r io.Reader) (*Plan, error) {
	return planParser.Parse(filename, r)
}

// ParseString parses a plan from a string.
func ParseString(input string) (*Plan, error) {
	return planParser.ParseString("", input)
}

// Strings flattens the value into a string list: a list yields its items,
// a scalar is split on commas.
func (v *Value) Strings() ([]string, error) {
	switch {
	case v == nil:
		return nil, nil
	case v.List != nil:
		out := make([]string, 0, len(v.List.Values))
		for _, item := range v.List.Values {
			s, err := item.Scalar()
			if err != nil {
				return nil, err
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out, nil
	default:
		s, err := v.Scalar()
		if err != nil {
			return nil, err
		}
		var out []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	}
}

// Scalar returns the value as a string; lists are rejected.
func (v *Value) Scalar() (string, error) {
	switch {
	case v == nil:
		return "", nil
	case v.String != nil:
		return string(*v.String), nil
	case v.Ident != nil:
		return string(*v.Ident), nil
	case v.Int != nil:
		return strconv.Itoa(*v.Int), nil
	default:
		return "", fmt.Errorf("需要单个值而不是列表")
	}
}

// Number returns the value as an integer.
func (v *Value) Number() (int, error) {
	if v != nil && v.Int != nil {
		return *v.Int, nil
	}
	s, err := v.Scalar()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("需要整数：%q", s)
	}
	return n, nil
}
