// Package binding 负责标题模板中 ${name} 占位符的替换与校验。
package binding

import (
	"regexp"
	"slices"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Vars 是模板变量表。
type Vars map[string]string

// Interpolate 将文本中的 ${name} 替换为 vars 中的值。
// 若 vars 为空或变量不存在，则保留原占位符。
func Interpolate(text string, vars Vars) string {
	if len(vars) == 0 {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := placeholderName(match)
		if name == "" {
			return match
		}
		if val, ok := vars[name]; ok {
			return val
		}
		return match
	})
}

// Placeholders 按出现顺序返回模板中的变量名（去重）。
func Placeholders(text string) []string {
	var out []string
	for _, m := range exprPattern.FindAllString(text, -1) {
		name := placeholderName(m)
		if name != "" && !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}

// Unknown 返回模板中不在 known 之列的变量名，用于配置校验。
func Unknown(text string, known ...string) []string {
	var out []string
	for _, name := range Placeholders(text) {
		if !slices.Contains(known, name) {
			out = append(out, name)
		}
	}
	return out
}

func placeholderName(match string) string {
	groups := exprPattern.FindStringSubmatch(match)
	if len(groups) < 2 {
		return ""
	}
	return strings.TrimSpace(groups[1])
}
