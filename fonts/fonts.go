// Package fonts 解析字体来源：内置的 Go 字体（builtin:<name>）或文件系统上的字体文件。
package fonts

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// BuiltinPrefix 标记内置字体。
const BuiltinPrefix = "builtin:"

// Fallback 是任何字体加载失败时使用的字体来源。
const Fallback = BuiltinPrefix + "goregular"

var builtin = map[string][]byte{
	"goregular":    goregular.TTF,
	"gobold":       gobold.TTF,
	"goitalic":     goitalic.TTF,
	"gobolditalic": gobolditalic.TTF,
	"gomono":       gomono.TTF,
}

// DefaultCandidates 是常见系统上带中文字形的字体路径，按优先级排列。
var DefaultCandidates = []string{
	"/System/Library/Fonts/PingFang.ttc",
	"/System/Library/Fonts/STHeiti Light.ttc",
	"/System/Library/Fonts/Supplemental/Songti.ttc",
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/wqy/wqy-microhei.ttc",
	"C:/Windows/Fonts/msyh.ttc",
	"C:/Windows/Fonts/simhei.ttf",
	"C:/Windows/Fonts/simsun.ttc",
}

// Names 返回可用的内置字体名（已排序）。
func Names() []string {
	out := make([]string, 0, len(builtin))
	for name := range builtin {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// IsBuiltin 判断 src 是否指向内置字体。
func IsBuiltin(src string) bool { return strings.HasPrefix(src, BuiltinPrefix) }

// Load 返回字体数据。src 为 builtin:<name> 时读取内置字体，否则按路径从 fs 读取。
func Load(fs afero.Fs, src string) ([]byte, error) {
	if src == "" {
		return nil, fmt.Errorf("字体来源为空")
	}
	if IsBuiltin(src) {
		name := strings.TrimPrefix(src, BuiltinPrefix)
		data, ok := builtin[name]
		if !ok {
			return nil, fmt.Errorf("找不到内置字体资源 %s（可用：%s）", src, strings.Join(Names(), ", "))
		}
		return data, nil
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}
	data, err := afero.ReadFile(fs, src)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", src, err)
	}
	return data, nil
}

// Locate 返回 candidates 中第一个存在于 fs 上的字体文件。内置字体总是可用。
func Locate(fs afero.Fs, candidates []string) (string, bool) {
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if IsBuiltin(c) {
			if _, ok := builtin[strings.TrimPrefix(c, BuiltinPrefix)]; ok {
				return c, true
			}
			continue
		}
		if ok, err := afero.Exists(fs, c); err == nil && ok {
			return c, true
		}
	}
	return "", false
}
