package generator

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "20060102"

var unitReplacer = strings.NewReplacer("/", "-", `\`, "-", " ", "-", "_", "-")

// OutputName 生成 <prefix>_<单元以下划线连接>_<YYYYMMDD>_<NN>.<ext>。
// 前缀与单元中的路径分隔符、空格与下划线替换为连字符，文件总落在输出目录内，
// 且可以被 ParseOutputName 还原。
func OutputName(prefix string, units []string, date time.Time, copy int, ext string) string {
	clean := make([]string, len(units))
	for i, u := range units {
		clean[i] = unitReplacer.Replace(u)
	}
	return fmt.Sprintf("%s_%s_%s_%02d.%s", unitReplacer.Replace(prefix), strings.Join(clean, "_"), date.Format(dateLayout), copy, strings.TrimPrefix(ext, "."))
}

// SectionTitle 是标题中显示的单元串。
func SectionTitle(units []string) string { return strings.Join(units, "_") }

// Name 是 OutputName 的各组成部分。
type Name struct {
	Prefix string
	Units  []string
	Date   time.Time
	Copy   int
	Ext    string
}

// ParseOutputName 是 OutputName 的逆运算。
func ParseOutputName(name string) (Name, error) {
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 {
		return Name{}, fmt.Errorf("文件名 %q 缺少扩展名", name)
	}
	parts := strings.Split(name[:dot], "_")
	if len(parts) < 4 {
		return Name{}, fmt.Errorf("文件名 %q 不符合 <前缀>_<单元>_<日期>_<序号> 格式", name)
	}
	n := len(parts)
	copyNo, err := strconv.Atoi(parts[n-1])
	if err != nil {
		return Name{}, fmt.Errorf("文件名 %q 序号无效: %w", name, err)
	}
	date, err := time.ParseInLocation(dateLayout, parts[n-2], time.Local)
	if err != nil {
		return Name{}, fmt.Errorf("文件名 %q 日期无效: %w", name, err)
	}
	return Name{
		Prefix: parts[0],
		Units:  parts[1 : n-2],
		Date:   date,
		Copy:   copyNo,
		Ext:    name[dot+1:],
	}, nil
}
