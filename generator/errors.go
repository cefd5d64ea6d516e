package generator

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// ErrEmptySelection 表示某一份没有抽到任何记录，该份被跳过。
var ErrEmptySelection = errors.New("没有找到符合条件的记录")

// RenderError 描述某一份在排版、渲染或写出阶段的失败。
// Systemic 为 true 时（输出目录不可用、权限或空间不足）后续各份不再尝试。
type RenderError struct {
	Copy     int
	Path     string
	Systemic bool
	Err      error
}

func (e *RenderError) Error() string {
	switch {
	case e.Copy == 0:
		return fmt.Sprintf("准备输出目录 %s 失败: %v", e.Path, e.Err)
	case e.Path != "":
		return fmt.Sprintf("第 %d 份（%s）生成失败: %v", e.Copy, e.Path, e.Err)
	default:
		return fmt.Sprintf("第 %d 份生成失败: %v", e.Copy, e.Err)
	}
}

func (e *RenderError) Unwrap() error { return e.Err }

// isSystemic 判断写出错误是否会让后续各份同样失败。
func isSystemic(err error) bool {
	return errors.Is(err, fs.ErrPermission) ||
		errors.Is(err, syscall.ENOSPC) ||
		errors.Is(err, syscall.EROFS) ||
		errors.Is(err, syscall.EDQUOT)
}
