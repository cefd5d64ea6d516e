package config

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ByLCY/dictsheet/binding"
	"github.com/ByLCY/dictsheet/layout"
)

// RegisterCustomValidators 注册配置校验用到的自定义规则：
// margin 为 CSS 风格边距，pagesize 为受支持的纸张名，template=<变量...> 限定模板可用的变量。
func RegisterCustomValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("margin", validateMargin); err != nil {
		return err
	}
	if err := v.RegisterValidation("pagesize", validatePageSize); err != nil {
		return err
	}
	return v.RegisterValidation("template", validateTemplate)
}

func validateMargin(fl validator.FieldLevel) bool {
	_, err := layout.ParseMargin(fl.Field().String())
	return err == nil
}

func validatePageSize(fl validator.FieldLevel) bool {
	_, _, err := layout.ResolvePageSize(layout.PageSpec{Size: fl.Field().String()})
	return err == nil
}

func validateTemplate(fl validator.FieldLevel) bool {
	return len(binding.Unknown(fl.Field().String(), strings.Fields(fl.Param())...)) == 0
}
