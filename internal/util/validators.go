package util

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Validate 是全局的表单校验器，在提交前拦截明显无效的输入
var Validate *validator.Validate

func init() {
	Validate = validator.New()
	_ = Validate.RegisterValidation("future_date", ValidateFutureDate)
}

// ValidateFutureDate 验证日期是否在未来。
// 支持 time.Time 和 datetime-local 格式的字符串（"YYYY-MM-DDTHH:MM"），
// 字符串解析失败同样视为无效。
func ValidateFutureDate(fl validator.FieldLevel) bool {
	switch value := fl.Field().Interface().(type) {
	case time.Time:
		return value.After(time.Now())
	case string:
		date, err := time.ParseInLocation("2006-01-02T15:04", value, time.Local)
		if err != nil {
			return false
		}
		return date.After(time.Now())
	default:
		return false
	}
}
