// Package validation はリクエスト構造体の validate タグを検証し、
// JSONのフィールドパスごとのエラーメッセージに変換します。
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// EstimatePattern は MM:SS, H:MM:SS, HH:MM:SS 形式の見積もり時間です。
var EstimatePattern = regexp.MustCompile(`^(?:(?:([01]?\d|2[0-3]):)?([0-5]\d):)?([0-5]\d)$`)

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator は共有の validator インスタンスを返します。
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(jsonName)
		if err := validate.RegisterValidation("estimate", func(fl validator.FieldLevel) bool {
			return EstimatePattern.MatchString(fl.Field().String())
		}); err != nil {
			panic(err)
		}
	})
	return validate
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "" {
		return f.Name
	}
	return name
}

// Violation は1つのフィールドの検証エラーです。
type Violation struct {
	Path    string // 例: "categories.0.estimate"
	Message string
}

// Check は v の全ての違反をフィールド順に返します。違反がなければ nil です。
func Check(v any) []Violation {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []Violation{{Message: err.Error()}}
	}

	violations := make([]Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, Violation{
			Path:    fieldPath(fe.Namespace()),
			Message: message(fe),
		})
	}
	return violations
}

// Map は Check の結果をパスからメッセージへのマップにします。違反がなければ nil です。
func Map(v any) map[string]string {
	violations := Check(v)
	if len(violations) == 0 {
		return nil
	}
	errs := make(map[string]string, len(violations))
	for _, viol := range violations {
		if _, ok := errs[viol.Path]; !ok {
			errs[viol.Path] = viol.Message
		}
	}
	return errs
}

// First は最初の違反のメッセージを返します。違反がなければ空文字列です。
func First(v any) string {
	violations := Check(v)
	if len(violations) == 0 {
		return ""
	}
	return violations[0].Message
}

// fieldPath は "SubmissionRequest.categories[0].estimate" を "categories.0.estimate" に変換します。
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		namespace = namespace[i+1:]
	}
	namespace = strings.ReplaceAll(namespace, "[", ".")
	return strings.ReplaceAll(namespace, "]", "")
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	if i := strings.IndexByte(field, '['); i >= 0 {
		field = field[:i]
	}
	if msg, ok := messages[field+"."+fe.Tag()]; ok {
		return msg
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required.", field)
	case "max":
		return fmt.Sprintf("%q cannot be longer than %s.", field, fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%q must contain at least %s items.", field, fe.Param())
		}
		return fmt.Sprintf("%q must be at least %s.", field, fe.Param())
	}
	return fmt.Sprintf("%q is invalid.", field)
}
