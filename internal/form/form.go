// Package form は編集中のレコードと検証エラーを組にして保持する状態コンテナです。
package form

import (
	"fmt"
	"reflect"
	"strings"

	"submitserver/internal/validation"
)

// CheckFunc はレコード全体を検証し、失敗している全フィールドのメッセージを返します。
type CheckFunc[T any] func(T) map[string]string

// State は編集中の値と、その値に対する検証結果を保持します。
type State[T any] struct {
	initial *T
	value   T
	errors  map[string]string
	check   CheckFunc[T]
}

// New は initial を元に状態を作ります。check が nil の場合は validate タグで検証します。
func New[T any](initial *T, check CheckFunc[T]) *State[T] {
	if check == nil {
		check = func(v T) map[string]string { return validation.Map(v) }
	}
	s := &State[T]{check: check}
	s.reset(initial)
	return s
}

func (s *State[T]) reset(initial *T) {
	s.initial = initial
	var v T
	if initial != nil {
		v = *initial
	}
	s.set(v)
}

func (s *State[T]) set(v T) {
	s.value = detach(v)
	s.errors = s.check(v)
	if len(s.errors) == 0 {
		s.errors = nil
	}
}

// Value は現在の値のコピーを返します。スライスも複製するので、戻り値を書き換えても状態は変わりません。
func (s *State[T]) Value() T { return detach(s.value) }

// Errors はフィールドパスごとのエラーを返します。全て有効なら nil です。
func (s *State[T]) Errors() map[string]string { return s.errors }

// Valid reports whether the current value passes every rule.
func (s *State[T]) Valid() bool { return len(s.errors) == 0 }

// Replace は値全体を置き換えて再検証します。
func (s *State[T]) Replace(v T) {
	s.set(v)
}

// Track は外部から渡された初期値が別のものに変わった場合、ローカルの編集を破棄して
// 状態を作り直します。作り直した場合は true を返します。
func (s *State[T]) Track(initial *T) bool {
	if initial == s.initial {
		return false
	}
	s.reset(initial)
	return true
}

// SetField は JSON 名（または Go のフィールド名）で指定した1項目を更新し、
// 再検証した新しい値を返します。存在しない項目や型の合わない値はエラーになり、状態は変わりません。
func (s *State[T]) SetField(name string, value any) (T, error) {
	next := s.value
	rv := reflect.ValueOf(&next).Elem()
	if rv.Kind() != reflect.Struct {
		return s.value, fmt.Errorf("form: %s is not a struct", rv.Type())
	}

	field, ok := fieldByName(rv, name)
	if !ok {
		return s.value, fmt.Errorf("form: unknown field %q on %s", name, rv.Type())
	}
	if err := assign(field, value); err != nil {
		return s.value, fmt.Errorf("form: field %q: %w", name, err)
	}

	s.set(next)
	return next, nil
}

// detach は構造体の直下にあるスライスとマップを複製します。
func detach[T any](v T) T {
	rv := reflect.ValueOf(&v).Elem()
	if rv.Kind() != reflect.Struct {
		return v
	}
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.Slice:
			if f.IsNil() {
				continue
			}
			c := reflect.MakeSlice(f.Type(), f.Len(), f.Len())
			reflect.Copy(c, f)
			f.Set(c)
		case reflect.Map:
			if f.IsNil() {
				continue
			}
			c := reflect.MakeMapWithSize(f.Type(), f.Len())
			iter := f.MapRange()
			for iter.Next() {
				c.SetMapIndex(iter.Key(), iter.Value())
			}
			f.Set(c)
		}
	}
	return v
}

func fieldByName(rv reflect.Value, name string) (reflect.Value, bool) {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "-" {
			continue
		}
		if tag == name || f.Name == name {
			return rv.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func assign(field reflect.Value, value any) error {
	if value == nil {
		switch field.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
			field.Set(reflect.Zero(field.Type()))
			return nil
		}
		return fmt.Errorf("cannot set nil on %s", field.Type())
	}

	v := reflect.ValueOf(value)
	switch {
	case v.Type().AssignableTo(field.Type()):
		field.Set(v)
	case field.Kind() == reflect.Pointer && v.Type().AssignableTo(field.Type().Elem()):
		p := reflect.New(field.Type().Elem())
		p.Elem().Set(v)
		field.Set(p)
	case convertible(v, field.Type()):
		field.Set(v.Convert(field.Type()))
	default:
		return fmt.Errorf("cannot use %s as %s", v.Type(), field.Type())
	}
	return nil
}

// convertible は数値同士、文字列同士の変換だけを許可します。
func convertible(v reflect.Value, to reflect.Type) bool {
	if !v.Type().ConvertibleTo(to) {
		return false
	}
	return (isNumber(v.Kind()) && isNumber(to.Kind())) ||
		(v.Kind() == reflect.String && to.Kind() == reflect.String)
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
