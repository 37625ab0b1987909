package dashboard

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// State - текущие значения элементов управления одной сессии.
// Значения приходят из JSON: строки, float64, []interface{} или nil.
type State map[string]interface{}

// Clone возвращает копию состояния
func (s State) Clone() State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// With возвращает копию состояния с новым значением элемента
func (s State) With(id string, value interface{}) State {
	out := s.Clone()
	out[id] = value
	return out
}

// IsSet сообщает, что значение задано (не nil и не пустая строка)
func (s State) IsSet(id string) bool {
	v, ok := s[id]
	if !ok || v == nil {
		return false
	}
	if str, isStr := v.(string); isStr && strings.TrimSpace(str) == "" {
		return false
	}
	return true
}

// String возвращает значение как строку ("" если не задано)
func (s State) String(id string) string {
	v, ok := s[id]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Int разбирает значение как целое число. Дробные и нечисловые значения - ошибка.
func (s State) Int(id string) (int, error) {
	v, ok := s[id]
	if !ok || v == nil {
		return 0, fmt.Errorf("значение '%s' не задано", id)
	}

	switch t := v.(type) {
	case int:
		return t, nil
	case float64:
		if t != math.Trunc(t) || math.IsInf(t, 0) || math.IsNaN(t) {
			return 0, fmt.Errorf("значение '%s' не является целым числом: %v", id, t)
		}
		return int(t), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, fmt.Errorf("значение '%s' не является целым числом: %q", id, t)
		}
		return n, nil
	}
	return 0, fmt.Errorf("значение '%s' имеет неподдерживаемый тип %T", id, v)
}

// Range разбирает значение как пару чисел [lo, hi]
func (s State) Range(id string) (float64, float64, error) {
	v, ok := s[id]
	if !ok || v == nil {
		return 0, 0, fmt.Errorf("диапазон '%s' не задан", id)
	}

	var pair []float64
	switch t := v.(type) {
	case []float64:
		pair = t
	case []interface{}:
		for _, item := range t {
			f, isNum := item.(float64)
			if !isNum {
				if n, isInt := item.(int); isInt {
					f, isNum = float64(n), true
				}
			}
			if !isNum {
				return 0, 0, fmt.Errorf("диапазон '%s' содержит нечисловое значение %v", id, item)
			}
			pair = append(pair, f)
		}
	default:
		return 0, 0, fmt.Errorf("диапазон '%s' имеет неподдерживаемый тип %T", id, v)
	}

	if len(pair) != 2 {
		return 0, 0, fmt.Errorf("диапазон '%s' должен содержать два значения, получено %d", id, len(pair))
	}
	return pair[0], pair[1], nil
}
