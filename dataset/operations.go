package dataset

import (
	"fmt"
	"math"
	"sort"
)

// Group представляет подмножество строк с одинаковым значением ключа
type Group struct {
	Key   interface{}
	Frame *Frame
}

// Filter возвращает строки, для которых предикат истинен
func (f *Frame) Filter(predicate func(row []interface{}) bool) *Frame {
	rows := make([][]interface{}, 0)
	for _, row := range f.rows {
		if predicate(row) {
			rows = append(rows, row)
		}
	}
	return f.derive(rows)
}

// Equal возвращает строки, где значение столбца равно value.
// Числа сравниваются по значению независимо от типа (1 == 1.0).
func (f *Frame) Equal(column string, value interface{}) (*Frame, error) {
	idx, err := f.ColumnIndex(column)
	if err != nil {
		return nil, err
	}

	return f.Filter(func(row []interface{}) bool {
		return ValuesEqual(row[idx], value)
	}), nil
}

// Between возвращает строки, где числовое значение столбца лежит в [lo, hi].
// Пустые и нечисловые ячейки не проходят фильтр.
func (f *Frame) Between(column string, lo, hi float64) (*Frame, error) {
	idx, err := f.ColumnIndex(column)
	if err != nil {
		return nil, err
	}

	return f.Filter(func(row []interface{}) bool {
		v, ok := ToFloat(row[idx])
		return ok && v >= lo && v <= hi
	}), nil
}

// Unique возвращает уникальные непустые значения столбца в порядке первого появления
func (f *Frame) Unique(column string) ([]interface{}, error) {
	idx, err := f.ColumnIndex(column)
	if err != nil {
		return nil, err
	}

	seen := make(map[interface{}]bool)
	values := make([]interface{}, 0)
	for _, row := range f.rows {
		v := normalizeKey(row[idx])
		if v == nil || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values, nil
}

// Bounds возвращает минимум и максимум числового столбца.
// ok == false, если числовых значений нет.
func (f *Frame) Bounds(column string) (min, max float64, ok bool, err error) {
	idx, err := f.ColumnIndex(column)
	if err != nil {
		return 0, 0, false, err
	}

	min, max = math.Inf(1), math.Inf(-1)
	for _, row := range f.rows {
		v, isNum := ToFloat(row[idx])
		if !isNum {
			continue
		}
		ok = true
		min = math.Min(min, v)
		max = math.Max(max, v)
	}

	if !ok {
		return 0, 0, false, nil
	}
	return min, max, true, nil
}

// GroupBy разбивает фрейм по значению столбца.
// Группы отсортированы по ключу, пустой ключ образует отдельную последнюю группу,
// поэтому ни одна строка не теряется.
func (f *Frame) GroupBy(column string) ([]Group, error) {
	idx, err := f.ColumnIndex(column)
	if err != nil {
		return nil, err
	}

	order := make([]interface{}, 0)
	buckets := make(map[interface{}][][]interface{})

	for _, row := range f.rows {
		key := normalizeKey(row[idx])
		if _, exists := buckets[key]; !exists {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], row)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return CompareValues(order[i], order[j]) < 0
	})

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		groups = append(groups, Group{Key: key, Frame: f.derive(buckets[key])})
	}
	return groups, nil
}

// normalizeKey приводит целые float64 к int, чтобы 1980 и 1980.0 попадали в одну группу.
// NaN не равен сам себе как ключ map, поэтому он попадает в группу пустых значений.
func normalizeKey(v interface{}) interface{} {
	fv, ok := v.(float64)
	if !ok {
		return v
	}
	if math.IsNaN(fv) {
		return nil
	}
	if fv == math.Trunc(fv) && math.Abs(fv) < 1<<53 {
		return int(fv)
	}
	return v
}

// ToFloat приводит числовую ячейку к float64
func ToFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		if math.IsNaN(n) {
			return 0, false
		}
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}

// ValuesEqual сравнивает две ячейки; числа сравниваются по значению
func ValuesEqual(a, b interface{}) bool {
	fa, okA := ToFloat(a)
	fb, okB := ToFloat(b)
	if okA && okB {
		return fa == fb
	}
	if okA != okB {
		return false
	}
	return a == b
}

// typeRank задает порядок между разными типами: числа, строки, bool, nil
func typeRank(v interface{}) int {
	if _, ok := ToFloat(v); ok {
		return 0
	}
	switch v.(type) {
	case string:
		return 1
	case bool:
		return 2
	case nil:
		return 4
	}
	return 3
}

// CompareValues возвращает -1, 0 или 1
func CompareValues(a, b interface{}) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}

	switch ra {
	case 0:
		fa, _ := ToFloat(a)
		fb, _ := ToFloat(b)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	case 1:
		sa, sb := a.(string), b.(string)
		switch {
		case sa < sb:
			return -1
		case sa > sb:
			return 1
		}
		return 0
	case 2:
		ba, bb := a.(bool), b.(bool)
		if ba == bb {
			return 0
		}
		if !ba {
			return -1
		}
		return 1
	case 3:
		sa, sb := fmt.Sprint(a), fmt.Sprint(b)
		switch {
		case sa < sb:
			return -1
		case sa > sb:
			return 1
		}
	}
	return 0
}
