package dataset

import (
	"fmt"
	"sort"
	"strings"
)

// Reducer определяет операцию свертки внутри группы
type Reducer int

const (
	Mean Reducer = iota
	Sum
	Count
)

func (r Reducer) String() string {
	switch r {
	case Mean:
		return "mean"
	case Sum:
		return "sum"
	case Count:
		return "count"
	}
	return fmt.Sprintf("reducer(%d)", int(r))
}

// AggregateRow - одна строка производного агрегата
type AggregateRow struct {
	Key   interface{}
	Rows  int     // количество строк входа в группе
	Value float64 // результат свертки
	Valid bool    // false, если среднее не определено (нет числовых значений)
}

// Aggregate - производная таблица: группировка по By и свертка Measure
type Aggregate struct {
	By      string
	Measure string
	Reducer Reducer
	Rows    []AggregateRow
}

// Aggregate группирует фрейм по столбцу by и сворачивает столбец measure.
// Mean и Sum пропускают пустые ячейки, Count считает непустые.
func (f *Frame) Aggregate(by, measure string, reducer Reducer) (*Aggregate, error) {
	measureIdx, err := f.ColumnIndex(measure)
	if err != nil {
		return nil, err
	}

	groups, err := f.GroupBy(by)
	if err != nil {
		return nil, err
	}

	agg := &Aggregate{
		By:      by,
		Measure: measure,
		Reducer: reducer,
		Rows:    make([]AggregateRow, 0, len(groups)),
	}

	for _, g := range groups {
		row := AggregateRow{Key: g.Key, Rows: g.Frame.Len()}

		var sum float64
		var numeric, present int
		for _, r := range g.Frame.rows {
			v := r[measureIdx]
			if v != nil {
				present++
			}
			if fv, ok := ToFloat(v); ok {
				sum += fv
				numeric++
			}
		}

		switch reducer {
		case Mean:
			if numeric > 0 {
				row.Value = sum / float64(numeric)
				row.Valid = true
			}
		case Sum:
			row.Value = sum
			row.Valid = true
		case Count:
			row.Value = float64(present)
			row.Valid = true
		default:
			return nil, fmt.Errorf("неизвестная операция свертки: %v", reducer)
		}

		agg.Rows = append(agg.Rows, row)
	}

	return agg, nil
}

// RowCount возвращает сумму строк по всем группам
func (a *Aggregate) RowCount() int {
	total := 0
	for _, r := range a.Rows {
		total += r.Rows
	}
	return total
}

// Len возвращает количество групп
func (a *Aggregate) Len() int {
	return len(a.Rows)
}

// Reorder возвращает копию агрегата, отсортированную по рангу ключа.
// Ключи без ранга остаются в конце в исходном порядке.
func (a *Aggregate) Reorder(rank func(key interface{}) (int, bool)) *Aggregate {
	out := &Aggregate{By: a.By, Measure: a.Measure, Reducer: a.Reducer}

	type rankedRow struct {
		pos int
		row AggregateRow
	}
	ranked := make([]rankedRow, 0, len(a.Rows))
	rest := make([]AggregateRow, 0)
	for _, r := range a.Rows {
		if pos, ok := rank(r.Key); ok {
			ranked = append(ranked, rankedRow{pos: pos, row: r})
			continue
		}
		rest = append(rest, r)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].pos < ranked[j].pos
	})

	out.Rows = make([]AggregateRow, 0, len(a.Rows))
	for _, r := range ranked {
		out.Rows = append(out.Rows, r.row)
	}
	out.Rows = append(out.Rows, rest...)
	return out
}

func (a *Aggregate) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-20s%-20s\n", a.By, a.Measure)
	for _, r := range a.Rows {
		if r.Valid {
			fmt.Fprintf(&b, "%-20v%-20g\n", FormatValue(r.Key), r.Value)
		} else {
			fmt.Fprintf(&b, "%-20vNaN\n", FormatValue(r.Key))
		}
	}
	return b.String()
}

var monthNames = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

// MonthRank возвращает календарный номер для ключей-названий месяцев ("Jan", "January")
// и для числовых месяцев 1..12.
func MonthRank(key interface{}) (int, bool) {
	if v, ok := ToFloat(key); ok {
		if v >= 1 && v <= 12 && v == float64(int(v)) {
			return int(v), true
		}
		return 0, false
	}

	s, ok := key.(string)
	if !ok || len(s) < 3 {
		return 0, false
	}
	prefix := strings.ToLower(s[:3])
	for i, name := range monthNames {
		if name == prefix {
			return i + 1, true
		}
	}
	return 0, false
}
