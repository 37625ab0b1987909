package dataset

import (
	"fmt"
	"strings"
)

// Frame хранит табличные данные: упорядоченные именованные столбцы и строки
// с динамически типизированными ячейками (int, float64, bool, string или nil).
// После загрузки фрейм не изменяется, все операции возвращают новый фрейм.
type Frame struct {
	columns []string
	index   map[string]int
	rows    [][]interface{}
}

// NewFrame создает пустой фрейм с заданными столбцами
func NewFrame(columns []string) *Frame {
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		index[col] = i
	}

	return &Frame{
		columns: columns,
		index:   index,
		rows:    make([][]interface{}, 0),
	}
}

// derive создает фрейм с теми же столбцами и переданными строками
func (f *Frame) derive(rows [][]interface{}) *Frame {
	return &Frame{
		columns: f.columns,
		index:   f.index,
		rows:    rows,
	}
}

// AddRow добавляет строку. Используется только при загрузке.
func (f *Frame) AddRow(row []interface{}) error {
	if len(row) != len(f.columns) {
		return fmt.Errorf("длина строки %d не совпадает с количеством столбцов %d", len(row), len(f.columns))
	}

	f.rows = append(f.rows, row)
	return nil
}

// Len возвращает количество строк
func (f *Frame) Len() int {
	return len(f.rows)
}

// Shape возвращает (строки, столбцы)
func (f *Frame) Shape() (int, int) {
	return len(f.rows), len(f.columns)
}

// Columns возвращает копию списка столбцов
func (f *Frame) Columns() []string {
	out := make([]string, len(f.columns))
	copy(out, f.columns)
	return out
}

// ColumnIndex возвращает позицию столбца или ошибку, если его нет
func (f *Frame) ColumnIndex(name string) (int, error) {
	idx, ok := f.index[name]
	if !ok {
		return -1, fmt.Errorf("столбец '%s' не найден", name)
	}
	return idx, nil
}

// Column возвращает значения столбца
func (f *Frame) Column(name string) ([]interface{}, error) {
	idx, err := f.ColumnIndex(name)
	if err != nil {
		return nil, err
	}

	values := make([]interface{}, len(f.rows))
	for i, row := range f.rows {
		values[i] = row[idx]
	}
	return values, nil
}

// Row возвращает копию строки i
func (f *Frame) Row(i int) []interface{} {
	out := make([]interface{}, len(f.rows[i]))
	copy(out, f.rows[i])
	return out
}

// Head возвращает первые n строк
func (f *Frame) Head(n int) *Frame {
	if n > len(f.rows) {
		n = len(f.rows)
	}
	return f.derive(f.rows[:n])
}

func (f *Frame) String() string {
	var b strings.Builder

	for _, col := range f.columns {
		fmt.Fprintf(&b, "%-15s", col)
	}
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", len(f.columns)*15))
	b.WriteString("\n")

	for _, row := range f.rows {
		for _, val := range row {
			fmt.Fprintf(&b, "%-15v", val)
		}
		b.WriteString("\n")
	}

	return b.String()
}
