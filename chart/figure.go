package chart

import (
	"fmt"

	"github.com/LilVoxy/capstone_dashboards/dataset"
)

// Kind - вид диаграммы
type Kind string

const (
	KindLine    Kind = "line"
	KindBar     Kind = "bar"
	KindPie     Kind = "pie"
	KindScatter Kind = "scatter"
)

// Point - точка ряда. X может быть числом или категорией.
// Null отмечает неопределенное значение (например, среднее пустой группы).
type Point struct {
	X    interface{} `json:"x"`
	Y    float64     `json:"y"`
	Null bool        `json:"null,omitempty"`
}

// Series - именованный ряд точек
type Series struct {
	Name   string  `json:"name,omitempty"`
	Points []Point `json:"points"`
}

// Figure - декларативное описание диаграммы: вид, привязки полей и данные.
// Не зависит от технологии отрисовки.
type Figure struct {
	Kind   Kind     `json:"kind"`
	Title  string   `json:"title"`
	X      string   `json:"x,omitempty"`
	Y      string   `json:"y,omitempty"`
	Color  string   `json:"color,omitempty"`
	Names  string   `json:"names,omitempty"`
	Values string   `json:"values,omitempty"`
	Series []Series `json:"series"`
}

// Grid - диаграммы, разложенные по строкам
type Grid [][]*Figure

// Figures возвращает все диаграммы сетки по порядку
func (g Grid) Figures() []*Figure {
	out := make([]*Figure, 0)
	for _, row := range g {
		out = append(out, row...)
	}
	return out
}

// Empty сообщает, что в диаграмме нет ни одной точки
func (f *Figure) Empty() bool {
	for _, s := range f.Series {
		if len(s.Points) > 0 {
			return false
		}
	}
	return true
}

// PointCount возвращает общее количество точек
func (f *Figure) PointCount() int {
	n := 0
	for _, s := range f.Series {
		n += len(s.Points)
	}
	return n
}

// WithAxisTitles задает подписи осей
func (f *Figure) WithAxisTitles(x, y string) *Figure {
	f.X = x
	f.Y = y
	return f
}

func aggregatePoints(agg *dataset.Aggregate) []Point {
	points := make([]Point, 0, len(agg.Rows))
	for _, r := range agg.Rows {
		p := Point{X: r.Key, Y: r.Value}
		if !r.Valid {
			p.Y = 0
			p.Null = true
		}
		points = append(points, p)
	}
	return points
}

// Line строит линейную диаграмму по агрегату: X - ключ группы, Y - значение свертки
func Line(agg *dataset.Aggregate, title string) *Figure {
	return &Figure{
		Kind:   KindLine,
		Title:  title,
		X:      agg.By,
		Y:      agg.Measure,
		Series: []Series{{Name: agg.Measure, Points: aggregatePoints(agg)}},
	}
}

// Bar строит столбчатую диаграмму по агрегату
func Bar(agg *dataset.Aggregate, title string) *Figure {
	return &Figure{
		Kind:   KindBar,
		Title:  title,
		X:      agg.By,
		Y:      agg.Measure,
		Series: []Series{{Name: agg.Measure, Points: aggregatePoints(agg)}},
	}
}

// Pie строит круговую диаграмму: секторы - группы, величины - значения свертки
func Pie(agg *dataset.Aggregate, title string) *Figure {
	return &Figure{
		Kind:   KindPie,
		Title:  title,
		Names:  agg.By,
		Values: agg.Measure,
		Series: []Series{{Name: agg.Measure, Points: aggregatePoints(agg)}},
	}
}

// Scatter строит точечную диаграмму без группировки.
// Каждое значение столбца color дает отдельный ряд (в порядке первого появления).
// Строки с пустыми или нечисловыми x/y пропускаются.
func Scatter(frame *dataset.Frame, x, y, color, title string) (*Figure, error) {
	xIdx, err := frame.ColumnIndex(x)
	if err != nil {
		return nil, err
	}
	yIdx, err := frame.ColumnIndex(y)
	if err != nil {
		return nil, err
	}
	cIdx := -1
	if color != "" {
		if cIdx, err = frame.ColumnIndex(color); err != nil {
			return nil, err
		}
	}

	fig := &Figure{
		Kind:   KindScatter,
		Title:  title,
		X:      x,
		Y:      y,
		Color:  color,
		Series: make([]Series, 0),
	}

	positions := make(map[string]int)
	for i := 0; i < frame.Len(); i++ {
		row := frame.Row(i)
		xv, okX := dataset.ToFloat(row[xIdx])
		yv, okY := dataset.ToFloat(row[yIdx])
		if !okX || !okY {
			continue
		}

		name := ""
		if cIdx >= 0 {
			name = dataset.FormatValue(row[cIdx])
		}

		pos, ok := positions[name]
		if !ok {
			pos = len(fig.Series)
			positions[name] = pos
			fig.Series = append(fig.Series, Series{Name: name, Points: make([]Point, 0)})
		}
		fig.Series[pos].Points = append(fig.Series[pos].Points, Point{X: xv, Y: yv})
	}

	return fig, nil
}

// Label возвращает подпись точки по ее X
func (p Point) Label() string {
	if p.X == nil {
		return ""
	}
	if v, ok := p.X.(float64); ok {
		return dataset.FormatValue(v)
	}
	return fmt.Sprintf("%v", p.X)
}
