package chart

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/LilVoxy/capstone_dashboards/dataset"
)

// Размеры изображения по умолчанию
const (
	DefaultWidth  = 640
	DefaultHeight = 400
)

// Renderer отрисовывает спецификации диаграмм в PNG
type Renderer struct {
	Width  int
	Height int
}

// NewRenderer создает отрисовщик с заданными размерами (0 - значения по умолчанию)
func NewRenderer(width, height int) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Renderer{Width: width, Height: height}
}

// RenderedFigure - спецификация вместе с готовым изображением для клиента
type RenderedFigure struct {
	*Figure
	Image string `json:"image"`
}

// Payload превращает значение обновления в данные для клиента:
// диаграммы и сетки получают изображение, остальные значения передаются как есть.
func (r *Renderer) Payload(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case *Figure:
		if v == nil {
			return nil, nil
		}
		return r.renderFigure(v)
	case Grid:
		if v == nil {
			return nil, nil
		}
		rows := make([][]*RenderedFigure, 0, len(v))
		for _, row := range v {
			out := make([]*RenderedFigure, 0, len(row))
			for _, fig := range row {
				rendered, err := r.renderFigure(fig)
				if err != nil {
					return nil, err
				}
				out = append(out, rendered)
			}
			rows = append(rows, out)
		}
		return rows, nil
	}
	return value, nil
}

func (r *Renderer) renderFigure(fig *Figure) (*RenderedFigure, error) {
	img, err := r.PNG(fig)
	if err != nil {
		return nil, fmt.Errorf("ошибка отрисовки диаграммы '%s': %w", fig.Title, err)
	}
	return &RenderedFigure{
		Figure: fig,
		Image:  "data:image/png;base64," + base64.StdEncoding.EncodeToString(img),
	}, nil
}

// PNG отрисовывает диаграмму. Пустые диаграммы дают пустое изображение-заглушку.
func (r *Renderer) PNG(fig *Figure) ([]byte, error) {
	if fig.Empty() {
		return r.placeholder()
	}

	var buf bytes.Buffer
	var err error

	switch fig.Kind {
	case KindLine:
		err = r.renderXY(fig, false, &buf)
	case KindScatter:
		err = r.renderXY(fig, true, &buf)
	case KindBar:
		err = r.renderBar(fig, &buf)
	case KindPie:
		return r.renderPie(fig)
	default:
		return nil, fmt.Errorf("неизвестный вид диаграммы: %s", fig.Kind)
	}

	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderXY рисует линию или точки. Категориальные X раскладываются по позициям 1..n.
func (r *Renderer) renderXY(fig *Figure, dots bool, buf *bytes.Buffer) error {
	categorical := false
	for _, s := range fig.Series {
		for _, p := range s.Points {
			if _, ok := dataset.ToFloat(p.X); !ok {
				categorical = true
			}
		}
	}

	var ticks []gochart.Tick
	positions := make(map[string]float64)
	series := make([]gochart.Series, 0, len(fig.Series))
	xMin, xMax := math.Inf(1), math.Inf(-1)
	yMin, yMax := math.Inf(1), math.Inf(-1)

	for i, s := range fig.Series {
		xs := make([]float64, 0, len(s.Points))
		ys := make([]float64, 0, len(s.Points))
		for _, p := range s.Points {
			if p.Null {
				continue
			}
			var x float64
			if categorical {
				label := p.Label()
				pos, ok := positions[label]
				if !ok {
					pos = float64(len(positions) + 1)
					positions[label] = pos
					ticks = append(ticks, gochart.Tick{Value: pos, Label: label})
				}
				x = pos
			} else {
				x, _ = dataset.ToFloat(p.X)
			}
			xs = append(xs, x)
			ys = append(ys, p.Y)
			xMin, xMax = math.Min(xMin, x), math.Max(xMax, x)
			yMin, yMax = math.Min(yMin, p.Y), math.Max(yMax, p.Y)
		}
		if len(xs) == 0 {
			continue
		}

		style := gochart.Style{
			StrokeColor: gochart.GetDefaultColor(i),
			StrokeWidth: 2,
		}
		if dots {
			style = gochart.Style{
				StrokeWidth: gochart.Disabled,
				DotWidth:    4,
				DotColor:    gochart.GetDefaultColor(i),
			}
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    s.Name,
			Style:   style,
			XValues: xs,
			YValues: ys,
		})
	}

	if len(series) == 0 {
		placeholder, err := r.placeholder()
		if err != nil {
			return err
		}
		buf.Write(placeholder)
		return nil
	}

	xRange := paddedRange(xMin, xMax)
	yRange := paddedRange(yMin, yMax)
	if categorical {
		xRange = &gochart.ContinuousRange{Min: 0.5, Max: float64(len(positions)) + 0.5}
	}

	graph := gochart.Chart{
		Title:  fig.Title,
		Width:  r.Width,
		Height: r.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		XAxis: gochart.XAxis{
			Name:  fig.X,
			Range: xRange,
			Ticks: ticks,
		},
		YAxis: gochart.YAxis{
			Name:  fig.Y,
			Range: yRange,
		},
		Series: series,
	}

	if len(series) > 1 {
		graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}
	}

	return graph.Render(gochart.PNG, buf)
}

// paddedRange расширяет вырожденный диапазон, иначе go-chart вернет ошибку нулевого диапазона
func paddedRange(lo, hi float64) *gochart.ContinuousRange {
	if hi-lo == 0 {
		delta := math.Abs(lo) * 0.1
		if delta == 0 {
			delta = 1
		}
		return &gochart.ContinuousRange{Min: lo - delta, Max: hi + delta}
	}
	return &gochart.ContinuousRange{Min: lo, Max: hi}
}

func (r *Renderer) renderBar(fig *Figure, buf *bytes.Buffer) error {
	bars := make([]gochart.Value, 0)
	lo, hi := 0.0, 0.0
	for _, s := range fig.Series {
		for _, p := range s.Points {
			bars = append(bars, gochart.Value{Value: p.Y, Label: p.Label()})
			lo, hi = math.Min(lo, p.Y), math.Max(hi, p.Y)
		}
	}
	if hi == lo {
		hi = lo + 1
	}

	// ширина столбцов подбирается так, чтобы все столбцы поместились
	spacing := 4
	barWidth := (r.Width-80)/len(bars) - spacing
	if barWidth < 2 {
		barWidth = 2
	}
	if barWidth > 50 {
		barWidth = 50
	}

	graph := gochart.BarChart{
		Title:  fig.Title,
		Width:  r.Width,
		Height: r.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40},
		},
		BarWidth:   barWidth,
		BarSpacing: spacing,
		YAxis: gochart.YAxis{
			Name:  fig.Y,
			Range: &gochart.ContinuousRange{Min: lo, Max: hi},
		},
		Bars: bars,
	}

	return graph.Render(gochart.PNG, buf)
}

// renderPie рисует круговую диаграмму; секторы с неположительным значением пропускаются
func (r *Renderer) renderPie(fig *Figure) ([]byte, error) {
	values := make([]gochart.Value, 0)
	total := 0.0
	for _, s := range fig.Series {
		for _, p := range s.Points {
			if p.Null || p.Y <= 0 {
				continue
			}
			values = append(values, gochart.Value{Value: p.Y, Label: p.Label()})
			total += p.Y
		}
	}

	if total <= 0 {
		return r.placeholder()
	}

	graph := gochart.PieChart{
		Title:  fig.Title,
		Width:  r.Width,
		Height: r.Height,
		Values: values,
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// placeholder возвращает белое изображение для пустой диаграммы
func (r *Renderer) placeholder() ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
