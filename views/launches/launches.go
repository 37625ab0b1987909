// Package launches - дашборд результатов запусков SpaceX
package launches

import (
	"fmt"

	"github.com/LilVoxy/capstone_dashboards/chart"
	"github.com/LilVoxy/capstone_dashboards/dashboard"
	"github.com/LilVoxy/capstone_dashboards/dataset"
	"github.com/LilVoxy/capstone_dashboards/utils"
)

const (
	ControlSite    = "site-dropdown"
	ControlPayload = "payload-slider"
	RegionPie      = "success-pie-chart"
	RegionScatter  = "success-payload-scatter-chart"
)

// AllSites - значение выбора "все площадки"
const AllSites = "ALL"

const (
	colSite    = "Launch Site"
	colClass   = "class"
	colPayload = "Payload Mass (kg)"
	colBooster = "Booster Version Category"
)

// Шкала выбора массы полезной нагрузки
const (
	PayloadMin  = 0
	PayloadMax  = 10000
	PayloadStep = 50
)

// DefaultPayload - начальный диапазон. Он уже полного диапазона данных,
// поэтому до настройки шкалы большая часть точек может быть скрыта.
var DefaultPayload = []float64{0, 1000}

// DefaultDataPath - путь к набору данных по умолчанию
const DefaultDataPath = "spacex_launch_dash.csv"

// Layout возвращает разметку страницы; список площадок строится по набору данных
func Layout(data *dataset.Frame) (dashboard.Layout, error) {
	sites, err := data.Unique(colSite)
	if err != nil {
		return dashboard.Layout{}, err
	}

	options := []dashboard.Option{{Label: "All Sites", Value: AllSites}}
	for _, site := range sites {
		if site == nil {
			continue
		}
		name := dataset.FormatValue(site)
		options = append(options, dashboard.Option{Label: name, Value: name})
	}

	marks := make([]dashboard.Mark, 0, 5)
	for v := PayloadMin; v <= PayloadMax; v += 2500 {
		marks = append(marks, dashboard.Mark{Value: float64(v), Label: fmt.Sprint(v)})
	}

	initial := make([]float64, len(DefaultPayload))
	copy(initial, DefaultPayload)

	return dashboard.Layout{
		Title:   "SpaceX Launch Records Dashboard",
		Heading: "SpaceX Launch Records Dashboard",
		Controls: []dashboard.Control{
			{
				ID:          ControlSite,
				Kind:        dashboard.Dropdown,
				Options:     options,
				Value:       AllSites,
				Placeholder: "Select a Launch Site here",
			},
			{
				ID:    ControlPayload,
				Label: "Payload range (Kg):",
				Kind:  dashboard.Range,
				Min:   PayloadMin,
				Max:   PayloadMax,
				Step:  PayloadStep,
				Marks: marks,
				Value: initial,
			},
		},
		Regions: []dashboard.Region{
			{ID: RegionPie, Property: dashboard.PropFigure},
			{ID: RegionScatter, Property: dashboard.PropFigure},
		},
	}, nil
}

// New создает дашборд над загруженным набором данных
func New(data *dataset.Frame, logger *utils.Logger) (*dashboard.App, error) {
	layout, err := Layout(data)
	if err != nil {
		return nil, err
	}
	app := dashboard.NewApp("launches", layout, logger)

	app.MustRegister(
		dashboard.Target{ID: RegionPie, Property: dashboard.PropFigure},
		[]string{ControlSite},
		func(s dashboard.State) (interface{}, error) {
			return SuccessPie(data, s, logger)
		},
	)
	app.MustRegister(
		dashboard.Target{ID: RegionScatter, Property: dashboard.PropFigure},
		[]string{ControlPayload, ControlSite},
		func(s dashboard.State) (interface{}, error) {
			return PayloadScatter(data, s, logger)
		},
	)

	return app, nil
}

// selectedSite возвращает выбранную площадку; пустой выбор трактуется как ALL
func selectedSite(s dashboard.State) string {
	if !s.IsSet(ControlSite) {
		return AllSites
	}
	return s.String(ControlSite)
}

// SuccessPie строит круговую диаграмму успешности.
// ALL: сумма флага class по площадкам (доля успешных запусков каждой площадки).
// Конкретная площадка: число запусков по значениям class внутри площадки.
func SuccessPie(data *dataset.Frame, s dashboard.State, logger *utils.Logger) (*chart.Figure, error) {
	site := selectedSite(s)

	if site == AllSites {
		agg, err := data.Aggregate(colSite, colClass, dataset.Sum)
		if err != nil {
			return nil, err
		}
		logger.Debug("Успешные запуски по площадкам:\n%s", agg)
		return chart.Pie(agg, "Total Success Launches by Site"), nil
	}

	rows, err := data.Equal(colSite, site)
	if err != nil {
		return nil, err
	}
	agg, err := rows.Aggregate(colClass, colSite, dataset.Count)
	if err != nil {
		return nil, err
	}
	logger.Debug("Исходы запусков площадки %s:\n%s", site, agg)
	return chart.Pie(agg, fmt.Sprintf("Total Success Launches for Site %s", site)), nil
}

// PayloadScatter строит зависимость исхода от массы полезной нагрузки.
// Диапазон массы включает обе границы; строки без массы не попадают на диаграмму.
func PayloadScatter(data *dataset.Frame, s dashboard.State, logger *utils.Logger) (*chart.Figure, error) {
	lo, hi, err := s.Range(ControlPayload)
	if err != nil {
		return nil, err
	}

	rows, err := data.Between(colPayload, lo, hi)
	if err != nil {
		return nil, err
	}

	title := "Correlation Between Payload and Success for All Sites"
	if site := selectedSite(s); site != AllSites {
		if rows, err = rows.Equal(colSite, site); err != nil {
			return nil, err
		}
		title = fmt.Sprintf("Correlation Between Payload and Success for %s", site)
	}
	logger.Debug("Запусков в диапазоне [%v, %v]: %d", lo, hi, rows.Len())

	return chart.Scatter(rows, colPayload, colClass, colBooster, title)
}
