// Package airline - дашборд показателей авиаперевозок
package airline

import (
	"github.com/LilVoxy/capstone_dashboards/chart"
	"github.com/LilVoxy/capstone_dashboards/dashboard"
	"github.com/LilVoxy/capstone_dashboards/dataset"
	"github.com/LilVoxy/capstone_dashboards/utils"
)

const (
	ControlYear = "input-year"
	RegionLine  = "line-plot"
	RegionBar   = "bar-plot"
)

const (
	colYear      = "Year"
	colMonth     = "Month"
	colArrDelay  = "ArrDelay"
	colDestState = "DestState"
	colFlights   = "Flights"
)

// DefaultYear - значение поля года при открытии страницы
const DefaultYear = "2010"

// DefaultDataPath - путь к набору данных по умолчанию (кодировка ISO-8859-1)
const DefaultDataPath = "airline_data.csv"

// Layout возвращает разметку страницы
func Layout() dashboard.Layout {
	return dashboard.Layout{
		Title:   "Airline Performance Dashboard",
		Heading: "Airline Performance Dashboard",
		Controls: []dashboard.Control{
			{ID: ControlYear, Label: "Input Year: ", Kind: dashboard.Input, InputType: "number", Value: DefaultYear},
		},
		Regions: []dashboard.Region{
			{ID: RegionLine, Property: dashboard.PropFigure},
			{ID: RegionBar, Property: dashboard.PropFigure},
		},
	}
}

// New создает дашборд над загруженным набором данных
func New(data *dataset.Frame, logger *utils.Logger) *dashboard.App {
	app := dashboard.NewApp("airline", Layout(), logger)

	app.MustRegister(
		dashboard.Target{ID: RegionLine, Property: dashboard.PropFigure},
		[]string{ControlYear},
		func(s dashboard.State) (interface{}, error) {
			return DelayByMonth(data, s, logger)
		},
	)
	app.MustRegister(
		dashboard.Target{ID: RegionBar, Property: dashboard.PropFigure},
		[]string{ControlYear},
		func(s dashboard.State) (interface{}, error) {
			return FlightsByState(data, s, logger)
		},
	)

	return app
}

// selectYear оставляет строки выбранного года. Нецелое значение поля - ошибка.
func selectYear(data *dataset.Frame, s dashboard.State) (*dataset.Frame, error) {
	year, err := s.Int(ControlYear)
	if err != nil {
		return nil, err
	}
	return data.Equal(colYear, year)
}

// DelayByMonth - средняя задержка прибытия по месяцам выбранного года
func DelayByMonth(data *dataset.Frame, s dashboard.State, logger *utils.Logger) (*chart.Figure, error) {
	rows, err := selectYear(data, s)
	if err != nil {
		return nil, err
	}

	agg, err := rows.Aggregate(colMonth, colArrDelay, dataset.Mean)
	if err != nil {
		return nil, err
	}
	logger.Debug("Средняя задержка по месяцам:\n%s", agg)

	return chart.Line(agg, "Month vs Average Flight Delay Time").WithAxisTitles(colMonth, colArrDelay), nil
}

// FlightsByState - число рейсов по штату назначения за выбранный год
func FlightsByState(data *dataset.Frame, s dashboard.State, logger *utils.Logger) (*chart.Figure, error) {
	rows, err := selectYear(data, s)
	if err != nil {
		return nil, err
	}

	agg, err := rows.Aggregate(colDestState, colFlights, dataset.Sum)
	if err != nil {
		return nil, err
	}
	logger.Debug("Рейсы по штатам:\n%s", agg)

	return chart.Bar(agg, "Flights to Destination State").WithAxisTitles(colDestState, colFlights), nil
}
