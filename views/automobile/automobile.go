// Package automobile - дашборд статистики продаж автомобилей
package automobile

import (
	"fmt"

	"github.com/LilVoxy/capstone_dashboards/chart"
	"github.com/LilVoxy/capstone_dashboards/dashboard"
	"github.com/LilVoxy/capstone_dashboards/dataset"
	"github.com/LilVoxy/capstone_dashboards/utils"
)

// Идентификаторы элементов страницы
const (
	ControlStatistics = "dropdown-statistics"
	ControlYear       = "select-year"
	RegionOutput      = "output-container"
)

// Виды отчета
const (
	YearlyStatistics    = "Yearly Statistics"
	RecessionStatistics = "Recession Period Statistics"
)

// Столбцы набора данных
const (
	colYear        = "Year"
	colMonth       = "Month"
	colRecession   = "Recession"
	colSales       = "Automobile_Sales"
	colVehicleType = "Vehicle_Type"
	colAdvertising = "Advertising_Expenditure"
	colUnemployed  = "unemployment_rate"
)

// Годы, доступные для выбора
const (
	FirstYear = 1980
	LastYear  = 2023
)

// DefaultDataPath - путь к набору данных по умолчанию
const DefaultDataPath = "historical_automobile_sales.csv"

// Layout возвращает разметку страницы
func Layout() dashboard.Layout {
	years := make([]dashboard.Option, 0, LastYear-FirstYear+1)
	for y := FirstYear; y <= LastYear; y++ {
		years = append(years, dashboard.Option{Label: fmt.Sprint(y), Value: y})
	}

	return dashboard.Layout{
		Title:   "Automobile Statistics Dashboard",
		Heading: "Automobile Sales Statistics Dashboard",
		Controls: []dashboard.Control{
			{
				ID:    ControlStatistics,
				Label: "Select Statistics:",
				Kind:  dashboard.Dropdown,
				Options: []dashboard.Option{
					{Label: YearlyStatistics, Value: YearlyStatistics},
					{Label: RecessionStatistics, Value: RecessionStatistics},
				},
				Placeholder: "Select a report type",
			},
			{
				ID:          ControlYear,
				Label:       "Select Year:",
				Kind:        dashboard.Dropdown,
				Options:     years,
				Placeholder: "Select Year",
				Disabled:    true,
			},
		},
		Regions: []dashboard.Region{
			{ID: RegionOutput, Property: dashboard.PropChildren},
		},
	}
}

// New создает дашборд над загруженным набором данных
func New(data *dataset.Frame, logger *utils.Logger) *dashboard.App {
	app := dashboard.NewApp("automobile", Layout(), logger)

	app.MustRegister(
		dashboard.Target{ID: ControlYear, Property: dashboard.PropDisabled},
		[]string{ControlStatistics},
		YearDisabled,
	)

	app.MustRegister(
		dashboard.Target{ID: RegionOutput, Property: dashboard.PropChildren},
		[]string{ControlYear, ControlStatistics},
		func(s dashboard.State) (interface{}, error) {
			return Output(data, s, logger)
		},
	)

	return app
}

// YearDisabled: выбор года доступен только для годовой статистики
func YearDisabled(s dashboard.State) (interface{}, error) {
	return s.String(ControlStatistics) != YearlyStatistics, nil
}

// Output строит сетку диаграмм для текущего состояния.
// Режим рецессии всегда игнорирует выбранный год; в остальных случаях
// достаточно выбранного года. Без года и без режима рецессии возвращает nil.
func Output(data *dataset.Frame, s dashboard.State, logger *utils.Logger) (chart.Grid, error) {
	if s.String(ControlStatistics) == RecessionStatistics {
		return RecessionCharts(data, logger)
	}
	if !s.IsSet(ControlYear) {
		return nil, nil
	}
	year, err := s.Int(ControlYear)
	if err != nil {
		return nil, err
	}
	return YearlyCharts(data, year, logger)
}

// RecessionCharts строит отчет по периодам рецессии (строки с Recession == 1)
func RecessionCharts(data *dataset.Frame, logger *utils.Logger) (chart.Grid, error) {
	recession, err := data.Equal(colRecession, 1)
	if err != nil {
		return nil, err
	}

	// Диаграмма 1: средние продажи по годам в периоды рецессии
	yearly, err := recession.Aggregate(colYear, colSales, dataset.Mean)
	if err != nil {
		return nil, err
	}
	logger.Debug("Средние продажи по годам (рецессия):\n%s", yearly)
	chart1 := chart.Line(yearly, "Average Automobile Sales fluctuation over Recession Period")

	// Диаграмма 2: средние продажи по типу автомобиля
	byType, err := recession.Aggregate(colVehicleType, colSales, dataset.Mean)
	if err != nil {
		return nil, err
	}
	logger.Debug("Средние продажи по типу (рецессия):\n%s", byType)
	chart2 := chart.Bar(byType, "Average Number of Vehicles Sold by Vehicle Type")

	// Диаграмма 3: доля рекламных расходов по типу автомобиля
	expenses, err := recession.Aggregate(colVehicleType, colAdvertising, dataset.Sum)
	if err != nil {
		return nil, err
	}
	logger.Debug("Расходы на рекламу по типу (рецессия):\n%s", expenses)
	chart3 := chart.Pie(expenses, "Share of Each Vehicle Type in Total Expenditure during Recessions")

	// Диаграмма 4: влияние безработицы на продажи по типу автомобиля
	chart4, err := chart.Scatter(recession, colUnemployed, colSales, colVehicleType,
		"The Effect of Unemployment Rate on Vehicle Type and Sales")
	if err != nil {
		return nil, err
	}

	return chart.Grid{{chart1, chart2}, {chart3, chart4}}, nil
}

// YearlyCharts строит годовой отчет. Диаграмма 1 показывает тренд по всему
// набору данных и не фильтруется по году, диаграммы 2-4 - только выбранный год.
func YearlyCharts(data *dataset.Frame, year int, logger *utils.Logger) (chart.Grid, error) {
	yearly, err := data.Equal(colYear, year)
	if err != nil {
		return nil, err
	}

	// Диаграмма 1: средние продажи по годам за весь период
	allYears, err := data.Aggregate(colYear, colSales, dataset.Mean)
	if err != nil {
		return nil, err
	}
	logger.Debug("Средние продажи по годам:\n%s", allYears)
	chart1 := chart.Line(allYears, "Yearly Automobile sales")

	// Диаграмма 2: средние продажи по месяцам выбранного года (в календарном порядке)
	monthly, err := yearly.Aggregate(colMonth, colSales, dataset.Mean)
	if err != nil {
		return nil, err
	}
	monthly = monthly.Reorder(dataset.MonthRank)
	logger.Debug("Средние продажи по месяцам %d:\n%s", year, monthly)
	chart2 := chart.Line(monthly, "Monthly Automobile sales")

	// Диаграмма 3: средние продажи по типу автомобиля за год
	byType, err := yearly.Aggregate(colVehicleType, colSales, dataset.Mean)
	if err != nil {
		return nil, err
	}
	logger.Debug("Средние продажи по типу %d:\n%s", year, byType)
	chart3 := chart.Bar(byType, fmt.Sprintf("Average Vehicles Sold by Vehicle Type in the year %d", year))

	// Диаграмма 4: доля рекламных расходов по типу автомобиля за год
	expenses, err := yearly.Aggregate(colVehicleType, colAdvertising, dataset.Sum)
	if err != nil {
		return nil, err
	}
	logger.Debug("Расходы на рекламу по типу %d:\n%s", year, expenses)
	chart4 := chart.Pie(expenses, fmt.Sprintf("Share of Each Vehicle Type in Total Expenditure in the year %d", year))

	return chart.Grid{{chart1, chart2}, {chart3, chart4}}, nil
}
