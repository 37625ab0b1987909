// routes/export_handlers.go
package routes

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/LilVoxy/capstone_dashboards/chart"
	"github.com/LilVoxy/capstone_dashboards/dashboard"
	"github.com/LilVoxy/capstone_dashboards/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// collectFigures собирает диаграммы из успешных обновлений в порядке областей
func collectFigures(updates []dashboard.Update) ([]*chart.Figure, []string) {
	figures := make([]*chart.Figure, 0)
	failed := make([]string, 0)
	for _, u := range updates {
		if u.Error != "" {
			failed = append(failed, u.Target.ID)
			continue
		}
		switch v := u.Value.(type) {
		case *chart.Figure:
			if v != nil {
				figures = append(figures, v)
			}
		case chart.Grid:
			figures = append(figures, v.Figures()...)
		}
	}
	return figures, failed
}

// ExportHandler выгружает данные всех диаграмм для заданного состояния в xlsx
func ExportHandler(app *dashboard.App, logger *utils.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, state, err := decodeUpdateRequest(w, r, app)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		figures, failed := collectFigures(app.DispatchAll(state))
		if len(failed) > 0 {
			logger.Warn("⚠️ Области без данных при выгрузке: %s", strings.Join(failed, ", "))
		}
		if len(figures) == 0 {
			http.Error(w, "Нет диаграмм для выгрузки", http.StatusUnprocessableEntity)
			return
		}

		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", app.Name+".xlsx"))
		if err := chart.WriteWorkbook(w, figures); err != nil {
			logger.Error("❌ Ошибка при выгрузке xlsx: %v", err)
			http.Error(w, "Ошибка при формировании файла", http.StatusInternalServerError)
			return
		}

		logger.Info("✅ Выгружено %d диаграмм дашборда %s", len(figures), app.Name)
	}
}
