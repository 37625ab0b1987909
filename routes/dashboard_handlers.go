// routes/dashboard_handlers.go
package routes

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/LilVoxy/capstone_dashboards/chart"
	"github.com/LilVoxy/capstone_dashboards/dashboard"
	"github.com/LilVoxy/capstone_dashboards/utils"
	"github.com/LilVoxy/capstone_dashboards/websocket"
)

// maxBodySize ограничивает размер тела запроса
const maxBodySize = 64 * 1024

// UpdateRequest - запрос пересчета: измененный элемент и значения элементов.
// Пустой Changed означает полную отрисовку.
type UpdateRequest struct {
	Changed string                 `json:"changed"`
	State   map[string]interface{} `json:"state"`
}

// UpdateResponse - результаты функций обновления
type UpdateResponse struct {
	Updates []dashboard.Update `json:"updates"`
}

// writeJSON кодирует ответ в JSON
func writeJSON(w http.ResponseWriter, logger *utils.Logger, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(value); err != nil {
		logger.Error("❌ Ошибка при кодировании JSON: %v", err)
		http.Error(w, "Ошибка при формировании ответа", http.StatusInternalServerError)
	}
}

// requestState собирает состояние из значений по умолчанию и значений запроса
func requestState(app *dashboard.App, values map[string]interface{}) (dashboard.State, error) {
	state := app.InitialState()
	for id, value := range values {
		next, err := app.Apply(state, id, value)
		if err != nil {
			return nil, err
		}
		state = next
	}
	return state, nil
}

// decodeUpdateRequest разбирает тело запроса пересчета
func decodeUpdateRequest(w http.ResponseWriter, r *http.Request, app *dashboard.App) (UpdateRequest, dashboard.State, error) {
	var req UpdateRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, nil, fmt.Errorf("некорректное тело запроса: %w", err)
	}

	state, err := requestState(app, req.State)
	if err != nil {
		return req, nil, err
	}
	if req.Changed != "" {
		if _, err := app.Apply(state, req.Changed, state[req.Changed]); err != nil {
			return req, nil, err
		}
	}
	return req, state, nil
}

// PageHandler отдает страницу дашборда
func PageHandler(app *dashboard.App, logger *utils.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := dashboard.WritePage(w, app); err != nil {
			logger.Error("❌ Ошибка при отрисовке страницы: %v", err)
			http.Error(w, "Ошибка при формировании страницы", http.StatusInternalServerError)
		}
	}
}

// LayoutHandler отдает разметку дашборда
func LayoutHandler(app *dashboard.App, logger *utils.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, logger, app.Layout)
	}
}

// UpdateHandler пересчитывает области, зависящие от измененного элемента.
// Ошибка функции обновления возвращается в ее собственной записи, код ответа остается 200.
func UpdateHandler(app *dashboard.App, renderer *chart.Renderer, logger *utils.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, state, err := decodeUpdateRequest(w, r, app)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var updates []dashboard.Update
		if req.Changed == "" {
			updates = app.DispatchAll(state)
		} else {
			updates = app.Dispatch(state, req.Changed)
		}

		writeJSON(w, logger, UpdateResponse{Updates: websocket.RenderUpdates(renderer, updates)})
		logger.Debug("✅ Пересчитано %d областей по изменению '%s'", len(updates), req.Changed)
	}
}
