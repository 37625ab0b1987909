package chart

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const maxSheetName = 31

// sheetName приводит заголовок диаграммы к допустимому имени листа Excel
func sheetName(title string, used map[string]bool) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return ' '
		}
		return r
	}, strings.TrimSpace(title))

	if name == "" {
		name = "Chart"
	}
	if runes := []rune(name); len(runes) > maxSheetName-4 {
		name = strings.TrimSpace(string(runes[:maxSheetName-4]))
	}

	candidate := name
	for i := 2; used[strings.ToLower(candidate)]; i++ {
		candidate = fmt.Sprintf("%s %d", name, i)
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

// WriteWorkbook выгружает данные диаграмм в xlsx: по листу на диаграмму,
// столбцы series / x / y.
func WriteWorkbook(w io.Writer, figures []*Figure) error {
	f := excelize.NewFile()
	defer f.Close()

	const defaultSheet = "Sheet1"
	used := map[string]bool{strings.ToLower(defaultSheet): true}
	created := 0

	for _, fig := range figures {
		if fig == nil {
			continue
		}

		name := sheetName(fig.Title, used)
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("ошибка создания листа %q: %w", name, err)
		}
		created++

		xHeader, yHeader := fig.X, fig.Y
		if fig.Kind == KindPie {
			xHeader, yHeader = fig.Names, fig.Values
		}
		header := []interface{}{"series", xHeader, yHeader}
		if err := f.SetSheetRow(name, "A1", &header); err != nil {
			return fmt.Errorf("ошибка записи заголовка: %w", err)
		}

		row := 2
		for _, s := range fig.Series {
			for _, p := range s.Points {
				var y interface{} = p.Y
				if p.Null {
					y = nil
				}
				cell, err := excelize.CoordinatesToCellName(1, row)
				if err != nil {
					return err
				}
				values := []interface{}{s.Name, p.X, y}
				if err := f.SetSheetRow(name, cell, &values); err != nil {
					return fmt.Errorf("ошибка записи строки %d: %w", row, err)
				}
				row++
			}
		}
	}

	if created > 0 {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return fmt.Errorf("ошибка удаления листа по умолчанию: %w", err)
		}
		f.SetActiveSheet(0)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("ошибка записи книги: %w", err)
	}
	return nil
}
