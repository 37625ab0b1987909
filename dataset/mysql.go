package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
)

// Имя таблицы: буквы, цифры и подчеркивания
var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,63}$`)

// ValidateTableName проверяет имя таблицы перед подстановкой в SQL
func ValidateTableName(table string) error {
	if !tableNamePattern.MatchString(table) {
		return fmt.Errorf("недопустимое имя таблицы: %q", table)
	}
	return nil
}

// quoteIdent экранирует идентификатор столбца обратными кавычками
func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// LoadTable читает всю таблицу MySQL во фрейм с теми же правилами вывода типов, что и CSV
func LoadTable(ctx context.Context, db *sql.DB, table string) (*Frame, error) {
	if err := ValidateTableName(table); err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(table))
	if err != nil {
		return nil, fmt.Errorf("ошибка при запросе таблицы %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении столбцов: %w", err)
	}

	frame := NewFrame(columns)
	raw := make([]sql.NullString, len(columns))
	dest := make([]interface{}, len(columns))
	for i := range raw {
		dest[i] = &raw[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("ошибка при сканировании строки: %w", err)
		}

		row := make([]interface{}, len(columns))
		for i, v := range raw {
			if v.Valid {
				row[i] = InferType(v.String)
			}
		}
		if err := frame.AddRow(row); err != nil {
			return nil, err
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации по строкам: %w", err)
	}

	return frame, nil
}

// ColumnTypes определяет тип столбцов MySQL по содержимому фрейма:
// BIGINT для целых, DOUBLE для чисел, TEXT для остального.
func ColumnTypes(frame *Frame) []string {
	types := make([]string, len(frame.columns))
	for j := range frame.columns {
		sqlType := ""
		for _, row := range frame.rows {
			switch row[j].(type) {
			case nil:
				continue
			case int:
				if sqlType == "" {
					sqlType = "BIGINT"
				}
			case float64:
				if sqlType == "" || sqlType == "BIGINT" {
					sqlType = "DOUBLE"
				}
			default:
				sqlType = "TEXT"
			}
			if sqlType == "TEXT" {
				break
			}
		}
		if sqlType == "" {
			sqlType = "TEXT"
		}
		types[j] = sqlType
	}
	return types
}

// CreateTableSQL формирует CREATE TABLE для фрейма
func CreateTableSQL(table string, frame *Frame) (string, error) {
	if err := ValidateTableName(table); err != nil {
		return "", err
	}

	types := ColumnTypes(frame)
	defs := make([]string, len(frame.columns))
	for i, col := range frame.columns {
		defs[i] = fmt.Sprintf("\t%s %s NULL", quoteIdent(col), types[i])
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
		quoteIdent(table), strings.Join(defs, ",\n")), nil
}

// InsertSQL формирует подготовленный INSERT для фрейма
func InsertSQL(table string, frame *Frame) string {
	cols := make([]string, len(frame.columns))
	marks := make([]string, len(frame.columns))
	for i, col := range frame.columns {
		cols[i] = quoteIdent(col)
		marks[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(cols, ", "), strings.Join(marks, ", "))
}

// ImportFrame создает таблицу и заменяет ее содержимое строками фрейма.
// Старые строки удаляются в транзакции первого пакета, поэтому повторная
// загрузка не дублирует данные. Каждый пакет выполняется в отдельной транзакции.
func ImportFrame(ctx context.Context, db *sql.DB, table string, frame *Frame, batchSize int) (int, error) {
	createSQL, err := CreateTableSQL(table, frame)
	if err != nil {
		return 0, err
	}

	if _, err := db.ExecContext(ctx, createSQL); err != nil {
		return 0, fmt.Errorf("ошибка создания таблицы %s: %w", table, err)
	}

	if batchSize <= 0 {
		batchSize = 1000
	}

	deleteSQL := "DELETE FROM " + quoteIdent(table)
	insertSQL := InsertSQL(table, frame)
	inserted := 0

	// пустой фрейм все равно очищает таблицу
	for start := 0; start == 0 || start < len(frame.rows); start += batchSize {
		end := start + batchSize
		if end > len(frame.rows) {
			end = len(frame.rows)
		}

		clearSQL := ""
		if start == 0 {
			clearSQL = deleteSQL
		}

		n, err := insertBatch(ctx, db, clearSQL, insertSQL, frame.rows[start:end])
		if err != nil {
			return inserted, fmt.Errorf("ошибка при загрузке строк %d-%d: %w", start, end, err)
		}
		inserted += n
	}

	return inserted, nil
}

// insertBatch вставляет пакет строк в одной транзакции.
// Непустой clearSQL выполняется в той же транзакции перед вставкой.
func insertBatch(ctx context.Context, db *sql.DB, clearSQL, insertSQL string, rows [][]interface{}) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("ошибка при начале транзакции: %w", err)
	}

	if clearSQL != "" {
		if _, err := tx.ExecContext(ctx, clearSQL); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("ошибка при очистке таблицы: %w", err)
		}
	}

	if len(rows) > 0 {
		stmt, err := tx.PrepareContext(ctx, insertSQL)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("ошибка при подготовке запроса: %w", err)
		}
		defer stmt.Close()

		for _, row := range rows {
			if _, err := stmt.ExecContext(ctx, row...); err != nil {
				tx.Rollback()
				return 0, fmt.Errorf("ошибка при вставке строки: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}
	return len(rows), nil
}
