package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/golang/snappy"
	"golang.org/x/text/encoding"
)

// SnappySuffix помечает CSV-файлы, сжатые потоковым форматом snappy
const SnappySuffix = ".sz"

// CSVConfig содержит параметры чтения CSV
type CSVConfig struct {
	HasHeader bool
	Delimiter rune
	Encoding  encoding.Encoding
}

// CSVOption изменяет CSVConfig
type CSVOption func(*CSVConfig)

// WithHeader указывает, содержит ли первая строка имена столбцов
func WithHeader(hasHeader bool) CSVOption {
	return func(c *CSVConfig) {
		c.HasHeader = hasHeader
	}
}

// WithDelimiter задает разделитель полей
func WithDelimiter(delimiter rune) CSVOption {
	return func(c *CSVConfig) {
		c.Delimiter = delimiter
	}
}

// WithEncoding задает кодировку исходного файла (например, ISO-8859-1)
func WithEncoding(enc encoding.Encoding) CSVOption {
	return func(c *CSVConfig) {
		c.Encoding = enc
	}
}

// ReadCSV читает CSV-файл в фрейм. Файлы с суффиксом .sz распаковываются snappy.
func ReadCSV(filename string, options ...CSVOption) (*Frame, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть файл: %w", err)
	}
	defer file.Close()

	var r io.Reader = file
	if strings.HasSuffix(filename, SnappySuffix) {
		r = snappy.NewReader(file)
	}

	return ReadCSVFrom(r, options...)
}

// ReadCSVFrom читает CSV из произвольного источника
func ReadCSVFrom(r io.Reader, options ...CSVOption) (*Frame, error) {
	config := &CSVConfig{
		HasHeader: true,
		Delimiter: ',',
	}

	for _, option := range options {
		option(config)
	}

	if config.Encoding != nil {
		r = config.Encoding.NewDecoder().Reader(r)
	}

	reader := csv.NewReader(r)
	reader.Comma = config.Delimiter

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("CSV файл пуст")
	}

	var columns []string
	var dataStart int

	if config.HasHeader {
		columns = records[0]
		dataStart = 1
	} else {
		columns = make([]string, len(records[0]))
		for i := range columns {
			columns[i] = fmt.Sprintf("col_%d", i)
		}
	}

	frame := NewFrame(columns)

	for i := dataStart; i < len(records); i++ {
		row := make([]interface{}, len(records[i]))
		for j, val := range records[i] {
			row[j] = InferType(val)
		}
		if err := frame.AddRow(row); err != nil {
			return nil, fmt.Errorf("строка %d: %w", i+1, err)
		}
	}

	return frame, nil
}

// WriteSnappyCSV записывает фрейм в CSV, сжатый snappy
func WriteSnappyCSV(w io.Writer, frame *Frame) error {
	sw := snappy.NewBufferedWriter(w)
	if err := WriteCSV(sw, frame); err != nil {
		sw.Close()
		return err
	}
	return sw.Close()
}

// WriteCSV записывает фрейм в CSV с заголовком
func WriteCSV(w io.Writer, frame *Frame) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(frame.columns); err != nil {
		return fmt.Errorf("не удалось записать заголовок: %w", err)
	}

	for _, row := range frame.rows {
		record := make([]string, len(row))
		for i, val := range row {
			record[i] = FormatValue(val)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("не удалось записать строку: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// missingValues - текстовые обозначения пропусков, которые читаются как nil
var missingValues = map[string]bool{
	"NaN": true, "nan": true, "-NaN": true, "-nan": true,
	"NA": true, "N/A": true, "n/a": true, "#N/A": true, "<NA>": true,
	"NULL": true, "null": true, "None": true,
}

// InferType определяет тип значения ячейки: int, float64, bool, string или nil.
// Пустые ячейки и обозначения пропусков (NaN, NA, null ...) дают nil.
func InferType(value string) interface{} {
	value = strings.TrimSpace(value)

	if value == "" || missingValues[value] {
		return nil
	}

	if intVal, err := strconv.Atoi(value); err == nil {
		return intVal
	}

	if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
		if math.IsNaN(floatVal) {
			return nil
		}
		return floatVal
	}

	// только true/false: T и F остаются строками
	switch {
	case strings.EqualFold(value, "true"):
		return true
	case strings.EqualFold(value, "false"):
		return false
	}

	return value
}

// FormatValue возвращает строковое представление ячейки (nil -> "")
func FormatValue(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
