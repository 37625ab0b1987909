package dataset

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

const salesCSV = `Year,Month,Recession,Automobile_Sales,Vehicle_Type
1980,Jan,1,100,Sports
1980,Feb,1,200,Supperminicar
1981,Jan,0,300,Sports
1981,Feb,0,,Sports
,Mar,0,50,Sports
`

func mustFrame(t *testing.T, data string) *Frame {
	t.Helper()
	frame, err := ReadCSVFrom(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadCSVFrom: %v", err)
	}
	return frame
}

func TestReadCSVInfersTypes(t *testing.T) {
	frame := mustFrame(t, salesCSV)

	rows, cols := frame.Shape()
	if rows != 5 || cols != 5 {
		t.Fatalf("shape: want=(5, 5) got=(%d, %d)", rows, cols)
	}

	row := frame.Row(0)
	if _, ok := row[0].(int); !ok {
		t.Fatalf("Year: want int got %T", row[0])
	}
	if row[1] != "Jan" {
		t.Fatalf("Month: want=Jan got=%v", row[1])
	}
	if frame.Row(3)[3] != nil {
		t.Fatalf("empty cell: want nil got %v", frame.Row(3)[3])
	}
}

func TestInferType(t *testing.T) {
	cases := map[string]interface{}{
		"42":    42,
		"4.5":   4.5,
		"true":  true,
		"FALSE": false,
		"T":     "T",
		"f":     "f",
		"CCAFS": "CCAFS",
		"  ":    nil,
		"NaN":   nil,
		"nan":   nil,
		"N/A":   nil,
		"null":  nil,
	}
	for in, want := range cases {
		if got := InferType(in); got != want {
			t.Fatalf("InferType(%q): want=%v got=%v", in, want, got)
		}
	}
}

func TestReadCSVLatin1(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String("Year,DestState,City\n2019,PR,San Juán\n")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	frame, err := ReadCSVFrom(strings.NewReader(encoded), WithEncoding(charmap.ISO8859_1))
	if err != nil {
		t.Fatalf("ReadCSVFrom: %v", err)
	}
	if got := frame.Row(0)[2]; got != "San Juán" {
		t.Fatalf("decoded city: want=San Juán got=%v", got)
	}
}

func TestReadCSVSnappyFile(t *testing.T) {
	frame := mustFrame(t, salesCSV)

	var buf bytes.Buffer
	if err := WriteSnappyCSV(&buf, frame); err != nil {
		t.Fatalf("WriteSnappyCSV: %v", err)
	}

	path := filepath.Join(t.TempDir(), "sales.csv"+SnappySuffix)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	loaded, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if loaded.Len() != frame.Len() {
		t.Fatalf("rows: want=%d got=%d", frame.Len(), loaded.Len())
	}
	if loaded.Row(2)[3] != 300 {
		t.Fatalf("sales: want=300 got=%v", loaded.Row(2)[3])
	}
}

func TestReadCSVEmpty(t *testing.T) {
	if _, err := ReadCSVFrom(strings.NewReader("")); err == nil {
		t.Fatalf("expected error for empty CSV")
	}
}

func TestGroupByKeepsEveryRow(t *testing.T) {
	frame := mustFrame(t, salesCSV)

	for _, by := range []string{"Year", "Month", "Vehicle_Type", "Recession"} {
		agg, err := frame.Aggregate(by, "Automobile_Sales", Mean)
		if err != nil {
			t.Fatalf("Aggregate(%s): %v", by, err)
		}
		if agg.RowCount() != frame.Len() {
			t.Fatalf("Aggregate(%s) row count: want=%d got=%d", by, frame.Len(), agg.RowCount())
		}
	}
}

func TestGroupByKeepsMissingKeys(t *testing.T) {
	frame := mustFrame(t, "k,v\nNaN,1\nNaN,2\n1,3\nNA,4\n")

	agg, err := frame.Aggregate("k", "v", Count)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if agg.RowCount() != frame.Len() {
		t.Fatalf("row count: want=%d got=%d", frame.Len(), agg.RowCount())
	}
	if len(agg.Rows) != 2 || agg.Rows[1].Key != nil || agg.Rows[1].Rows != 3 {
		t.Fatalf("groups: got %+v", agg.Rows)
	}

	// NaN, попавший во фрейм не из CSV, тоже собирается в одну группу
	raw := NewFrame([]string{"k"})
	for i := 0; i < 3; i++ {
		if err := raw.AddRow([]interface{}{math.NaN()}); err != nil {
			t.Fatalf("AddRow: %v", err)
		}
	}
	groups, err := raw.GroupBy("k")
	if err != nil {
		t.Fatalf("GroupBy: %v", err)
	}
	if len(groups) != 1 || groups[0].Frame.Len() != 3 {
		t.Fatalf("NaN groups: got %d", len(groups))
	}

	values, err := raw.Unique("k")
	if err != nil || len(values) != 0 {
		t.Fatalf("unique NaN: got %v err=%v", values, err)
	}
}

func TestGroupBySortsKeysNilLast(t *testing.T) {
	frame := mustFrame(t, salesCSV)

	groups, err := frame.GroupBy("Year")
	if err != nil {
		t.Fatalf("GroupBy: %v", err)
	}
	if len(groups) != 3 {
		t.Fatalf("groups: want=3 got=%d", len(groups))
	}
	if groups[0].Key != 1980 || groups[1].Key != 1981 || groups[2].Key != nil {
		t.Fatalf("keys: got %v %v %v", groups[0].Key, groups[1].Key, groups[2].Key)
	}
}

func TestAggregateReducers(t *testing.T) {
	frame := mustFrame(t, salesCSV)

	mean, err := frame.Aggregate("Year", "Automobile_Sales", Mean)
	if err != nil {
		t.Fatalf("mean: %v", err)
	}
	// 1981: 300 и пустое значение -> среднее 300
	if mean.Rows[1].Value != 300 || mean.Rows[1].Rows != 2 {
		t.Fatalf("mean 1981: got value=%v rows=%d", mean.Rows[1].Value, mean.Rows[1].Rows)
	}
	if mean.Rows[0].Value != 150 {
		t.Fatalf("mean 1980: want=150 got=%v", mean.Rows[0].Value)
	}

	sum, err := frame.Aggregate("Vehicle_Type", "Automobile_Sales", Sum)
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if sum.Rows[0].Key != "Sports" || sum.Rows[0].Value != 450 {
		t.Fatalf("sum Sports: got key=%v value=%v", sum.Rows[0].Key, sum.Rows[0].Value)
	}

	count, err := frame.Aggregate("Year", "Automobile_Sales", Count)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count.Rows[1].Value != 1 {
		t.Fatalf("count 1981: want=1 got=%v", count.Rows[1].Value)
	}
}

func TestAggregateMeanWithoutNumbersIsInvalid(t *testing.T) {
	frame := mustFrame(t, "k,v\na,\na,\nb,1\n")

	agg, err := frame.Aggregate("k", "v", Mean)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if agg.Rows[0].Valid {
		t.Fatalf("group a: want invalid mean")
	}
	if !agg.Rows[1].Valid || agg.Rows[1].Value != 1 {
		t.Fatalf("group b: got %+v", agg.Rows[1])
	}
}

func TestAggregateUnknownColumn(t *testing.T) {
	frame := mustFrame(t, salesCSV)

	if _, err := frame.Aggregate("Nope", "Automobile_Sales", Mean); err == nil {
		t.Fatalf("expected error for unknown group column")
	}
	if _, err := frame.Aggregate("Year", "Nope", Mean); err == nil {
		t.Fatalf("expected error for unknown measure column")
	}
}

func TestAggregateEmptyFrame(t *testing.T) {
	frame := mustFrame(t, salesCSV)

	empty, err := frame.Equal("Year", 1999)
	if err != nil {
		t.Fatalf("Equal: %v", err)
	}
	agg, err := empty.Aggregate("Month", "Automobile_Sales", Mean)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if agg.Len() != 0 {
		t.Fatalf("groups: want=0 got=%d", agg.Len())
	}
}

func TestEqualMatchesNumericValues(t *testing.T) {
	frame := mustFrame(t, salesCSV)

	filtered, err := frame.Equal("Year", 1980.0)
	if err != nil {
		t.Fatalf("Equal: %v", err)
	}
	if filtered.Len() != 2 {
		t.Fatalf("rows: want=2 got=%d", filtered.Len())
	}
}

func TestBetweenIsInclusive(t *testing.T) {
	frame := mustFrame(t, salesCSV)

	filtered, err := frame.Between("Automobile_Sales", 100, 300)
	if err != nil {
		t.Fatalf("Between: %v", err)
	}
	if filtered.Len() != 3 {
		t.Fatalf("rows: want=3 got=%d", filtered.Len())
	}

	lo, hi, ok, err := frame.Bounds("Automobile_Sales")
	if err != nil || !ok {
		t.Fatalf("Bounds: ok=%v err=%v", ok, err)
	}
	all, _ := frame.Between("Automobile_Sales", lo, hi)
	if all.Len() != 4 {
		t.Fatalf("full bounds: want=4 non-null rows got=%d", all.Len())
	}
}

func TestUniqueFirstAppearance(t *testing.T) {
	frame := mustFrame(t, salesCSV)

	values, err := frame.Unique("Vehicle_Type")
	if err != nil {
		t.Fatalf("Unique: %v", err)
	}
	if len(values) != 2 || values[0] != "Sports" || values[1] != "Supperminicar" {
		t.Fatalf("unique: got %v", values)
	}
}

func TestReorderByMonth(t *testing.T) {
	frame := mustFrame(t, "Month,Sales\nMar,3\nJan,1\nFeb,2\nTotal,9\n")

	agg, err := frame.Aggregate("Month", "Sales", Sum)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	ordered := agg.Reorder(MonthRank)

	want := []interface{}{"Jan", "Feb", "Mar", "Total"}
	for i, w := range want {
		if ordered.Rows[i].Key != w {
			t.Fatalf("position %d: want=%v got=%v", i, w, ordered.Rows[i].Key)
		}
	}
}

func TestCreateTableSQL(t *testing.T) {
	frame := mustFrame(t, "Launch Site,class,Payload Mass (kg)\nCCAFS,1,500.5\nVAFB,0,\n")

	stmt, err := CreateTableSQL("spacex_launches", frame)
	if err != nil {
		t.Fatalf("CreateTableSQL: %v", err)
	}
	for _, want := range []string{"`Launch Site` TEXT", "`class` BIGINT", "`Payload Mass (kg)` DOUBLE"} {
		if !strings.Contains(stmt, want) {
			t.Fatalf("statement missing %q:\n%s", want, stmt)
		}
	}

	if _, err := CreateTableSQL("drop table;", frame); err == nil {
		t.Fatalf("expected error for invalid table name")
	}

	insert := InsertSQL("spacex_launches", frame)
	if strings.Count(insert, "?") != 3 {
		t.Fatalf("insert placeholders: got %s", insert)
	}
}
