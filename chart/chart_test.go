package chart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/LilVoxy/capstone_dashboards/dataset"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func mustFrame(t *testing.T, data string) *dataset.Frame {
	t.Helper()
	frame, err := dataset.ReadCSVFrom(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadCSVFrom: %v", err)
	}
	return frame
}

func TestLineFromAggregate(t *testing.T) {
	frame := mustFrame(t, "Month,ArrDelay\n2,20\n1,10\n1,30\n")
	agg, err := frame.Aggregate("Month", "ArrDelay", dataset.Mean)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	fig := Line(agg, "Month vs Average Flight Delay Time")
	if fig.Kind != KindLine || fig.X != "Month" || fig.Y != "ArrDelay" {
		t.Fatalf("bindings: got kind=%s x=%s y=%s", fig.Kind, fig.X, fig.Y)
	}
	points := fig.Series[0].Points
	if len(points) != 2 || points[0].X != 1 || points[0].Y != 20 || points[1].Y != 20 {
		t.Fatalf("points: got %+v", points)
	}
}

func TestPieBindsNamesAndValues(t *testing.T) {
	frame := mustFrame(t, "Vehicle_Type,Advertising_Expenditure\nSports,10\nSports,5\nMediumFamilyCar,1\n")
	agg, err := frame.Aggregate("Vehicle_Type", "Advertising_Expenditure", dataset.Sum)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	fig := Pie(agg, "share")
	if fig.Names != "Vehicle_Type" || fig.Values != "Advertising_Expenditure" {
		t.Fatalf("bindings: got names=%s values=%s", fig.Names, fig.Values)
	}
	if fig.PointCount() != 2 {
		t.Fatalf("slices: want=2 got=%d", fig.PointCount())
	}
}

func TestScatterSeriesPerColor(t *testing.T) {
	frame := mustFrame(t, "payload,class,booster\n500,1,v1.0\n,0,v1.0\n700,0,FT\n900,1,v1.0\n")

	fig, err := Scatter(frame, "payload", "class", "booster", "scatter")
	if err != nil {
		t.Fatalf("Scatter: %v", err)
	}
	if len(fig.Series) != 2 {
		t.Fatalf("series: want=2 got=%d", len(fig.Series))
	}
	if fig.Series[0].Name != "v1.0" || len(fig.Series[0].Points) != 2 {
		t.Fatalf("first series: got %+v", fig.Series[0])
	}
	if fig.Series[1].Name != "FT" {
		t.Fatalf("second series: want=FT got=%s", fig.Series[1].Name)
	}

	if _, err := Scatter(frame, "missing", "class", "booster", "scatter"); err == nil {
		t.Fatalf("expected error for unknown column")
	}
}

func TestRenderLinePNG(t *testing.T) {
	fig := &Figure{
		Kind:  KindLine,
		Title: "line",
		X:     "Month",
		Y:     "ArrDelay",
		Series: []Series{{Points: []Point{
			{X: 1, Y: 10}, {X: 2, Y: 20}, {X: 3, Y: 15},
		}}},
	}

	img, err := NewRenderer(0, 0).PNG(fig)
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}
	if !bytes.HasPrefix(img, pngMagic) {
		t.Fatalf("output is not a PNG")
	}
}

func TestRenderEmptyFigureIsPlaceholder(t *testing.T) {
	for _, kind := range []Kind{KindLine, KindBar, KindPie, KindScatter} {
		fig := &Figure{Kind: kind, Title: "empty", Series: []Series{{Points: []Point{}}}}
		img, err := NewRenderer(100, 80).PNG(fig)
		if err != nil {
			t.Fatalf("%s: PNG: %v", kind, err)
		}
		if !bytes.HasPrefix(img, pngMagic) {
			t.Fatalf("%s: output is not a PNG", kind)
		}
	}
}

func TestRenderPieWithZeroTotal(t *testing.T) {
	fig := &Figure{Kind: KindPie, Title: "zero", Series: []Series{{Points: []Point{{X: "A", Y: 0}}}}}
	if _, err := NewRenderer(100, 80).PNG(fig); err != nil {
		t.Fatalf("PNG: %v", err)
	}
}

func TestPayloadAttachesImages(t *testing.T) {
	fig := &Figure{Kind: KindBar, Title: "bar", Series: []Series{{Points: []Point{}}}}
	renderer := NewRenderer(100, 80)

	payload, err := renderer.Payload(Grid{{fig, fig}})
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}
	rows, ok := payload.([][]*RenderedFigure)
	if !ok || len(rows) != 1 || len(rows[0]) != 2 {
		t.Fatalf("payload shape: got %T", payload)
	}
	if !strings.HasPrefix(rows[0][0].Image, "data:image/png;base64,") {
		t.Fatalf("image: got prefix %.30s", rows[0][0].Image)
	}

	passthrough, err := renderer.Payload(true)
	if err != nil || passthrough != true {
		t.Fatalf("passthrough: got %v err=%v", passthrough, err)
	}

	empty, err := renderer.Payload(Grid(nil))
	if err != nil || empty != nil {
		t.Fatalf("empty grid: got %v err=%v", empty, err)
	}
}

func TestWriteWorkbook(t *testing.T) {
	figs := []*Figure{
		{Kind: KindBar, Title: "Flights to Destination State", X: "DestState", Y: "Flights",
			Series: []Series{{Name: "Flights", Points: []Point{{X: "CA", Y: 12}, {X: "TX", Y: 7}}}}},
		{Kind: KindPie, Title: "Flights to Destination State", Names: "Launch Site", Values: "class",
			Series: []Series{{Points: []Point{{X: "CCAFS", Y: 3}}}}},
	}

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, figs); err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}

	book, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) != 2 {
		t.Fatalf("sheets: want=2 got=%v", sheets)
	}

	value, err := book.GetCellValue(sheets[0], "B2")
	if err != nil || value != "CA" {
		t.Fatalf("B2: want=CA got=%q err=%v", value, err)
	}
	header, _ := book.GetCellValue(sheets[1], "B1")
	if header != "Launch Site" {
		t.Fatalf("pie header: want=Launch Site got=%q", header)
	}
}
