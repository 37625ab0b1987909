package launches

import (
	"reflect"
	"strings"
	"testing"

	"github.com/LilVoxy/capstone_dashboards/dashboard"
	"github.com/LilVoxy/capstone_dashboards/dataset"
)

const sampleCSV = `Flight Number,Launch Site,class,Payload Mass (kg),Booster Version,Booster Version Category
1,SITE-A,1,500,F9 v1.0  B0003,v1.0
2,SITE-A,1,2500,F9 v1.1,v1.1
3,SITE-A,1,9600,F9 FT B1029.1,FT
4,SITE-B,1,0,F9 v1.0  B0004,v1.0
5,SITE-B,1,1000,F9 v1.1 B1011,v1.1
6,SITE-B,0,5300,F9 FT B1032.1,FT
7,SITE-B,0,,F9 B4 B1039.2,B4
`

func sampleFrame(t *testing.T) *dataset.Frame {
	t.Helper()
	frame, err := dataset.ReadCSVFrom(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ReadCSVFrom: %v", err)
	}
	return frame
}

func pieSlices(t *testing.T, data *dataset.Frame, site interface{}) (map[string]float64, string) {
	t.Helper()
	fig, err := SuccessPie(data, dashboard.State{ControlSite: site}, nil)
	if err != nil {
		t.Fatalf("SuccessPie(%v): %v", site, err)
	}
	slices := make(map[string]float64)
	for _, p := range fig.Series[0].Points {
		slices[p.Label()] = p.Y
	}
	return slices, fig.Title
}

func TestLayoutSites(t *testing.T) {
	layout, err := Layout(sampleFrame(t))
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	options := layout.Controls[0].Options
	want := []dashboard.Option{
		{Label: "All Sites", Value: AllSites},
		{Label: "SITE-A", Value: "SITE-A"},
		{Label: "SITE-B", Value: "SITE-B"},
	}
	if !reflect.DeepEqual(options, want) {
		t.Fatalf("options: want=%v got=%v", want, options)
	}

	slider := layout.Controls[1]
	if slider.Min != 0 || slider.Max != 10000 || slider.Step != 50 || len(slider.Marks) != 5 {
		t.Fatalf("slider: got %+v", slider)
	}
	if !reflect.DeepEqual(slider.Value, []float64{0, 1000}) {
		t.Fatalf("slider value: got %v", slider.Value)
	}
}

func TestPieAllSites(t *testing.T) {
	slices, title := pieSlices(t, sampleFrame(t), AllSites)
	if slices["SITE-A"] != 3 || slices["SITE-B"] != 2 || len(slices) != 2 {
		t.Fatalf("slices: got %v", slices)
	}
	if title != "Total Success Launches by Site" {
		t.Fatalf("title: got %q", title)
	}

	// пустой выбор трактуется как ALL
	unset, _ := pieSlices(t, sampleFrame(t), nil)
	if !reflect.DeepEqual(unset, slices) {
		t.Fatalf("unset site: got %v", unset)
	}
}

func TestPieAllSitesCountsOnlySuccesses(t *testing.T) {
	// Доли ALL - сумма флага class: площадка только с неудачами дает нулевой сектор,
	// а не число своих запусков.
	frame, err := dataset.ReadCSVFrom(strings.NewReader(
		"Launch Site,class\nSITE-A,1\nSITE-A,1\nSITE-A,1\nSITE-B,0\nSITE-B,0\n"))
	if err != nil {
		t.Fatalf("ReadCSVFrom: %v", err)
	}

	slices, _ := pieSlices(t, frame, AllSites)
	if slices["SITE-A"] != 3 || slices["SITE-B"] != 0 || len(slices) != 2 {
		t.Fatalf("slices: want=map[SITE-A:3 SITE-B:0] got=%v", slices)
	}
}

func TestPieSingleSite(t *testing.T) {
	slices, title := pieSlices(t, sampleFrame(t), "SITE-B")
	if slices["0"] != 2 || slices["1"] != 2 || len(slices) != 2 {
		t.Fatalf("slices: got %v", slices)
	}
	if title != "Total Success Launches for Site SITE-B" {
		t.Fatalf("title: got %q", title)
	}
}

func TestScatterDefaultRange(t *testing.T) {
	fig, err := PayloadScatter(sampleFrame(t), dashboard.State{ControlSite: AllSites, ControlPayload: []interface{}{0.0, 1000.0}}, nil)
	if err != nil {
		t.Fatalf("PayloadScatter: %v", err)
	}
	// границы включаются: 500, 0 и 1000
	if n := fig.PointCount(); n != 3 {
		t.Fatalf("points: want=3 got=%d", n)
	}
	if fig.Color != "Booster Version Category" || fig.X != "Payload Mass (kg)" || fig.Y != "class" {
		t.Fatalf("bindings: got %+v", fig)
	}
}

func TestScatterFullBounds(t *testing.T) {
	data := sampleFrame(t)
	lo, hi, ok, err := data.Bounds("Payload Mass (kg)")
	if err != nil || !ok {
		t.Fatalf("Bounds: ok=%v err=%v", ok, err)
	}

	fig, err := PayloadScatter(data, dashboard.State{ControlSite: AllSites, ControlPayload: []float64{lo, hi}}, nil)
	if err != nil {
		t.Fatalf("PayloadScatter: %v", err)
	}
	if n := fig.PointCount(); n != 6 {
		t.Fatalf("points: want=6 (every row with payload) got=%d", n)
	}

	names := make([]string, 0, len(fig.Series))
	for _, s := range fig.Series {
		names = append(names, s.Name)
	}
	if !reflect.DeepEqual(names, []string{"v1.0", "v1.1", "FT"}) {
		t.Fatalf("series: got %v", names)
	}
}

func TestScatterSingleSite(t *testing.T) {
	fig, err := PayloadScatter(sampleFrame(t), dashboard.State{ControlSite: "SITE-A", ControlPayload: []float64{0, 10000}}, nil)
	if err != nil {
		t.Fatalf("PayloadScatter: %v", err)
	}
	if n := fig.PointCount(); n != 3 {
		t.Fatalf("points: want=3 got=%d", n)
	}
	if fig.Title != "Correlation Between Payload and Success for SITE-A" {
		t.Fatalf("title: got %q", fig.Title)
	}
}

func TestScatterRejectsBadRange(t *testing.T) {
	if _, err := PayloadScatter(sampleFrame(t), dashboard.State{ControlPayload: "wide"}, nil); err == nil {
		t.Fatalf("expected error for malformed range")
	}
}

func TestSiteChangeUpdatesBothRegions(t *testing.T) {
	app, err := New(sampleFrame(t), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	state, err := app.Apply(app.InitialState(), ControlSite, "SITE-A")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	updates := app.Dispatch(state, ControlSite)
	if len(updates) != 2 || updates[0].Target.ID != RegionPie || updates[1].Target.ID != RegionScatter {
		t.Fatalf("updates: got %+v", updates)
	}

	updates = app.Dispatch(state, ControlPayload)
	if len(updates) != 1 || updates[0].Target.ID != RegionScatter {
		t.Fatalf("payload change: got %+v", updates)
	}
}
