package airline

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/LilVoxy/capstone_dashboards/dashboard"
	"github.com/LilVoxy/capstone_dashboards/dataset"
)

// sampleFrame: по одной строке 2019 года на каждый месяц (ArrDelay = 10, 20, ... 120)
// и две строки 2010 года.
func sampleFrame(t *testing.T) *dataset.Frame {
	t.Helper()

	var b strings.Builder
	b.WriteString("Year,Month,ArrDelay,DestState,Flights\n")
	for m := 12; m >= 1; m-- {
		state := "CA"
		if m%2 == 0 {
			state = "NY"
		}
		fmt.Fprintf(&b, "2019,%d,%d,%s,1\n", m, m*10, state)
	}
	b.WriteString("2010,1,5,TX,2\n2010,1,,TX,3\n")

	frame, err := dataset.ReadCSVFrom(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("ReadCSVFrom: %v", err)
	}
	return frame
}

func TestDelayByMonth(t *testing.T) {
	fig, err := DelayByMonth(sampleFrame(t), dashboard.State{ControlYear: "2019"}, nil)
	if err != nil {
		t.Fatalf("DelayByMonth: %v", err)
	}

	points := fig.Series[0].Points
	if len(points) != 12 {
		t.Fatalf("points: want=12 got=%d", len(points))
	}
	for i, p := range points {
		if p.X != i+1 || p.Y != float64((i+1)*10) {
			t.Fatalf("point %d: want=(%d, %d) got=(%v, %v)", i, i+1, (i+1)*10, p.X, p.Y)
		}
	}
	if fig.Title != "Month vs Average Flight Delay Time" || fig.X != "Month" || fig.Y != "ArrDelay" {
		t.Fatalf("figure: got %+v", fig)
	}
}

func TestFlightsByState(t *testing.T) {
	fig, err := FlightsByState(sampleFrame(t), dashboard.State{ControlYear: 2010.0}, nil)
	if err != nil {
		t.Fatalf("FlightsByState: %v", err)
	}
	points := fig.Series[0].Points
	if len(points) != 1 || points[0].X != "TX" || points[0].Y != 5 {
		t.Fatalf("points: got %v", points)
	}

	fig, err = FlightsByState(sampleFrame(t), dashboard.State{ControlYear: "2019"}, nil)
	if err != nil {
		t.Fatalf("FlightsByState: %v", err)
	}
	points = fig.Series[0].Points
	if len(points) != 2 || points[0].X != "CA" || points[0].Y != 6 || points[1].X != "NY" || points[1].Y != 6 {
		t.Fatalf("2019 points: got %v", points)
	}
}

func TestMalformedYear(t *testing.T) {
	app := New(sampleFrame(t), nil)

	state, err := app.Apply(app.InitialState(), ControlYear, "20x9")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	updates := app.Dispatch(state, ControlYear)
	if len(updates) != 2 {
		t.Fatalf("updates: want=2 got=%d", len(updates))
	}
	for _, u := range updates {
		if u.Error == "" || u.Value != nil {
			t.Fatalf("%s: expected error, got %+v", u.Target.ID, u)
		}
	}
}

func TestEmptyYear(t *testing.T) {
	fig, err := DelayByMonth(sampleFrame(t), dashboard.State{ControlYear: "1999"}, nil)
	if err != nil {
		t.Fatalf("DelayByMonth: %v", err)
	}
	if !fig.Empty() {
		t.Fatalf("expected empty chart, got %v", fig.Series)
	}
}

func TestInitialRenderIsIdempotent(t *testing.T) {
	app := New(sampleFrame(t), nil)

	first := app.DispatchAll(app.InitialState())
	second := app.DispatchAll(app.InitialState())
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("initial render differs between calls")
	}
	for _, u := range first {
		if u.Error != "" {
			t.Fatalf("%s: unexpected error %s", u.Target.ID, u.Error)
		}
	}
}
