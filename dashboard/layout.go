package dashboard

// ControlKind - вид элемента управления
type ControlKind string

const (
	Dropdown ControlKind = "dropdown"
	Input    ControlKind = "input"
	Range    ControlKind = "range"
)

// Свойства, которые может обновлять функция
const (
	PropFigure   = "figure"
	PropChildren = "children"
	PropDisabled = "disabled"
)

// Option - пункт выпадающего списка
type Option struct {
	Label string      `json:"label"`
	Value interface{} `json:"value"`
}

// Mark - подпись на шкале диапазона
type Mark struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// Control - элемент управления страницы
type Control struct {
	ID          string      `json:"id"`
	Label       string      `json:"label,omitempty"`
	Kind        ControlKind `json:"kind"`
	Options     []Option    `json:"options,omitempty"`
	Value       interface{} `json:"value"`
	Placeholder string      `json:"placeholder,omitempty"`
	InputType   string      `json:"inputType,omitempty"`
	Min         float64     `json:"min,omitempty"`
	Max         float64     `json:"max,omitempty"`
	Step        float64     `json:"step,omitempty"`
	Marks       []Mark      `json:"marks,omitempty"`
	Disabled    bool        `json:"disabled,omitempty"`
}

// Region - область вывода, занятая одной диаграммой или сеткой диаграмм
type Region struct {
	ID       string `json:"id"`
	Property string `json:"property"`
}

// Layout - статическая структура страницы
type Layout struct {
	Title    string    `json:"title"`
	Heading  string    `json:"heading"`
	Controls []Control `json:"controls"`
	Regions  []Region  `json:"regions"`
}

// control ищет элемент управления по ID
func (l *Layout) control(id string) (*Control, bool) {
	for i := range l.Controls {
		if l.Controls[i].ID == id {
			return &l.Controls[i], true
		}
	}
	return nil, false
}

// hasTarget проверяет, что цель обновления существует в разметке
func (l *Layout) hasTarget(t Target) bool {
	for _, r := range l.Regions {
		if r.ID == t.ID && r.Property == t.Property {
			return true
		}
	}
	if _, ok := l.control(t.ID); ok && t.Property == PropDisabled {
		return true
	}
	return false
}
