package dashboard

import (
	"fmt"
	"runtime/debug"

	"github.com/LilVoxy/capstone_dashboards/utils"
)

// Target - свойство элемента, которое заменяет функция обновления
type Target struct {
	ID       string `json:"id"`
	Property string `json:"property"`
}

// UpdateFunc - чистая функция: текущее состояние -> новое значение цели.
// Не должна иметь побочных эффектов и не должна хранить состояние между вызовами.
type UpdateFunc func(State) (interface{}, error)

// Callback связывает функцию с набором отслеживаемых элементов
type Callback struct {
	Output Target
	Inputs []string
	Update UpdateFunc
}

// watches сообщает, отслеживает ли функция элемент id
func (c *Callback) watches(id string) bool {
	for _, in := range c.Inputs {
		if in == id {
			return true
		}
	}
	return false
}

// Update - результат одного вызова функции обновления
type Update struct {
	Target Target      `json:"target"`
	Value  interface{} `json:"value"`
	Error  string      `json:"error,omitempty"`
}

// App - описание одного дашборда: разметка и зарегистрированные функции
type App struct {
	Name      string
	Layout    Layout
	callbacks []Callback
	logger    *utils.Logger
}

// NewApp создает дашборд с заданной разметкой
func NewApp(name string, layout Layout, logger *utils.Logger) *App {
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &App{
		Name:   name,
		Layout: layout,
		logger: logger.With("dashboard", name),
	}
}

// Register регистрирует функцию обновления для цели output,
// которая вызывается при изменении любого из элементов inputs.
func (a *App) Register(output Target, inputs []string, fn UpdateFunc) error {
	if !a.Layout.hasTarget(output) {
		return fmt.Errorf("неизвестная цель обновления %s.%s", output.ID, output.Property)
	}
	if len(inputs) == 0 {
		return fmt.Errorf("функция для %s.%s не отслеживает ни одного элемента", output.ID, output.Property)
	}
	for _, id := range inputs {
		if _, ok := a.Layout.control(id); !ok {
			return fmt.Errorf("неизвестный элемент управления '%s'", id)
		}
	}

	a.callbacks = append(a.callbacks, Callback{Output: output, Inputs: inputs, Update: fn})
	return nil
}

// MustRegister - Register, паникующий при ошибке разметки
func (a *App) MustRegister(output Target, inputs []string, fn UpdateFunc) {
	if err := a.Register(output, inputs, fn); err != nil {
		panic(err)
	}
}

// Callbacks возвращает зарегистрированные функции
func (a *App) Callbacks() []Callback {
	out := make([]Callback, len(a.callbacks))
	copy(out, a.callbacks)
	return out
}

// InitialState возвращает состояние со значениями элементов по умолчанию
func (a *App) InitialState() State {
	state := make(State, len(a.Layout.Controls))
	for _, c := range a.Layout.Controls {
		state[c.ID] = c.Value
	}
	return state
}

// Apply возвращает новое состояние с измененным значением элемента
func (a *App) Apply(state State, id string, value interface{}) (State, error) {
	if _, ok := a.Layout.control(id); !ok {
		return state, fmt.Errorf("неизвестный элемент управления '%s'", id)
	}
	return state.With(id, value), nil
}

// Dispatch вызывает по порядку регистрации все функции, отслеживающие элемент changed
func (a *App) Dispatch(state State, changed string) []Update {
	updates := make([]Update, 0)
	for i := range a.callbacks {
		if a.callbacks[i].watches(changed) {
			updates = append(updates, a.invoke(&a.callbacks[i], state))
		}
	}
	return updates
}

// DispatchAll вызывает все функции (первичная отрисовка страницы)
func (a *App) DispatchAll(state State) []Update {
	updates := make([]Update, 0, len(a.callbacks))
	for i := range a.callbacks {
		updates = append(updates, a.invoke(&a.callbacks[i], state))
	}
	return updates
}

// invoke вызывает функцию на копии состояния. Ошибка или паника затрагивает
// только ее собственную цель.
func (a *App) invoke(cb *Callback, state State) (update Update) {
	update.Target = cb.Output

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("❌ Паника в функции обновления %s.%s: %v\n%s", cb.Output.ID, cb.Output.Property, r, debug.Stack())
			update.Value = nil
			update.Error = fmt.Sprintf("внутренняя ошибка: %v", r)
		}
	}()

	value, err := cb.Update(state.Clone())
	if err != nil {
		a.logger.Warn("⚠️ Ошибка обновления %s.%s: %v", cb.Output.ID, cb.Output.Property, err)
		update.Error = err.Error()
		return update
	}

	update.Value = value
	return update
}
