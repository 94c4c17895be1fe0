// Package tui implements the interactive terminal UI of ezshop.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"ezshop/internal/i18n"
	"ezshop/internal/service"
	"ezshop/internal/settings"
)

type screen int

const (
	screenHome screen = iota
	screenList
	screenSettings
)

// form identifies what the open input form edits.
type form int

const (
	formNone form = iota
	formAddList
	formRenameList
	formAddItem
	formEditItem
)

const (
	fieldName = iota
	fieldQuantity
	fieldUnit
)

// Model is the Bubble Tea model. Persistence calls run synchronously inside
// Update; failures are logged and shown while the in-memory state is kept.
type Model struct {
	ctx   context.Context
	svc   service.Service
	log   *zap.Logger
	keys  keyMap
	newID func() string

	settings settings.Settings
	styles   styles

	screen screen
	lists  []service.List
	cursor int

	current    service.List
	items      []service.Item
	itemCursor int

	form   form
	fields []textinput.Model
	focus  int

	status   string
	quitting bool
}

// New loads settings and lists from svc and returns the model on the home
// screen.
func New(ctx context.Context, svc service.Service, log *zap.Logger) (Model, error) {
	if log == nil {
		log = zap.NewNop()
	}
	st, err := svc.LoadSettings(ctx)
	if err != nil {
		return Model{}, fmt.Errorf("load settings: %w", err)
	}
	lists, err := svc.ListLists(ctx)
	if err != nil {
		return Model{}, fmt.Errorf("load lists: %w", err)
	}
	m := Model{
		ctx:      ctx,
		svc:      svc,
		log:      log,
		keys:     defaultKeys(),
		newID:    uuid.NewString,
		settings: st,
		styles:   newStyles(st.Theme),
		lists:    lists,
	}
	return m, nil
}

// Run starts the UI on the terminal and blocks until the user quits.
func Run(ctx context.Context, svc service.Service, log *zap.Logger, opts ...tea.ProgramOption) error {
	m, err := New(ctx, svc, log)
	if err != nil {
		return err
	}
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	_, err = tea.NewProgram(m, opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.form != formNone {
		return m.updateForm(keyMsg)
	}
	if keyMsg.String() == "ctrl+c" || (key.Matches(keyMsg, m.keys.Quit) && m.screen == screenHome) {
		m.quitting = true
		return m, tea.Quit
	}
	m.status = ""
	switch m.screen {
	case screenList:
		return m.updateList(keyMsg)
	case screenSettings:
		return m.updateSettings(keyMsg)
	default:
		return m.updateHome(keyMsg)
	}
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = clampUp(m.cursor)
	case key.Matches(msg, m.keys.Down):
		m.cursor = clampDown(m.cursor, len(m.lists))
	case key.Matches(msg, m.keys.Open):
		if len(m.lists) > 0 {
			m.openList(m.lists[m.cursor].ID)
		}
	case key.Matches(msg, m.keys.Add):
		return m.openForm(formAddList, "")
	case key.Matches(msg, m.keys.Edit):
		if len(m.lists) > 0 {
			return m.openForm(formRenameList, m.lists[m.cursor].Name)
		}
	case key.Matches(msg, m.keys.Delete):
		if len(m.lists) > 0 {
			m.deleteList(m.cursor)
		}
	case key.Matches(msg, m.keys.Settings):
		m.screen = screenSettings
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
		m.goHome()
	case key.Matches(msg, m.keys.Up):
		m.itemCursor = clampUp(m.itemCursor)
	case key.Matches(msg, m.keys.Down):
		m.itemCursor = clampDown(m.itemCursor, len(m.items))
	case key.Matches(msg, m.keys.Toggle):
		if len(m.items) > 0 {
			m.items[m.itemCursor].Purchased = !m.items[m.itemCursor].Purchased
			m.saveItems()
		}
	case key.Matches(msg, m.keys.Add):
		return m.openForm(formAddItem, "")
	case key.Matches(msg, m.keys.Edit):
		if len(m.items) > 0 {
			it := m.items[m.itemCursor]
			return m.openForm(formEditItem, it.Name, it.Quantity, it.Unit)
		}
	case key.Matches(msg, m.keys.Delete):
		if len(m.items) > 0 {
			m.items = append(m.items[:m.itemCursor:m.itemCursor], m.items[m.itemCursor+1:]...)
			if m.itemCursor >= len(m.items) && m.itemCursor > 0 {
				m.itemCursor--
			}
			m.saveItems()
		}
	}
	return m, nil
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
		m.screen = screenHome
	case key.Matches(msg, m.keys.Theme):
		m.settings.Theme = m.settings.Theme.Toggle()
		m.styles = newStyles(m.settings.Theme)
		m.saveSettings()
	case key.Matches(msg, m.keys.Language):
		m.settings.Language = nextLanguage(m.settings.Language)
		m.saveSettings()
	}
	return m, nil
}

// openList switches to the list screen for listID.
func (m *Model) openList(listID string) {
	list, err := m.svc.GetList(m.ctx, listID)
	if err != nil {
		m.fail("open list", err)
		return
	}
	items, err := m.svc.ListItems(m.ctx, listID)
	if err != nil {
		m.fail("load items", err)
		return
	}
	m.current = list
	m.items = items
	m.itemCursor = 0
	m.screen = screenList
}

func (m *Model) goHome() {
	m.screen = screenHome
	m.refreshLists()
}

func (m *Model) refreshLists() {
	lists, err := m.svc.ListLists(m.ctx)
	if err != nil {
		m.fail("load lists", err)
		return
	}
	m.lists = lists
	m.cursor = clampCursor(m.cursor, len(m.lists))
}

func (m *Model) deleteList(idx int) {
	list := m.lists[idx]
	if err := m.svc.DeleteList(m.ctx, list.ID); err != nil {
		m.fail("delete list", err)
		return
	}
	m.lists = append(m.lists[:idx:idx], m.lists[idx+1:]...)
	m.cursor = clampCursor(m.cursor, len(m.lists))
}

// saveItems writes the in-memory items of the open list.
func (m *Model) saveItems() {
	if err := m.svc.SaveItems(m.ctx, m.current.ID, m.items); err != nil {
		m.fail("save items", err)
		return
	}
	m.current.Items = service.Summarize(m.items)
}

func (m *Model) saveSettings() {
	if err := m.svc.SaveSettings(m.ctx, m.settings); err != nil {
		m.fail("save settings", err)
	}
}

func (m *Model) fail(op string, err error) {
	m.log.Warn("tui: "+op+" failed", zap.Error(err))
	m.status = err.Error()
}

func (m Model) openForm(f form, values ...string) (tea.Model, tea.Cmd) {
	m.form = f
	m.focus = 0
	m.status = ""
	n := 1
	placeholders := []string{i18n.HomeNamePlaceholder}
	if f == formAddItem || f == formEditItem {
		n = 3
		placeholders = []string{i18n.ListNamePlaceholder, i18n.ListQuantityPlaceholder, i18n.ListUnitPlaceholder}
	}
	m.fields = make([]textinput.Model, n)
	for i := range m.fields {
		ti := textinput.New()
		ti.Placeholder = i18n.T(m.settings.Language, placeholders[i])
		ti.CharLimit = 64
		if f == formAddList || f == formRenameList {
			ti.CharLimit = service.MaxListNameLen
		}
		if i < len(values) {
			ti.SetValue(values[i])
		}
		m.fields[i] = ti
	}
	return m, m.fields[0].Focus()
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.closeForm()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		m.submitForm()
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.fields[m.focus].Blur()
		m.focus = (m.focus + 1) % len(m.fields)
		return m, m.fields[m.focus].Focus()
	}
	var cmd tea.Cmd
	m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) closeForm() {
	m.form = formNone
	m.fields = nil
	m.focus = 0
}

// submitForm applies the form. Validation errors keep the form open.
func (m *Model) submitForm() {
	switch m.form {
	case formAddList:
		list, err := m.svc.CreateList(m.ctx, m.value(fieldName))
		if err != nil {
			m.formError("create list", err)
			return
		}
		m.lists = append(m.lists, list)
		m.cursor = len(m.lists) - 1
	case formRenameList:
		name, err := service.ValidateListName(m.value(fieldName))
		if err != nil {
			m.formError("rename list", err)
			return
		}
		if err := m.svc.RenameList(m.ctx, m.lists[m.cursor].ID, name); err != nil {
			m.formError("rename list", err)
			return
		}
		m.lists[m.cursor].Name = name
	case formAddItem:
		it, err := service.ValidateItem(m.formItem())
		if err != nil {
			m.formError("add item", err)
			return
		}
		it.ID = m.newID()
		m.items = append(m.items, it)
		m.itemCursor = len(m.items) - 1
		m.saveItems()
	case formEditItem:
		it := m.formItem()
		it.ID = m.items[m.itemCursor].ID
		it.Purchased = m.items[m.itemCursor].Purchased
		it, err := service.ValidateItem(it)
		if err != nil {
			m.formError("edit item", err)
			return
		}
		m.items[m.itemCursor] = it
		m.saveItems()
	}
	m.closeForm()
}

// formError keeps the form open for user errors and closes it for storage
// errors.
func (m *Model) formError(op string, err error) {
	if service.IsUserError(err) {
		m.status = err.Error()
		return
	}
	m.fail(op, err)
	m.closeForm()
}

func (m *Model) value(field int) string {
	if field >= len(m.fields) {
		return ""
	}
	return m.fields[field].Value()
}

func (m *Model) formItem() service.Item {
	return service.Item{
		Name:     m.value(fieldName),
		Quantity: m.value(fieldQuantity),
		Unit:     m.value(fieldUnit),
	}
}

func nextLanguage(current string) string {
	names := i18n.Names()
	cur := i18n.Match(current).String()
	for i, n := range names {
		if n == cur {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

func clampUp(c int) int {
	if c > 0 {
		return c - 1
	}
	return 0
}

func clampDown(c, n int) int {
	if c < n-1 {
		return c + 1
	}
	return c
}

func clampCursor(c, n int) int {
	if c >= n {
		c = n - 1
	}
	if c < 0 {
		c = 0
	}
	return c
}
