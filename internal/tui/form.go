package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// field — поле ввода с подписью
type field struct {
	label string
	input textinput.Model
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 32
	_ = ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func newPasswordInput(placeholder string) textinput.Model {
	ti := newInput(placeholder, 128)
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	return ti
}

// form переключает фокус между полями по tab / shift+tab
type form struct {
	fields []field
	focus  int
}

func newForm(fields ...field) *form {
	f := &form{fields: fields}
	f.setFocus(0)
	return f
}

func (f *form) setFocus(i int) {
	if len(f.fields) == 0 {
		return
	}
	i = (i + len(f.fields)) % len(f.fields)
	for j := range f.fields {
		f.fields[j].input.Blur()
	}
	f.focus = i
	_ = f.fields[i].input.Focus()
}

func (f *form) next() { f.setFocus(f.focus + 1) }
func (f *form) prev() { f.setFocus(f.focus - 1) }

// handleNav обрабатывает клавиши навигации; true — клавиша поглощена
func (f *form) handleNav(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "tab", "down":
		f.next()
		return true
	case "shift+tab", "up":
		f.prev()
		return true
	}
	return false
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f *form) value(i int) string {
	return f.fields[i].input.Value()
}

func (f *form) trimmed(i int) string {
	return strings.TrimSpace(f.value(i))
}

func (f *form) set(i int, v string) {
	f.fields[i].input.SetValue(v)
}

func (f *form) reset() {
	for i := range f.fields {
		f.fields[i].input.Reset()
	}
	f.setFocus(0)
}

func (f *form) view() string {
	var b strings.Builder
	for i, fl := range f.fields {
		label := subtleStyle.Render(fl.label)
		if i == f.focus {
			label = selectedStyle.Render(fl.label)
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(fl.input.View())
		b.WriteString("\n")
	}
	return b.String()
}
