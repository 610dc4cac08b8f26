package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Button classes recognized when rendering actions.
const (
	ClassDefault = "default"
	ClassPrimary = "primary"
)

// DismissText labels the action added to dialogs created without actions.
const DismissText = "Dismiss"

// spinner is drawn in front of the text of a waiting dialog.
const spinner = "⠋"

// Action is a button of a dialog.
type Action struct {
	Text    string
	Class   string
	Handler func(d *Dialog)
}

// DialogAttrs configures a dialog.
type DialogAttrs struct {
	Text    string
	Width   int  // Body width in columns, 0 fits the content
	Waiting bool // Shows a spinner next to the text
	Actions []Action
}

// Dialog is a modal panel with a message and a row of action buttons.
// A dialog built without actions gets a single Dismiss button that closes it.
type Dialog struct {
	panel
	width    int
	waiting  bool
	actions  []Action
	selected int
}

var _ Overlay = (*Dialog)(nil)

// NewDialog builds a hidden dialog from attrs.
func NewDialog(attrs DialogAttrs) *Dialog {
	d := &Dialog{width: max(0, attrs.Width), waiting: attrs.Waiting}
	d.content = attrs.Text
	d.actions = append(d.actions, attrs.Actions...)
	if len(d.actions) == 0 {
		d.actions = []Action{{Text: DismissText, Class: ClassDefault, Handler: func(d *Dialog) { d.Close() }}}
	}
	return d
}

// Confirm shows a Cancel/Ok dialog. Ok runs onOK and both buttons close the dialog.
func Confirm(text string, onOK func()) *Dialog {
	d := NewDialog(DialogAttrs{
		Text: text,
		Actions: []Action{
			{Text: "Cancel", Class: ClassDefault, Handler: func(d *Dialog) { d.Close() }},
			{Text: "Ok", Class: ClassPrimary, Handler: func(d *Dialog) {
				if onOK != nil {
					onOK()
				}
				d.Close()
			}},
		},
	})
	d.Show()
	return d
}

// Actions returns the dialog buttons in display order.
func (d *Dialog) Actions() []Action {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]Action(nil), d.actions...)
}

// Waiting reports whether the spinner is shown.
func (d *Dialog) Waiting() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.waiting
}

// SetWaiting toggles the spinner.
func (d *Dialog) SetWaiting(waiting bool) {
	d.mu.Lock()
	d.waiting = waiting
	d.mu.Unlock()
}

// Selected returns the index of the focused button.
func (d *Dialog) Selected() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.selected
}

// Move shifts the focus by delta buttons, wrapping at both ends.
func (d *Dialog) Move(delta int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := len(d.actions)
	d.selected = ((d.selected+delta)%n + n) % n
}

// Trigger runs the handler of the i-th action. It returns false when i is out of range.
func (d *Dialog) Trigger(i int) bool {
	d.mu.RLock()
	if i < 0 || i >= len(d.actions) {
		d.mu.RUnlock()
		return false
	}
	action := d.actions[i]
	d.mu.RUnlock()

	// Handlers call back into the dialog
	if action.Handler != nil {
		action.Handler(d)
	}
	return true
}

// TriggerSelected runs the focused action.
func (d *Dialog) TriggerSelected() bool {
	return d.Trigger(d.Selected())
}

// Render draws the dialog, or returns "" while hidden.
func (d *Dialog) Render() string {
	visible, content := d.snapshot()
	if !visible {
		return ""
	}
	actions := d.Actions()
	selected := d.Selected()

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	bodyStyle := lipgloss.NewStyle().Foreground(ColorText)
	if d.width > 0 {
		bodyStyle = bodyStyle.Width(d.width)
	}

	buttonBase := lipgloss.NewStyle().Padding(0, 2).MarginRight(1)
	focused := buttonBase.Background(ColorPrimary).Foreground(ColorOnFill).Bold(true)
	primary := buttonBase.Foreground(ColorPrimary).Bold(true)
	plain := buttonBase.Foreground(ColorMuted)

	var b strings.Builder
	if d.Waiting() {
		b.WriteString(spinner + " ")
	}
	b.WriteString(bodyStyle.Render(content))
	b.WriteString("\n\n")

	buttons := make([]string, 0, len(actions))
	for i, a := range actions {
		switch {
		case i == selected:
			buttons = append(buttons, focused.Render(a.Text))
		case a.Class == ClassPrimary:
			buttons = append(buttons, primary.Render(a.Text))
		default:
			buttons = append(buttons, plain.Render(a.Text))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, buttons...))

	return boxStyle.Render(b.String())
}
