// Package toggle maps labelled on/off switches to the scene objects they
// control and keeps a scene group in step with the switches that are on.
package toggle

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrUnknownToggle is returned for an ID the panel never issued.
var ErrUnknownToggle = errors.New("unknown toggle")

// ID identifies a toggle within its Panel.
type ID int

// Item is one labelled switch.
type Item[T any] struct {
	ID      ID
	Caption string
	Value   T
	Checked bool
}

// Panel is an ordered list of toggles, each bound to a value. Order is
// significant: Selected reports values in the order they were added.
type Panel[T any] struct {
	items    []Item[T]
	onChange func()
}

func NewPanel[T any]() *Panel[T] {
	return &Panel[T]{}
}

// Add appends an unchecked toggle and returns its ID.
func (p *Panel[T]) Add(caption string, value T) ID {
	id := ID(len(p.items))
	p.items = append(p.items, Item[T]{ID: id, Caption: caption, Value: value})
	return id
}

// OnChange registers fn to run after any toggle changes state.
func (p *Panel[T]) OnChange(fn func()) {
	p.onChange = fn
}

func (p *Panel[T]) item(id ID) (*Item[T], error) {
	if id < 0 || int(id) >= len(p.items) {
		return nil, fmt.Errorf("toggle: %w: %d", ErrUnknownToggle, id)
	}
	return &p.items[id], nil
}

// Set checks or unchecks a toggle. The change callback runs even when the
// state is unchanged, mirroring a click on an already-set box.
func (p *Panel[T]) Set(id ID, checked bool) error {
	it, err := p.item(id)
	if err != nil {
		return err
	}
	it.Checked = checked
	slog.Debug("toggle set", "caption", it.Caption, "checked", checked)
	if p.onChange != nil {
		p.onChange()
	}
	return nil
}

// Toggle flips a toggle and returns its new state.
func (p *Panel[T]) Toggle(id ID) (bool, error) {
	it, err := p.item(id)
	if err != nil {
		return false, err
	}
	checked := !it.Checked
	return checked, p.Set(id, checked)
}

func (p *Panel[T]) Checked(id ID) (bool, error) {
	it, err := p.item(id)
	if err != nil {
		return false, err
	}
	return it.Checked, nil
}

// Items returns a snapshot of every toggle in panel order.
func (p *Panel[T]) Items() []Item[T] {
	return append([]Item[T](nil), p.items...)
}

func (p *Panel[T]) Len() int {
	return len(p.items)
}

// Selected returns the values of the checked toggles in panel order.
func (p *Panel[T]) Selected() []T {
	var out []T
	for _, it := range p.items {
		if it.Checked {
			out = append(out, it.Value)
		}
	}
	return out
}
