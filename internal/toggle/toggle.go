// Package toggle keeps a native checkbox and its companion role="checkbox"
// element reporting the same checked state, whichever one the user operates.
package toggle

import (
	"fmt"
	"strings"

	"github.com/mcncl/jsonexplorer/internal/errors"
)

// AriaChecked is the companion's checked-state attribute.
const AriaChecked = "aria-checked"

// Native is the native checkbox control.
type Native interface {
	Checked() bool
	SetChecked(checked bool)
}

// Companion is the decorative control carrying role="checkbox".
type Companion interface {
	Attr(name string) string
	SetAttr(name, value string)
}

// Pair binds a native checkbox to its companion.
type Pair struct {
	Native    Native
	Companion Companion

	isToggleKey func(key string) bool
}

// NewPair binds native and companion. isToggleKey decides which keys operate
// the controls; nil means only the space key.
func NewPair(native Native, companion Companion, isToggleKey func(key string) bool) *Pair {
	if isToggleKey == nil {
		isToggleKey = func(key string) bool { return key == " " }
	}
	return &Pair{Native: native, Companion: companion, isToggleKey: isToggleKey}
}

func setCompanionChecked(c Companion, checked bool) {
	c.SetAttr(AriaChecked, fmt.Sprintf("%t", checked))
}

// State returns the native checked flag and the companion's aria-checked value.
func (p *Pair) State() (native bool, companion string) {
	return p.Native.Checked(), p.Companion.Attr(AriaChecked)
}

// NativeClick is a pointer click on the native control: its checked flag
// flips, as the browser's default action would, then the companion follows.
func (p *Pair) NativeClick() {
	p.Native.SetChecked(!p.Native.Checked())
	setCompanionChecked(p.Companion, p.Native.Checked())
}

// NativeKeyDown copies the native flag onto the companion when key is a
// toggle key. The flag itself is not changed; the activation that follows a
// key press arrives as NativeClick.
func (p *Pair) NativeKeyDown(key string) bool {
	if !p.isToggleKey(key) {
		return false
	}
	setCompanionChecked(p.Companion, p.Native.Checked())
	return true
}

// CompanionClick flips the companion and writes the result to both controls.
// Only an aria-checked value of exactly "false" counts as unchecked, so a
// companion with a missing attribute becomes unchecked.
func (p *Pair) CompanionClick() {
	next := p.Companion.Attr(AriaChecked) == "false"
	setCompanionChecked(p.Companion, next)
	p.Native.SetChecked(next)
}

// CompanionKeyDown behaves like CompanionClick for toggle keys.
func (p *Pair) CompanionKeyDown(key string) bool {
	if !p.isToggleKey(key) {
		return false
	}
	next := p.Companion.Attr(AriaChecked) == "false"
	setCompanionChecked(p.Companion, next)

	// TODO: drop this write if keyboard use of the companion should leave the
	// native control alone; current acceptance criteria do not require it.
	p.Native.SetChecked(next)
	return true
}

// Control names which element of a pair receives an event.
type Control string

const (
	ControlNative    Control = "native"
	ControlCompanion Control = "companion"
)

// Action is the kind of user input.
type Action string

const (
	ActionClick   Action = "click"
	ActionKeyDown Action = "key"
)

// Event is a single user input aimed at one control of a pair.
type Event struct {
	Control Control
	Action  Action
	Key     string // set for ActionKeyDown
}

func (e Event) String() string {
	if e.Action == ActionKeyDown {
		return fmt.Sprintf("%s:%s:%s", e.Control, e.Action, keyName(e.Key))
	}
	return fmt.Sprintf("%s:%s", e.Control, e.Action)
}

func keyName(key string) string {
	if key == " " {
		return "space"
	}
	return key
}

// ParseEvent reads events written as "native:click", "companion:click",
// "native:key:space" or "companion:key:enter".
func ParseEvent(s string) (Event, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 {
		return Event{}, errors.NewToggleError(fmt.Sprintf("event %q: want control:action", s), errors.ErrUnknownEvent)
	}

	ev := Event{Control: Control(parts[0]), Action: Action(parts[1])}
	switch ev.Control {
	case ControlNative, ControlCompanion:
	default:
		return Event{}, errors.NewToggleError(fmt.Sprintf("event %q: unknown control %q", s, parts[0]), errors.ErrUnknownEvent)
	}

	switch ev.Action {
	case ActionClick:
		if len(parts) == 3 {
			return Event{}, errors.NewToggleError(fmt.Sprintf("event %q: click takes no key", s), errors.ErrUnknownEvent)
		}
	case ActionKeyDown:
		if len(parts) != 3 || parts[2] == "" {
			return Event{}, errors.NewToggleError(fmt.Sprintf("event %q: missing key", s), errors.ErrUnknownEvent)
		}
		ev.Key = parts[2]
		if strings.EqualFold(ev.Key, "space") {
			ev.Key = " "
		}
	default:
		return Event{}, errors.NewToggleError(fmt.Sprintf("event %q: unknown action %q", s, parts[1]), errors.ErrUnknownEvent)
	}

	return ev, nil
}

// Dispatch routes ev to the matching handler and reports whether the pair
// reacted to it.
func (p *Pair) Dispatch(ev Event) bool {
	switch {
	case ev.Control == ControlNative && ev.Action == ActionClick:
		p.NativeClick()
		return true
	case ev.Control == ControlNative && ev.Action == ActionKeyDown:
		return p.NativeKeyDown(ev.Key)
	case ev.Control == ControlCompanion && ev.Action == ActionClick:
		p.CompanionClick()
		return true
	case ev.Control == ControlCompanion && ev.Action == ActionKeyDown:
		return p.CompanionKeyDown(ev.Key)
	}
	return false
}
