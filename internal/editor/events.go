package editor

import (
	"fmt"
	"io"

	"image-filter-studio/internal/config"
)

// EventKind tags a user request coming from the shell.
type EventKind int

const (
	EventLoad EventKind = iota + 1
	EventApply
	EventReset
	EventSave
	EventQuit
)

func (k EventKind) String() string {
	switch k {
	case EventLoad:
		return "load"
	case EventApply:
		return "apply"
	case EventReset:
		return "reset"
	case EventSave:
		return "save"
	case EventQuit:
		return "quit"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one user request. Path is used by load and save, Filter and Params
// by apply. A save with a Target writes there instead of opening Path.
type Event struct {
	Kind   EventKind
	Path   string
	Filter string
	Params map[string]interface{}
	Target io.Writer
}

func Load(path string) Event { return Event{Kind: EventLoad, Path: path} }
func Save(path string) Event { return Event{Kind: EventSave, Path: path} }
func Reset() Event           { return Event{Kind: EventReset} }
func Quit() Event            { return Event{Kind: EventQuit} }

func SaveTo(path string, w io.Writer) Event {
	return Event{Kind: EventSave, Path: path, Target: w}
}

func Apply(filter string, params map[string]interface{}) Event {
	return Event{Kind: EventApply, Filter: filter, Params: params}
}

// Action is a labelled toolbar entry bound to a filter and its arguments.
type Action struct {
	Label  string
	Filter string
	Params map[string]interface{}
}

// Event returns the apply request for the action.
func (a Action) Event() Event {
	return Apply(a.Filter, a.Params)
}

// DefaultActions lists the filter buttons in toolbar order.
func DefaultActions(cfg config.FilterConfig) []Action {
	return []Action{
		{Label: "Grayscale", Filter: "grayscale"},
		{Label: "Invert Colors", Filter: "invert"},
		{Label: "Contrast", Filter: "contrast"},
		{Label: "Sepia", Filter: "sepia"},
		{Label: "Blur", Filter: "blur"},
		{Label: "Sharpen", Filter: "sharpen"},
		{Label: "Edge Detection", Filter: "edges"},
		{Label: "Brightness +", Filter: "brightness", Params: map[string]interface{}{"delta": cfg.BrightnessDelta}},
		{Label: "Brightness -", Filter: "brightness", Params: map[string]interface{}{"delta": -cfg.BrightnessDelta}},
		{Label: fmt.Sprintf("Rotate %g°", cfg.RotateAngle), Filter: "rotate", Params: map[string]interface{}{"angle": cfg.RotateAngle}},
		{Label: fmt.Sprintf("Resize %g%%", cfg.ResizeScale*100), Filter: "resize", Params: map[string]interface{}{"scale": cfg.ResizeScale}},
		{Label: "Flip H", Filter: "flip_horizontal"},
		{Label: "Flip V", Filter: "flip_vertical"},
	}
}
