// Package editor routes shell events onto the session and the codec.
package editor

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"image-filter-studio/internal/algorithms"
	"image-filter-studio/internal/core"
	"image-filter-studio/internal/io"
	"image-filter-studio/internal/metrics"
)

var ErrUnknownEvent = errors.New("unknown event")

// Outcome tells the shell what to do after an event.
type Outcome struct {
	Refresh bool
	Quit    bool
	State   core.State
	Message string
}

// Snapshot is what the shell renders after a state change.
type Snapshot struct {
	State    core.State
	Original core.PixelBuffer
	Current  core.PixelBuffer
	Report   metrics.Report
	Path     string
}

type Controller struct {
	session   *core.Session
	loader    *io.ImageLoader
	evaluator *metrics.Evaluator
	logger    logrus.FieldLogger
	path      string
}

func NewController(session *core.Session, loader *io.ImageLoader, logger logrus.FieldLogger) *Controller {
	return &Controller{
		session:   session,
		loader:    loader,
		evaluator: metrics.NewEvaluator(),
		logger:    logger,
	}
}

// Dispatch runs one event to completion. Failed loads and saves leave the
// session untouched.
func (c *Controller) Dispatch(ev Event) (Outcome, error) {
	start := time.Now()
	log := c.logger.WithFields(logrus.Fields{
		"event":  ev.Kind.String(),
		"filter": ev.Filter,
		"path":   ev.Path,
	})

	outcome, err := c.dispatch(ev)
	outcome.State = c.session.State()

	log = log.WithFields(logrus.Fields{
		"state":       outcome.State.String(),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	switch {
	case errors.Is(err, core.ErrInvalidState):
		log.Debug("EDITOR: Ignored event without image")
	case err != nil:
		log.WithError(err).Warn("EDITOR: Event failed")
	default:
		log.Info("EDITOR: Event handled")
	}
	return outcome, err
}

func (c *Controller) dispatch(ev Event) (Outcome, error) {
	switch ev.Kind {
	case EventLoad:
		buf, err := c.loader.Decode(ev.Path)
		if err != nil {
			return Outcome{}, err
		}
		if err := c.session.Load(buf); err != nil {
			return Outcome{}, err
		}
		c.path = ev.Path
		return Outcome{Refresh: true, Message: fmt.Sprintf("Loaded: %s (%s)", ev.Path, buf)}, nil

	case EventApply:
		filter, err := algorithms.Bind(ev.Filter, ev.Params)
		if err != nil {
			return Outcome{}, err
		}
		if err := c.session.Apply(filter); err != nil {
			return Outcome{}, err
		}
		algorithm, _ := algorithms.Get(ev.Filter)
		return Outcome{Refresh: true, Message: "Applied: " + algorithm.GetName()}, nil

	case EventReset:
		if err := c.session.Reset(); err != nil {
			return Outcome{}, err
		}
		return Outcome{Refresh: true, Message: "Reset to original image"}, nil

	case EventSave:
		current, ok := c.session.Current()
		if !ok {
			return Outcome{}, core.ErrInvalidState
		}
		if ev.Target != nil {
			format, err := c.loader.EncodeTo(current, ev.Path, ev.Target)
			if err != nil {
				return Outcome{}, err
			}
			return Outcome{Message: fmt.Sprintf("Saved: %s (%s)", ev.Path, format)}, nil
		}
		if err := c.loader.Encode(current, ev.Path); err != nil {
			return Outcome{}, err
		}
		return Outcome{Message: "Saved: " + ev.Path}, nil

	case EventQuit:
		c.session.Clear()
		return Outcome{Quit: true}, nil

	default:
		return Outcome{}, fmt.Errorf("%w: %v", ErrUnknownEvent, ev.Kind)
	}
}

// Snapshot returns the buffers and metrics the shell should display.
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{State: c.session.State(), Path: c.path}

	original, ok := c.session.Original()
	if !ok {
		return snap
	}
	current, _ := c.session.Current()

	snap.Original = original
	snap.Current = current
	snap.Report = c.evaluator.GenerateReport(original, current)
	return snap
}

// Evaluator returns the metrics used for snapshot reports.
func (c *Controller) Evaluator() *metrics.Evaluator {
	return c.evaluator
}

// HasImage reports whether filter, reset and save actions are meaningful.
func (c *Controller) HasImage() bool {
	return c.session.HasImage()
}
