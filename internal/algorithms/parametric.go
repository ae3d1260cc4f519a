package algorithms

import (
	"fmt"
	"math"

	"image-filter-studio/internal/core"
)

// simpleAlgorithm adapts a parameterless filter function to Algorithm.
type simpleAlgorithm struct {
	name        string
	description string
	category    string
	fn          core.Filter
}

func newSimple(name, description, category string, fn core.Filter) *simpleAlgorithm {
	return &simpleAlgorithm{name: name, description: description, category: category, fn: fn}
}

func (s *simpleAlgorithm) Apply(input core.PixelBuffer, _ map[string]interface{}) core.PixelBuffer {
	return s.fn(input)
}

func (s *simpleAlgorithm) GetDefaultParams() map[string]interface{} { return map[string]interface{}{} }
func (s *simpleAlgorithm) GetName() string                          { return s.name }
func (s *simpleAlgorithm) GetDescription() string                   { return s.description }
func (s *simpleAlgorithm) GetCategory() string                      { return s.category }
func (s *simpleAlgorithm) GetParameterInfo() []ParameterInfo        { return nil }

func (s *simpleAlgorithm) Validate(params map[string]interface{}) error {
	return ValidateParams(nil, params)
}

// Rotation rotates about the image center on a fixed-size canvas.
type Rotation struct{}

var angleParam = ParameterInfo{
	Name:        "angle",
	Type:        "float",
	Min:         -math.MaxFloat64,
	Max:         math.MaxFloat64,
	Default:     90.0,
	Description: "Rotation in degrees, counter-clockwise",
}

func NewRotation() *Rotation {
	return &Rotation{}
}

func (r *Rotation) Apply(input core.PixelBuffer, params map[string]interface{}) core.PixelBuffer {
	angle, _ := floatParam(params, angleParam.Name, angleParam.Default)
	return Rotate(input, angle)
}

func (r *Rotation) GetDefaultParams() map[string]interface{} {
	return map[string]interface{}{angleParam.Name: angleParam.Default}
}

func (r *Rotation) GetName() string        { return "Rotate" }
func (r *Rotation) GetDescription() string { return "Rotate about the center, keeping the canvas size" }
func (r *Rotation) GetCategory() string    { return CategoryGeometry }

func (r *Rotation) Validate(params map[string]interface{}) error {
	return ValidateParams(r.GetParameterInfo(), params)
}

func (r *Rotation) GetParameterInfo() []ParameterInfo {
	return []ParameterInfo{angleParam}
}

// Scaling resizes both axes uniformly.
type Scaling struct{}

// MaxScale bounds the resize factor.
const MaxScale = 8.0

var scaleParam = ParameterInfo{
	Name:         "scale",
	Type:         "float",
	Min:          0,
	MinExclusive: true,
	Max:          MaxScale,
	Default:      0.5,
	Description:  "Scale factor applied to both dimensions",
}

func NewScaling() *Scaling {
	return &Scaling{}
}

func (s *Scaling) Apply(input core.PixelBuffer, params map[string]interface{}) core.PixelBuffer {
	scale, _ := floatParam(params, scaleParam.Name, scaleParam.Default)
	return Resize(input, scale)
}

func (s *Scaling) GetDefaultParams() map[string]interface{} {
	return map[string]interface{}{scaleParam.Name: scaleParam.Default}
}

func (s *Scaling) GetName() string        { return "Resize" }
func (s *Scaling) GetDescription() string { return "Scale width and height by a common factor" }
func (s *Scaling) GetCategory() string    { return CategoryGeometry }

func (s *Scaling) Validate(params map[string]interface{}) error {
	return ValidateParams(s.GetParameterInfo(), params)
}

func (s *Scaling) GetParameterInfo() []ParameterInfo {
	return []ParameterInfo{scaleParam}
}

// BrightnessAdjustment shifts the HSV value channel.
type BrightnessAdjustment struct{}

var deltaParam = ParameterInfo{
	Name:        "delta",
	Type:        "int",
	Min:         -255,
	Max:         255,
	Default:     30,
	Description: "Amount added to the value channel",
}

func NewBrightnessAdjustment() *BrightnessAdjustment {
	return &BrightnessAdjustment{}
}

func (ba *BrightnessAdjustment) Apply(input core.PixelBuffer, params map[string]interface{}) core.PixelBuffer {
	delta, _ := floatParam(params, deltaParam.Name, deltaParam.Default)
	return Brightness(input, int(delta))
}

func (ba *BrightnessAdjustment) GetDefaultParams() map[string]interface{} {
	return map[string]interface{}{deltaParam.Name: deltaParam.Default}
}

func (ba *BrightnessAdjustment) GetName() string        { return "Brightness" }
func (ba *BrightnessAdjustment) GetDescription() string { return "Saturating HSV value shift" }
func (ba *BrightnessAdjustment) GetCategory() string    { return CategoryColor }

func (ba *BrightnessAdjustment) Validate(params map[string]interface{}) error {
	return ValidateParams(ba.GetParameterInfo(), params)
}

func (ba *BrightnessAdjustment) GetParameterInfo() []ParameterInfo {
	return []ParameterInfo{deltaParam}
}

func floatParam(params map[string]interface{}, key string, def float64) (float64, error) {
	val, ok := params[key]
	if !ok {
		return def, nil
	}
	switch v := val.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%w: %s must be numeric, got %T", ErrInvalidParams, key, val)
	}
}
