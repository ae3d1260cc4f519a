// Named filter registry used by the editor and the UI
package algorithms

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"image-filter-studio/internal/core"
)

var (
	ErrUnknownAlgorithm = errors.New("algorithm not found")
	ErrInvalidParams    = errors.New("invalid parameters")
)

// Algorithm defines the interface for image processing algorithms
type Algorithm interface {
	Apply(input core.PixelBuffer, params map[string]interface{}) core.PixelBuffer
	GetDefaultParams() map[string]interface{}
	GetName() string
	GetDescription() string
	GetCategory() string
	Validate(params map[string]interface{}) error
	GetParameterInfo() []ParameterInfo
}

// ParameterInfo describes a parameter for validation and the filter reference
type ParameterInfo struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"` // "int", "float"
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	MinExclusive bool    `json:"min_exclusive,omitempty"`
	Default      float64 `json:"default"`
	Description  string  `json:"description"`
}

// Range renders the accepted interval, e.g. "(0, 8]" or "[-255, 255]".
func (p ParameterInfo) Range() string {
	open := "["
	if p.MinExclusive {
		open = "("
	}
	if p.Min == -math.MaxFloat64 && p.Max == math.MaxFloat64 {
		return "any finite value"
	}
	return fmt.Sprintf("%s%g, %g]", open, p.Min, p.Max)
}

// Check validates v against the declared type and bounds. NaN and infinities
// never pass.
func (p ParameterInfo) Check(v float64) error {
	inRange := v <= p.Max && (v > p.Min || (!p.MinExclusive && v == p.Min))
	if !inRange {
		return fmt.Errorf("%w: %s must be in %s, got %g", ErrInvalidParams, p.Name, p.Range(), v)
	}
	if p.Type == "int" && v != math.Trunc(v) {
		return fmt.Errorf("%w: %s must be an integer, got %g", ErrInvalidParams, p.Name, v)
	}
	return nil
}

// ValidateParams rejects keys not listed in info and values outside their
// declared range.
func ValidateParams(info []ParameterInfo, params map[string]interface{}) error {
	declared := make(map[string]ParameterInfo, len(info))
	for _, p := range info {
		declared[p.Name] = p
	}

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		p, ok := declared[key]
		if !ok {
			return fmt.Errorf("%w: unknown parameter %q", ErrInvalidParams, key)
		}
		v, err := floatParam(params, key, p.Default)
		if err != nil {
			return err
		}
		if err := p.Check(v); err != nil {
			return err
		}
	}
	return nil
}

const (
	CategoryColor    = "Color"
	CategoryEnhance  = "Enhance"
	CategoryStylize  = "Stylize"
	CategoryGeometry = "Geometry"
)

var algorithms = make(map[string]Algorithm)

func Register(name string, algorithm Algorithm) {
	algorithms[name] = algorithm
}

func Get(name string) (Algorithm, bool) {
	algorithm, exists := algorithms[name]
	return algorithm, exists
}

func IsValidAlgorithm(name string) bool {
	_, exists := algorithms[name]
	return exists
}

// Names returns every registered algorithm name in sorted order.
func Names() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByCategory groups registered names by their category, each group sorted.
func ByCategory() map[string][]string {
	result := make(map[string][]string)
	for _, name := range Names() {
		category := algorithms[name].GetCategory()
		result[category] = append(result[category], name)
	}
	return result
}

// ResolveParams overlays params on the algorithm defaults and validates them.
func ResolveParams(name string, params map[string]interface{}) (map[string]interface{}, error) {
	algorithm, exists := algorithms[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, name)
	}

	resolved := algorithm.GetDefaultParams()
	for k, v := range params {
		resolved[k] = v
	}

	if err := algorithm.Validate(resolved); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return resolved, nil
}

// Bind resolves params for name and returns a filter ready for Session.Apply.
func Bind(name string, params map[string]interface{}) (core.Filter, error) {
	resolved, err := ResolveParams(name, params)
	if err != nil {
		return nil, err
	}

	algorithm := algorithms[name]
	return func(b core.PixelBuffer) core.PixelBuffer {
		return algorithm.Apply(b, resolved)
	}, nil
}

func init() {
	Register("grayscale", newSimple("Grayscale", "Convert to gray, or equalize an image that is already gray", CategoryColor, Grayscale))
	Register("invert", newSimple("Invert", "Complement every sample", CategoryColor, Invert))
	Register("sepia", newSimple("Sepia", "Warm brown tone through a fixed color matrix", CategoryStylize, Sepia))
	Register("contrast", newSimple("Contrast", "CLAHE on the luminance channel", CategoryEnhance, Contrast))
	Register("blur", newSimple("Blur", "7x7 Gaussian blur", CategoryEnhance, Blur))
	Register("sharpen", newSimple("Sharpen", "3x3 sharpening convolution", CategoryEnhance, Sharpen))
	Register("edges", newSimple("Edge Detection", "Canny edge map with thresholds 50 and 150", CategoryStylize, Edges))
	Register("flip_horizontal", newSimple("Flip Horizontal", "Mirror across the vertical axis", CategoryGeometry, FlipHorizontal))
	Register("flip_vertical", newSimple("Flip Vertical", "Mirror across the horizontal axis", CategoryGeometry, FlipVertical))

	Register("rotate", NewRotation())
	Register("resize", NewScaling())
	Register("brightness", NewBrightnessAdjustment())
}
