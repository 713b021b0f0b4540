package ui

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"

	"twobody/internal/core"
)

type hudControlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// refresh loads the current value of the control from param.
func (s *hudControlState) refresh(param core.Parameter, ok bool) {
	s.hasValue = false
	s.value = "--"
	if !ok {
		return
	}
	switch s.control.Type {
	case core.ParamTypeInt:
		parsed, err := strconv.Atoi(param.Value)
		if err != nil {
			return
		}
		s.intValue = parsed
		s.floatValue = float64(parsed)
		s.value = strconv.Itoa(parsed)
		s.hasValue = true
	case core.ParamTypeFloat:
		parsed, err := strconv.ParseFloat(param.Value, 64)
		if err != nil {
			return
		}
		s.floatValue = parsed
		s.value = formatControlFloat(s.control, parsed)
		s.hasValue = true
	}
}

// target returns the clamped value one step in direction and whether it
// differs from the current value.
func (s *hudControlState) target(direction int) (float64, bool) {
	if !s.hasValue || direction == 0 {
		return 0, false
	}
	ctrl := s.control
	switch ctrl.Type {
	case core.ParamTypeInt:
		step := int(math.Round(ctrl.Step))
		if step <= 0 {
			step = 1
		}
		t := s.intValue + direction*step
		if ctrl.HasMin {
			t = max(t, int(math.Round(ctrl.Min)))
		}
		if ctrl.HasMax {
			t = min(t, int(math.Round(ctrl.Max)))
		}
		return float64(t), t != s.intValue
	case core.ParamTypeFloat:
		step := ctrl.Step
		if step <= 0 {
			step = 0.05
		}
		t := s.floatValue + float64(direction)*step
		if ctrl.HasMin && t < ctrl.Min {
			t = ctrl.Min
		}
		if ctrl.HasMax && t > ctrl.Max {
			t = ctrl.Max
		}
		return t, math.Abs(t-s.floatValue) >= 1e-9
	default:
		return 0, false
	}
}

func formatControlFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	var precision int
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	default:
		precision = 1
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

// titleFor turns "bound-pair" into "Bound Pair Controls".
func titleFor(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool { return r == '-' || r == '_' || r == ' ' })
	if len(words) == 0 {
		return "Controls"
	}
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ") + " Controls"
}

// statusLines renders every parameter of the named group as "label: value".
func statusLines(snap core.ParameterSnapshot, group string) []string {
	for _, g := range snap.Groups {
		if g.Name != group {
			continue
		}
		lines := make([]string, 0, len(g.Params))
		for _, p := range g.Params {
			lines = append(lines, fmt.Sprintf("%s: %s", p.Label, p.Value))
		}
		return lines
	}
	return nil
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}
