package inspector

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Widget types for rendering fields.
type Widget int

const (
	WidgetAuto Widget = iota
	WidgetLabel
	WidgetBar
	WidgetBool
	WidgetFacing
	WidgetTimer
	WidgetSkip
)

var widgetNames = map[string]Widget{
	"label":  WidgetLabel,
	"bar":    WidgetBar,
	"bool":   WidgetBool,
	"facing": WidgetFacing,
	"timer":  WidgetTimer,
	"skip":   WidgetSkip,
}

// Field represents a struct field with rendering hints.
type Field struct {
	Name    string
	Value   any
	Widget  Widget
	Options map[string]string
}

// ParseTag parses an inspect struct tag.
// Format: `inspect:"widget[,option[:value]...]"`
// Examples:
//
//	`inspect:"bar,max:4,signed"`
//	`inspect:"label,fmt:%.1f"`
//	`inspect:"timer"`
//	`inspect:"skip"`
//
// A bare option is stored with an empty value.
func ParseTag(tag string) (Widget, map[string]string) {
	options := make(map[string]string)
	if tag == "" {
		return WidgetAuto, options
	}

	parts := strings.Split(tag, ",")
	widget, ok := widgetNames[strings.TrimSpace(parts[0])]
	if !ok {
		widget = WidgetAuto
	}

	for _, part := range parts[1:] {
		key, value, _ := strings.Cut(strings.TrimSpace(part), ":")
		if key != "" {
			options[key] = value
		}
	}
	return widget, options
}

// ExtractFields lists the exported fields of a struct (or pointer to one)
// in declaration order, skipping those tagged `inspect:"skip"`.
func ExtractFields(v any) []Field {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	rt := rv.Type()
	fields := make([]Field, 0, rv.NumField())
	for i := 0; i < rv.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		widget, options := ParseTag(sf.Tag.Get("inspect"))
		if widget == WidgetSkip {
			continue
		}
		fv := rv.Field(i)
		if widget == WidgetAuto {
			widget = autoDetectWidget(fv)
		}

		fields = append(fields, Field{
			Name:    sf.Name,
			Value:   fv.Interface(),
			Widget:  widget,
			Options: options,
		})
	}
	return fields
}

// autoDetectWidget chooses a widget based on the field type.
func autoDetectWidget(v reflect.Value) Widget {
	if v.Kind() == reflect.Bool {
		return WidgetBool
	}
	return WidgetLabel
}

// FormatValue formats a field value as a string.
func FormatValue(value any, fmtStr string) string {
	if fmtStr != "" {
		return fmt.Sprintf(fmtStr, value)
	}
	switch v := value.(type) {
	case float32, float64:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%v", value)
	}
}

// FormatTimer renders a tick count as seconds at the given tick rate.
func FormatTimer(ticks float64, ticksPerSecond float64) string {
	if ticksPerSecond <= 0 {
		return fmt.Sprintf("%.0f ticks", ticks)
	}
	return fmt.Sprintf("%.1fs", ticks/ticksPerSecond)
}

// GetMax returns the max option as a float, defaulting to 1.0.
func GetMax(options map[string]string) float32 {
	if s, ok := options["max"]; ok {
		if max, err := strconv.ParseFloat(s, 32); err == nil && max > 0 {
			return float32(max)
		}
	}
	return 1.0
}

// IsSigned reports whether a bar is centered on zero.
func IsSigned(options map[string]string) bool {
	_, ok := options["signed"]
	return ok
}

// BarRatio maps value onto [0, 1] for a bar with the given options. Signed
// bars put zero at 0.5.
func BarRatio(value float32, options map[string]string) float32 {
	max := GetMax(options)
	ratio := value / max
	if IsSigned(options) {
		ratio = 0.5 + ratio/2
	}
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

// GetFloatValue extracts a float32 from numeric types.
func GetFloatValue(value any) (float32, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return float32(rv.Float()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float32(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float32(rv.Uint()), true
	default:
		return 0, false
	}
}
