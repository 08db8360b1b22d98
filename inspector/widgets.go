package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pasture/components"
)

// Widget colors
var (
	ColorBarBg    = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarFill  = rl.Color{R: 100, G: 180, B: 100, A: 255}
	ColorBarNeg   = rl.Color{R: 180, G: 110, B: 80, A: 255}
	ColorBarZero  = rl.Color{R: 90, G: 90, B: 90, A: 255}
	ColorText     = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim  = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorLabelDim = rl.Color{R: 120, G: 120, B: 130, A: 255}
	ColorArrow    = rl.Color{R: 255, G: 200, B: 100, A: 255}
	ColorBoolOn   = rl.Color{R: 100, G: 200, B: 100, A: 255}
	ColorBoolOff  = rl.Color{R: 80, G: 80, B: 80, A: 255}
)

const (
	labelWidth = 80
	barWidth   = 120
	barHeight  = 14
)

// DrawLabel renders a text value.
func DrawLabel(x, y int32, name string, value any, options map[string]string) int32 {
	text := FormatValue(value, options["fmt"])
	rl.DrawText(name, x, y, 14, ColorTextDim)
	rl.DrawText(text, x+labelWidth, y, 14, ColorText)
	return 18
}

// DrawBar renders a horizontal bar. Signed bars grow from the middle.
func DrawBar(x, y int32, name string, value float32, options map[string]string) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)

	barX := x + labelWidth
	rl.DrawRectangle(barX, y, barWidth, barHeight, ColorBarBg)

	ratio := BarRatio(value, options)
	if IsSigned(options) {
		mid := barX + barWidth/2
		end := barX + int32(float32(barWidth)*ratio)
		fill := ColorBarFill
		if end < mid {
			mid, end = end, mid
			fill = ColorBarNeg
		}
		rl.DrawRectangle(mid, y, end-mid, barHeight, fill)
		rl.DrawLine(barX+barWidth/2, y, barX+barWidth/2, y+barHeight, ColorBarZero)
	} else {
		rl.DrawRectangle(barX, y, int32(float32(barWidth)*ratio), barHeight, ColorBarFill)
	}

	rl.DrawText(fmt.Sprintf("%+.2f", value), barX+barWidth+5, y, 14, ColorTextDim)
	return 18
}

// DrawFacing renders an arrow pointing the way the grazer looks.
func DrawFacing(x, y int32, name string, f components.Facing) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)

	cx := float32(x + labelWidth + 10)
	cy := float32(y + 7)
	dir := float32(f)
	tip := rl.Vector2{X: cx + 8*dir, Y: cy}
	rl.DrawLineEx(rl.Vector2{X: cx - 8*dir, Y: cy}, tip, 2, ColorArrow)
	rl.DrawLineEx(tip, rl.Vector2{X: cx + 3*dir, Y: cy - 5}, 2, ColorArrow)
	rl.DrawLineEx(tip, rl.Vector2{X: cx + 3*dir, Y: cy + 5}, 2, ColorArrow)

	rl.DrawText(f.String(), x+labelWidth+26, y, 14, ColorText)
	return 18
}

// DrawTimer renders a tick countdown in seconds.
func DrawTimer(x, y int32, name string, ticks, ticksPerSecond float64) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)
	rl.DrawText(FormatTimer(ticks, ticksPerSecond), x+labelWidth, y, 14, ColorText)
	return 18
}

// DrawBool renders an on/off indicator.
func DrawBool(x, y int32, name string, value bool) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)

	indicatorX := x + labelWidth
	indicatorSize := int32(14)

	color := ColorBoolOff
	text := "no"
	if value {
		color = ColorBoolOn
		text = "yes"
	}

	rl.DrawRectangle(indicatorX, y, indicatorSize, indicatorSize, color)
	rl.DrawText(text, indicatorX+indicatorSize+5, y, 14, color)
	return 18
}

// DrawField renders a field using its widget type and returns its height.
func DrawField(x, y int32, field Field, ticksPerSecond float64) int32 {
	switch field.Widget {
	case WidgetBar:
		if v, ok := GetFloatValue(field.Value); ok {
			return DrawBar(x, y, field.Name, v, field.Options)
		}

	case WidgetBool:
		if v, ok := field.Value.(bool); ok {
			return DrawBool(x, y, field.Name, v)
		}

	case WidgetFacing:
		if v, ok := field.Value.(components.Facing); ok {
			return DrawFacing(x, y, field.Name, v)
		}

	case WidgetTimer:
		if v, ok := GetFloatValue(field.Value); ok {
			return DrawTimer(x, y, field.Name, float64(v), ticksPerSecond)
		}
	}
	return DrawLabel(x, y, field.Name, field.Value, field.Options)
}
