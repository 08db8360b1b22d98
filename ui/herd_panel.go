package ui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pasture/components"
	"github.com/pthm-cable/pasture/game"
)

// groupTitles names the sections of the herd panel.
var groupTitles = map[string]string{
	"herd":    "Herd",
	"motion":  "Motion",
	"scenery": "Scenery",
}

// HerdPanelDescriptor builds the herd stats panel from the herd field
// metadata. The panel's data is a game.HerdSummary.
func HerdPanelDescriptor() PanelDescriptor {
	pd := PanelDescriptor{
		ID:     "herd_stats",
		Title:  "Herd Stats",
		Width:  240,
		Anchor: AnchorBottomRight,
	}

	index := make(map[string]int)
	for _, hf := range components.HerdFieldDescriptors() {
		i, ok := index[hf.Group]
		if !ok {
			title := groupTitles[hf.Group]
			if title == "" {
				title = hf.Group
			}
			pd.Sections = append(pd.Sections, SectionDescriptor{ID: hf.Group, Title: title})
			i = len(pd.Sections) - 1
			index[hf.Group] = i
		}
		pd.Sections[i].Fields = append(pd.Sections[i].Fields, herdField(hf))
	}

	pd.Sections = append(pd.Sections, SectionDescriptor{
		ID:    "palette",
		Title: "Palette",
		Fields: []FieldDescriptor{
			{
				ID: "phase", Label: "Phase", Widget: WidgetText,
				TextGetter: func(d any) string { return d.(game.HerdSummary).Phase },
			},
			{
				ID: "sky", Label: "Sky", Widget: WidgetColorSwatch,
				ColorGetter: func(d any) rl.Color { return toColor(d.(game.HerdSummary).Palette.Sky) },
			},
			{
				ID: "ground", Label: "Ground", Widget: WidgetColorSwatch,
				ColorGetter: func(d any) rl.Color { return toColor(d.(game.HerdSummary).Palette.Ground) },
			},
		},
	})
	return pd
}

// herdField converts one herd statistic into a panel field.
func herdField(hf components.FieldDescriptor) FieldDescriptor {
	id := hf.ID
	fd := FieldDescriptor{
		ID:     id,
		Label:  hf.Label,
		Widget: WidgetText,
		Format: hf.Format,
		Getter: func(d any) float32 {
			v, _ := d.(game.HerdSummary).Value(id)
			return float32(v)
		},
	}
	if hf.IsBar {
		fd.Widget = WidgetBar
		fd.Range = FieldRange{Min: hf.Min, Max: hf.Max}
	}
	if fd.Format == "" {
		fd.Format = "%.2f"
	}
	return fd
}

func toColor(c color.RGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
