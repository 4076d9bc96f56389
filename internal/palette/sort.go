package palette

import "sort"

// SortByHue returns a copy of colors ordered by hue, then by mean brightness,
// both ascending. The input slice is left untouched.
//
// Equal keys keep their input order, so the result is fully determined by
// the input and sorting a sorted palette returns it unchanged.
func SortByHue(colors []Pixel) []Pixel {
	type keyed struct {
		p          Pixel
		hue        float64
		brightness float64
	}

	items := make([]keyed, len(colors))
	for i, p := range colors {
		h, _, _ := RGBToHSV(p)
		items[i] = keyed{p: p, hue: h, brightness: p.Brightness()}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].hue != items[j].hue {
			return items[i].hue < items[j].hue
		}
		return items[i].brightness < items[j].brightness
	})

	out := make([]Pixel, len(items))
	for i, it := range items {
		out[i] = it.p
	}
	return out
}
