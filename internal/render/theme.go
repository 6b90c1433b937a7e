package render

import "image/color"

// Theme holds the menu colours, alpha-premultiplied.
type Theme struct {
	Background color.RGBA
	Panel      color.RGBA
	Accent     color.RGBA
	Muted      color.RGBA
}

// DefaultTheme is black behind the video, dark translucent panels, gold
// labels under the pointer and grey labels otherwise.
var DefaultTheme = Theme{
	Background: color.RGBA{A: 0xff},
	Panel:      color.RGBAModel.Convert(color.NRGBA{R: 15, G: 15, B: 15, A: 190}).(color.RGBA),
	Accent:     color.RGBA{R: 212, G: 175, B: 55, A: 255},
	Muted:      color.RGBA{R: 170, G: 170, B: 170, A: 255},
}
