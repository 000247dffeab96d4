package core

// Color is a linear RGB triple.
type Color struct {
	R, G, B float32
}

var ColorWhite = Color{1, 1, 1}

func Gray(v float32) Color {
	return Color{v, v, v}
}

// Mul multiplies component-wise.
func (c Color) Mul(other Color) Color {
	return Color{R: c.R * other.R, G: c.G * other.G, B: c.B * other.B}
}

func (c Color) Scale(s float32) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s}
}
