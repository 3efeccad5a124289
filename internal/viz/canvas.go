package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = rune(0x2800)

// Ink tags what a cell shows so it can be coloured. Higher inks win when
// two things share a cell.
type Ink uint8

const (
	InkNone Ink = iota
	InkLine
	InkGlobe
	InkArc
	InkNode
	InkHover
)

// Canvas is a braille raster. Its resolution in sub-pixels is
// (Width*2) x (Height*4); a sub-pixel is close to square in most fonts.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Inks          [][]Ink
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the grid at w by h cells and clears it.
func (c *Canvas) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	c.Inks = make([][]Ink, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Inks[i] = make([]Ink, w)
	}
	c.Clear()
}

// Pixels returns the sub-pixel resolution.
func (c *Canvas) Pixels() (w, h int) { return c.Width * 2, c.Height * 4 }

// Set lights the sub-pixel (x, y) with ink. Out of range points are dropped.
func (c *Canvas) Set(x, y int, ink Ink) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if ink > c.Inks[row][col] {
		c.Inks[row][col] = ink
	}
}

// Lit reports whether the sub-pixel (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Inks[i][j] = InkNone
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, ink Ink) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, ink)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Disc fills a disc of radius r sub-pixels centred on (cx, cy).
func (c *Canvas) Disc(cx, cy, r int, ink Ink) {
	if r <= 0 {
		c.Set(cx, cy, ink)
		return
	}
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				c.Set(cx+x, cy+y, ink)
			}
		}
	}
}

// Square fills an axis-aligned square of half-width r around (cx, cy).
func (c *Canvas) Square(cx, cy, r int, ink Ink) {
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			c.Set(cx+x, cy+y, ink)
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render returns the canvas with each run of equal ink coloured by theme.
func (c *Canvas) Render(theme Theme) string {
	styles := map[Ink]lipgloss.Style{
		InkLine:  lipgloss.NewStyle().Foreground(theme.Line),
		InkGlobe: lipgloss.NewStyle().Foreground(theme.Globe),
		InkArc:   lipgloss.NewStyle().Foreground(theme.Arc),
		InkNode:  lipgloss.NewStyle().Foreground(theme.Node),
		InkHover: lipgloss.NewStyle().Foreground(theme.Hover).Bold(true),
	}

	var b strings.Builder
	for row := range c.Grid {
		start := 0
		for col := 1; col <= c.Width; col++ {
			if col < c.Width && c.Inks[row][col] == c.Inks[row][start] {
				continue
			}
			run := string(c.Grid[row][start:col])
			if st, ok := styles[c.Inks[row][start]]; ok {
				run = st.Render(run)
			}
			b.WriteString(run)
			start = col
		}
		if row < c.Height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
