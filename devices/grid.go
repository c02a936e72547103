package devices

import "strings"

// Point defines a position on a two dimensional grid.
// Y grows downwards.
type Point struct {
	X, Y int
}

// Add returns the sum of p and q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Render draws the cells of the given grid that are not blank,
// cropped to their bounding box. glyph maps a cell value to a character.
func Render(grid map[Point]int64, glyph func(int64) byte) string {
	var min, max Point
	first := true

	for p, v := range grid {
		if glyph(v) == ' ' {
			continue
		}

		if first {
			min, max, first = p, p, false
			continue
		}

		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}

	if first {
		return ""
	}

	var sb strings.Builder

	for y := min.Y; y <= max.Y; y++ {
		line := make([]byte, 0, max.X-min.X+1)
		for x := min.X; x <= max.X; x++ {
			v, ok := grid[Point{x, y}]
			if !ok {
				line = append(line, ' ')
			} else {
				line = append(line, glyph(v))
			}
		}

		sb.WriteString(strings.TrimRight(string(line), " "))
		if y < max.Y {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}
