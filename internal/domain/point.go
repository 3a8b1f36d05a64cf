package domain

import "fmt"

// Immutable grid coordinates. Comparable, so it can be used as a map key.
type Point struct {
	X int
	Y int
}

func NewPoint(x, y int) Point { return Point{X: x, Y: y} }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Distance is the Manhattan distance between two points.
// Every heuristic and the scorer measure travel with this function only.
func Distance(p0, p1 Point) int {
	return abs(p0.X-p1.X) + abs(p0.Y-p1.Y)
}

// Sum of consecutive leg distances along a path.
func PathLength(path []Point) int {
	total := 0
	for i := 1; i < len(path); i++ {
		total += Distance(path[i-1], path[i])
	}
	return total
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
