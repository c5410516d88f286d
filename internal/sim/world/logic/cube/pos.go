package cube

import "fmt"

// Pos is the position of a grid cell as x, y and z.
type Pos [3]int

func (p Pos) X() int { return p[0] }
func (p Pos) Y() int { return p[1] }
func (p Pos) Z() int { return p[2] }

// Add returns the sum of both positions.
func (p Pos) Add(o Pos) Pos {
	return Pos{p[0] + o[0], p[1] + o[1], p[2] + o[2]}
}

// Sub returns p minus o.
func (p Pos) Sub(o Pos) Pos {
	return Pos{p[0] - o[0], p[1] - o[1], p[2] - o[2]}
}

func (p Pos) Offset(dx, dy, dz int) Pos {
	return Pos{p[0] + dx, p[1] + dy, p[2] + dz}
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p[0], p[1], p[2])
}
