package topology

import "math"

// layout assigns fixed positions per kind. Every layout is pure
// geometry with no randomness, so two builds of the same topology
// render pixel-identically.
func (t *Topology) layout() {
	switch t.Kind {
	case KindNormal:
		t.layoutLine()
	case KindLoop, KindMesh:
		t.layoutCircle()
	case KindTriangle:
		t.layoutShell()
	case KindBBMDCorrect:
		t.layoutSubnetRows()
	}
}

// layoutLine spaces nodes evenly along the x axis.
func (t *Topology) layoutLine() {
	for i, n := range t.nodes {
		n.X = 1.5 * float64(i)
		n.Y = 0
	}
}

// layoutCircle places all nodes on a unit circle, first node at the
// top, proceeding clockwise.
func (t *Topology) layoutCircle() {
	count := float64(len(t.nodes))
	for i, n := range t.nodes {
		angle := math.Pi/2 - 2*math.Pi*float64(i)/count
		n.X = math.Cos(angle)
		n.Y = math.Sin(angle)
	}
}

// layoutShell puts switches and BBMDs on an inner ring and devices on
// an outer ring.
func (t *Topology) layoutShell() {
	var inner, outer []*Node
	for _, n := range t.nodes {
		if n.Role == RoleDevice {
			outer = append(outer, n)
		} else {
			inner = append(inner, n)
		}
	}
	placeRing(inner, 1)
	placeRing(outer, 2)
}

func placeRing(nodes []*Node, radius float64) {
	count := float64(len(nodes))
	for i, n := range nodes {
		angle := math.Pi/2 - 2*math.Pi*float64(i)/count
		n.X = radius * math.Cos(angle)
		n.Y = radius * math.Sin(angle)
	}
}

// layoutSubnetRows centers the BBMDs on one row and lines devices up
// on a row per subnet, making the subnet split visible.
func (t *Topology) layoutSubnetRows() {
	bbmdIndex := 0
	rowIndex := map[string]int{}
	rowY := map[string]float64{}
	nextRow := -1.0
	for _, n := range t.nodes {
		if n.Role == RoleBBMD {
			n.X = 2 * float64(bbmdIndex)
			n.Y = 0
			bbmdIndex++
			continue
		}
		key := n.Subnet.String()
		if _, ok := rowY[key]; !ok {
			rowY[key] = nextRow
			nextRow += 2
		}
		n.X = 1.5 * float64(rowIndex[key])
		n.Y = rowY[key]
		rowIndex[key]++
	}
}
