package array

import "slices"

// Memo caches the steered elements and gain pattern for the last
// (elements, target) pair it saw, so per-frame callers only pay the
// O(n*360) sweep when the layout actually changed. A Memo is not safe for
// concurrent use; it belongs to the single tick driver.
type Memo struct {
	valid     bool
	elements  []Element
	target    Point
	hasTarget bool

	steered []Element
	pattern GainPattern

	recomputes int
}

// Resolve returns ComputePhases(elements, target) and the gain pattern of the
// steered elements, reusing the previous result when the inputs are
// unchanged. The returned values must be treated as read-only.
func (m *Memo) Resolve(elements []Element, target *Point) ([]Element, GainPattern) {
	if m.valid && m.matches(elements, target) {
		return m.steered, m.pattern
	}
	m.elements = slices.Clone(elements)
	m.hasTarget = target != nil
	if target != nil {
		m.target = *target
	} else {
		m.target = Point{}
	}
	m.steered = ComputePhases(elements, target)
	m.pattern = ComputeGainPattern(m.steered)
	m.valid = true
	m.recomputes++
	return m.steered, m.pattern
}

// Invalidate forces the next Resolve to recompute.
func (m *Memo) Invalidate() { m.valid = false }

// Recomputes reports how many times Resolve had to recompute.
func (m *Memo) Recomputes() int { return m.recomputes }

func (m *Memo) matches(elements []Element, target *Point) bool {
	if (target != nil) != m.hasTarget {
		return false
	}
	if target != nil && *target != m.target {
		return false
	}
	return slices.Equal(elements, m.elements)
}
