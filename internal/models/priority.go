package models

// Priority is the 50/30/20-style financial bucket a spend belongs to.
type Priority string

const (
	PriorityNeeds   Priority = "needs"
	PriorityWants   Priority = "wants"
	PrioritySavings Priority = "savings"
)

// AllPriorities lists every priority bucket in display order.
var AllPriorities = []Priority{PriorityNeeds, PriorityWants, PrioritySavings}

// Valid reports whether p is a known priority bucket.
func (p Priority) Valid() bool {
	switch p {
	case PriorityNeeds, PriorityWants, PrioritySavings:
		return true
	}
	return false
}
