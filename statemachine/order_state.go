package statemachine

import (
	"errors"

	"restohub-api/models"
)

// Transition defines a valid order state change
type Transition struct {
	From models.OrderStatus
	To   models.OrderStatus
}

// validTransitions is the authoritative lifecycle definition
var validTransitions = []Transition{
	{From: models.StatusPlaced, To: models.StatusPreparing},
	{From: models.StatusPlaced, To: models.StatusCancelled},
	{From: models.StatusPreparing, To: models.StatusOutForDelivery},
	{From: models.StatusPreparing, To: models.StatusCancelled},
	{From: models.StatusOutForDelivery, To: models.StatusDelivered},
}

var transitionMap = func() map[Transition]bool {
	m := make(map[Transition]bool)
	for _, t := range validTransitions {
		m[t] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	for _, t := range validTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// CanTransition checks whether an order may move between two states
func CanTransition(from, to models.OrderStatus) error {
	if transitionMap[Transition{From: from, To: to}] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			". Valid transitions from " + string(from) + " are: " + describeValidFrom(from))
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// IsValidStatus reports whether a wire value names a known status
func IsValidStatus(s models.OrderStatus) bool {
	switch s {
	case models.StatusPlaced, models.StatusPreparing, models.StatusOutForDelivery,
		models.StatusDelivered, models.StatusCancelled:
		return true
	}
	return false
}
