// Package ordering keeps the 1-based positions of entities inside a scope,
// such as the modules of a course or the contents of a module.
//
// Every function expects the caller to hold exclusive access to the scope for
// the whole read-modify-write, usually by running inside a transaction that
// locked the scope's parent row.
package ordering

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Scope is a single ordered sequence
type Scope interface {
	// Max returns the highest order in the scope, 0 when it is empty
	Max(ctx context.Context) (int, error)
	// At returns the entity holding order, found is false when the slot is free
	At(ctx context.Context, order int) (id int, found bool, err error)
	// OrderOf returns the current order of an entity of the scope
	OrderOf(ctx context.Context, id int) (int, error)
	// Set writes a new order for an entity
	Set(ctx context.Context, id, order int) error
	// ShiftDown decrements every order greater than after
	ShiftDown(ctx context.Context, after int) error
}

// Direction is a single step move
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// parkingOrder is never a valid position; a swapped entity waits there so the
// (scope, order) uniqueness holds at every statement.
const parkingOrder = 0

// Next returns the order a new entity appended to the scope should get
func Next(ctx context.Context, s Scope) (int, error) {
	maxOrder, err := s.Max(ctx)
	if err != nil {
		return 0, err
	}
	return maxOrder + 1, nil
}

// Move places the entity at target. Targets below 1 are treated as 1.
// When target is taken the two entities swap positions; otherwise the entity
// simply takes target, which may leave a gap at its old position.
func Move(ctx context.Context, s Scope, id, target int) error {
	if target < 1 {
		target = 1
	}

	current, err := s.OrderOf(ctx, id)
	if err != nil {
		return err
	}
	if current == target {
		return nil
	}

	occupant, found, err := s.At(ctx, target)
	if err != nil {
		return err
	}
	if !found {
		return s.Set(ctx, id, target)
	}

	if err := s.Set(ctx, id, parkingOrder); err != nil {
		return fmt.Errorf("failed to park entity %d: %w", id, err)
	}
	if err := s.Set(ctx, occupant, current); err != nil {
		return fmt.Errorf("failed to swap entity %d: %w", occupant, err)
	}
	return s.Set(ctx, id, target)
}

// MoveUp moves the entity one position towards the start. No-op at order 1.
func MoveUp(ctx context.Context, s Scope, id int) error {
	current, err := s.OrderOf(ctx, id)
	if err != nil {
		return err
	}
	if current <= 1 {
		return nil
	}
	return Move(ctx, s, id, current-1)
}

// MoveDown moves the entity one position towards the end. No-op at the last position.
func MoveDown(ctx context.Context, s Scope, id int) error {
	current, err := s.OrderOf(ctx, id)
	if err != nil {
		return err
	}
	maxOrder, err := s.Max(ctx)
	if err != nil {
		return err
	}
	if current >= maxOrder {
		return nil
	}
	return Move(ctx, s, id, current+1)
}

// Step applies a single step move
func Step(ctx context.Context, s Scope, id int, direction Direction) error {
	switch direction {
	case Up:
		return MoveUp(ctx, s, id)
	case Down:
		return MoveDown(ctx, s, id)
	default:
		return fmt.Errorf("unknown direction %q", direction)
	}
}

// Compact closes the gap left by an entity removed from removedOrder
func Compact(ctx context.Context, s Scope, removedOrder int) error {
	return s.ShiftDown(ctx, removedOrder)
}

// ParsePosition reads a requested position; anything that is not a positive integer means 1
func ParsePosition(raw string) int {
	position, err := strconv.Atoi(strings.Trim(strings.TrimSpace(raw), `"`))
	if err != nil || position < 1 {
		return 1
	}
	return position
}
