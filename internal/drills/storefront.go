package drills

import (
	"errors"
	"fmt"
	"slices"
)

// Unit is a kind of apple bundle the learner can hand over.
type Unit string

const (
	UnitTen Unit = "ten" // a basket of ten apples
	UnitOne Unit = "one" // a single apple
)

// Value returns how many apples the unit holds.
func (u Unit) Value() int {
	switch u {
	case UnitTen:
		return 10
	case UnitOne:
		return 1
	}
	return 0
}

// OrderPoints is awarded for each order filled correctly.
const OrderPoints = 5

var (
	// ErrSupplyExhausted is returned when no unit of the requested kind is left.
	ErrSupplyExhausted = errors.New("no more of that unit on hand")

	// ErrUnknownUnit is returned for a unit kind the store does not stock.
	ErrUnknownUnit = errors.New("unknown unit")
)

// Supply counts units on hand.
type Supply struct {
	Tens int
	Ones int
}

// DefaultSupply covers the canonical split of any two-digit quantity
// below 90.
var DefaultSupply = Supply{Tens: 8, Ones: 9}

// Covers reports whether the canonical split of q fits in the supply.
func (s Supply) Covers(q int) bool {
	return q >= 0 && q/10 <= s.Tens && q%10 <= s.Ones
}

// Order is one customer's request.
type Order struct {
	Customer string
	Quantity int
}

// CheckComposition reports whether tens baskets plus ones singles is the
// canonical place-value split of q. It also returns the basket total.
func CheckComposition(q, tens, ones int) (ok bool, total int) {
	total = tens*10 + ones
	return total == q && tens == q/10 && ones == q%10, total
}

// Storefront runs the apple store drill. Orders answered wrongly during
// the first pass are queued and asked again after it.
type Storefront struct {
	orders   []Order
	sequence []int // indices into orders; first pass then retries
	pos      int
	supply   Supply
	onHand   Supply
	basket   Supply
	points   int
	misses   int
}

// NewStorefront returns a store that serves orders with the given supply.
func NewStorefront(orders []Order, supply Supply) *Storefront {
	s := &Storefront{
		orders: append([]Order(nil), orders...),
		supply: supply,
		onHand: supply,
	}
	for i := range s.orders {
		s.sequence = append(s.sequence, i)
	}
	return s
}

// Current returns the active order. ok is false once the drill is done.
func (s *Storefront) Current() (o Order, ok bool) {
	if s.Done() {
		return Order{}, false
	}
	return s.orders[s.sequence[s.pos]], true
}

// Position returns the zero-based place in the combined sequence.
func (s *Storefront) Position() int { return s.pos }

// Len returns the combined length of the first pass and queued retries.
func (s *Storefront) Len() int { return len(s.sequence) }

// Retrying reports whether the active order is a queued retry.
func (s *Storefront) Retrying() bool { return s.pos >= len(s.orders) }

// Done reports whether every order, retries included, has been filled.
func (s *Storefront) Done() bool { return s.pos >= len(s.sequence) }

// Points returns the points earned so far.
func (s *Storefront) Points() int { return s.points }

// Misses returns consecutive wrong submissions on the active order.
func (s *Storefront) Misses() int { return s.misses }

// MaxPoints returns the most a run without mistakes can earn.
func (s *Storefront) MaxPoints() int { return len(s.orders) * OrderPoints }

// Basket returns what the learner has selected so far.
func (s *Storefront) Basket() Supply { return s.basket }

// Available returns the units still on hand.
func (s *Storefront) Available() Supply { return s.onHand }

// Select moves one unit from the supply into the basket.
func (s *Storefront) Select(u Unit) error {
	if s.Done() {
		return nil
	}
	switch u {
	case UnitTen:
		if s.onHand.Tens == 0 {
			return fmt.Errorf("baskets: %w", ErrSupplyExhausted)
		}
		s.onHand.Tens--
		s.basket.Tens++
	case UnitOne:
		if s.onHand.Ones == 0 {
			return fmt.Errorf("singles: %w", ErrSupplyExhausted)
		}
		s.onHand.Ones--
		s.basket.Ones++
	default:
		return fmt.Errorf("%w %q", ErrUnknownUnit, u)
	}
	return nil
}

// Clear empties the basket and restocks the supply.
func (s *Storefront) Clear() {
	s.basket = Supply{}
	s.onHand = s.supply
}

// Submit hands the basket to the active customer.
func (s *Storefront) Submit() Verdict {
	o, ok := s.Current()
	if !ok {
		return Verdict{Done: true}
	}

	tens, ones := s.basket.Tens, s.basket.Ones
	correct, total := CheckComposition(o.Quantity, tens, ones)
	if !correct {
		s.misses++
		idx := s.sequence[s.pos]
		if !s.Retrying() && !slices.Contains(s.sequence[len(s.orders):], idx) {
			s.sequence = append(s.sequence, idx)
		}
		if total != o.Quantity {
			return Verdict{Feedback: fmt.Sprintf(
				"That's %d apples, but they asked for %d.\nTry again!", total, o.Quantity)}
		}
		return Verdict{Feedback: fmt.Sprintf(
			"Right total, but use %d baskets and %d singles!\nRemember: Use tens when you can!",
			o.Quantity/10, o.Quantity%10)}
	}

	s.points += OrderPoints
	s.misses = 0
	s.pos++
	s.Clear()
	return Verdict{
		Correct: true,
		Awarded: OrderPoints,
		Done:    s.Done(),
		Feedback: fmt.Sprintf("Perfect! You gave exactly %d apples!\n%d baskets + %d singles = %d",
			o.Quantity, tens, ones, o.Quantity),
	}
}
