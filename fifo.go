package folio

import (
	"github.com/openfolio/folio/daily"
)

// Direction is the side of the currently open position.
type Direction int

const (
	// Flat means no open position.
	Flat Direction = iota
	// Long means the net position is positive.
	Long
	// Short means the net position is negative.
	Short
)

func (d Direction) String() string {
	switch d {
	case Long:
		return "long"
	case Short:
		return "short"
	default:
		return "flat"
	}
}

// lot is an open quantity at a specific price, created when a trade adds
// to the position in the prevailing direction and consumed, oldest first,
// when an opposing trade reduces it. Quantities are unsigned magnitudes;
// which queue a lot sits in tells its sign.
type lot struct {
	on       daily.Date
	quantity Quantity
	price    Money
}

// lotQueue is a FIFO queue of open lots; the head is at index 0.
type lotQueue []lot

func (q lotQueue) totalQuantity() Quantity {
	var total Quantity
	for _, l := range q {
		total = total.Add(l.quantity)
	}
	return total
}

func (q lotQueue) totalValue() Money {
	var total Money
	for _, l := range q {
		total = total.Add(l.price.Mul(l.quantity))
	}
	return total
}

// collapse drops head lots that ended up empty or negative. Fully
// consumed lots are discarded eagerly during matching, so this is a
// defensive cleanup mirroring the matching loop's invariant.
func (q lotQueue) collapse() lotQueue {
	for len(q) > 0 && !q[0].quantity.IsPositive() {
		q = q[1:]
	}
	return q
}

// PositionSnapshot records the state of the position immediately after
// one trade was processed.
type PositionSnapshot struct {
	On          daily.Date
	NetQuantity Quantity // signed: negative when short
	AverageCost Money    // weighted average price of open lots, never negative
	RealizedPNL Money    // cumulative profit and loss locked in by lot closures
}

// Breakdown is the full history of a position: exactly one snapshot per
// input trade, in input order, dates non-decreasing.
type Breakdown []PositionSnapshot

// Latest returns the last snapshot, or a zero snapshot when empty.
func (b Breakdown) Latest() PositionSnapshot {
	if len(b) == 0 {
		return PositionSnapshot{}
	}
	return b[len(b)-1]
}

// matcher is the state carried across one fold over a trade history.
// It never outlives a MatchFIFO call.
type matcher struct {
	direction Direction
	longs     lotQueue // open buy lots
	shorts    lotQueue // open sell lots
	realized  Money
}

// MatchFIFO reconstructs the evolving position of a single-ticker trade
// history using first-in-first-out lot matching. It returns one snapshot
// per trade. An empty history yields an empty breakdown. It fails only
// on malformed input (mixed tickers, unsorted dates).
//
// The function is pure: calling it twice with the same history produces
// identical breakdowns.
func MatchFIFO(history TradeList) (Breakdown, error) {
	if err := history.Validate(); err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return Breakdown{}, nil
	}

	m := &matcher{}
	breakdown := make(Breakdown, 0, len(history))
	for _, t := range history {
		m.apply(t)
		breakdown = append(breakdown, m.snapshot(t.On))
	}
	return breakdown, nil
}

// apply folds one trade into the matcher state.
func (m *matcher) apply(t Trade) {
	q := t.Signed()
	net := m.net()

	switch {
	case q.IsZero():
		// A zero-quantity trade is a no-op. When flat it still seeds the
		// direction, like any first trade would.
		if net.IsZero() && m.direction == Flat {
			m.direction = Long
		}
	case net.IsZero():
		// Fresh seed: the trade dictates the direction.
		if q.IsNegative() {
			m.direction = Short
			m.shorts = append(m.shorts, lot{on: t.On, quantity: q.Abs(), price: t.Price})
		} else {
			m.direction = Long
			m.longs = append(m.longs, lot{on: t.On, quantity: q, price: t.Price})
		}
	case q.Sign() == net.Sign():
		// Same direction: the trade opens a new lot at the queue tail.
		if m.direction == Short {
			m.shorts = append(m.shorts, lot{on: t.On, quantity: q.Abs(), price: t.Price})
		} else {
			m.longs = append(m.longs, lot{on: t.On, quantity: q.Abs(), price: t.Price})
		}
	default:
		// Opposing direction: queue the trade on the other side, then
		// match heads until one queue runs out. If the trade was larger
		// than the open position, the remainder survives as the first lot
		// of the reversed direction.
		if m.direction == Long {
			m.shorts = append(m.shorts, lot{on: t.On, quantity: q.Abs(), price: t.Price})
		} else {
			m.longs = append(m.longs, lot{on: t.On, quantity: q.Abs(), price: t.Price})
		}
		m.matchHeads()
	}

	m.longs = m.longs.collapse()
	m.shorts = m.shorts.collapse()

	// Detect a reversal within this single trade.
	net = m.net()
	if m.direction == Long && net.IsNegative() {
		m.direction = Short
	} else if m.direction == Short && net.IsPositive() {
		m.direction = Long
	}
}

// matchHeads consumes the oldest long lot against the oldest short lot
// until one queue is empty. Realized P&L accrues for each matched
// quantity as sell price minus buy price; the sell always lives in the
// short queue, whichever side was the closing one.
func (m *matcher) matchHeads() {
	for len(m.longs) > 0 && len(m.shorts) > 0 {
		matched := m.longs[0].quantity.Min(m.shorts[0].quantity)
		gain := m.shorts[0].price.Sub(m.longs[0].price).Mul(matched)
		m.realized = m.realized.Add(gain)

		m.longs[0].quantity = m.longs[0].quantity.Sub(matched)
		m.shorts[0].quantity = m.shorts[0].quantity.Sub(matched)
		if m.longs[0].quantity.IsZero() {
			m.longs = m.longs[1:]
		}
		if len(m.shorts) > 0 && m.shorts[0].quantity.IsZero() {
			m.shorts = m.shorts[1:]
		}
	}
}

// net returns the signed net position: long lots minus short lots.
// After matching, at most one queue is non-empty.
func (m *matcher) net() Quantity {
	return m.longs.totalQuantity().Sub(m.shorts.totalQuantity())
}

// averageCost is the weighted average price of the open lots in the
// prevailing direction, always non-negative, rounded to 4 decimal
// places. A flat position costs 0, not an error.
func (m *matcher) averageCost() Money {
	var open lotQueue
	switch m.direction {
	case Long:
		open = m.longs
	case Short:
		open = m.shorts
	default:
		return Money{}
	}
	quantity := open.totalQuantity()
	if quantity.IsZero() {
		return Money{}
	}
	return open.totalValue().Div(quantity).Abs().Round(4)
}

func (m *matcher) snapshot(on daily.Date) PositionSnapshot {
	return PositionSnapshot{
		On:          on,
		NetQuantity: m.net(),
		AverageCost: m.averageCost(),
		RealizedPNL: m.realized,
	}
}
