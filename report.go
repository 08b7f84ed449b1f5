package folio

import (
	"github.com/openfolio/folio/daily"
)

// Default shape of the dashboard summary views.
const (
	// TopExposureCount is how many named slices the exposure pie keeps
	// before collapsing the rest into "Other".
	TopExposureCount = 6
	// BarExposureCount is how many positions the exposure bar chart shows.
	BarExposureCount = 5
	// LastPositionCap is how many per-ticker positions the dashboard lists.
	LastPositionCap = 7
)

// Dashboard is the one-page summary of a watchlist on its most recent
// valuation date, assembled once and handed to the presentation layer.
type Dashboard struct {
	Name      string
	On        daily.Date
	NetValue  Money
	Return    Percent // holding-period return of the latest date
	Top       []Exposure
	Bars      []Exposure
	Positions []LastPosition
}

// NewDashboard values the watchlist against the market database and
// derives all the summary views. A watchlist with no valuable position
// yields a dashboard with a zero date and empty views, not an error.
func NewDashboard(w *Watchlist, market *MarketData) (*Dashboard, error) {
	positions, err := w.Positions()
	if err != nil {
		return nil, err
	}
	valuation, err := w.Valuation(market)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Name:      w.Name(),
		Top:       valuation.TopExposures(TopExposureCount),
		Bars:      valuation.BarExposures(BarExposureCount),
		Positions: LastPositions(positions, LastPositionCap),
	}
	if !valuation.IsEmpty() {
		net := valuation.NetSeries()
		d.On, d.NetValue = net.Latest()
		_, d.Return = HPR(valuation, w.Flows()).Latest()
	}
	return d, nil
}
