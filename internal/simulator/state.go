package simulator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/quantbench/stock-screener/internal/errors"
	"github.com/quantbench/stock-screener/internal/portfolio"
)

// stateDocument is the on-disk shape of a simulator between cycles.
type stateDocument struct {
	SavedAt  time.Time `json:"saved_at"`
	Strategy string    `json:"strategy"`
	Cash     float64   `json:"cash"`

	Positions []positionSnapshot      `json:"positions"`
	Curve     []portfolio.EquityPoint `json:"equity_curve"`
}

// positionSnapshot captures the fields needed to rebuild an active
// position, including the trailing distance the ratchet depends on.
type positionSnapshot struct {
	Symbol          string    `json:"symbol"`
	Strategy        string    `json:"strategy"`
	Side            string    `json:"side"`
	EntryDate       time.Time `json:"entry_date"`
	EntryPrice      float64   `json:"entry_price"`
	EntryCommission float64   `json:"entry_commission"`
	Quantity        float64   `json:"quantity"`
	StopLoss        float64   `json:"stop_loss"`
	ProfitTarget    float64   `json:"profit_target"`
	TrailDistance   float64   `json:"trail_distance"`
	CurrentPrice    float64   `json:"current_price"`
	BarsHeld        int       `json:"bars_held"`
	MaxHoldingDays  int       `json:"max_holding_days"`
}

// SaveState persists cash, open positions and the equity curve so the
// next cycle can resume where this one stopped.
func (s *Simulator) SaveState(path string) error {
	doc := stateDocument{
		SavedAt:  time.Now().UTC(),
		Strategy: s.params.Name,
		Cash:     s.cash,
		Curve:    s.curve,
	}

	for _, p := range s.tracker.OpenPositions() {
		doc.Positions = append(doc.Positions, positionSnapshot{
			Symbol:          p.Symbol,
			Strategy:        p.Strategy,
			Side:            p.Side.String(),
			EntryDate:       p.EntryDate,
			EntryPrice:      p.EntryPrice,
			EntryCommission: p.EntryCommission,
			Quantity:        p.Quantity,
			StopLoss:        p.StopLoss,
			ProfitTarget:    p.ProfitTarget,
			TrailDistance:   p.TrailDistance(),
			CurrentPrice:    p.CurrentPrice,
			BarsHeld:        p.BarsHeld,
			MaxHoldingDays:  p.MaxHoldingDays,
		})
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(err, errors.ErrorCategoryFatal, "simulator", "save state")
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrorCategoryFatal, "simulator", "save state")
	}

	return os.WriteFile(path, data, 0644)
}

// RestoreState rehydrates a previously saved cycle. A missing file is
// not an error; the simulator simply starts fresh.
func (s *Simulator) RestoreState(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, errors.ErrorCategoryConfiguration, "simulator", "restore state")
	}

	var doc stateDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(err, errors.ErrorCategoryConfiguration, "simulator", "restore state")
	}

	// State saved under a different strategy would make the sizing and
	// exit rules lie about the open book.
	if doc.Strategy != "" && doc.Strategy != s.params.Name {
		return errors.New(errors.ErrorCategoryConfiguration, "simulator", "restore state",
			"state file belongs to strategy "+doc.Strategy)
	}

	s.cash = doc.Cash
	s.curve = doc.Curve

	for _, snap := range doc.Positions {
		side := portfolio.SideLong
		if snap.Side == portfolio.SideShort.String() {
			side = portfolio.SideShort
		}

		p := portfolio.NewPosition(snap.Symbol, snap.Strategy, side,
			snap.Quantity, snap.StopLoss, snap.ProfitTarget, snap.MaxHoldingDays)
		p.Activate(snap.EntryPrice, snap.EntryDate)
		p.EntryCommission = snap.EntryCommission
		p.CurrentPrice = snap.CurrentPrice
		p.BarsHeld = snap.BarsHeld
		p.SetTrailDistance(snap.TrailDistance)

		if !s.tracker.Adopt(p) {
			s.logger.Warnw("could not adopt persisted position", "symbol", snap.Symbol)
		}
	}

	s.logger.Infow("state restored",
		"cash", s.cash,
		"open_positions", len(doc.Positions),
		"saved_at", doc.SavedAt)
	return nil
}
