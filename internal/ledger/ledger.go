// Package ledger owns the expense record lifecycle: drafts are
// confirmed into a persisted ordered list, records can be loaded back
// into a draft for editing, and every mutation flushes the full list
// to the store. Store failures degrade to in-memory state; they are
// logged, never fatal.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"gyeongbi/internal/core"
	"gyeongbi/internal/store"
)

var (
	// ErrNothingToRecord blocks confirmation of a draft whose
	// computed total is zero.
	ErrNothingToRecord = errors.New("nothing to record: total cost is zero")
	ErrRecordNotFound  = errors.New("expense record not found")
)

// VehicleCacheTTL is how long the last-used vehicle pre-fill stays
// valid.
const VehicleCacheTTL = 24 * time.Hour

// PriceSource resolves the per-liter price used when confirming a
// draft.
type PriceSource interface {
	PricePerLiter(ctx context.Context, fuel core.FuelType, override int64) int64
}

// Draft is an in-progress expense form. Route and Vehicle may be nil
// while the user is still filling it in; a draft without both still
// confirms as long as incidentals make the total non-zero. EditingID
// is set when the draft was produced by Edit and re-confirmation must
// replace the original record in place.
type Draft struct {
	Date          string                  `json:"date"`
	Route         *core.RouteCandidate    `json:"route,omitempty"`
	Vehicle       *core.VehicleSelection  `json:"vehicle,omitempty"`
	Incidentals   core.IncidentalExpenses `json:"incidentals"`
	PriceOverride int64                   `json:"priceOverride,omitempty"`
	Form          core.RouteForm          `json:"form"`
	Memo          string                  `json:"memo,omitempty"`
	EditingID     string                  `json:"editingId,omitempty"`
}

type vehicleCache struct {
	Vehicle   *core.VehicleSelection `json:"vehicle"`
	Timestamp int64                  `json:"timestamp"` // epoch millis
}

// Ledger is the single owner of the persisted record list. All state
// lives in memory; the store is a flush target and a cold-start
// source.
type Ledger struct {
	kv     store.KV
	prices PriceSource
	now    func() time.Time
	newID  func() string

	mu      sync.Mutex
	loaded  bool
	records []core.ExpenseRecord
}

func New(kv store.KV, prices PriceSource) *Ledger {
	return &Ledger{
		kv:     kv,
		prices: prices,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Records returns a copy of the persisted list in insertion order.
func (l *Ledger) Records(ctx context.Context) []core.ExpenseRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ensureLoaded(ctx)
	out := make([]core.ExpenseRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Get returns one record by id.
func (l *Ledger) Get(ctx context.Context, id string) (core.ExpenseRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ensureLoaded(ctx)
	for _, r := range l.records {
		if r.ID == id {
			return r, nil
		}
	}
	return core.ExpenseRecord{}, ErrRecordNotFound
}

// Confirm turns a draft into a persisted record. A draft with
// EditingID replaces the original record in place, keeping its id and
// position; otherwise a new record is appended. The last-used vehicle
// cache is refreshed when the draft carries a vehicle.
func (l *Ledger) Confirm(ctx context.Context, d Draft) (core.ExpenseRecord, error) {
	if err := core.ValidateDate(d.Date); err != nil {
		return core.ExpenseRecord{}, err
	}

	var routeVal core.RouteCandidate
	var vehicleVal core.VehicleSelection
	if d.Route != nil {
		if err := d.Route.Validate(); err != nil {
			return core.ExpenseRecord{}, err
		}
		routeVal = *d.Route
	}
	if d.Vehicle != nil {
		if err := d.Vehicle.Validate(); err != nil {
			return core.ExpenseRecord{}, err
		}
		vehicleVal = *d.Vehicle
	}
	if err := d.Incidentals.Validate(); err != nil {
		return core.ExpenseRecord{}, err
	}

	// A trip costs fuel and toll only when both a route and a vehicle
	// were selected; otherwise the record carries the route data but
	// the breakdown is incidentals only.
	var price int64
	var costRoute core.RouteCandidate
	if d.Route != nil && d.Vehicle != nil {
		price = l.prices.PricePerLiter(ctx, vehicleVal.FuelType, d.PriceOverride)
		costRoute = routeVal
	}
	breakdown := core.TotalCost(costRoute, vehicleVal, price, d.Incidentals)
	if breakdown.Total == 0 {
		return core.ExpenseRecord{}, ErrNothingToRecord
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.ensureLoaded(ctx)

	rec := core.ExpenseRecord{
		ID:          d.EditingID,
		Date:        d.Date,
		Route:       routeVal,
		Vehicle:     vehicleVal,
		Incidentals: d.Incidentals,
		Breakdown:   breakdown,
		Form:        d.Form,
		Memo:        d.Memo,
		CreatedAt:   l.now(),
	}

	if d.EditingID != "" {
		replaced := false
		for i := range l.records {
			if l.records[i].ID == d.EditingID {
				rec.CreatedAt = l.records[i].CreatedAt
				l.records[i] = rec
				replaced = true
				break
			}
		}
		if !replaced {
			return core.ExpenseRecord{}, ErrRecordNotFound
		}
	} else {
		rec.ID = l.newID()
		l.records = append(l.records, rec)
	}

	l.flush(ctx)
	if d.Vehicle != nil {
		l.saveVehicleCache(ctx, d.Vehicle)
	}
	return rec, nil
}

// Edit loads a persisted record back into a draft, restoring the
// route, vehicle, incidentals and the input-mode snapshot so the form
// can re-open the original entry pathway.
func (l *Ledger) Edit(ctx context.Context, id string) (Draft, error) {
	rec, err := l.Get(ctx, id)
	if err != nil {
		return Draft{}, err
	}
	d := Draft{
		Date:        rec.Date,
		Incidentals: rec.Incidentals,
		Form:        rec.Form,
		Memo:        rec.Memo,
		EditingID:   rec.ID,
	}
	if rec.Route != (core.RouteCandidate{}) {
		r := rec.Route
		d.Route = &r
	}
	if rec.Vehicle != (core.VehicleSelection{}) {
		v := rec.Vehicle
		d.Vehicle = &v
	}
	return d, nil
}

// Delete removes one record and flushes.
func (l *Ledger) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ensureLoaded(ctx)
	for i := range l.records {
		if l.records[i].ID == id {
			l.records = append(l.records[:i], l.records[i+1:]...)
			l.flush(ctx)
			return nil
		}
	}
	return ErrRecordNotFound
}

// DeleteAll clears the list and flushes.
func (l *Ledger) DeleteAll(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ensureLoaded(ctx)
	l.records = l.records[:0]
	l.flush(ctx)
}

// LastVehicle returns the most recently used vehicle if it was used
// within the cache window, for pre-filling new drafts. Advisory only:
// a missing, stale or unreadable cache yields nil.
func (l *Ledger) LastVehicle(ctx context.Context) *core.VehicleSelection {
	raw, ok, err := l.kv.Get(ctx, store.KeyTripCache)
	if err != nil {
		slog.WarnContext(ctx, "vehicle cache read failed", "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	var c vehicleCache
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		slog.WarnContext(ctx, "vehicle cache corrupt", "error", err)
		return nil
	}
	if c.Vehicle == nil {
		return nil
	}
	cachedAt := time.UnixMilli(c.Timestamp)
	if l.now().Sub(cachedAt) > VehicleCacheTTL {
		return nil
	}
	return c.Vehicle
}

// Reload drops the cached list so the next read goes back to the
// store. A process sharing the store with another writer calls this
// to pick up writes made elsewhere.
func (l *Ledger) Reload() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loaded = false
	l.records = nil
}

// ensureLoaded reads the persisted list once, on first use. Callers
// must hold l.mu.
func (l *Ledger) ensureLoaded(ctx context.Context) {
	if l.loaded {
		return
	}
	l.loaded = true
	raw, ok, err := l.kv.Get(ctx, store.KeyExpenseList)
	if err != nil {
		slog.WarnContext(ctx, "expense list read failed, starting empty", "error", err)
		return
	}
	if !ok {
		return
	}
	var records []core.ExpenseRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		slog.WarnContext(ctx, "expense list corrupt, starting empty", "error", err)
		return
	}
	l.records = records
}

// flush writes the whole list. List sizes are small, so no
// incremental persistence. Callers must hold l.mu.
func (l *Ledger) flush(ctx context.Context) {
	data, err := json.Marshal(l.records)
	if err != nil {
		slog.ErrorContext(ctx, "marshal expense list failed", "error", err)
		return
	}
	if err := l.kv.Set(ctx, store.KeyExpenseList, string(data)); err != nil {
		slog.WarnContext(ctx, "expense list flush failed", "error", err, "records", len(l.records))
	}
}

func (l *Ledger) saveVehicleCache(ctx context.Context, v *core.VehicleSelection) {
	data, err := json.Marshal(vehicleCache{Vehicle: v, Timestamp: l.now().UnixMilli()})
	if err != nil {
		slog.ErrorContext(ctx, "marshal vehicle cache failed", "error", err)
		return
	}
	if err := l.kv.Set(ctx, store.KeyTripCache, string(data)); err != nil {
		slog.WarnContext(ctx, "vehicle cache write failed", "error", err)
	}
}
