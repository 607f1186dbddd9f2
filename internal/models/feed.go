package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	appErrors "github.com/noah-isme/plant-shift-api/pkg/errors"
)

// FeedComponent is one of the two feed sources blended on an hour.
type FeedComponent struct {
	SourceType string  `json:"source_type"`
	Percent    float64 `json:"percent"`
	Custom     bool    `json:"custom"`
}

// Empty reports whether nothing was chosen for the component.
func (c FeedComponent) Empty() bool {
	return c.SourceType == "" && c.Percent == 0
}

// FeedComposition is the ordered pair of feed components for an hour.
type FeedComposition [2]FeedComponent

// Sum returns the combined percentage.
func (c FeedComposition) Sum() float64 {
	return c[0].Percent + c[1].Percent
}

// FeedComponentUpdate changes the type and/or the percentage of one component.
type FeedComponentUpdate struct {
	SourceType *string  `json:"source_type,omitempty"`
	Percent    *float64 `json:"percent,omitempty"`
	Custom     *bool    `json:"custom,omitempty"`
}

// HourlyFeedSlot is the resolved view of one line-hour.
type HourlyFeedSlot struct {
	Line       ProductionLine  `json:"line"`
	Hour       int             `json:"hour"`
	Label      string          `json:"label"`
	Tonnage    float64         `json:"tonnage"`
	Components FeedComposition `json:"components"`
}

// FeedAllocation tracks hourly tonnage and feed composition per line. Both series are
// forward-filled: an explicit write at hour N holds for every later hour until a later
// write, and a write at N replaces any explicit writes after N.
type FeedAllocation struct {
	lines map[ProductionLine]*lineFeed
}

type lineFeed struct {
	tonnage         map[int]float64
	lastTonnage     int
	composition     map[int]FeedComposition
	lastComposition int
}

// NewFeedAllocation returns an allocation where every hour reads zero.
func NewFeedAllocation() *FeedAllocation {
	return &FeedAllocation{lines: make(map[ProductionLine]*lineFeed)}
}

func newLineFeed() *lineFeed {
	return &lineFeed{tonnage: make(map[int]float64), composition: make(map[int]FeedComposition)}
}

func (f *FeedAllocation) line(line ProductionLine) *lineFeed {
	if f.lines == nil {
		f.lines = make(map[ProductionLine]*lineFeed)
	}
	lf, ok := f.lines[line]
	if !ok {
		lf = newLineFeed()
		f.lines[line] = lf
	}
	return lf
}

func checkSlot(line ProductionLine, hour int) error {
	if !line.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown production line %q", line))
	}
	if hour < 1 || hour > HoursPerShift {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("hour must be between 1 and %d", HoursPerShift))
	}
	return nil
}

// SetTonnage sets the tonnage for hour and every later hour of the line.
func (f *FeedAllocation) SetTonnage(line ProductionLine, hour int, value float64) error {
	if err := checkSlot(line, hour); err != nil {
		return err
	}
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return appErrors.Clone(appErrors.ErrValidation, "tonnage must be a non-negative number")
	}
	lf := f.line(line)
	for h := range lf.tonnage {
		if h > hour {
			delete(lf.tonnage, h)
		}
	}
	lf.tonnage[hour] = value
	lf.lastTonnage = hour
	return nil
}

// Tonnage resolves the tonnage in effect at hour.
func (f *FeedAllocation) Tonnage(line ProductionLine, hour int) float64 {
	if f == nil {
		return 0
	}
	lf, ok := f.lines[line]
	if !ok {
		return 0
	}
	if lf.lastTonnage > 0 && hour >= lf.lastTonnage {
		return lf.tonnage[lf.lastTonnage]
	}
	for h := hour; h >= 1; h-- {
		if v, ok := lf.tonnage[h]; ok {
			return v
		}
	}
	return 0
}

// Composition resolves the feed composition in effect at hour.
func (f *FeedAllocation) Composition(line ProductionLine, hour int) FeedComposition {
	if f == nil {
		return FeedComposition{}
	}
	lf, ok := f.lines[line]
	if !ok {
		return FeedComposition{}
	}
	if lf.lastComposition > 0 && hour >= lf.lastComposition {
		return lf.composition[lf.lastComposition]
	}
	for h := hour; h >= 1; h-- {
		if v, ok := lf.composition[h]; ok {
			return v
		}
	}
	return FeedComposition{}
}

// SetFeedComponent updates one component of the composition at hour and writes the whole
// resulting pair from hour onward. The update is rejected, leaving state unchanged, when it
// would break the allocation rules. Setting the first component to 100% clears the second;
// dropping it to 0% clears the second as well.
func (f *FeedAllocation) SetFeedComponent(line ProductionLine, hour, slot int, update FeedComponentUpdate) error {
	if err := checkSlot(line, hour); err != nil {
		return err
	}
	if slot != 0 && slot != 1 {
		return appErrors.Clone(appErrors.ErrValidation, "feed component slot must be 0 or 1")
	}
	next := f.Composition(line, hour)
	component := next[slot]
	if update.SourceType != nil {
		component.SourceType = *update.SourceType
	}
	if update.Custom != nil {
		component.Custom = *update.Custom
	}
	if update.Percent != nil {
		p := *update.Percent
		if p < 0 || p > 100 || math.IsNaN(p) {
			return appErrors.Clone(appErrors.ErrValidation, "feed percentage must be between 0 and 100")
		}
		component.Percent = p
	}
	next[slot] = component

	if slot == 0 && (next[0].Percent >= 100 || next[0].Percent == 0) {
		next[1] = FeedComponent{}
	}
	if next.Sum() > 100 {
		return appErrors.Clone(appErrors.ErrValidation, "feed percentages cannot exceed 100 in total")
	}
	if !next[1].Empty() && (next[0].Percent <= 0 || next[0].Percent >= 100) {
		return appErrors.Clone(appErrors.ErrValidation, "second feed component requires the first to be between 0 and 100")
	}

	lf := f.line(line)
	for h := range lf.composition {
		if h > hour {
			delete(lf.composition, h)
		}
	}
	lf.composition[hour] = next
	lf.lastComposition = hour
	return nil
}

// Slots returns the resolved hourly view of a line.
func (f *FeedAllocation) Slots(line ProductionLine, rotation RotationLabel) []HourlyFeedSlot {
	slots := make([]HourlyFeedSlot, 0, HoursPerShift)
	for hour := 1; hour <= HoursPerShift; hour++ {
		slots = append(slots, HourlyFeedSlot{
			Line:       line,
			Hour:       hour,
			Label:      HourLabel(rotation, hour),
			Tonnage:    f.Tonnage(line, hour),
			Components: f.Composition(line, hour),
		})
	}
	return slots
}

// TotalTonnage sums the resolved hourly tonnage of a line.
func (f *FeedAllocation) TotalTonnage(line ProductionLine) float64 {
	total := 0.0
	for hour := 1; hour <= HoursPerShift; hour++ {
		total += f.Tonnage(line, hour)
	}
	return total
}

// Clone returns an independent copy.
func (f *FeedAllocation) Clone() *FeedAllocation {
	out := NewFeedAllocation()
	if f == nil {
		return out
	}
	for line, lf := range f.lines {
		copyLine := newLineFeed()
		for h, v := range lf.tonnage {
			copyLine.tonnage[h] = v
		}
		for h, v := range lf.composition {
			copyLine.composition[h] = v
		}
		copyLine.lastTonnage = lf.lastTonnage
		copyLine.lastComposition = lf.lastComposition
		out.lines[line] = copyLine
	}
	return out
}

type feedLineJSON struct {
	Tonnage     map[string]float64         `json:"tonnage"`
	Composition map[string]FeedComposition `json:"composition"`
}

// MarshalJSON stores only the explicit writes.
func (f *FeedAllocation) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("{}"), nil
	}
	out := make(map[ProductionLine]feedLineJSON, len(f.lines))
	for line, lf := range f.lines {
		entry := feedLineJSON{
			Tonnage:     make(map[string]float64, len(lf.tonnage)),
			Composition: make(map[string]FeedComposition, len(lf.composition)),
		}
		for h, v := range lf.tonnage {
			entry.Tonnage[strconv.Itoa(h)] = v
		}
		for h, v := range lf.composition {
			entry.Composition[strconv.Itoa(h)] = v
		}
		out[line] = entry
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores explicit writes and the last-write pointers.
func (f *FeedAllocation) UnmarshalJSON(data []byte) error {
	var raw map[ProductionLine]feedLineJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshal feed allocation: %w", err)
	}
	f.lines = make(map[ProductionLine]*lineFeed, len(raw))
	for line, entry := range raw {
		if !line.Valid() {
			return fmt.Errorf("unknown production line %q", line)
		}
		lf := newLineFeed()
		for key, v := range entry.Tonnage {
			h, err := parseHourKey(key)
			if err != nil {
				return err
			}
			lf.tonnage[h] = v
		}
		for key, v := range entry.Composition {
			h, err := parseHourKey(key)
			if err != nil {
				return err
			}
			lf.composition[h] = v
		}
		lf.lastTonnage = maxKey(lf.tonnage)
		lf.lastComposition = maxKeyComposition(lf.composition)
		f.lines[line] = lf
	}
	return nil
}

func parseHourKey(key string) (int, error) {
	h, err := strconv.Atoi(key)
	if err != nil || h < 1 || h > HoursPerShift {
		return 0, fmt.Errorf("invalid feed hour %q", key)
	}
	return h, nil
}

func maxKey(m map[int]float64) int {
	last := 0
	for k := range m {
		if k > last {
			last = k
		}
	}
	return last
}

func maxKeyComposition(m map[int]FeedComposition) int {
	last := 0
	for k := range m {
		if k > last {
			last = k
		}
	}
	return last
}
