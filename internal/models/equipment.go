package models

import "fmt"

// MillPosition distinguishes the primary and secondary ball mill of a line.
type MillPosition string

const (
	MillPrimary   MillPosition = "PRIMARY"
	MillSecondary MillPosition = "SECONDARY"
)

// MagnetStage identifies a drum magnet bank within a line.
type MagnetStage string

const (
	MagnetRougher MagnetStage = "ROUGHER"
	MagnetCleaner MagnetStage = "CLEANER"
)

// ThickenerUnit identifies a thickener.
type ThickenerUnit string

const (
	ThickenerConcentrate ThickenerUnit = "CONCENTRATE"
	ThickenerTailings    ThickenerUnit = "TAILINGS"
)

// CyclonesPerCluster is the number of hydrocyclones in each line's cluster.
const CyclonesPerCluster = 8

// MagnetPositions lists the selectable drum positions on a magnet bank.
var MagnetPositions = []string{"1", "2", "3", "4"}

// ThickenerReadingTimes returns the four fixed sample times of a shift.
func ThickenerReadingTimes(rotation RotationLabel) [4]string {
	if rotation.Night() {
		return [4]string{"20:00", "23:00", "02:00", "05:00"}
	}
	return [4]string{"08:00", "11:00", "14:00", "17:00"}
}

// BallMillPanel records one ball mill. Readings are required only while Active.
type BallMillPanel struct {
	Line               ProductionLine `json:"line"`
	Position           MillPosition   `json:"position"`
	Active             bool           `json:"active"`
	OperatorID         string         `json:"operator_id" validate:"required"`
	PowerKW            *float64       `json:"power_kw" validate:"required,gte=0"`
	BearingTemperature *float64       `json:"bearing_temperature" validate:"required"`
	PulpDensity        *float64       `json:"pulp_density" validate:"required,gt=0"`
}

// Key names the panel in validation messages.
func (p BallMillPanel) Key() string {
	return fmt.Sprintf("mill.%s.%s", p.Line, p.Position)
}

// CyclonePanel records a line's hydrocyclone cluster.
type CyclonePanel struct {
	Line            ProductionLine `json:"line"`
	Active          bool           `json:"active"`
	FeedPressure    *float64       `json:"feed_pressure" validate:"required,gte=0"`
	OverflowDensity *float64       `json:"overflow_density" validate:"required,gt=0"`
	ActiveCyclones  []int          `json:"active_cyclones" validate:"min=1,dive,min=1,max=8"`
}

// Key names the panel in validation messages.
func (p CyclonePanel) Key() string {
	return fmt.Sprintf("cyclone.%s", p.Line)
}

// MagnetPanel records a drum magnet bank.
type MagnetPanel struct {
	Line            ProductionLine `json:"line"`
	Stage           MagnetStage    `json:"stage"`
	Active          bool           `json:"active"`
	DrumSpeed       *float64       `json:"drum_speed" validate:"required,gte=0"`
	FieldStrength   *float64       `json:"field_strength" validate:"required,gte=0"`
	ActivePositions []string       `json:"active_positions" validate:"min=1,dive,oneof=1 2 3 4"`
}

// Key names the panel in validation messages.
func (p MagnetPanel) Key() string {
	return fmt.Sprintf("magnet.%s.%s", p.Line, p.Stage)
}

// ConcentrateFilterPanel records a disc filter on the concentrate circuit.
type ConcentrateFilterPanel struct {
	Unit           int      `json:"unit"`
	Active         bool     `json:"active"`
	VacuumPressure *float64 `json:"vacuum_pressure" validate:"required"`
	CakeMoisture   *float64 `json:"cake_moisture" validate:"required,gte=0,lte=100"`
	DiscSpeed      *float64 `json:"disc_speed" validate:"required,gte=0"`
}

// Key names the panel in validation messages.
func (p ConcentrateFilterPanel) Key() string {
	return fmt.Sprintf("concentrate_filter.%d", p.Unit)
}

// ThickenerReading is one of the four timed samples taken on a thickener.
type ThickenerReading struct {
	Time             string   `json:"time" validate:"required"`
	UnderflowDensity *float64 `json:"underflow_density" validate:"required,gt=0"`
	RakeTorque       *float64 `json:"rake_torque" validate:"required,gte=0"`
	BedLevel         *float64 `json:"bed_level" validate:"required,gte=0"`
}

// ThickenerPanel records a thickener and its four timed readings.
type ThickenerPanel struct {
	Unit     ThickenerUnit       `json:"unit"`
	Active   bool                `json:"active"`
	Readings [4]ThickenerReading `json:"readings" validate:"dive"`
}

// Key names the panel in validation messages.
func (p ThickenerPanel) Key() string {
	return fmt.Sprintf("thickener.%s", p.Unit)
}

// RecoveryFilterPanel records a tailings water recovery filter.
type RecoveryFilterPanel struct {
	Unit           int      `json:"unit"`
	Active         bool     `json:"active"`
	VacuumPressure *float64 `json:"vacuum_pressure" validate:"required"`
	FeedRate       *float64 `json:"feed_rate" validate:"required,gte=0"`
}

// Key names the panel in validation messages.
func (p RecoveryFilterPanel) Key() string {
	return fmt.Sprintf("recovery_filter.%d", p.Unit)
}

// Equipment groups every equipment panel of the report.
type Equipment struct {
	Mills              []BallMillPanel          `json:"mills"`
	Cyclones           []CyclonePanel           `json:"cyclones"`
	Magnets            []MagnetPanel            `json:"magnets"`
	ConcentrateFilters []ConcentrateFilterPanel `json:"concentrate_filters"`
	Thickeners         []ThickenerPanel         `json:"thickeners"`
	RecoveryFilters    []RecoveryFilterPanel    `json:"recovery_filters"`
}

const (
	concentrateFilterUnits = 2
	recoveryFilterUnits    = 2
)

// DefaultEquipment lays out every panel of the plant, all inactive.
func DefaultEquipment(rotation RotationLabel) Equipment {
	var eq Equipment
	for _, line := range ProductionLines {
		eq.Mills = append(eq.Mills,
			BallMillPanel{Line: line, Position: MillPrimary},
			BallMillPanel{Line: line, Position: MillSecondary},
		)
		eq.Cyclones = append(eq.Cyclones, CyclonePanel{Line: line})
		eq.Magnets = append(eq.Magnets,
			MagnetPanel{Line: line, Stage: MagnetRougher},
			MagnetPanel{Line: line, Stage: MagnetCleaner},
		)
	}
	for unit := 1; unit <= concentrateFilterUnits; unit++ {
		eq.ConcentrateFilters = append(eq.ConcentrateFilters, ConcentrateFilterPanel{Unit: unit})
	}
	times := ThickenerReadingTimes(rotation)
	for _, unit := range []ThickenerUnit{ThickenerConcentrate, ThickenerTailings} {
		panel := ThickenerPanel{Unit: unit}
		for i, t := range times {
			panel.Readings[i].Time = t
		}
		eq.Thickeners = append(eq.Thickeners, panel)
	}
	for unit := 1; unit <= recoveryFilterUnits; unit++ {
		eq.RecoveryFilters = append(eq.RecoveryFilters, RecoveryFilterPanel{Unit: unit})
	}
	return eq
}

// Pumps lists the pump toggles shown on the downtime section.
var Pumps = []string{"slurry_pump_1", "slurry_pump_2", "water_pump", "tailings_pump"}
