package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/plant-shift-api/internal/models"
	"github.com/noah-isme/plant-shift-api/pkg/clock"
)

// fieldRule marks Field as required whenever Required holds; Present decides whether it is filled in.
// A nil Required means the field is always required.
type fieldRule struct {
	Field    string
	Required func(d *models.ShiftDraft) bool
	Present  func(d *models.ShiftDraft) bool
}

// panelState is an equipment panel as seen by the generic validator.
type panelState struct {
	key    string
	active bool
	value  interface{}
}

// sectionRules is the rule table entry of one section.
type sectionRules struct {
	fields []fieldRule
	panels func(d *models.ShiftDraft) []panelState
}

// SectionValidator decides section completeness from the declarative rule table.
// It never mutates the draft.
type SectionValidator struct {
	validate *validator.Validate
	rules    map[models.Section]sectionRules
}

// NewSectionValidator builds the validator. Panel readings are reported by their JSON names.
func NewSectionValidator(validate *validator.Validate) *SectionValidator {
	if validate == nil {
		validate = validator.New()
	}
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return &SectionValidator{validate: validate, rules: buildSectionRules()}
}

// Valid reports whether section is complete for draft.
func (v *SectionValidator) Valid(section models.Section, draft *models.ShiftDraft) bool {
	return len(v.Issues(section, draft)) == 0
}

// Issues lists the missing or inconsistent fields of section.
func (v *SectionValidator) Issues(section models.Section, draft *models.ShiftDraft) []string {
	if draft == nil {
		return []string{"draft"}
	}
	rules, ok := v.rules[section]
	if !ok {
		return []string{fmt.Sprintf("unknown section %d", int(section))}
	}
	issues := make([]string, 0)
	for _, rule := range rules.fields {
		if rule.Required != nil && !rule.Required(draft) {
			continue
		}
		if !rule.Present(draft) {
			issues = append(issues, rule.Field)
		}
	}
	if rules.panels != nil {
		for _, panel := range rules.panels(draft) {
			if !panel.active {
				continue
			}
			issues = append(issues, v.panelIssues(panel)...)
		}
	}
	return issues
}

// FirstInvalid returns the earliest incomplete section.
func (v *SectionValidator) FirstInvalid(draft *models.ShiftDraft) (models.Section, bool) {
	for section := models.FirstSection; section <= models.LastSection; section++ {
		if !v.Valid(section, draft) {
			return section, true
		}
	}
	return 0, false
}

// AllValid reports whether every section is complete.
func (v *SectionValidator) AllValid(draft *models.ShiftDraft) bool {
	_, invalid := v.FirstInvalid(draft)
	return !invalid
}

func (v *SectionValidator) panelIssues(panel panelState) []string {
	err := v.validate.Struct(panel.value)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{panel.key}
	}
	issues := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		ns := fe.Namespace()
		if idx := strings.Index(ns, "."); idx >= 0 {
			ns = ns[idx+1:]
		}
		issues = append(issues, panel.key+"."+ns)
	}
	return issues
}

func buildSectionRules() map[models.Section]sectionRules {
	return map[models.Section]sectionRules{
		models.SectionShiftInfo: {fields: shiftInfoRules()},
		models.SectionFeed:      {fields: feedRules()},
		models.SectionMills: {panels: func(d *models.ShiftDraft) []panelState {
			out := make([]panelState, 0, len(d.Equipment.Mills))
			for _, p := range d.Equipment.Mills {
				out = append(out, panelState{key: p.Key(), active: p.Active, value: p})
			}
			return out
		}},
		models.SectionCyclones: {panels: func(d *models.ShiftDraft) []panelState {
			out := make([]panelState, 0, len(d.Equipment.Cyclones))
			for _, p := range d.Equipment.Cyclones {
				out = append(out, panelState{key: p.Key(), active: p.Active, value: p})
			}
			return out
		}},
		models.SectionMagnets: {panels: func(d *models.ShiftDraft) []panelState {
			out := make([]panelState, 0, len(d.Equipment.Magnets))
			for _, p := range d.Equipment.Magnets {
				out = append(out, panelState{key: p.Key(), active: p.Active, value: p})
			}
			return out
		}},
		models.SectionConcentrateFilters: {panels: func(d *models.ShiftDraft) []panelState {
			out := make([]panelState, 0, len(d.Equipment.ConcentrateFilters))
			for _, p := range d.Equipment.ConcentrateFilters {
				out = append(out, panelState{key: p.Key(), active: p.Active, value: p})
			}
			return out
		}},
		models.SectionThickeners: {panels: func(d *models.ShiftDraft) []panelState {
			out := make([]panelState, 0, len(d.Equipment.Thickeners))
			for _, p := range d.Equipment.Thickeners {
				out = append(out, panelState{key: p.Key(), active: p.Active, value: p})
			}
			return out
		}},
		models.SectionRecoveryFilters: {panels: func(d *models.ShiftDraft) []panelState {
			out := make([]panelState, 0, len(d.Equipment.RecoveryFilters))
			for _, p := range d.Equipment.RecoveryFilters {
				out = append(out, panelState{key: p.Key(), active: p.Active, value: p})
			}
			return out
		}},
		models.SectionDowntime: {fields: downtimeRules()},
	}
}

func shiftInfoRules() []fieldRule {
	return []fieldRule{
		{Field: "info.date", Present: func(d *models.ShiftDraft) bool { return d.Info.Date.Valid() }},
		{Field: "info.duration", Present: func(d *models.ShiftDraft) bool {
			minutes, err := clock.ParseClockStrict(d.Info.Duration)
			return err == nil && minutes > 0
		}},
		{Field: "info.crew", Present: func(d *models.ShiftDraft) bool { return d.Info.Crew.Valid() }},
		{Field: "info.rotation_type", Present: func(d *models.ShiftDraft) bool { return d.Info.RotationType.OnDuty() }},
	}
}

func feedRules() []fieldRule {
	rules := make([]fieldRule, 0, len(models.ProductionLines)*models.HoursPerShift*5)
	for _, line := range models.ProductionLines {
		for hour := 1; hour <= models.HoursPerShift; hour++ {
			line, hour := line, hour
			prefix := fmt.Sprintf("feed.%s.%02d", line, hour)
			rules = append(rules, fieldRule{
				Field:    prefix + ".percent",
				Required: func(d *models.ShiftDraft) bool { return d.Feed.Tonnage(line, hour) > 0 },
				Present: func(d *models.ShiftDraft) bool {
					sum := d.Feed.Composition(line, hour).Sum()
					return sum > 0 && sum <= 100
				},
			})
			for slot := 0; slot < 2; slot++ {
				slot := slot
				rules = append(rules,
					fieldRule{
						Field:    fmt.Sprintf("%s.component_%d.percent", prefix, slot+1),
						Required: func(d *models.ShiftDraft) bool { return d.Feed.Composition(line, hour)[slot].SourceType != "" },
						Present:  func(d *models.ShiftDraft) bool { return d.Feed.Composition(line, hour)[slot].Percent > 0 },
					},
					fieldRule{
						Field:    fmt.Sprintf("%s.component_%d.source_type", prefix, slot+1),
						Required: func(d *models.ShiftDraft) bool { return d.Feed.Composition(line, hour)[slot].Percent > 0 },
						Present: func(d *models.ShiftDraft) bool {
							return strings.TrimSpace(d.Feed.Composition(line, hour)[slot].SourceType) != ""
						},
					},
				)
			}
		}
	}
	return rules
}

func downtimeRules() []fieldRule {
	rules := make([]fieldRule, 0, len(models.ProductionLines)*3)
	for _, line := range models.ProductionLines {
		line := line
		prefix := fmt.Sprintf("downtime.%s", line)
		rules = append(rules,
			fieldRule{
				Field: prefix + ".minutes",
				Present: func(d *models.ShiftDraft) bool {
					record := d.DowntimeFor(line)
					if record == nil {
						return false
					}
					if _, err := clock.ParseClockStrict(record.Worked); err != nil {
						return false
					}
					if _, err := clock.ParseClockStrict(record.Stopped); err != nil {
						return false
					}
					return record.WorkedMinutes()+record.StoppedMinutes() == d.ShiftMinutes()
				},
			},
			fieldRule{
				Field: prefix + ".reason",
				Required: func(d *models.ShiftDraft) bool {
					record := d.DowntimeFor(line)
					return record != nil && record.StoppedMinutes() > 0
				},
				Present: func(d *models.ShiftDraft) bool {
					return strings.TrimSpace(d.DowntimeFor(line).Reason) != ""
				},
			},
			fieldRule{
				Field: prefix + ".stoppages",
				Required: func(d *models.ShiftDraft) bool {
					record := d.DowntimeFor(line)
					return record != nil && len(record.Stoppages) > 0
				},
				Present: func(d *models.ShiftDraft) bool {
					record := d.DowntimeFor(line)
					for _, stop := range record.Stoppages {
						if !stop.Ordered() {
							return false
						}
					}
					return record.StoppageMinutes() == record.StoppedMinutes()
				},
			},
		)
	}
	return rules
}
