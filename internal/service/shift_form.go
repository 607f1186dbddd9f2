package service

import (
	"context"
	"fmt"

	"github.com/noah-isme/plant-shift-api/internal/models"
	appErrors "github.com/noah-isme/plant-shift-api/pkg/errors"
)

type reportSubmitter interface {
	Submit(ctx context.Context, userID string, draft *models.ShiftDraft) (*models.ShiftReport, error)
}

// SectionStatus is the completeness of one section.
type SectionStatus struct {
	Section models.Section `json:"section"`
	Name    string         `json:"name"`
	Valid   bool           `json:"valid"`
}

// FormState is the navigation view of a shift form.
type FormState struct {
	Current    models.Section  `json:"current"`
	CanAdvance bool            `json:"can_advance"`
	CanRetreat bool            `json:"can_retreat"`
	CanSubmit  bool            `json:"can_submit"`
	Issues     []string        `json:"issues"`
	Sections   []SectionStatus `json:"sections"`
}

// ShiftForm drives the nine-section form for one user's draft. Forward moves are gated by the
// current section's rules; backward moves are always allowed and keep entered data.
type ShiftForm struct {
	userID   string
	draft    *models.ShiftDraft
	sections *SectionValidator
}

// NewShiftForm binds the form to the initiating user and their draft.
func NewShiftForm(userID string, draft *models.ShiftDraft, sections *SectionValidator) (*ShiftForm, error) {
	if draft == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "shift draft not found")
	}
	if userID == "" || draft.OwnerID != userID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "draft belongs to another user")
	}
	if sections == nil {
		sections = NewSectionValidator(nil)
	}
	if !draft.Section.Valid() {
		draft.Section = models.FirstSection
	}
	return &ShiftForm{userID: userID, draft: draft, sections: sections}, nil
}

// Draft returns the bound draft.
func (f *ShiftForm) Draft() *models.ShiftDraft {
	return f.draft
}

// Current returns the active section.
func (f *ShiftForm) Current() models.Section {
	return f.draft.Section
}

// CanAdvance reports whether the current section is complete.
func (f *ShiftForm) CanAdvance() bool {
	return f.sections.Valid(f.draft.Section, f.draft)
}

// CanRetreat reports whether there is a previous section.
func (f *ShiftForm) CanRetreat() bool {
	return f.draft.Section > models.FirstSection
}

// CanSubmit reports whether every section is complete.
func (f *ShiftForm) CanSubmit() bool {
	return f.sections.AllValid(f.draft)
}

// State summarises navigation for the current draft.
func (f *ShiftForm) State() FormState {
	state := FormState{
		Current:    f.draft.Section,
		CanAdvance: f.CanAdvance(),
		CanRetreat: f.CanRetreat(),
		Issues:     f.sections.Issues(f.draft.Section, f.draft),
		Sections:   make([]SectionStatus, 0, int(models.LastSection)),
	}
	allValid := true
	for section := models.FirstSection; section <= models.LastSection; section++ {
		valid := f.sections.Valid(section, f.draft)
		allValid = allValid && valid
		state.Sections = append(state.Sections, SectionStatus{Section: section, Name: section.String(), Valid: valid})
	}
	state.CanSubmit = allValid
	return state
}

// Advance moves to the next section when the current one is complete.
func (f *ShiftForm) Advance() error {
	if f.draft.Section >= models.LastSection {
		return appErrors.Clone(appErrors.ErrNavigation, "already at the last section")
	}
	if issues := f.sections.Issues(f.draft.Section, f.draft); len(issues) > 0 {
		return appErrors.WithDetails(appErrors.ErrSectionIncomplete, fmt.Sprintf("section %s is incomplete", f.draft.Section), issues)
	}
	f.draft.Section++
	return nil
}

// Retreat moves to the previous section.
func (f *ShiftForm) Retreat() error {
	if !f.CanRetreat() {
		return appErrors.Clone(appErrors.ErrNavigation, "already at the first section")
	}
	f.draft.Section--
	return nil
}

// GoTo jumps backward to any earlier section or forward by exactly one step.
func (f *ShiftForm) GoTo(target models.Section) error {
	if !target.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown section %d", int(target)))
	}
	switch {
	case target == f.draft.Section:
		return nil
	case target < f.draft.Section:
		f.draft.Section = target
		return nil
	case target == f.draft.Section+1:
		return f.Advance()
	default:
		return appErrors.Clone(appErrors.ErrNavigation, fmt.Sprintf("cannot skip from section %s to %s", f.draft.Section, target))
	}
}

// Submit hands the draft to submitter once every section is complete. An incomplete form is
// rejected before submitter is called.
func (f *ShiftForm) Submit(ctx context.Context, submitter reportSubmitter) (*models.ShiftReport, error) {
	if section, invalid := f.sections.FirstInvalid(f.draft); invalid {
		return nil, appErrors.WithDetails(appErrors.ErrSectionIncomplete,
			fmt.Sprintf("section %s is incomplete", section), f.sections.Issues(section, f.draft))
	}
	return submitter.Submit(ctx, f.userID, f.draft)
}
