package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/plant-shift-api/internal/models"
	"github.com/noah-isme/plant-shift-api/pkg/clock"
	appErrors "github.com/noah-isme/plant-shift-api/pkg/errors"
	"github.com/noah-isme/plant-shift-api/pkg/jalali"
	"github.com/noah-isme/plant-shift-api/pkg/middleware/requestid"
)

type draftStore interface {
	Get(ctx context.Context, ownerID string) (*models.ShiftDraft, error)
	Save(ctx context.Context, draft *models.ShiftDraft, ttl time.Duration) error
	Delete(ctx context.Context, ownerID string) error
	Exists(ctx context.Context, ownerID string) (bool, error)
}

type personnelReader interface {
	GetByID(ctx context.Context, id string) (*models.Personnel, error)
}

type crewResolver interface {
	CrewOnDuty(date jalali.Date, label models.RotationLabel) (models.Crew, error)
}

type archiveScheduler interface {
	ScheduleArchive(report *models.ShiftReport) error
}

// DraftConfig tunes draft handling.
type DraftConfig struct {
	TTL             time.Duration
	DefaultDuration string
}

// DraftService runs the shift form for each user over drafts kept in the draft store.
type DraftService struct {
	store     draftStore
	roster    personnelReader
	rotations crewResolver
	sections  *SectionValidator
	submitter reportSubmitter
	archiver  archiveScheduler
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       DraftConfig
	now       func() time.Time
}

// NewDraftService constructs the service. archiver may be nil.
func NewDraftService(
	store draftStore,
	roster personnelReader,
	rotations crewResolver,
	sections *SectionValidator,
	submitter reportSubmitter,
	archiver archiveScheduler,
	metrics *MetricsService,
	validate *validator.Validate,
	cfg DraftConfig,
	logger *zap.Logger,
) *DraftService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if sections == nil {
		sections = NewSectionValidator(nil)
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.DefaultDuration == "" {
		cfg.DefaultDuration = "12:00"
	}
	return &DraftService{
		store:     store,
		roster:    roster,
		rotations: rotations,
		sections:  sections,
		submitter: submitter,
		archiver:  archiver,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// ShiftInfoRequest describes section one.
type ShiftInfoRequest struct {
	Date         string `json:"date" validate:"required"`
	Crew         string `json:"crew" validate:"omitempty,oneof=A B C"`
	RotationType string `json:"rotation_type" validate:"required,oneof=DAY_1 DAY_2 NIGHT_1 NIGHT_2"`
	Duration     string `json:"duration"`
	SupervisorID string `json:"supervisor_id"`
}

// AttendanceRequest marks or clears one person.
type AttendanceRequest struct {
	PersonnelID string `json:"personnel_id" validate:"required"`
	Status      string `json:"status" validate:"omitempty,oneof=PRESENT ON_LEAVE ABSENT"`
	LeaveType   string `json:"leave_type" validate:"omitempty,oneof=HOURLY DAILY"`
	Remove      bool   `json:"remove"`
}

// TonnageRequest sets tonnage from an hour onward.
type TonnageRequest struct {
	Line    string   `json:"line" validate:"required"`
	Hour    int      `json:"hour" validate:"min=1,max=12"`
	Tonnage *float64 `json:"tonnage" validate:"required"`
}

// FeedComponentRequest updates one feed component from an hour onward.
type FeedComponentRequest struct {
	Line       string   `json:"line" validate:"required"`
	Hour       int      `json:"hour" validate:"min=1,max=12"`
	Slot       int      `json:"slot" validate:"min=0,max=1"`
	SourceType *string  `json:"source_type"`
	Percent    *float64 `json:"percent"`
	Custom     *bool    `json:"custom"`
}

// DowntimeRequest replaces a line's downtime record and optionally the pump toggles.
type DowntimeRequest struct {
	Line      string            `json:"line" validate:"required"`
	Worked    string            `json:"worked"`
	Stopped   string            `json:"stopped"`
	Reason    string            `json:"reason"`
	Stoppages []models.Stoppage `json:"stoppages"`
	Pumps     map[string]bool   `json:"pumps"`
}

// NotesRequest replaces a free-text list.
type NotesRequest struct {
	Field string   `json:"field" validate:"required,oneof=GENERAL_NOTES NEXT_SHIFT_ACTIONS"`
	Items []string `json:"items"`
}

// DictationRequest appends recognised speech captured at Revision.
type DictationRequest struct {
	Field    string `json:"field" validate:"required,oneof=GENERAL_NOTES NEXT_SHIFT_ACTIONS"`
	Revision int    `json:"revision" validate:"min=0"`
	Text     string `json:"text" validate:"required"`
}

// DraftView is the draft plus everything the form needs to render it.
type DraftView struct {
	Draft      *models.ShiftDraft                                `json:"draft"`
	Form       FormState                                         `json:"form"`
	Gregorian  string                                            `json:"gregorian"`
	Weekday    string                                            `json:"weekday"`
	Feed       map[models.ProductionLine][]models.HourlyFeedSlot `json:"feed"`
	Attendance models.AttendanceCounts                           `json:"attendance"`
}

// DictationResult reports whether dictated text was applied.
type DictationResult struct {
	Applied bool       `json:"applied"`
	View    *DraftView `json:"view"`
}

// Start opens a new draft for userID. A user holds at most one draft.
func (s *DraftService) Start(ctx context.Context, userID string, req ShiftInfoRequest) (*DraftView, error) {
	info, err := s.buildInfo(req)
	if err != nil {
		return nil, err
	}
	exists, err := s.store.Exists(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check shift draft")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "a shift draft is already in progress")
	}
	if info.SupervisorID == "" {
		info.SupervisorID = userID
	}
	draft := models.NewShiftDraft(userID, info, s.now().UTC())
	if err := s.save(ctx, draft); err != nil {
		return nil, err
	}
	s.logger.Info("shift draft started",
		zap.String("user_id", userID),
		zap.String("date", info.Date.String()),
		zap.String("crew", string(info.Crew)),
		zap.String("rotation_type", string(info.RotationType)),
	)
	form, err := NewShiftForm(userID, draft, s.sections)
	if err != nil {
		return nil, err
	}
	return s.view(form), nil
}

// Current returns the user's draft.
func (s *DraftService) Current(ctx context.Context, userID string) (*DraftView, error) {
	draft, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	form, err := NewShiftForm(userID, draft, s.sections)
	if err != nil {
		return nil, err
	}
	return s.view(form), nil
}

// Discard drops the user's draft.
func (s *DraftService) Discard(ctx context.Context, userID string) error {
	if err := s.store.Delete(ctx, userID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to discard shift draft")
	}
	return nil
}

// UpdateInfo replaces the shift metadata.
func (s *DraftService) UpdateInfo(ctx context.Context, userID string, req ShiftInfoRequest) (*DraftView, error) {
	info, err := s.buildInfo(req)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, userID, func(form *ShiftForm) error {
		draft := form.Draft()
		if info.SupervisorID == "" {
			info.SupervisorID = draft.Info.SupervisorID
		}
		if info.RotationType.Night() != draft.Info.RotationType.Night() {
			times := models.ThickenerReadingTimes(info.RotationType)
			for i := range draft.Equipment.Thickeners {
				for j := range draft.Equipment.Thickeners[i].Readings {
					draft.Equipment.Thickeners[i].Readings[j].Time = times[j]
				}
			}
		}
		draft.Info = info
		return nil
	})
}

// MarkAttendance records or clears one person's attendance. Only eligible roster entries are accepted.
func (s *DraftService) MarkAttendance(ctx context.Context, userID string, req AttendanceRequest) (*DraftView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if !req.Remove {
		if req.Status == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "status is required")
		}
		person, err := s.roster.GetByID(ctx, req.PersonnelID)
		if err != nil {
			if errors.Is(err, appErrors.ErrNotFound) {
				return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown personnel %s", req.PersonnelID))
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load personnel")
		}
		if !person.Eligible {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s is not eligible for attendance", person.FullName))
		}
	}
	return s.mutate(ctx, userID, func(form *ShiftForm) error {
		if req.Remove {
			form.Draft().Attendance.Unmark(req.PersonnelID)
			return nil
		}
		return form.Draft().Attendance.Mark(req.PersonnelID, models.AttendanceStatus(req.Status), models.LeaveType(req.LeaveType))
	})
}

// SetTonnage writes tonnage from req.Hour onward.
func (s *DraftService) SetTonnage(ctx context.Context, userID string, req TonnageRequest) (*DraftView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	return s.mutate(ctx, userID, func(form *ShiftForm) error {
		if err := form.Draft().Feed.SetTonnage(models.ProductionLine(req.Line), req.Hour, *req.Tonnage); err != nil {
			s.metrics.RecordFeedRejection()
			return err
		}
		return nil
	})
}

// SetFeedComponent updates one feed component from req.Hour onward.
func (s *DraftService) SetFeedComponent(ctx context.Context, userID string, req FeedComponentRequest) (*DraftView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	update := models.FeedComponentUpdate{SourceType: req.SourceType, Percent: req.Percent, Custom: req.Custom}
	return s.mutate(ctx, userID, func(form *ShiftForm) error {
		if err := form.Draft().Feed.SetFeedComponent(models.ProductionLine(req.Line), req.Hour, req.Slot, update); err != nil {
			s.metrics.RecordFeedRejection()
			s.logger.Debug("feed update rejected", zap.String("user_id", userID), zap.String("line", req.Line), zap.Int("hour", req.Hour), zap.Error(err))
			return err
		}
		return nil
	})
}

// UpdateEquipment replaces the equipment panels. The plant layout cannot change.
func (s *DraftService) UpdateEquipment(ctx context.Context, userID string, eq models.Equipment) (*DraftView, error) {
	return s.mutate(ctx, userID, func(form *ShiftForm) error {
		draft := form.Draft()
		if err := sameLayout(draft.Equipment, eq); err != nil {
			return err
		}
		times := models.ThickenerReadingTimes(draft.Info.RotationType)
		for i := range eq.Thickeners {
			for j := range eq.Thickeners[i].Readings {
				eq.Thickeners[i].Readings[j].Time = times[j]
			}
		}
		draft.Equipment = eq
		return nil
	})
}

// UpdateDowntime replaces a line's downtime record.
func (s *DraftService) UpdateDowntime(ctx context.Context, userID string, req DowntimeRequest) (*DraftView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	for _, raw := range []string{req.Worked, req.Stopped} {
		if _, err := clock.ParseClockStrict(raw); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid clock value")
		}
	}
	for i, stop := range req.Stoppages {
		if !stop.FromDate.Valid() || !stop.ToDate.Valid() {
			return nil, appErrors.Clone(appErrors.ErrInvalidDate, fmt.Sprintf("stoppage %d has an invalid date", i+1))
		}
		if _, err := clock.ParseClockStrict(stop.FromTime); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid stoppage time")
		}
		if _, err := clock.ParseClockStrict(stop.ToTime); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid stoppage time")
		}
	}
	return s.mutate(ctx, userID, func(form *ShiftForm) error {
		draft := form.Draft()
		record := draft.DowntimeFor(models.ProductionLine(req.Line))
		if record == nil {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown production line %q", req.Line))
		}
		for pump := range req.Pumps {
			if _, ok := draft.Pumps[pump]; !ok {
				return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown pump %q", pump))
			}
		}
		record.Worked = strings.TrimSpace(req.Worked)
		record.Stopped = strings.TrimSpace(req.Stopped)
		record.Reason = strings.TrimSpace(req.Reason)
		record.Stoppages = req.Stoppages
		for pump, on := range req.Pumps {
			draft.Pumps[pump] = on
		}
		return nil
	})
}

// SetNotes replaces a free-text list.
func (s *DraftService) SetNotes(ctx context.Context, userID string, req NotesRequest) (*DraftView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	return s.mutate(ctx, userID, func(form *ShiftForm) error {
		return form.Draft().SetNotes(models.NoteField(req.Field), req.Items)
	})
}

// AppendDictation appends recognised text unless the list was edited after dictation began.
func (s *DraftService) AppendDictation(ctx context.Context, userID string, req DictationRequest) (*DictationResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	var applied bool
	view, err := s.mutate(ctx, userID, func(form *ShiftForm) error {
		var err error
		applied, err = form.Draft().AppendDictation(models.NoteField(req.Field), req.Revision, req.Text)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !applied {
		s.logger.Debug("late dictation ignored", zap.String("user_id", userID), zap.String("field", req.Field))
	}
	return &DictationResult{Applied: applied, View: view}, nil
}

// Next advances to the next section.
func (s *DraftService) Next(ctx context.Context, userID string) (*DraftView, error) {
	return s.mutate(ctx, userID, func(form *ShiftForm) error {
		from := form.Current()
		if err := form.Advance(); err != nil {
			s.metrics.RecordNavigationBlocked(from.String())
			return err
		}
		return nil
	})
}

// Previous returns to the previous section.
func (s *DraftService) Previous(ctx context.Context, userID string) (*DraftView, error) {
	return s.mutate(ctx, userID, func(form *ShiftForm) error {
		return form.Retreat()
	})
}

// GoTo moves to section under the form's navigation rules.
func (s *DraftService) GoTo(ctx context.Context, userID string, section models.Section) (*DraftView, error) {
	return s.mutate(ctx, userID, func(form *ShiftForm) error {
		from := form.Current()
		if err := form.GoTo(section); err != nil {
			if errors.Is(err, appErrors.ErrSectionIncomplete) {
				s.metrics.RecordNavigationBlocked(from.String())
			}
			return err
		}
		return nil
	})
}

// Submit finalises the user's draft. On success the draft is removed; on failure it is kept for retry.
func (s *DraftService) Submit(ctx context.Context, userID string) (*models.ShiftReport, error) {
	draft, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	form, err := NewShiftForm(userID, draft, s.sections)
	if err != nil {
		return nil, err
	}
	report, err := form.Submit(ctx, s.submitter)
	if err != nil {
		if errors.Is(err, appErrors.ErrSectionIncomplete) {
			s.metrics.RecordSubmission(SubmissionIncomplete)
		}
		s.logger.Warn("shift submission rejected",
			zap.String("user_id", userID),
			zap.String("request_id", requestid.FromContext(ctx)),
			zap.Error(err),
		)
		return nil, err
	}
	if err := s.store.Delete(ctx, userID); err != nil {
		s.logger.Warn("failed to clear submitted draft", zap.String("user_id", userID), zap.String("code", report.Code), zap.Error(err))
	}
	if s.archiver != nil {
		if err := s.archiver.ScheduleArchive(report); err != nil {
			s.logger.Warn("failed to schedule report archive", zap.String("code", report.Code), zap.Error(err))
		}
	}
	return report, nil
}

func (s *DraftService) buildInfo(req ShiftInfoRequest) (models.ShiftInfo, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.ShiftInfo{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	date, ok := jalali.Parse(req.Date)
	if !ok {
		return models.ShiftInfo{}, appErrors.Clone(appErrors.ErrInvalidDate, fmt.Sprintf("invalid jalali date %q", req.Date))
	}
	duration := strings.TrimSpace(req.Duration)
	if duration == "" {
		duration = s.cfg.DefaultDuration
	}
	minutes, err := clock.ParseClockStrict(duration)
	if err != nil {
		return models.ShiftInfo{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid shift duration")
	}
	info := models.ShiftInfo{
		Date:         date,
		Crew:         models.Crew(req.Crew),
		RotationType: models.RotationLabel(req.RotationType),
		Duration:     clock.FormatClock(minutes),
		SupervisorID: strings.TrimSpace(req.SupervisorID),
	}
	if info.Crew == "" && s.rotations != nil {
		crew, err := s.rotations.CrewOnDuty(date, info.RotationType)
		if err != nil {
			return models.ShiftInfo{}, err
		}
		info.Crew = crew
	}
	return info, nil
}

func (s *DraftService) mutate(ctx context.Context, userID string, fn func(form *ShiftForm) error) (*DraftView, error) {
	draft, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	form, err := NewShiftForm(userID, draft, s.sections)
	if err != nil {
		return nil, err
	}
	if err := fn(form); err != nil {
		return nil, err
	}
	draft.UpdatedAt = s.now().UTC()
	if err := s.save(ctx, draft); err != nil {
		return nil, err
	}
	return s.view(form), nil
}

func (s *DraftService) load(ctx context.Context, userID string) (*models.ShiftDraft, error) {
	start := time.Now()
	draft, err := s.store.Get(ctx, userID)
	s.metrics.ObserveDraftStore("get", time.Since(start))
	if err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shift draft")
	}
	return draft, nil
}

func (s *DraftService) save(ctx context.Context, draft *models.ShiftDraft) error {
	start := time.Now()
	err := s.store.Save(ctx, draft, s.cfg.TTL)
	s.metrics.ObserveDraftStore("save", time.Since(start))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save shift draft")
	}
	return nil
}

func (s *DraftService) view(form *ShiftForm) *DraftView {
	draft := form.Draft()
	view := &DraftView{
		Draft:      draft,
		Form:       form.State(),
		Weekday:    jalali.WeekdayName(draft.Info.Date),
		Feed:       make(map[models.ProductionLine][]models.HourlyFeedSlot, len(models.ProductionLines)),
		Attendance: draft.Attendance.Counts(),
	}
	if g, ok := jalali.ToGregorian(draft.Info.Date); ok {
		view.Gregorian = g.String()
	}
	for _, line := range models.ProductionLines {
		view.Feed[line] = draft.Feed.Slots(line, draft.Info.RotationType)
	}
	return view
}

func sameLayout(current, next models.Equipment) error {
	mismatch := func(kind string) error {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s layout does not match the plant", kind))
	}
	if len(current.Mills) != len(next.Mills) {
		return mismatch("mill")
	}
	for i := range current.Mills {
		if current.Mills[i].Key() != next.Mills[i].Key() {
			return mismatch("mill")
		}
	}
	if len(current.Cyclones) != len(next.Cyclones) {
		return mismatch("cyclone")
	}
	for i := range current.Cyclones {
		if current.Cyclones[i].Key() != next.Cyclones[i].Key() {
			return mismatch("cyclone")
		}
	}
	if len(current.Magnets) != len(next.Magnets) {
		return mismatch("magnet")
	}
	for i := range current.Magnets {
		if current.Magnets[i].Key() != next.Magnets[i].Key() {
			return mismatch("magnet")
		}
	}
	if len(current.ConcentrateFilters) != len(next.ConcentrateFilters) {
		return mismatch("concentrate filter")
	}
	for i := range current.ConcentrateFilters {
		if current.ConcentrateFilters[i].Key() != next.ConcentrateFilters[i].Key() {
			return mismatch("concentrate filter")
		}
	}
	if len(current.Thickeners) != len(next.Thickeners) {
		return mismatch("thickener")
	}
	for i := range current.Thickeners {
		if current.Thickeners[i].Key() != next.Thickeners[i].Key() {
			return mismatch("thickener")
		}
	}
	if len(current.RecoveryFilters) != len(next.RecoveryFilters) {
		return mismatch("recovery filter")
	}
	for i := range current.RecoveryFilters {
		if current.RecoveryFilters[i].Key() != next.RecoveryFilters[i].Key() {
			return mismatch("recovery filter")
		}
	}
	return nil
}
