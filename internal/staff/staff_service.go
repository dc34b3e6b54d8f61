package staff

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go-roster/internal/domain"
	"go-roster/internal/events"
	"go-roster/internal/interchange"
	"go-roster/internal/shared/apperror"
	"go-roster/internal/shared/audit"
	"go-roster/internal/shared/contextutil"
	stafferrors "go-roster/internal/staff/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service owns the authoritative in-memory roster. Every method runs under one
// mutex, so requests are applied one at a time. Mutations persist the whole
// roster afterwards; a failed save is returned as a storage warning alongside the
// normal result and the in-memory change stands.
//
//go:generate mockgen -source=staff_service.go -destination=mock/staff_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, draft StaffDraft) (StaffResponse, error)
	Update(ctx context.Context, id string, draft StaffDraft) (StaffResponse, error)
	GetByID(ctx context.Context, id string) (StaffResponse, error)
	GetAll(ctx context.Context, q ListQuery) ([]StaffResponse, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int, error)
	ImportMerge(ctx context.Context, incoming []domain.Staff) (ImportResult, error)
	Import(ctx context.Context, filename string, data []byte) (ImportResponse, error)
	Export(ctx context.Context, q ListQuery) (ExportFile, error)
	Template(ctx context.Context) (ExportFile, error)
	Summary(ctx context.Context) (SummaryResponse, error)
	UpcomingBirthdays(ctx context.Context, windowDays, limit int) ([]BirthdayResponse, error)
}

type service struct {
	mu      sync.Mutex
	records []domain.Staff

	repo      Repository
	publisher EventPublisher
	audit     audit.Logger
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(repo Repository, publisher EventPublisher, auditLogger audit.Logger, logger ...*zap.Logger) Service {
	return NewServiceWithClock(repo, publisher, auditLogger, time.Now, logger...)
}

// NewServiceWithClock loads the roster once and uses now for every timestamp and
// for the "today" of birthday queries.
func NewServiceWithClock(
	repo Repository,
	publisher EventPublisher,
	auditLogger audit.Logger,
	now func() time.Time,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("staff.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("staff.service")
	}
	if publisher == nil {
		publisher = NewNoopEventPublisher()
	}
	if auditLogger == nil {
		auditLogger = audit.Nop()
	}
	if now == nil {
		now = time.Now
	}

	return &service{
		records:   repo.Load(context.Background()),
		repo:      repo,
		publisher: publisher,
		audit:     auditLogger,
		now:       now,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, draft StaffDraft) (StaffResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	draft = draft.Normalize()
	s.logger.Debug("create staff requested",
		zap.String("request_id", rid),
		zap.String("staff_id", draft.StaffID),
	)

	if fields := ValidateDraft(draft); fields != nil {
		s.logger.Warn("create staff validation failed",
			zap.String("request_id", rid),
			zap.Any("fields", fields),
		)
		return StaffResponse{}, apperror.Validation(map[string]string(fields))
	}

	s.mu.Lock()
	rec := domain.Staff{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC(),
	}
	draft.apply(&rec)
	s.records = append(s.records, rec)
	warn := s.persistLocked(ctx)
	s.mu.Unlock()

	s.publish(ctx, events.StaffCreated, rec.ID)
	s.logger.Info("create staff success",
		zap.String("request_id", rid),
		zap.String("id", rec.ID),
	)
	return toResponse(rec), warn
}

func (s *service) Update(ctx context.Context, id string, draft StaffDraft) (StaffResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	draft = draft.Normalize()
	s.logger.Debug("update staff requested",
		zap.String("request_id", rid),
		zap.String("id", id),
	)

	if fields := ValidateDraft(draft); fields != nil {
		s.logger.Warn("update staff validation failed",
			zap.String("request_id", rid),
			zap.Any("fields", fields),
		)
		return StaffResponse{}, apperror.Validation(map[string]string(fields))
	}

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		s.logger.Warn("update staff not found", zap.String("request_id", rid), zap.String("id", id))
		return StaffResponse{}, stafferrors.ErrStaffNotFound
	}

	rec := s.records[idx]
	draft.apply(&rec)
	updatedAt := s.now().UTC()
	rec.UpdatedAt = &updatedAt
	s.records[idx] = rec
	warn := s.persistLocked(ctx)
	s.mu.Unlock()

	s.publish(ctx, events.StaffUpdated, rec.ID)
	s.logger.Info("update staff success", zap.String("request_id", rid), zap.String("id", id))
	return toResponse(rec), warn
}

func (s *service) GetByID(ctx context.Context, id string) (StaffResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		s.logger.Debug("get staff by id not found",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("id", id),
		)
		return StaffResponse{}, stafferrors.ErrStaffNotFound
	}
	return toResponse(s.records[idx]), nil
}

func (s *service) GetAll(ctx context.Context, q ListQuery) ([]StaffResponse, error) {
	s.mu.Lock()
	view := Filter(s.records, q.Search, q.Facets())
	s.mu.Unlock()

	s.logger.Debug("list staff",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("q", q.Search),
		zap.Int("matched", len(view)),
	)
	return toListResponse(view), nil
}

// Delete is idempotent: an unknown id is not an error and the roster is still persisted.
func (s *service) Delete(ctx context.Context, id string) error {
	rid := contextutil.GetRequestID(ctx)

	s.mu.Lock()
	before := len(s.records)
	s.records = slices.DeleteFunc(s.records, func(r domain.Staff) bool { return r.ID == id })
	removed := before - len(s.records)
	warn := s.persistLocked(ctx)
	s.mu.Unlock()

	if removed > 0 {
		s.publish(ctx, events.StaffDeleted, id)
	}
	s.logger.Info("delete staff",
		zap.String("request_id", rid),
		zap.String("id", id),
		zap.Bool("existed", removed > 0),
	)
	return warn
}

// DeleteMany removes every record whose id is listed and persists once.
func (s *service) DeleteMany(ctx context.Context, ids []string) (int, error) {
	rid := contextutil.GetRequestID(ctx)
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	s.mu.Lock()
	removedIDs := make([]string, 0, len(set))
	s.records = slices.DeleteFunc(s.records, func(r domain.Staff) bool {
		if _, ok := set[r.ID]; ok {
			removedIDs = append(removedIDs, r.ID)
			return true
		}
		return false
	})
	warn := s.persistLocked(ctx)
	s.mu.Unlock()

	if len(removedIDs) > 0 {
		s.publish(ctx, events.StaffDeleted, removedIDs...)
	}
	s.audit.Log(ctx, audit.Entry{
		Action:  "staff.bulk_delete",
		Message: fmt.Sprintf("deleted %d staff member(s)", len(removedIDs)),
		Meta:    map[string]any{"requested": len(ids), "deleted": len(removedIDs)},
	})
	s.logger.Info("bulk delete staff",
		zap.String("request_id", rid),
		zap.Int("requested", len(ids)),
		zap.Int("deleted", len(removedIDs)),
	)
	return len(removedIDs), warn
}

// ImportMerge appends incoming records whose staffId is not already on the roster,
// in their incoming order, with fresh ids and creation times.
func (s *service) ImportMerge(ctx context.Context, incoming []domain.Staff) (ImportResult, error) {
	rid := contextutil.GetRequestID(ctx)

	s.mu.Lock()
	existing := make(map[string]struct{}, len(s.records))
	for _, r := range s.records {
		existing[r.StaffID] = struct{}{}
	}

	createdAt := s.now().UTC()
	result := ImportResult{Added: make([]domain.Staff, 0, len(incoming))}
	for _, r := range incoming {
		if _, dup := existing[r.StaffID]; dup {
			result.Skipped++
			continue
		}
		r.ID = uuid.NewString()
		r.CreatedAt = createdAt
		r.UpdatedAt = nil
		result.Added = append(result.Added, r)
	}
	s.records = append(s.records, result.Added...)
	warn := s.persistLocked(ctx)
	s.mu.Unlock()

	ids := make([]string, len(result.Added))
	for i, r := range result.Added {
		ids[i] = r.ID
	}
	if len(ids) > 0 {
		s.publish(ctx, events.StaffImported, ids...)
	}
	s.logger.Info("import merge",
		zap.String("request_id", rid),
		zap.Int("added", len(result.Added)),
		zap.Int("skipped", result.Skipped),
	)
	return result, warn
}

// Import reads a spreadsheet and merges its valid rows. The file is parsed before
// the roster is locked; a file with no valid rows changes nothing.
func (s *service) Import(ctx context.Context, filename string, data []byte) (ImportResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("import staff requested",
		zap.String("request_id", rid),
		zap.String("filename", filename),
		zap.Int("bytes", len(data)),
	)

	table, err := interchange.ReadWorkbook(filename, data)
	if err != nil {
		s.logger.Warn("import staff read failed", zap.String("request_id", rid), zap.Error(err))
		return ImportResponse{}, err
	}
	incoming := interchange.FromTable(table, uuid.NewString, s.now)
	if len(incoming) == 0 {
		s.logger.Warn("import staff found no valid rows",
			zap.String("request_id", rid),
			zap.Int("rows", len(table.Rows)),
		)
		return ImportResponse{}, interchange.ErrNoValidRows
	}

	result, warn := s.ImportMerge(ctx, incoming)

	resp := ImportResponse{
		Added:   len(result.Added),
		Skipped: result.Skipped,
		Message: importMessage(len(result.Added), result.Skipped),
		Records: toListResponse(result.Added),
	}
	s.audit.Log(ctx, audit.Entry{
		Action:  "staff.import",
		Message: resp.Message,
		Meta: map[string]any{
			"filename": filename,
			"rows":     len(table.Rows),
			"added":    resp.Added,
			"skipped":  resp.Skipped,
		},
	})
	return resp, warn
}

func (s *service) Export(ctx context.Context, q ListQuery) (ExportFile, error) {
	rid := contextutil.GetRequestID(ctx)

	s.mu.Lock()
	view := Filter(s.records, q.Search, q.Facets())
	s.mu.Unlock()

	if len(view) == 0 {
		s.logger.Warn("export staff with empty view", zap.String("request_id", rid))
		return ExportFile{}, stafferrors.ErrNoDataToExport
	}

	data, err := interchange.WriteWorkbook(interchange.ToTable(view), interchange.SheetName)
	if err != nil {
		s.logger.Error("export staff encode failed", zap.String("request_id", rid), zap.Error(err))
		return ExportFile{}, apperror.ErrInternal.WithErr(err)
	}

	s.logger.Info("export staff", zap.String("request_id", rid), zap.Int("records", len(view)))
	return ExportFile{
		Filename:    interchange.ExportFilename(s.now()),
		ContentType: interchange.ContentTypeXLSX,
		Data:        data,
	}, nil
}

func (s *service) Template(ctx context.Context) (ExportFile, error) {
	data, err := interchange.WriteWorkbook(interchange.TemplateTable(), interchange.TemplateSheetName)
	if err != nil {
		s.logger.Error("template encode failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Error(err),
		)
		return ExportFile{}, apperror.ErrInternal.WithErr(err)
	}
	return ExportFile{
		Filename:    interchange.TemplateFilename,
		ContentType: interchange.ContentTypeXLSX,
		Data:        data,
	}, nil
}

func (s *service) Summary(ctx context.Context) (SummaryResponse, error) {
	s.mu.Lock()
	sum := BuildSummary(s.records, s.now())
	s.mu.Unlock()

	resp := SummaryResponse{
		Counts:            sum.Counts,
		UpcomingBirthdays: toBirthdayResponses(sum.UpcomingBirthdays),
	}
	if sum.TodaysBirthday != nil {
		r := toResponse(*sum.TodaysBirthday)
		resp.TodaysBirthday = &r
	}
	if sum.MostRecentlyJoined != nil {
		r := toResponse(*sum.MostRecentlyJoined)
		resp.MostRecentlyJoined = &r
	}
	return resp, nil
}

func (s *service) UpcomingBirthdays(ctx context.Context, windowDays, limit int) ([]BirthdayResponse, error) {
	s.mu.Lock()
	list := UpcomingBirthdays(s.records, s.now(), windowDays, limit)
	s.mu.Unlock()

	return toBirthdayResponses(list), nil
}

func (s *service) indexLocked(id string) int {
	return slices.IndexFunc(s.records, func(r domain.Staff) bool { return r.ID == id })
}

// persistLocked saves a copy of the roster; the caller holds s.mu.
func (s *service) persistLocked(ctx context.Context) error {
	if err := s.repo.Save(ctx, slices.Clone(s.records)); err != nil {
		s.logger.Error("persist roster failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Int("records", len(s.records)),
			zap.Error(err),
		)
		return mapRepositoryError(err)
	}
	return nil
}

// publish never fails the request; broker errors are only logged.
func (s *service) publish(ctx context.Context, eventType string, ids ...string) {
	meta := contextutil.ExtractMetadata(ctx)
	event := events.StaffLifecycleEvent{
		EventType:  eventType,
		RequestID:  meta.RequestID,
		SessionID:  meta.SessionID,
		StaffIDs:   ids,
		Count:      len(ids),
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.PublishStaffLifecycle(ctx, event); err != nil {
		s.logger.Error("publish staff lifecycle event failed",
			zap.String("request_id", meta.RequestID),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func importMessage(added, skipped int) string {
	if skipped > 0 {
		return fmt.Sprintf("%d duplicate staff ID(s) were skipped. %d new staff members imported.", skipped, added)
	}
	return fmt.Sprintf("Successfully imported %d staff members.", added)
}

func toResponse(r domain.Staff) StaffResponse {
	return StaffResponse{
		Staff:      r,
		Experience: FormatExperience(r.ExperienceYears, r.ExperienceMonths),
	}
}

func toListResponse(records []domain.Staff) []StaffResponse {
	res := make([]StaffResponse, len(records))
	for i, r := range records {
		res[i] = toResponse(r)
	}
	return res
}

func toBirthdayResponses(list []Birthday) []BirthdayResponse {
	res := make([]BirthdayResponse, len(list))
	for i, b := range list {
		res[i] = BirthdayResponse{
			Staff:     toResponse(b.Staff),
			DaysUntil: b.DaysUntil,
			IsToday:   b.IsToday,
		}
	}
	return res
}
