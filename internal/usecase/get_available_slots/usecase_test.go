package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/availability"
	resourceRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/resource"
	"github.com/m04kA/SMC-StudioBookingService/pkg/ptr"
	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// Фейки репозиториев

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetByResourceAndDate(_ context.Context, _ int64, _ time.Time, _ bool) ([]*domain.Booking, error) {
	return f.bookings, f.err
}

type fakeAvailabilityRepo struct {
	tmpl    *domain.AvailabilityTemplate
	tmplErr error
	exc     *domain.AvailabilityException
	excErr  error
}

func (f *fakeAvailabilityRepo) GetTemplateForWeekday(_ context.Context, _ int64, _ int) (*domain.AvailabilityTemplate, error) {
	if f.tmplErr != nil {
		return nil, f.tmplErr
	}
	return f.tmpl, nil
}

func (f *fakeAvailabilityRepo) GetExceptionForDate(_ context.Context, _ int64, _ time.Time) (*domain.AvailabilityException, error) {
	if f.excErr != nil {
		return nil, f.excErr
	}
	return f.exc, nil
}

type fakeResourceRepo struct {
	resource *domain.Resource
	err      error
}

func (f *fakeResourceRepo) GetByID(_ context.Context, _ int64) (*domain.Resource, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resource, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Хелперы

var (
	testDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC) // понедельник
	testNow  = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
)

func newTestUseCase(bookings *fakeBookingRepo, availability *fakeAvailabilityRepo, resources *fakeResourceRepo) *UseCase {
	uc := NewUseCase(bookings, availability, resources, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func activeResource() *domain.Resource {
	return &domain.Resource{
		ID:               1,
		StudioID:         10,
		Name:             "Live Room A",
		ResourceType:     domain.ResourceLiveRoom,
		BasePricePerHour: 1000,
		IsActive:         true,
	}
}

func mondayTemplate(open, close string) *domain.AvailabilityTemplate {
	return &domain.AvailabilityTemplate{
		ID:          1,
		ResourceID:  1,
		DayOfWeek:   1,
		OpenTime:    types.TimeString(open),
		CloseTime:   types.TimeString(close),
		IsAvailable: true,
	}
}

// Тесты

func TestExecute_GeneratesHalfHourSlots(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeAvailabilityRepo{tmpl: mondayTemplate("10:00", "12:00")},
		&fakeResourceRepo{resource: activeResource()},
	)

	resp, err := uc.Execute(context.Background(), &Request{ResourceID: 1, Date: testDate})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 4)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("10:30"), resp.Slots[0].EndTime)
	assert.Equal(t, types.TimeString("11:30"), resp.Slots[3].StartTime)
	assert.Equal(t, types.TimeString("12:00"), resp.Slots[3].EndTime)
	assert.Equal(t, domain.DefaultCurrency, resp.Currency)

	// Цена слота - половина часовой ставки
	for _, slot := range resp.Slots {
		assert.Equal(t, 500.0, slot.Price)
		assert.True(t, slot.IsAvailable)
	}
}

func TestExecute_DropsPartialTrailingSlot(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeAvailabilityRepo{tmpl: mondayTemplate("10:00", "11:15")},
		&fakeResourceRepo{resource: activeResource()},
	)

	resp, err := uc.Execute(context.Background(), &Request{ResourceID: 1, Date: testDate})
	require.NoError(t, err)

	// 10:00-10:30, 10:30-11:00; хвост 11:00-11:15 отбрасывается
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, types.TimeString("11:00"), resp.Slots[1].EndTime)
}

func TestExecute_NoTemplateMeansClosedDay(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeAvailabilityRepo{tmplErr: availabilityRepo.ErrTemplateNotFound},
		&fakeResourceRepo{resource: activeResource()},
	)

	resp, err := uc.Execute(context.Background(), &Request{ResourceID: 1, Date: testDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ExceptionClosesDay(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeAvailabilityRepo{
			tmpl: mondayTemplate("10:00", "22:00"),
			exc: &domain.AvailabilityException{
				ResourceID:  1,
				Date:        testDate,
				IsAvailable: false,
				Reason:      ptr.Ptr("maintenance"),
			},
		},
		&fakeResourceRepo{resource: activeResource()},
	)

	resp, err := uc.Execute(context.Background(), &Request{ResourceID: 1, Date: testDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ExceptionNarrowsWindowAndOverridesPrice(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeAvailabilityRepo{
			tmpl: mondayTemplate("10:00", "22:00"),
			exc: &domain.AvailabilityException{
				ResourceID:    1,
				Date:          testDate,
				StartTime:     ptr.Ptr(types.TimeString("12:00")),
				EndTime:       ptr.Ptr(types.TimeString("14:00")),
				IsAvailable:   true,
				OverridePrice: ptr.Ptr(1500.0),
			},
		},
		&fakeResourceRepo{resource: activeResource()},
	)

	resp, err := uc.Execute(context.Background(), &Request{ResourceID: 1, Date: testDate})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 4)
	assert.Equal(t, types.TimeString("12:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("14:00"), resp.Slots[3].EndTime)
	for _, slot := range resp.Slots {
		assert.Equal(t, 750.0, slot.Price)
	}
}

func TestExecute_MarksOverlappingSlotsOccupied(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{
			{
				Status:    domain.StatusApproved,
				StartTime: types.TimeString("10:30"),
				EndTime:   types.TimeString("11:30"),
			},
		}},
		&fakeAvailabilityRepo{tmpl: mondayTemplate("10:00", "12:00")},
		&fakeResourceRepo{resource: activeResource()},
	)

	resp, err := uc.Execute(context.Background(), &Request{ResourceID: 1, Date: testDate})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 4)
	assert.True(t, resp.Slots[0].IsAvailable)  // 10:00-10:30 граничит, но не пересекается
	assert.False(t, resp.Slots[1].IsAvailable) // 10:30-11:00
	assert.False(t, resp.Slots[2].IsAvailable) // 11:00-11:30
	assert.True(t, resp.Slots[3].IsAvailable)  // 11:30-12:00
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{
			{
				Status:    domain.StatusCancelled,
				StartTime: types.TimeString("10:00"),
				EndTime:   types.TimeString("12:00"),
			},
		}},
		&fakeAvailabilityRepo{tmpl: mondayTemplate("10:00", "12:00")},
		&fakeResourceRepo{resource: activeResource()},
	)

	resp, err := uc.Execute(context.Background(), &Request{ResourceID: 1, Date: testDate})
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		assert.True(t, slot.IsAvailable)
	}
}

func TestExecute_ResourceNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeAvailabilityRepo{},
		&fakeResourceRepo{err: resourceRepo.ErrResourceNotFound},
	)

	_, err := uc.Execute(context.Background(), &Request{ResourceID: 99, Date: testDate})
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestExecute_ResourceInactive(t *testing.T) {
	resource := activeResource()
	resource.IsActive = false

	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeAvailabilityRepo{},
		&fakeResourceRepo{resource: resource},
	)

	_, err := uc.Execute(context.Background(), &Request{ResourceID: 1, Date: testDate})
	assert.ErrorIs(t, err, ErrResourceInactive)
}

func TestExecute_DateInPast(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeAvailabilityRepo{},
		&fakeResourceRepo{resource: activeResource()},
	)

	past := testNow.AddDate(0, 0, -1)
	_, err := uc.Execute(context.Background(), &Request{ResourceID: 1, Date: past})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_SameDayIsAllowed(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeAvailabilityRepo{tmplErr: availabilityRepo.ErrTemplateNotFound},
		&fakeResourceRepo{resource: activeResource()},
	)

	_, err := uc.Execute(context.Background(), &Request{ResourceID: 1, Date: testNow})
	assert.NoError(t, err)
}
