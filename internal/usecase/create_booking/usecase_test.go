package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-StudioBookingService/pkg/ptr"
	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// Фейки зависимостей

type fakeBookingRepo struct {
	existing  []*domain.Booking
	created   *domain.Booking
	createErr error
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	booking.ID = 42
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	f.created = booking
	return booking, nil
}

func (f *fakeBookingRepo) GetByResourceAndDate(_ context.Context, _ int64, _ time.Time, _ bool) ([]*domain.Booking, error) {
	return f.existing, nil
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

type fakeStudioRepo struct {
	studio *domain.Studio
	err    error
}

func (f *fakeStudioRepo) GetByID(_ context.Context, _ int64) (*domain.Studio, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.studio, nil
}

type fakeEventRepo struct {
	events []*domain.EventLog
}

func (f *fakeEventRepo) Append(_ context.Context, event *domain.EventLog) error {
	f.events = append(f.events, event)
	return nil
}

// fakeTxManager выполняет функцию без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

type testEnv struct {
	bookings  *fakeBookingRepo
	schedules *fakeAvailabilityRepo
	events    *fakeEventRepo
	uc        *UseCase
}

func newTestEnv() *testEnv {
	env := &testEnv{
		bookings: &fakeBookingRepo{},
		schedules: &fakeAvailabilityRepo{
			tmpl: &domain.AvailabilityTemplate{
				ResourceID:  1,
				DayOfWeek:   1,
				OpenTime:    types.TimeString("10:00"),
				CloseTime:   types.TimeString("22:00"),
				IsAvailable: true,
			},
			excErr: availabilityRepo.ErrExceptionNotFound,
		},
		events: &fakeEventRepo{},
	}

	env.uc = NewUseCase(
		env.bookings,
		env.schedules,
		&fakeResourceRepo{resource: &domain.Resource{
			ID:               1,
			StudioID:         10,
			ResourceType:     domain.ResourceLiveRoom,
			BasePricePerHour: 1000,
			IsActive:         true,
		}},
		&fakeStudioRepo{studio: &domain.Studio{
			ID:          10,
			OwnerID:     7,
			IsActive:    true,
			IsPublished: true,
		}},
		env.events,
		fakeTxManager{},
		noopLogger{},
	)
	env.uc.timeProvider = &fixedTimeProvider{now: testNow}
	return env
}

func validRequest() *Request {
	return &Request{
		UserID:     5,
		ResourceID: 1,
		Date:       testDate,
		StartTime:  types.TimeString("11:00"),
		EndTime:    types.TimeString("12:30"),
	}
}

// Тесты

func TestExecute_CreatesPendingBooking(t *testing.T) {
	env := newTestEnv()

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, int64(5), resp.UserID)
	assert.Equal(t, int64(10), resp.StudioID)
	assert.Equal(t, string(domain.StatusPendingApproval), resp.Status)
	assert.Equal(t, 90, resp.DurationMinutes)
	// 1000 за час * 1.5 часа
	assert.Equal(t, 1500.0, resp.TotalAmount)
	assert.Equal(t, domain.DefaultCurrency, resp.Currency)

	// Запись аудита пишется в той же транзакции
	require.Len(t, env.events.events, 1)
	assert.Equal(t, domain.EventBookingCreated, env.events.events[0].EventType)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *Request)
		wantErr error
	}{
		{"zero user", func(r *Request) { r.UserID = 0 }, ErrInvalidInput},
		{"zero resource", func(r *Request) { r.ResourceID = 0 }, ErrInvalidInput},
		{"missing start time", func(r *Request) { r.StartTime = "" }, ErrInvalidInput},
		{"end before start", func(r *Request) { r.StartTime = "14:00"; r.EndTime = "12:00" }, ErrInvalidTimeRange},
		{"too short", func(r *Request) { r.StartTime = "11:00"; r.EndTime = "11:15" }, ErrInvalidTimeRange},
		{"not slot aligned", func(r *Request) { r.StartTime = "11:00"; r.EndTime = "11:45" }, ErrInvalidTimeRange},
		{"date in past", func(r *Request) { r.Date = testNow.AddDate(0, 0, -2) }, ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			req := validRequest()
			tt.mutate(req)

			_, err := env.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	env := newTestEnv()
	req := validRequest()
	req.StartTime = types.TimeString("09:00")
	req.EndTime = types.TimeString("10:30")

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_NoScheduleMeansResourceClosed(t *testing.T) {
	env := newTestEnv()
	env.schedules.tmpl = nil
	env.schedules.tmplErr = availabilityRepo.ErrTemplateNotFound

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrResourceClosed)
}

func TestExecute_ExceptionClosesDate(t *testing.T) {
	env := newTestEnv()
	env.schedules.excErr = nil
	env.schedules.exc = &domain.AvailabilityException{
		ResourceID:  1,
		Date:        testDate,
		IsAvailable: false,
	}

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrResourceClosed)
}

func TestExecute_ExceptionOverridesPrice(t *testing.T) {
	env := newTestEnv()
	env.schedules.excErr = nil
	env.schedules.exc = &domain.AvailabilityException{
		ResourceID:    1,
		Date:          testDate,
		IsAvailable:   true,
		OverridePrice: ptr.Ptr(2000.0),
	}

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 3000.0, resp.TotalAmount)
}

func TestExecute_OverlapRejected(t *testing.T) {
	env := newTestEnv()
	env.bookings.existing = []*domain.Booking{
		{
			Status:    domain.StatusApproved,
			StartTime: types.TimeString("12:00"),
			EndTime:   types.TimeString("13:00"),
		},
	}

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_AdjacentBookingAllowed(t *testing.T) {
	env := newTestEnv()
	env.bookings.existing = []*domain.Booking{
		{
			Status:    domain.StatusApproved,
			StartTime: types.TimeString("12:30"),
			EndTime:   types.TimeString("14:00"),
		},
	}

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_UnpublishedStudioClosed(t *testing.T) {
	env := newTestEnv()
	env.uc.studioRepo = &fakeStudioRepo{studio: &domain.Studio{
		ID:          10,
		IsActive:    true,
		IsPublished: false,
	}}

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrStudioClosed)
}
