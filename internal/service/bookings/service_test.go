package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/booking"
	studioRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/studio"
	"github.com/m04kA/SMC-StudioBookingService/internal/integrations/paymentservice"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-StudioBookingService/pkg/ptr"
	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// Фейки зависимостей

type fakeBookingRepo struct {
	byID map[int64]*domain.Booking

	approveErr error
	rejectErr  error
	cancelErr  error

	cancelledReason string
	cancelledPct    float64
	cancelledAmount float64
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.byID {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) GetByStudios(_ context.Context, filter domain.StudioBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.byID {
		for _, id := range filter.StudioIDs {
			if b.StudioID == id {
				out = append(out, b)
			}
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) Approve(_ context.Context, id int64, approverID int64) error {
	if f.approveErr != nil {
		return f.approveErr
	}
	b := f.byID[id]
	b.Status = domain.StatusApproved
	b.ApprovedBy = ptr.Ptr(approverID)
	return nil
}

func (f *fakeBookingRepo) Reject(_ context.Context, id int64, reason string) error {
	if f.rejectErr != nil {
		return f.rejectErr
	}
	b := f.byID[id]
	b.Status = domain.StatusRejected
	b.RejectionReason = ptr.Ptr(reason)
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string, refundPercentage, refundAmount float64) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelledReason = reason
	f.cancelledPct = refundPercentage
	f.cancelledAmount = refundAmount
	b := f.byID[id]
	b.Status = domain.StatusCancelled
	return nil
}

func (f *fakeBookingRepo) Confirm(_ context.Context, id int64) error {
	b := f.byID[id]
	if b.Status != domain.StatusApproved {
		return bookingRepo.ErrStatusConflict
	}
	b.Status = domain.StatusConfirmed
	return nil
}

func (f *fakeBookingRepo) CheckIn(_ context.Context, id int64) error {
	b := f.byID[id]
	if b.Status != domain.StatusConfirmed {
		return bookingRepo.ErrStatusConflict
	}
	b.Status = domain.StatusCheckedIn
	return nil
}

func (f *fakeBookingRepo) Complete(_ context.Context, id int64) error {
	b := f.byID[id]
	if b.Status != domain.StatusConfirmed && b.Status != domain.StatusCheckedIn {
		return bookingRepo.ErrStatusConflict
	}
	b.Status = domain.StatusCompleted
	return nil
}

type fakeStudioRepo struct {
	studios map[int64]*domain.Studio
	owned   map[int64][]int64
}

func (f *fakeStudioRepo) GetByID(_ context.Context, id int64) (*domain.Studio, error) {
	s, ok := f.studios[id]
	if !ok {
		return nil, studioRepo.ErrStudioNotFound
	}
	return s, nil
}

func (f *fakeStudioRepo) GetOwnedStudioIDs(_ context.Context, ownerID int64) ([]int64, error) {
	return f.owned[ownerID], nil
}

type fakeEventRepo struct {
	events []*domain.EventLog
}

func (f *fakeEventRepo) Append(_ context.Context, event *domain.EventLog) error {
	f.events = append(f.events, event)
	return nil
}

type fakePaymentClient struct {
	requests []paymentservice.RefundRequest
	err      error
}

func (f *fakePaymentClient) RequestRefundWithGracefulDegradation(_ context.Context, refund paymentservice.RefundRequest) (*paymentservice.RefundResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.requests = append(f.requests, refund)
	return &paymentservice.RefundResponse{Status: "accepted"}, nil
}

// fakeTxManager выполняет функции без настоящих транзакций
type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Хелперы

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

const (
	ownerID    = int64(7)
	customerID = int64(5)
	studioID   = int64(10)
)

type testEnv struct {
	bookings *fakeBookingRepo
	studios  *fakeStudioRepo
	events   *fakeEventRepo
	payments *fakePaymentClient
	svc      *Service
}

func newTestEnv() *testEnv {
	env := &testEnv{
		bookings: &fakeBookingRepo{byID: map[int64]*domain.Booking{}},
		studios: &fakeStudioRepo{
			studios: map[int64]*domain.Studio{
				studioID: {ID: studioID, OwnerID: ownerID, IsActive: true, IsPublished: true},
			},
			owned: map[int64][]int64{ownerID: {studioID}},
		},
		events:   &fakeEventRepo{},
		payments: &fakePaymentClient{},
	}

	env.svc = NewService(env.bookings, env.studios, env.events, env.payments, fakeTxManager{}, noopLogger{})
	env.svc.now = func() time.Time { return testNow }
	return env
}

// pendingBooking бронирование в статусе pending_approval, начало через 5 дней
func (e *testEnv) pendingBooking(id int64) *domain.Booking {
	b := &domain.Booking{
		ID:              id,
		UserID:          customerID,
		ResourceID:      1,
		StudioID:        studioID,
		BookingDate:     testNow.AddDate(0, 0, 5).Truncate(24 * time.Hour),
		StartTime:       types.TimeString("14:00"),
		EndTime:         types.TimeString("15:30"),
		DurationMinutes: 90,
		Status:          domain.StatusPendingApproval,
		TotalAmount:     1500,
		Currency:        domain.DefaultCurrency,
	}
	e.bookings.byID[id] = b
	return b
}

func owner() domain.Actor {
	return domain.Actor{UserID: ownerID, Role: domain.RoleOwner}
}

func customer() domain.Actor {
	return domain.Actor{UserID: customerID, Role: domain.RoleCustomer}
}

func admin() domain.Actor {
	return domain.Actor{UserID: 99, Role: domain.RoleAdmin}
}

// Тесты

func TestApprove_ByStudioOwner(t *testing.T) {
	env := newTestEnv()
	env.pendingBooking(1)

	resp, err := env.svc.Approve(context.Background(), 1, owner())
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusApproved), resp.Status)
	require.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, ownerID, *resp.ApprovedBy)

	require.Len(t, env.events.events, 1)
	assert.Equal(t, domain.EventBookingApproved, env.events.events[0].EventType)
}

func TestApprove_AccessDeniedForStranger(t *testing.T) {
	env := newTestEnv()
	env.pendingBooking(1)

	stranger := domain.Actor{UserID: 1000, Role: domain.RoleOwner}
	_, err := env.svc.Approve(context.Background(), 1, stranger)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestApprove_CustomerCannotApproveOwnBooking(t *testing.T) {
	env := newTestEnv()
	env.pendingBooking(1)

	_, err := env.svc.Approve(context.Background(), 1, customer())
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestApprove_NotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Approve(context.Background(), 404, owner())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestApprove_InvalidTransition(t *testing.T) {
	env := newTestEnv()
	env.pendingBooking(1)
	env.bookings.approveErr = bookingRepo.ErrStatusConflict

	_, err := env.svc.Approve(context.Background(), 1, owner())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestReject_WithReason(t *testing.T) {
	env := newTestEnv()
	env.pendingBooking(1)

	resp, err := env.svc.Reject(context.Background(), 1, &models.RejectBookingRequest{
		Actor:  owner(),
		Reason: "double booked by phone",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusRejected), resp.Status)
	require.NotNil(t, resp.RejectionReason)
	assert.Equal(t, "double booked by phone", *resp.RejectionReason)
}

func TestReject_ReasonTooShort(t *testing.T) {
	env := newTestEnv()
	env.pendingBooking(1)

	_, err := env.svc.Reject(context.Background(), 1, &models.RejectBookingRequest{
		Actor:  owner(),
		Reason: "no",
	})
	assert.ErrorIs(t, err, ErrReasonTooShort)
}

func TestCancel_EarlyCancellationRefunds80Percent(t *testing.T) {
	env := newTestEnv()
	env.pendingBooking(1) // начало через 5 дней

	result, err := env.svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		Actor:  customer(),
		Reason: "plans changed",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), result.Status)
	assert.Equal(t, 80.0, result.RefundPercentage)
	assert.Equal(t, 1200.0, result.RefundAmount)
	assert.Equal(t, domain.DefaultCurrency, result.Currency)

	// Возврат запрошен у платежного сервиса
	require.Len(t, env.payments.requests, 1)
	assert.Equal(t, 1200.0, env.payments.requests[0].Amount)
	assert.Equal(t, int64(1), env.payments.requests[0].BookingID)
}

func TestCancel_LateCancellationNoRefund(t *testing.T) {
	env := newTestEnv()
	b := env.pendingBooking(1)
	// Начало через 2 часа
	b.BookingDate = testNow.Truncate(24 * time.Hour)
	b.StartTime = types.TimeString("14:00")

	result, err := env.svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		Actor:  customer(),
		Reason: "plans changed",
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.RefundPercentage)
	assert.Equal(t, 0.0, result.RefundAmount)
	assert.Empty(t, env.payments.requests)
}

func TestCancel_ExactlyAtCutoffRefunds(t *testing.T) {
	env := newTestEnv()
	b := env.pendingBooking(1)
	// Начало ровно через 24 часа
	b.BookingDate = testNow.AddDate(0, 0, 1).Truncate(24 * time.Hour)
	b.StartTime = types.TimeString("12:00")

	result, err := env.svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		Actor:  customer(),
		Reason: "plans changed",
	})
	require.NoError(t, err)
	assert.Equal(t, 80.0, result.RefundPercentage)
}

func TestCancel_CompletedBookingCannotBeCancelled(t *testing.T) {
	env := newTestEnv()
	b := env.pendingBooking(1)
	b.Status = domain.StatusCompleted

	_, err := env.svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		Actor:  customer(),
		Reason: "too late anyway",
	})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_StrangerDenied(t *testing.T) {
	env := newTestEnv()
	env.pendingBooking(1)

	stranger := domain.Actor{UserID: 1000, Role: domain.RoleCustomer}
	_, err := env.svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		Actor:  stranger,
		Reason: "not my booking",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_PaymentFailureDoesNotFailCancellation(t *testing.T) {
	env := newTestEnv()
	env.pendingBooking(1)
	env.payments.err = assert.AnError

	result, err := env.svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		Actor:  customer(),
		Reason: "plans changed",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), result.Status)
}

func TestConfirm_ByCustomer(t *testing.T) {
	env := newTestEnv()
	b := env.pendingBooking(1)
	b.Status = domain.StatusApproved

	resp, err := env.svc.Confirm(context.Background(), 1, customer())
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestConfirm_FromPendingIsInvalidTransition(t *testing.T) {
	env := newTestEnv()
	env.pendingBooking(1)

	_, err := env.svc.Confirm(context.Background(), 1, customer())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCheckIn_ByOwner(t *testing.T) {
	env := newTestEnv()
	b := env.pendingBooking(1)
	b.Status = domain.StatusConfirmed

	resp, err := env.svc.CheckIn(context.Background(), 1, owner())
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCheckedIn), resp.Status)
}

func TestComplete_FromCheckedIn(t *testing.T) {
	env := newTestEnv()
	b := env.pendingBooking(1)
	b.Status = domain.StatusCheckedIn

	resp, err := env.svc.Complete(context.Background(), 1, owner())
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)

	require.Len(t, env.events.events, 1)
	assert.Equal(t, domain.EventBookingCompleted, env.events.events[0].EventType)
}

func TestGetByID_CustomerSeesOwnBooking(t *testing.T) {
	env := newTestEnv()
	env.pendingBooking(1)

	resp, err := env.svc.GetByID(context.Background(), 1, customer())
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
}

func TestGetByID_StrangerDenied(t *testing.T) {
	env := newTestEnv()
	env.pendingBooking(1)

	stranger := domain.Actor{UserID: 1000, Role: domain.RoleCustomer}
	_, err := env.svc.GetByID(context.Background(), 1, stranger)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetUserBookings_FilterByStatus(t *testing.T) {
	env := newTestEnv()
	env.pendingBooking(1)
	b := env.pendingBooking(2)
	b.Status = domain.StatusCancelled

	status := string(domain.StatusPendingApproval)
	resp, err := env.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: customerID,
		Status: &status,
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(1), resp.Bookings[0].ID)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	env := newTestEnv()

	status := "nonsense"
	_, err := env.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: customerID,
		Status: &status,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetStudioBookings_OwnerSeesOwnStudios(t *testing.T) {
	env := newTestEnv()
	env.pendingBooking(1)

	resp, err := env.svc.GetStudioBookings(context.Background(), &models.GetStudioBookingsRequest{
		Actor: owner(),
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
}

func TestGetStudioBookings_AdminRequiresStudioID(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.GetStudioBookings(context.Background(), &models.GetStudioBookingsRequest{
		Actor: admin(),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetStudioBookings_OwnerCannotQueryForeignStudio(t *testing.T) {
	env := newTestEnv()
	foreign := int64(777)

	_, err := env.svc.GetStudioBookings(context.Background(), &models.GetStudioBookingsRequest{
		Actor:    owner(),
		StudioID: &foreign,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
