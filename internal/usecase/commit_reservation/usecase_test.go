package commit_reservation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookline/BL-BookingEngine/internal/domain"
	reservationRepo "github.com/bookline/BL-BookingEngine/internal/infra/storage/reservation"
	"github.com/bookline/BL-BookingEngine/internal/integrations/messenger"
	"github.com/bookline/BL-BookingEngine/pkg/ptr"
	"github.com/bookline/BL-BookingEngine/pkg/types"
)

type stubReservationRepo struct {
	reservations []*domain.Reservation
	byID         map[int64]*domain.Reservation

	created         *domain.Reservation
	rescheduledID   int64
	rescheduledTo   types.TimeString
	rescheduledDate time.Time
	lastFilter      domain.StaffDayFilter
}

func (s *stubReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	created := *res
	created.ID = 101
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	s.created = &created
	return &created, nil
}

func (s *stubReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	res, ok := s.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return res, nil
}

func (s *stubReservationRepo) GetByStaffWithFilter(_ context.Context, filter domain.StaffDayFilter) ([]*domain.Reservation, error) {
	s.lastFilter = filter
	result := make([]*domain.Reservation, 0, len(s.reservations))
	for _, r := range s.reservations {
		if filter.ExcludeID != nil && r.ID == *filter.ExcludeID {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (s *stubReservationRepo) Reschedule(_ context.Context, id int64, date time.Time, startTime types.TimeString) error {
	s.rescheduledID = id
	s.rescheduledDate = date
	s.rescheduledTo = startTime
	return nil
}

type stubStaffClient struct {
	schedule *domain.StaffSchedule
	services []*domain.Service
	offers   []*domain.Offer
}

func (s *stubStaffClient) GetSchedule(_ context.Context, _ int64) (*domain.StaffSchedule, error) {
	return s.schedule, nil
}

func (s *stubStaffClient) GetServices(_ context.Context, _ int64) ([]*domain.Service, error) {
	return s.services, nil
}

func (s *stubStaffClient) GetOffers(_ context.Context, _ int64) ([]*domain.Offer, error) {
	return s.offers, nil
}

type stubMessenger struct {
	mu       sync.Mutex
	requests []messenger.NotifyRequest
}

func (s *stubMessenger) Notify(_ context.Context, req messenger.NotifyRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	return nil
}

func (s *stubMessenger) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *stubMessenger) last() messenger.NotifyRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[len(s.requests)-1]
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// 2026-03-02 - понедельник
var testMonday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func mondaySchedule(buffer int) *domain.StaffSchedule {
	return &domain.StaffSchedule{
		StaffID: 1,
		WeeklyHours: domain.WeeklyHours{
			Monday: []domain.TimeRange{{Start: "09:00", End: "18:00"}},
		},
		BufferMinutes: buffer,
	}
}

func defaultServices() []*domain.Service {
	return []*domain.Service{{ID: 5, Name: "Haircut", DurationMinutes: 60, Price: 1500}}
}

func newTestUseCase(repo *stubReservationRepo, client *stubStaffClient, msg *stubMessenger, now time.Time) *UseCase {
	uc := NewUseCase(repo, client, msg, passthroughTxManager{}, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func validRequest() *Request {
	return &Request{
		UserID:        42,
		StaffID:       1,
		ServiceIDs:    []int64{5},
		Date:          testMonday,
		StartTime:     "10:00",
		CustomerName:  "Иван Петров",
		CustomerPhone: "+79991234567",
	}
}

func TestExecute_CreatesReservation(t *testing.T) {
	repo := &stubReservationRepo{}
	client := &stubStaffClient{schedule: mondaySchedule(0), services: defaultServices()}
	msg := &stubMessenger{}
	uc := newTestUseCase(repo, client, msg, testMonday.AddDate(0, 0, -7))

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, 1500.0, resp.TotalPrice)
	assert.Equal(t, []string{"Haircut"}, resp.ServiceNames)
	assert.False(t, resp.IsOfferBooking)

	require.NotNil(t, repo.created)
	assert.Equal(t, domain.StatusPending, repo.created.Status)
	assert.Equal(t, "Иван Петров", repo.created.CustomerName)

	require.Eventually(t, func() bool { return msg.count() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, messenger.TemplateReservationCreated, msg.last().Template)
}

func TestExecute_SlotTaken(t *testing.T) {
	// Конкурирующее бронирование 09:30 (60 мин) пересекается с запрошенным 10:00
	repo := &stubReservationRepo{
		reservations: []*domain.Reservation{
			{
				ID:              7,
				StaffID:         1,
				Date:            testMonday,
				StartTime:       "09:30",
				DurationMinutes: 60,
				Status:          domain.StatusApproved,
			},
		},
	}
	client := &stubStaffClient{schedule: mondaySchedule(0), services: defaultServices()}
	uc := newTestUseCase(repo, client, &stubMessenger{}, testMonday.AddDate(0, 0, -7))

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Nil(t, repo.created)
}

func TestExecute_CancelledReservationDoesNotBlock(t *testing.T) {
	repo := &stubReservationRepo{
		reservations: []*domain.Reservation{
			{
				ID:              7,
				StaffID:         1,
				Date:            testMonday,
				StartTime:       "10:00",
				DurationMinutes: 60,
				Status:          domain.StatusCancelled,
			},
		},
	}
	client := &stubStaffClient{schedule: mondaySchedule(0), services: defaultServices()}
	uc := newTestUseCase(repo, client, &stubMessenger{}, testMonday.AddDate(0, 0, -7))

	_, err := uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_InvalidSlot(t *testing.T) {
	// 10:30 не лежит на сетке с шагом 60 минут от 09:00
	repo := &stubReservationRepo{}
	client := &stubStaffClient{schedule: mondaySchedule(0), services: defaultServices()}
	uc := newTestUseCase(repo, client, &stubMessenger{}, testMonday.AddDate(0, 0, -7))

	req := validRequest()
	req.StartTime = "10:30"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestExecute_StaffUnavailable(t *testing.T) {
	repo := &stubReservationRepo{}
	client := &stubStaffClient{schedule: mondaySchedule(0), services: defaultServices()}
	uc := newTestUseCase(repo, client, &stubMessenger{}, testMonday.AddDate(0, 0, -7))

	req := validRequest()
	req.Date = testMonday.AddDate(0, 0, 1) // Вторник - выходной
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStaffUnavailable)
}

func TestExecute_TooLateToBook(t *testing.T) {
	// Сейчас 09:30, упреждение 60 минут: 10:00 <= 10:30 - отказ
	repo := &stubReservationRepo{}
	client := &stubStaffClient{schedule: mondaySchedule(0), services: defaultServices()}
	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	uc := newTestUseCase(repo, client, &stubMessenger{}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_PastDate(t *testing.T) {
	repo := &stubReservationRepo{}
	client := &stubStaffClient{schedule: mondaySchedule(0), services: defaultServices()}
	uc := newTestUseCase(repo, client, &stubMessenger{}, testMonday.AddDate(0, 0, 7))

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_Reschedule(t *testing.T) {
	original := &domain.Reservation{
		ID:              7,
		StaffID:         1,
		UserID:          42,
		Date:            testMonday,
		StartTime:       "11:00",
		DurationMinutes: 60,
		Status:          domain.StatusApproved,
		CustomerPhone:   "+79991234567",
		ServiceNames:    []string{"Haircut"},
	}
	repo := &stubReservationRepo{
		reservations: []*domain.Reservation{original},
		byID:         map[int64]*domain.Reservation{7: original},
	}
	client := &stubStaffClient{schedule: mondaySchedule(0), services: defaultServices()}
	msg := &stubMessenger{}
	uc := newTestUseCase(repo, client, msg, testMonday.AddDate(0, 0, -7))

	req := validRequest()
	req.RescheduleOf = ptr.Ptr(int64(7))
	req.StartTime = "11:00" // Исходный слот свободен, т.к. своя бронь исключена

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, int64(7), repo.rescheduledID)
	assert.Equal(t, types.TimeString("11:00"), repo.rescheduledTo)
	require.NotNil(t, repo.lastFilter.ExcludeID)
	assert.Equal(t, int64(7), *repo.lastFilter.ExcludeID)
	assert.Nil(t, repo.created)

	require.Eventually(t, func() bool { return msg.count() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, messenger.TemplateReservationRescheduled, msg.last().Template)
}

func TestExecute_RescheduleCancelledReservation(t *testing.T) {
	cancelled := &domain.Reservation{
		ID:      7,
		StaffID: 1,
		UserID:  42,
		Status:  domain.StatusCancelled,
	}
	repo := &stubReservationRepo{byID: map[int64]*domain.Reservation{7: cancelled}}
	client := &stubStaffClient{schedule: mondaySchedule(0), services: defaultServices()}
	uc := newTestUseCase(repo, client, &stubMessenger{}, testMonday.AddDate(0, 0, -7))

	req := validRequest()
	req.RescheduleOf = ptr.Ptr(int64(7))
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCannotReschedule)
}

func TestExecute_RescheduleForeignReservation(t *testing.T) {
	foreign := &domain.Reservation{
		ID:      7,
		StaffID: 1,
		UserID:  999,
		Status:  domain.StatusApproved,
	}
	repo := &stubReservationRepo{byID: map[int64]*domain.Reservation{7: foreign}}
	client := &stubStaffClient{schedule: mondaySchedule(0), services: defaultServices()}
	uc := newTestUseCase(repo, client, &stubMessenger{}, testMonday.AddDate(0, 0, -7))

	req := validRequest()
	req.RescheduleOf = ptr.Ptr(int64(7))
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_OfferBookingAdjustsPrice(t *testing.T) {
	repo := &stubReservationRepo{}
	client := &stubStaffClient{
		schedule: mondaySchedule(0),
		services: defaultServices(),
		offers: []*domain.Offer{
			{
				ID:                 3,
				StaffID:            1,
				ServiceID:          5,
				DiscountPercentage: ptr.Ptr(20.0),
				StartAt:            testMonday.AddDate(0, 0, -14),
				EndAt:              testMonday.AddDate(0, 0, 14),
			},
		},
	}
	uc := newTestUseCase(repo, client, &stubMessenger{}, testMonday.AddDate(0, 0, -7))

	req := validRequest()
	req.OfferID = ptr.Ptr(int64(3))
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1200.0, resp.TotalPrice)
	assert.True(t, resp.IsOfferBooking)
	// Бронирование по акции не порождает нового предложения
	assert.Nil(t, resp.MatchedOffer)
}

func TestExecute_ExpiredOfferRejected(t *testing.T) {
	repo := &stubReservationRepo{}
	client := &stubStaffClient{
		schedule: mondaySchedule(0),
		services: defaultServices(),
		offers: []*domain.Offer{
			{
				ID:         3,
				StaffID:    1,
				ServiceID:  5,
				FixedPrice: ptr.Ptr(500.0),
				StartAt:    testMonday.AddDate(0, 0, -30),
				EndAt:      testMonday.AddDate(0, 0, -20),
			},
		},
	}
	uc := newTestUseCase(repo, client, &stubMessenger{}, testMonday.AddDate(0, 0, -7))

	req := validRequest()
	req.OfferID = ptr.Ptr(int64(3))
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOfferNotValid)
}

func TestExecute_MatchedOfferInResponse(t *testing.T) {
	repo := &stubReservationRepo{}
	now := testMonday.AddDate(0, 0, -7)
	client := &stubStaffClient{
		schedule: mondaySchedule(0),
		services: defaultServices(),
		offers: []*domain.Offer{
			// Первая акция не для выбранной услуги - пропускается
			{
				ID:         2,
				StaffID:    1,
				ServiceID:  99,
				FixedPrice: ptr.Ptr(100.0),
				StartAt:    now.AddDate(0, 0, -1),
				EndAt:      now.AddDate(0, 0, 30),
			},
			{
				ID:         3,
				StaffID:    1,
				ServiceID:  5,
				FixedPrice: ptr.Ptr(990.0),
				StartAt:    now.AddDate(0, 0, -1),
				EndAt:      now.AddDate(0, 0, 30),
			},
		},
	}
	uc := newTestUseCase(repo, client, &stubMessenger{}, now)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.NotNil(t, resp.MatchedOffer)
	assert.Equal(t, int64(3), resp.MatchedOffer.ID)
	assert.Equal(t, "Haircut", resp.MatchedOffer.ServiceName)
	assert.Equal(t, 1500.0, resp.MatchedOffer.OriginalPrice)
	assert.Equal(t, 990.0, resp.MatchedOffer.OfferPrice)
	// Цена самого бронирования не меняется предложением
	assert.Equal(t, 1500.0, resp.TotalPrice)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(&stubReservationRepo{}, &stubStaffClient{}, &stubMessenger{}, testMonday)

	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"zero user id", func(r *Request) { r.UserID = 0 }},
		{"zero staff id", func(r *Request) { r.StaffID = 0 }},
		{"no services", func(r *Request) { r.ServiceIDs = nil }},
		{"bad start time", func(r *Request) { r.StartTime = "25:99" }},
		{"empty customer name", func(r *Request) { r.CustomerName = "  " }},
		{"empty customer phone", func(r *Request) { r.CustomerPhone = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
