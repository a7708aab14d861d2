package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookline/BL-BookingEngine/internal/domain"
	staffClient "github.com/bookline/BL-BookingEngine/internal/integrations/staffservice"
)

type stubReservationRepo struct {
	reservations []*domain.Reservation
	err          error
	lastFilter   domain.StaffDayFilter
}

func (s *stubReservationRepo) GetByStaffWithFilter(_ context.Context, filter domain.StaffDayFilter) ([]*domain.Reservation, error) {
	s.lastFilter = filter
	return s.reservations, s.err
}

type stubStaffClient struct {
	schedule    *domain.StaffSchedule
	scheduleErr error
	services    []*domain.Service
	servicesErr error
}

func (s *stubStaffClient) GetSchedule(_ context.Context, _ int64) (*domain.StaffSchedule, error) {
	return s.schedule, s.scheduleErr
}

func (s *stubStaffClient) GetServices(_ context.Context, _ int64) ([]*domain.Service, error) {
	return s.services, s.servicesErr
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

func mondaySchedule(ranges []domain.TimeRange, buffer int) *domain.StaffSchedule {
	return &domain.StaffSchedule{
		StaffID: 1,
		WeeklyHours: domain.WeeklyHours{
			Monday: ranges,
		},
		BufferMinutes: buffer,
	}
}

// 2026-03-02 - понедельник
var testMonday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func newTestUseCase(repo *stubReservationRepo, client *stubStaffClient, now time.Time) *UseCase {
	uc := NewUseCase(repo, client, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecute_MorningWindow(t *testing.T) {
	// Окно 09:00-12:00, услуга 60 минут, буфер 10: помещаются 09:00 и 10:10
	repo := &stubReservationRepo{}
	client := &stubStaffClient{
		schedule: mondaySchedule([]domain.TimeRange{{Start: "09:00", End: "12:00"}}, 10),
		services: []*domain.Service{{ID: 5, Name: "Haircut", DurationMinutes: 60, Price: 1500}},
	}
	uc := newTestUseCase(repo, client, testMonday.AddDate(0, 0, -7))

	resp, err := uc.Execute(context.Background(), &Request{
		StaffID:    1,
		ServiceIDs: []int64{5},
		Date:       testMonday,
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "09:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, "10:10", resp.Slots[1].StartTime.String())
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, 10, resp.BufferMinutes)
}

func TestExecute_ConflictFiltered(t *testing.T) {
	// Бронь на 09:50 (30 мин + буфер 10) занимает [09:50, 10:30) и выбивает слот 10:00
	repo := &stubReservationRepo{
		reservations: []*domain.Reservation{
			{
				ID:              1,
				StaffID:         1,
				Date:            testMonday,
				StartTime:       "09:50",
				DurationMinutes: 30,
				Status:          domain.StatusApproved,
			},
		},
	}
	client := &stubStaffClient{
		schedule: mondaySchedule([]domain.TimeRange{{Start: "09:00", End: "12:00"}}, 10),
		services: []*domain.Service{{ID: 5, Name: "Trim", DurationMinutes: 30, Price: 800}},
	}
	uc := newTestUseCase(repo, client, testMonday.AddDate(0, 0, -7))

	resp, err := uc.Execute(context.Background(), &Request{
		StaffID:    1,
		ServiceIDs: []int64{5},
		Date:       testMonday,
	})
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		assert.NotEqual(t, "10:00", slot.StartTime.String())
	}
	assert.Equal(t, "09:00", resp.Slots[0].StartTime.String())
}

func TestExecute_SameDayLeadTime(t *testing.T) {
	// Сейчас 14:00, упреждение 60 минут: слоты до 15:00 включительно отклоняются
	repo := &stubReservationRepo{}
	client := &stubStaffClient{
		schedule: mondaySchedule([]domain.TimeRange{{Start: "14:00", End: "18:00"}}, 0),
		services: []*domain.Service{{ID: 5, Name: "Consult", DurationMinutes: 30, Price: 500}},
	}
	now := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)
	uc := newTestUseCase(repo, client, now)

	resp, err := uc.Execute(context.Background(), &Request{
		StaffID:    1,
		ServiceIDs: []int64{5},
		Date:       testMonday,
	})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, "15:30", resp.Slots[0].StartTime.String())
}

func TestExecute_PastDateReturnsEmpty(t *testing.T) {
	repo := &stubReservationRepo{}
	client := &stubStaffClient{
		schedule: mondaySchedule([]domain.TimeRange{{Start: "09:00", End: "18:00"}}, 0),
		services: []*domain.Service{{ID: 5, Name: "Haircut", DurationMinutes: 60, Price: 1500}},
	}
	uc := newTestUseCase(repo, client, testMonday.AddDate(0, 0, 7))

	resp, err := uc.Execute(context.Background(), &Request{
		StaffID:    1,
		ServiceIDs: []int64{5},
		Date:       testMonday,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ClosedDayReturnsEmpty(t *testing.T) {
	// В недельном расписании нет интервалов на вторник
	repo := &stubReservationRepo{}
	client := &stubStaffClient{
		schedule: mondaySchedule([]domain.TimeRange{{Start: "09:00", End: "18:00"}}, 0),
		services: []*domain.Service{{ID: 5, Name: "Haircut", DurationMinutes: 60, Price: 1500}},
	}
	uc := newTestUseCase(repo, client, testMonday.AddDate(0, 0, -7))

	tuesday := testMonday.AddDate(0, 0, 1)
	resp, err := uc.Execute(context.Background(), &Request{
		StaffID:    1,
		ServiceIDs: []int64{5},
		Date:       tuesday,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_StaffNotFound(t *testing.T) {
	repo := &stubReservationRepo{}
	client := &stubStaffClient{scheduleErr: staffClient.ErrStaffNotFound}
	uc := newTestUseCase(repo, client, testMonday)

	_, err := uc.Execute(context.Background(), &Request{
		StaffID:    99,
		ServiceIDs: []int64{5},
		Date:       testMonday,
	})
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	repo := &stubReservationRepo{}
	client := &stubStaffClient{
		schedule: mondaySchedule([]domain.TimeRange{{Start: "09:00", End: "18:00"}}, 0),
		services: []*domain.Service{{ID: 5, Name: "Haircut", DurationMinutes: 60, Price: 1500}},
	}
	uc := newTestUseCase(repo, client, testMonday.AddDate(0, 0, -7))

	_, err := uc.Execute(context.Background(), &Request{
		StaffID:    1,
		ServiceIDs: []int64{5, 42},
		Date:       testMonday,
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(&stubReservationRepo{}, &stubStaffClient{}, testMonday)

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero staff id", &Request{StaffID: 0, ServiceIDs: []int64{1}, Date: testMonday}},
		{"no services", &Request{StaffID: 1, ServiceIDs: nil, Date: testMonday}},
		{"negative service id", &Request{StaffID: 1, ServiceIDs: []int64{-1}, Date: testMonday}},
		{"zero date", &Request{StaffID: 1, ServiceIDs: []int64{1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_MultipleServicesSumDuration(t *testing.T) {
	// Две услуги 30+45 = 75 минут, буфер 15: шаг 90 минут в окне 10:00-16:00
	repo := &stubReservationRepo{}
	client := &stubStaffClient{
		schedule: mondaySchedule([]domain.TimeRange{{Start: "10:00", End: "16:00"}}, 15),
		services: []*domain.Service{
			{ID: 1, Name: "Cut", DurationMinutes: 30, Price: 800},
			{ID: 2, Name: "Color", DurationMinutes: 45, Price: 2000},
		},
	}
	uc := newTestUseCase(repo, client, testMonday.AddDate(0, 0, -7))

	resp, err := uc.Execute(context.Background(), &Request{
		StaffID:    1,
		ServiceIDs: []int64{1, 2},
		Date:       testMonday,
	})
	require.NoError(t, err)

	assert.Equal(t, 75, resp.DurationMinutes)
	require.Len(t, resp.Slots, 4)
	assert.Equal(t, "10:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, "11:30", resp.Slots[1].StartTime.String())
	assert.Equal(t, "13:00", resp.Slots[2].StartTime.String())
	assert.Equal(t, "14:30", resp.Slots[3].StartTime.String())
}
