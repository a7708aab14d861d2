package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/bookline/BL-BookingEngine/internal/domain"
	staffClient "github.com/bookline/BL-BookingEngine/internal/integrations/staffservice"
	"github.com/bookline/BL-BookingEngine/internal/scheduling"
	"github.com/bookline/BL-BookingEngine/pkg/types"
)

// UseCase use case для получения доступных слотов на день
// Результат - подсказка для UI: окончательная проверка занятости
// выполняется заново на commit-пути
type UseCase struct {
	reservationRepo ReservationRepository
	staffClient     StaffServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	staffClient StaffServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		staffClient:     staffClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: staff=%d, services=%v, date=%s",
		req.StaffID, req.ServiceIDs, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем расписание сотрудника (рабочие часы + буфер)
	schedule, err := uc.staffClient.GetSchedule(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffClient.ErrStaffNotFound) {
			uc.logger.Warn("GetAvailableSlots: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get schedule for staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 4. Получаем услуги и суммарную длительность
	available, err := uc.staffClient.GetServices(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffClient.ErrStaffNotFound) {
			uc.logger.Warn("GetAvailableSlots: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get services for staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	services, err := resolveServices(req.ServiceIDs, available)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return nil, err
	}

	totalDuration := domain.TotalDuration(services)

	// 5. Дата в прошлом деградирует до пустого списка, а не до ошибки
	if isDateInPast(req.Date, now) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past, returning empty slots",
			req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req, totalDuration, schedule.BufferMinutes), nil
	}

	// 6. Разворачиваем недельное расписание в интервалы дня
	intervals := scheduling.ResolveDay(schedule.WeeklyHours, req.Date)
	if len(intervals) == 0 {
		uc.logger.Info("GetAvailableSlots: staff id=%d has no open intervals on %s",
			req.StaffID, req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req, totalDuration, schedule.BufferMinutes), nil
	}

	// 7. Генерируем кандидатов
	candidates := scheduling.GenerateSlots(intervals, totalDuration, schedule.BufferMinutes)

	// 8. Получаем активные бронирования на дату
	reservations, err := uc.reservationRepo.GetByStaffWithFilter(ctx, domain.StaffDayFilter{
		StaffID: req.StaffID,
		Date:    &req.Date,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 9. Фильтруем конфликты и (для сегодня) слоты внутри времени упреждения
	free := scheduling.FilterConflicts(
		candidates,
		reservations,
		totalDuration,
		schedule.BufferMinutes,
		isSameDay(req.Date, now),
		minutesOfDay(now),
		domain.DefaultLeadTimeMinutes,
	)

	slots := make([]Slot, 0, len(free))
	for _, minute := range free {
		startTime, err := types.NewTimeStringFromMinutes(minute)
		if err != nil {
			// Генератор не выдает минуты вне суток; пропускаем на всякий случай
			continue
		}
		slots = append(slots, Slot{StartTime: startTime})
	}

	uc.logger.Info("GetAvailableSlots: %d slots for staff=%d, date=%s",
		len(slots), req.StaffID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		StaffID:         req.StaffID,
		DurationMinutes: totalDuration,
		BufferMinutes:   schedule.BufferMinutes,
		Slots:           slots,
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request, totalDuration, buffer int) *Response {
	return &Response{
		Date:            req.Date,
		StaffID:         req.StaffID,
		DurationMinutes: totalDuration,
		BufferMinutes:   buffer,
		Slots:           []Slot{},
	}
}
