package commit_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bookline/BL-BookingEngine/internal/domain"
	reservationRepo "github.com/bookline/BL-BookingEngine/internal/infra/storage/reservation"
	"github.com/bookline/BL-BookingEngine/internal/integrations/messenger"
	staffClient "github.com/bookline/BL-BookingEngine/internal/integrations/staffservice"
	"github.com/bookline/BL-BookingEngine/internal/scheduling"
)

const notifyTimeout = 5 * time.Second

// UseCase use case для фиксации бронирования (создание или перенос)
// Использует сериализуемую транзакцию и блокировку строк для предотвращения
// гонки данных: слот проверяется заново по свежему снапшоту внутри транзакции
type UseCase struct {
	reservationRepo ReservationRepository
	staffClient     StaffServiceClient
	messengerClient MessengerClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	staffClient StaffServiceClient,
	messengerClient MessengerClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		staffClient:     staffClient,
		messengerClient: messengerClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case фиксации бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CommitReservation: user=%d, staff=%d, services=%v, date=%s, time=%s",
		req.UserID, req.StaffID, req.ServiceIDs, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CommitReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Дата в прошлом - ошибка (в отличие от просмотра слотов)
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CommitReservation: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 4. Получаем расписание сотрудника
	schedule, err := uc.staffClient.GetSchedule(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffClient.ErrStaffNotFound) {
			uc.logger.Warn("CommitReservation: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CommitReservation: failed to get schedule for staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 5. Получаем и резолвим услуги
	available, err := uc.staffClient.GetServices(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffClient.ErrStaffNotFound) {
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CommitReservation: failed to get services for staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	services, err := resolveServices(req.ServiceIDs, available)
	if err != nil {
		uc.logger.Warn("CommitReservation: %v", err)
		return nil, err
	}

	totalDuration := domain.TotalDuration(services)

	// 6. Получаем акции сотрудника (для проверки OfferID и для предложения после фиксации)
	offers, err := uc.staffClient.GetOffers(ctx, req.StaffID)
	if err != nil {
		// Акции не критичны для фиксации: деградируем до пустого списка
		uc.logger.Warn("CommitReservation: failed to get offers for staff id=%d: %v", req.StaffID, err)
		offers = nil
	}

	// 7. Считаем итоговую цену (с учетом акции, если бронирование по акции)
	totalPrice, err := uc.resolvePrice(req, services, offers, now)
	if err != nil {
		uc.logger.Warn("CommitReservation: %v", err)
		return nil, err
	}

	startMinutes, err := req.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	var result *domain.Reservation
	rescheduled := false

	// 8. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. При переносе - загружаем и проверяем исходное бронирование
		var existing *domain.Reservation
		if req.RescheduleOf != nil {
			existing, err = uc.loadForReschedule(txCtx, *req.RescheduleOf, req.UserID)
			if err != nil {
				return err
			}
			rescheduled = true
		}

		// 8.2. Проверяем, что сотрудник работает в эту дату
		intervals := scheduling.ResolveDay(schedule.WeeklyHours, req.Date)
		if len(intervals) == 0 {
			uc.logger.Warn("CommitReservation: staff id=%d is closed on %s",
				req.StaffID, req.Date.Format(domain.DateFormat))
			return ErrStaffUnavailable
		}

		// 8.3. Время начала должно совпадать со слотом сетки
		candidates := scheduling.GenerateSlots(intervals, totalDuration, schedule.BufferMinutes)
		if !containsSlot(candidates, startMinutes) {
			uc.logger.Warn("CommitReservation: time %s is not a valid slot for staff id=%d on %s",
				req.StartTime, req.StaffID, req.Date.Format(domain.DateFormat))
			return ErrInvalidSlot
		}

		// 8.4. Для сегодняшней даты - проверка минимального времени упреждения
		if isSameDay(req.Date, now) && startMinutes <= minutesOfDay(now)+domain.DefaultLeadTimeMinutes {
			uc.logger.Warn("CommitReservation: time %s violates lead time", req.StartTime)
			return ErrTooLateToBook
		}

		// 8.5. Получаем активные бронирования на дату с блокировкой (FOR UPDATE),
		// исключая переносимое бронирование
		reservations, err := uc.reservationRepo.GetByStaffWithFilter(txCtx, domain.StaffDayFilter{
			StaffID:   req.StaffID,
			Date:      &req.Date,
			ExcludeID: req.RescheduleOf,
		})
		if err != nil {
			uc.logger.Error("CommitReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// 8.6. Проверяем слот по свежему снапшоту
		free := scheduling.FilterConflicts(
			[]int{startMinutes},
			reservations,
			totalDuration,
			schedule.BufferMinutes,
			false, 0, 0, // упреждение уже проверено на шаге 8.4
		)
		if len(free) == 0 {
			uc.logger.Warn("CommitReservation: slot %s on %s is already taken",
				req.StartTime, req.Date.Format(domain.DateFormat))
			return ErrSlotTaken
		}

		// 8.7. Переносим или создаем бронирование
		if existing != nil {
			if err := uc.reservationRepo.Reschedule(txCtx, existing.ID, req.Date, req.StartTime); err != nil {
				uc.logger.Error("CommitReservation: failed to reschedule id=%d: %v", existing.ID, err)
				return fmt.Errorf("%w: failed to reschedule: %v", ErrInternal, err)
			}
			existing.Date = req.Date
			existing.StartTime = req.StartTime
			existing.UpdatedAt = now
			result = existing
			return nil
		}

		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			StaffID:         req.StaffID,
			UserID:          req.UserID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: totalDuration,
			Status:          domain.StatusPending,
			CustomerName:    req.CustomerName,
			CustomerPhone:   req.CustomerPhone,
			CustomerEmail:   req.CustomerEmail,
			// Денормализация состава услуг
			ServiceIDs:     req.ServiceIDs,
			ServiceNames:   serviceNames(services),
			TotalPrice:     totalPrice,
			IsOfferBooking: req.OfferID != nil,
		})
		if err != nil {
			uc.logger.Error("CommitReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CommitReservation: successfully committed reservation id=%d (rescheduled=%v)",
		result.ID, rescheduled)

	// 9. Уведомление best-effort: фиксация не ждет доставки
	uc.notifyAsync(result, rescheduled)

	// 10. Подбираем акцию для предложения клиенту (не для бронирований по акции)
	var matched *MatchedOffer
	if req.OfferID == nil {
		matched = uc.matchOfferForResponse(offers, services, req.ServiceIDs, now)
	}

	return &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		StaffID:         result.StaffID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceNames:    result.ServiceNames,
		TotalPrice:      result.TotalPrice,
		IsOfferBooking:  result.IsOfferBooking,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
		MatchedOffer:    matched,
	}, nil
}

// loadForReschedule загружает переносимое бронирование и проверяет, что его можно перенести
func (uc *UseCase) loadForReschedule(ctx context.Context, id, userID int64) (*domain.Reservation, error) {
	existing, err := uc.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("CommitReservation: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("CommitReservation: failed to get reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	// Чужое бронирование не раскрываем
	if existing.UserID != userID {
		uc.logger.Warn("CommitReservation: reservation id=%d does not belong to user id=%d", id, userID)
		return nil, ErrReservationNotFound
	}

	if !existing.CanBeRescheduled() {
		uc.logger.Warn("CommitReservation: reservation id=%d cannot be rescheduled (status=%s)",
			id, existing.Status)
		return nil, ErrCannotReschedule
	}

	return existing, nil
}

// resolvePrice считает итоговую цену бронирования
// При бронировании по акции цена услуги акции заменяется на акционную;
// акция должна быть активна сейчас и относиться к одной из выбранных услуг
func (uc *UseCase) resolvePrice(req *Request, services []*domain.Service, offers []*domain.Offer, now time.Time) (float64, error) {
	if req.OfferID == nil {
		return domain.TotalPrice(services), nil
	}

	var offer *domain.Offer
	for _, o := range offers {
		if o.ID == *req.OfferID {
			offer = o
			break
		}
	}

	if offer == nil || !offer.IsActiveAt(now) || !offer.AppliesTo(req.ServiceIDs) {
		return 0, fmt.Errorf("%w: id=%d", ErrOfferNotValid, *req.OfferID)
	}

	total := 0.0
	for _, s := range services {
		if s.ID == offer.ServiceID {
			total += offer.AdjustedPrice(s.Price)
		} else {
			total += s.Price
		}
	}
	return total, nil
}

// matchOfferForResponse выбирает первую подходящую акцию в исходном порядке
func (uc *UseCase) matchOfferForResponse(offers []*domain.Offer, services []*domain.Service, serviceIDs []int64, now time.Time) *MatchedOffer {
	offer := domain.MatchOffer(offers, serviceIDs, now)
	if offer == nil {
		return nil
	}

	for _, s := range services {
		if s.ID == offer.ServiceID {
			return &MatchedOffer{
				ID:            offer.ID,
				ServiceID:     offer.ServiceID,
				ServiceName:   s.Name,
				OriginalPrice: s.Price,
				OfferPrice:    offer.AdjustedPrice(s.Price),
				EndAt:         offer.EndAt,
			}
		}
	}
	return nil
}

// notifyAsync отправляет уведомление в фоне, не блокируя ответ
func (uc *UseCase) notifyAsync(res *domain.Reservation, rescheduled bool) {
	template := messenger.TemplateReservationCreated
	if rescheduled {
		template = messenger.TemplateReservationRescheduled
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		err := uc.messengerClient.Notify(ctx, messenger.NotifyRequest{
			Template:  template,
			Recipient: res.CustomerPhone,
			Payload: map[string]interface{}{
				"reservation_id": res.ID,
				"date":           res.Date.Format(domain.DateFormat),
				"start_time":     res.StartTime.String(),
				"services":       res.ServiceNames,
			},
		})
		if err != nil {
			uc.logger.Warn("CommitReservation: failed to notify about reservation id=%d: %v", res.ID, err)
		}
	}()
}

// serviceNames собирает имена услуг в порядке запроса
func serviceNames(services []*domain.Service) []string {
	names := make([]string, len(services))
	for i, s := range services {
		names[i] = s.Name
	}
	return names
}
