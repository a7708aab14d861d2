package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bookline/BL-BookingEngine/internal/usecase/commit_reservation"
)

// Manager управляет жизненным циклом сессий бронирования
// Загружает сессию из хранилища, применяет охраняемый переход и сохраняет обратно
type Manager struct {
	store             SessionStore
	commitUC          CommitUseCase
	reservationReader ReservationReader
	timeProvider      TimeProvider
	logger            Logger
}

// NewManager создает новый экземпляр менеджера сессий
func NewManager(
	store SessionStore,
	commitUC CommitUseCase,
	reservationReader ReservationReader,
	logger Logger,
) *Manager {
	return &Manager{
		store:             store,
		commitUC:          commitUC,
		reservationReader: reservationReader,
		timeProvider:      &RealTimeProvider{},
		logger:            logger,
	}
}

// Start создает новую сессию обычного бронирования
func (m *Manager) Start(ctx context.Context, userID int64) (*Session, error) {
	now := m.timeProvider.Now()
	session := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		State:     StateSelectStaff,
		Mode:      ModeNew,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := m.store.Save(ctx, session); err != nil {
		m.logger.Error("Workflow: failed to save session: %v", err)
		return nil, fmt.Errorf("%w: failed to save session: %v", ErrInternal, err)
	}

	m.logger.Info("Workflow: started session id=%s for user=%d", session.ID, userID)
	return session, nil
}

// StartReschedule создает сессию переноса существующего бронирования
// Сотрудник и услуги зафиксированы, сессия входит сразу в select_slot
func (m *Manager) StartReschedule(ctx context.Context, userID, reservationID int64) (*Session, error) {
	reservation, err := m.reservationReader.GetByID(ctx, reservationID)
	if err != nil {
		m.logger.Warn("Workflow: reservation id=%d not found: %v", reservationID, err)
		return nil, ErrReservationNotFound
	}

	// Чужое бронирование не раскрываем
	if reservation.UserID != userID {
		m.logger.Warn("Workflow: reservation id=%d does not belong to user id=%d", reservationID, userID)
		return nil, ErrReservationNotFound
	}

	if !reservation.CanBeRescheduled() {
		m.logger.Warn("Workflow: reservation id=%d cannot be rescheduled (status=%s)",
			reservationID, reservation.Status)
		return nil, ErrCannotReschedule
	}

	now := m.timeProvider.Now()
	session := &Session{
		ID:            uuid.NewString(),
		UserID:        userID,
		State:         StateSelectSlot,
		Mode:          ModeReschedule,
		StaffID:       &reservation.StaffID,
		ServiceIDs:    reservation.ServiceIDs,
		CustomerName:  reservation.CustomerName,
		CustomerPhone: reservation.CustomerPhone,
		CustomerEmail: reservation.CustomerEmail,
		RescheduleOf:  &reservation.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := m.store.Save(ctx, session); err != nil {
		m.logger.Error("Workflow: failed to save session: %v", err)
		return nil, fmt.Errorf("%w: failed to save session: %v", ErrInternal, err)
	}

	m.logger.Info("Workflow: started reschedule session id=%s for reservation=%d", session.ID, reservationID)
	return session, nil
}

// Get возвращает сессию по ID
func (m *Manager) Get(ctx context.Context, sessionID string) (*Session, error) {
	return m.load(ctx, sessionID)
}

// Apply применяет пользовательское событие к сессии и сохраняет результат
func (m *Manager) Apply(ctx context.Context, sessionID string, event Event) (*Session, error) {
	session, err := m.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Во время фиксации навигация запрещена
	if session.State == StateCommitting {
		return nil, fmt.Errorf("%w: session is committing", ErrInvalidTransition)
	}

	if err := session.Apply(event, m.timeProvider.Now()); err != nil {
		m.logger.Warn("Workflow: session id=%s rejected event %s: %v", sessionID, event.Type, err)
		return nil, err
	}

	if err := m.store.Save(ctx, session); err != nil {
		m.logger.Error("Workflow: failed to save session id=%s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: failed to save session: %v", ErrInternal, err)
	}

	m.logger.Info("Workflow: session id=%s applied %s, state=%s", sessionID, event.Type, session.State)
	return session, nil
}

// Confirm фиксирует бронирование по заполненной сессии
// Сессия проходит через committing; при отказе слота переходит в failure,
// откуда событие back возвращает в select_slot для повторной попытки
func (m *Manager) Confirm(ctx context.Context, sessionID string) (*Session, error) {
	session, err := m.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.State == StateCommitting {
		return nil, fmt.Errorf("%w: session is already committing", ErrInvalidTransition)
	}

	if !session.ReadyToCommit() {
		m.logger.Warn("Workflow: session id=%s is not ready to commit (state=%s)", sessionID, session.State)
		return nil, ErrNotReadyToCommit
	}

	now := m.timeProvider.Now()
	session.State = StateCommitting
	session.UpdatedAt = now
	if err := m.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: failed to save session: %v", ErrInternal, err)
	}

	resp, commitErr := m.commitUC.Execute(ctx, &commit_reservation.Request{
		UserID:        session.UserID,
		StaffID:       *session.StaffID,
		ServiceIDs:    session.ServiceIDs,
		Date:          *session.Date,
		StartTime:     *session.StartTime,
		CustomerName:  session.CustomerName,
		CustomerPhone: session.CustomerPhone,
		CustomerEmail: session.CustomerEmail,
		RescheduleOf:  session.RescheduleOf,
		OfferID:       session.OfferID,
	})

	now = m.timeProvider.Now()
	if commitErr != nil {
		m.logger.Warn("Workflow: session id=%s commit failed: %v", sessionID, commitErr)
		session.State = StateFailure
		session.FailureReason = failureReason(commitErr)
		session.UpdatedAt = now
		if err := m.store.Save(ctx, session); err != nil {
			return nil, fmt.Errorf("%w: failed to save session: %v", ErrInternal, err)
		}
		return session, commitErr
	}

	session.ReservationID = &resp.ID
	session.FailureReason = ""
	session.UpdatedAt = now

	// Подходящая акция переводит сессию в offer_presented,
	// иначе success - конец основного пути
	if resp.MatchedOffer != nil {
		session.State = StateOfferPresented
		session.PendingOffer = &PendingOffer{
			OfferID:     resp.MatchedOffer.ID,
			ServiceID:   resp.MatchedOffer.ServiceID,
			ServiceName: resp.MatchedOffer.ServiceName,
			OfferPrice:  resp.MatchedOffer.OfferPrice,
			EndAt:       resp.MatchedOffer.EndAt,
		}
		// Слот по акции не может быть раньше только что зафиксированной даты
		dateFloor := resp.Date
		session.DateFloor = &dateFloor
	} else {
		session.State = StateSuccess
	}

	if err := m.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: failed to save session: %v", ErrInternal, err)
	}

	m.logger.Info("Workflow: session id=%s committed reservation id=%d, state=%s",
		sessionID, resp.ID, session.State)
	return session, nil
}

// RespondToOffer обрабатывает ответ клиента на предложенную акцию
// Принятие возвращает сессию в select_slot с зафиксированной услугой и датой не
// раньше исходного бронирования; отказ завершает сессию
func (m *Manager) RespondToOffer(ctx context.Context, sessionID string, accept bool) (*Session, error) {
	session, err := m.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.State != StateOfferPresented || session.PendingOffer == nil {
		return nil, ErrNoOfferPending
	}

	now := m.timeProvider.Now()

	if !accept {
		session.State = StateOfferDeclined
		session.PendingOffer = nil
		session.UpdatedAt = now
		if err := m.store.Save(ctx, session); err != nil {
			return nil, fmt.Errorf("%w: failed to save session: %v", ErrInternal, err)
		}
		m.logger.Info("Workflow: session id=%s declined offer", sessionID)
		return session, nil
	}

	offer := session.PendingOffer
	session.Mode = ModeOffer
	session.State = StateSelectSlot
	session.ServiceIDs = []int64{offer.ServiceID}
	session.OfferID = &offer.OfferID
	session.PendingOffer = nil
	session.RescheduleOf = nil
	session.ReservationID = nil
	session.clearSlot()
	session.UpdatedAt = now

	if err := m.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: failed to save session: %v", ErrInternal, err)
	}

	m.logger.Info("Workflow: session id=%s accepted offer id=%d", sessionID, offer.OfferID)
	return session, nil
}

// load загружает сессию, нормализуя ошибку отсутствия
func (m *Manager) load(ctx context.Context, sessionID string) (*Session, error) {
	session, err := m.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		m.logger.Error("Workflow: failed to load session id=%s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: failed to load session: %v", ErrInternal, err)
	}
	return session, nil
}

// failureReason сводит ошибку фиксации к короткому коду причины
func failureReason(err error) string {
	switch {
	case errors.Is(err, commit_reservation.ErrSlotTaken):
		return "slot_taken"
	case errors.Is(err, commit_reservation.ErrTooLateToBook):
		return "too_late"
	case errors.Is(err, commit_reservation.ErrInvalidSlot):
		return "invalid_slot"
	case errors.Is(err, commit_reservation.ErrStaffUnavailable):
		return "staff_unavailable"
	case errors.Is(err, commit_reservation.ErrOfferNotValid):
		return "offer_not_valid"
	case errors.Is(err, commit_reservation.ErrInvalidDate):
		return "invalid_date"
	default:
		return "internal_error"
	}
}
