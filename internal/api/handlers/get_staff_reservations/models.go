package get_staff_reservations

import (
	"net/url"
	"time"

	"github.com/bookline/BL-BookingEngine/internal/domain"
	"github.com/bookline/BL-BookingEngine/internal/service/reservations/models"
)

// ToServiceRequest собирает запрос к сервису из query параметров
// Поддерживаются: startDate, endDate (YYYY-MM-DD), status, includeInactive
func ToServiceRequest(staffID int64, query url.Values) (*models.GetStaffReservationsRequest, error) {
	req := &models.GetStaffReservationsRequest{StaffID: staffID}

	if startDateStr := query.Get("startDate"); startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr := query.Get("endDate"); endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	req.IncludeInactive = query.Get("includeInactive") == "true"

	return req, nil
}
