package domain

import "time"

// Offer time-boxed promotional price override tied to a staff member and service
type Offer struct {
	ID        int64
	StaffID   int64
	ServiceID int64

	// Ровно одно из двух полей задано
	DiscountPercentage *float64
	FixedPrice         *float64

	StartAt time.Time
	EndAt   time.Time
}

// IsActiveAt returns true if the offer is valid at the given moment
func (o *Offer) IsActiveAt(now time.Time) bool {
	return !now.Before(o.StartAt) && !now.After(o.EndAt)
}

// AppliesTo returns true if the offer's service is among the given service ids
func (o *Offer) AppliesTo(serviceIDs []int64) bool {
	for _, id := range serviceIDs {
		if id == o.ServiceID {
			return true
		}
	}
	return false
}

// AdjustedPrice returns the offer price for a base service price
func (o *Offer) AdjustedPrice(basePrice float64) float64 {
	if o.FixedPrice != nil {
		return *o.FixedPrice
	}
	if o.DiscountPercentage != nil {
		price := basePrice * (1 - *o.DiscountPercentage/100)
		if price < 0 {
			return 0
		}
		return price
	}
	return basePrice
}

// MatchOffer выбирает первую подходящую акцию в исходном порядке (без пересортировки):
// акция активна в момент now и её услуга входит в состав завершенного бронирования
// Возвращает nil, если подходящей акции нет
func MatchOffer(offers []*Offer, serviceIDs []int64, now time.Time) *Offer {
	for _, offer := range offers {
		if offer.IsActiveAt(now) && offer.AppliesTo(serviceIDs) {
			return offer
		}
	}
	return nil
}
