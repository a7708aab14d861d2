package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bookline/BL-BookingEngine/pkg/ptr"
)

var offerNow = time.Date(2025, 10, 13, 12, 0, 0, 0, time.UTC)

func activeOffer(id, serviceID int64) *Offer {
	return &Offer{
		ID:        id,
		StaffID:   1,
		ServiceID: serviceID,
		StartAt:   offerNow.Add(-time.Hour),
		EndAt:     offerNow.Add(time.Hour),
	}
}

func TestOffer_IsActiveAt(t *testing.T) {
	offer := activeOffer(1, 10)

	assert.True(t, offer.IsActiveAt(offerNow))
	// Границы включительно: startAt <= now <= endAt
	assert.True(t, offer.IsActiveAt(offer.StartAt))
	assert.True(t, offer.IsActiveAt(offer.EndAt))
	assert.False(t, offer.IsActiveAt(offer.StartAt.Add(-time.Second)))
	assert.False(t, offer.IsActiveAt(offer.EndAt.Add(time.Second)))
}

func TestMatchOffer_FirstInSourceOrder(t *testing.T) {
	offers := []*Offer{
		activeOffer(1, 99), // услуга не из бронирования
		activeOffer(2, 10),
		activeOffer(3, 10), // тоже подходит, но не первая
	}

	matched := MatchOffer(offers, []int64{10, 20}, offerNow)

	assert.NotNil(t, matched)
	assert.Equal(t, int64(2), matched.ID)
}

func TestMatchOffer_ExpiredSkipped(t *testing.T) {
	expired := activeOffer(1, 10)
	expired.EndAt = offerNow.Add(-time.Minute)

	matched := MatchOffer([]*Offer{expired}, []int64{10}, offerNow)

	assert.Nil(t, matched)
}

func TestMatchOffer_NoServiceMatch(t *testing.T) {
	matched := MatchOffer([]*Offer{activeOffer(1, 10)}, []int64{20}, offerNow)

	assert.Nil(t, matched)
}

func TestOffer_AdjustedPrice(t *testing.T) {
	discount := activeOffer(1, 10)
	discount.DiscountPercentage = ptr.Ptr(25.0)
	assert.InDelta(t, 75.0, discount.AdjustedPrice(100.0), 0.001)

	fixed := activeOffer(2, 10)
	fixed.FixedPrice = ptr.Ptr(40.0)
	assert.InDelta(t, 40.0, fixed.AdjustedPrice(100.0), 0.001)

	// Скидка больше 100% не уводит цену в минус
	overdiscount := activeOffer(3, 10)
	overdiscount.DiscountPercentage = ptr.Ptr(150.0)
	assert.Equal(t, 0.0, overdiscount.AdjustedPrice(100.0))

	// Акция без полей цены не меняет базовую цену
	noop := activeOffer(4, 10)
	assert.Equal(t, 100.0, noop.AdjustedPrice(100.0))
}
