package offer_response

type OfferResponseRequest struct {
	Accept bool `json:"accept"`
}
