package dto

type RateInput struct {
	StoreID int64 `json:"storeId"`
	Value   int   `json:"value"`
}

func (in RateInput) Validate() FieldErrors {
	var fe FieldErrors
	if in.StoreID <= 0 {
		fe.add("storeId", "must be a positive integer")
	}
	if in.Value < RatingMin || in.Value > RatingMax {
		fe.add("value", "must be between %d and %d", RatingMin, RatingMax)
	}
	return fe
}

type UserStoreQuery struct {
	QName    string `form:"qName"`
	QAddress string `form:"qAddress"`
}

type UserStoreResponse struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	AverageRating *float64 `json:"averageRating"`
	MyRating      *int     `json:"myRating"`
}

type RatingResponse struct {
	ID    uint `json:"id"`
	Value int  `json:"value"`
}
