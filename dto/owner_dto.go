package dto

type StoreSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type RaterResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Value int    `json:"value"`
}

type OwnerRatingsResponse struct {
	Store         StoreSummary    `json:"store"`
	AverageRating *float64        `json:"averageRating"`
	Raters        []RaterResponse `json:"raters"`
}
