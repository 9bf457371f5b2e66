package response

type Boat struct {
	ID          int64    `json:"id"`
	OwnerID     int64    `json:"ownerId"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Capacity    int      `json:"capacity"`
	PricePerDay float64  `json:"pricePerDay"`
	Location    string   `json:"location"`
	Port        string   `json:"port,omitempty"`
	Length      float64  `json:"length,omitempty"`
	Images      []string `json:"images"`
	Amenities   []string `json:"amenities"`
	IsAvailable bool     `json:"isAvailable"`
}
