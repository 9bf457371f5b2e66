package request

type CreateBoat struct {
	Name        string   `form:"name" json:"name" validate:"required"`
	Type        string   `form:"type" json:"type" validate:"required,oneof=yacht catamarano gommone barca-vela motoscafo barche-senza-patente charter"`
	Description string   `form:"description" json:"description" validate:"required"`
	Capacity    int      `form:"capacity" json:"capacity" validate:"required,min=1"`
	PricePerDay float64  `form:"pricePerDay" json:"pricePerDay" validate:"required,gt=0"`
	Location    string   `form:"location" json:"location" validate:"required"`
	Port        string   `form:"port" json:"port"`
	Length      float64  `form:"length" json:"length"`
	Amenities   []string `form:"amenities" json:"amenities"`
}

type UpdateBoat struct {
	Name        string   `form:"name" json:"name"`
	Type        string   `form:"type" json:"type" validate:"omitempty,oneof=yacht catamarano gommone barca-vela motoscafo barche-senza-patente charter"`
	Description string   `form:"description" json:"description"`
	Capacity    int      `form:"capacity" json:"capacity" validate:"omitempty,min=1"`
	PricePerDay float64  `form:"pricePerDay" json:"pricePerDay" validate:"omitempty,gt=0"`
	Location    string   `form:"location" json:"location"`
	Port        string   `form:"port" json:"port"`
	Length      float64  `form:"length" json:"length"`
	Amenities   []string `form:"amenities" json:"amenities"`
	IsAvailable *bool    `form:"isAvailable" json:"isAvailable"`
}
