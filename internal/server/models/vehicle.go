package models

// Allowed fuel types.
var FuelTypes = []string{"Бензин", "Дизель", "Электро", "Гибрид"}

// Allowed gearbox types.
var GearTypes = []string{"Механика", "Автомат", "Робот", "Вариатор"}

// Bounds on year_made.
const (
	MinYearMade = 1672
	MaxYearMade = 2024
)

// Car is a vehicle listing.
type Car struct {
	ID       int64  `json:"id"`
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	YearMade int    `json:"year_made"`
	Fuel     string `json:"fuel"`
	Gear     string `json:"gear"`
	Mileage  int    `json:"mileage"`
	Price    int    `json:"price"`
}

// CarFields is client input for a car; nil fields were not supplied.
type CarFields struct {
	Brand    *string `json:"brand"`
	Model    *string `json:"model"`
	YearMade *int    `json:"year_made"`
	Fuel     *string `json:"fuel"`
	Gear     *string `json:"gear"`
	Mileage  *int    `json:"mileage"`
	Price    *int    `json:"price"`
}

// Apply copies the set fields of p onto c.
func (p CarFields) Apply(c *Car) {
	if p.Brand != nil {
		c.Brand = *p.Brand
	}
	if p.Model != nil {
		c.Model = *p.Model
	}
	if p.YearMade != nil {
		c.YearMade = *p.YearMade
	}
	if p.Fuel != nil {
		c.Fuel = *p.Fuel
	}
	if p.Gear != nil {
		c.Gear = *p.Gear
	}
	if p.Mileage != nil {
		c.Mileage = *p.Mileage
	}
	if p.Price != nil {
		c.Price = *p.Price
	}
}
