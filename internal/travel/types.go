// Package travel defines the domain records of the booking demo: search
// criteria, flights, hotels, price breakdowns and bookings, plus the mock
// catalog the simulation serves results from. All inventory is synthetic and
// deterministic; there is no real provider behind it.
package travel

import "time"

// CabinClass enumerates the bookable cabin classes.
type CabinClass string

const (
	CabinEconomy  CabinClass = "economy"
	CabinPremium  CabinClass = "premium"
	CabinBusiness CabinClass = "business"
	CabinFirst    CabinClass = "first"
)

// PaymentMethod enumerates the accepted payment methods.
type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentPix        PaymentMethod = "pix"
)

// SearchCriteria is the validated input of a flight search.
type SearchCriteria struct {
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	DepartureDate string     `json:"departure_date"`
	ReturnDate    string     `json:"return_date,omitempty"`
	Passengers    int        `json:"passengers"`
	Cabin         CabinClass `json:"cabin"`
}

// HotelCriteria is the validated input of a hotel search.
type HotelCriteria struct {
	Destination string `json:"destination"`
	CheckIn     string `json:"check_in"`
	CheckOut    string `json:"check_out"`
	Guests      int    `json:"guests"`
}

// Flight is one synthetic flight result. Origin, Destination and
// DepartureDate echo the search criteria verbatim.
type Flight struct {
	ID            string     `json:"id"`
	Airline       string     `json:"airline"`
	FlightNumber  string     `json:"flight_number"`
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	DepartureDate string     `json:"departure_date"`
	DepartureTime string     `json:"departure_time"`
	ArrivalTime   string     `json:"arrival_time"`
	Duration      string     `json:"duration"`
	Stops         int        `json:"stops"`
	Cabin         CabinClass `json:"cabin"`
	Price         float64    `json:"price"`
}

// Hotel is one synthetic hotel result.
type Hotel struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	City          string   `json:"city"`
	Stars         int      `json:"stars"`
	CheckIn       string   `json:"check_in"`
	CheckOut      string   `json:"check_out"`
	PricePerNight float64  `json:"price_per_night"`
	Amenities     []string `json:"amenities"`
}

// PriceBreakdown is the aggregate computed from a batch of results:
// subtotal, 15% tax, flat booking fee, grand total.
type PriceBreakdown struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Fees     float64 `json:"fees"`
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
}

// Passenger identifies the person a booking is made for.
type Passenger struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Document string `json:"document"`
}

// PaymentInfo carries the simulated payment details. Card-based methods
// require the card fields; pix does not.
type PaymentInfo struct {
	Method     PaymentMethod `json:"method"`
	CardNumber string        `json:"card_number,omitempty"`
	CardExpiry string        `json:"card_expiry,omitempty"`
	CardCVV    string        `json:"card_cvv,omitempty"`
}

// BookingRequest is the validated input of the booking flow.
type BookingRequest struct {
	FlightID  string      `json:"flight_id"`
	HotelID   string      `json:"hotel_id,omitempty"`
	Passenger Passenger   `json:"passenger"`
	Payment   PaymentInfo `json:"payment"`
}

// Confirmation is the outcome of a persisted booking: a generated booking id,
// a PNR-style confirmation code and, when a hotel was included, a hotel
// reservation code.
type Confirmation struct {
	BookingID            string    `json:"booking_id"`
	PNR                  string    `json:"pnr"`
	HotelReservationCode string    `json:"hotel_reservation_code,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}
