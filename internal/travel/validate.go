package travel

import (
	"errors"
	"fmt"
	"regexp"
)

// Bounds for validated inputs.
const (
	MinPassengers = 1
	MaxPassengers = 9
	MinGuests     = 1
	MaxGuests     = 8
)

// Sentinel errors for request validation, checked with errors.Is().
var (
	ErrMissingField      = errors.New("missing required field")
	ErrInvalidDate       = errors.New("date must match YYYY-MM-DD")
	ErrPassengersRange   = errors.New("passengers must be between 1 and 9")
	ErrGuestsRange       = errors.New("guests must be between 1 and 8")
	ErrInvalidCabin      = errors.New("unknown cabin class")
	ErrInvalidPayment    = errors.New("unknown payment method")
	ErrCardFieldsMissing = errors.New("card payment requires number, expiry and cvv")
)

// dateRE matches an ISO calendar date. Calendar plausibility is not checked;
// the simulation never interprets the date beyond echoing it.
var dateRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidDate reports whether s matches the ISO calendar-date pattern.
func ValidDate(s string) bool {
	return dateRE.MatchString(s)
}

// Validate checks the flight search criteria.
func (c SearchCriteria) Validate() error {
	if c.Origin == "" {
		return fmt.Errorf("%w: origin", ErrMissingField)
	}
	if c.Destination == "" {
		return fmt.Errorf("%w: destination", ErrMissingField)
	}
	if !ValidDate(c.DepartureDate) {
		return fmt.Errorf("%w: departure_date %q", ErrInvalidDate, c.DepartureDate)
	}
	if c.ReturnDate != "" && !ValidDate(c.ReturnDate) {
		return fmt.Errorf("%w: return_date %q", ErrInvalidDate, c.ReturnDate)
	}
	if c.Passengers < MinPassengers || c.Passengers > MaxPassengers {
		return fmt.Errorf("%w: got %d", ErrPassengersRange, c.Passengers)
	}
	switch c.Cabin {
	case CabinEconomy, CabinPremium, CabinBusiness, CabinFirst:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidCabin, c.Cabin)
	}
	return nil
}

// Validate checks the hotel search criteria.
func (c HotelCriteria) Validate() error {
	if c.Destination == "" {
		return fmt.Errorf("%w: destination", ErrMissingField)
	}
	if !ValidDate(c.CheckIn) {
		return fmt.Errorf("%w: check_in %q", ErrInvalidDate, c.CheckIn)
	}
	if !ValidDate(c.CheckOut) {
		return fmt.Errorf("%w: check_out %q", ErrInvalidDate, c.CheckOut)
	}
	if c.Guests < MinGuests || c.Guests > MaxGuests {
		return fmt.Errorf("%w: got %d", ErrGuestsRange, c.Guests)
	}
	return nil
}

// Validate checks the booking request, including the cross-field invariant:
// card-based payment requires card number, expiry and CVV to be present,
// while pix needs no card fields at all.
func (r BookingRequest) Validate() error {
	if r.FlightID == "" {
		return fmt.Errorf("%w: flight_id", ErrMissingField)
	}
	if r.Passenger.Name == "" {
		return fmt.Errorf("%w: passenger.name", ErrMissingField)
	}
	if r.Passenger.Email == "" {
		return fmt.Errorf("%w: passenger.email", ErrMissingField)
	}

	switch r.Payment.Method {
	case PaymentCreditCard, PaymentDebitCard:
		if r.Payment.CardNumber == "" || r.Payment.CardExpiry == "" || r.Payment.CardCVV == "" {
			return ErrCardFieldsMissing
		}
	case PaymentPix:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPayment, r.Payment.Method)
	}
	return nil
}
