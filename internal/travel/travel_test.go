package travel

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func validCriteria() SearchCriteria {
	return SearchCriteria{
		Origin:        "GRU",
		Destination:   "GIG",
		DepartureDate: "2025-01-10",
		Passengers:    1,
		Cabin:         CabinEconomy,
	}
}

func TestSearchCriteriaValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*SearchCriteria)
		wantErr error
	}{
		{"valid", func(*SearchCriteria) {}, nil},
		{"missing origin", func(c *SearchCriteria) { c.Origin = "" }, ErrMissingField},
		{"missing destination", func(c *SearchCriteria) { c.Destination = "" }, ErrMissingField},
		{"bad date", func(c *SearchCriteria) { c.DepartureDate = "10/01/2025" }, ErrInvalidDate},
		{"bad return date", func(c *SearchCriteria) { c.ReturnDate = "2025-1-2" }, ErrInvalidDate},
		{"zero passengers", func(c *SearchCriteria) { c.Passengers = 0 }, ErrPassengersRange},
		{"ten passengers", func(c *SearchCriteria) { c.Passengers = 10 }, ErrPassengersRange},
		{"nine passengers", func(c *SearchCriteria) { c.Passengers = 9 }, nil},
		{"unknown cabin", func(c *SearchCriteria) { c.Cabin = "steerage" }, ErrInvalidCabin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := validCriteria()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestHotelCriteriaValidate(t *testing.T) {
	t.Parallel()

	valid := HotelCriteria{Destination: "GIG", CheckIn: "2025-01-10", CheckOut: "2025-01-15", Guests: 2}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid criteria rejected: %v", err)
	}

	tooMany := valid
	tooMany.Guests = 9
	if err := tooMany.Validate(); !errors.Is(err, ErrGuestsRange) {
		t.Errorf("9 guests: got %v, want ErrGuestsRange", err)
	}

	atMax := valid
	atMax.Guests = 8
	if err := atMax.Validate(); err != nil {
		t.Errorf("8 guests rejected: %v", err)
	}
}

func TestBookingRequestPaymentInvariant(t *testing.T) {
	t.Parallel()

	base := BookingRequest{
		FlightID:  "FL-GRU-GIG-1",
		Passenger: Passenger{Name: "Ana Souza", Email: "ana@example.com", Document: "123.456.789-00"},
	}

	card := base
	card.Payment = PaymentInfo{Method: PaymentCreditCard}
	if err := card.Validate(); !errors.Is(err, ErrCardFieldsMissing) {
		t.Errorf("credit_card without card fields: got %v, want ErrCardFieldsMissing", err)
	}

	card.Payment.CardNumber = "4111111111111111"
	card.Payment.CardExpiry = "12/27"
	card.Payment.CardCVV = "123"
	if err := card.Validate(); err != nil {
		t.Errorf("complete credit_card rejected: %v", err)
	}

	pix := base
	pix.Payment = PaymentInfo{Method: PaymentPix}
	if err := pix.Validate(); err != nil {
		t.Errorf("pix without card fields rejected: %v", err)
	}

	unknown := base
	unknown.Payment = PaymentInfo{Method: "barter"}
	if err := unknown.Validate(); !errors.Is(err, ErrInvalidPayment) {
		t.Errorf("unknown method: got %v, want ErrInvalidPayment", err)
	}
}

func TestMockFlightsDeterministic(t *testing.T) {
	t.Parallel()

	c := validCriteria()
	a := MockFlights(c)
	b := MockFlights(c)

	if len(a) != FlightResultCount {
		t.Fatalf("len = %d, want %d", len(a), FlightResultCount)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("flight %d differs between identical searches", i)
		}
		if a[i].Origin != c.Origin || a[i].Destination != c.Destination || a[i].DepartureDate != c.DepartureDate {
			t.Errorf("flight %d does not echo criteria: %+v", i, a[i])
		}
		if i > 0 && a[i].Price <= a[i-1].Price {
			t.Errorf("prices must progress by index: flight %d price %v <= %v", i, a[i].Price, a[i-1].Price)
		}
	}
}

func TestMockHotelsProgression(t *testing.T) {
	t.Parallel()

	hotels := MockHotels(HotelCriteria{Destination: "GIG", CheckIn: "2025-01-10", CheckOut: "2025-01-15", Guests: 2})
	if len(hotels) != HotelResultCount {
		t.Fatalf("len = %d, want %d", len(hotels), HotelResultCount)
	}
	for i, h := range hotels {
		if h.City != "GIG" {
			t.Errorf("hotel %d city = %q, want GIG", i, h.City)
		}
		if h.Stars < 3 || h.Stars > 5 {
			t.Errorf("hotel %d stars = %d, want [3,5]", i, h.Stars)
		}
		if i > 0 && h.PricePerNight <= hotels[i-1].PricePerNight {
			t.Errorf("nightly rates must progress by index")
		}
	}
}

func TestFindFlight(t *testing.T) {
	t.Parallel()

	c := validCriteria()
	want := MockFlights(c)[2]

	got, ok := FindFlight(want.ID, c)
	if !ok {
		t.Fatalf("FindFlight(%q) not found", want.ID)
	}
	if got.ID != want.ID || got.Price != want.Price {
		t.Errorf("FindFlight = %+v, want %+v", got, want)
	}

	if _, ok := FindFlight("FL-NOPE", c); ok {
		t.Error("unknown id must not resolve")
	}
}

func TestBreakdownFormula(t *testing.T) {
	t.Parallel()

	flights := MockFlights(validCriteria())
	var sum float64
	for _, f := range flights {
		sum += f.Price
	}

	b := Breakdown(flights)
	if math.Abs(b.Subtotal-sum) > 1e-9 {
		t.Errorf("subtotal = %v, want %v", b.Subtotal, sum)
	}
	if math.Abs(b.Tax-sum*0.15) > 1e-9 {
		t.Errorf("tax = %v, want %v", b.Tax, sum*0.15)
	}
	if b.Fees != BookingFee {
		t.Errorf("fees = %v, want %v", b.Fees, BookingFee)
	}
	if math.Abs(b.Total-(sum*1.15+50)) > 1e-9 {
		t.Errorf("total = %v, want %v", b.Total, sum*1.15+50)
	}
}

func TestTripPrice(t *testing.T) {
	t.Parallel()

	flight := Flight{Price: 500}
	hotel := Hotel{PricePerNight: 200}

	b := TripPrice(flight, 2, &hotel, 3)
	wantSubtotal := 500.0*2 + 200.0*3
	if math.Abs(b.Subtotal-wantSubtotal) > 1e-9 {
		t.Errorf("subtotal = %v, want %v", b.Subtotal, wantSubtotal)
	}
	if math.Abs(b.Total-(wantSubtotal*1.15+50)) > 1e-9 {
		t.Errorf("total = %v, want %v", b.Total, wantSubtotal*1.15+50)
	}

	noHotel := TripPrice(flight, 1, nil, 0)
	if math.Abs(noHotel.Subtotal-500) > 1e-9 {
		t.Errorf("subtotal without hotel = %v, want 500", noHotel.Subtotal)
	}
}

func TestLookupDestination(t *testing.T) {
	t.Parallel()

	byCode, ok := LookupDestination("GIG")
	if !ok || byCode.City != "Rio de Janeiro" {
		t.Errorf("LookupDestination(GIG) = %+v, %v", byCode, ok)
	}

	byCity, ok := LookupDestination("são paulo")
	if !ok || byCity.Code != "GRU" {
		t.Errorf("LookupDestination(são paulo) = %+v, %v", byCity, ok)
	}

	if _, ok := LookupDestination("Atlantis"); ok {
		t.Error("unknown destination must not resolve")
	}
}

func TestNewPNR(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for range 100 {
		pnr := NewPNR()
		if len(pnr) != PNRLength {
			t.Fatalf("NewPNR() length = %d, want %d", len(pnr), PNRLength)
		}
		for _, r := range pnr {
			if !strings.ContainsRune(pnrAlphabet, r) {
				t.Fatalf("NewPNR() = %q contains %q outside the alphabet", pnr, r)
			}
		}
		seen[pnr] = true
	}
	if len(seen) < 90 {
		t.Errorf("only %d unique locators out of 100", len(seen))
	}
}
