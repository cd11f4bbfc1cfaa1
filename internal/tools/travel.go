package tools

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/voyago/voyago/internal/resilience"
	"github.com/voyago/voyago/internal/stream"
	"github.com/voyago/voyago/internal/travel"
)

// Tool names.
const (
	ToolSearchFlights      = "search_flights"
	ToolSearchHotels       = "search_hotels"
	ToolBookTrip           = "book_trip"
	ToolDestinationInfo    = "get_destination_info"
	ToolCalculateTripPrice = "calculate_trip_price"
)

const datePattern = `^\d{4}-\d{2}-\d{2}$`

// DestinationInfoInput selects a destination by IATA code or city name.
type DestinationInfoInput struct {
	Destination string `json:"destination"`
}

// DestinationInfo is the direct result of get_destination_info.
type DestinationInfo struct {
	Found       bool                `json:"found"`
	Destination *travel.Destination `json:"destination,omitempty"`
	Suggestions []string            `json:"suggestions,omitempty"`
}

// TripPriceInput identifies a flight from a prior search plus optional
// hotel nights to quote a full trip.
type TripPriceInput struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	FlightID      string `json:"flight_id"`
	Passengers    int    `json:"passengers"`
	HotelID       string `json:"hotel_id,omitempty"`
	Nights        int    `json:"nights,omitempty"`
}

// NewTravelRegistry builds the registry with all travel tools wired to
// the orchestrator.
func NewTravelRegistry(orch *stream.Orchestrator) (*Registry, error) {
	if orch == nil {
		return nil, fmt.Errorf("orchestrator is required")
	}

	r := NewRegistry()

	searchFlights, err := New(ToolSearchFlights,
		"Search available flights between two airports on a date.",
		true,
		tightenSearchCriteria,
		func(ctx context.Context, in travel.SearchCriteria) (Output, error) {
			return Output{Stream: orch.SearchFlights(ctx, in)}, nil
		})
	if err != nil {
		return nil, err
	}
	r.Register(searchFlights)

	searchHotels, err := New(ToolSearchHotels,
		"Search hotels in a city for a stay window.",
		true,
		tightenHotelCriteria,
		func(ctx context.Context, in travel.HotelCriteria) (Output, error) {
			return Output{Stream: orch.SearchHotels(ctx, in)}, nil
		})
	if err != nil {
		return nil, err
	}
	r.Register(searchHotels)

	bookTrip, err := New(ToolBookTrip,
		"Book a flight (and optionally a hotel) for a passenger.",
		true,
		tightenBookingRequest,
		func(ctx context.Context, in travel.BookingRequest) (Output, error) {
			return Output{Stream: orch.Book(ctx, in)}, nil
		})
	if err != nil {
		return nil, err
	}
	r.Register(bookTrip)

	destinationInfo, err := New(ToolDestinationInfo,
		"Look up travel tips for a destination by airport code or city name.",
		false,
		nil,
		func(_ context.Context, in DestinationInfoInput) (Output, error) {
			d, ok := travel.LookupDestination(in.Destination)
			if !ok {
				info := DestinationInfo{Found: false}
				for _, dest := range travel.Destinations() {
					info.Suggestions = append(info.Suggestions, dest.City)
				}
				return Output{Data: info}, nil
			}
			return Output{Data: DestinationInfo{Found: true, Destination: &d}}, nil
		})
	if err != nil {
		return nil, err
	}
	r.Register(destinationInfo)

	tripPrice, err := New(ToolCalculateTripPrice,
		"Quote the total price of a trip for a flight from a prior search, optionally with hotel nights.",
		false,
		tightenTripPrice,
		func(_ context.Context, in TripPriceInput) (Output, error) {
			criteria := travel.SearchCriteria{
				Origin:        in.Origin,
				Destination:   in.Destination,
				DepartureDate: in.DepartureDate,
				Passengers:    in.Passengers,
				Cabin:         travel.CabinEconomy,
			}
			flight, ok := travel.FindFlight(in.FlightID, criteria)
			if !ok {
				return Output{}, resilience.NewFault(resilience.FaultValidation,
					fmt.Sprintf("unknown flight id %q", in.FlightID))
			}

			var hotel *travel.Hotel
			if in.HotelID != "" {
				for _, h := range travel.MockHotels(travel.HotelCriteria{Destination: in.Destination}) {
					if h.ID == in.HotelID {
						hotel = &h
						break
					}
				}
				if hotel == nil {
					return Output{}, resilience.NewFault(resilience.FaultValidation,
						fmt.Sprintf("unknown hotel id %q", in.HotelID))
				}
			}

			return Output{Data: travel.TripPrice(flight, in.Passengers, hotel, in.Nights)}, nil
		})
	if err != nil {
		return nil, err
	}
	r.Register(tripPrice)

	return r, nil
}

func ptrFloat(f float64) *float64 { return &f }

func tightenSearchCriteria(s *jsonschema.Schema) {
	if p, ok := s.Properties["departure_date"]; ok {
		p.Pattern = datePattern
	}
	if p, ok := s.Properties["passengers"]; ok {
		p.Minimum = ptrFloat(travel.MinPassengers)
		p.Maximum = ptrFloat(travel.MaxPassengers)
	}
	if p, ok := s.Properties["cabin"]; ok {
		p.Enum = []any{
			string(travel.CabinEconomy), string(travel.CabinPremium),
			string(travel.CabinBusiness), string(travel.CabinFirst),
		}
	}
}

func tightenHotelCriteria(s *jsonschema.Schema) {
	for _, field := range []string{"check_in", "check_out"} {
		if p, ok := s.Properties[field]; ok {
			p.Pattern = datePattern
		}
	}
	if p, ok := s.Properties["guests"]; ok {
		p.Minimum = ptrFloat(travel.MinGuests)
		p.Maximum = ptrFloat(travel.MaxGuests)
	}
}

func tightenBookingRequest(s *jsonschema.Schema) {
	if payment, ok := s.Properties["payment"]; ok {
		if p, ok := payment.Properties["method"]; ok {
			p.Enum = []any{
				string(travel.PaymentCreditCard), string(travel.PaymentDebitCard),
				string(travel.PaymentPix),
			}
		}
	}
}

func tightenTripPrice(s *jsonschema.Schema) {
	if p, ok := s.Properties["departure_date"]; ok {
		p.Pattern = datePattern
	}
	if p, ok := s.Properties["passengers"]; ok {
		p.Minimum = ptrFloat(travel.MinPassengers)
		p.Maximum = ptrFloat(travel.MaxPassengers)
	}
	if p, ok := s.Properties["nights"]; ok {
		p.Minimum = ptrFloat(0)
	}
}
