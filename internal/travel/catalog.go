package travel

import "fmt"

// Result batch sizes. The simulation always returns full batches so the
// streaming cadence is predictable.
const (
	FlightResultCount = 5
	HotelResultCount  = 4
)

// Flight price progression: baseline fare plus a fixed step per result index.
const (
	flightBaseFare = 420.0
	flightFareStep = 85.0
)

// Hotel price progression per result index.
const (
	hotelBaseRate = 180.0
	hotelRateStep = 140.0
)

var airlines = []struct {
	name string
	code string
}{
	{"Azul", "AD"},
	{"GOL", "G3"},
	{"LATAM", "LA"},
	{"Azul", "AD"},
	{"GOL", "G3"},
}

var departureTimes = []struct {
	depart  string
	arrive  string
	elapsed string
	stops   int
}{
	{"06:15", "07:20", "1h05", 0},
	{"09:40", "10:45", "1h05", 0},
	{"12:30", "15:05", "2h35", 1},
	{"16:10", "17:15", "1h05", 0},
	{"21:05", "23:40", "2h35", 1},
}

// MockFlights generates the fixed batch of synthetic flights for the given
// criteria. Deterministic: the same criteria always yield the same batch,
// with prices progressing by index and the criteria's origin, destination
// and departure date echoed verbatim into every record.
func MockFlights(c SearchCriteria) []Flight {
	flights := make([]Flight, 0, FlightResultCount)
	for i := 0; i < FlightResultCount; i++ {
		a := airlines[i%len(airlines)]
		s := departureTimes[i%len(departureTimes)]
		flights = append(flights, Flight{
			ID:            fmt.Sprintf("FL-%s-%s-%d", c.Origin, c.Destination, i+1),
			Airline:       a.name,
			FlightNumber:  fmt.Sprintf("%s%d", a.code, 1000+i*222),
			Origin:        c.Origin,
			Destination:   c.Destination,
			DepartureDate: c.DepartureDate,
			DepartureTime: s.depart,
			ArrivalTime:   s.arrive,
			Duration:      s.elapsed,
			Stops:         s.stops,
			Cabin:         c.Cabin,
			Price:         flightBaseFare + float64(i)*flightFareStep,
		})
	}
	return flights
}

var hotelNames = []string{
	"Hotel Costa Verde",
	"Pousada do Sol",
	"Grand Atlântico Palace",
	"Resort Mar Azul",
}

var hotelAmenities = [][]string{
	{"wifi", "breakfast"},
	{"wifi", "breakfast", "pool"},
	{"wifi", "breakfast", "pool", "spa"},
	{"wifi", "breakfast", "pool", "spa", "beachfront"},
}

// MockHotels generates the fixed batch of synthetic hotels for the given
// criteria, with star category and nightly rate progressing by index.
func MockHotels(c HotelCriteria) []Hotel {
	hotels := make([]Hotel, 0, HotelResultCount)
	for i := 0; i < HotelResultCount; i++ {
		stars := 3 + i
		if stars > 5 {
			stars = 5
		}
		hotels = append(hotels, Hotel{
			ID:            fmt.Sprintf("HT-%s-%d", c.Destination, i+1),
			Name:          hotelNames[i%len(hotelNames)],
			City:          c.Destination,
			Stars:         stars,
			CheckIn:       c.CheckIn,
			CheckOut:      c.CheckOut,
			PricePerNight: hotelBaseRate + float64(i)*hotelRateStep,
			Amenities:     hotelAmenities[i%len(hotelAmenities)],
		})
	}
	return hotels
}

// FindFlight resolves a flight id produced by MockFlights back to a synthetic
// record. Used by the booking flow, which only knows the id the user picked.
func FindFlight(id string, c SearchCriteria) (Flight, bool) {
	for _, f := range MockFlights(c) {
		if f.ID == id {
			return f, true
		}
	}
	return Flight{}, false
}
