package travel

// Pricing constants for the aggregate breakdown.
const (
	TaxRate    = 0.15
	BookingFee = 50.0
	Currency   = "BRL"
)

// Breakdown computes the aggregate price breakdown over a batch of flights:
// subtotal of all fares, 15% tax, the flat booking fee, and the grand total
// subtotal*1.15 + fee.
func Breakdown(flights []Flight) PriceBreakdown {
	var subtotal float64
	for _, f := range flights {
		subtotal += f.Price
	}
	return breakdownOf(subtotal)
}

// TripPrice computes the breakdown for a concrete trip: one flight fare per
// passenger plus, optionally, a hotel stay priced per night.
func TripPrice(flight Flight, passengers int, hotel *Hotel, nights int) PriceBreakdown {
	if passengers < 1 {
		passengers = 1
	}
	subtotal := flight.Price * float64(passengers)
	if hotel != nil && nights > 0 {
		subtotal += hotel.PricePerNight * float64(nights)
	}
	return breakdownOf(subtotal)
}

func breakdownOf(subtotal float64) PriceBreakdown {
	tax := subtotal * TaxRate
	return PriceBreakdown{
		Subtotal: subtotal,
		Tax:      tax,
		Fees:     BookingFee,
		Total:    subtotal + tax + BookingFee,
		Currency: Currency,
	}
}
