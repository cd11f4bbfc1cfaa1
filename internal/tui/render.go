package tui

import (
	"fmt"
	"strings"

	"github.com/voyago/voyago/internal/component"
	"github.com/voyago/voyago/internal/i18n"
	"github.com/voyago/voyago/internal/travel"
)

// renderComponent formats a streamed component as a bordered card.
// Loading components are not rendered here; they drive the status line.
func renderComponent(s Styles, width int, c component.Component) string {
	var body string
	switch c.Kind {
	case component.KindFlightCard:
		body = renderFlight(s, c.Flight)
	case component.KindHotelCard:
		body = renderHotel(s, c.Hotel)
	case component.KindPriceBreakdown:
		body = renderPrice(s, c.Price)
	case component.KindConfirmation:
		body = renderConfirmation(s, c.Confirmation)
	case component.KindError:
		body = renderError(s, c)
	default:
		return ""
	}

	card := s.Card
	if width > 8 {
		card = card.Width(min(width-4, 72))
	}
	return card.Render(body)
}

func renderFlight(s Styles, f *travel.Flight) string {
	if f == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(s.CardTitle.Render(fmt.Sprintf("%s %s", f.Airline, f.FlightNumber)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s → %s %s", f.Origin, f.DepartureTime, f.Destination, f.ArrivalTime))
	b.WriteString("\n")
	detail := fmt.Sprintf("%s · %s", f.Duration, stopsLabel(f.Stops))
	b.WriteString(s.CardMuted.Render(detail))
	b.WriteString("\n")
	b.WriteString(s.CardSuccess.Render(fmt.Sprintf("%s %.2f", travel.Currency, f.Price)))
	return b.String()
}

func renderHotel(s Styles, h *travel.Hotel) string {
	if h == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(s.CardTitle.Render(h.Name))
	b.WriteString(" ")
	b.WriteString(strings.Repeat("★", h.Stars))
	b.WriteString("\n")
	b.WriteString(s.CardMuted.Render(fmt.Sprintf("%s · %s – %s", h.City, h.CheckIn, h.CheckOut)))
	if len(h.Amenities) > 0 {
		b.WriteString("\n")
		b.WriteString(s.CardMuted.Render(strings.Join(h.Amenities, " · ")))
	}
	b.WriteString("\n")
	b.WriteString(s.CardSuccess.Render(fmt.Sprintf("%s %.2f", travel.Currency, h.PricePerNight)))
	return b.String()
}

func renderPrice(s Styles, p *travel.PriceBreakdown) string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(s.CardTitle.Render(i18n.T("price.title")))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%-12s %s %10.2f\n", i18n.T("price.subtotal"), p.Currency, p.Subtotal))
	b.WriteString(fmt.Sprintf("%-12s %s %10.2f\n", i18n.T("price.tax"), p.Currency, p.Tax))
	b.WriteString(fmt.Sprintf("%-12s %s %10.2f\n", i18n.T("price.fees"), p.Currency, p.Fees))
	b.WriteString(s.CardSuccess.Render(fmt.Sprintf("%-12s %s %10.2f", i18n.T("price.total"), p.Currency, p.Total)))
	return b.String()
}

func renderConfirmation(s Styles, c *travel.Confirmation) string {
	if c == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(s.CardSuccess.Render(i18n.Sprintf("announce.confirmation", c.PNR)))
	b.WriteString("\n")
	b.WriteString(s.CardMuted.Render(i18n.T("confirmation.booking_id") + " " + c.BookingID))
	if c.HotelReservationCode != "" {
		b.WriteString("\n")
		b.WriteString(s.CardMuted.Render(i18n.T("confirmation.hotel_code") + " " + c.HotelReservationCode))
	}
	return b.String()
}

func renderError(s Styles, c component.Component) string {
	var b strings.Builder
	b.WriteString(s.CardError.Render(c.Message))
	if c.Retry != nil {
		b.WriteString("\n")
		b.WriteString(s.CardMuted.Render(i18n.T("error.retry_hint")))
	}
	return b.String()
}

func stopsLabel(n int) string {
	if n == 0 {
		return i18n.T("flight.direct")
	}
	return i18n.Sprintf("flight.stops", n)
}
