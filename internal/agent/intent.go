package agent

import "strings"

// Intent is the routing decision for a user message.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentSearchFlights
	IntentSearchHotels
	IntentBook
)

// IntentClassifier maps free-form user text to one of the four routing
// branches. The keyword matcher below is a deliberate stand-in; swap in
// a real model without touching the session controller.
type IntentClassifier interface {
	Classify(text string) Intent
}

// KeywordClassifier routes on lowercased substring matches, with
// Portuguese and English trigger words.
type KeywordClassifier struct{}

var intentKeywords = []struct {
	intent Intent
	words  []string
}{
	// Booking first so "reservar um voo" books instead of searching.
	{IntentBook, []string{"reservar", "reserva", "book", "booking"}},
	{IntentSearchFlights, []string{"voos", "voo", "flights", "flight", "passagem", "passagens"}},
	{IntentSearchHotels, []string{"hotéis", "hoteis", "hotel", "hotels", "hospedagem"}},
}

// Classify returns the first intent whose trigger words appear in the text.
func (KeywordClassifier) Classify(text string) Intent {
	lower := strings.ToLower(text)
	for _, entry := range intentKeywords {
		for _, w := range entry.words {
			if strings.Contains(lower, w) {
				return entry.intent
			}
		}
	}
	return IntentUnknown
}
