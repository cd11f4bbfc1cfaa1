package travel

import "strings"

// Destination holds the static facts served by the destination-info tool.
type Destination struct {
	Code        string   `json:"code"`
	City        string   `json:"city"`
	Country     string   `json:"country"`
	Description string   `json:"description"`
	BestSeason  string   `json:"best_season"`
	Highlights  []string `json:"highlights"`
}

// destinations is the static table behind get_destination_info. Keyed by
// IATA-style code; lookup also matches city names case-insensitively.
var destinations = []Destination{
	{
		Code:        "GRU",
		City:        "São Paulo",
		Country:     "Brazil",
		Description: "Brazil's largest city, a global hub for business, gastronomy and culture.",
		BestSeason:  "April to October",
		Highlights:  []string{"Avenida Paulista", "MASP", "Mercado Municipal", "Vila Madalena"},
	},
	{
		Code:        "GIG",
		City:        "Rio de Janeiro",
		Country:     "Brazil",
		Description: "Beaches, mountains and carnival: Brazil's postcard city.",
		BestSeason:  "May to October",
		Highlights:  []string{"Cristo Redentor", "Pão de Açúcar", "Copacabana", "Ipanema"},
	},
	{
		Code:        "SSA",
		City:        "Salvador",
		Country:     "Brazil",
		Description: "Colonial architecture and Afro-Brazilian culture on the Bahia coast.",
		BestSeason:  "September to March",
		Highlights:  []string{"Pelourinho", "Elevador Lacerda", "Farol da Barra"},
	},
	{
		Code:        "REC",
		City:        "Recife",
		Country:     "Brazil",
		Description: "The Venice of Brazil, gateway to the beaches of Pernambuco.",
		BestSeason:  "September to February",
		Highlights:  []string{"Recife Antigo", "Porto de Galinhas", "Boa Viagem"},
	},
	{
		Code:        "FLN",
		City:        "Florianópolis",
		Country:     "Brazil",
		Description: "An island capital with over forty beaches and a strong surf scene.",
		BestSeason:  "November to March",
		Highlights:  []string{"Lagoa da Conceição", "Praia Mole", "Campeche"},
	},
}

// LookupDestination finds a destination by code or city name.
func LookupDestination(query string) (Destination, bool) {
	q := strings.TrimSpace(query)
	for _, d := range destinations {
		if strings.EqualFold(d.Code, q) || strings.EqualFold(d.City, q) {
			return d, true
		}
	}
	return Destination{}, false
}

// Destinations returns the full static table.
func Destinations() []Destination {
	out := make([]Destination, len(destinations))
	copy(out, destinations)
	return out
}
