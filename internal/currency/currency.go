package currency

// Rate is one quoted exchange rate as published by the external API.
// Field tags follow the dolarapi wire format.
type Rate struct {
	Source  string  `json:"fuente"`
	Name    string  `json:"nombre"`
	Average float64 `json:"promedio"`
}

// OfficialSource is the rate used for all bolívar stamping.
const OfficialSource = "oficial"

// FallbackOfficialRate is applied whenever the rate API is unreachable
// or does not return an official quote.
const FallbackOfficialRate = 298.14

// Official returns the official rate from a quote list, or false if absent.
func Official(rates []Rate) (float64, bool) {
	for _, r := range rates {
		if r.Source == OfficialSource {
			return r.Average, true
		}
	}

	return 0, false
}
