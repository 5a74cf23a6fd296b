package scoring

// Rules is the static reference configuration the engine scores against. It
// is loaded once at startup and passed in explicitly; the engine never
// mutates it.
type Rules struct {
	// Tier1Companies is the reference employer allow-list. A single
	// case-insensitive match satisfies the experience criterion outright.
	Tier1Companies []string

	// AllowedLocations is the permitted location allow-list, matched
	// case-insensitively.
	AllowedLocations []string

	// CurrencyRates maps a currency code to its USD multiplier. A currency
	// absent from the table rejects the applicant.
	CurrencyRates map[string]float64

	// MaxHourlyRateUSD is the upper bound on the normalized preferred rate.
	MaxHourlyRateUSD float64

	// MinAvailabilityHours is the weekly availability floor.
	MinAvailabilityHours int

	// MinTenureYears is the accumulated-tenure alternative to a tier-1
	// employer. The bound is inclusive.
	MinTenureYears float64
}

// DefaultRules returns the reference rule set.
func DefaultRules() Rules {
	return Rules{
		Tier1Companies: []string{
			"Google", "Meta", "OpenAI", "Amazon", "Microsoft", "Netflix",
			"Apple", "Tesla", "Uber", "Airbnb", "Stripe", "Salesforce", "LinkedIn",
		},
		AllowedLocations: []string{"US", "Canada", "UK", "Germany", "India"},
		CurrencyRates: map[string]float64{
			"USD": 1.0,
			"EUR": 1.15,
			"GBP": 1.3,
			"INR": 0.012,
		},
		MaxHourlyRateUSD:     100,
		MinAvailabilityHours: 20,
		MinTenureYears:       4.0,
	}
}
