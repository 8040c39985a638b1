package analytics

import "strings"

// Economics holds the estimated monetization rates for a niche.
type Economics struct {
	CPM float64 `json:"cpm"`
	RPM float64 `json:"rpm"`
}

// NicheEconomicsProvider supplies CPM/RPM estimates per (niche, country).
// Implementations must be deterministic for a given input so the
// enricher stays a pure function.
type NicheEconomicsProvider interface {
	Estimate(niche, country string) (Economics, bool)
}

// StaticEconomics is the default table-backed provider. Lookups try
// (niche, country), then niche alone, then a global fallback.
type StaticEconomics struct {
	table    map[string]Economics
	fallback Economics
}

// NewStaticEconomics builds the provider with the built-in rate table.
func NewStaticEconomics() *StaticEconomics {
	return &StaticEconomics{
		table: map[string]Economics{
			"finance|us":        {CPM: 22.0, RPM: 12.1},
			"finance|gb":        {CPM: 18.5, RPM: 10.2},
			"finance":           {CPM: 14.0, RPM: 7.7},
			"technology|us":     {CPM: 15.5, RPM: 8.5},
			"technology":        {CPM: 10.8, RPM: 5.9},
			"education|us":      {CPM: 12.4, RPM: 6.8},
			"education":         {CPM: 9.0, RPM: 5.0},
			"health|us":         {CPM: 11.2, RPM: 6.2},
			"health":            {CPM: 8.4, RPM: 4.6},
			"gaming|us":         {CPM: 6.5, RPM: 3.6},
			"gaming":            {CPM: 4.8, RPM: 2.6},
			"entertainment|us":  {CPM: 5.9, RPM: 3.2},
			"entertainment":     {CPM: 4.2, RPM: 2.3},
			"howto & style":     {CPM: 7.6, RPM: 4.2},
			"travel & events":   {CPM: 6.1, RPM: 3.4},
			"people & blogs":    {CPM: 4.0, RPM: 2.2},
			"film & animation":  {CPM: 4.5, RPM: 2.5},
			"news & politics":   {CPM: 5.2, RPM: 2.9},
			"science & tech":    {CPM: 10.1, RPM: 5.6},
			"autos & vehicles":  {CPM: 7.0, RPM: 3.9},
			"pets & animals":    {CPM: 4.4, RPM: 2.4},
			"sports":            {CPM: 5.0, RPM: 2.8},
			"music":             {CPM: 3.2, RPM: 1.8},
			"nonprofits":        {CPM: 3.8, RPM: 2.1},
			"comedy":            {CPM: 4.6, RPM: 2.5},
			"gadgets & reviews": {CPM: 11.5, RPM: 6.3},
		},
		fallback: Economics{CPM: 4.0, RPM: 2.2},
	}
}

// Estimate implements NicheEconomicsProvider. The boolean is false only
// when the niche is empty, in which case no estimate is meaningful.
func (s *StaticEconomics) Estimate(niche, country string) (Economics, bool) {
	niche = strings.ToLower(strings.TrimSpace(niche))
	country = strings.ToLower(strings.TrimSpace(country))
	if niche == "" {
		return Economics{}, false
	}
	if country != "" {
		if eco, ok := s.table[niche+"|"+country]; ok {
			return eco, true
		}
	}
	if eco, ok := s.table[niche]; ok {
		return eco, true
	}
	return s.fallback, true
}

// EstimatedEarnings converts a view count and RPM into an earnings
// estimate in the same currency as the table.
func EstimatedEarnings(views int64, rpm float64) float64 {
	return float64(views) / 1000 * rpm
}
