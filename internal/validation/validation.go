package validation

import (
	"fmt"
	"regexp"

	"github.com/creatorlens/youtube-analytics-go/internal/models"
)

var languageTagRegex = regexp.MustCompile(`^[a-z]{2}(-[A-Za-z]{2})?$`)

const (
	maxKeywordLength  = 100
	defaultMaxResults = 25
	maxMaxResults     = 50
)

var validPeriods = map[models.Period]bool{
	models.Period24h:  true,
	models.Period48h:  true,
	models.Period72h:  true,
	models.Period7d:   true,
	models.Period30d:  true,
	models.Period90d:  true,
	models.Period180d: true,
	models.PeriodAll:  true,
}

var validSearchTypes = map[models.SearchType]bool{
	models.SearchTypeVideos:   true,
	models.SearchTypeShorts:   true,
	models.SearchTypeChannels: true,
}

// Validator checks search parameters before they reach the provider.
type Validator struct {
	strict bool
}

// New creates a Validator. When strict is false only the checks that
// protect downstream calls are applied.
func New(strict bool) *Validator {
	return &Validator{strict: strict}
}

// ValidateSearchParams verifies the params and normalizes defaults in
// place: empty period becomes "all", empty search type becomes "videos",
// zero max results becomes the default cap.
func (v *Validator) ValidateSearchParams(params *models.SearchParams) error {
	if params.Keyword == "" {
		return fmt.Errorf("keyword is required")
	}
	if len(params.Keyword) > maxKeywordLength {
		return fmt.Errorf("keyword exceeds maximum length of %d characters", maxKeywordLength)
	}

	if params.Period == "" {
		params.Period = models.PeriodAll
	}
	if !validPeriods[params.Period] {
		return fmt.Errorf("invalid period: %s", params.Period)
	}

	if params.SearchType == "" {
		params.SearchType = models.SearchTypeVideos
	}
	if !validSearchTypes[params.SearchType] {
		return fmt.Errorf("invalid search type: %s", params.SearchType)
	}

	if params.MaxResults < 0 {
		return fmt.Errorf("max results must not be negative")
	}
	if params.MaxResults == 0 {
		params.MaxResults = defaultMaxResults
	}
	if params.MaxResults > maxMaxResults {
		return fmt.Errorf("max results exceeds cap of %d", maxMaxResults)
	}

	if err := validateRange("views", params.MinViews, params.MaxViews); err != nil {
		return err
	}
	if err := validateRange("subscribers", params.MinSubscribers, params.MaxSubscribers); err != nil {
		return err
	}

	if v.strict && params.Language != "" && params.Language != "any" {
		if !languageTagRegex.MatchString(params.Language) {
			return fmt.Errorf("invalid language tag: %s", params.Language)
		}
	}

	return nil
}

func validateRange(field string, min, max *int64) error {
	if min != nil && *min < 0 {
		return fmt.Errorf("minimum %s must not be negative", field)
	}
	if max != nil && *max < 0 {
		return fmt.Errorf("maximum %s must not be negative", field)
	}
	if min != nil && max != nil && *min > *max {
		return fmt.Errorf("minimum %s exceeds maximum", field)
	}
	return nil
}

// IsValidPeriod reports whether the period is one of the supported enums.
func IsValidPeriod(p models.Period) bool {
	return validPeriods[p]
}
