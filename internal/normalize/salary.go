package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"jobhound-ingest/pkg/models"
)

var digitRuns = regexp.MustCompile(`\d+`)

// ParseSalary extracts a salary range from free text such as
// "$80k-$120k per year". The first number becomes the minimum, the second
// (when present) the maximum. Returns nil when the text carries no digits.
//
// Currency is an explicit caller input rather than being guessed from the
// "$" glyph, which is ambiguous between USD and AUD; each pipeline passes
// its configured currency.
func ParseSalary(raw string, currency string) *models.Salary {
	numbers := digitRuns.FindAllString(raw, -1)
	if len(numbers) == 0 {
		return nil
	}

	min, _ := strconv.Atoi(numbers[0])
	max := min
	if len(numbers) > 1 {
		max, _ = strconv.Atoi(numbers[1])
	}

	period := models.PeriodYearly
	if strings.Contains(strings.ToLower(raw), "hour") {
		period = models.PeriodHourly
	}

	return &models.Salary{
		Min:      min,
		Max:      max,
		Currency: currency,
		Period:   period,
	}
}
