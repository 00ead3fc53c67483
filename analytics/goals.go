package analytics

import (
	"fmt"
	"strconv"
	"strings"
)

// SumGoals adds up the values of the goal columns of a row. Blank values count as zero
// and strings may use a decimal comma. A string that is not a number is an error.
func SumGoals(values ...any) (float64, error) {
	sum := 0.0

	for _, v := range values {
		switch x := v.(type) {
		case nil:

		case int:
			sum += float64(x)

		case int64:
			sum += float64(x)

		case float64:
			sum += x

		case bool:
			if x {
				sum += 1
			}

		case string:
			s := strings.TrimSpace(x)
			if s == "" {
				continue
			}

			f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
			if err != nil {
				return 0, fmt.Errorf("invalid goal value '%v' (%w)", x, err)
			}

			sum += f
		}
	}

	return sum, nil
}

// GoalActions returns the value written to the GoalActions column for a goal sum: the sum
// itself if it is positive and "" otherwise.
func GoalActions(sum float64) any {
	if sum > 0 {
		return sum
	}

	return ""
}
