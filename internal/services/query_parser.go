package services

import (
	"strings"
	"time"

	"shotbox/internal/dto"
	"shotbox/internal/models"
)

const dateLayout = "2006-01-02"

// ParseExpression parses the advanced-search mini language: a sequence of
// whitespace-separated tokens where category:<NAME>, date:<FROM>..<TO> and
// tag:<VALUE> are structured filters and everything else is free text.
// Unknown key: prefixes are an error rather than silently ignored, so a
// typo like "categry:ERROR" does not degrade into a text search.
func ParseExpression(expression string) (dto.SearchQuery, error) {
	var q dto.SearchQuery
	var freeText []string

	for _, token := range strings.Fields(expression) {
		colon := strings.Index(token, ":")
		if colon <= 0 {
			freeText = append(freeText, token)
			continue
		}

		key := strings.ToLower(token[:colon])
		value := token[colon+1:]

		switch key {
		case "category":
			category := strings.ToUpper(value)
			if !models.KnownCategory(category) {
				return q, &QueryParseError{Token: token, Reason: "unknown category"}
			}
			q.Category = category

		case "date":
			if err := parseDateRange(token, value, &q); err != nil {
				return q, err
			}

		case "tag":
			if value == "" {
				return q, &QueryParseError{Token: token, Reason: "empty tag"}
			}
			q.Tags = append(q.Tags, value)

		default:
			return q, &QueryParseError{Token: token, Reason: "unknown search key"}
		}
	}

	q.Text = strings.Join(freeText, " ")
	return q, nil
}

func parseDateRange(token, value string, q *dto.SearchQuery) error {
	fromValue := value
	toValue := ""
	if parts := strings.SplitN(value, "..", 2); len(parts) == 2 {
		fromValue, toValue = parts[0], parts[1]
	}

	from, err := time.Parse(dateLayout, fromValue)
	if err != nil {
		return &QueryParseError{Token: token, Reason: "malformed date, want YYYY-MM-DD"}
	}
	q.DateFrom = &from

	if toValue != "" {
		to, err := time.Parse(dateLayout, toValue)
		if err != nil {
			return &QueryParseError{Token: token, Reason: "malformed date, want YYYY-MM-DD"}
		}
		// The range is inclusive of the whole end day.
		to = to.Add(24*time.Hour - time.Nanosecond)
		q.DateTo = &to
	}
	return nil
}
