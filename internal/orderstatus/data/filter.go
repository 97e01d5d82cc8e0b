package data

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// FilterInput is the raw, caller-supplied form of a Filter. Empty fields are ignored.
type FilterInput struct {
	PackageNo     string
	Branch        string
	CustomerPhone string
	EmployeeLogin string
	ItemCode      string
	DateFrom      string
	DateTo        string
	Status        string
}

// Filter holds optional predicates combined with AND. Dates are inclusive and
// compare against the created date only.
type Filter struct {
	PackageNo     string
	Branch        string
	CustomerPhone string
	EmployeeLogin string
	ItemCode      string
	DateFrom      *time.Time
	DateTo        *time.Time
	// Status matches the final status after classification and enrichment.
	Status string
}

func ParseFilter(input FilterInput) (Filter, error) {
	filter := Filter{
		PackageNo:     strings.TrimSpace(input.PackageNo),
		Branch:        strings.TrimSpace(input.Branch),
		CustomerPhone: strings.TrimSpace(input.CustomerPhone),
		EmployeeLogin: strings.TrimSpace(input.EmployeeLogin),
		ItemCode:      strings.TrimSpace(input.ItemCode),
		Status:        strings.TrimSpace(input.Status),
	}
	var err error
	if filter.DateFrom, err = parseDate("fdate", input.DateFrom); err != nil {
		return Filter{}, err
	}
	if filter.DateTo, err = parseDate("tdate", input.DateTo); err != nil {
		return Filter{}, err
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.After(*filter.DateTo) {
		return Filter{}, &InvalidFilterError{
			Field:  "fdate",
			Value:  input.DateFrom,
			Reason: "is after tdate " + input.DateTo,
		}
	}
	return filter, nil
}

func parseDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, &InvalidFilterError{Field: field, Value: value, Reason: "expected YYYY-MM-DD"}
	}
	return &t, nil
}

// MatchesStatus reports whether a final status passes the status predicate.
func (f Filter) MatchesStatus(status string) bool {
	return f.Status == "" || f.Status == status
}
