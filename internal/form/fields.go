package form

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// optional maps an empty form value to NULL.
func optional(s string) *string {
	if blank(s) {
		return nil
	}
	return &s
}

func checkDate(field, s string) error {
	if blank(s) {
		return nil
	}
	if _, err := time.Parse(dateLayout, strings.TrimSpace(s)); err != nil {
		return invalid(field, "must be a date (YYYY-MM-DD)")
	}
	return nil
}

func optionalDate(s string) *datatypes.Date {
	if blank(s) {
		return nil
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	d := datatypes.Date(t)
	return &d
}

func checkUUID(field, s string, mandatory bool) error {
	if blank(s) {
		if mandatory {
			return required(field)
		}
		return nil
	}
	if _, err := uuid.Parse(strings.TrimSpace(s)); err != nil {
		return invalid(field, "must be a valid id")
	}
	return nil
}

func optionalUUID(s string) *uuid.UUID {
	if blank(s) {
		return nil
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &id
}

func mustUUID(s string) uuid.UUID {
	id, _ := uuid.Parse(strings.TrimSpace(s))
	return id
}

func checkInt(field, s string) error {
	if blank(s) {
		return nil
	}
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return invalid(field, "must be a whole number")
	}
	return nil
}

func optionalInt(s string) *int {
	if blank(s) {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}

func checkFloat(field, s string) error {
	if blank(s) {
		return nil
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
		return invalid(field, "must be a number")
	}
	return nil
}

func optionalFloat(s string) *float64 {
	if blank(s) {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &f
}
