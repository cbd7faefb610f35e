package request

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
)

const ClockLayout = "15:04"

var phonePattern = regexp2.MustCompile(`^\+?(?:[0-9][\s.\-()]?){6,19}[0-9]$`, regexp2.None)

var (
	isDate  = validation.Date(time.DateOnly).Error("must be a date in YYYY-MM-DD format")
	isClock = validation.Date(ClockLayout).Error("must be a time in HH:MM format")

	isPhone = validation.By(func(value interface{}) error {
		s, _ := value.(*string)
		if s == nil || *s == "" {
			return nil
		}
		if ok, err := phonePattern.MatchString(*s); err != nil || !ok {
			return errors.New("must be a valid phone number")
		}

		return nil
	})

	isTimestamp = validation.By(func(value interface{}) error {
		s, _ := value.(*string)
		if s == nil || *s == "" {
			return nil
		}
		if _, err := parseTimestamp(*s); err != nil {
			return err
		}

		return nil
	})
)

func oneOf(values []string) validation.Rule {
	elems := make([]interface{}, len(values))
	for i, v := range values {
		elems[i] = v
	}

	return validation.In(elems...).Error("must be one of " + strings.Join(values, ", "))
}

// atLeast checks an optional integer, zero included.
func atLeast(n int) validation.Rule {
	return validation.By(func(value interface{}) error {
		v, _ := value.(*int)
		if v != nil && *v < n {
			return fmt.Errorf("must be no less than %d", n)
		}

		return nil
	})
}

// requiredWithout makes a field mandatory when its counterpart is blank.
func requiredWithout(other *string, otherName string) validation.Rule {
	return validation.By(func(value interface{}) error {
		v, _ := value.(*string)
		if (v == nil || strings.TrimSpace(*v) == "") && (other == nil || strings.TrimSpace(*other) == "") {
			return fmt.Errorf("is required when %s is not present", otherName)
		}

		return nil
	})
}

// itemsMax limits the length of every element of a string list.
func itemsMax(n int) validation.Rule {
	return validation.By(func(value interface{}) error {
		list, _ := value.(StringList)
		for i, item := range list {
			if len([]rune(item)) > n {
				return fmt.Errorf("item %d may not be longer than %d characters", i+1, n)
			}
		}

		return nil
	})
}

var timestampLayouts = []string{time.RFC3339, time.DateTime, "2006-01-02T15:04", time.DateOnly}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, errors.New("must be a valid date or datetime")
}

func parseDate(s string) time.Time {
	t, _ := time.Parse(time.DateOnly, s)
	return t
}

// optDate parses an already validated date; empty clears the value.
func optDate(s string) *time.Time {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	t := parseDate(s)

	return &t
}

func optTimestamp(s string) *time.Time {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	t, err := parseTimestamp(s)
	if err != nil {
		return nil
	}

	return &t
}

// nullable turns blank strings into nil.
func nullable(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	return &s
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}

func strs(l StringList) []string {
	if l == nil {
		return []string{}
	}

	return []string(l)
}
