package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errNotABool = errors.New("must be a boolean")

// StringList accepts a JSON array, a string holding a JSON array, or repeated
// form values. Elements that are not strings are kept as compact JSON text.
// A string that is not JSON is read as a comma-separated list.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		return l.fromString(s)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("must be a list: %w", err)
	}

	out := make(StringList, 0, len(raw))
	for _, r := range raw {
		out = append(out, elementText(r))
	}
	*l = out

	return nil
}

func (l *StringList) UnmarshalForm(values []string) error {
	if len(values) == 1 {
		return l.fromString(values[0])
	}

	out := make(StringList, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	*l = out

	return nil
}

func (l *StringList) fromString(s string) error {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") {
		return l.UnmarshalJSON([]byte(s))
	}

	out := StringList{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*l = out

	return nil
}

func elementText(r json.RawMessage) string {
	var s string
	if err := json.Unmarshal(r, &s); err == nil {
		return s
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, r); err != nil {
		return string(r)
	}

	return buf.String()
}

// IntList is the integer counterpart of StringList. Numeric strings are
// accepted as elements.
type IntList []uint

func (l *IntList) UnmarshalJSON(data []byte) error {
	var strs StringList
	if err := strs.UnmarshalJSON(data); err != nil {
		return err
	}
	if strs == nil {
		*l = nil
		return nil
	}

	return l.fromStrings(strs)
}

func (l *IntList) UnmarshalForm(values []string) error {
	var strs StringList
	if err := strs.UnmarshalForm(values); err != nil {
		return err
	}

	return l.fromStrings(strs)
}

func (l *IntList) fromStrings(strs []string) error {
	out := make(IntList, 0, len(strs))
	for _, s := range strs {
		n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return fmt.Errorf("%q is not a valid id", s)
		}
		out = append(out, uint(n))
	}
	*l = out

	return nil
}

// FlexBool accepts JSON booleans, 0/1 and the strings true/false, 1/0,
// on/off and yes/no.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	var s string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	} else {
		s = string(data)
	}

	return b.set(s)
}

func (b *FlexBool) UnmarshalForm(values []string) error {
	if len(values) == 0 {
		return nil
	}

	return b.set(values[len(values)-1])
}

func (b *FlexBool) set(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "on", "yes":
		*b = true
	case "false", "0", "off", "no", "":
		*b = false
	default:
		return errNotABool
	}

	return nil
}

func (b *FlexBool) Ptr() *bool {
	if b == nil {
		return nil
	}

	v := bool(*b)

	return &v
}
