package models

import (
	"strconv"
	"strings"
)

// Colour is an ordered list of 3-4 channel values in [0,1], stored as a
// comma-joined string.
type Colour []float64

func (c Colour) String() string {
	if len(c) == 0 {
		return ""
	}
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// ParseColour parses a comma-joined channel list. Malformed channels
// parse as 0 so a bad stored value degrades instead of erroring.
func ParseColour(s string) Colour {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	c := make(Colour, len(parts))
	for i, p := range parts {
		v, _ := strconv.ParseFloat(strings.TrimSpace(p), 64)
		c[i] = v
	}
	return c
}
