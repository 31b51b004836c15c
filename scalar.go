package miniyaml

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numberPattern rejects leading zeros ("007" stays a string) and bare
// fractions (".5", "1.").
var numberPattern = regexp.MustCompile(`^-?(?:0|[1-9][0-9]*)(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?$`)

// resolveScalar classifies a plain or quoted scalar.
func resolveScalar(s string) Value {
	s = strings.TrimSpace(s)

	switch s {
	case "", "null", "~":
		return Null()
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}

	if isQuoted(s) {
		return String(unquote(s))
	}

	if numberPattern.MatchString(s) {
		f, err := strconv.ParseFloat(s, 64)
		if err == nil && !math.IsInf(f, 0) {
			return Number(f)
		}
	}

	return String(s)
}
