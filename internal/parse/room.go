package parse

import (
	"cmp"
	"regexp"
	"strings"
)

var (
	runRe   = regexp.MustCompile(`\d+|\D+`)
	digitRe = regexp.MustCompile(`^\d+$`)
)

// CompareRooms orders room identifiers naturally: digit runs compare by
// numeric value and other runs lexically, so "9" sorts before "10" and
// "A2" before "A10". Identifiers that tie run-by-run fall back to plain
// string comparison, which keeps the order total.
func CompareRooms(a, b string) int {
	ra := runRe.FindAllString(a, -1)
	rb := runRe.FindAllString(b, -1)

	for i := 0; i < len(ra) && i < len(rb); i++ {
		if c := compareRun(ra[i], rb[i]); c != 0 {
			return c
		}
	}
	if c := cmp.Compare(len(ra), len(rb)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func compareRun(x, y string) int {
	if !digitRe.MatchString(x) || !digitRe.MatchString(y) {
		return strings.Compare(x, y)
	}
	// Compare without parsing so arbitrarily long numbers cannot overflow.
	x = strings.TrimLeft(x, "0")
	y = strings.TrimLeft(y, "0")
	if c := cmp.Compare(len(x), len(y)); c != 0 {
		return c
	}
	return strings.Compare(x, y)
}
