package pep440

import (
	"fmt"
)

// Bound is one end of a version interval.
type Bound struct {
	Version   Version
	Inclusive bool
}

// Interval is the normal form of a specifier set used for satisfiability
// analysis: a contiguous range plus exact pins and exclusions. It
// over-approximates only in the direction of satisfiability, so an
// Empty result is always a real conflict.
type Interval struct {
	Lower *Bound // nil means unbounded below
	Upper *Bound // nil means unbounded above

	Pins             []Version // from == and parseable ===
	Excluded         []Version // from != with an exact version
	ExcludedPrefixes [][]int   // from != with a wildcard
	Arbitrary        []string  // from === with an unparseable target
}

// Interval reduces the specifier set to its interval normal form.
func (set SpecifierSet) Interval() Interval {
	var iv Interval

	for _, s := range set {
		switch s.Op {
		case OpGreaterEqual:
			iv.tightenLower(Bound{Version: s.Version, Inclusive: true})
		case OpGreater:
			iv.tightenLower(Bound{Version: s.Version, Inclusive: false})
		case OpLessEqual:
			iv.tightenUpper(Bound{Version: s.Version, Inclusive: true})
		case OpLess:
			iv.tightenUpper(Bound{Version: s.Version, Inclusive: false})
		case OpCompatible:
			iv.tightenLower(Bound{Version: s.Version, Inclusive: true})
			iv.tightenUpper(Bound{Version: bumpVersion(s.Version), Inclusive: false})
		case OpEqual:
			if s.Prefix != nil {
				iv.tightenLower(Bound{Version: prefixFloor(s.Prefix), Inclusive: true})
				iv.tightenUpper(Bound{Version: prefixCeiling(s.Prefix), Inclusive: false})
			} else {
				iv.Pins = append(iv.Pins, s.Version)
			}
		case OpNotEqual:
			if s.Prefix != nil {
				iv.ExcludedPrefixes = append(iv.ExcludedPrefixes, s.Prefix)
			} else {
				iv.Excluded = append(iv.Excluded, s.Version)
			}
		case OpArbitrary:
			if v, err := Parse(s.Raw); err == nil {
				iv.Pins = append(iv.Pins, v)
			} else {
				iv.Arbitrary = append(iv.Arbitrary, s.Raw)
			}
		}
	}

	return iv
}

func (iv *Interval) tightenLower(b Bound) {
	if iv.Lower == nil {
		iv.Lower = &b
		return
	}
	c := b.Version.Compare(iv.Lower.Version)
	if c > 0 || (c == 0 && !b.Inclusive) {
		iv.Lower = &b
	}
}

func (iv *Interval) tightenUpper(b Bound) {
	if iv.Upper == nil {
		iv.Upper = &b
		return
	}
	c := b.Version.Compare(iv.Upper.Version)
	if c < 0 || (c == 0 && !b.Inclusive) {
		iv.Upper = &b
	}
}

// Intersect combines two intervals, keeping the tighter bounds.
func Intersect(a, b Interval) Interval {
	out := a
	if b.Lower != nil {
		out.tightenLower(*b.Lower)
	}
	if b.Upper != nil {
		out.tightenUpper(*b.Upper)
	}
	out.Pins = append(append([]Version{}, a.Pins...), b.Pins...)
	out.Excluded = append(append([]Version{}, a.Excluded...), b.Excluded...)
	out.ExcludedPrefixes = append(append([][]int{}, a.ExcludedPrefixes...), b.ExcludedPrefixes...)
	out.Arbitrary = append(append([]string{}, a.Arbitrary...), b.Arbitrary...)
	return out
}

// Empty reports whether no version can satisfy the interval, along with
// a human-readable reason when it cannot.
func (iv Interval) Empty() (bool, string) {
	// Distinct pins conflict with each other.
	for i := 1; i < len(iv.Pins); i++ {
		if !iv.Pins[i].Equal(iv.Pins[0]) {
			return true, fmt.Sprintf("pinned to both %s and %s", iv.Pins[0], iv.Pins[i])
		}
	}
	for i := 1; i < len(iv.Arbitrary); i++ {
		if iv.Arbitrary[i] != iv.Arbitrary[0] {
			return true, fmt.Sprintf("pinned to both %q and %q", iv.Arbitrary[0], iv.Arbitrary[i])
		}
	}
	if len(iv.Pins) > 0 && len(iv.Arbitrary) > 0 && iv.Pins[0].String() != iv.Arbitrary[0] {
		return true, fmt.Sprintf("pinned to both %s and %q", iv.Pins[0], iv.Arbitrary[0])
	}

	if len(iv.Pins) > 0 {
		pin := iv.Pins[0]
		if iv.Lower != nil {
			c := pin.Compare(iv.Lower.Version)
			if c < 0 || (c == 0 && !iv.Lower.Inclusive) {
				return true, fmt.Sprintf("pin %s is below lower bound %s", pin, iv.Lower.Version)
			}
		}
		if iv.Upper != nil {
			c := pin.Compare(iv.Upper.Version)
			if c > 0 || (c == 0 && !iv.Upper.Inclusive) {
				return true, fmt.Sprintf("pin %s is above upper bound %s", pin, iv.Upper.Version)
			}
		}
		for _, ex := range iv.Excluded {
			if pin.Equal(ex) {
				return true, fmt.Sprintf("pin %s is also excluded", pin)
			}
		}
		for _, prefix := range iv.ExcludedPrefixes {
			if matchesPrefix(pin, prefix) {
				return true, fmt.Sprintf("pin %s matches an excluded wildcard", pin)
			}
		}
		return false, ""
	}

	if iv.Lower != nil && iv.Upper != nil {
		c := iv.Lower.Version.Compare(iv.Upper.Version)
		if c > 0 {
			return true, fmt.Sprintf("lower bound %s exceeds upper bound %s", iv.Lower.Version, iv.Upper.Version)
		}
		if c == 0 {
			if !iv.Lower.Inclusive || !iv.Upper.Inclusive {
				return true, fmt.Sprintf("bounds meet at %s but exclude it", iv.Lower.Version)
			}
			// Single-point range: the point must not be excluded.
			for _, ex := range iv.Excluded {
				if ex.Equal(iv.Lower.Version) {
					return true, fmt.Sprintf("only candidate %s is excluded", iv.Lower.Version)
				}
			}
			for _, prefix := range iv.ExcludedPrefixes {
				if matchesPrefix(iv.Lower.Version, prefix) {
					return true, fmt.Sprintf("only candidate %s matches an excluded wildcard", iv.Lower.Version)
				}
			}
		}

		// A wildcard exclusion can hollow out the whole range.
		for _, prefix := range iv.ExcludedPrefixes {
			floor, ceiling := prefixFloor(prefix), prefixCeiling(prefix)
			if floor.Compare(iv.Lower.Version) <= 0 && iv.Upper.Version.Compare(ceiling) <= 0 {
				return true, fmt.Sprintf("range [%s, %s) lies entirely inside excluded wildcard %s.*",
					iv.Lower.Version, iv.Upper.Version, releaseString(prefix))
			}
		}
	}

	return false, ""
}

// bumpVersion returns the compatible-release ceiling of v: the release
// shortened by one segment with the last remaining segment incremented.
func bumpVersion(v Version) Version {
	return Version{Epoch: v.Epoch, Release: truncatedRelease(v.Release), Post: -1, Dev: -1}
}

// prefixFloor is the smallest version matching a wildcard prefix.
func prefixFloor(prefix []int) Version {
	release := make([]int, len(prefix))
	copy(release, prefix)
	return Version{Release: release, Post: -1, Dev: -1}
}

// prefixCeiling is the exclusive upper bound of a wildcard prefix.
func prefixCeiling(prefix []int) Version {
	release := make([]int, len(prefix)+1)
	copy(release, prefix)
	return bumpVersion(Version{Release: release, Post: -1, Dev: -1})
}

func releaseString(release []int) string {
	v := Version{Release: release, Post: -1, Dev: -1}
	return v.String()
}
