// Package pep440 implements version parsing, comparison and specifier
// matching for the version scheme used by the packaging manifests
// Packwright validates.
//
// A version consists of an optional epoch, a dotted release segment, and
// optional pre-release, post-release, dev-release and local labels:
//
//	[N!]N(.N)*[{a|b|rc}N][.postN][.devN][+local]
//
// Ordering follows the scheme's rules: for the same release,
// dev-releases sort before pre-releases, pre-releases before the final
// release, and post-releases after it.
package pep440

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// versionPattern matches a full version string. Separator and case
// variations (1.0A1, 1.0-post1, 1.0.a1) are normalized by the pattern.
var versionPattern = regexp.MustCompile(`^(?i)\s*v?` +
	`(?:(\d+)!)?` + // epoch
	`(\d+(?:\.\d+)*)` + // release
	`(?:[-_.]?(a|b|c|rc|alpha|beta|pre|preview)[-_.]?(\d*))?` + // pre
	`(?:[-_.]?(post|rev|r)[-_.]?(\d*)|-(\d+))?` + // post
	`(?:[-_.]?(dev)[-_.]?(\d*))?` + // dev
	`(?:\+([a-z0-9]+(?:[-_.][a-z0-9]+)*))?` + // local
	`\s*$`)

// Sentinels for absent pre/post/dev segments, chosen so that a plain
// numeric comparison yields the correct phase ordering.
const (
	segmentAbsentLow  = -1 << 40
	segmentAbsentHigh = 1 << 40
)

// Version is a parsed version.
type Version struct {
	Epoch   int
	Release []int
	// Pre is the pre-release phase: "a", "b" or "rc". Empty when final.
	Pre    string
	PreNum int
	// Post is the post-release number, -1 when absent.
	Post int
	// Dev is the dev-release number, -1 when absent.
	Dev int
	// Local is the local version label after "+", if any.
	Local string

	original string
}

// Parse parses a version string.
func Parse(s string) (Version, error) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, fmt.Errorf("invalid version %q", s)
	}

	v := Version{Post: -1, Dev: -1, original: strings.TrimSpace(s)}

	if m[1] != "" {
		v.Epoch, _ = strconv.Atoi(m[1])
	}

	for _, part := range strings.Split(m[2], ".") {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, fmt.Errorf("invalid release segment in %q", s)
		}
		v.Release = append(v.Release, n)
	}

	if m[3] != "" {
		v.Pre = normalizePrePhase(strings.ToLower(m[3]))
		v.PreNum = atoiDefault(m[4], 0)
	}

	switch {
	case m[5] != "":
		v.Post = atoiDefault(m[6], 0)
	case m[7] != "":
		// Implicit post release: 1.0-2
		v.Post = atoiDefault(m[7], 0)
	}

	if m[8] != "" {
		v.Dev = atoiDefault(m[9], 0)
	}

	if m[10] != "" {
		v.Local = strings.ToLower(strings.NewReplacer("-", ".", "_", ".").Replace(m[10]))
	}

	return v, nil
}

// MustParse parses a version string and panics on error. For tests and
// static initialization only.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func normalizePrePhase(phase string) string {
	switch phase {
	case "alpha":
		return "a"
	case "beta":
		return "b"
	case "c", "pre", "preview":
		return "rc"
	default:
		return phase
	}
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// IsPrerelease reports whether the version is a dev- or pre-release.
func (v Version) IsPrerelease() bool {
	return v.Pre != "" || v.Dev >= 0
}

// IsFinal reports whether the version has no pre, post, dev or local label.
func (v Version) IsFinal() bool {
	return v.Pre == "" && v.Post < 0 && v.Dev < 0 && v.Local == ""
}

// String returns the normalized form of the version.
func (v Version) String() string {
	var b strings.Builder
	if v.Epoch > 0 {
		fmt.Fprintf(&b, "%d!", v.Epoch)
	}
	for i, r := range v.Release {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(r))
	}
	if v.Pre != "" {
		fmt.Fprintf(&b, "%s%d", v.Pre, v.PreNum)
	}
	if v.Post >= 0 {
		fmt.Fprintf(&b, ".post%d", v.Post)
	}
	if v.Dev >= 0 {
		fmt.Fprintf(&b, ".dev%d", v.Dev)
	}
	if v.Local != "" {
		fmt.Fprintf(&b, "+%s", v.Local)
	}
	return b.String()
}

// preRank maps the pre-release phase to its sort position. Dev-only
// releases sort below any pre-release; final releases above all of them.
func (v Version) preRank() (int, int) {
	switch {
	case v.Pre != "":
		rank := map[string]int{"a": 1, "b": 2, "rc": 3}[v.Pre]
		return rank, v.PreNum
	case v.Post < 0 && v.Dev >= 0:
		return segmentAbsentLow, 0
	default:
		return segmentAbsentHigh, 0
	}
}

// Compare returns -1, 0 or 1 depending on whether v sorts before, equal
// to, or after other. The local label breaks ties last, segment by
// segment, with numeric segments sorting after alphanumeric ones.
func (v Version) Compare(other Version) int {
	if v.Epoch != other.Epoch {
		return sign(v.Epoch - other.Epoch)
	}
	if c := compareRelease(v.Release, other.Release); c != 0 {
		return c
	}

	aRank, aNum := v.preRank()
	bRank, bNum := other.preRank()
	if aRank != bRank {
		return sign(aRank - bRank)
	}
	if aNum != bNum {
		return sign(aNum - bNum)
	}

	aPost, bPost := orDefault(v.Post, segmentAbsentLow), orDefault(other.Post, segmentAbsentLow)
	if aPost != bPost {
		return sign(aPost - bPost)
	}

	aDev, bDev := orDefault(v.Dev, segmentAbsentHigh), orDefault(other.Dev, segmentAbsentHigh)
	if aDev != bDev {
		return sign(aDev - bDev)
	}

	return compareLocal(v.Local, other.Local)
}

// Equal reports whether the versions compare equal.
func (v Version) Equal(other Version) bool { return v.Compare(other) == 0 }

// Less reports whether v sorts before other.
func (v Version) Less(other Version) bool { return v.Compare(other) < 0 }

// compareRelease compares release tuples, padding the shorter with zeros.
func compareRelease(a, b []int) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		av, bv := 0, 0
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		if av != bv {
			return sign(av - bv)
		}
	}
	return 0
}

func compareLocal(a, b string) int {
	if a == b {
		return 0
	}
	if a == "" {
		return -1
	}
	if b == "" {
		return 1
	}

	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		av, aErr := strconv.Atoi(as[i])
		bv, bErr := strconv.Atoi(bs[i])
		switch {
		case aErr == nil && bErr == nil:
			if av != bv {
				return sign(av - bv)
			}
		case aErr == nil:
			return 1 // numeric segments sort after alphanumeric
		case bErr == nil:
			return -1
		default:
			if c := strings.Compare(as[i], bs[i]); c != 0 {
				return c
			}
		}
	}
	return sign(len(as) - len(bs))
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

func orDefault(n, def int) int {
	if n < 0 {
		return def
	}
	return n
}

// truncatedRelease returns the release tuple shortened by one segment
// with the new last segment incremented. Used for compatible-release
// and wildcard upper bounds: the bump of [1, 4, 2] is [1, 5].
func truncatedRelease(release []int) []int {
	if len(release) < 2 {
		return []int{release[0] + 1}
	}
	out := make([]int, len(release)-1)
	copy(out, release[:len(release)-1])
	out[len(out)-1]++
	return out
}
