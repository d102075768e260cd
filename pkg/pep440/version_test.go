package pep440

import (
	"sort"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.0", "1.0"},
		{"v1.0", "1.0"},
		{"  1.2.3  ", "1.2.3"},
		{"1!2.0", "1!2.0"},
		{"1.0a1", "1.0a1"},
		{"1.0.alpha.1", "1.0a1"},
		{"1.0b2", "1.0b2"},
		{"1.0rc1", "1.0rc1"},
		{"1.0.pre1", "1.0rc1"},
		{"1.0.post2", "1.0.post2"},
		{"1.0-rev2", "1.0.post2"},
		{"1.0-2", "1.0.post2"},
		{"1.0.dev3", "1.0.dev3"},
		{"1.0+local.1", "1.0+local.1"},
		{"1.0+Local_1", "1.0+local.1"},
		{"2.0A1.post0.dev0", "2.0a1.post0.dev0"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			if got := v.String(); got != tt.want {
				t.Errorf("Parse(%q).String() = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "1.0.x", "1..0", "==1.0", "1.0 beta"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) should fail", in)
		}
	}
}

func TestCompare_Ordering(t *testing.T) {
	// Listed in ascending order.
	ordered := []string{
		"0.9",
		"1.0.dev1",
		"1.0a1",
		"1.0a2.dev1",
		"1.0a2",
		"1.0b1",
		"1.0rc1",
		"1.0",
		"1.0+alpha",
		"1.0+ubuntu.1",
		"1.0.post1",
		"1.0.1",
		"1.1",
		"1!0.5",
	}

	for i := 0; i < len(ordered)-1; i++ {
		a, b := MustParse(ordered[i]), MustParse(ordered[i+1])
		if a.Compare(b) >= 0 {
			t.Errorf("expected %s < %s", ordered[i], ordered[i+1])
		}
		if b.Compare(a) <= 0 {
			t.Errorf("expected %s > %s", ordered[i+1], ordered[i])
		}
	}
}

func TestCompare_Equal(t *testing.T) {
	pairs := [][2]string{
		{"1.0", "1.0.0"},
		{"1.0", "1.0.0.0"},
		{"1.0a1", "1.0.a.1"},
		{"1.0.post1", "1.0-r1"},
		{"0!1.0", "1.0"},
	}

	for _, p := range pairs {
		a, b := MustParse(p[0]), MustParse(p[1])
		if !a.Equal(b) {
			t.Errorf("expected %s == %s", p[0], p[1])
		}
	}
}

func TestSortVersions(t *testing.T) {
	versions := []Version{
		MustParse("1.10"),
		MustParse("1.2"),
		MustParse("1.9.post1"),
		MustParse("1.9"),
		MustParse("2.0.dev1"),
	}

	sort.Slice(versions, func(i, j int) bool { return versions[i].Less(versions[j]) })

	want := []string{"1.2", "1.9", "1.9.post1", "1.10", "2.0.dev1"}
	for i, w := range want {
		if versions[i].String() != w {
			t.Fatalf("position %d: got %s, want %s", i, versions[i], w)
		}
	}
}

func TestIsPrerelease(t *testing.T) {
	if !MustParse("1.0a1").IsPrerelease() {
		t.Error("1.0a1 should be a prerelease")
	}
	if !MustParse("1.0.dev1").IsPrerelease() {
		t.Error("1.0.dev1 should be a prerelease")
	}
	if MustParse("1.0.post1").IsPrerelease() {
		t.Error("1.0.post1 should not be a prerelease")
	}
	if MustParse("1.0").IsPrerelease() {
		t.Error("1.0 should not be a prerelease")
	}
}
