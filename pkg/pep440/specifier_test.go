package pep440

import (
	"testing"
)

func TestSpecifierMatch(t *testing.T) {
	tests := []struct {
		spec    string
		version string
		want    bool
	}{
		{">=1.25", "1.25", true},
		{">=1.25", "1.24.9", false},
		{">=1.25", "2.0", true},
		{">1.0", "1.0", false},
		{">1.0", "1.0.1", true},
		{"<3", "2.99", true},
		{"<3", "3.0", false},
		{"<=3.0", "3.0", true},
		{"==1.4.2", "1.4.2", true},
		{"==1.4.2", "1.4.2.0", true},
		{"==1.4.2", "1.4.3", false},
		{"==1.4.2", "1.4.2+local", true},
		{"==1.4.2+local", "1.4.2", false},
		{"!=1.4.2", "1.4.2", false},
		{"!=1.4.2", "1.4.3", true},
		{"==1.4.*", "1.4.0", true},
		{"==1.4.*", "1.4.9", true},
		{"==1.4.*", "1.5.0", false},
		{"==1.4.*", "1.4", true},
		{"!=1.4.*", "1.4.2", false},
		{"!=1.4.*", "1.5.0", true},
		{"~=1.4.2", "1.4.2", true},
		{"~=1.4.2", "1.4.9", true},
		{"~=1.4.2", "1.5.0", false},
		{"~=1.4.2", "1.4.1", false},
		{"~=1.4", "1.9", true},
		{"~=1.4", "2.0", false},
		{"===1.4.2", "1.4.2", true},
		{"===1.4.2", "1.4.2.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.spec+" vs "+tt.version, func(t *testing.T) {
			spec, err := ParseSpecifier(tt.spec)
			if err != nil {
				t.Fatalf("ParseSpecifier(%q) error: %v", tt.spec, err)
			}
			if got := spec.Match(MustParse(tt.version)); got != tt.want {
				t.Errorf("%q.Match(%q) = %v, want %v", tt.spec, tt.version, got, tt.want)
			}
		})
	}
}

func TestParseSpecifier_Invalid(t *testing.T) {
	for _, in := range []string{"", "1.0", ">=", ">=x.y", ">=1.*", "~=1", "~=1.4.*"} {
		if _, err := ParseSpecifier(in); err == nil {
			t.Errorf("ParseSpecifier(%q) should fail", in)
		}
	}
}

func TestSpecifierSet(t *testing.T) {
	set, err := ParseSpecifierSet(">=1.17,<3")
	if err != nil {
		t.Fatalf("ParseSpecifierSet error: %v", err)
	}
	if len(set) != 2 {
		t.Fatalf("expected 2 specifiers, got %d", len(set))
	}

	if !set.Match(MustParse("2.5")) {
		t.Error("2.5 should match >=1.17,<3")
	}
	if set.Match(MustParse("3.0")) {
		t.Error("3.0 should not match >=1.17,<3")
	}
	if set.Match(MustParse("1.16.9")) {
		t.Error("1.16.9 should not match >=1.17,<3")
	}

	if got := set.String(); got != ">=1.17,<3" {
		t.Errorf("String() = %q", got)
	}
}

func TestSpecifierSet_Empty(t *testing.T) {
	set, err := ParseSpecifierSet("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set != nil {
		t.Fatalf("expected nil set, got %v", set)
	}
	if !set.Match(MustParse("0.0.1")) {
		t.Error("empty set should match everything")
	}
}

func TestInterval_Empty(t *testing.T) {
	tests := []struct {
		name      string
		specs     string
		wantEmpty bool
	}{
		{"open range", ">=1.0,<2.0", false},
		{"inverted bounds", ">=2.0,<1.0", true},
		{"touching exclusive", ">=1.0,<1.0", true},
		{"touching inclusive", ">=1.0,<=1.0", false},
		{"pin inside range", ">=1.0,<2.0,==1.5", false},
		{"pin outside range", ">=1.0,<2.0,==2.5", true},
		{"pin at exclusive bound", "<2.0,==2.0", true},
		{"conflicting pins", "==1.0,==2.0", true},
		{"equivalent pins", "==1.0,==1.0.0", false},
		{"pin excluded", "==1.4.2,!=1.4.2", true},
		{"pin vs excluded wildcard", "==1.4.2,!=1.4.*", true},
		{"exclusion outside range", ">=1.0,<2.0,!=3.0", false},
		{"wildcard hollows range", ">=1.4,<1.5,!=1.4.*", true},
		{"wildcard partial overlap", ">=1.4,<1.6,!=1.4.*", false},
		{"compatible conflict", "~=1.4.2,>=2.0", true},
		{"compatible fits", "~=1.4.2,<1.5", false},
		{"single point excluded", ">=1.0,<=1.0,!=1.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := ParseSpecifierSet(tt.specs)
			if err != nil {
				t.Fatalf("ParseSpecifierSet(%q) error: %v", tt.specs, err)
			}
			empty, reason := set.Interval().Empty()
			if empty != tt.wantEmpty {
				t.Errorf("Interval(%q).Empty() = %v (%s), want %v", tt.specs, empty, reason, tt.wantEmpty)
			}
			if empty && reason == "" {
				t.Error("empty interval should carry a reason")
			}
		})
	}
}

func TestIntersect(t *testing.T) {
	a := mustSet(t, ">=1.0").Interval()
	b := mustSet(t, "<1.0").Interval()

	if empty, _ := a.Empty(); empty {
		t.Fatal(">=1.0 alone should be satisfiable")
	}
	if empty, _ := b.Empty(); empty {
		t.Fatal("<1.0 alone should be satisfiable")
	}
	if empty, _ := Intersect(a, b).Empty(); !empty {
		t.Error("intersection of >=1.0 and <1.0 should be empty")
	}

	c := mustSet(t, ">=1.2,<2.0").Interval()
	d := mustSet(t, ">=1.5,<3.0").Interval()
	merged := Intersect(c, d)
	if empty, reason := merged.Empty(); empty {
		t.Errorf("intersection should be satisfiable: %s", reason)
	}
	if merged.Lower.Version.String() != "1.5" {
		t.Errorf("lower bound = %s, want 1.5", merged.Lower.Version)
	}
	if merged.Upper.Version.String() != "2.0" {
		t.Errorf("upper bound = %s, want 2.0", merged.Upper.Version)
	}
}

func mustSet(t *testing.T, s string) SpecifierSet {
	t.Helper()
	set, err := ParseSpecifierSet(s)
	if err != nil {
		t.Fatalf("ParseSpecifierSet(%q) error: %v", s, err)
	}
	return set
}
