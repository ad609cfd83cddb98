package analytics

import "testing"

// TestCanonicalize_Synonyms verifies that common free-text muscle tags
// normalize to their canonical group.
func TestCanonicalize_Synonyms(t *testing.T) {
	cases := []struct {
		tag  string
		want Group
	}{
		{"quad", GroupLegs},
		{"quads", GroupLegs},
		{"hamstrings", GroupLegs},
		{"glute", GroupLegs},
		{"lowerbody", GroupLegs},
		{"ab", GroupCore},
		{"abs", GroupCore},
		{"abdominals", GroupCore},
		{"delts", GroupShoulders},
		{"deltoids", GroupShoulders},
		{"biceps", GroupArms},
		{"triceps", GroupArms},
	}
	for _, tc := range cases {
		got, ok := Canonicalize(tc.tag)
		if !ok {
			t.Errorf("Canonicalize(%q): expected a match", tc.tag)
			continue
		}
		if got != tc.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", tc.tag, got, tc.want)
		}
	}
}

// TestCanonicalize_CanonicalNames verifies that the six canonical names map
// to themselves.
func TestCanonicalize_CanonicalNames(t *testing.T) {
	for _, g := range Groups {
		got, ok := Canonicalize(string(g))
		if !ok || got != g {
			t.Errorf("Canonicalize(%q) = %q, %v; want itself", g, got, ok)
		}
	}
}

// TestCanonicalize_Normalization verifies that tags are trimmed and
// lowercased before lookup.
func TestCanonicalize_Normalization(t *testing.T) {
	cases := []struct {
		tag  string
		want Group
	}{
		{"  Chest  ", GroupChest},
		{"QUADS", GroupLegs},
		{"Delts", GroupShoulders},
	}
	for _, tc := range cases {
		got, ok := Canonicalize(tc.tag)
		if !ok || got != tc.want {
			t.Errorf("Canonicalize(%q) = %q, %v; want %q", tc.tag, got, ok, tc.want)
		}
	}
}

// TestCanonicalize_Unknown verifies that unmatched tags return ok=false
// rather than an error or a bogus group.
func TestCanonicalize_Unknown(t *testing.T) {
	for _, tag := range []string{"", "cardio", "neck", "full body"} {
		if g, ok := Canonicalize(tag); ok {
			t.Errorf("Canonicalize(%q) = %q, expected no match", tag, g)
		}
	}
}

// TestNameFallback_Keywords verifies the keyword table matches typical
// exercise names.
func TestNameFallback_Keywords(t *testing.T) {
	cases := []struct {
		name string
		want Group
	}{
		{"Barbell Bench Press", GroupChest},
		{"Chest Fly", GroupChest},
		{"Seated Cable Row", GroupBack},
		{"Lat Pulldown", GroupBack},
		{"Barbell Squat", GroupLegs},
		{"Romanian Deadlift", GroupLegs},
		{"Walking Lunge", GroupLegs},
		{"Overhead Press", GroupShoulders},
		{"Military press behind neck", GroupShoulders},
		{"Hammer Curl", GroupArms},
		{"Tricep Extension", GroupArms},
		{"Plank", GroupCore},
		{"Situp", GroupCore},
	}
	for _, tc := range cases {
		got, ok := NameFallback(tc.name)
		if !ok {
			t.Errorf("NameFallback(%q): expected a match", tc.name)
			continue
		}
		if got != tc.want {
			t.Errorf("NameFallback(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

// TestNameFallback_Priority verifies that the first group in rule order wins
// when a name contains keywords of several groups. "Bench Pull" contains both
// a chest and a back keyword; chest is evaluated first. "Leg Press" matches
// legs before the shoulders "press"-free rules even see it.
func TestNameFallback_Priority(t *testing.T) {
	cases := []struct {
		name string
		want Group
	}{
		{"Bench Pull", GroupChest},      // chest before back
		{"Leg Press", GroupLegs},        // legs, not shoulders
		{"Shoulder Press", GroupLegs},   // "press" hits legs before shoulders
		{"Back Extension", GroupBack},   // back before arms
		{"Barbell Curl Row", GroupBack}, // back before arms
	}
	for _, tc := range cases {
		got, ok := NameFallback(tc.name)
		if !ok {
			t.Errorf("NameFallback(%q): expected a match", tc.name)
			continue
		}
		if got != tc.want {
			t.Errorf("NameFallback(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

// TestNameFallback_NoMatch verifies that names without any keyword return
// ok=false.
func TestNameFallback_NoMatch(t *testing.T) {
	for _, name := range []string{"", "Treadmill Run", "Jump Rope"} {
		if g, ok := NameFallback(name); ok {
			t.Errorf("NameFallback(%q) = %q, expected no match", name, g)
		}
	}
}
