package analytics

import "strings"

// Group is a canonical muscle group. The set is closed: every tag or exercise
// name either normalizes to one of these six values or to nothing.
type Group string

const (
	GroupChest     Group = "chest"
	GroupBack      Group = "back"
	GroupLegs      Group = "legs"
	GroupShoulders Group = "shoulders"
	GroupArms      Group = "arms"
	GroupCore      Group = "core"
)

// Groups lists all canonical groups in their fixed output order.
var Groups = []Group{GroupChest, GroupBack, GroupLegs, GroupShoulders, GroupArms, GroupCore}

// synonyms maps normalized free-text muscle tags to canonical groups. The six
// canonical names map to themselves.
var synonyms = map[string]Group{
	"chest": GroupChest,

	"back": GroupBack,

	"quad":       GroupLegs,
	"quads":      GroupLegs,
	"hamstring":  GroupLegs,
	"hamstrings": GroupLegs,
	"glute":      GroupLegs,
	"glutes":     GroupLegs,
	"leg":        GroupLegs,
	"legs":       GroupLegs,
	"lowerbody":  GroupLegs,

	"shoulder":  GroupShoulders,
	"shoulders": GroupShoulders,
	"delts":     GroupShoulders,
	"deltoids":  GroupShoulders,

	"biceps":  GroupArms,
	"triceps": GroupArms,
	"arms":    GroupArms,

	"ab":         GroupCore,
	"abs":        GroupCore,
	"abdominals": GroupCore,
	"core":       GroupCore,
}

// Canonicalize maps a free-text muscle tag to its canonical group.
// Lookup trims and lowercases the tag; unknown tags return ok=false.
func Canonicalize(tag string) (Group, bool) {
	g, ok := synonyms[strings.ToLower(strings.TrimSpace(tag))]
	return g, ok
}

// nameRule pairs a group with the substrings that claim an exercise name.
type nameRule struct {
	group    Group
	keywords []string
}

// nameRules is evaluated in order and the first hit wins. Order matters:
// names can contain keywords of several groups ("leg press", "bench pull"),
// and the priority below is the documented tie-break.
var nameRules = []nameRule{
	{GroupChest, []string{"bench", "chest"}},
	{GroupBack, []string{"row", "lat", "pull", "back"}},
	{GroupLegs, []string{"squat", "leg", "press", "deadlift", "lunge"}},
	{GroupShoulders, []string{"shoulder", "overhead", "ohp", "military"}},
	{GroupArms, []string{"curl", "extension", "arm", "tricep", "bicep"}},
	{GroupCore, []string{"ab", "core", "situp", "plank"}},
}

// NameFallback guesses a canonical group from an exercise name when none of
// its muscle tags resolve. Matching is case-insensitive substring search over
// the ordered rule table; no hit returns ok=false.
func NameFallback(exerciseName string) (Group, bool) {
	name := strings.ToLower(exerciseName)
	for _, rule := range nameRules {
		for _, kw := range rule.keywords {
			if strings.Contains(name, kw) {
				return rule.group, true
			}
		}
	}
	return "", false
}
