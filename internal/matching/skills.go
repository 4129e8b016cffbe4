package matching

import "strings"

// SkillScore is the fraction of required tags covered by the person's
// skills, case-insensitive and trimmed. An empty requirement set is a full
// match: generic resources are not penalized. Extra, irrelevant skills do
// not raise the score.
func SkillScore(personSkills, required []string) float64 {
	req := normalize(required)
	if len(req) == 0 {
		return 1.0
	}

	have := normalize(personSkills)
	matched := 0
	for skill := range req {
		if _, ok := have[skill]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(req))
}

func normalize(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			set[t] = struct{}{}
		}
	}
	return set
}
