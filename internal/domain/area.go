package domain

import "strings"

// Area is a canonical body area. Raw activity labels are normalized into
// this fixed set before any counting — the UI historically used several
// synonym strings for the same logical area.
type Area string

const (
	AreaNeck       Area = "neck"
	AreaShoulders  Area = "shoulders"
	AreaUpperBack  Area = "upper_back"
	AreaLowerBack  Area = "lower_back"
	AreaHips       Area = "hips"
	AreaHamstrings Area = "hamstrings"
	AreaWrists     Area = "wrists"
	AreaFullBody   Area = "full_body"
)

// CanonicalAreas returns the fixed set of canonical areas in display order.
func CanonicalAreas() []Area {
	return []Area{
		AreaNeck, AreaShoulders, AreaUpperBack, AreaLowerBack,
		AreaHips, AreaHamstrings, AreaWrists, AreaFullBody,
	}
}

// defaultSynonyms maps historical UI labels to canonical areas.
// The canonical set itself is configuration — see daemon.AreasConfig.
var defaultSynonyms = map[string]Area{
	"neck":               AreaNeck,
	"shoulders":          AreaShoulders,
	"shoulders & arms":   AreaShoulders,
	"arms":               AreaShoulders,
	"upper back":         AreaUpperBack,
	"upper back & chest": AreaUpperBack,
	"chest":              AreaUpperBack,
	"upper_back":         AreaUpperBack,
	"back":               AreaLowerBack,
	"lower back":         AreaLowerBack,
	"lower_back":         AreaLowerBack,
	"hips":               AreaHips,
	"hips & legs":        AreaHips,
	"legs":               AreaHips,
	"hamstrings":         AreaHamstrings,
	"wrists":             AreaWrists,
	"wrists & forearms":  AreaWrists,
	"forearms":           AreaWrists,
	"full body":          AreaFullBody,
	"full_body":          AreaFullBody,
	"dynamic flow":       AreaFullBody,
}

// AreaMapper normalizes raw area labels into canonical areas.
// Extra synonyms from configuration overlay the built-in table.
type AreaMapper struct {
	synonyms map[string]Area
}

// NewAreaMapper builds a mapper from the built-in synonym table plus any
// configured overrides (raw label → canonical area name).
func NewAreaMapper(overrides map[string]string) *AreaMapper {
	m := &AreaMapper{synonyms: make(map[string]Area, len(defaultSynonyms)+len(overrides))}
	for k, v := range defaultSynonyms {
		m.synonyms[k] = v
	}
	for k, v := range overrides {
		m.synonyms[normalizeLabel(k)] = Area(normalizeLabel(v))
	}
	return m
}

// Canonical maps a raw label to its canonical area.
// Unrecognized labels fall through as-is (lowercased, underscored) so a new
// UI label still counts as a distinct area rather than being dropped.
func (m *AreaMapper) Canonical(raw string) Area {
	key := normalizeLabel(raw)
	if a, ok := m.synonyms[key]; ok {
		return a
	}
	return Area(strings.ReplaceAll(key, " ", "_"))
}

func normalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
