package i18n

import "github.com/bebifresh/bebifresh-backend/pkg/enums"

// Registry maps copy keys to per-age-mode text. Every entry must carry the
// adultos register; it is the fallback for missing or unknown modes.
type Registry map[string]map[enums.AgeMode]string

// Select returns the copy for key in the requested age mode, falling back to
// the adultos register when the mode has no entry, and to the empty string
// when the key is unknown.
func Select(reg Registry, key string, mode enums.AgeMode) string {
	entry, ok := reg[key]
	if !ok {
		return ""
	}
	if !mode.IsValid() {
		mode = enums.AgeModeAdultos
	}
	if text, ok := entry[mode]; ok && text != "" {
		return text
	}
	return entry[enums.AgeModeAdultos]
}

// Merge combines registries; later entries win on key collisions.
func Merge(regs ...Registry) Registry {
	merged := Registry{}
	for _, reg := range regs {
		for key, entry := range reg {
			merged[key] = entry
		}
	}
	return merged
}
