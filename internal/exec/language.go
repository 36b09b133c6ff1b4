package exec

import "strings"

// languageIDs maps language names to execution-service numeric identifiers
var languageIDs = map[string]int{
	"javascript": 63,
	"python":     71,
	"java":       62,
	"cpp":        54,
	"c":          50,
	"csharp":     51,
	"go":         60,
	"rust":       73,
	"php":        68,
	"ruby":       72,
	"swift":      83,
	"kotlin":     78,
	"typescript": 74,
}

// LanguageID resolves a language name (case-insensitive) to the
// execution service's numeric identifier.
func LanguageID(name string) (int, bool) {
	id, ok := languageIDs[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// SupportedLanguages returns the language-name-to-identifier mapping.
// The returned map is a copy; callers may mutate it freely.
func SupportedLanguages() map[string]int {
	out := make(map[string]int, len(languageIDs))
	for name, id := range languageIDs {
		out[name] = id
	}
	return out
}
