package theme

import (
	"sort"
	"strings"
)

// Catalog maps normalized theme names to built-in themes.
var Catalog = map[string]Theme{}

func init() {
	register(CatppuccinMocha)
	register(CatppuccinLatte)
	register(Nord)
	register(Dracula)
	register(GruvboxDark)
	register(TokyoNight)
}

func register(t Theme) {
	Catalog[normalizeKey(t.Name)] = t
}

// Get returns a built-in theme by name.
func Get(name string) (Theme, bool) {
	t, ok := Catalog[normalizeKey(name)]
	return t, ok
}

// Names returns the built-in theme names, sorted.
func Names() []string {
	names := make([]string, 0, len(Catalog))
	for _, t := range Catalog {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}

func normalizeKey(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
}
