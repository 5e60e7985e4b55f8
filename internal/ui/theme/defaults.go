package theme

// Default returns the default theme.
func Default() Theme {
	return CatppuccinMocha
}

// Resolve looks up a theme by name: catalog, then YAML themes in customDir,
// then the default.
func Resolve(name, customDir string) Theme {
	if t, ok := Get(name); ok {
		return t
	}

	if customDir != "" {
		customs := LoadCustomThemes(customDir)
		if t, ok := customs[normalizeKey(name)]; ok {
			return t
		}
	}

	return Default()
}
