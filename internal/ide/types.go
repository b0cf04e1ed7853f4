// Package ide knows which JetBrains IDEs are installed on this host and
// what projects each of them opened recently.
package ide

// Variant is one installed JetBrains product. Variants are built once by
// Resolve and never mutated afterwards.
type Variant struct {
	name       string
	icon       string
	prefixes   []string
	executable string
	source     RecentSource
}

// NewVariant builds a variant with an already resolved executable. A nil
// source means the default recentProjects.xml layout.
func NewVariant(name, icon string, prefixes []string, executable string, source RecentSource) *Variant {
	if source == nil {
		source = RecentProjects
	}
	return &Variant{
		name:       name,
		icon:       icon,
		prefixes:   append([]string(nil), prefixes...),
		executable: executable,
		source:     source,
	}
}

func (v *Variant) Name() string       { return v.name }
func (v *Variant) Icon() string       { return v.icon }
func (v *Variant) Executable() string { return v.executable }

// ConfigDirPrefixes returns the config directory name prefixes in search order.
func (v *Variant) ConfigDirPrefixes() []string {
	return append([]string(nil), v.prefixes...)
}

// Project is a recently opened project as recorded by one IDE.
type Project struct {
	Name       string   `json:"name"`
	Path       string   `json:"path"`
	LastOpened int64    `json:"last_opened"`
	IDE        *Variant `json:"-"`
}
