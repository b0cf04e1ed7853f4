package ide

import (
	"log"
	"os/exec"
	"path/filepath"
)

// Definition describes a JetBrains product before it is looked up on the host.
type Definition struct {
	Name        string
	Icon        string // file name inside the icons directory
	Prefixes    []string
	Executables []string
	Source      RecentSource
}

// Known lists every supported IDE.
var Known = []Definition{
	{
		Name:     "Android Studio",
		Icon:     "androidstudio.svg",
		Prefixes: []string{"Google/AndroidStudio"},
		Executables: []string{"studio", "androidstudio", "android-studio", "android-studio-canary",
			"jdk-android-studio", "android-studio-system-jdk"},
	},
	{Name: "Aqua", Icon: "aqua.svg", Prefixes: []string{"JetBrains/Aqua"}, Executables: []string{"aqua", "aqua-eap"}},
	{Name: "CLion", Icon: "clion.svg", Prefixes: []string{"JetBrains/CLion"}, Executables: []string{"clion", "clion-eap"}},
	{Name: "DataGrip", Icon: "datagrip.svg", Prefixes: []string{"JetBrains/DataGrip"}, Executables: []string{"datagrip", "datagrip-eap"}},
	{Name: "DataSpell", Icon: "dataspell.svg", Prefixes: []string{"JetBrains/DataSpell"}, Executables: []string{"dataspell", "dataspell-eap"}},
	{Name: "GoLand", Icon: "goland.svg", Prefixes: []string{"JetBrains/GoLand"}, Executables: []string{"goland", "goland-eap"}},
	{
		Name:     "IntelliJ IDEA",
		Icon:     "idea.svg",
		Prefixes: []string{"JetBrains/IntelliJIdea", "JetBrains/Idea"},
		Executables: []string{"idea", "idea.sh", "idea-ultimate", "idea-ce-eap", "idea-ue-eap", "intellij-idea-ce",
			"intellij-idea-ce-eap", "intellij-idea-ue-bundled-jre", "intellij-idea-ultimate-edition",
			"intellij-idea-community-edition-jre", "intellij-idea-community-edition-no-jre"},
	},
	{Name: "PhpStorm", Icon: "phpstorm.svg", Prefixes: []string{"JetBrains/PhpStorm"}, Executables: []string{"phpstorm", "phpstorm-eap"}},
	{
		Name:        "PyCharm",
		Icon:        "pycharm.svg",
		Prefixes:    []string{"JetBrains/PyCharm"},
		Executables: []string{"charm", "pycharm", "pycharm-eap", "pycharm-professional"},
	},
	{
		Name:        "Rider",
		Icon:        "rider.svg",
		Prefixes:    []string{"JetBrains/Rider"},
		Executables: []string{"rider", "rider-eap"},
		Source:      RecentSolutions,
	},
	{
		Name:        "RubyMine",
		Icon:        "rubymine.svg",
		Prefixes:    []string{"JetBrains/RubyMine"},
		Executables: []string{"rubymine", "rubymine-eap", "jetbrains-rubymine", "jetbrains-rubymine-eap"},
	},
	{Name: "RustRover", Icon: "rustrover.svg", Prefixes: []string{"JetBrains/RustRover"}, Executables: []string{"rustrover", "rustrover-eap"}},
	{Name: "WebStorm", Icon: "webstorm.svg", Prefixes: []string{"JetBrains/WebStorm"}, Executables: []string{"webstorm", "webstorm-eap"}},
	{Name: "Writerside", Icon: "writerside.svg", Prefixes: []string{"JetBrains/Writerside"}, Executables: []string{"writerside", "writerside-eap"}},
}

// LookPathFunc finds an executable by name, like exec.LookPath.
type LookPathFunc func(file string) (string, error)

// Resolve returns the definitions that have an executable on this host, in
// table order. Definitions without one are dropped silently.
func Resolve(defs []Definition, iconsDir string, lookPath LookPathFunc) []*Variant {
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	variants := make([]*Variant, 0, len(defs))
	for _, def := range defs {
		exe := findExecutable(def.Executables, lookPath)
		if exe == "" {
			log.Printf("[DEBUG] Resolve: %s not installed", def.Name)
			continue
		}
		log.Printf("[DEBUG] Resolve: %s -> %s", def.Name, exe)
		variants = append(variants, NewVariant(def.Name, filepath.Join(iconsDir, def.Icon), def.Prefixes, exe, def.Source))
	}
	return variants
}

// ResolveKnown resolves the built-in table against $PATH.
func ResolveKnown(iconsDir string) []*Variant {
	return Resolve(Known, iconsDir, exec.LookPath)
}

func findExecutable(candidates []string, lookPath LookPathFunc) string {
	for _, name := range candidates {
		if _, err := lookPath(name); err == nil {
			return name
		}
	}
	return ""
}
