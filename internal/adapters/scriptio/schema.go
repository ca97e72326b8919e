package scriptio

// document is the top-level shape of one script's YAML file, mapping
// directly onto the script-facing declarations: rules, tasks, fallbacks,
// manifest additions, sub-script recursion, and library loading.
type document struct {
	Rules    []ruleDoc           `yaml:"rules"`
	Tasks    []taskDoc           `yaml:"tasks"`
	Fallback []fallbackDoc       `yaml:"fallback"`
	Manifest []string            `yaml:"manifest"`
	Recurse  []recurseDoc        `yaml:"recurse"`
	LoadLib  []loadLibDoc        `yaml:"load_lib"`
	Library  *libraryDoc         `yaml:"library"`
	Recipes  map[string][]string `yaml:"recipes"`
}

// ruleDoc declares a file-producing rule. Recipe names a key under the
// same document's recipes: map. WithDir requests the three-argument
// (sources, targets, directory) recipe arity instead of the default two.
type ruleDoc struct {
	Targets []string `yaml:"targets"`
	Sources []string `yaml:"sources"`
	Recipe  string   `yaml:"recipe"`
	WithDir bool     `yaml:"with_dir"`
}

// taskDoc declares a symbolic task.
type taskDoc struct {
	Name    string   `yaml:"name"`
	Sources []string `yaml:"sources"`
	Recipe  string   `yaml:"recipe"`
}

// fallbackDoc declares a fallback task, run only when a requested target
// cannot be resolved in the graph.
type fallbackDoc struct {
	Name   string `yaml:"name"`
	Recipe string `yaml:"recipe"`
}

// recurseDoc names a sub-directory script to load, mirroring recurse().
type recurseDoc struct {
	Dir  string `yaml:"dir"`
	File string `yaml:"file"`
}

// loadLibDoc declares a library to load, mirroring load_lib/load_lib_qual.
type loadLibDoc struct {
	ID        string   `yaml:"id"`
	Args      []string `yaml:"args"`
	Qualified bool     `yaml:"qualified"`
}

// libraryDoc is the metadata a script that defines a library declares
// about itself, mirroring the script-facing library declaration block.
type libraryDoc struct {
	ID          string   `yaml:"id"`
	Description string   `yaml:"description"`
	License     string   `yaml:"license"`
	Version     [3]int   `yaml:"version"`
	URL         string   `yaml:"url"`
	Author      string   `yaml:"author"`
	Precious    []string `yaml:"precious"`
	// OnLoad names a recipe key under the document's recipes: map, run once
	// per stale build the first time this library is loaded.
	OnLoad string `yaml:"on_load"`
}
