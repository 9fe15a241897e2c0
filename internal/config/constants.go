package config

// AnonymousPrefix names anonymous block containers once they are inserted into a level.
// The '@' keeps the generated name out of the user's identifier space.
const AnonymousPrefix = "anon@"

// SettingsFileName is the optional CLI settings file looked up in the working directory.
const SettingsFileName = "glslsym.toml"

// Level layout of a symbol table built for a compilation.
const (
	SharedBuiltInLevel  = 0 // built-ins common to every stage of a version/profile
	DynamicBuiltInLevel = 1 // stage specific built-ins
	GlobalLevel         = 2 // user globals
)

// Profile names
const (
	ProfileNone          = ""
	ProfileCore          = "core"
	ProfileCompatibility = "compatibility"
	ProfileES            = "es"
)

// Stage names
const (
	StageVertex   = "vertex"
	StageFragment = "fragment"
	StageGeometry = "geometry"
	StageCompute  = "compute"
)

// Profiles lists the accepted profile spellings in CLI order.
var Profiles = []string{ProfileCore, ProfileCompatibility, ProfileES}

// Stages lists the accepted stage spellings in CLI order.
var Stages = []string{StageVertex, StageFragment, StageGeometry, StageCompute}

// DefaultVersion is used when neither the CLI nor the settings file names one.
const DefaultVersion = 110

// NoBuiltInRedeclarationsVersion is the first ES version in which user code
// may not redeclare or overload built-in functions.
const NoBuiltInRedeclarationsVersion = 300
