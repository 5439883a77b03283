package manifest

// Kind identifies the ecosystem a directory belongs to.
type Kind int

const (
	// Unknown means no supported manifest was found.
	Unknown Kind = iota

	// NodeLike means the directory holds a package.json.
	NodeLike

	// DotNetLike means the directory holds a *.csproj file.
	DotNetLike
)

// String returns the Go-side name of the kind.
func (k Kind) String() string {
	switch k {
	case NodeLike:
		return "NodeLike"
	case DotNetLike:
		return "DotNetLike"
	default:
		return "Unknown"
	}
}

// Label returns the project type as recorded in the register.
func (k Kind) Label() string {
	switch k {
	case NodeLike:
		return "Node.js"
	case DotNetLike:
		return ".NET"
	default:
		return "Desconocido"
	}
}

// Manifest file names.
const (
	PackageJSON     = "package.json"
	CsprojExtension = ".csproj"
)

// Fallback literals written when a value cannot be determined.
const (
	NameUndefined    = "Nombre no definido"
	VersionUndefined = "Versión no definida"
	VersionNotFound  = "No se encontró versión"
	ErrorValue       = "ERROR"
)

// Detection is the result of classifying a directory.
type Detection struct {
	// Kind is the detected project type.
	Kind Kind

	// Dir is the absolute directory that was classified.
	Dir string

	// ManifestPath is the manifest file used for extraction.
	// Empty when Kind is Unknown.
	ManifestPath string
}

// Metadata is the project name and version read from a manifest.
type Metadata struct {
	Name    string
	Version string
}

func errorMetadata() Metadata {
	return Metadata{Name: ErrorValue, Version: ErrorValue}
}
