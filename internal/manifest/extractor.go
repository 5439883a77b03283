package manifest

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/indaco/version-register/internal/apperrors"
	"github.com/indaco/version-register/internal/core"
	"github.com/tidwall/gjson"
)

var (
	assemblyNameRe = regexp.MustCompile(`<AssemblyName>([^<]+)</AssemblyName>`)
	versionTagRe   = regexp.MustCompile(`<Version>([^<]+)</Version>`)
)

// Extractor reads project metadata out of detected manifests.
type Extractor struct {
	fs core.FileSystem
}

// NewExtractor creates an Extractor backed by fs.
func NewExtractor(fs core.FileSystem) *Extractor {
	return &Extractor{fs: fs}
}

// Extract returns the name and version for det. On a read or parse failure
// it returns ERROR for both fields together with the cause, so callers can
// log the error and still record the row.
func (e *Extractor) Extract(ctx context.Context, det Detection) (Metadata, error) {
	switch det.Kind {
	case NodeLike:
		return e.extractNode(ctx, det.ManifestPath)
	case DotNetLike:
		return e.extractDotNet(ctx, det.ManifestPath)
	default:
		return Metadata{Name: filepath.Base(det.Dir), Version: VersionNotFound}, nil
	}
}

// extractNode reads the optional name and version fields of a package.json.
func (e *Extractor) extractNode(ctx context.Context, path string) (Metadata, error) {
	data, err := e.fs.ReadFile(ctx, path)
	if err != nil {
		return errorMetadata(), apperrors.FileSystemAccess(path, err)
	}

	if !gjson.ValidBytes(data) {
		return errorMetadata(), apperrors.Parse(path, fmt.Errorf("invalid JSON"))
	}

	doc := gjson.ParseBytes(data)
	if doc.Type == gjson.Null {
		return errorMetadata(), apperrors.Parse(path, fmt.Errorf("manifest is null"))
	}

	return Metadata{
		Name:    jsonField(doc, "name", NameUndefined),
		Version: jsonField(doc, "version", VersionUndefined),
	}, nil
}

// jsonField returns the field's text, or fallback when the field is missing
// or holds a falsy value (null, false, 0, ""). A repeated key resolves to its
// last occurrence.
func jsonField(doc gjson.Result, key, fallback string) string {
	if !doc.IsObject() {
		return fallback
	}
	var value gjson.Result
	doc.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			value = v
		}
		return true
	})
	if falsy(value) {
		return fallback
	}
	return value.String()
}

func falsy(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null, gjson.False:
		return true
	case gjson.Number:
		return v.Num == 0
	case gjson.String:
		return v.Str == ""
	}
	return false
}

// extractDotNet pulls AssemblyName and Version out of a project file.
func (e *Extractor) extractDotNet(ctx context.Context, path string) (Metadata, error) {
	data, err := e.fs.ReadFile(ctx, path)
	if err != nil {
		return errorMetadata(), apperrors.FileSystemAccess(path, err)
	}

	meta := Metadata{
		Name:    strings.TrimSuffix(filepath.Base(path), CsprojExtension),
		Version: VersionUndefined,
	}
	if m := assemblyNameRe.FindSubmatch(data); m != nil {
		meta.Name = string(m[1])
	}
	if m := versionTagRe.FindSubmatch(data); m != nil {
		meta.Version = string(m[1])
	}
	return meta, nil
}
