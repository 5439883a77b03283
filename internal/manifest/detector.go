package manifest

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/indaco/version-register/internal/apperrors"
	"github.com/indaco/version-register/internal/core"
)

// Detector classifies directories by the manifest files they contain.
type Detector struct {
	fs core.FileSystem
}

// NewDetector creates a Detector backed by fs.
func NewDetector(fs core.FileSystem) *Detector {
	return &Detector{fs: fs}
}

// Detect classifies dir. A package.json wins over any *.csproj; among
// *.csproj files the first one in directory order is used. When dir cannot
// be listed an ErrFileSystemAccess error is returned and the directory should
// be skipped.
func (d *Detector) Detect(ctx context.Context, dir string) (Detection, error) {
	packagePath := filepath.Join(dir, PackageJSON)
	if info, err := d.fs.Stat(ctx, packagePath); err == nil && !info.IsDir() {
		return Detection{Kind: NodeLike, Dir: dir, ManifestPath: packagePath}, nil
	}

	entries, err := d.fs.ReadDir(ctx, dir)
	if err != nil {
		return Detection{Kind: Unknown, Dir: dir}, apperrors.FileSystemAccess(dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), CsprojExtension) {
			return Detection{
				Kind:         DotNetLike,
				Dir:          dir,
				ManifestPath: filepath.Join(dir, entry.Name()),
			}, nil
		}
	}

	return Detection{Kind: Unknown, Dir: dir}, nil
}
