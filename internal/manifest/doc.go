// Package manifest classifies a directory by the project manifest it holds
// (package.json for Node.js, *.csproj for .NET) and extracts the project name
// and version from that manifest, falling back to fixed literals when a field
// is missing.
package manifest
