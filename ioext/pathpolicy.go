package ioext

import (
	"path"
	"path/filepath"
	"strings"
)

// ResolveAssetPath canonicalizes a tileset/image path recorded in a
// document relative to that document's own directory, producing a
// forward-slash path suitable for both wire serialization and FileSystem
// lookups (spec.md §4.7's path-resolution rule). Grounded on the teacher's
// FindPath (path.go), simplified from "search several base directories"
// down to the single deterministic rule the core needs: resolve relative
// to the document, never to the process's working directory.
func ResolveAssetPath(mapDir, assetPath string) string {
	cleanAsset := path.Clean(toSlash(assetPath))
	if path.IsAbs(cleanAsset) {
		return cleanAsset
	}
	joined := path.Join(toSlash(mapDir), cleanAsset)
	return path.Clean(joined)
}

// RelativeAssetPath is the inverse of ResolveAssetPath: given an absolute
// (or already mapDir-relative) asset path, renders the forward-slash path
// to record on disk relative to mapDir.
func RelativeAssetPath(mapDir, assetPath string) string {
	rel, err := filepath.Rel(toSlash(mapDir), toSlash(assetPath))
	if err != nil {
		return toSlash(assetPath)
	}
	return filepath.ToSlash(rel)
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
