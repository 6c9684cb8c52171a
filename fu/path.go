package fu

import (
	"path/filepath"
)

/*
ArtifactPath resolves an artifact name under the artifacts root,
absolute names are returned as is
*/
func ArtifactPath(root, s string) string {
	if filepath.IsAbs(s) {
		return s
	}
	return filepath.Join(root, s)
}
