package utils

import (
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

func TestSafeJoinDir(t *testing.T) {
	root := t.TempDir()

	joined, err := SafeJoinDir(root, "meshes/arm.stl")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, joined, test.ShouldEqual, filepath.Join(root, "meshes", "arm.stl"))

	_, err = SafeJoinDir(root, "../outside.stl")
	test.That(t, err, test.ShouldNotBeNil)
}
