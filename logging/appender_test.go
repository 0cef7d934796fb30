package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.viam.com/test"
)

func TestFileAppender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "import.log")
	appender := NewFileAppender(path, 1, 2)

	logger := NewBlankLogger("file")
	logger.AddAppender(appender)
	logger.Warnw("mesh missing", "path", "meshes/a.stl")
	test.That(t, logger.Sync(), test.ShouldBeNil)
	test.That(t, appender.Close(), test.ShouldBeNil)

	data, err := os.ReadFile(path)
	test.That(t, err, test.ShouldBeNil)
	line := strings.TrimSpace(string(data))
	parts := strings.Split(line, "\t")
	test.That(t, len(parts), test.ShouldEqual, 6)
	test.That(t, parts[1], test.ShouldEqual, "WARN")
	test.That(t, parts[2], test.ShouldEqual, "file")
	test.That(t, parts[4], test.ShouldEqual, "mesh missing")
	test.That(t, parts[5], test.ShouldEqual, `{"path":"meshes/a.stl"}`)
}
