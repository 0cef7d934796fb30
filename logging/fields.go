package logging

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field keys shared by the importer and its hosts.
const (
	ImportIDKey = "import_id"
	RobotKey    = "robot"
	MeshKey     = "mesh"
	KindKey     = "kind"
	DebugKey    = "debug"
)

// ImportID tags an entry with the import it belongs to.
func ImportID(id uuid.UUID) zapcore.Field {
	return zap.Stringer(ImportIDKey, id)
}

// Robot tags an entry with a robot name.
func Robot(name string) zapcore.Field {
	return zap.String(RobotKey, name)
}

// Mesh tags an entry with a mesh filename as written in the document.
func Mesh(filename string) zapcore.Field {
	return zap.String(MeshKey, filename)
}

// Kind tags an entry with a diagnostic kind.
func Kind[K ~string](kind K) zapcore.Field {
	return zap.String(KindKey, string(kind))
}

// toFields turns alternating keys and values into fields. Fields passed directly are kept
// as they are. A trailing key with no value is recorded as unpaired.
func toFields(keysAndValues []interface{}) []zapcore.Field {
	fields := make([]zapcore.Field, 0, len(keysAndValues))
	for i := 0; i < len(keysAndValues); i++ {
		if f, ok := keysAndValues[i].(zapcore.Field); ok {
			fields = append(fields, f)
			continue
		}
		key := fmt.Sprint(keysAndValues[i])
		if i+1 == len(keysAndValues) {
			fields = append(fields, zap.String(key, "unpaired log key"))
			break
		}
		i++
		fields = append(fields, zap.Any(key, keysAndValues[i]))
	}
	return fields
}
