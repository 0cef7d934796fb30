package cli

import (
	"encoding/json"
	"io"
	"os"
	"slices"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"go.viam.com/urdfimport/importer"
	"go.viam.com/urdfimport/physics"
	"go.viam.com/urdfimport/spatialmath"
	"go.viam.com/urdfimport/urdf"
)

const (
	formatJSON    = "json"
	formatYAML    = "yaml"
	formatMsgpack = "msgpack"
)

// exportDocument is the serialized form of an import result. Mesh buffers are summarized
// rather than dumped.
type exportDocument struct {
	ID       uuid.UUID           `json:"id" yaml:"id" msgpack:"id"`
	Robot    string              `json:"robot" yaml:"robot" msgpack:"robot"`
	Links    []exportLink        `json:"links" yaml:"links" msgpack:"links"`
	Joints   []physics.JointSpec `json:"joints" yaml:"joints" msgpack:"joints"`
	Meshes   []exportMesh        `json:"meshes,omitempty" yaml:"meshes,omitempty" msgpack:"meshes,omitempty"`
	Deferred []string            `json:"deferred,omitempty" yaml:"deferred,omitempty" msgpack:"deferred,omitempty"`
	Warnings urdf.Warnings       `json:"warnings,omitempty" yaml:"warnings,omitempty" msgpack:"warnings,omitempty"`
}

type exportLink struct {
	Name      string            `json:"name" yaml:"name" msgpack:"name"`
	Visual    string            `json:"visual,omitempty" yaml:"visual,omitempty" msgpack:"visual,omitempty"`
	Collision string            `json:"collision,omitempty" yaml:"collision,omitempty" msgpack:"collision,omitempty"`
	Color     string            `json:"color,omitempty" yaml:"color,omitempty" msgpack:"color,omitempty"`
	Body      *physics.BodySpec `json:"body,omitempty" yaml:"body,omitempty" msgpack:"body,omitempty"`
}

type exportMesh struct {
	Filename    string                  `json:"filename" yaml:"filename" msgpack:"filename"`
	Format      string                  `json:"format" yaml:"format" msgpack:"format"`
	Triangles   int                     `json:"triangles" yaml:"triangles" msgpack:"triangles"`
	Bounds      spatialmath.BoundingBox `json:"bounds" yaml:"bounds" msgpack:"bounds"`
	Placeholder bool                    `json:"placeholder" yaml:"placeholder" msgpack:"placeholder"`
}

func newExportDocument(res *importer.Result) exportDocument {
	doc := exportDocument{
		ID:       res.ID,
		Robot:    res.Robot.Name,
		Joints:   res.Joints,
		Deferred: res.Deferred,
		Warnings: res.Warnings,
	}
	for _, l := range res.Robot.Links {
		link := exportLink{Name: l.Name}
		if l.Visual != nil {
			link.Visual = geometryString(l.Visual.Geometry)
			if l.Visual.Material != nil && l.Visual.Material.Color != nil {
				link.Color = l.Visual.Material.Color.Hex()
			}
		}
		if l.Collision != nil {
			link.Collision = geometryString(l.Collision.Geometry)
		}
		if body, ok := res.Bodies[l.Name]; ok {
			link.Body = &body
		}
		doc.Links = append(doc.Links, link)
	}

	placeholders := res.Placeholders()
	filenames := lo.Keys(res.Meshes)
	slices.Sort(filenames)
	doc.Meshes = lo.Map(filenames, func(f string, _ int) exportMesh {
		mesh := res.Meshes[f]
		return exportMesh{
			Filename:    f,
			Format:      mesh.Format.String(),
			Triangles:   mesh.TriangleCount(),
			Bounds:      mesh.Bounds,
			Placeholder: lo.Contains(placeholders, f),
		}
	})
	return doc
}

func encodeExport(w io.Writer, format string, doc exportDocument) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case formatMsgpack:
		return msgpack.NewEncoder(w).Encode(doc)
	}
	return errors.Errorf("unknown export format %q, expected one of json, yaml, msgpack", format)
}

// ExportAction writes the import result in the requested format.
func ExportAction(c *cli.Context) error {
	format := c.String(exportFlagFormat)
	if !lo.Contains([]string{formatJSON, formatYAML, formatMsgpack}, format) {
		return errors.Errorf("unknown export format %q, expected one of json, yaml, msgpack", format)
	}
	return withSession(c, func(s *session, path string) error {
		res, err := s.importFile(c.Context, path)
		if err != nil {
			return err
		}

		out := c.App.Writer
		if dest := c.String(exportFlagOutput); dest != "" {
			f, err := os.Create(dest)
			if err != nil {
				return errors.Wrap(err, "creating export file")
			}
			defer func() {
				if cerr := f.Close(); cerr != nil {
					s.logger.Warnw("closing export file", "error", cerr)
				}
			}()
			out = f
		}
		if err := encodeExport(out, format, newExportDocument(res)); err != nil {
			return errors.Wrap(err, "encoding export")
		}
		s.logger.Debugw("exported", "format", format, "meshes", len(res.Meshes))
		return nil
	})
}

