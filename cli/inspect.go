package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"go.viam.com/urdfimport/importer"
	"go.viam.com/urdfimport/physics"
	"go.viam.com/urdfimport/urdf"
)

// InspectAction prints tables describing an imported robot.
func InspectAction(c *cli.Context) error {
	return withSession(c, func(s *session, path string) error {
		res, err := s.importFile(c.Context, path)
		if res != nil {
			printInspection(c.App.Writer, res)
		}
		return err
	})
}

func printInspection(w io.Writer, res *importer.Result) {
	fmt.Fprintf(w, "robot %q (import %s)\n", res.Robot.Name, res.ID)
	fmt.Fprintln(w, linkTable(res))
	fmt.Fprintln(w, jointTable(res))
	if len(res.Meshes) > 0 || len(res.Deferred) > 0 {
		fmt.Fprintln(w, meshTable(res))
	}
	if len(res.Warnings) > 0 {
		fmt.Fprintln(w, warningTable(res.Warnings))
	}
}

func linkTable(res *importer.Result) string {
	t := table.NewWriter()
	t.SetTitle("Links")
	t.AppendHeader(table.Row{"#", "Name", "Visual", "Collision", "Mass", "Color"})
	for i, l := range res.Robot.Links {
		var visual, collision, color string
		if l.Visual != nil {
			visual = geometryString(l.Visual.Geometry)
			if m := l.Visual.Material; m != nil {
				color = m.Name
				if m.Color != nil {
					color = fmt.Sprintf("%s %s", m.Name, m.Color.Hex())
				}
			}
		}
		if l.Collision != nil {
			collision = geometryString(l.Collision.Geometry)
		}
		mass := ""
		if body, ok := res.Bodies[l.Name]; ok {
			mass = fmt.Sprintf("%.3f", body.Mass)
			if body.Approximate {
				mass += " ~"
			}
		}
		t.AppendRow(table.Row{i + 1, l.Name, visual, collision, mass, color})
	}
	return t.Render()
}

func geometryString(g urdf.Geometry) string {
	switch g := g.(type) {
	case urdf.Box:
		return fmt.Sprintf("box %.3gx%.3gx%.3g", g.Size.X, g.Size.Y, g.Size.Z)
	case urdf.Cylinder:
		return fmt.Sprintf("cylinder r=%.3g l=%.3g", g.Radius, g.Length)
	case urdf.Sphere:
		return fmt.Sprintf("sphere r=%.3g", g.Radius)
	case urdf.Mesh:
		return "mesh " + g.RelativePath()
	}
	return ""
}

func jointTable(res *importer.Result) string {
	t := table.NewWriter()
	t.SetTitle("Joints")
	t.AppendHeader(table.Row{"Name", "Type", "Parent", "Child", "Motion", "Axis", "Limit", "Build"})
	for _, spec := range res.Joints {
		axis := ""
		switch spec.Motion {
		case physics.MotionAngular:
			axis = fmt.Sprintf("%.2f %.2f %.2f", spec.Axis.X, spec.Axis.Y, spec.Axis.Z)
		case physics.MotionLinear:
			axis = spec.FreeAxis.String()
		}
		t.AppendRow(table.Row{
			spec.Name, spec.Type, spec.Parent, spec.Child, spec.Motion, axis,
			limitString(spec), lo.Ternary(res.Instantiable(spec.Name), "yes", "no"),
		})
	}
	return t.Render()
}

func limitString(spec physics.JointSpec) string {
	if deg, ok := spec.LimitDegrees(); ok {
		return fmt.Sprintf("%.1f° .. %.1f°", deg.Min, deg.Max)
	}
	if spec.Motion == physics.MotionLinear && spec.Limit != nil {
		return fmt.Sprintf("%.3f .. %.3f m", spec.Limit.Min, spec.Limit.Max)
	}
	if spec.Unbounded() {
		return "unbounded"
	}
	return ""
}

func meshTable(res *importer.Result) string {
	placeholders := lo.SliceToMap(res.Placeholders(), func(f string) (string, struct{}) { return f, struct{}{} })

	t := table.NewWriter()
	t.SetTitle("Meshes")
	t.AppendHeader(table.Row{"Filename", "Format", "Triangles", "Size", "Area", "Status"})
	filenames := lo.Keys(res.Meshes)
	slices.Sort(filenames)
	for _, f := range filenames {
		mesh := res.Meshes[f]
		size := mesh.Bounds.Size()
		status := "ok"
		if _, ok := placeholders[f]; ok {
			status = "placeholder"
		}
		t.AppendRow(table.Row{f, mesh.Format, mesh.TriangleCount(), fmt.Sprintf("%.3g x %.3g x %.3g", size.X, size.Y, size.Z), fmt.Sprintf("%.3g", mesh.SurfaceArea()), status})
	}
	for _, f := range res.Deferred {
		t.AppendRow(table.Row{f, "", "", "", "", "deferred"})
	}
	return t.Render()
}

func warningTable(warnings urdf.Warnings) string {
	t := table.NewWriter()
	t.SetTitle("Warnings")
	t.AppendHeader(table.Row{"Kind", "Subject", "Message"})
	for _, w := range warnings {
		t.AppendRow(table.Row{w.Kind, w.Subject, w.Message})
	}
	return t.Render()
}
