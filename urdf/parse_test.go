package urdf

import (
	"errors"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/urdfimport/spatialmath"
	"go.viam.com/urdfimport/utils"
)

func TestParseFile(t *testing.T) {
	robot, err := ParseFile(utils.ResolveFile("urdf/testdata/arm.urdf"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, robot.Name, test.ShouldEqual, "test_arm")
	test.That(t, len(robot.Links), test.ShouldEqual, 4)
	test.That(t, len(robot.Joints), test.ShouldEqual, 3)

	base, ok := robot.Link("base_link")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, base.Visual, test.ShouldNotBeNil)
	test.That(t, base.Visual.Origin.Position, test.ShouldResemble, r3.Vector{X: 0, Y: 0.05, Z: 0})
	test.That(t, base.Visual.Geometry, test.ShouldResemble, Cylinder{Radius: 0.1, Length: 0.1})
	// named material inherits the robot-level definition
	test.That(t, base.Visual.Material.Name, test.ShouldEqual, "blue")
	test.That(t, *base.Visual.Material.Color, test.ShouldResemble, RGBA{R: 0, G: 0, B: 0.8, A: 1})
	test.That(t, base.Inertial.Mass, test.ShouldEqual, 2.5)
	test.That(t, base.Inertial.Origin.Position, test.ShouldResemble, r3.Vector{Y: 0.05})
	test.That(t, base.Inertial.Inertia.IZZ, test.ShouldEqual, 0.02)

	upper, ok := robot.Link("upper_arm")
	test.That(t, ok, test.ShouldBeTrue)
	mesh, ok := upper.Visual.Geometry.(Mesh)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, mesh.Filename, test.ShouldEqual, "package://test_arm/meshes/upper_arm.stl")
	test.That(t, mesh.RelativePath(), test.ShouldEqual, "meshes/upper_arm.stl")
	test.That(t, mesh.Scale, test.ShouldResemble, r3.Vector{X: 0.001, Y: 0.001, Z: 0.001})
	test.That(t, upper.Collision.Geometry, test.ShouldResemble, Box{Size: r3.Vector{X: 0.05, Y: 0.05, Z: 0.4}})
	test.That(t, upper.Collision.Geometry.(Box).TargetSize(), test.ShouldResemble, r3.Vector{X: 0.05, Y: 0.4, Z: 0.05})
	test.That(t, upper.Visual.Material.Color.Hex(), test.ShouldEqual, "#808080")

	slider, _ := robot.Link("slider")
	test.That(t, slider.Visual.Geometry.(Mesh).Scale, test.ShouldResemble, r3.Vector{X: 1, Y: 1, Z: 1})

	tool, _ := robot.Link("tool0")
	test.That(t, tool.Visual, test.ShouldBeNil)
	test.That(t, tool.Collision, test.ShouldBeNil)
	test.That(t, tool.Inertial, test.ShouldBeNil)

	shoulder, ok := robot.Joint("shoulder")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, shoulder.Type, test.ShouldEqual, Revolute)
	test.That(t, shoulder.Parent, test.ShouldEqual, "base_link")
	test.That(t, shoulder.Child, test.ShouldEqual, "upper_arm")
	test.That(t, shoulder.Origin.Position, test.ShouldResemble, r3.Vector{Y: 0.1})
	test.That(t, shoulder.Origin.Rotation, test.ShouldResemble, r3.Vector{Y: 1.5708})
	test.That(t, shoulder.Axis, test.ShouldResemble, spatialmath.Up)
	test.That(t, *shoulder.Limit, test.ShouldResemble, Limit{Lower: -3.14, Upper: 3.14, Effort: 150, Velocity: 3.15})
	test.That(t, *shoulder.Dynamics, test.ShouldResemble, Dynamics{Damping: 0.7, Friction: 0.1})

	extend, _ := robot.Joint("extend")
	test.That(t, extend.Type, test.ShouldEqual, Prismatic)
	test.That(t, extend.Axis, test.ShouldResemble, spatialmath.Forward)
	test.That(t, extend.Dynamics, test.ShouldBeNil)

	mount, _ := robot.Joint("tool_mount")
	test.That(t, mount.Type, test.ShouldEqual, Fixed)
	test.That(t, mount.Origin.IsIdentity(), test.ShouldBeTrue)
	test.That(t, mount.Axis, test.ShouldResemble, spatialmath.Up)

	test.That(t, robot.RootLinks(), test.ShouldResemble, []string{"base_link"})
	test.That(t, len(robot.ChildJoints("upper_arm")), test.ShouldEqual, 1)
}

func TestParseMissingRobot(t *testing.T) {
	for _, tc := range []struct {
		name string
		doc  string
	}{
		{"other root", `<model name="x"><link name="a"/></model>`},
		{"empty", ``},
		{"not xml", `robot`},
		{"unterminated", `<robot name="x"><link name="a">`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			robot, err := ParseString(tc.doc)
			test.That(t, robot, test.ShouldBeNil)
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, errors.Is(err, ErrMalformedDocument), test.ShouldBeTrue)
			var mde *MalformedDocumentError
			test.That(t, errors.As(err, &mde), test.ShouldBeTrue)
		})
	}
}

func TestParseDefaults(t *testing.T) {
	robot, err := ParseString(`<robot>
		<link>
			<visual><geometry><cylinder/></geometry><material><color/></material></visual>
			<collision><geometry><sphere radius="oops"/></geometry></collision>
			<inertial><inertia/></inertial>
		</link>
		<link name="b"><inertial><mass value="abc"/></inertial></link>
		<link name="c"><visual/></link>
		<link name="d"><inertial><mass value="0x1p4"/></inertial></link>
		<joint>
			<axis/>
			<limit/>
			<dynamics/>
		</joint>
	</robot>`)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, robot.Name, test.ShouldEqual, DefaultRobotName)

	a := robot.Links[0]
	test.That(t, a.Name, test.ShouldEqual, DefaultLinkName)
	test.That(t, a.Visual.Origin, test.ShouldResemble, Origin{})
	test.That(t, a.Visual.Geometry, test.ShouldResemble, Cylinder{Radius: 0.5, Length: 1})
	test.That(t, a.Visual.Material.Name, test.ShouldEqual, DefaultMaterialName)
	test.That(t, a.Visual.Material.Color, test.ShouldBeNil)
	test.That(t, a.Visual.Material.Texture, test.ShouldEqual, "")
	test.That(t, a.Collision.Geometry, test.ShouldResemble, Sphere{Radius: 0.5})
	test.That(t, a.Inertial.Mass, test.ShouldEqual, 1.0)
	test.That(t, *a.Inertial.Inertia, test.ShouldResemble, Inertia{})

	b := robot.Links[1]
	test.That(t, b.Inertial.Mass, test.ShouldEqual, 1.0)
	test.That(t, b.Inertial.Inertia, test.ShouldBeNil)

	c := robot.Links[2]
	test.That(t, c.Visual.Geometry, test.ShouldBeNil)
	test.That(t, c.Visual.Material, test.ShouldBeNil)

	// hexadecimal floats are not decimal numbers
	d := robot.Links[3]
	test.That(t, d.Inertial.Mass, test.ShouldEqual, 1.0)

	j := robot.Joints[0]
	test.That(t, j.Name, test.ShouldEqual, DefaultJointName)
	test.That(t, j.Type, test.ShouldEqual, Fixed)
	test.That(t, j.Parent, test.ShouldEqual, "")
	test.That(t, j.Child, test.ShouldEqual, "")
	test.That(t, j.Origin, test.ShouldResemble, Origin{})
	test.That(t, j.Axis, test.ShouldResemble, spatialmath.Up)
	test.That(t, *j.Limit, test.ShouldResemble, Limit{})
	test.That(t, *j.Dynamics, test.ShouldResemble, Dynamics{})
	test.That(t, j.Mimic, test.ShouldBeNil)
}

func TestParseFirstChildWins(t *testing.T) {
	robot, err := ParseString(`<robot name="r">
		<link name="a">
			<visual><geometry><sphere radius="1"/></geometry></visual>
			<visual><geometry><sphere radius="2"/></geometry></visual>
			<inertial><mass value="3"/></inertial>
			<inertial><mass value="4"/></inertial>
		</link>
	</robot>`)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, robot.Links[0].Visual.Geometry, test.ShouldResemble, Sphere{Radius: 1})
	test.That(t, robot.Links[0].Inertial.Mass, test.ShouldEqual, 3.0)
}

func TestParseGeometryPriority(t *testing.T) {
	robot, err := ParseString(`<robot name="r">
		<link name="a"><visual><geometry>
			<mesh filename="m.stl"/>
			<sphere radius="2"/>
			<cylinder radius="0.2" length="3"/>
		</geometry></visual></link>
		<link name="b"><visual><geometry>
			<sphere radius="2"/>
			<box size="1 2 3"/>
		</geometry></visual></link>
	</robot>`)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, robot.Links[0].Visual.Geometry, test.ShouldResemble, Cylinder{Radius: 0.2, Length: 3})
	test.That(t, robot.Links[1].Visual.Geometry, test.ShouldResemble, Box{Size: r3.Vector{X: 1, Y: 2, Z: 3}})
	test.That(t, robot.Links[1].Visual.Geometry.Type(), test.ShouldEqual, BoxType)
}

func TestParseVectors(t *testing.T) {
	robot, err := ParseString(`<robot name="r">
		<link name="a">
			<visual>
				<origin xyz="1 2" rpy="0.5"/>
				<geometry><box size="1"/></geometry>
				<material name="m"><color rgba="0.2 0.4"/><texture filename="wood.png"/></material>
			</visual>
		</link>
		<joint name="j" type="continuous">
			<parent link="a"/>
			<child link="a"/>
			<origin xyz="1	2
				3" rpy="bad 0 0"/>
			<axis xyz="0 1 0"/>
			<mimic joint="other" offset="0.1"/>
		</joint>
	</robot>`)
	test.That(t, err, test.ShouldBeNil)
	v := robot.Links[0].Visual
	test.That(t, v.Origin.Position, test.ShouldResemble, r3.Vector{X: 1, Y: 0, Z: 2})
	test.That(t, v.Origin.Rotation, test.ShouldResemble, r3.Vector{X: 0, Y: 0, Z: 0.5})
	test.That(t, v.Geometry, test.ShouldResemble, Box{Size: r3.Vector{X: 1}})
	test.That(t, *v.Material.Color, test.ShouldResemble, RGBA{R: 0.2, G: 0.4, B: 1, A: 1})
	test.That(t, v.Material.Texture, test.ShouldEqual, "wood.png")

	j := robot.Joints[0]
	test.That(t, j.Type, test.ShouldEqual, Continuous)
	test.That(t, j.Origin.Position, test.ShouldResemble, r3.Vector{X: 1, Y: 3, Z: 2})
	test.That(t, j.Origin.Rotation, test.ShouldResemble, r3.Vector{})
	test.That(t, j.Axis, test.ShouldResemble, r3.Vector{X: -1, Y: 0, Z: 0})
	test.That(t, *j.Mimic, test.ShouldResemble, Mimic{Joint: "other", Multiplier: 1, Offset: 0.1})
}

func TestParsePreservesCounts(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(`<robot name="many">`)
	for i := 0; i < 20; i++ {
		sb.WriteString(`<link name="dup"/>`)
		sb.WriteString(`<joint name="j" type="fixed"><parent link="dup"/><child link="dup"/></joint>`)
	}
	sb.WriteString(`</robot>`)
	robot, err := ParseString(sb.String())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(robot.Links), test.ShouldEqual, 20)
	test.That(t, len(robot.Joints), test.ShouldEqual, 20)
}

func TestParseJointType(t *testing.T) {
	for in, expected := range map[string]JointType{
		"fixed":      Fixed,
		"Revolute":   Revolute,
		"CONTINUOUS": Continuous,
		"prismatic":  Prismatic,
		"floating":   Floating,
		"planar":     Planar,
		"":           Fixed,
		"ball":       Fixed,
	} {
		test.That(t, ParseJointType(in), test.ShouldEqual, expected)
	}
	test.That(t, Planar.String(), test.ShouldEqual, "planar")
	test.That(t, Planar.Supported(), test.ShouldBeFalse)
	test.That(t, Continuous.Movable(), test.ShouldBeTrue)
	test.That(t, Fixed.Movable(), test.ShouldBeFalse)
}

func TestMeshRelativePath(t *testing.T) {
	for in, expected := range map[string]string{
		"package://pkg/meshes/a.stl": "meshes/a.stl",
		"package://pkg":              "pkg",
		"meshes/a.stl":               "meshes/a.stl",
		"/abs/a.STL":                 "/abs/a.STL",
	} {
		test.That(t, Mesh{Filename: in}.RelativePath(), test.ShouldEqual, expected)
	}
	test.That(t, Mesh{Filename: "/abs/a.STL"}.Extension(), test.ShouldEqual, ".stl")
	test.That(t, Mesh{Scale: r3.Vector{X: 1, Y: 2, Z: 3}}.TargetScale(), test.ShouldResemble, r3.Vector{X: 1, Y: 3, Z: 2})
}

func TestMeshReferences(t *testing.T) {
	robot, err := ParseString(`<robot name="r">
  <link name="a">
    <visual><geometry><mesh filename="package://r/a.stl"/></geometry></visual>
    <collision><geometry><mesh filename="package://r/a_collision.stl"/></geometry></collision>
  </link>
  <link name="b">
    <visual><geometry><mesh filename="package://r/a.stl" scale="2 2 2"/></geometry></visual>
  </link>
  <link name="c">
    <visual><geometry><box size="1 1 1"/></geometry></visual>
    <collision><geometry><mesh filename="package://r/c.dae"/></geometry></collision>
  </link>
</robot>`)
	test.That(t, err, test.ShouldBeNil)

	names := func(ms []Mesh) []string {
		var out []string
		for _, m := range ms {
			out = append(out, m.Filename)
		}
		return out
	}
	test.That(t, names(robot.MeshReferences(true, false)), test.ShouldResemble, []string{"package://r/a.stl"})
	test.That(t, names(robot.MeshReferences(false, true)), test.ShouldResemble,
		[]string{"package://r/a_collision.stl", "package://r/c.dae"})
	test.That(t, names(robot.MeshReferences(true, true)), test.ShouldResemble,
		[]string{"package://r/a.stl", "package://r/a_collision.stl", "package://r/c.dae"})
	test.That(t, robot.MeshReferences(false, false), test.ShouldBeNil)
}

func TestInertiaDiagonal(t *testing.T) {
	in := Inertia{IXX: 1, IYY: 2, IZZ: 3, IXY: 0.5}
	// moments follow their axes through the Y/Z swap
	test.That(t, in.Diagonal(), test.ShouldResemble, r3.Vector{X: 1, Y: 3, Z: 2})
	test.That(t, in.Diagonal(), test.ShouldResemble, spatialmath.ConvertPosition(r3.Vector{X: 1, Y: 2, Z: 3}))
	test.That(t, in.HasOffDiagonal(), test.ShouldBeTrue)
}
