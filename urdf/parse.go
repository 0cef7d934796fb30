package urdf

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/urdfimport/spatialmath"
	"go.viam.com/urdfimport/utils"
)

// Defaults applied when a document omits a value or provides one that does not parse.
const (
	DefaultRobotName     = "unnamed_robot"
	DefaultLinkName      = "unnamed_link"
	DefaultJointName     = "unnamed_joint"
	DefaultMaterialName  = "default_material"
	DefaultMass          = 1.0
	DefaultCylinderRad   = 0.5
	DefaultCylinderLen   = 1.0
	DefaultSphereRadius  = 0.5
	DefaultColorChannel  = 1.0
	DefaultMimicMultiple = 1.0
)

// ParseFile reads the named file and parses it with Parse.
func ParseFile(filename string) (*Robot, error) {
	//nolint:gosec
	xmlData, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read URDF file")
	}
	return Parse(xmlData)
}

// ParseString parses a document held in a string.
func ParseString(doc string) (*Robot, error) {
	return Parse([]byte(doc))
}

// Parse builds a Robot from URDF XML. The only failure is a document without a robot root
// element (including one that is not XML at all), reported as ErrMalformedDocument. Every other
// absence or unparsable value takes its documented default.
func Parse(xmlData []byte) (*Robot, error) {
	doc := &xmlRobot{}
	decoder := xml.NewDecoder(bytes.NewReader(xmlData))
	// documents in the wild declare latin-1 and friends; attribute values we read are ASCII
	decoder.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) { return input, nil }
	if err := decoder.Decode(doc); err != nil {
		return nil, newMalformedDocumentError(err)
	}

	materials := make(map[string]*Material, len(doc.Materials))
	for i := range doc.Materials {
		m := parseMaterial(&doc.Materials[i], nil)
		if _, ok := materials[m.Name]; !ok {
			materials[m.Name] = m
		}
	}

	robot := &Robot{
		Name:   orDefault(doc.Name, DefaultRobotName),
		Links:  make([]Link, 0, len(doc.Links)),
		Joints: make([]Joint, 0, len(doc.Joints)),
	}
	for i := range doc.Links {
		robot.Links = append(robot.Links, parseLink(&doc.Links[i], materials))
	}
	for i := range doc.Joints {
		robot.Joints = append(robot.Joints, parseJoint(&doc.Joints[i]))
	}
	return robot, nil
}

func parseLink(x *xmlLink, materials map[string]*Material) Link {
	link := Link{Name: orDefault(x.Name, DefaultLinkName)}
	if v := first(x.Visual); v != nil {
		link.Visual = &Visual{
			Origin:   parseOrigin(first(v.Origin)),
			Geometry: parseGeometry(first(v.Geometry)),
		}
		if m := first(v.Material); m != nil {
			link.Visual.Material = parseMaterial(m, materials)
		}
	}
	if c := first(x.Collision); c != nil {
		link.Collision = &Collision{
			Origin:   parseOrigin(first(c.Origin)),
			Geometry: parseGeometry(first(c.Geometry)),
		}
	}
	if in := first(x.Inertial); in != nil {
		link.Inertial = parseInertial(in)
	}
	return link
}

func parseInertial(x *xmlInertial) *Inertial {
	inertial := &Inertial{
		Origin: parseOrigin(first(x.Origin)),
		Mass:   DefaultMass,
	}
	if m := first(x.Mass); m != nil {
		inertial.Mass = utils.ParseFloatOr(m.Value, DefaultMass)
	}
	if i := first(x.Inertia); i != nil {
		inertial.Inertia = &Inertia{
			IXX: utils.ParseFloatOr(i.IXX, 0),
			IXY: utils.ParseFloatOr(i.IXY, 0),
			IXZ: utils.ParseFloatOr(i.IXZ, 0),
			IYY: utils.ParseFloatOr(i.IYY, 0),
			IYZ: utils.ParseFloatOr(i.IYZ, 0),
			IZZ: utils.ParseFloatOr(i.IZZ, 0),
		}
	}
	return inertial
}

// parseOrigin converts a document origin into the target convention. A nil origin is identity.
func parseOrigin(x *xmlOrigin) Origin {
	var origin Origin
	if x == nil {
		return origin
	}
	if x.XYZ != "" {
		origin.Position = spatialmath.ConvertPosition(parseVector(x.XYZ))
	}
	if x.RPY != "" {
		origin.Rotation = spatialmath.ConvertRotation(parseVector(x.RPY))
	}
	return origin
}

// parseGeometry resolves the geometry variant. When several variant elements are present the
// first of box, cylinder, sphere, mesh wins, independent of document order.
func parseGeometry(x *xmlGeometry) Geometry {
	if x == nil {
		return nil
	}
	if b := first(x.Box); b != nil {
		return Box{Size: parseVector(b.Size)}
	}
	if c := first(x.Cylinder); c != nil {
		return Cylinder{
			Radius: utils.ParseFloatOr(c.Radius, DefaultCylinderRad),
			Length: utils.ParseFloatOr(c.Length, DefaultCylinderLen),
		}
	}
	if s := first(x.Sphere); s != nil {
		return Sphere{Radius: utils.ParseFloatOr(s.Radius, DefaultSphereRadius)}
	}
	if m := first(x.Mesh); m != nil {
		scale := r3.Vector{X: 1, Y: 1, Z: 1}
		if m.Scale != "" {
			scale = parseVector(m.Scale)
		}
		return Mesh{Filename: m.Filename, Scale: scale}
	}
	return nil
}

// parseMaterial reads a material. A visual material that only names a robot-level material
// inherits that material's color and texture.
func parseMaterial(x *xmlMaterial, materials map[string]*Material) *Material {
	material := &Material{Name: orDefault(x.Name, DefaultMaterialName)}
	if c := first(x.Color); c != nil && c.RGBA != "" {
		rgba := utils.SpaceDelimitedStringToFloatSlice(c.RGBA, 4, DefaultColorChannel)
		material.Color = &RGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	}
	if t := first(x.Texture); t != nil {
		material.Texture = t.Filename
	}
	if material.Color == nil && material.Texture == "" && x.Name != "" {
		if named, ok := materials[x.Name]; ok {
			if named.Color != nil {
				c := *named.Color
				material.Color = &c
			}
			material.Texture = named.Texture
		}
	}
	return material
}

func parseJoint(x *xmlJoint) Joint {
	joint := Joint{
		Name:   orDefault(x.Name, DefaultJointName),
		Type:   ParseJointType(x.Type),
		Origin: parseOrigin(first(x.Origin)),
		Axis:   spatialmath.Up,
	}
	if p := first(x.Parent); p != nil {
		joint.Parent = p.Link
	}
	if c := first(x.Child); c != nil {
		joint.Child = c.Link
	}
	// an axis element without xyz keeps the default
	if a := first(x.Axis); a != nil && a.XYZ != "" {
		joint.Axis = spatialmath.ConvertAxis(parseVector(a.XYZ))
	}
	if l := first(x.Limit); l != nil {
		joint.Limit = &Limit{
			Lower:    utils.ParseFloatOr(l.Lower, 0),
			Upper:    utils.ParseFloatOr(l.Upper, 0),
			Effort:   utils.ParseFloatOr(l.Effort, 0),
			Velocity: utils.ParseFloatOr(l.Velocity, 0),
		}
	}
	if d := first(x.Dynamics); d != nil {
		joint.Dynamics = &Dynamics{
			Damping:  utils.ParseFloatOr(d.Damping, 0),
			Friction: utils.ParseFloatOr(d.Friction, 0),
		}
	}
	if m := first(x.Mimic); m != nil && m.Joint != "" {
		joint.Mimic = &Mimic{
			Joint:      m.Joint,
			Multiplier: utils.ParseFloatOr(m.Multiplier, DefaultMimicMultiple),
			Offset:     utils.ParseFloatOr(m.Offset, 0),
		}
	}
	return joint
}

// parseVector reads a document vector in source axis order; missing or unparsable components
// are zero.
func parseVector(s string) r3.Vector {
	v := utils.SpaceDelimitedStringToFloatSlice(s, 3, 0)
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
