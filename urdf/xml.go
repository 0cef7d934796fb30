package urdf

import "encoding/xml"

// The structs below mirror the document. Every value is kept as its raw attribute string so
// that parsing failures can fall back to per-field defaults instead of aborting the decode.
// Repeated child elements are decoded into slices and only the first entry is consulted.

type xmlRobot struct {
	XMLName   xml.Name      `xml:"robot"`
	Name      string        `xml:"name,attr"`
	Links     []xmlLink     `xml:"link"`
	Joints    []xmlJoint    `xml:"joint"`
	Materials []xmlMaterial `xml:"material"`
}

type xmlLink struct {
	Name      string         `xml:"name,attr"`
	Visual    []xmlVisual    `xml:"visual"`
	Collision []xmlCollision `xml:"collision"`
	Inertial  []xmlInertial  `xml:"inertial"`
}

type xmlVisual struct {
	Origin   []xmlOrigin   `xml:"origin"`
	Geometry []xmlGeometry `xml:"geometry"`
	Material []xmlMaterial `xml:"material"`
}

type xmlCollision struct {
	Origin   []xmlOrigin   `xml:"origin"`
	Geometry []xmlGeometry `xml:"geometry"`
}

type xmlInertial struct {
	Origin  []xmlOrigin  `xml:"origin"`
	Mass    []xmlMass    `xml:"mass"`
	Inertia []xmlInertia `xml:"inertia"`
}

type xmlMass struct {
	Value string `xml:"value,attr"`
}

type xmlInertia struct {
	IXX string `xml:"ixx,attr"`
	IXY string `xml:"ixy,attr"`
	IXZ string `xml:"ixz,attr"`
	IYY string `xml:"iyy,attr"`
	IYZ string `xml:"iyz,attr"`
	IZZ string `xml:"izz,attr"`
}

type xmlOrigin struct {
	XYZ string `xml:"xyz,attr"` // "x y z", meters
	RPY string `xml:"rpy,attr"` // fixed frame "r p y", radians
}

type xmlGeometry struct {
	Box      []xmlBox      `xml:"box"`
	Cylinder []xmlCylinder `xml:"cylinder"`
	Sphere   []xmlSphere   `xml:"sphere"`
	Mesh     []xmlMesh     `xml:"mesh"`
}

type xmlBox struct {
	Size string `xml:"size,attr"` // "x y z", meters
}

type xmlCylinder struct {
	Radius string `xml:"radius,attr"`
	Length string `xml:"length,attr"`
}

type xmlSphere struct {
	Radius string `xml:"radius,attr"`
}

type xmlMesh struct {
	Filename string `xml:"filename,attr"`
	Scale    string `xml:"scale,attr"`
}

type xmlMaterial struct {
	Name    string       `xml:"name,attr"`
	Color   []xmlColor   `xml:"color"`
	Texture []xmlTexture `xml:"texture"`
}

type xmlColor struct {
	RGBA string `xml:"rgba,attr"`
}

type xmlTexture struct {
	Filename string `xml:"filename,attr"`
}

type xmlJoint struct {
	Name     string        `xml:"name,attr"`
	Type     string        `xml:"type,attr"`
	Parent   []xmlFrame    `xml:"parent"`
	Child    []xmlFrame    `xml:"child"`
	Origin   []xmlOrigin   `xml:"origin"`
	Axis     []xmlAxis     `xml:"axis"`
	Limit    []xmlLimit    `xml:"limit"`
	Dynamics []xmlDynamics `xml:"dynamics"`
	Mimic    []xmlMimic    `xml:"mimic"`
}

type xmlFrame struct {
	Link string `xml:"link,attr"`
}

type xmlAxis struct {
	XYZ string `xml:"xyz,attr"`
}

type xmlLimit struct {
	Lower    string `xml:"lower,attr"` // translation limits are in meters, revolute limits are in radians
	Upper    string `xml:"upper,attr"`
	Effort   string `xml:"effort,attr"`
	Velocity string `xml:"velocity,attr"`
}

type xmlDynamics struct {
	Damping  string `xml:"damping,attr"`
	Friction string `xml:"friction,attr"`
}

type xmlMimic struct {
	Joint      string `xml:"joint,attr"`
	Multiplier string `xml:"multiplier,attr"`
	Offset     string `xml:"offset,attr"`
}

func first[T any](s []T) *T {
	if len(s) == 0 {
		return nil
	}
	return &s[0]
}
