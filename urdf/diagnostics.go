package urdf

import (
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/multierr"
)

// WarningKind classifies a non-fatal condition found while importing a robot.
type WarningKind string

// Warning kinds. None of these abort an import.
const (
	// UnresolvedJointEndpoint means a joint names a parent or child link that does not exist. The
	// joint is kept but should not be instantiated.
	UnresolvedJointEndpoint WarningKind = "UnresolvedJointEndpoint"
	// UnsupportedJointType means a floating or planar joint; it maps to a no-op descriptor.
	UnsupportedJointType WarningKind = "UnsupportedJointType"
	// InertiaApproximation means products of inertia were dropped to produce an axis-aligned
	// inertia.
	InertiaApproximation WarningKind = "InertiaApproximation"
	// DuplicateLinkName means a link name was used more than once.
	DuplicateLinkName WarningKind = "DuplicateLinkName"
	// DegenerateJointAxis means a movable joint has a zero-length axis.
	DegenerateJointAxis WarningKind = "DegenerateJointAxis"
	// TruncatedFile means a mesh asset was shorter than its header requires.
	TruncatedFile WarningKind = "TruncatedFile"
	// MalformedMesh means a mesh asset could not be decoded.
	MalformedMesh WarningKind = "MalformedMesh"
	// MeshNotFound means the host could not supply a mesh asset.
	MeshNotFound WarningKind = "MeshNotFound"
)

// Warning is a non-fatal condition scoped to one named element (link, joint or mesh filename).
type Warning struct {
	Kind    WarningKind `json:"kind" yaml:"kind" msgpack:"kind"`
	Subject string      `json:"subject" yaml:"subject" msgpack:"subject"`
	Message string      `json:"message" yaml:"message" msgpack:"message"`
}

func (w Warning) Error() string {
	return fmt.Sprintf("%s %q: %s", w.Kind, w.Subject, w.Message)
}

// Warnings is an ordered list of warnings.
type Warnings []Warning

// Err combines the warnings into one error, or nil when there are none.
func (ws Warnings) Err() error {
	errs := make([]error, 0, len(ws))
	for _, w := range ws {
		errs = append(errs, w)
	}
	return multierr.Combine(errs...)
}

// OfKind returns the warnings of the given kind.
func (ws Warnings) OfKind(kind WarningKind) Warnings {
	return lo.Filter(ws, func(w Warning, _ int) bool { return w.Kind == kind })
}

// Has reports whether a warning of kind exists for subject.
func (ws Warnings) Has(kind WarningKind, subject string) bool {
	return lo.ContainsBy(ws, func(w Warning) bool { return w.Kind == kind && w.Subject == subject })
}

// Validate reports the structural problems of a parsed robot. It never modifies the robot.
func Validate(robot *Robot) Warnings {
	var warnings Warnings

	names := lo.Map(robot.Links, func(l Link, _ int) string { return l.Name })
	for _, dup := range lo.FindDuplicates(names) {
		warnings = append(warnings, Warning{
			Kind:    DuplicateLinkName,
			Subject: dup,
			Message: "link name is used more than once; lookups resolve to the first",
		})
	}

	linkSet := lo.SliceToMap(names, func(name string) (string, struct{}) { return name, struct{}{} })
	for _, j := range robot.Joints {
		for _, endpoint := range []struct{ role, name string }{{"parent", j.Parent}, {"child", j.Child}} {
			if _, ok := linkSet[endpoint.name]; !ok {
				warnings = append(warnings, Warning{
					Kind:    UnresolvedJointEndpoint,
					Subject: j.Name,
					Message: fmt.Sprintf("%s link %q not found", endpoint.role, endpoint.name),
				})
			}
		}
		if !j.Type.Supported() {
			warnings = append(warnings, Warning{
				Kind:    UnsupportedJointType,
				Subject: j.Name,
				Message: fmt.Sprintf("%s joints are not supported", j.Type),
			})
		}
		if j.Type.Movable() && j.Axis.Norm() == 0 {
			warnings = append(warnings, Warning{
				Kind:    DegenerateJointAxis,
				Subject: j.Name,
				Message: "joint axis has zero length",
			})
		}
	}

	for _, l := range robot.Links {
		if l.Inertial == nil || l.Inertial.Inertia == nil {
			continue
		}
		if l.Inertial.Inertia.HasOffDiagonal() {
			in := l.Inertial.Inertia
			warnings = append(warnings, Warning{
				Kind:    InertiaApproximation,
				Subject: l.Name,
				Message: fmt.Sprintf("off-diagonal inertia (ixy=%g ixz=%g iyz=%g) approximated as axis-aligned", in.IXY, in.IXZ, in.IYZ),
			})
		}
	}
	return warnings
}
