// Package importer turns a URDF document into everything a host needs to build a robot: the
// parsed tree, decoded meshes, joint and body descriptors, and the warnings raised on the way.
package importer

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"go.viam.com/urdfimport/logging"
	"go.viam.com/urdfimport/physics"
	"go.viam.com/urdfimport/stl"
	"go.viam.com/urdfimport/urdf"
)

// Options selects which mesh references are decoded.
type Options struct {
	Visual    bool
	Collision bool
	// Parallelism bounds how many meshes decode at once. Values below one mean one.
	Parallelism int
}

// DefaultOptions decodes visual and collision meshes four at a time.
func DefaultOptions() Options {
	return Options{Visual: true, Collision: true, Parallelism: 4}
}

// Importer imports URDF documents. It holds no per-import state, so one Importer may run
// several imports concurrently.
type Importer struct {
	source MeshSource
	opts   Options
	logger logging.Logger
}

// New returns an Importer reading mesh assets from source.
func New(source MeshSource, opts Options, logger logging.Logger) *Importer {
	if opts.Parallelism < 1 {
		opts.Parallelism = 1
	}
	return &Importer{source: source, opts: opts, logger: logger}
}

// Import parses doc and resolves its meshes. Only a malformed document or a cancelled context
// fails the import; every other problem is reported in Result.Warnings.
func (imp *Importer) Import(ctx context.Context, doc []byte) (*Result, error) {
	robot, err := urdf.Parse(doc)
	if err != nil {
		return nil, err
	}

	res := &Result{
		ID:       uuid.New(),
		Robot:    robot,
		Meshes:   map[string]*stl.Mesh{},
		Bodies:   map[string]physics.BodySpec{},
		Warnings: urdf.Validate(robot),
	}
	logger := imp.logger.With(logging.ImportID(res.ID), logging.Robot(robot.Name))
	logger.CDebugw(ctx, "parsed robot", "links", len(robot.Links), "joints", len(robot.Joints))

	meshWarnings, err := imp.decodeMeshes(ctx, res, logger)
	if err != nil {
		return nil, err
	}
	res.Warnings = append(res.Warnings, meshWarnings...)

	for _, j := range robot.Joints {
		res.Joints = append(res.Joints, physics.MapJoint(j))
	}
	for _, l := range robot.Links {
		if body, ok := physics.MapBody(l); ok {
			res.Bodies[l.Name] = body
		}
	}

	for _, w := range res.Warnings {
		logger.Warnw("import warning", logging.Kind(w.Kind), "subject", w.Subject, "message", w.Message)
	}
	logger.Infow("imported robot", "meshes", len(res.Meshes), "deferred", len(res.Deferred), "warnings", len(res.Warnings))
	return res, nil
}

// decodeMeshes decodes every distinct STL reference concurrently. Assets that fail to load or
// decode are replaced by the placeholder cube and reported. Warnings come back in reference
// order regardless of completion order.
func (imp *Importer) decodeMeshes(ctx context.Context, res *Result, logger logging.Logger) (urdf.Warnings, error) {
	var refs []urdf.Mesh
	for _, ref := range res.Robot.MeshReferences(imp.opts.Visual, imp.opts.Collision) {
		if ref.Extension() != ".stl" {
			res.Deferred = append(res.Deferred, ref.Filename)
			logger.CDebugw(ctx, "deferring mesh to host importer", logging.Mesh(ref.Filename))
			continue
		}
		refs = append(refs, ref)
	}

	cache := stl.NewCache()
	perRef := make([]*urdf.Warning, len(refs))
	var mu sync.Mutex

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(imp.opts.Parallelism)
	for i, ref := range refs {
		i, ref := i, ref
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			mesh, err := cache.GetOrDecode(ref.RelativePath(), func() ([]byte, error) {
				return imp.source.Open(gctx, ref.RelativePath())
			})
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				w := meshWarning(ref, err)
				perRef[i] = &w
				mesh = stl.Placeholder()
			}
			mu.Lock()
			res.Meshes[ref.Filename] = mesh
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, errors.Wrap(err, "decoding meshes")
	}

	var warnings urdf.Warnings
	for i, w := range perRef {
		if w != nil {
			warnings = append(warnings, *w)
			continue
		}
		mesh := res.Meshes[refs[i].Filename]
		logger.CDebugw(ctx, "decoded mesh", logging.Mesh(refs[i].Filename),
			"format", mesh.Format, "triangles", mesh.TriangleCount())
	}
	return warnings, nil
}

func meshWarning(ref urdf.Mesh, err error) urdf.Warning {
	kind := urdf.MeshNotFound
	switch {
	case errors.Is(err, stl.ErrTruncatedFile):
		kind = urdf.TruncatedFile
	case errors.Is(err, stl.ErrMalformedMesh):
		kind = urdf.MalformedMesh
	}
	return urdf.Warning{
		Kind:    kind,
		Subject: ref.Filename,
		Message: err.Error() + "; using placeholder cube",
	}
}
