package mjcftosdf

import (
	"path/filepath"

	"github.com/pkg/errors"

	"go.viam.com/sdfmjcf/mjcf"
	"go.viam.com/sdfmjcf/sdf"
	"go.viam.com/sdfmjcf/spatialmath"
	"go.viam.com/sdfmjcf/utils"
)

// infinitePlaneSize is the side length written for MJCF planes of size zero, which are infinite.
const infinitePlaneSize = 100

// AddGeom converts geom into a visual, a collision or both of link, according to its group. Geoms without a
// group are both; other groups than the visual and collision ones are left out with a warning.
func AddGeom(link *sdf.Link, geom *mjcf.Geom, opts Options) error {
	visual, collision := true, true
	if geom.Group != nil {
		switch *geom.Group {
		case mjcf.VisualGeomGroup:
			collision = false
		case mjcf.CollisionGeomGroup:
			visual = false
		default:
			opts.Session.Warnf("link %q: skipping geom %q of group %d", link.Name, geom.Name, *geom.Group)
			return nil
		}
	}

	pose, g, err := newGeometry(geom, opts)
	if err != nil {
		return err
	}
	name := geom.Name
	if name == "" {
		name = opts.Session.NextName(geom.GeomType())
	}

	if visual {
		vis := &sdf.Visual{
			Name:     opts.Session.UniqueName(name+"_visual", "geom"),
			Pose:     sdf.NewPose(pose, ""),
			Geometry: g,
		}
		material, err := newMaterial(geom, opts)
		if err != nil {
			opts.Session.Warnf("geom %q: ignoring color: %v", name, err)
		}
		vis.Material = material
		link.Visuals = append(link.Visuals, vis)
	}
	if collision {
		link.Collisions = append(link.Collisions, &sdf.Collision{
			Name:     opts.Session.UniqueName(name+"_collision", "geom"),
			Pose:     sdf.NewPose(pose, ""),
			Geometry: g,
		})
	}
	return nil
}

// newGeometry returns the pose of geom relative to its body and its shape. MJCF sizes are half extents where
// SDFormat sizes are full extents.
func newGeometry(geom *mjcf.Geom, opts Options) (spatialmath.Pose, *sdf.Geometry, error) {
	size, err := geom.Size3()
	if err != nil {
		return nil, nil, err
	}
	pose, length, fromTo, err := geom.FromToPose()
	if err != nil {
		return nil, nil, err
	}
	if !fromTo {
		if pose, err = opts.Compiler.ResolvePose(geom.Frame); err != nil {
			return nil, nil, errors.Wrapf(err, "geom %q", geom.Name)
		}
		length = 2 * size[1]
		if geom.GeomType() == mjcf.GeomBox {
			length = 2 * size[2]
		}
	}

	g := &sdf.Geometry{}
	switch t := geom.GeomType(); t {
	case mjcf.GeomBox:
		g.Box = &sdf.Box{Size: utils.FloatSliceToSpaceDelimitedString(2*size[0], 2*size[1], length)}
	case mjcf.GeomCapsule:
		g.Capsule = &sdf.Capsule{Radius: size[0], Length: length}
	case mjcf.GeomCylinder:
		g.Cylinder = &sdf.Cylinder{Radius: size[0], Length: length}
	case mjcf.GeomEllipsoid:
		g.Ellipsoid = &sdf.Ellipsoid{Radii: utils.FloatSliceToSpaceDelimitedString(size[:]...)}
	case mjcf.GeomPlane:
		x, y := 2*size[0], 2*size[1]
		if x == 0 {
			x = infinitePlaneSize
		}
		if y == 0 {
			y = infinitePlaneSize
		}
		g.Plane = &sdf.Plane{Normal: "0 0 1", Size: utils.FloatSliceToSpaceDelimitedString(x, y)}
	case mjcf.GeomSphere:
		g.Sphere = &sdf.Sphere{Radius: size[0]}
	case mjcf.GeomMesh:
		mesh, err := newMesh(geom, opts)
		if err != nil {
			return nil, nil, err
		}
		g.Mesh = mesh
	default:
		return nil, nil, errors.Errorf("geom %q has unsupported type %q", geom.Name, t)
	}
	return pose, g, nil
}

// newMesh looks up the mesh asset of geom. Relative files are taken relative to the meshdir of the compiler.
func newMesh(geom *mjcf.Geom, opts Options) (*sdf.Mesh, error) {
	asset, ok := opts.Asset.FindMesh(geom.Mesh)
	if !ok {
		return nil, errors.Errorf("geom %q refers to unknown mesh %q", geom.Name, geom.Mesh)
	}
	file := asset.File
	if c := opts.Compiler; c != nil && c.MeshDir != "" && !filepath.IsAbs(file) {
		file = filepath.Join(c.MeshDir, file)
	}
	return &sdf.Mesh{URI: file, Scale: asset.Scale}, nil
}

// newMaterial returns the color of a geom, from its rgba attribute or its material asset.
func newMaterial(geom *mjcf.Geom, opts Options) (*sdf.Material, error) {
	color := geom.RGBA
	if color == "" && geom.Material != "" {
		if m, ok := opts.Asset.FindMaterial(geom.Material); ok {
			color = m.RGBA
		}
	}
	rgba, err := utils.ParseRGBA(color)
	if err != nil || rgba == nil {
		return nil, err
	}
	c := utils.FloatSliceToSpaceDelimitedString(rgba...)
	return &sdf.Material{Ambient: c, Diffuse: c}, nil
}
