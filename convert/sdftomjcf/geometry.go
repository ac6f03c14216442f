package sdftomjcf

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"go.viam.com/sdfmjcf/mjcf"
	"go.viam.com/sdfmjcf/sdf"
	"go.viam.com/sdfmjcf/spatialmath"
	"go.viam.com/sdfmjcf/utils"
)

// planeGridSpacing is the spacing of the grid lines drawn on converted planes.
const planeGridSpacing = 0.05

// AddCollision converts a collision into a geom of the collision group and adds it to body.
func AddCollision(body *mjcf.Body, link string, col *sdf.Collision, opts Options) (*mjcf.Geom, error) {
	pose, err := opts.resolvePose(col.SemanticPose(link), link)
	if err != nil {
		return nil, err
	}
	geom, err := AddGeometry(body, opts.Session.UniqueName(col.Name, "geom"), pose, col.Geometry, opts)
	if err != nil {
		return nil, err
	}
	group := mjcf.CollisionGeomGroup
	geom.Group = &group
	return geom, nil
}

// AddVisual converts a visual into a geom of the visual group and adds it to body. The diffuse color of its
// material becomes the color of the geom.
func AddVisual(body *mjcf.Body, link string, vis *sdf.Visual, opts Options) (*mjcf.Geom, error) {
	pose, err := opts.resolvePose(vis.SemanticPose(link), link)
	if err != nil {
		return nil, err
	}
	geom, err := AddGeometry(body, opts.Session.UniqueName(vis.Name, "geom"), pose, vis.Geometry, opts)
	if err != nil {
		return nil, err
	}
	group := mjcf.VisualGeomGroup
	geom.Group = &group
	if vis.Material != nil && vis.Material.Diffuse != "" {
		rgba, err := utils.ParseRGBA(vis.Material.Diffuse)
		if err != nil {
			opts.Session.Warnf("visual %q: ignoring diffuse color: %v", vis.Name, err)
		} else {
			geom.RGBA = utils.FloatSliceToSpaceDelimitedString(rgba...)
		}
	}
	return geom, nil
}

// AddGeometry converts a shape at pose, relative to body, into a geom and adds it to body. MJCF sizes are half
// extents where SDFormat sizes are full extents.
func AddGeometry(body *mjcf.Body, name string, pose spatialmath.Pose, g *sdf.Geometry, opts Options) (*mjcf.Geom, error) {
	if g == nil {
		return nil, errors.Errorf("geom %q has no geometry", name)
	}
	geom := &mjcf.Geom{Name: name, Frame: mjcf.NewFrame(pose, opts.AngleUnit)}

	switch {
	case g.Box != nil:
		size, err := utils.ParseFloats(g.Box.Size, 3)
		if err != nil {
			return nil, errors.Wrapf(err, "geom %q: invalid box size", name)
		}
		if size == nil {
			size = []float64{1, 1, 1}
		}
		geom.Type = mjcf.GeomBox
		geom.Size = utils.FloatSliceToSpaceDelimitedString(size[0]/2, size[1]/2, size[2]/2)
	case g.Capsule != nil:
		geom.Type = mjcf.GeomCapsule
		geom.Size = utils.FloatSliceToSpaceDelimitedString(g.Capsule.Radius, g.Capsule.Length/2)
	case g.Cylinder != nil:
		geom.Type = mjcf.GeomCylinder
		geom.Size = utils.FloatSliceToSpaceDelimitedString(g.Cylinder.Radius, g.Cylinder.Length/2)
	case g.Ellipsoid != nil:
		radii, err := utils.ParseFloats(g.Ellipsoid.Radii, 3)
		if err != nil || radii == nil {
			return nil, errors.Errorf("geom %q: invalid ellipsoid radii %q", name, g.Ellipsoid.Radii)
		}
		geom.Type = mjcf.GeomEllipsoid
		geom.Size = utils.FloatSliceToSpaceDelimitedString(radii...)
	case g.Plane != nil:
		size, err := utils.ParseFloats(g.Plane.Size, 2)
		if err != nil || size == nil {
			return nil, errors.Errorf("geom %q: invalid plane size %q", name, g.Plane.Size)
		}
		geom.Type = mjcf.GeomPlane
		geom.Size = utils.FloatSliceToSpaceDelimitedString(size[0]/2, size[1]/2, planeGridSpacing)
	case g.Sphere != nil:
		geom.Type = mjcf.GeomSphere
		geom.Size = utils.FloatSliceToSpaceDelimitedString(g.Sphere.Radius)
	case g.Mesh != nil:
		mesh, err := addMeshAsset(g.Mesh, opts)
		if err != nil {
			return nil, errors.Wrapf(err, "geom %q", name)
		}
		geom.Type = mjcf.GeomMesh
		geom.Mesh = mesh
	default:
		return nil, errors.Errorf("geom %q has an unsupported shape", name)
	}

	body.Geoms = append(body.Geoms, geom)
	return geom, nil
}

// addMeshAsset adds the mesh file to the assets of the document, unless a mesh of the same name is already
// there, and returns the name of the asset.
func addMeshAsset(mesh *sdf.Mesh, opts Options) (string, error) {
	uri := mesh.URI
	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
		return "", errors.Errorf("remote mesh %q is not supported", uri)
	}
	file := strings.TrimPrefix(uri, "file://")
	ext := strings.ToLower(filepath.Ext(file))
	switch ext {
	case ".obj", ".stl":
	case "":
		return "", errors.Errorf("unable to find the extension of mesh %q", uri)
	default:
		return "", errors.Errorf("mesh format %q of %q is not supported", ext, uri)
	}
	if opts.Asset == nil {
		return "", errors.Errorf("no asset to add mesh %q to", uri)
	}
	if opts.SourceDir != "" && !filepath.IsAbs(file) {
		file = filepath.Join(opts.SourceDir, file)
	}

	asset := &mjcf.MeshAsset{File: file, Scale: mesh.Scale}
	if existing, ok := opts.Asset.FindMesh(asset.MeshName()); ok {
		return existing.MeshName(), nil
	}
	opts.Asset.Meshes = append(opts.Asset.Meshes, asset)
	return asset.MeshName(), nil
}
