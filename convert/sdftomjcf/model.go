package sdftomjcf

import (
	"fmt"

	"github.com/pkg/errors"

	"go.viam.com/sdfmjcf/convert"
	"go.viam.com/sdfmjcf/mjcf"
	"go.viam.com/sdfmjcf/referenceframe"
	"go.viam.com/sdfmjcf/sdf"
	"go.viam.com/sdfmjcf/spatialmath"
)

// Config selects how a document is written.
type Config struct {
	// ModelName names the MJCF model. The name of the first model is used when it is empty.
	ModelName string
	AngleUnit spatialmath.AngleUnit
	// SourceDir is the directory of the SDFormat file, which relative mesh URIs are resolved against.
	SourceDir string
}

// Convert converts every model of root, including the models of its worlds, into a single MJCF document. World
// lights become lights of the worldbody. Nodes that cannot be converted are recorded on the session; only a
// malformed kinematic structure fails the conversion.
func Convert(root *sdf.Root, cfg Config, session *convert.Session) (*mjcf.Mujoco, error) {
	models := root.AllModels()
	if len(models) == 0 {
		return nil, sdf.ErrNoModelInformation
	}
	name := cfg.ModelName
	if name == "" {
		name = models[0].Name
	}
	doc := &mjcf.Mujoco{
		Model:     name,
		Compiler:  mjcf.NewCompiler(cfg.AngleUnit),
		Asset:     &mjcf.Asset{},
		Worldbody: &mjcf.Body{},
	}

	for _, m := range models {
		opts, err := NewOptions(m, cfg.AngleUnit, session, doc.Asset)
		if err != nil {
			return nil, err
		}
		opts.SourceDir = cfg.SourceDir
		if err := AddModel(doc.Worldbody, m, opts); err != nil {
			return nil, errors.Wrapf(err, "model %q", m.Name)
		}
	}

	worldOpts := Options{AngleUnit: cfg.AngleUnit, Session: session}
	for _, w := range root.Worlds {
		for _, light := range w.Lights {
			pose, err := light.Pose.Parse()
			if err == nil {
				_, err = AddLight(doc.Worldbody, light, pose, worldOpts)
			}
			if err != nil {
				session.Fail(errors.Wrapf(err, "world %q", w.Name))
			}
		}
	}

	if doc.Asset.IsEmpty() {
		doc.Asset = nil
	}
	return doc, nil
}

// kinematicTree is the tree of links of a model, rooted at the links that have no parent link.
type kinematicTree struct {
	roots []*sdf.Link
	// parentJoint is the joint whose child is the named link.
	parentJoint map[string]*sdf.Joint
	// childJoints are the joints whose parent is the named link, in document order.
	childJoints map[string][]*sdf.Joint
}

// newKinematicTree checks that the joints of model form a tree: every link has at most one parent joint, every
// joint connects existing links and no link is its own ancestor.
func newKinematicTree(model *sdf.Model) (*kinematicTree, error) {
	tree := &kinematicTree{
		parentJoint: map[string]*sdf.Joint{},
		childJoints: map[string][]*sdf.Joint{},
	}
	for _, j := range model.Joints {
		if _, ok := model.Link(j.Child); !ok {
			return nil, referenceframe.NewStructuralError(fmt.Sprintf("joint %q has no child link %q", j.Name, j.Child))
		}
		if j.Parent != sdf.WorldFrame {
			if _, ok := model.Link(j.Parent); !ok {
				return nil, referenceframe.NewParentFrameMissingError(j.Name)
			}
		}
		if j.Parent == j.Child {
			return nil, referenceframe.NewStructuralError(fmt.Sprintf("joint %q connects link %q to itself", j.Name, j.Child))
		}
		if other, ok := tree.parentJoint[j.Child]; ok {
			return nil, referenceframe.NewStructuralError(
				fmt.Sprintf("link %q is the child of both %q and %q", j.Child, other.Name, j.Name))
		}
		tree.parentJoint[j.Child] = j
		if j.Parent != sdf.WorldFrame {
			tree.childJoints[j.Parent] = append(tree.childJoints[j.Parent], j)
		}
	}

	for _, l := range model.Links {
		if j, ok := tree.parentJoint[l.Name]; !ok || j.Parent == sdf.WorldFrame {
			tree.roots = append(tree.roots, l)
		}
	}

	// with one parent per link, links that cannot be reached from a root are on a cycle
	reached := map[string]bool{}
	var visit func(name string)
	visit = func(name string) {
		reached[name] = true
		for _, j := range tree.childJoints[name] {
			visit(j.Child)
		}
	}
	for _, r := range tree.roots {
		visit(r.Name)
	}
	for _, l := range model.Links {
		if !reached[l.Name] {
			return nil, referenceframe.NewStructuralError(fmt.Sprintf("link %q is part of a kinematic loop", l.Name))
		}
	}
	return tree, nil
}

// AddModel converts the links of model into bodies of worldbody, walking the joints depth first. Root links
// are posed in the world frame and move freely unless the model is static or they are jointed to the world.
// A link that cannot be converted is recorded on the session and its subtree is left out.
func AddModel(worldbody *mjcf.Body, model *sdf.Model, opts Options) error {
	tree, err := newKinematicTree(model)
	if err != nil {
		return err
	}

	var walk func(parentBody *mjcf.Body, parent *sdf.Link)
	walk = func(parentBody *mjcf.Body, parent *sdf.Link) {
		for _, j := range tree.childJoints[parent.Name] {
			child, _ := model.Link(j.Child)
			body, err := AddLink(parentBody, child, parent.Name, opts)
			if err != nil {
				opts.Session.Fail(err)
				continue
			}
			if _, err := AddJoint(body, j, opts); err != nil {
				opts.Session.Fail(err)
			}
			walk(body, child)
		}
	}

	for _, root := range tree.roots {
		body, err := AddLink(worldbody, root, sdf.WorldFrame, opts)
		if err != nil {
			opts.Session.Fail(err)
			continue
		}
		var jointErr error
		if j, ok := tree.parentJoint[root.Name]; ok {
			_, jointErr = AddJoint(body, j, opts)
		} else if !model.IsStatic() {
			_, jointErr = AddJoint(body, nil, opts)
		}
		if jointErr != nil {
			opts.Session.Fail(jointErr)
		}
		walk(body, root)
	}
	return nil
}
