package mjcftosdf

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/sdfmjcf/convert"
	"go.viam.com/sdfmjcf/mjcf"
	"go.viam.com/sdfmjcf/sdf"
	"go.viam.com/sdfmjcf/spatialmath"
)

// Names given to the elements made for a document.
const (
	WorldName        = "default"
	DefaultModelName = "model"
	// WorldLinkName is the name of the link holding the geoms and cameras of the worldbody.
	WorldLinkName = "worldbody"
)

// worldPlugins are the Gazebo systems a world needs to render the camera sensors of its models.
var worldPlugins = []sdf.Plugin{
	{Filename: "ignition-gazebo-physics-system", Name: "ignition::gazebo::systems::Physics"},
	{Filename: "ignition-gazebo-sensors-system", Name: "ignition::gazebo::systems::Sensors"},
	{Filename: "ignition-gazebo-user-commands-system", Name: "ignition::gazebo::systems::UserCommands"},
	{Filename: "ignition-gazebo-scene-broadcaster-system", Name: "ignition::gazebo::systems::SceneBroadcaster"},
}

// Config selects how a document is written.
type Config struct {
	// ModelName names the SDFormat model. The model name of the document, then DefaultModelName, is used when it
	// is empty.
	ModelName string
	// ExportWorldPlugins adds the Gazebo system plugins to the world when the model has sensors.
	ExportWorldPlugins bool
}

// Convert converts doc into a world holding a single model. Lights of the worldbody become lights of the world,
// and its geoms and cameras go on a link welded to the world. Nodes that cannot be converted are recorded on the
// session; only a malformed body tree fails the conversion.
func Convert(doc *mjcf.Mujoco, cfg Config, session *convert.Session) (*sdf.Root, error) {
	if doc.Worldbody == nil {
		return nil, mjcf.ErrNoModelInformation
	}
	opts, err := NewOptions(doc, session)
	if err != nil {
		return nil, err
	}

	name := cfg.ModelName
	if name == "" {
		name = doc.Model
	}
	if name == "" {
		name = DefaultModelName
	}
	world := &sdf.World{Name: WorldName}
	model := &sdf.Model{Name: name}
	worldbody := doc.Worldbody
	opts.visited[worldbody] = true

	for _, light := range worldbody.Lights {
		l, err := NewLight(light, opts)
		if err != nil {
			session.Fail(errors.Wrap(err, "worldbody"))
			continue
		}
		world.Lights = append(world.Lights, l)
	}

	if len(worldbody.Geoms) > 0 || len(worldbody.Cameras) > 0 {
		link := &sdf.Link{Name: opts.frameName(WorldLinkName, "link")}
		addContents(link, &mjcf.Body{Geoms: worldbody.Geoms, Cameras: worldbody.Cameras}, opts)
		model.Links = append(model.Links, link)
		weld(model, sdf.WorldFrame, link.Name, opts)
	}

	for _, body := range worldbody.Bodies {
		if err := AddBody(model, body, sdf.WorldFrame, spatialmath.NewZeroPose(), opts); err != nil {
			return nil, err
		}
	}
	if len(model.Links) == 0 {
		return nil, mjcf.ErrNoModelInformation
	}
	world.Models = []*sdf.Model{model}

	hasSensors := lo.ContainsBy(model.Links, func(l *sdf.Link) bool { return len(l.Sensors) > 0 })
	if cfg.ExportWorldPlugins && hasSensors {
		for _, p := range worldPlugins {
			p := p
			world.Plugins = append(world.Plugins, &p)
		}
	}
	return &sdf.Root{Version: sdf.Version, Worlds: []*sdf.World{world}}, nil
}
