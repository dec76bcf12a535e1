package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/isoarena/game/internal/core/event"
)

// ResourceManager owns the device-side handles for every atlas mesh and
// the camera uniform. Handles are written by the simulation but owned here.
type ResourceManager struct {
	backend Backend
	bus     *event.Bus
	log     *zap.Logger

	meshes map[string]*Mesh
	order  []string

	camera      BufferID
	cameraGroup BindGroupID

	allocations int
	writes      int
}

func NewResourceManager(backend Backend, bus *event.Bus, log *zap.Logger) *ResourceManager {
	cam := backend.CreateBuffer(EncodeMatrix(mgl32.Ident4()), UsageUniform)
	return &ResourceManager{
		backend:     backend,
		bus:         bus,
		log:         log,
		meshes:      make(map[string]*Mesh),
		camera:      cam,
		cameraGroup: backend.CreateBindGroup(BindGroupDesc{Label: "camera", Uniform: cam}),
	}
}

// AddAtlas creates the quad mesh and texture bind group for an atlas.
// Atlases are drawn in the order they are added.
func (m *ResourceManager) AddAtlas(name string, uvSize mgl32.Vec2) error {
	if _, dup := m.meshes[name]; dup {
		return fmt.Errorf("atlas %q already registered", name)
	}
	mesh := &Mesh{
		Atlas:      name,
		Vertex:     m.backend.CreateBuffer(EncodeVertices(QuadVertices(uvSize)), UsageVertex),
		Index:      m.backend.CreateBuffer(EncodeIndices(QuadIndices), UsageIndex),
		IndexCount: uint32(len(QuadIndices)),
		BindGroup:  m.backend.CreateBindGroup(BindGroupDesc{Label: name, Texture: name}),
	}
	m.meshes[name] = mesh
	m.order = append(m.order, name)
	return nil
}

// UpdateMeshInstance uploads rows as the atlas's instances. A row count
// equal to the allocated capacity is written in place; any other non-zero
// count allocates a fresh buffer. Zero rows only zero the draw count.
// Panics on an atlas that was never added.
func (m *ResourceManager) UpdateMeshInstance(atlas string, rows []InstanceRaw) {
	mesh, ok := m.meshes[atlas]
	if !ok {
		panic(fmt.Sprintf("render: update of unregistered atlas %q", atlas))
	}
	n := len(rows)
	if n == 0 {
		mesh.NumInstances = 0
		return
	}
	data := EncodeInstances(rows)
	if n == mesh.Allocated {
		m.backend.WriteBuffer(mesh.Instance, 0, data)
		m.writes++
		mesh.NumInstances = n
		return
	}

	before := mesh.Allocated
	if before > 0 {
		m.backend.DestroyBuffer(mesh.Instance)
	}
	mesh.Instance = m.backend.CreateBuffer(data, UsageInstance)
	mesh.Allocated = n
	mesh.NumInstances = n
	m.allocations++
	m.log.Debug("mesh reallocated",
		zap.String("atlas", atlas),
		zap.Int("before", before),
		zap.Int("after", n))
	if m.bus != nil {
		event.Emit(m.bus, event.MeshReallocated{Atlas: atlas, Before: before, After: n})
	}
}

// WriteCamera uploads the view-projection matrix.
func (m *ResourceManager) WriteCamera(viewProj mgl32.Mat4) {
	m.backend.WriteBuffer(m.camera, 0, EncodeMatrix(viewProj))
}

func (m *ResourceManager) CameraBindGroup() BindGroupID { return m.cameraGroup }

// Mesh returns the mesh for atlas.
func (m *ResourceManager) Mesh(atlas string) (*Mesh, bool) {
	mesh, ok := m.meshes[atlas]
	return mesh, ok
}

// Meshes returns meshes in draw order.
func (m *ResourceManager) Meshes() []*Mesh {
	out := make([]*Mesh, len(m.order))
	for i, name := range m.order {
		out[i] = m.meshes[name]
	}
	return out
}

// Allocations counts instance buffers created since startup.
func (m *ResourceManager) Allocations() int { return m.allocations }

// Writes counts in-place instance buffer updates since startup.
func (m *ResourceManager) Writes() int { return m.writes }
