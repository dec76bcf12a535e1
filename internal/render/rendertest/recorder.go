// Package rendertest provides a recording render.Backend for tests.
package rendertest

import (
	"fmt"
	"sync"

	"github.com/isoarena/game/internal/render"
)

// Call is one recorded backend or pass invocation.
type Call struct {
	Op   string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Op, c.Args)
}

// Recorder implements render.Backend by keeping buffers in memory and
// logging every call in order.
type Recorder struct {
	mu sync.Mutex

	Calls      []Call
	Buffers    map[render.BufferID][]byte
	Usages     map[render.BufferID]render.BufferUsage
	BindGroups map[render.BindGroupID]render.BindGroupDesc
	Width      int
	Height     int

	nextBuffer render.BufferID
	nextGroup  render.BindGroupID
	beginErrs  []error
	presentErr []error
}

func New() *Recorder {
	return &Recorder{
		Buffers:    make(map[render.BufferID][]byte),
		Usages:     make(map[render.BufferID]render.BufferUsage),
		BindGroups: make(map[render.BindGroupID]render.BindGroupDesc),
	}
}

// FailBegin makes the next BeginRenderPass calls return errs in order.
func (r *Recorder) FailBegin(errs ...error) {
	r.mu.Lock()
	r.beginErrs = append(r.beginErrs, errs...)
	r.mu.Unlock()
}

// FailPresent makes the next Present calls return errs in order.
func (r *Recorder) FailPresent(errs ...error) {
	r.mu.Lock()
	r.presentErr = append(r.presentErr, errs...)
	r.mu.Unlock()
}

func (r *Recorder) record(op string, args ...any) {
	r.Calls = append(r.Calls, Call{Op: op, Args: args})
}

func (r *Recorder) CreateBuffer(data []byte, usage render.BufferUsage) render.BufferID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextBuffer++
	id := r.nextBuffer
	r.Buffers[id] = append([]byte(nil), data...)
	r.Usages[id] = usage
	r.record("CreateBuffer", id, usage, len(data))
	return id
}

func (r *Recorder) WriteBuffer(buf render.BufferID, offset int, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dst, ok := r.Buffers[buf]
	if !ok {
		panic(fmt.Sprintf("rendertest: write to unknown buffer %d", buf))
	}
	if offset+len(data) > len(dst) {
		panic(fmt.Sprintf("rendertest: write of %d bytes at %d overflows buffer %d (%d bytes)",
			len(data), offset, buf, len(dst)))
	}
	copy(dst[offset:], data)
	r.record("WriteBuffer", buf, offset, len(data))
}

func (r *Recorder) DestroyBuffer(buf render.BufferID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Buffers[buf]; !ok {
		panic(fmt.Sprintf("rendertest: destroy of unknown buffer %d", buf))
	}
	delete(r.Buffers, buf)
	delete(r.Usages, buf)
	r.record("DestroyBuffer", buf)
}

func (r *Recorder) CreateBindGroup(desc render.BindGroupDesc) render.BindGroupID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextGroup++
	r.BindGroups[r.nextGroup] = desc
	r.record("CreateBindGroup", r.nextGroup, desc.Label)
	return r.nextGroup
}

func (r *Recorder) BeginRenderPass() (render.RenderPass, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.beginErrs) > 0 {
		err := r.beginErrs[0]
		r.beginErrs = r.beginErrs[1:]
		r.record("BeginRenderPass", err)
		return nil, err
	}
	r.record("BeginRenderPass")
	return &pass{r: r}, nil
}

func (r *Recorder) Present() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.presentErr) > 0 {
		err := r.presentErr[0]
		r.presentErr = r.presentErr[1:]
		r.record("Present", err)
		return err
	}
	r.record("Present")
	return nil
}

func (r *Recorder) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Width, r.Height = width, height
	r.record("Resize", width, height)
}

// Ops returns the recorded operation names in order.
func (r *Recorder) Ops() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ops := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Count returns how many times op was recorded.
func (r *Recorder) Count(op string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Allocations counts CreateBuffer calls with the given usage.
func (r *Recorder) Allocations(usage render.BufferUsage) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.Calls {
		if c.Op == "CreateBuffer" && c.Args[1] == usage {
			n++
		}
	}
	return n
}

// Reset clears the call log, keeping buffers.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.Calls = r.Calls[:0]
	r.mu.Unlock()
}

type pass struct {
	r *Recorder
}

func (p *pass) SetBindGroup(slot int, group render.BindGroupID) {
	p.r.mu.Lock()
	defer p.r.mu.Unlock()
	p.r.record("SetBindGroup", slot, group)
}

func (p *pass) SetVertexBuffer(slot int, buf render.BufferID) {
	p.r.mu.Lock()
	defer p.r.mu.Unlock()
	p.r.record("SetVertexBuffer", slot, buf)
}

func (p *pass) SetIndexBuffer(buf render.BufferID) {
	p.r.mu.Lock()
	defer p.r.mu.Unlock()
	p.r.record("SetIndexBuffer", buf)
}

func (p *pass) DrawIndexed(indices, instances render.Range) {
	p.r.mu.Lock()
	defer p.r.mu.Unlock()
	p.r.record("DrawIndexed", indices, instances)
}

func (p *pass) End() {
	p.r.mu.Lock()
	defer p.r.mu.Unlock()
	p.r.record("End")
}
