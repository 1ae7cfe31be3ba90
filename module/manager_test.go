package module

import (
	"slices"
	"testing"
)

// recorder appends "<name>.<phase>" to a shared log for every phase.
type recorder struct {
	Base
	name string
	log  *[]string
}

func (r *recorder) add(phase string) { *r.log = append(*r.log, r.name+"."+phase) }

func (r *recorder) Awake()     { r.add("awake") }
func (r *recorder) Update()    { r.add("update") }
func (r *recorder) PreRender() { r.add("prerender") }
func (r *recorder) Render()    { r.add("render") }
func (r *recorder) Present()   { r.add("present") }
func (r *recorder) Destroy()   { r.add("destroy") }
func (r *recorder) Finalize()  { r.add("finalize") }

type counter struct {
	Base
	updates int
}

func (c *counter) Update() { c.updates++ }

func TestManagerPhaseOrder(t *testing.T) {
	var log []string
	m := NewManager()
	m.Add(&recorder{name: "a", log: &log})
	m.Add(&recorder{name: "b", log: &log})

	m.Awake()
	m.Update()
	m.Shutdown()

	want := []string{
		"a.awake", "b.awake",
		"a.update", "b.update",
		"a.destroy", "b.destroy",
		"a.finalize", "b.finalize",
	}
	if !slices.Equal(log, want) {
		t.Errorf("phase log = %v, want %v", log, want)
	}
}

func TestManagerFrame(t *testing.T) {
	var log []string
	m := NewManager()
	m.Add(&recorder{name: "a", log: &log})

	m.Frame()

	want := []string{"a.update", "a.prerender", "a.render", "a.present"}
	if !slices.Equal(log, want) {
		t.Errorf("frame log = %v, want %v", log, want)
	}
}

func TestCreateAndGet(t *testing.T) {
	m := NewManager()
	c := Create[counter](m)
	if c == nil {
		t.Fatal("Create returned nil")
	}
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}

	m.Update()
	m.Update()

	got, ok := Get[*counter](m)
	if !ok {
		t.Fatal("Get[*counter] found nothing")
	}
	if got != c {
		t.Error("Get returned a different module than Create")
	}
	if got.updates != 2 {
		t.Errorf("updates = %d, want 2", got.updates)
	}

	if _, ok := Get[*recorder](m); ok {
		t.Error("Get[*recorder] found a module that was never added")
	}
}

func TestAddNilIgnored(t *testing.T) {
	m := NewManager()
	m.Add(nil)
	if m.Len() != 0 {
		t.Errorf("Len() = %d after Add(nil), want 0", m.Len())
	}
	// Phases on an empty manager are no-ops.
	m.Frame()
	m.Shutdown()
}

func TestModulesReturnsCopy(t *testing.T) {
	m := NewManager()
	m.Add(&counter{})
	mods := m.Modules()
	mods[0] = nil
	if m.Modules()[0] == nil {
		t.Error("Modules() exposed the internal slice")
	}
}

func TestBaseIsNoop(t *testing.T) {
	var b Base
	b.Awake()
	b.Start()
	b.Update()
	b.PreRender()
	b.Render()
	b.OnGUI()
	b.PostRender()
	b.OnDebug()
	b.OnDebugSelected()
	b.Present()
	b.OnEnable()
	b.OnDisable()
	b.Destroy()
	b.Finalize()
}
