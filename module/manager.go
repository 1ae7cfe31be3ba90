package module

// Manager holds modules in registration order and forwards each lifecycle
// phase to all of them.
//
// Manager is not safe for concurrent use; phases are expected to run on the
// engine's main loop.
type Manager struct {
	modules []Module
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{}
}

// Add appends m. Nil modules are ignored.
func (mgr *Manager) Add(m Module) {
	if m == nil {
		return
	}
	mgr.modules = append(mgr.modules, m)
}

// Modules returns the registered modules in order. The slice is a copy.
func (mgr *Manager) Modules() []Module {
	out := make([]Module, len(mgr.modules))
	copy(out, mgr.modules)
	return out
}

// Len returns the number of registered modules.
func (mgr *Manager) Len() int { return len(mgr.modules) }

// Create allocates a zero T, registers it and returns it.
func Create[T any, PT interface {
	*T
	Module
}](mgr *Manager) PT {
	m := PT(new(T))
	mgr.Add(m)
	return m
}

// Get returns the first registered module of type T.
func Get[T Module](mgr *Manager) (T, bool) {
	for _, m := range mgr.modules {
		if t, ok := m.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

func (mgr *Manager) each(phase func(Module)) {
	for _, m := range mgr.modules {
		phase(m)
	}
}

func (mgr *Manager) Awake()           { mgr.each(Module.Awake) }
func (mgr *Manager) Start()           { mgr.each(Module.Start) }
func (mgr *Manager) Update()          { mgr.each(Module.Update) }
func (mgr *Manager) PreRender()       { mgr.each(Module.PreRender) }
func (mgr *Manager) Render()          { mgr.each(Module.Render) }
func (mgr *Manager) OnGUI()           { mgr.each(Module.OnGUI) }
func (mgr *Manager) PostRender()      { mgr.each(Module.PostRender) }
func (mgr *Manager) OnDebug()         { mgr.each(Module.OnDebug) }
func (mgr *Manager) OnDebugSelected() { mgr.each(Module.OnDebugSelected) }
func (mgr *Manager) Present()         { mgr.each(Module.Present) }
func (mgr *Manager) OnEnable()        { mgr.each(Module.OnEnable) }
func (mgr *Manager) OnDisable()       { mgr.each(Module.OnDisable) }
func (mgr *Manager) Destroy()         { mgr.each(Module.Destroy) }
func (mgr *Manager) Finalize()        { mgr.each(Module.Finalize) }

// Frame runs one frame: Update, then the render phases PreRender, Render,
// OnGUI, PostRender and Present.
func (mgr *Manager) Frame() {
	mgr.Update()
	mgr.PreRender()
	mgr.Render()
	mgr.OnGUI()
	mgr.PostRender()
	mgr.Present()
}

// Shutdown runs Destroy and then Finalize on every module.
func (mgr *Manager) Shutdown() {
	mgr.Destroy()
	mgr.Finalize()
}

var _ Module = (*Manager)(nil)
