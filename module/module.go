// Package module dispatches engine lifecycle phases to an ordered list of
// modules.
//
// A Manager calls every phase on its modules in registration order, once per
// call. Modules embed Base and override only the phases they care about:
//
//	type Clock struct {
//	    module.Base
//	    frames int
//	}
//
//	func (c *Clock) Update() { c.frames++ }
//
//	m := module.NewManager()
//	clock := module.Create[Clock](m)
//	m.Awake()
//	m.Update()
package module

// Module receives lifecycle callbacks from a Manager.
type Module interface {
	Awake()
	Start()
	Update()

	PreRender()
	Render()
	OnGUI()
	PostRender()
	OnDebug()
	OnDebugSelected()
	Present()

	OnEnable()
	OnDisable()

	Destroy()
	Finalize()
}

// Base implements every Module phase as a no-op.
type Base struct{}

func (Base) Awake()           {}
func (Base) Start()           {}
func (Base) Update()          {}
func (Base) PreRender()       {}
func (Base) Render()          {}
func (Base) OnGUI()           {}
func (Base) PostRender()      {}
func (Base) OnDebug()         {}
func (Base) OnDebugSelected() {}
func (Base) Present()         {}
func (Base) OnEnable()        {}
func (Base) OnDisable()       {}
func (Base) Destroy()         {}
func (Base) Finalize()        {}

var _ Module = Base{}
