package apps

import (
	"errors"
	"testing"

	"tact/hal"
	"tact/kernel"
	"tact/ui"
)

type fakeDisplay struct{}

func (fakeDisplay) Bounds() hal.Size                    { return hal.Size{W: 240, H: 240} }
func (fakeDisplay) CreatePen(r, g, b uint8) hal.Pen     { return 0 }
func (fakeDisplay) SetPen(p hal.Pen)                    {}
func (fakeDisplay) Clear()                              {}
func (fakeDisplay) Rectangle(r hal.Region)              {}
func (fakeDisplay) Line(x0, y0, x1, y1 int)             {}
func (fakeDisplay) Text(s string, x, y, scale int)      {}
func (fakeDisplay) MeasureText(s string, scale int) int { return 6 * len(s) * scale }
func (fakeDisplay) SetClip(r hal.Region)                {}
func (fakeDisplay) RemoveClip()                         {}
func (fakeDisplay) Update() error                       { return nil }
func (fakeDisplay) UpdateRegion(r hal.Region) error     { return nil }

type fakeTouch struct {
	next  hal.TouchState
	state hal.TouchState
}

func (t *fakeTouch) Poll()                 { t.state = t.next }
func (t *fakeTouch) State() hal.TouchState { return t.state }

func (t *fakeTouch) press(x, y int) { t.next = hal.TouchState{Active: true, X: x, Y: y} }
func (t *fakeTouch) release()       { t.next = hal.TouchState{} }

type fakeClock struct{ now uint64 }

func (c *fakeClock) NowMicros() uint64     { return c.now % hal.TickPeriod }
func (c *fakeClock) SleepMicros(us uint64) { c.now += us }

type fakeIllumination struct{}

func (fakeIllumination) SetBrightness(pct int) {}
func (fakeIllumination) SetGlow(r, g, b uint8) {}

type fakeNetwork struct{}

func (fakeNetwork) Connect() error  { return nil }
func (fakeNetwork) SyncTime() error { return nil }

type fakeBuzzer struct{}

func (fakeBuzzer) Beep(freqHz, ms int) {}

type fakeLogger struct{}

func (fakeLogger) WriteLineString(s string) {}

type fakeHAL struct {
	touch *fakeTouch
	clock *fakeClock
}

func newFakeHAL() *fakeHAL {
	return &fakeHAL{touch: &fakeTouch{}, clock: &fakeClock{}}
}

func (h *fakeHAL) Logger() hal.Logger             { return fakeLogger{} }
func (h *fakeHAL) Display() hal.Display           { return fakeDisplay{} }
func (h *fakeHAL) Touch() hal.Touch               { return h.touch }
func (h *fakeHAL) Illumination() hal.Illumination { return fakeIllumination{} }
func (h *fakeHAL) Clock() hal.Clock               { return h.clock }
func (h *fakeHAL) Network() hal.Network           { return fakeNetwork{} }
func (h *fakeHAL) Buzzer() hal.Buzzer             { return fakeBuzzer{} }

type blankPage struct {
	ui.PageBase
}

func newBlankPage(title string) *blankPage {
	return &blankPage{PageBase: ui.NewStaticBase(title)}
}

func (p *blankPage) Draw(d hal.Display, r hal.Region, th *ui.Theme) {}

type testApp struct {
	name      string
	pages     []ui.Page
	tasks     []TaskSpec
	pageCalls int
}

func (a *testApp) Name() string { return a.name }

func (a *testApp) Pages() []ui.Page {
	a.pageCalls++
	return a.pages
}

func (a *testApp) Tasks() []TaskSpec { return a.tasks }

func countingTask(counter *int) TaskSpec {
	return TaskSpec{
		Fn: func() error {
			*counter++
			return nil
		},
		Config: kernel.TaskConfig{Frequency: kernel.FrequencyMax},
	}
}

func newTestManager(t *testing.T) (*kernel.Kernel, *ui.WindowManager, *AppManager) {
	t.Helper()
	k := kernel.New(newFakeHAL())
	wm, err := ui.NewWindowManager(k, ui.Config{DisableSystemMessages: true})
	if err != nil {
		t.Fatalf("NewWindowManager: %v", err)
	}
	return k, wm, NewAppManager(wm)
}

func TestSwitchLeavesOnlyNewAppTasks(t *testing.T) {
	k, wm, m := newTestManager(t)
	baseline := len(k.Tasks()) // the window manager tick

	var aRuns, bRuns int
	appA := &testApp{
		name:  "A",
		pages: []ui.Page{newBlankPage("A1")},
		tasks: []TaskSpec{countingTask(&aRuns), countingTask(&aRuns)},
	}
	appB := &testApp{
		name:  "B",
		pages: []ui.Page{newBlankPage("B1")},
		tasks: []TaskSpec{countingTask(&bRuns)},
	}
	if err := m.AddApp(appA, true); err != nil {
		t.Fatalf("AddApp A: %v", err)
	}
	if err := m.AddApp(appB, false); err != nil {
		t.Fatalf("AddApp B: %v", err)
	}

	// wm tick + A's two tasks + A's page task.
	if got := len(k.Tasks()); got != baseline+3 {
		t.Fatalf("tasks = %d after A, want %d", got, baseline+3)
	}
	k.Step()
	if aRuns != 2 {
		t.Fatalf("aRuns = %d, want 2", aRuns)
	}

	if err := m.SwitchTo(appB); err != nil {
		t.Fatalf("SwitchTo B: %v", err)
	}
	if got := len(k.Tasks()); got != baseline+2 {
		t.Fatalf("tasks = %d after B, want %d", got, baseline+2)
	}
	if len(wm.Pages()) != 1 || wm.CurrentPage() != appB.pages[0] {
		t.Fatal("window manager pages not replaced")
	}

	// None of A's tasks execute after the switch completes.
	aAfter := aRuns
	k.Step()
	k.Step()
	if aRuns != aAfter {
		t.Fatalf("old app ran %d more times after switch", aRuns-aAfter)
	}
	if bRuns == 0 {
		t.Fatal("new app tasks never ran")
	}
}

func TestAppTasksRunAheadOfWindowManagerTick(t *testing.T) {
	k, _, m := newTestManager(t)

	var order []string
	app := &testApp{
		name:  "A",
		pages: []ui.Page{newBlankPage("A1")},
		tasks: []TaskSpec{
			{
				Fn: func() error {
					order = append(order, "app")
					return nil
				},
				Config: kernel.TaskConfig{Frequency: kernel.FrequencyMax},
			},
		},
	}
	if err := m.AddApp(app, true); err != nil {
		t.Fatalf("AddApp: %v", err)
	}

	probe, err := k.AddTask(func() error {
		order = append(order, "tail")
		return nil
	}, kernel.TaskConfig{Frequency: kernel.FrequencyMax})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	defer k.RemoveTask(probe)

	k.Step()
	if len(order) < 2 || order[0] != "app" || order[len(order)-1] != "tail" {
		t.Fatalf("order = %v, want app first", order)
	}
}

func TestSwitchToCurrentIsNoOp(t *testing.T) {
	_, _, m := newTestManager(t)

	app := &testApp{name: "A", pages: []ui.Page{newBlankPage("A1")}}
	if err := m.AddApp(app, true); err != nil {
		t.Fatalf("AddApp: %v", err)
	}
	if err := m.SwitchTo(app); err != nil {
		t.Fatalf("SwitchTo: %v", err)
	}
	if app.pageCalls != 1 {
		t.Fatalf("pageCalls = %d, want 1", app.pageCalls)
	}
}

func TestSwitchToUnregisteredApp(t *testing.T) {
	_, _, m := newTestManager(t)

	err := m.SwitchTo(&testApp{name: "ghost", pages: []ui.Page{newBlankPage("g")}})
	if !errors.Is(err, ErrAppNotFound) {
		t.Fatalf("SwitchTo: %v", err)
	}
}

func TestAppWithoutPagesRejected(t *testing.T) {
	_, _, m := newTestManager(t)

	app := &testApp{name: "empty"}
	if err := m.AddApp(app, true); err == nil {
		t.Fatal("expected error for app without pages")
	}
	if m.CurrentApp() != nil {
		t.Fatal("pageless app became current")
	}
}

func TestRemoveCurrentApp(t *testing.T) {
	k, wm, m := newTestManager(t)
	baseline := len(k.Tasks())

	var runs int
	app := &testApp{
		name:  "A",
		pages: []ui.Page{newBlankPage("A1")},
		tasks: []TaskSpec{countingTask(&runs)},
	}
	if err := m.AddApp(app, true); err != nil {
		t.Fatalf("AddApp: %v", err)
	}
	if err := m.RemoveApp(app); err != nil {
		t.Fatalf("RemoveApp: %v", err)
	}

	if m.CurrentApp() != nil {
		t.Fatal("removed app still current")
	}
	if len(k.Tasks()) != baseline {
		t.Fatalf("tasks = %d, want baseline %d", len(k.Tasks()), baseline)
	}
	if len(wm.Pages()) != 0 {
		t.Fatal("pages remain after removal")
	}
	if len(m.Apps()) != 0 {
		t.Fatal("app still registered")
	}
}

func TestSwitcherSelectsAppByTouch(t *testing.T) {
	h := newFakeHAL()
	k := kernel.New(h)
	wm, err := ui.NewWindowManager(k, ui.Config{DisableSystemMessages: true})
	if err != nil {
		t.Fatalf("NewWindowManager: %v", err)
	}
	m := NewAppManager(wm)

	appA := &testApp{name: "A", pages: []ui.Page{newBlankPage("A1")}}
	appB := &testApp{name: "B", pages: []ui.Page{newBlankPage("B1")}}
	m.AddApp(appA, true)
	m.AddApp(appB, false)

	m.OpenSwitcher()
	if wm.ModalPage() == nil {
		t.Fatal("switcher modal not shown")
	}
	k.Step()

	// Second app button: padding 5, control height 30 -> y 40..70.
	h.touch.press(100, 55)
	k.Step()
	h.touch.release()
	k.Step()

	if wm.ModalPage() != nil {
		t.Fatal("switcher did not close")
	}
	if m.CurrentApp() != appB {
		t.Fatalf("current app = %v, want B", m.CurrentApp())
	}
}
