package apps

import (
	"tact/kernel"
	"tact/ui"
)

// TaskSpec declares a task contributed by an app. Exactly one of Fn or
// Suspend is set; Config carries the cadence the task wants.
type TaskSpec struct {
	Fn      kernel.TaskFunc
	Suspend kernel.SuspendFunc
	Config  kernel.TaskConfig
}

// App is a named bundle of pages and tasks that installs and removes as a
// unit. Pages and Tasks are called once per activation to materialize the
// app's contribution; implementations may reuse the same instances across
// activations.
type App interface {
	Name() string
	Pages() []ui.Page
	Tasks() []TaskSpec
}
