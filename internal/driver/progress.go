package driver

import "time"

// Stage is the step a unit is in.
type Stage string

const (
	StageLoad  Stage = "load"
	StageBind  Stage = "bind"
	StageCheck Stage = "check"
)

// Status captures progress within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for a unit, or for the whole run when File is empty.
// Done carries the number of diagnostics the unit produced.
type Event struct {
	File        string
	Stage       Stage
	Status      Status
	Err         error
	Elapsed     time.Duration
	Diagnostics int
}

// ProgressSink consumes progress events; implementations must be goroutine-safe.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
