package scan

// Event reports progress for one scanned file.
type Event struct {
	Path    string
	Matches int
}

// ProgressSink consumes progress events. Implementations must be cheap;
// the walker calls OnEvent synchronously.
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
