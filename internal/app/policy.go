package app

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	DropEvent
	DropSubscriber
)

// Policy decides what happens to a roster subscriber whose send buffer is full.
type Policy interface {
	OnBackPressure(subscriberID string) BackpressureAction
}

type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(string) BackpressureAction {
	return DropSubscriber
}
