package devs

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/likhithkanigolla/CAPS-IIITH/devs/trace"
)

// actorState is the coordinator's bookkeeping for one actor.
type actorState struct {
	lastTime   Time
	nextTime   Time
	generation uint64
}

// Simulator is a sequential classic-DEVS coordinator for one coupled model.
type Simulator struct {
	Clock   Time
	Horizon Time
	Steps   int
	Trace   *trace.Trace

	model       *Coupled
	heap        *EventHeap
	states      map[string]*actorState
	nextEventID uint64
	initialized bool
}

// NewSimulator prepares a simulator for model. Events later than horizon
// are never executed.
func NewSimulator(model *Coupled, horizon Time) (*Simulator, error) {
	if model == nil {
		return nil, fmt.Errorf("nil coupled model")
	}
	if horizon < 0 {
		return nil, fmt.Errorf("horizon must be non-negative, got %v", horizon)
	}
	return &Simulator{
		Horizon: horizon,
		Trace:   trace.NewTrace(trace.TraceLevelNone),
		model:   model,
		heap:    NewEventHeap(),
		states:  make(map[string]*actorState, len(model.Actors())),
	}, nil
}

// Initialize schedules every actor's first internal transition at time zero
// plus its initial time advance. Run calls it when needed.
func (s *Simulator) Initialize() {
	if s.initialized {
		return
	}
	s.initialized = true
	for _, a := range s.model.Actors() {
		s.states[a.Name] = &actorState{}
		s.reschedule(a, 0)
	}
}

// NextEventTime returns the timestamp of the next pending event, or
// Infinity when the network is quiescent.
func (s *Simulator) NextEventTime() Time {
	for {
		ev := s.heap.Peek()
		if ev == nil {
			return Infinity
		}
		if s.isStale(ev) {
			s.heap.PopNext()
			continue
		}
		return ev.Timestamp()
	}
}

// Step fires the single imminent actor and delivers its outputs.
// It returns false when no event remains within the horizon.
func (s *Simulator) Step() bool {
	s.Initialize()
	next := s.NextEventTime()
	if next.IsInfinite() || next > s.Horizon {
		return false
	}
	ev := s.heap.PopNext().(*InternalEvent)
	now := ev.Timestamp()
	if now < s.Clock {
		panic(fmt.Sprintf("cannot run event in the past, %s @ %.10f, now %.10f", ev.Actor.Name, now, s.Clock))
	}
	s.Clock = now
	s.Steps++

	imminent := ev.Actor
	outputs := imminent.Behavior.Output()
	for _, port := range sortedPorts(outputs) {
		s.Trace.Record(trace.TransitionRecord{
			Clock: float64(now), Actor: imminent.Name, Kind: trace.KindOutput,
			Port: port, Payload: fmt.Sprintf("%v", outputs[port]),
		})
	}
	imminent.Behavior.InternalTransition(now)
	logrus.Debugf("[t=%010.3f] internal %s", now, imminent.Name)
	s.Trace.Record(trace.TransitionRecord{Clock: float64(now), Actor: imminent.Name, Kind: trace.KindInternal, Port: -1})
	s.states[imminent.Name].lastTime = now
	s.reschedule(imminent, now)

	s.deliver(imminent, outputs, now)
	return true
}

// Run executes events until the network is quiescent or the horizon is passed.
func (s *Simulator) Run() {
	s.Initialize()
	for s.Step() {
	}
	logrus.Infof("[t=%010.3f] Simulation ended after %d steps", s.Clock, s.Steps)
}

// deliver routes the imminent actor's outputs to every influencee and fires
// one external transition per influenced actor, in declaration order.
func (s *Simulator) deliver(from *Atomic, outputs Bag, now Time) {
	if len(outputs) == 0 {
		return
	}
	bags := make(map[string]Bag)
	for _, port := range sortedPorts(outputs) {
		if port < 0 || port >= from.NumOut {
			logrus.Debugf("[t=%010.3f] %s produced output on undeclared port %d; dropped", now, from.Name, port)
			continue
		}
		for _, to := range s.model.Influencees(PortRef{Actor: from.Name, Port: port}) {
			if bags[to.Actor] == nil {
				bags[to.Actor] = make(Bag)
			}
			bags[to.Actor][to.Port] = outputs[port]
		}
	}
	for _, a := range s.model.Actors() {
		inputs, ok := bags[a.Name]
		if !ok {
			continue
		}
		st := s.states[a.Name]
		elapsed := now - st.lastTime
		a.Behavior.(Reactive).ExternalTransition(now, elapsed, inputs)
		logrus.Debugf("[t=%010.3f] external %s <- %s", now, a.Name, from.Name)
		for _, port := range sortedPorts(inputs) {
			s.Trace.Record(trace.TransitionRecord{
				Clock: float64(now), Actor: a.Name, Kind: trace.KindExternal,
				Port: port, Payload: fmt.Sprintf("%v", inputs[port]),
			})
		}
		st.lastTime = now
		s.reschedule(a, now)
	}
}

func (s *Simulator) reschedule(a *Atomic, now Time) {
	st := s.states[a.Name]
	st.generation++
	ta := a.Behavior.TimeAdvance()
	if ta < 0 {
		panic(fmt.Sprintf("%s returned negative time advance %v", a.Name, ta))
	}
	if ta.IsInfinite() {
		st.nextTime = Infinity
		return
	}
	st.nextTime = now + ta
	s.nextEventID++
	s.heap.Schedule(NewInternalEvent(st.nextTime, s.nextEventID, a, st.generation))
}

func (s *Simulator) isStale(ev Event) bool {
	ie, ok := ev.(*InternalEvent)
	if !ok {
		return false
	}
	return s.states[ie.Actor.Name].generation != ie.generation
}

func sortedPorts(b Bag) []int {
	ports := make([]int, 0, len(b))
	for p := range b {
		ports = append(ports, p)
	}
	sort.Ints(ports)
	return ports
}
