package devs

// ticker emits its count every period until limit outputs were produced.
type ticker struct {
	period Time
	limit  int
	count  int
	log    *[]string
	name   string
}

func (t *ticker) TimeAdvance() Time {
	if t.count >= t.limit {
		return Infinity
	}
	return t.period
}

func (t *ticker) InternalTransition(now Time) {
	t.count++
	if t.log != nil {
		*t.log = append(*t.log, t.name)
	}
}

func (t *ticker) Output() Bag {
	return Bag{0: t.count}
}

// recorder keeps every input it receives.
type recorder struct {
	received []any
	times    []Time
	elapsed  []Time
}

func (r *recorder) TimeAdvance() Time           { return Infinity }
func (r *recorder) InternalTransition(now Time) {}
func (r *recorder) Output() Bag                 { return nil }
func (r *recorder) ExternalTransition(now, elapsed Time, inputs Bag) {
	for _, p := range sortedPorts(inputs) {
		r.received = append(r.received, inputs[p])
		r.times = append(r.times, now)
		r.elapsed = append(r.elapsed, elapsed)
	}
}

// echo forwards every input at the next step.
type echo struct {
	pending []any
}

func (e *echo) TimeAdvance() Time {
	if len(e.pending) == 0 {
		return Infinity
	}
	return 0
}
func (e *echo) InternalTransition(now Time) { e.pending = e.pending[1:] }
func (e *echo) Output() Bag                 { return Bag{0: e.pending[0]} }
func (e *echo) ExternalTransition(now, elapsed Time, inputs Bag) {
	for _, p := range sortedPorts(inputs) {
		e.pending = append(e.pending, inputs[p])
	}
}
