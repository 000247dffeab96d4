package editor

// Selection tracks the object menu operations apply to (Current) and the
// object the installed tool edits (Target). Either may be -1.
type Selection struct {
	Current int
	Target  int
}

func NewSelection() Selection {
	return Selection{Current: -1, Target: -1}
}

// Set makes index both current and target.
func (s *Selection) Set(index int) {
	s.Current, s.Target = index, index
}

func (s Selection) HasCurrent() bool { return s.Current >= 0 }

func (s Selection) HasTarget() bool { return s.Target >= 0 }

// Next steps from the tool target to the following object, wrapping to 0.
func (s *Selection) Next(count int) {
	if count <= 0 {
		return
	}
	next := s.Target + 1
	if next >= count || next < 0 {
		next = 0
	}
	s.Set(next)
}

// Prev steps from the tool target to the preceding object, wrapping to
// count-1.
func (s *Selection) Prev(count int) {
	if count <= 0 {
		return
	}
	prev := s.Target - 1
	if prev < 0 || prev >= count {
		prev = count - 1
	}
	s.Set(prev)
}
