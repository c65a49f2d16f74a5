package scheduler

// smoother is a moving average over the last n sizes.
type smoother struct {
	widths  []int
	heights []int
	next    int
}

// newSmoother returns nil when n <= 0. The window starts full of the source size.
func newSmoother(n, width, height int) *smoother {
	if n <= 0 {
		return nil
	}
	s := &smoother{widths: make([]int, n), heights: make([]int, n)}
	for i := range n {
		s.widths[i] = width
		s.heights[i] = height
	}
	return s
}

func (s *smoother) apply(width, height int) (int, int) {
	if s == nil {
		return width, height
	}
	s.widths[s.next] = width
	s.heights[s.next] = height
	s.next = (s.next + 1) % len(s.widths)
	return mean(s.widths), mean(s.heights)
}

func mean(values []int) int {
	sum := 0
	for _, v := range values {
		sum += v
	}
	return sum / len(values)
}
