package tracer

// Ray counters collected by a tracer.
type Stats struct {
	CameraRays     uint64
	ReflectionRays uint64
	IndirectRays   uint64
	ShadowRays     uint64
}

// Add the counters of another stats instance.
func (s *Stats) Add(other Stats) {
	s.CameraRays += other.CameraRays
	s.ReflectionRays += other.ReflectionRays
	s.IndirectRays += other.IndirectRays
	s.ShadowRays += other.ShadowRays
}

// Total number of rays cast.
func (s Stats) Total() uint64 {
	return s.CameraRays + s.ReflectionRays + s.IndirectRays + s.ShadowRays
}

// Number of rays other than camera rays.
func (s Stats) Secondary() uint64 {
	return s.ReflectionRays + s.IndirectRays + s.ShadowRays
}
