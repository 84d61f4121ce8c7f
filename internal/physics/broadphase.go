package physics

import "sort"

// sweepAndPrune finds candidate collision pairs by sorting bounding boxes along X and
// sweeping an active list. Planes are unbounded and paired with every dynamic body.
// Buffers are reused between steps to avoid per-frame allocations.
type sweepAndPrune struct {
	entries []sapEntry
	active  []sapEntry
	out     [][2]*Body
}

type sapEntry struct {
	body *Body
	box  AABB
}

func (s *sweepAndPrune) pairs(bodies []*Body) [][2]*Body {
	s.out = s.out[:0]
	s.entries = s.entries[:0]
	var planes []*Body
	for _, b := range bodies {
		if b.Shape.Kind == ShapePlane {
			planes = append(planes, b)
			continue
		}
		s.entries = append(s.entries, sapEntry{body: b, box: b.AABB()})
	}
	for _, p := range planes {
		for _, e := range s.entries {
			if e.body.Static {
				continue
			}
			s.out = append(s.out, [2]*Body{e.body, p})
		}
	}

	sort.Slice(s.entries, func(i, j int) bool {
		return s.entries[i].box.Min[0] < s.entries[j].box.Min[0]
	})
	s.active = s.active[:0]
	for _, e := range s.entries {
		kept := s.active[:0]
		for _, a := range s.active {
			if a.box.Max[0] >= e.box.Min[0] {
				kept = append(kept, a)
			}
		}
		s.active = kept
		for _, a := range s.active {
			if a.body.Static && e.body.Static {
				continue
			}
			if a.box.Overlaps(e.box) {
				s.out = append(s.out, [2]*Body{a.body, e.body})
			}
		}
		s.active = append(s.active, e)
	}
	return s.out
}
