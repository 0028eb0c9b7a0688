package chash

// Stats describes how well the table is laid out. Probe lengths count how
// far an entry sits from its home slot; an entry in its home slot has a
// probe length of zero.
type Stats struct {
	Capacity   int
	Len        int
	LoadFactor float64
	MaxProbe   int
	MeanProbe  float64
}

// Stats scans the slot array and returns layout statistics
func (t *Table[K, V, H]) Stats() Stats {
	n := len(t.slots)
	st := Stats{
		Capacity:   n,
		Len:        t.count,
		LoadFactor: float64(t.count) / float64(n),
	}

	total := 0
	for i := range t.slots {
		if !t.slots[i].occupied {
			continue
		}
		probe := (i - t.home(t.slots[i].key) + n) % n
		total += probe
		if probe > st.MaxProbe {
			st.MaxProbe = probe
		}
	}
	if t.count > 0 {
		st.MeanProbe = float64(total) / float64(t.count)
	}
	return st
}
