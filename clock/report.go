package clock

// Entry is one row of a tree report.
type Entry struct {
	Name      string
	Source    Source
	Frequency uint32
	Ready     bool
	Err       error
}

// Report resolves every node in dependency order.
func (t *Tree) Report() []Entry {
	entries := make([]Entry, 0, len(t.nodes))
	for _, n := range t.nodes {
		f, err := n.resolve()
		entries = append(entries, Entry{
			Name:      n.Name(),
			Source:    n.Source(),
			Frequency: f,
			Ready:     n.Ready(),
			Err:       err,
		})
	}
	return entries
}
