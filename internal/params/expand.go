package params

// Assignment is one concrete run configuration: a value chosen for every
// parameter, aligned positionally with the space's declaration order.
type Assignment struct {
	Names  []string
	Values []any
}

// Map returns the assignment as a name → value mapping.
func (a Assignment) Map() map[string]any {
	out := make(map[string]any, len(a.Names))
	for i, name := range a.Names {
		out[name] = a.Values[i]
	}
	return out
}

// Expand produces the Cartesian product of the candidate sequences in
// conventional order: the first declared parameter varies slowest, the
// last varies fastest. A parameter with no candidates yields an empty
// product.
func (s *Space) Expand() []Assignment {
	total := 1
	for _, p := range s.params {
		total *= len(p.Values)
		if total == 0 {
			return nil
		}
	}

	names := s.Names()
	out := make([]Assignment, 0, total)
	indices := make([]int, len(s.params))
	for {
		values := make([]any, len(s.params))
		for i, p := range s.params {
			values[i] = p.Values[indices[i]]
		}
		out = append(out, Assignment{Names: names, Values: values})

		pos := len(indices) - 1
		for pos >= 0 {
			indices[pos]++
			if indices[pos] < len(s.params[pos].Values) {
				break
			}
			indices[pos] = 0
			pos--
		}
		if pos < 0 {
			return out
		}
	}
}
