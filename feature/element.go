package feature

// Element is one concrete instance of a feature space: a mapping from
// feature name to a value whose runtime shape matches the feature's declared
// type. Elements are transient caller-owned inputs; the engine never mutates
// them.
//
// Expected shapes per value type: float64 for RealScalar (float32 accepted),
// int64 for IntScalar (int and int32 accepted), string for Categorical, bool
// for Boolean and []float32 of the declared dimension for Vector.
type Element map[string]any

// Blank returns an element carrying a zero value of the right shape for
// every feature of the space: 0.0, 0, the empty string, false, or a zero
// vector of the declared dimension.
func (s *Space) Blank() Element {
	e := make(Element, len(s.features))
	for _, def := range s.features {
		switch def.Type {
		case RealScalar:
			e[def.Name] = float64(0)
		case IntScalar:
			e[def.Name] = int64(0)
		case Categorical:
			e[def.Name] = ""
		case Boolean:
			e[def.Name] = false
		case Vector:
			e[def.Name] = make([]float32, def.Dimension)
		}
	}
	return e
}
