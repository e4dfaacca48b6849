package stock

// SerialSet conjunto de números de serie con igualdad por string.
// Conserva el orden de inserción para que la lista persistida sea estable.
type SerialSet struct {
	order []string
	index map[string]struct{}
}

// NewSerialSet construye el conjunto a partir de una lista; los duplicados se descartan.
func NewSerialSet(serials []string) *SerialSet {
	s := &SerialSet{
		order: make([]string, 0, len(serials)),
		index: make(map[string]struct{}, len(serials)),
	}
	for _, sn := range serials {
		s.Add(sn)
	}
	return s
}

// Has indica si sn pertenece al conjunto.
func (s *SerialSet) Has(sn string) bool {
	_, ok := s.index[sn]
	return ok
}

// Add agrega sn. Devuelve false si ya existía.
func (s *SerialSet) Add(sn string) bool {
	if s.Has(sn) {
		return false
	}
	s.index[sn] = struct{}{}
	s.order = append(s.order, sn)
	return true
}

// Union agrega todos los seriales (unión de conjuntos).
func (s *SerialSet) Union(serials []string) {
	for _, sn := range serials {
		s.Add(sn)
	}
}

// Difference quita todos los seriales indicados (diferencia de conjuntos).
func (s *SerialSet) Difference(serials []string) {
	if len(serials) == 0 {
		return
	}
	drop := make(map[string]struct{}, len(serials))
	for _, sn := range serials {
		if s.Has(sn) {
			drop[sn] = struct{}{}
			delete(s.index, sn)
		}
	}
	if len(drop) == 0 {
		return
	}
	kept := s.order[:0]
	for _, sn := range s.order {
		if _, gone := drop[sn]; !gone {
			kept = append(kept, sn)
		}
	}
	s.order = kept
}

// Missing devuelve, en el orden recibido y sin repetir, los seriales que no están en el conjunto.
func (s *SerialSet) Missing(serials []string) []string {
	var missing []string
	seen := make(map[string]struct{})
	for _, sn := range serials {
		if s.Has(sn) {
			continue
		}
		if _, dup := seen[sn]; dup {
			continue
		}
		seen[sn] = struct{}{}
		missing = append(missing, sn)
	}
	return missing
}

// Len cantidad de seriales.
func (s *SerialSet) Len() int { return len(s.order) }

// Slice copia de los seriales en orden de inserción. Nunca nil.
func (s *SerialSet) Slice() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
