package rdf

import "sort"

// VarBinding is one (Variable, Resource) pair of a VarMap.
type VarBinding struct {
	Name  Variable
	Value Resource
}

// VarMap is an ordered mapping from Variable to Resource, kept sorted by
// Name so that Merge can run as a single linear sweep of two ordered maps.
type VarMap struct {
	bindings []VarBinding
}

// NewVarMap builds a VarMap from an already-distinct set of bindings and
// sorts them by name.
func NewVarMap(bindings ...VarBinding) VarMap {
	vm := VarMap{bindings: append([]VarBinding(nil), bindings...)}
	sort.Slice(vm.bindings, func(i, j int) bool {
		return vm.bindings[i].Name < vm.bindings[j].Name
	})
	return vm
}

func (vm VarMap) Len() int {
	return len(vm.bindings)
}

// Get returns the resource bound to name, if any.
func (vm VarMap) Get(name Variable) (Resource, bool) {
	i := sort.Search(len(vm.bindings), func(i int) bool {
		return vm.bindings[i].Name >= name
	})
	if i < len(vm.bindings) && vm.bindings[i].Name == name {
		return vm.bindings[i].Value, true
	}
	return Resource{}, false
}

// Set returns a new VarMap with name bound to value, preserving sort order.
// If name is already present its value is overwritten.
func (vm VarMap) Set(name Variable, value Resource) VarMap {
	i := sort.Search(len(vm.bindings), func(i int) bool {
		return vm.bindings[i].Name >= name
	})
	out := make([]VarBinding, 0, len(vm.bindings)+1)
	out = append(out, vm.bindings[:i]...)
	if i < len(vm.bindings) && vm.bindings[i].Name == name {
		out = append(out, VarBinding{Name: name, Value: value})
		out = append(out, vm.bindings[i+1:]...)
	} else {
		out = append(out, VarBinding{Name: name, Value: value})
		out = append(out, vm.bindings[i:]...)
	}
	return VarMap{bindings: out}
}

// Bindings exposes the underlying sorted slice for iteration.
func (vm VarMap) Bindings() []VarBinding {
	return vm.bindings
}

// Merge merges in into out, returning the merged map and true on success.
// It fails — returning false — iff some key is bound to different values
// in out and in. On failure the returned map's contents are unspecified.
//
// Implemented as a single linear sweep of the two sorted slices, per
// spec.md §4.2's stated algorithm.
func Merge(out, in VarMap) (VarMap, bool) {
	merged := make([]VarBinding, 0, len(out.bindings)+len(in.bindings))
	i, j := 0, 0
	for i < len(out.bindings) && j < len(in.bindings) {
		a, b := out.bindings[i], in.bindings[j]
		switch {
		case a.Name < b.Name:
			merged = append(merged, a)
			i++
		case a.Name > b.Name:
			merged = append(merged, b)
			j++
		default:
			if a.Value != b.Value {
				return VarMap{}, false
			}
			merged = append(merged, a)
			i++
			j++
		}
	}
	merged = append(merged, out.bindings[i:]...)
	merged = append(merged, in.bindings[j:]...)
	return VarMap{bindings: merged}, true
}

// PatternMatches reports whether there exists a substitution of pat's
// variables making pat equal to t, with repeated variables bound
// consistently.
func PatternMatches(pat TriplePattern, t Triple) bool {
	_, ok := Bind(pat, t)
	return ok
}

// Bind returns the unique minimal VarMap making pat equal to t, or false
// if no consistent binding exists (a bound position disagrees, or a
// variable repeated across positions would need two different values).
//
// Composed from three term-level binds and two merges, per spec.md §4.2.
func Bind(pat TriplePattern, t Triple) (VarMap, bool) {
	vm := NewVarMap()
	var ok bool
	if vm, ok = bindTerm(vm, pat.Subject, t.Subject); !ok {
		return VarMap{}, false
	}
	if vm, ok = bindTerm(vm, pat.Predicate, t.Predicate); !ok {
		return VarMap{}, false
	}
	if vm, ok = bindTerm(vm, pat.Object, t.Object); !ok {
		return VarMap{}, false
	}
	return vm, true
}

func bindTerm(acc VarMap, term Term, value Resource) (VarMap, bool) {
	if !term.IsVariable() {
		if term.Resource() != value {
			return VarMap{}, false
		}
		return acc, true
	}
	single := NewVarMap(VarBinding{Name: term.Variable(), Value: value})
	return Merge(acc, single)
}

// Substitute replaces any variable present in vm with its mapped resource;
// variables absent from vm are preserved.
func Substitute(vm VarMap, term Term) Term {
	if !term.IsVariable() {
		return term
	}
	if val, ok := vm.Get(term.Variable()); ok {
		return ResTerm(val)
	}
	return term
}

// SubstitutePattern applies Substitute position-wise.
func SubstitutePattern(vm VarMap, pat TriplePattern) TriplePattern {
	return TriplePattern{
		Subject:   Substitute(vm, pat.Subject),
		Predicate: Substitute(vm, pat.Predicate),
		Object:    Substitute(vm, pat.Object),
	}
}

// ExtractMap returns the set of variables in pat, each mapped to the zero
// Resource value — used as a variable set only, never for its values.
func ExtractMap(pat TriplePattern) VarMap {
	vm := NewVarMap()
	for _, term := range []Term{pat.Subject, pat.Predicate, pat.Object} {
		if term.IsVariable() {
			vm = vm.Set(term.Variable(), Resource{})
		}
	}
	return vm
}

// VarMapsDisjoint reports whether a and b share no variable names, via the
// same linear sweep Merge uses.
func VarMapsDisjoint(a, b VarMap) bool {
	i, j := 0, 0
	for i < len(a.bindings) && j < len(b.bindings) {
		x, y := a.bindings[i].Name, b.bindings[j].Name
		switch {
		case x < y:
			i++
		case x > y:
			j++
		default:
			return false
		}
	}
	return true
}
