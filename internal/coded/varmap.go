package coded

import (
	"sort"

	"github.com/samuelbarrett1234/dbsi-project/pkg/rdf"
)

// CodedVarBinding is one (Variable, CodedResource) pair of a CodedVarMap.
type CodedVarBinding struct {
	Name  rdf.Variable
	Value CodedResource
}

// CodedVarMap is the coded-space counterpart of rdf.VarMap: an ordered
// mapping from Variable to CodedResource, sorted by Name.
type CodedVarMap struct {
	bindings []CodedVarBinding
}

func NewVarMap(bindings ...CodedVarBinding) CodedVarMap {
	vm := CodedVarMap{bindings: append([]CodedVarBinding(nil), bindings...)}
	sort.Slice(vm.bindings, func(i, j int) bool {
		return vm.bindings[i].Name < vm.bindings[j].Name
	})
	return vm
}

func (vm CodedVarMap) Len() int {
	return len(vm.bindings)
}

func (vm CodedVarMap) Get(name rdf.Variable) (CodedResource, bool) {
	i := sort.Search(len(vm.bindings), func(i int) bool {
		return vm.bindings[i].Name >= name
	})
	if i < len(vm.bindings) && vm.bindings[i].Name == name {
		return vm.bindings[i].Value, true
	}
	return 0, false
}

func (vm CodedVarMap) Set(name rdf.Variable, value CodedResource) CodedVarMap {
	i := sort.Search(len(vm.bindings), func(i int) bool {
		return vm.bindings[i].Name >= name
	})
	out := make([]CodedVarBinding, 0, len(vm.bindings)+1)
	out = append(out, vm.bindings[:i]...)
	if i < len(vm.bindings) && vm.bindings[i].Name == name {
		out = append(out, CodedVarBinding{Name: name, Value: value})
		out = append(out, vm.bindings[i+1:]...)
	} else {
		out = append(out, CodedVarBinding{Name: name, Value: value})
		out = append(out, vm.bindings[i:]...)
	}
	return CodedVarMap{bindings: out}
}

func (vm CodedVarMap) Bindings() []CodedVarBinding {
	return vm.bindings
}

// Merge mirrors rdf.Merge in coded space: a single linear sweep of the two
// sorted slices, failing iff some key disagrees between the two maps.
func Merge(out, in CodedVarMap) (CodedVarMap, bool) {
	merged := make([]CodedVarBinding, 0, len(out.bindings)+len(in.bindings))
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
				return CodedVarMap{}, false
			}
			merged = append(merged, a)
			i++
			j++
		}
	}
	merged = append(merged, out.bindings[i:]...)
	merged = append(merged, in.bindings[j:]...)
	return CodedVarMap{bindings: merged}, true
}

// PatternMatches reports whether pat matches t under some consistent
// variable binding.
func PatternMatches(pat CodedTriplePattern, t CodedTriple) bool {
	_, ok := Bind(pat, t)
	return ok
}

// Bind returns the unique minimal CodedVarMap making pat equal to t.
func Bind(pat CodedTriplePattern, t CodedTriple) (CodedVarMap, bool) {
	vm := NewVarMap()
	var ok bool
	if vm, ok = bindTerm(vm, pat.Subject, t.Subject); !ok {
		return CodedVarMap{}, false
	}
	if vm, ok = bindTerm(vm, pat.Predicate, t.Predicate); !ok {
		return CodedVarMap{}, false
	}
	if vm, ok = bindTerm(vm, pat.Object, t.Object); !ok {
		return CodedVarMap{}, false
	}
	return vm, true
}

func bindTerm(acc CodedVarMap, term CodedTerm, value CodedResource) (CodedVarMap, bool) {
	if !term.IsVariable() {
		if term.Resource() != value {
			return CodedVarMap{}, false
		}
		return acc, true
	}
	single := NewVarMap(CodedVarBinding{Name: term.Variable(), Value: value})
	return Merge(acc, single)
}

// Substitute replaces any variable present in vm with its mapped code;
// variables absent from vm are preserved.
func Substitute(vm CodedVarMap, term CodedTerm) CodedTerm {
	if !term.IsVariable() {
		return term
	}
	if val, ok := vm.Get(term.Variable()); ok {
		return ResTerm(val)
	}
	return term
}

func SubstitutePattern(vm CodedVarMap, pat CodedTriplePattern) CodedTriplePattern {
	return CodedTriplePattern{
		Subject:   Substitute(vm, pat.Subject),
		Predicate: Substitute(vm, pat.Predicate),
		Object:    Substitute(vm, pat.Object),
	}
}

// ExtractMap returns pat's variable set, each mapped to the zero
// CodedResource — a sentinel value, never meant to be read.
func ExtractMap(pat CodedTriplePattern) CodedVarMap {
	vm := NewVarMap()
	for _, term := range []CodedTerm{pat.Subject, pat.Predicate, pat.Object} {
		if term.IsVariable() {
			vm = vm.Set(term.Variable(), 0)
		}
	}
	return vm
}

// VarMapsDisjoint reports whether a and b share no variable names.
func VarMapsDisjoint(a, b CodedVarMap) bool {
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
