// Package typegraph extracts type-reference dependencies and orders the
// types of one unit so that every type follows the types it depends on.
package typegraph

import (
	"fmt"
	"sort"
	"strings"

	oerrors "github.com/cienporcien/everest-core/internal/errors"
	"github.com/cienporcien/everest-core/internal/model"
)

// CycleError reports names that could not be ordered, either because they
// depend on each other or on a name the graph does not define.
type CycleError struct {
	Unit string

	// Names lists every unresolved name, undefined ones included.
	Names []string

	// Undefined lists the names depended on but not defined.
	Undefined []string
}

func (e *CycleError) Error() string {
	msg := fmt.Sprintf("cyclic type dependency between %s", strings.Join(e.Names, ", "))
	if len(e.Undefined) > 0 {
		msg += fmt.Sprintf(" (undefined: %s)", strings.Join(e.Undefined, ", "))
	}
	if e.Unit == "" {
		return msg
	}
	return fmt.Sprintf("type unit %s: %s", e.Unit, msg)
}

func (e *CycleError) Unwrap() error {
	return oerrors.ErrValidation
}

// Graph maps a type name to the set of local type names it depends on.
type Graph map[string]map[string]struct{}

// refCollector gathers references reachable from a type.
type refCollector struct {
	refs map[model.Reference]struct{}
}

func (c *refCollector) VisitNull(model.NullType) struct{}       { return struct{}{} }
func (c *refCollector) VisitBoolean(model.BooleanType) struct{} { return struct{}{} }
func (c *refCollector) VisitInteger(model.IntegerType) struct{} { return struct{}{} }
func (c *refCollector) VisitNumber(model.NumberType) struct{}   { return struct{}{} }
func (c *refCollector) VisitString(model.StringType) struct{}   { return struct{}{} }

func (c *refCollector) VisitArray(t *model.ArrayType) struct{} {
	return model.Visit[struct{}](t.Items, c)
}

func (c *refCollector) VisitObject(t *model.ObjectType) struct{} {
	for _, p := range t.Properties {
		model.Visit[struct{}](p.Type, c)
	}
	return struct{}{}
}

func (c *refCollector) VisitVariant(t *model.VariantType) struct{} {
	for _, m := range t.Members {
		model.Visit[struct{}](m, c)
	}
	return struct{}{}
}

func (c *refCollector) VisitReference(r model.Reference) struct{} {
	c.refs[r] = struct{}{}
	return struct{}{}
}

// Dependencies returns every reference reachable from t, sorted by unit and
// name.
func Dependencies(t model.Type) []model.Reference {
	if t == nil {
		return nil
	}
	c := &refCollector{refs: make(map[model.Reference]struct{})}
	model.Visit[struct{}](t, c)

	out := make([]model.Reference, 0, len(c.refs))
	for r := range c.refs {
		out = append(out, r)
	}
	sortReferences(out)
	return out
}

// UnitDependencies returns the references of every type in a unit, including
// local ones, sorted and deduplicated.
func UnitDependencies(unit *model.TypeUnit) []model.Reference {
	seen := make(map[model.Reference]struct{})
	for _, name := range unit.Names {
		for _, r := range Dependencies(unit.Types[name]) {
			seen[r] = struct{}{}
		}
	}
	out := make([]model.Reference, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sortReferences(out)
	return out
}

// ExternalUnits returns the distinct names of other units referenced from
// unit, sorted.
func ExternalUnits(unit *model.TypeUnit) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range UnitDependencies(unit) {
		if r.IsLocal || r.Unit == unit.Name || seen[r.Unit] {
			continue
		}
		seen[r.Unit] = true
		out = append(out, r.Unit)
	}
	sort.Strings(out)
	return out
}

// LocalGraph builds the dependency graph of a unit restricted to the unit's
// own types. Every type of the unit is a node, even without dependencies.
// Local dependencies on names the unit does not define are kept.
func LocalGraph(unit *model.TypeUnit) Graph {
	g := make(Graph, len(unit.Names))
	for _, name := range unit.Names {
		deps := make(map[string]struct{})
		for _, r := range Dependencies(unit.Types[name]) {
			if r.IsLocal || r.Unit == unit.Name {
				deps[r.Name] = struct{}{}
			}
		}
		g[name] = deps
	}
	return g
}

// TopologicalOrder orders the nodes of g so that every name follows its
// dependencies. Among names that are ready at the same step the
// lexicographically smallest goes first. A name that is not a node of g
// never becomes ready, so everything depending on it stays unresolved. A
// cycle or an undefined dependency yields a *CycleError naming every name
// left unresolved.
func TopologicalOrder(g Graph) ([]string, error) {
	pending := make(map[string]int, len(g))
	dependents := make(map[string][]string, len(g))
	undefined := make(map[string]struct{})
	for name, deps := range g {
		for dep := range deps {
			if _, ok := g[dep]; !ok {
				undefined[dep] = struct{}{}
			}
			dependents[dep] = append(dependents[dep], name)
		}
		pending[name] = len(deps)
	}

	var ready []string
	for name, count := range pending {
		if count == 0 {
			ready = append(ready, name)
		}
	}

	order := make([]string, 0, len(g))
	for len(ready) > 0 {
		sort.Strings(ready)
		name := ready[0]
		ready = ready[1:]
		order = append(order, name)
		delete(pending, name)

		for _, dependent := range dependents[name] {
			pending[dependent]--
			if pending[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
	}

	if len(pending) > 0 {
		names := make([]string, 0, len(pending)+len(undefined))
		var missing []string
		for name := range pending {
			names = append(names, name)
		}
		for name := range undefined {
			names = append(names, name)
			missing = append(missing, name)
		}
		sort.Strings(names)
		sort.Strings(missing)
		return nil, &CycleError{Names: names, Undefined: missing}
	}
	return order, nil
}

// OrderUnit returns the types of unit in dependency order.
func OrderUnit(unit *model.TypeUnit) ([]string, error) {
	order, err := TopologicalOrder(LocalGraph(unit))
	if err != nil {
		if cycleErr, ok := err.(*CycleError); ok {
			cycleErr.Unit = unit.Name
		}
		return nil, err
	}
	return order, nil
}

func sortReferences(refs []model.Reference) {
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Unit != refs[j].Unit {
			return refs[i].Unit < refs[j].Unit
		}
		if refs[i].Name != refs[j].Name {
			return refs[i].Name < refs[j].Name
		}
		return !refs[i].IsLocal && refs[j].IsLocal
	})
}
