package gekko

import (
	"reflect"
)

// Queries visit entities in ascending id order. Components passed as
// optionals may be missing on an entity; Map then hands the callback nil
// for them. Returning false from the callback stops the iteration.
type Query1[A any] struct{ ecs *Ecs }
type Query2[A, B any] struct{ ecs *Ecs }
type Query3[A, B, C any] struct{ ecs *Ecs }
type Query4[A, B, C, D any] struct{ ecs *Ecs }

func MakeQuery1[A any](cmd *Commands) Query1[A]             { return Query1[A]{ecs: cmd.app.ecs} }
func MakeQuery2[A, B any](cmd *Commands) Query2[A, B]       { return Query2[A, B]{ecs: cmd.app.ecs} }
func MakeQuery3[A, B, C any](cmd *Commands) Query3[A, B, C] { return Query3[A, B, C]{ecs: cmd.app.ecs} }
func MakeQuery4[A, B, C, D any](cmd *Commands) Query4[A, B, C, D] {
	return Query4[A, B, C, D]{ecs: cmd.app.ecs}
}

func (q Query1[A]) Map(m func(EntityId, *A) bool, optionals ...any) {
	id1 := identifyComponent[A](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, eid := range q.ecs.candidates(opt, id1) {
		a, ok := fetchComponent[A](q.ecs, id1, eid, opt)
		if !ok {
			continue
		}
		if !m(eid, a) {
			return
		}
	}
}

func (q Query2[A, B]) Map(m func(EntityId, *A, *B) bool, optionals ...any) {
	id1 := identifyComponent[A](q.ecs)
	id2 := identifyComponent[B](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, eid := range q.ecs.candidates(opt, id1, id2) {
		a, ok := fetchComponent[A](q.ecs, id1, eid, opt)
		if !ok {
			continue
		}
		b, ok := fetchComponent[B](q.ecs, id2, eid, opt)
		if !ok {
			continue
		}
		if !m(eid, a, b) {
			return
		}
	}
}

func (q Query3[A, B, C]) Map(m func(EntityId, *A, *B, *C) bool, optionals ...any) {
	id1 := identifyComponent[A](q.ecs)
	id2 := identifyComponent[B](q.ecs)
	id3 := identifyComponent[C](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, eid := range q.ecs.candidates(opt, id1, id2, id3) {
		a, ok := fetchComponent[A](q.ecs, id1, eid, opt)
		if !ok {
			continue
		}
		b, ok := fetchComponent[B](q.ecs, id2, eid, opt)
		if !ok {
			continue
		}
		c, ok := fetchComponent[C](q.ecs, id3, eid, opt)
		if !ok {
			continue
		}
		if !m(eid, a, b, c) {
			return
		}
	}
}

func (q Query4[A, B, C, D]) Map(m func(EntityId, *A, *B, *C, *D) bool, optionals ...any) {
	id1 := identifyComponent[A](q.ecs)
	id2 := identifyComponent[B](q.ecs)
	id3 := identifyComponent[C](q.ecs)
	id4 := identifyComponent[D](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, eid := range q.ecs.candidates(opt, id1, id2, id3, id4) {
		a, ok := fetchComponent[A](q.ecs, id1, eid, opt)
		if !ok {
			continue
		}
		b, ok := fetchComponent[B](q.ecs, id2, eid, opt)
		if !ok {
			continue
		}
		c, ok := fetchComponent[C](q.ecs, id3, eid, opt)
		if !ok {
			continue
		}
		d, ok := fetchComponent[D](q.ecs, id4, eid, opt)
		if !ok {
			continue
		}
		if !m(eid, a, b, c, d) {
			return
		}
	}
}

// candidates narrows the scan to holders of the first required component.
func (ecs *Ecs) candidates(opt set[componentId], ids ...componentId) []EntityId {
	for _, id := range ids {
		if _, optional := opt[id]; !optional {
			return ecs.entitiesWith(id)
		}
	}
	return ecs.allEntities()
}

func fetchComponent[T any](ecs *Ecs, id componentId, eid EntityId, opt set[componentId]) (*T, bool) {
	if cell, ok := ecs.tables[id][eid]; ok {
		return cell.Interface().(*T), true
	}
	if _, optional := opt[id]; optional {
		return nil, true
	}
	return nil, false
}

func identifyOptionals(ecs *Ecs, components ...any) set[componentId] {
	res := make(set[componentId], len(components))
	for _, c := range components {
		res[ecs.getComponentId(componentType(c))] = struct{}{}
	}
	return res
}

func identifyComponent[A any](ecs *Ecs) componentId {
	return ecs.getComponentId(reflect.TypeFor[A]())
}
