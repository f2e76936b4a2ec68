package gekko

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
)

type EntityId uint64
type componentId uint32
type set[T comparable] map[T]struct{}

// NoEntity marks an unset entity reference. Real entities start at 1.
const NoEntity EntityId = 0

// Ecs stores every component type in its own table keyed by entity.
// Table cells are pointers, so a component keeps its address for the
// lifetime of the entity even when it is written again.
type Ecs struct {
	entities map[EntityId]struct{}
	tables   map[componentId]map[EntityId]reflect.Value

	idGeneratorLock sync.Mutex
	entityIdCounter EntityId

	componentIdCounterLock sync.Mutex
	componentIdCounter     componentId
	componentTypeIdMap     map[reflect.Type]componentId
	componentIdTypeMap     map[componentId]reflect.Type
}

func MakeEcs() Ecs {
	return Ecs{
		entities:           make(map[EntityId]struct{}),
		tables:             make(map[componentId]map[EntityId]reflect.Value),
		entityIdCounter:    NoEntity,
		componentIdCounter: componentId(0),
		componentTypeIdMap: make(map[reflect.Type]componentId),
		componentIdTypeMap: make(map[componentId]reflect.Type),
	}
}

func (ecs *Ecs) addEntity(components ...any) EntityId {
	entityId := ecs.nextEntityId()
	return ecs.insertEntity(entityId, components...)
}

func (ecs *Ecs) insertEntity(entityId EntityId, components ...any) EntityId {
	ecs.entities[entityId] = struct{}{}
	for _, component := range components {
		ecs.writeComponent(entityId, component)
	}
	return entityId
}

func (ecs *Ecs) alive(entityId EntityId) bool {
	_, ok := ecs.entities[entityId]
	return ok
}

func (ecs *Ecs) removeEntity(entityId EntityId) {
	for _, table := range ecs.tables {
		delete(table, entityId)
	}
	delete(ecs.entities, entityId)
}

// addComponents writes components onto a live entity. Writes to removed
// entities are dropped.
func (ecs *Ecs) addComponents(entityId EntityId, components ...any) {
	if !ecs.alive(entityId) {
		return
	}
	for _, component := range components {
		ecs.writeComponent(entityId, component)
	}
}

func (ecs *Ecs) removeComponents(entityId EntityId, components ...any) {
	for _, c := range components {
		compType := componentType(c)
		if id, ok := ecs.lookupComponentId(compType); ok {
			delete(ecs.tables[id], entityId)
		}
	}
}

func (ecs *Ecs) writeComponent(entityId EntityId, component any) {
	compType := componentType(component)
	value := reflect.ValueOf(component)
	if value.Kind() == reflect.Pointer {
		value = value.Elem()
	}

	id := ecs.getComponentId(compType)
	table, ok := ecs.tables[id]
	if !ok {
		table = make(map[EntityId]reflect.Value)
		ecs.tables[id] = table
	}

	cell, ok := table[entityId]
	if !ok {
		cell = reflect.New(compType)
		table[entityId] = cell
	}
	cell.Elem().Set(value)
}

// component returns a pointer value to the stored component.
func (ecs *Ecs) component(entityId EntityId, compType reflect.Type) (reflect.Value, bool) {
	id, ok := ecs.lookupComponentId(compType)
	if !ok {
		return reflect.Value{}, false
	}
	cell, ok := ecs.tables[id][entityId]
	return cell, ok
}

func (ecs *Ecs) components(entityId EntityId) []any {
	ids := make([]componentId, 0, len(ecs.tables))
	for id, table := range ecs.tables {
		if _, ok := table[entityId]; ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	res := make([]any, 0, len(ids))
	for _, id := range ids {
		res = append(res, ecs.tables[id][entityId].Elem().Interface())
	}
	return res
}

// entitiesWith lists the holders of a component in ascending id order.
func (ecs *Ecs) entitiesWith(id componentId) []EntityId {
	table := ecs.tables[id]
	res := make([]EntityId, 0, len(table))
	for eid := range table {
		res = append(res, eid)
	}
	slices.Sort(res)
	return res
}

func (ecs *Ecs) allEntities() []EntityId {
	res := make([]EntityId, 0, len(ecs.entities))
	for eid := range ecs.entities {
		res = append(res, eid)
	}
	slices.Sort(res)
	return res
}

func (ecs *Ecs) nextEntityId() EntityId {
	ecs.idGeneratorLock.Lock()
	defer ecs.idGeneratorLock.Unlock()

	ecs.entityIdCounter += 1
	return ecs.entityIdCounter
}

func (ecs *Ecs) getComponentId(compType reflect.Type) componentId {
	ecs.componentIdCounterLock.Lock()
	defer ecs.componentIdCounterLock.Unlock()

	if id, ok := ecs.componentTypeIdMap[compType]; ok {
		return id
	}

	id := ecs.componentIdCounter
	ecs.componentIdCounter += 1

	ecs.componentTypeIdMap[compType] = id
	ecs.componentIdTypeMap[id] = compType

	return id
}

func (ecs *Ecs) lookupComponentId(compType reflect.Type) (componentId, bool) {
	ecs.componentIdCounterLock.Lock()
	defer ecs.componentIdCounterLock.Unlock()

	id, ok := ecs.componentTypeIdMap[compType]
	return id, ok
}

func componentType(component any) reflect.Type {
	compType := reflect.TypeOf(component)
	if compType == nil {
		panic("component should be a struct, got nil")
	}
	if compType.Kind() == reflect.Pointer {
		compType = compType.Elem()
	}
	if compType.Kind() != reflect.Struct {
		panic(fmt.Errorf("expected Component to be a struct or a pointer to a struct, got %s", compType.Kind()))
	}
	return compType
}
