package gekko

import "reflect"

type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

// Exit stops App.Run after the current frame.
func (cmd *Commands) Exit() {
	cmd.app.exit = true
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}

func (cmd *Commands) AddEntity(components ...any) EntityId {
	eid := cmd.app.ecs.nextEntityId()
	cmd.app.pendingAdditions = append(cmd.app.pendingAdditions, pendingAdd{
		eid:        eid,
		components: components,
	})
	return eid
}

func (cmd *Commands) AddComponents(entityId EntityId, components ...any) {
	cmd.app.pendingCompAdds = append(cmd.app.pendingCompAdds, pendingCompAdd{
		eid:        entityId,
		components: components,
	})
}

func (cmd *Commands) RemoveComponents(entityId EntityId, components ...any) {
	cmd.app.pendingCompRemovals = append(cmd.app.pendingCompRemovals, pendingCompRemoval{
		eid:        entityId,
		components: components,
	})
}

func (cmd *Commands) RemoveEntity(entityId EntityId) {
	cmd.app.pendingRemovals = append(cmd.app.pendingRemovals, entityId)
}

func (cmd *Commands) Exists(entityId EntityId) bool {
	return entityId != NoEntity && cmd.app.ecs.alive(entityId)
}

// GetAllComponents returns copies of the entity's components.
func (cmd *Commands) GetAllComponents(entityId EntityId) []any {
	return cmd.app.ecs.components(entityId)
}

// GetComponent returns the stored component, not a copy. Writes through the
// pointer are visible to every later query.
func GetComponent[T any](cmd *Commands, entityId EntityId) (*T, bool) {
	cell, ok := cmd.app.ecs.component(entityId, reflect.TypeFor[T]())
	if !ok {
		return nil, false
	}
	return cell.Interface().(*T), true
}

func HasComponent[T any](cmd *Commands, entityId EntityId) bool {
	_, ok := GetComponent[T](cmd, entityId)
	return ok
}

func GetResource[T any](cmd *Commands) (*T, bool) {
	res, ok := cmd.app.resources[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	return res.(*T), true
}
