// Package ecs 提供画布场景使用的实体-组件存储
//
// 组件以其动态类型为键保存，一个实体每种类型最多持有一个组件。
// 实体删除是延迟的：DestroyEntity 只做标记，RemoveMarkedEntities 才真正清理，
// 这样系统在遍历过程中销毁实体是安全的。
package ecs

import (
	"reflect"
	"sort"
)

// EntityID 是实体的唯一标识符，0 保留为无效ID
type EntityID uint64

// InvalidEntity 表示"没有实体"，例如根节点的父节点
const InvalidEntity EntityID = 0

// entityRecord 单个实体的组件表与删除标记
type entityRecord struct {
	components map[reflect.Type]any
	marked     bool
}

// EntityManager 管理所有实体和组件
type EntityManager struct {
	nextID   EntityID
	entities map[EntityID]*entityRecord
	// 按标记顺序排列的待删除实体，每个实体只出现一次
	pending []EntityID
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:   1,
		entities: make(map[EntityID]*entityRecord),
	}
}

// CreateEntity 创建新实体并返回唯一ID，ID 单调递增且不复用
func (em *EntityManager) CreateEntity() EntityID {
	id := em.nextID
	em.nextID++
	em.entities[id] = &entityRecord{components: make(map[reflect.Type]any)}
	return id
}

// Exists 检查实体是否存在（已标记删除但未清理的实体仍视为存在）
func (em *EntityManager) Exists(id EntityID) bool {
	_, ok := em.entities[id]
	return ok
}

// EntityCount 返回当前实体数量
func (em *EntityManager) EntityCount() int {
	return len(em.entities)
}

// DestroyEntity 标记实体待删除(不立即删除)
// 重复标记与未知实体都会被忽略
func (em *EntityManager) DestroyEntity(id EntityID) {
	rec, ok := em.entities[id]
	if !ok || rec.marked {
		return
	}
	rec.marked = true
	em.pending = append(em.pending, id)
}

// AddComponent 为实体添加组件，同类型组件会被替换
// 实体不存在时返回 false，不会隐式创建实体
func (em *EntityManager) AddComponent(id EntityID, component any) bool {
	rec, ok := em.entities[id]
	if !ok {
		return false
	}
	rec.components[reflect.TypeOf(component)] = component
	return true
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if rec, ok := em.entities[id]; ok {
		delete(rec.components, componentType)
	}
}

// GetComponent 获取实体的特定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (any, bool) {
	rec, ok := em.entities[id]
	if !ok {
		return nil, false
	}
	comp, found := rec.components[componentType]
	return comp, found
}

// HasComponent 检查实体是否拥有特定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	_, found := em.GetComponent(id, componentType)
	return found
}

// RemoveMarkedEntities 清理所有标记删除的实体
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.pending {
		delete(em.entities, id)
	}
	em.pending = em.pending[:0]
}

// GetEntitiesWith 查询拥有指定组件类型组合的所有实体，按ID升序返回
//
// ID 按创建顺序分配，因此结果也是创建顺序；
// 系统按这个顺序推进渐变，多个控制器的帧内处理顺序在各次运行间保持一致。
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)
	for id, rec := range em.entities {
		if rec.hasAll(componentTypes) {
			result = append(result, id)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func (rec *entityRecord) hasAll(types []reflect.Type) bool {
	for _, ct := range types {
		if _, found := rec.components[ct]; !found {
			return false
		}
	}
	return true
}
