// Package scene 在 ecs 实体之上维护画布场景树
//
// 节点的父子关系与激活状态保存在 components.NodeComponent 中，
// Graph 负责保持它们一致，并在节点层级激活状态变化时通知监听者
// （相当于引擎的 OnEnable / OnDisable）。
package scene

import (
	"log"

	"github.com/decker502/canvasfade/pkg/components"
	"github.com/decker502/canvasfade/pkg/ecs"
)

// Listener 节点激活状态变化回调
type Listener func(id ecs.EntityID)

// Graph 场景树
type Graph struct {
	entityManager *ecs.EntityManager
	roots         []ecs.EntityID

	onActivated   []Listener
	onDeactivated []Listener
}

// NewGraph 创建场景树
func NewGraph(em *ecs.EntityManager) *Graph {
	return &Graph{
		entityManager: em,
		roots:         make([]ecs.EntityID, 0),
	}
}

// EntityManager 返回底层实体管理器
func (g *Graph) EntityManager() *ecs.EntityManager {
	return g.entityManager
}

// OnActivated 注册"节点进入层级激活状态"回调
func (g *Graph) OnActivated(fn Listener) {
	g.onActivated = append(g.onActivated, fn)
}

// OnDeactivated 注册"节点离开层级激活状态"回调
func (g *Graph) OnDeactivated(fn Listener) {
	g.onDeactivated = append(g.onDeactivated, fn)
}

// CreateNode 创建激活的节点并挂到 parent 下（parent 为 InvalidEntity 时作为根节点）
//
// 创建节点不会触发激活回调；构建完成后调用 AnnounceActive。
func (g *Graph) CreateNode(name string, parent ecs.EntityID) ecs.EntityID {
	id := g.entityManager.CreateEntity()
	g.entityManager.AddComponent(id, &components.NodeComponent{
		Name:       name,
		Parent:     ecs.InvalidEntity,
		Children:   make([]ecs.EntityID, 0),
		ActiveSelf: true,
	})
	g.attach(id, parent)
	return id
}

// node 获取节点组件
func (g *Graph) node(id ecs.EntityID) *components.NodeComponent {
	n, ok := ecs.GetComponent[*components.NodeComponent](g.entityManager, id)
	if !ok {
		return nil
	}
	return n
}

// IsNode 实体是否为场景树节点
func (g *Graph) IsNode(id ecs.EntityID) bool {
	return g.node(id) != nil
}

// Name 返回节点名称
func (g *Graph) Name(id ecs.EntityID) string {
	if n := g.node(id); n != nil {
		return n.Name
	}
	return ""
}

// Parent 返回父节点，根节点或非节点返回 InvalidEntity
func (g *Graph) Parent(id ecs.EntityID) ecs.EntityID {
	if n := g.node(id); n != nil {
		return n.Parent
	}
	return ecs.InvalidEntity
}

// Children 返回子节点（只读）
func (g *Graph) Children(id ecs.EntityID) []ecs.EntityID {
	if n := g.node(id); n != nil {
		return n.Children
	}
	return nil
}

// Roots 返回所有根节点（只读）
func (g *Graph) Roots() []ecs.EntityID {
	return g.roots
}

// SetParent 把节点移动到新的父节点下（追加到末尾）
// 会形成环的移动被忽略；移动不触发激活回调
func (g *Graph) SetParent(id, parent ecs.EntityID) {
	n := g.node(id)
	if n == nil || n.Parent == parent {
		return
	}
	if parent != ecs.InvalidEntity && (parent == id || g.IsAncestor(id, parent)) {
		log.Printf("[Graph] Warning: refusing to parent %q under its own descendant", n.Name)
		return
	}
	g.detach(id)
	g.attach(id, parent)
}

func (g *Graph) attach(id, parent ecs.EntityID) {
	n := g.node(id)
	if p := g.node(parent); p != nil {
		n.Parent = parent
		p.Children = append(p.Children, id)
		return
	}
	n.Parent = ecs.InvalidEntity
	g.roots = append(g.roots, id)
}

func (g *Graph) detach(id ecs.EntityID) {
	n := g.node(id)
	if p := g.node(n.Parent); p != nil {
		p.Children = removeID(p.Children, id)
	} else {
		g.roots = removeID(g.roots, id)
	}
	n.Parent = ecs.InvalidEntity
}

func removeID(ids []ecs.EntityID, id ecs.EntityID) []ecs.EntityID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// IsAncestor ancestor 是否为 id 的祖先（不含自身）
func (g *Graph) IsAncestor(ancestor, id ecs.EntityID) bool {
	for p := g.Parent(id); p != ecs.InvalidEntity; p = g.Parent(p) {
		if p == ancestor {
			return true
		}
	}
	return false
}

// FindByName 深度优先查找第一个同名节点
func (g *Graph) FindByName(name string) (ecs.EntityID, bool) {
	for _, root := range g.roots {
		for _, id := range g.Descendants(root, true) {
			if g.Name(id) == name {
				return id, true
			}
		}
	}
	return ecs.InvalidEntity, false
}

// ActiveSelf 节点自身的激活标志
func (g *Graph) ActiveSelf(id ecs.EntityID) bool {
	if n := g.node(id); n != nil {
		return n.ActiveSelf
	}
	return false
}

// ActiveInHierarchy 节点及其所有祖先都激活
func (g *Graph) ActiveInHierarchy(id ecs.EntityID) bool {
	n := g.node(id)
	if n == nil {
		return false
	}
	for n != nil {
		if !n.ActiveSelf {
			return false
		}
		n = g.node(n.Parent)
	}
	return true
}

// SetActive 设置节点自身激活标志
//
// 子树中层级激活状态发生变化的节点会按深度优先顺序触发回调。
func (g *Graph) SetActive(id ecs.EntityID, active bool) {
	n := g.node(id)
	if n == nil || n.ActiveSelf == active {
		return
	}

	parentActive := n.Parent == ecs.InvalidEntity || g.ActiveInHierarchy(n.Parent)
	n.ActiveSelf = active
	if !parentActive {
		// 祖先未激活，子树的层级状态不变
		return
	}

	if active {
		g.emit(id, g.onActivated)
	} else {
		g.emit(id, g.onDeactivated)
	}
}

// AnnounceActive 为子树中所有已处于层级激活状态的节点触发激活回调
// 用于场景首次加载
func (g *Graph) AnnounceActive(id ecs.EntityID) {
	if !g.ActiveInHierarchy(id) {
		return
	}
	g.emit(id, g.onActivated)
}

// emit 从 id 开始回调，并递归到自身激活的子节点（跳过未激活的分支）
// id 本身总是回调：停用时它的 ActiveSelf 已经被清除
func (g *Graph) emit(id ecs.EntityID, listeners []Listener) {
	if len(listeners) == 0 || g.node(id) == nil {
		return
	}
	for _, fn := range listeners {
		fn(id)
	}
	// 回调可能修改子节点列表，先复制
	children := append([]ecs.EntityID(nil), g.Children(id)...)
	for _, child := range children {
		if g.ActiveSelf(child) {
			g.emit(child, listeners)
		}
	}
}

// Descendants 深度优先前序遍历子树（包含未激活节点）
func (g *Graph) Descendants(id ecs.EntityID, includeSelf bool) []ecs.EntityID {
	result := make([]ecs.EntityID, 0)
	if g.node(id) == nil {
		return result
	}
	var walk func(ecs.EntityID)
	walk = func(cur ecs.EntityID) {
		result = append(result, cur)
		for _, child := range g.Children(cur) {
			walk(child)
		}
	}
	if includeSelf {
		walk(id)
	} else {
		for _, child := range g.Children(id) {
			walk(child)
		}
	}
	return result
}

// DestroySubtree 标记整棵子树待删除并从树上摘下
// 实际删除发生在 EntityManager.RemoveMarkedEntities
func (g *Graph) DestroySubtree(id ecs.EntityID) {
	if g.node(id) == nil {
		return
	}
	for _, d := range g.Descendants(id, true) {
		g.entityManager.DestroyEntity(d)
	}
	g.detach(id)
}

// ComponentsInChildren 深度优先收集子树（含自身、含未激活节点）中拥有组件 T 的实体
func ComponentsInChildren[T any](g *Graph, id ecs.EntityID, includeSelf bool) []ecs.EntityID {
	result := make([]ecs.EntityID, 0)
	for _, d := range g.Descendants(id, includeSelf) {
		if ecs.HasComponent[T](g.entityManager, d) {
			result = append(result, d)
		}
	}
	return result
}

// FindInParents 从自身开始向上查找第一个拥有组件 T 的节点
func FindInParents[T any](g *Graph, id ecs.EntityID) (ecs.EntityID, T, bool) {
	for cur := id; cur != ecs.InvalidEntity; cur = g.Parent(cur) {
		if comp, ok := ecs.GetComponent[T](g.entityManager, cur); ok {
			return cur, comp, true
		}
		if !g.IsNode(cur) {
			break
		}
	}
	var zero T
	return ecs.InvalidEntity, zero, false
}
