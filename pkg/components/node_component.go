package components

import "github.com/decker502/canvasfade/pkg/ecs"

// NodeComponent 场景树节点
//
// 场景树由 scene.Graph 维护，不要直接修改 Parent / Children，
// 否则父子关系会不一致。
type NodeComponent struct {
	// Name 节点名称（配置中唯一，用于按名查找）
	Name string
	// Parent 父节点，根节点为 ecs.InvalidEntity
	Parent ecs.EntityID
	// Children 有序子节点列表（深度优先遍历顺序即绘制顺序）
	Children []ecs.EntityID
	// ActiveSelf 节点自身的激活标志；是否在层级中激活还取决于所有祖先
	ActiveSelf bool
}
