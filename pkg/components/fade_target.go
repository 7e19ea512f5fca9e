package components

import "github.com/decker502/canvasfade/pkg/ecs"

// ActivityChecker 查询节点是否在层级中激活（由 scene.Graph 实现）
type ActivityChecker interface {
	ActiveInHierarchy(id ecs.EntityID) bool
}

// FadeTarget 包装一个可淡入淡出的图形元素
//
// 创建时记录元素的基准颜色与基准透明度；图形本身归场景树所有。
// Active 是缓存值，只在 RefreshActive 时重新计算，调用方需要先刷新再使用。
type FadeTarget struct {
	// Active 最近一次 RefreshActive 的结果
	Active bool

	element   ecs.EntityID
	graphic   *GraphicComponent
	baseColor Color
	baseAlpha float64
}

// NewFadeTarget 包装实体上的图形，记录其当前颜色为基准
func NewFadeTarget(element ecs.EntityID, graphic *GraphicComponent) *FadeTarget {
	return &FadeTarget{
		element:   element,
		graphic:   graphic,
		baseColor: graphic.Color,
		baseAlpha: graphic.Color.A,
	}
}

// Element 返回被包装的实体
func (t *FadeTarget) Element() ecs.EntityID { return t.element }

// Alpha 返回元素当前透明度
func (t *FadeTarget) Alpha() float64 { return t.graphic.Color.A }

// SetFullyOpaque 恢复基准颜色（透明度回到基准值，不一定是 1.0）
func (t *FadeTarget) SetFullyOpaque() {
	t.graphic.Color = t.baseColor
}

// SetFullyTransparent 保留基准 RGB，透明度置 0
func (t *FadeTarget) SetFullyTransparent() {
	t.graphic.Color = t.baseColor.WithAlpha(0)
}

// Step 推进一帧
//
// 在元素"当前"透明度上累加 baseAlpha*dt/totalDuration，
// 基准透明度越低变化越慢。totalDuration 为负时表示淡出。
func (t *FadeTarget) Step(totalDuration, dt float64) {
	t.graphic.Color = t.baseColor.WithAlpha(t.graphic.Color.A + (t.baseAlpha*dt)/totalDuration)
}

// RefreshActive 重新计算并缓存元素是否可见：节点在层级中激活且图形启用
func (t *FadeTarget) RefreshActive(checker ActivityChecker) bool {
	t.Active = checker.ActiveInHierarchy(t.element) && t.graphic.Enabled
	return t.Active
}

// Wraps 判断是否包装了指定实体
func (t *FadeTarget) Wraps(element ecs.EntityID) bool {
	return t.element == element
}

// SameElement 两个包装是否指向同一个元素
func SameElement(a, b *FadeTarget) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.element == b.element
}
