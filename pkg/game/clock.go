package game

// Clock 游戏时钟
//
// 玩法逻辑使用缩放后的时间（暂停时为 0），UI 淡入淡出使用未缩放时间，
// 因此暂停期间菜单仍能正常淡入淡出。
type Clock struct {
	timeScale float64
	unscaled  float64
	scaled    float64
	total     float64
}

// NewClock 创建时间缩放为 1 的时钟
func NewClock() *Clock {
	return &Clock{timeScale: 1}
}

// SetTimeScale 设置时间缩放，负数按 0 处理
func (c *Clock) SetTimeScale(scale float64) {
	if scale < 0 {
		scale = 0
	}
	c.timeScale = scale
}

// TimeScale 当前时间缩放
func (c *Clock) TimeScale() float64 {
	return c.timeScale
}

// Paused 时间缩放为 0 时视为暂停
func (c *Clock) Paused() bool {
	return c.timeScale == 0
}

// Tick 推进一帧
func (c *Clock) Tick(unscaledDelta float64) {
	c.unscaled = unscaledDelta
	c.scaled = unscaledDelta * c.timeScale
	c.total += c.scaled
}

// UnscaledDelta 本帧真实时间间隔
func (c *Clock) UnscaledDelta() float64 {
	return c.unscaled
}

// Delta 本帧缩放后的时间间隔
func (c *Clock) Delta() float64 {
	return c.scaled
}

// Time 累计的缩放时间
func (c *Clock) Time() float64 {
	return c.total
}
