package components

// FadePhase 淡入淡出阶段
type FadePhase int

const (
	// FadeIdle 没有进行中的渐变
	FadeIdle FadePhase = iota
	// FadingIn 正在淡入
	FadingIn
	// FadingOut 正在淡出
	FadingOut
)

// String 返回阶段名称（日志用）
func (p FadePhase) String() string {
	switch p {
	case FadingIn:
		return "FadingIn"
	case FadingOut:
		return "FadingOut"
	default:
		return "Idle"
	}
}

// FadeTween 由外部逐帧推进的渐变状态机
//
// 每个控制器只有一个 FadeTween，新的 Start 直接覆盖进行中的渐变。
type FadeTween struct {
	Phase    FadePhase
	Duration float64
	Elapsed  float64
}

// Start 开始新的渐变，覆盖进行中的渐变
func (t *FadeTween) Start(phase FadePhase, duration float64) {
	t.Phase = phase
	t.Duration = duration
	t.Elapsed = 0
}

// Stop 回到空闲状态
func (t *FadeTween) Stop() {
	t.Phase = FadeIdle
	t.Duration = 0
	t.Elapsed = 0
}

// Active 是否有进行中的渐变
func (t *FadeTween) Active() bool {
	return t.Phase != FadeIdle
}

// Remaining 剩余时间（秒），可能为负
func (t *FadeTween) Remaining() float64 {
	return t.Duration - t.Elapsed
}

// Advance 推进 dt 秒
func (t *FadeTween) Advance(dt float64) {
	if t.Phase == FadeIdle {
		return
	}
	t.Elapsed += dt
}

// Finished 渐变进行中且时间已用完
func (t *FadeTween) Finished() bool {
	return t.Phase != FadeIdle && t.Remaining() <= 0
}

// Direction 淡入为 +1，淡出为 -1，空闲为 0
func (t *FadeTween) Direction() float64 {
	switch t.Phase {
	case FadingIn:
		return 1
	case FadingOut:
		return -1
	default:
		return 0
	}
}
