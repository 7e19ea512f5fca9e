// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerTracker 统一处理鼠标和触摸的释放事件
//
// 触摸释放那一帧已经读不到触摸位置，所以每帧记录最后一次触摸位置。
type PointerTracker struct {
	lastTouchX, lastTouchY int
	touching               bool
}

// PointerSample 一帧的原始指针输入
type PointerSample struct {
	Touches       [][2]int
	TouchReleased bool
	MouseReleased bool
	MouseX        int
	MouseY        int
}

// Poll 读取本帧输入，返回是否发生释放以及释放位置
func (p *PointerTracker) Poll() (bool, int, int) {
	sample := PointerSample{
		TouchReleased: len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0,
		MouseReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
	for _, id := range ebiten.AppendTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		sample.Touches = append(sample.Touches, [2]int{x, y})
	}
	sample.MouseX, sample.MouseY = ebiten.CursorPosition()
	return p.Feed(sample)
}

// Feed 处理一帧输入；触摸优先于鼠标
func (p *PointerTracker) Feed(s PointerSample) (bool, int, int) {
	if len(s.Touches) > 0 {
		p.lastTouchX, p.lastTouchY = s.Touches[0][0], s.Touches[0][1]
		p.touching = true
	}

	if s.TouchReleased && p.touching {
		if len(s.Touches) == 0 {
			p.touching = false
		}
		return true, p.lastTouchX, p.lastTouchY
	}
	if s.MouseReleased {
		return true, s.MouseX, s.MouseY
	}
	return false, 0, 0
}
