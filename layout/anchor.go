package layout

import (
	"github.com/tdewolff/canvas"

	"github.com/ByLCY/poster/protocol"
)

// Anchor 返回围绕 (X, Y) 的缩放与旋转：平移到锚点、缩放、旋转、再平移回去。
// 坐标系 y 轴向下，正角度为顺时针。锚点本身在变换前后位置不变。
func Anchor(t protocol.Transform) canvas.Matrix {
	return canvas.Identity.
		Translate(t.X, t.Y).
		Scale(t.ScaleX, t.ScaleY).
		Rotate(t.Rotation).
		Translate(-t.X, -t.Y)
}

// Local 返回以 (X, Y) 为原点的局部坐标系，富文本在其中从 (0, 0) 开始排列。
func Local(t protocol.Transform) canvas.Matrix {
	return canvas.Identity.
		Translate(t.X, t.Y).
		Scale(t.ScaleX, t.ScaleY).
		Rotate(t.Rotation)
}

// IsIdentity 报告变换是否不改变几何。
func IsIdentity(t protocol.Transform) bool {
	return t.ScaleX == 1 && t.ScaleY == 1 && t.Rotation == 0
}
