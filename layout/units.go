package layout

// 排版常量。画布、字号、坐标统一以像素为单位。
const (
	LineHeightFactor   = 1.2   // 行高 = 字号 × 1.2
	MinAutoFitSize     = 8.0   // AutoFit 字号下限
	AutoFitPrecision   = 0.5   // 二分区间小于该值时停止
	EstimatedCharWidth = 0.6   // 溢出估算时单字宽度 = 字号 × 0.6
	LongTextThreshold  = 50    // 超过该字符数视为长文本
	Ellipsis           = "..." // 截断后缀
)

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// PxToPt 把像素字号换算成 canvas 字体面需要的 pt。
// canvas 以 1 单位 = 1mm 建模，我们按 1mm = 1px 栅格化，所以 px 字号等于 mm 字号。
func PxToPt(px float64) float64 { return px * MmToPt }

// LineHeight 返回固定行高。
func LineHeight(fontSize float64) float64 { return fontSize * LineHeightFactor }

// Baseline 返回第 i 行的基线 y 坐标（不含绘制偏移）。
func Baseline(y, fontSize float64, i int) float64 {
	return y + fontSize + float64(i)*LineHeight(fontSize)
}
