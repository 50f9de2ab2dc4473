package protocol

import "github.com/ByLCY/poster/colors"

// 缺省值。
const (
	DefaultCanvasWidth  = 1242
	DefaultCanvasHeight = 1660
	DefaultBackground   = "#FFFFFF"
	DefaultFontFamily   = "Arial"
	DefaultFontSize     = 12.0
	DefaultFormat       = "png"
	DefaultFilename     = "output.png"
	DefaultQuality      = 100
)

// DefaultTransform 返回无缩放、不透明的变换。
func DefaultTransform() Transform {
	return Transform{ScaleX: 1, ScaleY: 1, Opacity: 1}
}

// DefaultTextStyle 返回文本元素的基础样式。
func DefaultTextStyle() TextStyle {
	return TextStyle{
		FontFamily:  DefaultFontFamily,
		FontSize:    DefaultFontSize,
		FillColor:   colors.Black,
		StrokeColor: colors.Black,
		Shadow:      Shadow{Color: colors.Black},
		DisplayMode: WordWrap,
	}
}

// DefaultCanvas 返回 1242×1660 白底画布。
func DefaultCanvas() CanvasConfig {
	return CanvasConfig{
		Width:      DefaultCanvasWidth,
		Height:     DefaultCanvasHeight,
		Background: colors.Parse(DefaultBackground),
	}
}

// DefaultOutput 返回 output.png。
func DefaultOutput() OutputConfig {
	return OutputConfig{Format: DefaultFormat, Filename: DefaultFilename, Quality: DefaultQuality}
}
