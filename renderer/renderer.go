package renderer

import (
	"fmt"

	"github.com/ByLCY/poster/layout"
	"github.com/ByLCY/poster/logger"
	"github.com/ByLCY/poster/protocol"
)

// Renderer 把一份协议渲染为输出文件。
// 返回的 Report 在成功时也可能带有非致命警告。
type Renderer interface {
	Render(p *protocol.RenderProtocol) (*Report, error)
}

// Stats 统计各策略的使用次数。
type Stats struct {
	Simple        int `json:"simple"`
	Advanced      int `json:"advanced"`
	RichText      int `json:"richText"`
	Fallbacks     int `json:"fallbacks"`
	Images        int `json:"images"`
	SkippedImages int `json:"skippedImages"`
	SkippedTexts  int `json:"skippedTexts"`
}

func (s Stats) String() string {
	return fmt.Sprintf("简单布局 %d，高级布局 %d，富文本 %d，回退 %d，图片 %d（跳过 %d），跳过文本 %d",
		s.Simple, s.Advanced, s.RichText, s.Fallbacks, s.Images, s.SkippedImages, s.SkippedTexts)
}

// Report 是一次渲染的结果摘要。
type Report struct {
	Output   string          `json:"output"`
	Width    int             `json:"width"`
	Height   int             `json:"height"`
	Warnings []string        `json:"warnings"`
	Stats    Stats           `json:"stats"`
	Layouts  []layout.Record `json:"layouts,omitempty"`
}

// Warnf 记录一条非致命警告，同时写入 WarningLogger。
func (r *Report) Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.Warnings = append(r.Warnings, msg)
	logger.WarningLogger.Print(msg)
}
