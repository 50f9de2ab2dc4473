package layout

import (
	"encoding/json"
	"os"
)

// Record 是一个文本元素最终排版的调试记录。
type Record struct {
	ID       string   `json:"id"`
	Strategy Strategy `json:"strategy"`
	RichText string   `json:"richText,omitempty"`
	Fallback bool     `json:"fallback,omitempty"`
	FontSize float64  `json:"fontSize"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Lines    []Line   `json:"lines,omitempty"`
	Features Features `json:"features"`
}

// NewRecord 从排版结果生成调试记录。
func NewRecord(id string, b *Block, f Features) Record {
	r := Record{ID: id, Features: f}
	if b == nil {
		return r
	}
	r.Strategy = b.Strategy
	r.FontSize = b.FontSize
	r.Width, r.Height = b.Size()
	r.Lines = b.Lines
	return r
}

// WriteDebugJSON 将排版记录输出为 JSON，便于调试或可视化。
func WriteDebugJSON(records []Record, path string) error {
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
