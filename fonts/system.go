package fonts

import (
	"fmt"
	"os"

	"github.com/go-text/typesetting/fontscan"
)

// System 通过 go-text 的 fontscan 查找系统已安装的字体。
type System struct {
	fm *fontscan.FontMap
}

var _ SystemFinder = (*System)(nil)

// NewSystem 扫描系统字体目录。cacheDir 为空时使用用户缓存目录。
// 首次扫描较慢，索引会写入缓存供后续运行复用。
func NewSystem(logger fontscan.Logger, cacheDir string) (*System, error) {
	fm := fontscan.NewFontMap(logger)
	if err := fm.UseSystemFonts(cacheDir); err != nil {
		return nil, fmt.Errorf("扫描系统字体失败: %w", err)
	}
	return &System{fm: fm}, nil
}

// Find 实现 SystemFinder。
func (s *System) Find(family string) (Source, error) {
	loc, ok := s.fm.FindSystemFont(family)
	if !ok {
		return Source{}, fmt.Errorf("系统字体 %s: %w", family, ErrFontNotFound)
	}
	data, err := os.ReadFile(loc.File)
	if err != nil {
		return Source{}, fmt.Errorf("读取系统字体 %s 失败: %w", loc.File, err)
	}
	return Source{Family: family, Data: data, Index: int(loc.Index), Origin: "system:" + loc.File}, nil
}
