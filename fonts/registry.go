package fonts

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// ErrFontNotFound 表示注册表、内置字体与系统字体中都找不到该字体族。
var ErrFontNotFound = errors.New("找不到字体")

// DefaultDir 是缺省字体目录。
const DefaultDir = "res/Fonts"

// defaultFamilies 是缺省注册的字体族，文件相对字体目录解析。
var defaultFamilies = map[string]string{
	"站酷快乐体":                      "站酷快乐体2016修订版.ttf",
	"SourceHanSansCN-ExtraLight": "SourceHanSansCN-ExtraLight.otf",
	"SourceHanSansCN-Light":      "SourceHanSansCN-Light.otf",
	"SourceHanSansCN-Normal":     "SourceHanSansCN-Normal.otf",
	"SourceHanSansCN-Regular":    "SourceHanSansCN-Regular.otf",
	"SourceHanSansCN-Medium":     "SourceHanSansCN-Medium.otf",
	"SourceHanSansCN-Bold":       "SourceHanSansCN-Bold.otf",
	"SourceHanSansCN-Heavy":      "SourceHanSansCN-Heavy.otf",
}

// Source 是一份加载好的字体数据。
type Source struct {
	Family string
	Data   []byte
	Index  int    // 字体集合（ttc/otc）中的序号
	Origin string // builtin / 文件路径 / system:路径
}

// SystemFinder 按族名查找系统字体。
type SystemFinder interface {
	Find(family string) (Source, error)
}

// Registry 是字体族到字体文件的映射。启动时构造一次，之后只读。
type Registry struct {
	dir      string
	families map[string]string
	system   SystemFinder

	mu    sync.Mutex
	cache map[string]Source
}

// NewRegistry 创建空注册表，相对路径按 dir 解析。
func NewRegistry(dir string) *Registry {
	return &Registry{dir: dir, families: map[string]string{}, cache: map[string]Source{}}
}

// DefaultRegistry 创建带缺省注册的注册表。
func DefaultRegistry(dir string) *Registry {
	r := NewRegistry(dir)
	for family, file := range defaultFamilies {
		r.Register(family, file)
	}
	return r
}

// Register 注册字体族，后注册的覆盖先注册的。
func (r *Registry) Register(family, path string) {
	r.families[family] = path
}

// UseSystem 设置注册表未命中时使用的系统字体查找器。
func (r *Registry) UseSystem(s SystemFinder) { r.system = s }

// LoadFile 读取 {"family": "path"} 形式的注册表文件。
// 文件中的相对路径按文件所在目录解析。
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取字体注册表 %s 失败: %w", path, err)
	}
	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("解析字体注册表 %s 失败: %w", path, err)
	}
	base := filepath.Dir(path)
	for family, file := range entries {
		if !filepath.IsAbs(file) {
			file = filepath.Join(base, file)
		}
		r.Register(family, file)
	}
	return nil
}

// Path 返回字体族注册的文件路径。
func (r *Registry) Path(family string) (string, bool) {
	p, ok := r.families[family]
	if !ok {
		return "", false
	}
	if !filepath.IsAbs(p) && r.dir != "" {
		p = filepath.Join(r.dir, p)
	}
	return p, true
}

// Families 返回已注册的字体族，按名称排序。
func (r *Registry) Families() []string {
	names := make([]string, 0, len(r.families))
	for name := range r.families {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load 依次查找内置字体、注册表、系统字体。结果按族名缓存。
func (r *Registry) Load(family string) (Source, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if src, ok := r.cache[family]; ok {
		return src, nil
	}
	src, err := r.load(family)
	if err != nil {
		return Source{}, err
	}
	r.cache[family] = src
	return src, nil
}

func (r *Registry) load(family string) (Source, error) {
	if data, ok := Builtin(family); ok {
		return Source{Family: family, Data: data, Origin: "builtin"}, nil
	}
	var errs []error
	if path, ok := r.Path(family); ok {
		data, err := os.ReadFile(path)
		if err == nil {
			return Source{Family: family, Data: data, Origin: path}, nil
		}
		errs = append(errs, fmt.Errorf("读取字体文件 %s 失败: %w", path, err))
	}
	if r.system != nil {
		src, err := r.system.Find(family)
		if err == nil {
			return src, nil
		}
		errs = append(errs, err)
	}
	errs = append(errs, ErrFontNotFound)
	return Source{}, fmt.Errorf("加载字体 %s 失败: %w", family, errors.Join(errs...))
}
