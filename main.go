package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ByLCY/poster/binding"
	"github.com/ByLCY/poster/fonts"
	"github.com/ByLCY/poster/layout"
	"github.com/ByLCY/poster/logger"
	"github.com/ByLCY/poster/protocol"
	"github.com/ByLCY/poster/renderer"
	canvasrenderer "github.com/ByLCY/poster/renderer/canvas"
)

func main() {
	input := flag.String("in", "examples/poster.json", "协议 JSON 文件路径")
	output := flag.String("out", "", "输出路径，覆盖协议中的 output.filename")
	dataArg := flag.String("data", "", "绑定到文本内容的 JSON 数据文件，也可以直接写 JSON")
	fontsFile := flag.String("fonts", "", "字体注册表 JSON（{\"family\": \"path\"}）")
	fontDir := flag.String("font-dir", fonts.DefaultDir, "缺省字体注册表的字体目录")
	strategy := flag.String("strategy", "auto", "布局策略：auto、simple、advanced")
	debug := flag.Bool("debug", false, "为有宽高的文本绘制调试框")
	debugLayout := flag.String("debug-layout", "", "布局调试 JSON 输出路径")
	systemFonts := flag.Bool("system-fonts", false, "注册表未命中时查找系统字体")
	strict := flag.Bool("strict-display-mode", false, "WordWrap 一律使用简单布局")
	initPath := flag.String("init", "", "写出示例协议到该路径后退出")
	quiet := flag.Bool("quiet", false, "不输出进度日志")
	flag.Parse()

	if *quiet {
		logger.Quiet()
	}
	if *initPath != "" {
		if err := writeExample(*initPath); err != nil {
			log.Fatalf("写出示例协议失败: %v", err)
		}
		fmt.Printf("已写出示例协议：%s\n", *initPath)
		return
	}

	data, err := loadData(*dataArg)
	if err != nil {
		log.Fatalf("解析 data JSON 失败: %v", err)
	}
	force, err := layout.ParseStrategy(*strategy)
	if err != nil {
		log.Fatal(err)
	}

	reg := fonts.DefaultRegistry(*fontDir)
	if *fontsFile != "" {
		if err := reg.LoadFile(*fontsFile); err != nil {
			log.Fatal(err)
		}
	}
	if *systemFonts {
		sys, err := fonts.NewSystem(logger.WarningLogger, "")
		if err != nil {
			logger.WarningLogger.Printf("系统字体不可用: %v", err)
		} else {
			reg.UseSystem(sys)
		}
	}

	backend := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{
		BaseDir: filepath.Dir(*input),
		Fonts:   reg,
	})
	e := renderer.NewEngine(backend, renderer.Options{
		Options: layout.Options{Force: force, StrictDisplayMode: *strict},
		Debug:   *debug,
		Output:  *output,
	})
	rep, err := run(*input, *debugLayout, data, e)
	if err != nil {
		log.Fatalf("生成海报失败: %v", err)
	}
	fmt.Printf("已生成海报：%s（%s，警告 %d 条）\n", rep.Output, rep.Stats, len(rep.Warnings))
}

// run 串联解析、渲染与调试输出。
func run(inputPath, debugPath string, data any, r renderer.Renderer) (*renderer.Report, error) {
	if r == nil {
		return nil, fmt.Errorf("renderer 不能为空")
	}
	p, err := protocol.Load(inputPath, protocol.Options{Data: data})
	if err != nil {
		return nil, fmt.Errorf("解析协议失败: %w", err)
	}
	logger.ProgressLogger.Printf("已解析 %s：画布 %dx%d，图片 %d，文本 %d",
		inputPath, p.Canvas.Width, p.Canvas.Height, len(p.Images), len(p.Texts))

	rep, err := r.Render(p)
	if err != nil {
		return rep, fmt.Errorf("渲染失败: %w", err)
	}
	if debugPath != "" {
		if err := writeDebug(rep.Layouts, debugPath); err != nil {
			return rep, err
		}
	}
	return rep, nil
}

func writeDebug(records []layout.Record, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(records, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

// loadData 接受文件路径或内联 JSON。
func loadData(arg string) (any, error) {
	if arg == "" {
		return nil, nil
	}
	if raw := bytes.TrimSpace([]byte(arg)); len(raw) > 0 && (raw[0] == '{' || raw[0] == '[') {
		return binding.Decode(raw)
	}
	return binding.LoadFile(arg)
}

func writeExample(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(protocol.ExampleJSON()), 0o644)
}
