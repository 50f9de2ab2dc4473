package logger

import (
	"io"
	"log"
	"os"
)

// ProgressLogger 记录渲染的主要步骤。
var ProgressLogger = log.New(os.Stdout, "poster.progress: ", log.LstdFlags)

// WarningLogger 记录每一个非致命问题，比如字体回退、图片加载失败、段落整形回退。
var WarningLogger = log.New(os.Stderr, "poster.warning: ", log.Lmsgprefix)

// Quiet 关闭进度日志，警告照常输出。
func Quiet() { ProgressLogger.SetOutput(io.Discard) }
