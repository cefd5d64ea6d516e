package generator

import (
	"fmt"
	"strings"
)

// EventKind 标识进度事件的种类。
type EventKind int

const (
	EventLoaded EventKind = iota
	EventCopyStarted
	EventCopyWritten
	EventCopySkipped
	EventCopyFailed
	EventFinished
)

// Event 是一次进度通知，Message 为可直接展示的文字。
type Event struct {
	Kind    EventKind
	Message string
	Copy    int
	Total   int
	Path    string
	Err     error
}

func (e Event) String() string { return e.Message }

// Warning 报告事件是否应以警告级别展示。
func (e Event) Warning() bool { return e.Kind == EventCopySkipped }

// ProgressFunc 接收进度事件：加载完成、每份开始、每份完成或失败、全部完成。
type ProgressFunc func(Event)

func (g *Generator) emit(ev Event) {
	if g.progress != nil {
		g.progress(ev)
	}
}

func loadedEvent(n int) Event {
	return Event{Kind: EventLoaded, Total: n, Message: fmt.Sprintf("已加载 %d 个词汇", n)}
}

func startedEvent(i, total int) Event {
	return Event{Kind: EventCopyStarted, Copy: i, Total: total, Message: fmt.Sprintf("正在生成第 %d/%d 份...", i, total)}
}

func writtenEvent(i, total int, path string) Event {
	return Event{Kind: EventCopyWritten, Copy: i, Total: total, Path: path, Message: "✓ 已生成: " + path}
}

func skippedEvent(i, total int, job Job) Event {
	types := "全部"
	if len(job.Types) > 0 {
		labels := make([]string, len(job.Types))
		for k, t := range job.Types {
			labels[k] = t.Label()
		}
		types = strings.Join(labels, ", ")
	}
	return Event{
		Kind: EventCopySkipped, Copy: i, Total: total, Err: ErrEmptySelection,
		Message: fmt.Sprintf("警告：没有找到符合条件的单词（单元：%s，类型：%s）", strings.Join(job.Units, ", "), types),
	}
}

func failedEvent(err *RenderError, total int) Event {
	return Event{Kind: EventCopyFailed, Copy: err.Copy, Total: total, Path: err.Path, Err: err, Message: "✗ " + err.Error()}
}

func finishedEvent(files int) Event {
	return Event{Kind: EventFinished, Total: files, Message: fmt.Sprintf("✓ 完成！共生成 %d 份默写纸", files)}
}
