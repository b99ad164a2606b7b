// Package format 将模型输出整理为适合展示的多行纯文本。
package format

import "strings"

// Normalize 对 AI 输出做启发式的纯文本整形，依次执行：
// 展开圆点符号、剥离 markdown 的列表与加粗标记、在连字符续行前
// 换行、在句号后换行，最后逐行去除空白并丢弃空行。
//
// 这是一个字符替换流水线而非 markdown 解析器，遇到缩写、小数或
// URL 中的句号会产生错误的换行，属于已接受的行为。
func Normalize(raw string) string {
	text := raw
	text = strings.ReplaceAll(text, "•", "• ")
	text = strings.ReplaceAll(text, "* ", "")
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, " -", "\n- ")
	text = strings.ReplaceAll(text, ". ", ".\n")

	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}
