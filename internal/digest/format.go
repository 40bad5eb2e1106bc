package digest

import (
	"fmt"
	"strings"

	"github.com/Theerthaprasad25/Job-Notification-App/internal/model"
)

// ToPlainText 把摘要渲染为纯文本，用于剪贴板或邮件导出。
// 布局固定：标题行、生成日期、逐条编号的职位块、结束语。
func ToPlainText(d *model.Digest) string {
	var b strings.Builder

	b.WriteString("Your Top Job Matches\n")
	fmt.Fprintf(&b, "Generated on %s\n", d.Date)

	for i, job := range d.Jobs {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%d. %s at %s\n", i+1, job.Title, job.Company)
		fmt.Fprintf(&b, "   %s | %s | Match: %d/100\n", job.Location, job.Experience, job.MatchScore)
		fmt.Fprintf(&b, "   Apply: %s\n", job.ApplyURL)
	}

	b.WriteString("\nOpen the tracker to apply before these roles close.\n")
	return b.String()
}
