package model

// Job 表示目录中的一条职位记录。目录在会话内只读，
// 任何组件都不得原地修改 Job 字段。
// - ID: 目录内唯一标识
// - PostedDaysAgo: 发布距今天数，可能缺失（nil 与 0 含义不同）
// - SalaryRange: 自由文本，可能含货币符号或 LPA 后缀
// - Source: 数据来源标签，例如 LinkedIn
type Job struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Company       string   `json:"company"`
	Location      string   `json:"location"`
	Mode          string   `json:"mode"`
	Experience    string   `json:"experience"`
	Skills        []string `json:"skills"`
	Description   string   `json:"description"`
	SalaryRange   string   `json:"salaryRange"`
	PostedDaysAgo *int     `json:"postedDaysAgo,omitempty"`
	Source        string   `json:"source"`
	ApplyURL      string   `json:"applyUrl"`
}

// PostedDays 返回发布天数，缺失时返回 fallback。
func (j Job) PostedDays(fallback int) int {
	if j.PostedDaysAgo == nil {
		return fallback
	}
	return *j.PostedDaysAgo
}

// ScoredJob 表示打分后的职位。分数是本次计算的临时标注，
// 从不回写目录，摘要条目也复用该形状。
type ScoredJob struct {
	Job
	MatchScore int `json:"matchScore"`
}
