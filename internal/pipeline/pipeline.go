package pipeline

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/Theerthaprasad25/Job-Notification-App/internal/match"
	"github.com/Theerthaprasad25/Job-Notification-App/internal/model"
)

// 支持的排序方式，未识别的取值按 SortLatest 处理。
const (
	SortLatest = "latest"
	SortOldest = "oldest"
	SortMatch  = "match"
	SortSalary = "salary"
)

// Filters 描述一次筛选调用的全部条件，全部可选且同时生效。
type Filters struct {
	Keyword     string
	Location    string
	Mode        string
	Experience  string
	Source      string
	MatchesOnly bool
	SortBy      string
}

// Apply 按条件过滤职位并施加唯一排序，返回带匹配分的副本列表。
// 分数在每次调用内对幸存职位各计算一次；目录条目从不被修改。
func Apply(jobs []model.Job, filters Filters, prefs *model.Preferences) []model.ScoredJob {
	keyword := strings.ToLower(strings.TrimSpace(filters.Keyword))

	result := make([]model.ScoredJob, 0, len(jobs))
	for _, job := range jobs {
		if keyword != "" &&
			!strings.Contains(strings.ToLower(job.Title), keyword) &&
			!strings.Contains(strings.ToLower(job.Company), keyword) {
			continue
		}
		if filters.Location != "" && job.Location != filters.Location {
			continue
		}
		if filters.Mode != "" && job.Mode != filters.Mode {
			continue
		}
		if filters.Experience != "" && job.Experience != filters.Experience {
			continue
		}
		if filters.Source != "" && job.Source != filters.Source {
			continue
		}

		score := match.Score(job, prefs)
		if filters.MatchesOnly && prefs != nil && score < prefs.MinMatchScore {
			continue
		}

		result = append(result, model.ScoredJob{Job: job, MatchScore: score})
	}

	sortJobs(result, filters.SortBy)
	return result
}

// sortJobs 施加稳定排序，相等键保持过滤后的相对顺序。
func sortJobs(jobs []model.ScoredJob, sortBy string) {
	switch sortBy {
	case SortOldest:
		sort.SliceStable(jobs, func(i, j int) bool {
			return jobs[i].PostedDays(0) > jobs[j].PostedDays(0)
		})
	case SortMatch:
		sort.SliceStable(jobs, func(i, j int) bool {
			return jobs[i].MatchScore > jobs[j].MatchScore
		})
	case SortSalary:
		sort.SliceStable(jobs, func(i, j int) bool {
			return ExtractSalary(jobs[i].SalaryRange) > ExtractSalary(jobs[j].SalaryRange)
		})
	default:
		sort.SliceStable(jobs, func(i, j int) bool {
			return jobs[i].PostedDays(99) < jobs[j].PostedDays(99)
		})
	}
}

var (
	currencyAmountRe = regexp.MustCompile(`[₹$€£]\s*(\d+)`)
	numericRangeRe   = regexp.MustCompile(`(\d+)\s*[-–]\s*\d+`)
	lpaAmountRe      = regexp.MustCompile(`(?i)(\d+)\s*LPA`)
)

// ExtractSalary 从自由文本薪资中提取用于排序的数值。
// 优先级：货币符号后的整数、数字区间的起始值、LPA 前的整数；
// 均不匹配时返回 0，使无法解析的薪资在降序中垫底。
func ExtractSalary(raw string) int {
	text := strings.ReplaceAll(raw, ",", "")

	for _, re := range []*regexp.Regexp{currencyAmountRe, numericRangeRe, lpaAmountRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			value, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			return value
		}
	}
	return 0
}
