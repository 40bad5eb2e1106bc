package match

import (
	"strings"

	"github.com/Theerthaprasad25/Job-Notification-App/internal/model"
)

// 各信号分值。每个类别至多计一次，总分封顶 100。
const (
	pointsTitleKeyword       = 25
	pointsDescriptionKeyword = 15
	pointsLocation           = 15
	pointsMode               = 10
	pointsExperience         = 10
	pointsSkillOverlap       = 15
	pointsRecency            = 5
	pointsPreferredSource    = 5

	// recentWithinDays 内发布视为新鲜，缺失发布天数按 99 处理。
	recentWithinDays  = 2
	missingPostedDays = 99

	preferredSource = "linkedin"
)

// Score 计算职位与偏好的匹配分，范围 [0,100]。
// 偏好不存在时恒为 0。函数为纯函数，不做 I/O，不修改输入。
func Score(job model.Job, prefs *model.Preferences) int {
	if prefs == nil {
		return 0
	}

	score := 0

	keywords := SplitList(prefs.RoleKeywords)
	if anyContains(strings.ToLower(job.Title), keywords) {
		score += pointsTitleKeyword
	}
	if anyContains(strings.ToLower(job.Description), keywords) {
		score += pointsDescriptionKeyword
	}

	if job.Location != "" && containsFold(prefs.PreferredLocations, job.Location) {
		score += pointsLocation
	}
	if job.Mode != "" && containsFold(prefs.PreferredMode, job.Mode) {
		score += pointsMode
	}
	if prefs.ExperienceLevel != "" && strings.EqualFold(prefs.ExperienceLevel, job.Experience) {
		score += pointsExperience
	}

	if skillsOverlap(SplitList(prefs.Skills), job.Skills) {
		score += pointsSkillOverlap
	}

	if job.PostedDays(missingPostedDays) <= recentWithinDays {
		score += pointsRecency
	}
	if strings.EqualFold(job.Source, preferredSource) {
		score += pointsPreferredSource
	}

	if score > 100 {
		return 100
	}
	return score
}

// SplitList 把逗号分隔的自由文本切成小写词条，去空白并丢弃空项。
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		token := strings.ToLower(strings.TrimSpace(part))
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// anyContains 判断 haystack 是否含任一词条，词条已是小写。
func anyContains(haystack string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(haystack, token) {
			return true
		}
	}
	return false
}

func containsFold(set []string, value string) bool {
	for _, item := range set {
		if strings.EqualFold(item, value) {
			return true
		}
	}
	return false
}

// skillsOverlap 判断任意用户技能与任意职位技能互为子串。
// 双向包含会把 "java" 与 "javascript" 判为重叠，与现有打分
// 行为保持一致。
func skillsOverlap(userSkills []string, jobSkills []string) bool {
	for _, user := range userSkills {
		for _, raw := range jobSkills {
			job := strings.ToLower(strings.TrimSpace(raw))
			if job == "" {
				continue
			}
			if strings.Contains(job, user) || strings.Contains(user, job) {
				return true
			}
		}
	}
	return false
}
