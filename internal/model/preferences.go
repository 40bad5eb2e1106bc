package model

// DefaultMinMatchScore 是未设置时的最低匹配分阈值。
const DefaultMinMatchScore = 40

// Preferences 表示用户保存的求职偏好。记录不存在与全空字段
// 是两种状态：前者表示用户从未保存过设置。
type Preferences struct {
	RoleKeywords       string   `json:"roleKeywords" mapstructure:"roleKeywords"`
	PreferredLocations []string `json:"preferredLocations" mapstructure:"preferredLocations"`
	PreferredMode      []string `json:"preferredMode" mapstructure:"preferredMode"`
	ExperienceLevel    string   `json:"experienceLevel" mapstructure:"experienceLevel"`
	Skills             string   `json:"skills" mapstructure:"skills"`
	MinMatchScore      int      `json:"minMatchScore" mapstructure:"minMatchScore"`
}
