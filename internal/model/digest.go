package model

// Digest 表示某个日历日生成的一份匹配摘要。每个日期至多一份，
// 条目按生成时的排名排列并带当时的匹配分。
type Digest struct {
	Date string      `json:"date"`
	Jobs []ScoredJob `json:"jobs"`
}
