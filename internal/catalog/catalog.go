package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Theerthaprasad25/Job-Notification-App/internal/model"
)

// Catalog 持有会话内不可变的职位目录。对外只暴露副本与查表，
// 保证重复打分不会污染共享条目。
type Catalog struct {
	jobs []model.Job
	byID map[string]int
}

// Meta 汇总目录中出现过的筛选候选值，供筛选下拉框使用。
type Meta struct {
	Locations   []string `json:"locations"`
	Modes       []string `json:"modes"`
	Experiences []string `json:"experiences"`
	Sources     []string `json:"sources"`
}

// Load 从 JSON 文件读取目录并校验。
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var jobs []model.Job
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	return New(jobs)
}

// New 用给定职位构建目录，要求 ID 非空且全局唯一。
func New(jobs []model.Job) (*Catalog, error) {
	byID := make(map[string]int, len(jobs))
	copied := make([]model.Job, len(jobs))
	for i, job := range jobs {
		id := strings.TrimSpace(job.ID)
		if id == "" {
			return nil, fmt.Errorf("catalog job at index %d has empty id", i)
		}
		if _, exists := byID[id]; exists {
			return nil, fmt.Errorf("duplicate catalog job id %q", id)
		}
		job.ID = id
		byID[id] = i
		copied[i] = job
	}
	return &Catalog{jobs: copied, byID: byID}, nil
}

// Len 返回目录条目数。
func (c *Catalog) Len() int {
	return len(c.jobs)
}

// Jobs 返回目录的防御性副本，保持原始顺序。
func (c *Catalog) Jobs() []model.Job {
	out := make([]model.Job, len(c.jobs))
	copy(out, c.jobs)
	return out
}

// Get 按 ID 查找职位。
func (c *Catalog) Get(id string) (model.Job, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return model.Job{}, false
	}
	return c.jobs[idx], true
}

// Meta 返回去重且排序后的筛选候选值，空值不计入。
func (c *Catalog) Meta() Meta {
	return Meta{
		Locations:   c.uniqueValues(func(j model.Job) string { return j.Location }),
		Modes:       c.uniqueValues(func(j model.Job) string { return j.Mode }),
		Experiences: c.uniqueValues(func(j model.Job) string { return j.Experience }),
		Sources:     c.uniqueValues(func(j model.Job) string { return j.Source }),
	}
}

func (c *Catalog) uniqueValues(pick func(model.Job) string) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, job := range c.jobs {
		v := pick(job)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
