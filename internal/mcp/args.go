package mcp

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/haconeco/task-tracker/internal/domain"
)

// IDはJSON数値の精度を超えるため、ツール引数・結果では文字列で扱う。
func requireID(request mcp.CallToolRequest, key string) (domain.ID, error) {
	raw := strings.TrimSpace(request.GetString(key, ""))
	if raw == "" {
		return 0, fmt.Errorf("%s は必須です", key)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s は整数で指定してください: %q", key, raw)
	}
	return domain.ID(v), nil
}

// requireFloat は数値引数を取り出す。数値に解釈できない値はエラーにする。
func requireFloat(request mcp.CallToolRequest, key string) (float64, error) {
	raw, ok := request.GetArguments()[key]
	if !ok || raw == nil {
		return 0, fmt.Errorf("%s は必須です", key)
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%s は数値で指定してください: %q", key, v.String())
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("%s は数値で指定してください: %q", key, v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%s は数値で指定してください: %v", key, raw)
	}
}

// optionalTime はRFC 3339形式の日時引数を解析する。未指定の場合は nil。
func optionalTime(request mcp.CallToolRequest, key string) (*time.Time, error) {
	raw := strings.TrimSpace(request.GetString(key, ""))
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("%s はRFC 3339形式で指定してください: %q", key, raw)
	}
	return &t, nil
}

func formatID(id domain.ID) string {
	return strconv.FormatInt(int64(id), 10)
}

func jsonText(prefix string, v any) *mcp.CallToolResult {
	data, _ := json.MarshalIndent(v, "", "  ")
	if prefix == "" {
		return mcp.NewToolResultText(string(data))
	}
	return mcp.NewToolResultText(prefix + "\n" + string(data))
}

type projectView struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Deadline *time.Time `json:"deadline"`
}

func toProjectView(p *domain.Project) projectView {
	return projectView{ID: formatID(p.ID), Name: p.Name, Deadline: p.Deadline}
}

type taskView struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	Title      string    `json:"title"`
	Deadline   time.Time `json:"deadline"`
	HoursSpent float64   `json:"hours_spent"`
}

func toTaskView(t *domain.Task) taskView {
	return taskView{
		ID:         formatID(t.ID),
		ProjectID:  formatID(t.ProjectID),
		Title:      t.Title,
		Deadline:   t.Deadline,
		HoursSpent: t.HoursSpent,
	}
}
