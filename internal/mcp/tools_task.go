package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// registerTaskTools はTask操作のファサードツールを登録する。
func (s *Server) registerTaskTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("task_manage",
			mcp.WithDescription("プロジェクト配下のタスクを管理するツール。track_timeは作業時間を加算し累計を返す。"),
			mcp.WithString("action", mcp.Required(), mcp.Description("操作種別: create, read, track_time")),
			mcp.WithString("project_id", mcp.Description("所属プロジェクトID（createで必須）")),
			mcp.WithString("task_id", mcp.Description("タスクID（read/track_timeで必須）")),
			mcp.WithString("title", mcp.Description("タイトル（createで必須）")),
			mcp.WithString("deadline", mcp.Description("期限 RFC 3339形式（createで必須、過去日時は不可）")),
			mcp.WithNumber("hours", mcp.Description("加算する作業時間（track_timeで必須、正の値）")),
		),
		s.handleTaskManage,
	)
}

func (s *Server) handleTaskManage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	action := request.GetString("action", "")

	switch action {
	case "create":
		return s.handleTaskCreate(ctx, request)
	case "read":
		return s.handleTaskRead(ctx, request)
	case "track_time":
		return s.handleTaskTrackTime(ctx, request)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("不明なaction: %s（有効値: create, read, track_time）", action)), nil
	}
}

func (s *Server) handleTaskCreate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := requireID(request, "project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	deadline, err := optionalTime(request, "deadline")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if deadline == nil {
		return mcp.NewToolResultError("deadline は必須です"), nil
	}

	id, err := s.services.Task.CreateTask(ctx, projectID, request.GetString("title", ""), *deadline)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("タスク作成エラー: %v", err)), nil
	}

	task, err := s.services.Task.GetTask(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("タスク取得エラー: %v", err)), nil
	}
	return jsonText("タスクを作成しました:", toTaskView(task)), nil
}

func (s *Server) handleTaskRead(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(request, "task_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	task, err := s.services.Task.GetTask(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("タスク取得エラー: %v", err)), nil
	}
	return jsonText("", toTaskView(task)), nil
}

func (s *Server) handleTaskTrackTime(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(request, "task_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	hours, err := requireFloat(request, "hours")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	total, err := s.services.Task.TrackTime(ctx, id, hours)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("作業時間記録エラー: %v", err)), nil
	}
	return jsonText("", map[string]any{
		"task_id":     formatID(id),
		"hours_spent": total,
	}), nil
}
