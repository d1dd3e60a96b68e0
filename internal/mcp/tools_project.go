package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// registerProjectTools はProject操作のファサードツールを登録する。
func (s *Server) registerProjectTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("project_manage",
			mcp.WithDescription("プロジェクトを管理するツール。actionで操作を指定。check_deadlineは期限切れならtrueを返す。"),
			mcp.WithString("action", mcp.Required(), mcp.Description("操作種別: create, read, check_deadline")),
			mcp.WithString("project_id", mcp.Description("プロジェクトID（read/check_deadlineで必須）")),
			mcp.WithString("name", mcp.Description("プロジェクト名（createでオプション、省略時はUntitled）")),
			mcp.WithString("deadline", mcp.Description("期限 RFC 3339形式（createでオプション）")),
		),
		s.handleProjectManage,
	)
}

func (s *Server) handleProjectManage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	action := request.GetString("action", "")

	switch action {
	case "create":
		return s.handleProjectCreate(ctx, request)
	case "read":
		return s.handleProjectRead(ctx, request)
	case "check_deadline":
		return s.handleProjectCheckDeadline(ctx, request)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("不明なaction: %s（有効値: create, read, check_deadline）", action)), nil
	}
}

func (s *Server) handleProjectCreate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deadline, err := optionalTime(request, "deadline")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	id, err := s.services.Task.CreateProject(ctx, request.GetString("name", ""), deadline)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("プロジェクト作成エラー: %v", err)), nil
	}

	project, err := s.services.Task.GetProject(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("プロジェクト取得エラー: %v", err)), nil
	}
	return jsonText("プロジェクトを作成しました:", toProjectView(project)), nil
}

func (s *Server) handleProjectRead(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(request, "project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	project, err := s.services.Task.GetProject(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("プロジェクト取得エラー: %v", err)), nil
	}
	return jsonText("", toProjectView(project)), nil
}

func (s *Server) handleProjectCheckDeadline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(request, "project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	overdue, err := s.services.Task.CheckProjectDeadline(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("期限確認エラー: %v", err)), nil
	}
	return jsonText("", map[string]any{
		"project_id": formatID(id),
		"overdue":    overdue,
	}), nil
}
