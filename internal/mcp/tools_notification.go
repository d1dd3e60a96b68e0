package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/haconeco/task-tracker/internal/domain"
)

func (s *Server) registerNotificationTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("notification_send",
			mcp.WithDescription("タスクの状態（created/overdue/completed）をメールで通知する。送信できたかをsentで返す。"),
			mcp.WithString("email", mcp.Required(), mcp.Description("宛先メールアドレス")),
			mcp.WithString("title", mcp.Required(), mcp.Description("タスクのタイトル")),
			mcp.WithString("deadline", mcp.Description("期限 RFC 3339形式（オプション）")),
			mcp.WithBoolean("completed", mcp.Description("完了済みか（デフォルト: false）")),
		),
		s.handleNotificationSend,
	)
}

func (s *Server) handleNotificationSend(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	// 解釈できない期限は未指定として扱い、状態は created になる
	deadline, err := optionalTime(request, "deadline")
	if err != nil {
		s.logger.WithError(err).Debug("ignoring malformed notification deadline")
		deadline = nil
	}

	info := domain.TaskInfo{
		Title:     request.GetString("title", ""),
		Deadline:  deadline,
		Completed: request.GetBool("completed", false),
	}

	// 配送失敗はエラーではなく sent=false として返す
	sent := s.services.Notification.SendTaskNotification(ctx, request.GetString("email", ""), info)
	return jsonText("", map[string]any{"sent": sent}), nil
}
