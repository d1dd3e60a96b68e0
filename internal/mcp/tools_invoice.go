package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerInvoiceTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("invoice_calculate",
			mcp.WithDescription(fmt.Sprintf("作業時間×単価で請求額を計算する。対応通貨: %s",
				strings.Join(s.services.Invoice.SupportedCurrencies(), ", "))),
			mcp.WithNumber("hours", mcp.Required(), mcp.Description("作業時間（0以上）")),
			mcp.WithNumber("rate", mcp.Required(), mcp.Description("時間単価（0以上）")),
			mcp.WithString("currency", mcp.Required(), mcp.Description("通貨コード")),
		),
		s.handleInvoiceCalculate,
	)
}

func (s *Server) handleInvoiceCalculate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	hours, err := requireFloat(request, "hours")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rate, err := requireFloat(request, "rate")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	currency := request.GetString("currency", "")

	amount, err := s.services.Invoice.CalculateInvoice(hours, rate, currency)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("請求計算エラー: %v", err)), nil
	}
	return jsonText("", map[string]any{
		"amount":   amount,
		"currency": currency,
	}), nil
}
