// Package mail は通知メールの送信手段を提供する。
package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
)

// Transport は組み立て済みのメッセージを配送する。
// 実装は1回の送信ごとに接続を開き、成否にかかわらず閉じる。
type Transport interface {
	Send(ctx context.Context, from string, to []string, msg []byte) error
}

// SMTPTransport はSMTPサーバーへ直接配送するTransport実装。
type SMTPTransport struct {
	Host   string
	Port   int
	UseTLS bool // true の場合は接続時点からTLS（SMTPS）

	TLSConfig *tls.Config
}

// NewSMTPTransport は新しいSMTPTransportを生成する。
func NewSMTPTransport(host string, port int, useTLS bool) *SMTPTransport {
	return &SMTPTransport{Host: host, Port: port, UseTLS: useTLS}
}

// Addr は接続先アドレスを返す。
func (t *SMTPTransport) Addr() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

// Send は1つのSMTPセッションでメッセージを送信する。
func (t *SMTPTransport) Send(ctx context.Context, from string, to []string, msg []byte) error {
	if len(to) == 0 {
		return errors.New("no recipients")
	}

	conn, err := t.dial(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", t.Addr(), err)
	}

	client, err := smtp.NewClient(conn, t.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to start smtp session: %w", err)
	}
	defer client.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("MAIL FROM rejected: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("RCPT TO %s rejected: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA rejected: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("message rejected: %w", err)
	}

	return client.Quit()
}

func (t *SMTPTransport) dial(ctx context.Context) (net.Conn, error) {
	dialer := &net.Dialer{}
	if !t.UseTLS {
		return dialer.DialContext(ctx, "tcp", t.Addr())
	}

	cfg := t.TLSConfig
	if cfg == nil {
		cfg = &tls.Config{ServerName: t.Host}
	}
	tlsDialer := &tls.Dialer{NetDialer: dialer, Config: cfg}
	return tlsDialer.DialContext(ctx, "tcp", t.Addr())
}
