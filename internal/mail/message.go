package mail

import (
	"bytes"
	"fmt"
	"strings"
)

// Message は平文の通知メール。
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// Bytes はCRLF区切りのRFC 5322形式に変換する。
func (m Message) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", m.From)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(m.To, ", "))
	fmt.Fprintf(&buf, "Subject: %s\r\n", m.Subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(m.Body)
	return buf.Bytes()
}
