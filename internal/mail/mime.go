package mail

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	netmail "net/mail"
	"net/textproto"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/rfq-flow/internal/model"
)

// Sender is the From identity placed on every draft.
type Sender struct {
	Name  string
	Email string
}

func (s Sender) address() string {
	if s.Email == "" {
		return ""
	}
	return (&netmail.Address{Name: s.Name, Address: s.Email}).String()
}

// MessageBuilder renders an OutboundMessage as an RFC 5322 message.
type MessageBuilder struct {
	now     func() time.Time
	newID   func() string
	headers map[string]string
	from    Sender
}

// NewMessageBuilder creates a builder. Extra headers are added verbatim to every message.
func NewMessageBuilder(from Sender, extra map[string]string) *MessageBuilder {
	return &MessageBuilder{
		from:    from,
		headers: extra,
		now:     time.Now,
		newID:   func() string { return uuid.NewString() },
	}
}

// Build renders msg, reading attachment contents from disk.
func (b *MessageBuilder) Build(msg model.OutboundMessage) ([]byte, error) {
	var buf bytes.Buffer

	id := b.newID()
	mixed := multipart.NewWriter(&buf)
	if err := mixed.SetBoundary("mixed-" + strings.ReplaceAll(id, "-", "")); err != nil {
		return nil, fmt.Errorf("failed to set boundary: %w", err)
	}

	var head bytes.Buffer
	if from := b.from.address(); from != "" {
		writeHeader(&head, "From", from)
	}
	writeHeader(&head, "To", (&netmail.Address{Name: msg.ToName, Address: msg.To}).String())
	writeHeader(&head, "Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	writeHeader(&head, "Date", b.now().Format(time.RFC1123Z))
	writeHeader(&head, "Message-ID", fmt.Sprintf("<%s@rfq-flow>", id))
	writeHeader(&head, "MIME-Version", "1.0")
	keys := make([]string, 0, len(b.headers))
	for k := range b.headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		writeHeader(&head, k, b.headers[k])
	}
	writeHeader(&head, "Content-Type", "multipart/mixed; boundary="+mixed.Boundary())
	head.WriteString("\r\n")

	if err := b.writeAlternative(mixed, id, msg); err != nil {
		return nil, err
	}
	for _, path := range msg.Attachments {
		if err := writeAttachment(mixed, path); err != nil {
			return nil, err
		}
	}
	if err := mixed.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish message: %w", err)
	}

	return append(head.Bytes(), buf.Bytes()...), nil
}

func (b *MessageBuilder) writeAlternative(mixed *multipart.Writer, id string, msg model.OutboundMessage) error {
	var body bytes.Buffer
	alt := multipart.NewWriter(&body)
	if err := alt.SetBoundary("alt-" + strings.ReplaceAll(id, "-", "")); err != nil {
		return fmt.Errorf("failed to set boundary: %w", err)
	}

	parts := []struct {
		contentType string
		content     string
	}{
		{"text/plain; charset=utf-8", msg.TextBody},
		{"text/html; charset=utf-8", msg.HTMLBody},
	}
	for _, p := range parts {
		if p.content == "" {
			continue
		}
		w, err := alt.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {p.contentType},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		if err != nil {
			return fmt.Errorf("failed to create body part: %w", err)
		}
		qp := quotedprintable.NewWriter(w)
		if _, err := io.WriteString(qp, p.content); err != nil {
			return fmt.Errorf("failed to write body part: %w", err)
		}
		if err := qp.Close(); err != nil {
			return fmt.Errorf("failed to write body part: %w", err)
		}
	}
	if err := alt.Close(); err != nil {
		return fmt.Errorf("failed to finish body: %w", err)
	}

	w, err := mixed.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"multipart/alternative; boundary=" + alt.Boundary()},
	})
	if err != nil {
		return fmt.Errorf("failed to create body: %w", err)
	}
	_, err = w.Write(body.Bytes())
	return err
}

func writeAttachment(mixed *multipart.Writer, path string) error {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to read attachment %s: %w", path, err)
	}

	name := filepath.Base(path)
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w, err := mixed.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {mime.FormatMediaType(contentType, map[string]string{"name": name})},
		"Content-Disposition":       {mime.FormatMediaType("attachment", map[string]string{"filename": name})},
		"Content-Transfer-Encoding": {"base64"},
	})
	if err != nil {
		return fmt.Errorf("failed to create attachment part: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 76 {
		if _, err := io.WriteString(w, encoded[:76]+"\r\n"); err != nil {
			return err
		}
		encoded = encoded[76:]
	}
	_, err = io.WriteString(w, encoded+"\r\n")
	return err
}

func writeHeader(buf *bytes.Buffer, key, value string) {
	buf.WriteString(key)
	buf.WriteString(": ")
	buf.WriteString(value)
	buf.WriteString("\r\n")
}
