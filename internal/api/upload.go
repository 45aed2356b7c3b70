package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

// Attachment is the tuple a file-access collaborator hands the client: a
// display filename, the byte stream, and its MIME type. The client never
// touches the filesystem itself.
type Attachment struct {
	Filename    string
	Content     io.Reader
	ContentType string
}

// UploadImage attaches a photo to a habit via a single-part multipart POST.
func (c *Client) UploadImage(ctx context.Context, habitID int64, att Attachment) bool {
	path := fmt.Sprintf("/api/v1/habits/%d/add_image/", habitID)
	return c.upload(ctx, "upload image", path, "image", att)
}

// UploadAudio attaches a recorded audio note to a habit.
func (c *Client) UploadAudio(ctx context.Context, habitID int64, att Attachment) bool {
	path := fmt.Sprintf("/api/v1/habits/%d/add_note_audio/", habitID)
	return c.upload(ctx, "upload audio", path, "audio_file", att)
}

func (c *Client) upload(ctx context.Context, op, path, field string, att Attachment) bool {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := createFilePart(writer, field, att)
	if err != nil {
		c.report(op, 0, err)
		return false
	}
	if _, err := io.Copy(part, att.Content); err != nil {
		c.report(op, 0, err)
		return false
	}
	if err := writer.Close(); err != nil {
		c.report(op, 0, err)
		return false
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, &buf)
	if err != nil {
		c.report(op, 0, err)
		return false
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	status, _, err := c.do(req, op)
	if err != nil {
		c.report(op, status, err)
		return false
	}
	return true
}

// createFilePart is CreateFormFile with the attachment's real content type
// instead of application/octet-stream.
func createFilePart(w *multipart.Writer, field string, att Attachment) (io.Writer, error) {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		escapeQuotes(field), escapeQuotes(att.Filename)))
	contentType := att.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)
	return w.CreatePart(header)
}

func escapeQuotes(s string) string {
	return strings.NewReplacer("\\", "\\\\", `"`, `\"`).Replace(s)
}
