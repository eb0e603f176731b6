package api

import (
	"Checklister/internal/cli/model"
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// UploadFile отправляет файл пункту (multipart, поле file) по серверному id пункта.
// progress получает процент отправки 0..100; 100 приходит только после ответа сервера.
func (c *Client) UploadFile(ctx context.Context, itemID int64, filename string, r io.Reader, progress func(percent int)) (*model.Upload, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(fw, r); err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	total := int64(buf.Len())
	body := &progressReader{r: &buf, total: total, fn: progress}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/items/%d/upload", c.baseURL, itemID), body)
	if err != nil {
		return nil, err
	}
	req.ContentLength = total
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out model.Upload
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	if progress != nil {
		progress(100)
	}
	return &out, nil
}

func (c *Client) DeleteUpload(ctx context.Context, uploadID int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/uploads/%d", uploadID), nil, nil)
}

// PublicUploadURL ссылка на скачивание файла опубликованного чек-листа.
func (c *Client) PublicUploadURL(uploadID int64) string {
	return fmt.Sprintf("%s/public_uploads/%d", c.baseURL, uploadID)
}

// progressReader сообщает о прочитанной доле тела; 100 выставляется только после ответа сервера.
type progressReader struct {
	r     io.Reader
	total int64
	fn    func(percent int)
	read  int64
	last  int
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 && p.fn != nil && p.total > 0 {
		p.read += int64(n)
		if pct := int(p.read * 99 / p.total); pct != p.last {
			p.last = pct
			p.fn(pct)
		}
	}
	return n, err
}
