package apiclient

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

type filePart struct {
	field    string
	filename string
	reader   io.Reader
}

// Form 按顺序收集多部分表单的字段和文件。
// 每个领域字段是独立的命名部分，二进制文件作为可选的文件部分，
// 绝不把含文件的载荷整体 JSON 编码。
type Form struct {
	fields [][2]string
	files  []filePart
}

func NewForm() *Form {
	return &Form{}
}

// AddField 追加一个文本字段
func (f *Form) AddField(name, value string) *Form {
	f.fields = append(f.fields, [2]string{name, value})
	return f
}

// AddFile 追加一个文件部分
func (f *Form) AddFile(field, filename string, r io.Reader) *Form {
	f.files = append(f.files, filePart{field: field, filename: filename, reader: r})
	return f
}

// AddFileFromPath 从本地路径读取文件后追加，path 为空时不追加
func (f *Form) AddFileFromPath(field, path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取文件失败: %w", err)
	}
	f.AddFile(field, filepath.Base(path), bytes.NewReader(data))
	return nil
}

// Encode 生成请求体和带边界的内容类型
func (f *Form) Encode() (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, field := range f.fields {
		if err := writer.WriteField(field[0], field[1]); err != nil {
			return nil, "", fmt.Errorf("写入表单字段失败: %w", err)
		}
	}
	for _, file := range f.files {
		part, err := writer.CreateFormFile(file.field, file.filename)
		if err != nil {
			return nil, "", fmt.Errorf("创建文件部分失败: %w", err)
		}
		if _, err := io.Copy(part, file.reader); err != nil {
			return nil, "", fmt.Errorf("写入文件内容失败: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}
