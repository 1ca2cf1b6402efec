package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"alumni-client/internal/errors"
	"alumni-client/internal/store"
	"alumni-client/internal/util"

	"go.uber.org/zap"
)

// Client 封装对后端 REST API 的所有出站请求：
// 附加 Bearer 令牌、归一化错误、multipart 请求交由表单写入器设置内容类型。
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         store.TokenStore
	monitor        *errors.ErrorMonitor
	onUnauthorized func()
}

func New(baseURL string, timeout time.Duration, tokens store.TokenStore) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		monitor:    errors.NewErrorMonitor(),
	}
}

// SetUnauthorizedHook 注册 401 响应时的回调（用于清除本地会话）
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.onUnauthorized = fn
}

// Monitor 返回错误统计器
func (c *Client) Monitor() *errors.ErrorMonitor {
	return c.monitor
}

// Get 发起 GET 请求并把响应解码到 out
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out)
}

// PostJSON 发起携带 JSON 请求体的 POST 请求
func (c *Client) PostJSON(ctx context.Context, path string, in, out interface{}) error {
	body, contentType, err := encodeJSON(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, nil, body, contentType, out)
}

// PutJSON 发起携带 JSON 请求体的 PUT 请求
func (c *Client) PutJSON(ctx context.Context, path string, in, out interface{}) error {
	body, contentType, err := encodeJSON(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, nil, body, contentType, out)
}

// PatchJSON 发起携带 JSON 请求体的 PATCH 请求
func (c *Client) PatchJSON(ctx context.Context, path string, in, out interface{}) error {
	body, contentType, err := encodeJSON(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPatch, path, nil, body, contentType, out)
}

// Post 发起无请求体的 POST 请求
func (c *Client) Post(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, nil, "", out)
}

// Delete 发起 DELETE 请求
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, "", nil)
}

// PostForm 发起 multipart/form-data 的 POST 请求
func (c *Client) PostForm(ctx context.Context, path string, form *Form, out interface{}) error {
	body, contentType, err := form.Encode()
	if err != nil {
		return errors.Wrap(errors.ErrInternal, "构造表单失败", err)
	}
	return c.do(ctx, http.MethodPost, path, nil, body, contentType, out)
}

// PutForm 发起 multipart/form-data 的 PUT 请求
func (c *Client) PutForm(ctx context.Context, path string, form *Form, out interface{}) error {
	body, contentType, err := form.Encode()
	if err != nil {
		return errors.Wrap(errors.ErrInternal, "构造表单失败", err)
	}
	return c.do(ctx, http.MethodPut, path, nil, body, contentType, out)
}

func encodeJSON(in interface{}) (io.Reader, string, error) {
	if in == nil {
		return nil, "", nil
	}
	data, err := json.Marshal(in)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrInternal, "编码请求体失败", err)
	}
	return bytes.NewReader(data), "application/json", nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out interface{}) error {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return errors.Wrap(errors.ErrInternal, "构造请求失败", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	// 附加认证令牌
	if token, err := c.tokens.Load(); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		appErr := c.transportError(ctx, err)
		c.monitor.RecordError(appErr)
		util.Logger.Warn("请求发送失败",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return appErr
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		appErr := c.responseError(resp)
		c.monitor.RecordError(appErr)
		util.Logger.Warn("请求被拒绝",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", appErr.Message))
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return appErr
	}

	if out == nil {
		// 丢弃响应体，保证连接可复用
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(errors.ErrInternal, "解码响应失败", err)
	}
	return nil
}

// transportError 把传输层失败归一化为网络/超时错误，
// 不自动重试，由调用方决定是否提示用户重试。
func (c *Client) transportError(ctx context.Context, err error) *errors.AppError {
	if ctx.Err() == context.DeadlineExceeded {
		return errors.Wrap(errors.ErrTimeout, "request timed out", err)
	}
	// http.Client 自身的超时不会反映到 ctx.Err() 上
	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return errors.Wrap(errors.ErrTimeout, "request timed out", err)
	}
	return errors.Wrap(errors.ErrNetwork, "could not reach server", err)
}

// responseError 解析后端的结构化错误体并映射到客户端错误码
func (c *Client) responseError(resp *http.Response) *errors.AppError {
	message := fmt.Sprintf("request failed with status %d", resp.StatusCode)
	var payload map[string]interface{}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err == nil && len(data) > 0 {
		if err := json.Unmarshal(data, &payload); err == nil {
			if msg, ok := payload["message"].(string); ok && msg != "" {
				message = msg
			} else if msg, ok := payload["error"].(string); ok && msg != "" {
				message = msg
			}
		}
	}

	appErr := errors.FromStatus(resp.StatusCode, message)
	appErr.Payload = payload
	return appErr
}
