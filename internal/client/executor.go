package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tickify/internal/guard"
	"tickify/internal/session"
	"tickify/pkg/logger"

	"go.uber.org/zap"
)

// APIError 伺服器回的錯誤（非 2xx）
type APIError struct {
	Status   int
	Message  string
	Redirect string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d message=%q", e.Status, e.Message)
}

// IsUnauthorized 是否為 401
func (e *APIError) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// Navigator 收到 401 之後 client 該導去的地方。
// 瀏覽器版是改 location，CLI 版只是印提示。
type Navigator func(path string)

// Executor 統一出口：所有 API 請求都走這裡。
// 自動帶上 session 的 bearer token；收到 401 就清 session 並導向登入頁，
// 各呼叫端不必自己處理過期 token。
type Executor struct {
	base     string
	http     *http.Client
	store    *session.Store
	navigate Navigator
	log      *zap.Logger
}

func NewExecutor(baseURL string, store *session.Store, navigate Navigator) *Executor {
	if navigate == nil {
		navigate = func(string) {}
	}
	return &Executor{
		base:     strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 15 * time.Second},
		store:    store,
		navigate: navigate,
		log:      logger.WithComponent("api_client"),
	}
}

// Do 發送請求。body 非 nil 時以 JSON 編碼，out 非 nil 時將回應解進去。
func (e *Executor) Do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, e.base+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := e.store.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return e.handleUnauthorized(ctx, resp)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// handleUnauthorized 集中處理 401：清掉本地 session、導向登入頁。
// 伺服器沒給 redirect 時退回預設登入路徑。
func (e *Executor) handleUnauthorized(ctx context.Context, resp *http.Response) error {
	apiErr := decodeAPIError(resp)

	e.log.Warn("session rejected by server, logging out")
	e.store.Logout(ctx)

	redirect := guard.LoginPath
	if target, ok := apiErr.(*APIError); ok && target.Redirect != "" {
		redirect = target.Redirect
	}
	e.navigate(redirect)

	return apiErr
}

func decodeAPIError(resp *http.Response) error {
	var payload struct {
		Error    string `json:"error"`
		Redirect string `json:"redirect"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	if payload.Error == "" {
		payload.Error = resp.Status
	}
	return &APIError{
		Status:   resp.StatusCode,
		Message:  payload.Error,
		Redirect: payload.Redirect,
	}
}
