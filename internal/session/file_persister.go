package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FilePersister 將 session 存成 JSON 檔，tickifyctl 跨次執行共用同一份。
type FilePersister struct {
	path string
}

func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

// DefaultSessionFile 預設路徑 ~/.tickify/session.json
func DefaultSessionFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tickify", "session.json"), nil
}

func (p *FilePersister) Save(_ context.Context, sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o600)
}

func (p *FilePersister) Load(_ context.Context) (*Session, error) {
	data, err := os.ReadFile(p.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &sess, nil
}

func (p *FilePersister) Clear(_ context.Context) error {
	err := os.Remove(p.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
