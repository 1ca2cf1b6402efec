package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"alumni-client/internal/util"

	"go.uber.org/zap"
)

// TokenStore 是认证令牌的持久化存储接口
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileTokenStore 把令牌保存在本地文件中，对应浏览器端的 localStorage
type FileTokenStore struct {
	path string
	mu   sync.Mutex
}

func NewFileTokenStore(path string) (*FileTokenStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("创建令牌目录失败: %w", err)
	}
	return &FileTokenStore{path: path}, nil
}

// Load 读取已保存的令牌，文件不存在时返回空串
func (s *FileTokenStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("读取令牌文件失败: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.path, []byte(token), 0600); err != nil {
		return fmt.Errorf("保存令牌失败: %w", err)
	}
	util.Logger.Debug("令牌已保存", zap.String("path", s.path))
	return nil
}

func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("删除令牌失败: %w", err)
	}
	return nil
}

// MemoryTokenStore 是测试用的内存实现
type MemoryTokenStore struct {
	token string
	mu    sync.Mutex
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
