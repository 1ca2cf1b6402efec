package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFileTokenStoreRoundTrip 测试令牌的落盘、读取与清除
func TestFileTokenStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	s, err := NewFileTokenStore(path)
	assert.NoError(t, err)

	// 文件不存在时返回空令牌而非错误
	token, err := s.Load()
	assert.NoError(t, err)
	assert.Equal(t, "", token)

	assert.NoError(t, s.Save("tok-abc"))
	token, err = s.Load()
	assert.NoError(t, err)
	assert.Equal(t, "tok-abc", token)

	// 令牌文件只对当前用户可读写
	info, err := os.Stat(path)
	assert.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	assert.NoError(t, s.Clear())
	token, err = s.Load()
	assert.NoError(t, err)
	assert.Equal(t, "", token)

	// 重复清除不报错
	assert.NoError(t, s.Clear())
}
