// Package embedded 提供嵌入数据文件的统一访问接口
//
// Go embed 指令只能嵌入当前包目录及其子目录的文件，
// 因此 embed.FS 变量声明在项目根目录（embed.go），启动时通过 Init 注入。
package embedded

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

var (
	dataFS      fs.FS
	initialized bool
)

var errNotInitialized = fmt.Errorf("embedded package not initialized, call Init() first")

// Init 注入数据文件系统，必须在任何配置加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 统一为 embed.FS 使用的正斜杠路径，并要求 data/ 前缀
func normalize(path string) (string, error) {
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")
	if !strings.HasPrefix(path, "data/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return path, nil
}

// ReadFile 读取嵌入文件
func ReadFile(path string) ([]byte, error) {
	if !initialized {
		return nil, errNotInitialized
	}
	p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, p)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	if !initialized {
		return false
	}
	p, err := normalize(path)
	if err != nil {
		return false
	}
	_, err = fs.Stat(dataFS, p)
	return err == nil
}

// Glob 匹配嵌入文件
func Glob(pattern string) ([]string, error) {
	if !initialized {
		return nil, errNotInitialized
	}
	p, err := normalize(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(dataFS, p)
}
