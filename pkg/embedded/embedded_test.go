package embedded

import (
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/canvas/demo.yaml":  {Data: []byte("root:\n  name: canvas\n")},
		"data/canvas/other.yaml": {Data: []byte("root:\n  name: other\n")},
		"data/readme.txt":        {Data: []byte("hello")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	Init(nil)
	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(testFS())
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}
	Init(nil)
}

// TestNotInitialized 测试未初始化时的行为
func TestNotInitialized(t *testing.T) {
	Init(nil)

	if _, err := ReadFile("data/canvas/demo.yaml"); err != errNotInitialized {
		t.Errorf("ReadFile: expected not-initialized error, got %v", err)
	}
	if _, err := Glob("data/*"); err != errNotInitialized {
		t.Errorf("Glob: expected not-initialized error, got %v", err)
	}
	if Exists("data/canvas/demo.yaml") {
		t.Error("Expected Exists() to return false before Init()")
	}
}

// TestReadFile 测试读取与路径规范化
func TestReadFile(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"plain", "data/readme.txt", "hello", false},
		{"dot prefix", "./data/readme.txt", "hello", false},
		{"missing", "data/missing.txt", "", true},
		{"bad prefix", "assets/readme.txt", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if string(data) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.path, data, tt.want)
			}
		})
	}
}

// TestExistsAndGlob 测试存在性检查和通配匹配
func TestExistsAndGlob(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	if !Exists("data/canvas/demo.yaml") {
		t.Error("Expected demo.yaml to exist")
	}
	if Exists("data/canvas/nope.yaml") || Exists("other/demo.yaml") {
		t.Error("Expected missing paths to report false")
	}

	matches, err := Glob("data/canvas/*.yaml")
	if err != nil {
		t.Fatalf("Glob() failed: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Expected 2 matches, got %v", matches)
	}
}
