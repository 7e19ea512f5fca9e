package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// 淡入淡出默认值
const (
	DefaultFadeDuration = 0.4
	DefaultAutoFade     = true
)

// CanvasConfig 画布配置（一棵 UI 节点树）
type CanvasConfig struct {
	// Defaults 控制器未单独配置时使用的默认值
	Defaults FadeDefaults `yaml:"defaults"`
	// Root 根节点
	Root NodeConfig `yaml:"root"`
}

// FadeDefaults 全局淡入淡出默认值
type FadeDefaults struct {
	Duration *float64 `yaml:"duration"`
	AutoFade *bool    `yaml:"autoFade"`
}

// NodeConfig 画布节点配置
//
// 配置了 rect 的节点带有图形；button 非空时节点可点击，
// 动作名在构建画布时绑定到回调。
type NodeConfig struct {
	Name    string `yaml:"name"`
	Active  *bool  `yaml:"active"`
	Enabled *bool  `yaml:"enabled"`

	// Rect 屏幕矩形 [x, y, w, h]
	Rect []float64 `yaml:"rect"`
	// Color RGB 或 RGBA，分量范围 0~1
	Color []float64 `yaml:"color"`

	// Raycaster 是否在该节点上放置点击检测器
	Raycaster bool `yaml:"raycaster"`
	// Button 点击动作名
	Button string `yaml:"button"`

	Controller *ControllerConfig `yaml:"controller"`
	Group      *GroupConfig      `yaml:"group"`

	Children []NodeConfig `yaml:"children"`
}

// ControllerConfig 树形控制器配置
type ControllerConfig struct {
	DefaultDuration *float64 `yaml:"defaultDuration"`
	AutoFade        *bool    `yaml:"autoFade"`
	Exclusive       bool     `yaml:"exclusive"`
}

// GroupConfig 画布组控制器配置
type GroupConfig struct {
	DefaultDuration       *float64 `yaml:"defaultDuration"`
	AutoFade              *bool    `yaml:"autoFade"`
	BlockInputWhileFading *bool    `yaml:"blockInputWhileFading"`
	Alpha                 *float64 `yaml:"alpha"`
	BlocksRaycasts        *bool    `yaml:"blocksRaycasts"`
}

// HasGraphic 节点是否带有图形
func (n *NodeConfig) HasGraphic() bool {
	return len(n.Rect) > 0
}

// LoadCanvasConfig 从磁盘加载画布配置
func LoadCanvasConfig(path string) (*CanvasConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read canvas config file %s: %w", path, err)
	}
	return ParseCanvasConfig(data, path)
}

// ParseCanvasConfig 解析画布配置，source 仅用于错误信息
func ParseCanvasConfig(data []byte, source string) (*CanvasConfig, error) {
	var cfg CanvasConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse canvas config YAML from %s: %w", source, err)
	}

	// 校验在补默认值之前进行
	if err := validateCanvasConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid canvas config in %s: %w", source, err)
	}
	applyDefaults(&cfg)

	return &cfg, nil
}

// applyDefaults 补齐可选字段
func applyDefaults(cfg *CanvasConfig) {
	if cfg.Defaults.Duration == nil {
		cfg.Defaults.Duration = float64Ptr(DefaultFadeDuration)
	}
	if cfg.Defaults.AutoFade == nil {
		cfg.Defaults.AutoFade = boolPtr(DefaultAutoFade)
	}
	applyNodeDefaults(&cfg.Root, &cfg.Defaults)
}

func applyNodeDefaults(node *NodeConfig, defaults *FadeDefaults) {
	if node.Active == nil {
		node.Active = boolPtr(true)
	}
	if node.Enabled == nil {
		node.Enabled = boolPtr(true)
	}
	if node.HasGraphic() {
		switch len(node.Color) {
		case 0:
			node.Color = []float64{1, 1, 1, 1}
		case 3:
			node.Color = append(node.Color, 1)
		}
	}

	if c := node.Controller; c != nil {
		if c.DefaultDuration == nil {
			c.DefaultDuration = float64Ptr(*defaults.Duration)
		}
		if c.AutoFade == nil {
			c.AutoFade = boolPtr(*defaults.AutoFade)
		}
	}

	if g := node.Group; g != nil {
		if g.DefaultDuration == nil {
			g.DefaultDuration = float64Ptr(*defaults.Duration)
		}
		if g.AutoFade == nil {
			g.AutoFade = boolPtr(*defaults.AutoFade)
		}
		if g.BlockInputWhileFading == nil {
			g.BlockInputWhileFading = boolPtr(true)
		}
		if g.Alpha == nil {
			g.Alpha = float64Ptr(1)
		}
		if g.BlocksRaycasts == nil {
			g.BlocksRaycasts = boolPtr(true)
		}
	}

	for i := range node.Children {
		applyNodeDefaults(&node.Children[i], defaults)
	}
}

// validateCanvasConfig 校验画布配置
func validateCanvasConfig(cfg *CanvasConfig) error {
	if d := cfg.Defaults.Duration; d != nil && *d < 0 {
		return fmt.Errorf("defaults.duration cannot be negative")
	}
	seen := make(map[string]bool)
	return validateNode(&cfg.Root, "root", seen)
}

func validateNode(node *NodeConfig, path string, seen map[string]bool) error {
	if node.Name == "" {
		return fmt.Errorf("%s: name is required", path)
	}
	if seen[node.Name] {
		return fmt.Errorf("%s: duplicate node name %q", path, node.Name)
	}
	seen[node.Name] = true
	path = node.Name

	if node.HasGraphic() {
		if len(node.Rect) != 4 {
			return fmt.Errorf("%s: rect must have 4 values [x, y, w, h], got %d", path, len(node.Rect))
		}
		if node.Rect[2] < 0 || node.Rect[3] < 0 {
			return fmt.Errorf("%s: rect size cannot be negative", path)
		}
	}

	if len(node.Color) > 0 {
		if !node.HasGraphic() {
			return fmt.Errorf("%s: color requires rect", path)
		}
		if len(node.Color) != 3 && len(node.Color) != 4 {
			return fmt.Errorf("%s: color must have 3 or 4 components, got %d", path, len(node.Color))
		}
		for _, v := range node.Color {
			if v < 0 || v > 1 {
				return fmt.Errorf("%s: color component %v out of range [0, 1]", path, v)
			}
		}
	}

	if node.Button != "" && !node.HasGraphic() {
		return fmt.Errorf("%s: button requires rect", path)
	}

	if node.Controller != nil && node.Group != nil {
		return fmt.Errorf("%s: a node cannot have both controller and group", path)
	}
	if c := node.Controller; c != nil && c.DefaultDuration != nil && *c.DefaultDuration < 0 {
		return fmt.Errorf("%s: controller.defaultDuration cannot be negative", path)
	}
	if g := node.Group; g != nil {
		if g.DefaultDuration != nil && *g.DefaultDuration < 0 {
			return fmt.Errorf("%s: group.defaultDuration cannot be negative", path)
		}
		if g.Alpha != nil && (*g.Alpha < 0 || *g.Alpha > 1) {
			return fmt.Errorf("%s: group.alpha out of range [0, 1]", path)
		}
	}

	for i := range node.Children {
		if err := validateNode(&node.Children[i], fmt.Sprintf("%s.children[%d]", path, i), seen); err != nil {
			return err
		}
	}
	return nil
}

// Walk 深度优先遍历所有节点
func (cfg *CanvasConfig) Walk(fn func(node *NodeConfig, parent *NodeConfig)) {
	walkNode(&cfg.Root, nil, fn)
}

func walkNode(node, parent *NodeConfig, fn func(node *NodeConfig, parent *NodeConfig)) {
	fn(node, parent)
	for i := range node.Children {
		walkNode(&node.Children[i], node, fn)
	}
}

func boolPtr(v bool) *bool          { return &v }
func float64Ptr(v float64) *float64 { return &v }
