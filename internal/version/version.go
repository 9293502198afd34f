package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Version 当前版本
const Version = "0.1.0"

// BuildDate 构建日期（由编译时注入）
var BuildDate = "unknown"

// GitCommit Git 提交哈希（由编译时注入）
var GitCommit = "unknown"

// GetVersion 获取版本信息
func GetVersion() string { return Version }

// GetBuildDate 获取构建日期
func GetBuildDate() string { return BuildDate }

// GetGitCommit 获取 Git 提交哈希
func GetGitCommit() string { return GitCommit }

// canonical 补上 x/mod/semver 要求的 v 前缀
func canonical(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// Compare 比较两个语义化版本，返回 -1 / 0 / 1
//
// 无法解析的版本按字符串比较；构建元数据（+xxx）被忽略。
func Compare(a, b string) int {
	ca, cb := canonical(a), canonical(b)
	if !semver.IsValid(ca) || !semver.IsValid(cb) {
		return strings.Compare(a, b)
	}
	return semver.Compare(ca, cb)
}

// IsNewer latest 是否比 current 新
func IsNewer(latest, current string) bool {
	if semver.IsValid(canonical(latest)) != semver.IsValid(canonical(current)) {
		return latest != current
	}
	return Compare(latest, current) > 0
}
