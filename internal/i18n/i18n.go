package i18n

import (
	"fmt"

	"github.com/YangQing-Lin/mg-prompts/internal/settings"
)

var currentLanguage = "en" // 默认英文

// Message 多语言消息定义
var messages = map[string]map[string]string{
	"en": {
		// Common
		"success": "Success",
		"failed":  "Failed",
		"error":   "Error",
		"warning": "Warning",

		// Prompts
		"prompt.yes_default":  "[Y/n]",
		"prompt.no_default":   "[y/N]",
		"prompt.select_title": "Select prompts to install",
		"prompt.select_help":  "↑/↓: move • space: toggle • a: all • /: filter • enter: confirm • esc: cancel",
		"prompt.filter":       "Filter: ",
		"prompt.no_match":     "No prompts match the filter",
		"prompt.selected":     "%d selected",
		"prompt.numbered":     "Enter numbers separated by commas, 'a' for all (default: %s):",
		"prompt.invalid":      "Invalid selection: %s",

		// Confirm
		"confirm.yes":  "Yes",
		"confirm.no":   "No",
		"confirm.help": "y/n: choose • ←/→: switch • enter: confirm • esc: cancel",

		// Init
		"init.target":                "Installing to %s",
		"init.conflicts":             "The following files already exist:",
		"init.confirm_overwrite":     "Overwrite existing files?",
		"init.cancelled":             "Installation cancelled.",
		"init.no_selection":          "no prompts selected",
		"init.installed":             "Installed %d prompt(s) to %s",
		"init.skipped_existing":      "Skipped %d existing file(s): %s",
		"init.confirm_create_claude": "CLAUDE.md not found. Create it with references to the installed prompts?",
		"init.claude_updated":        "Updated CLAUDE.md (## About You)",
		"init.claude_unchanged":      "CLAUDE.md already up to date",
		"init.claude_skipped":        "CLAUDE.md was not created",
		"init.claude_backup":         "Backed up CLAUDE.md (%s)",
		"init.global_note":           "Global install: CLAUDE.md is not modified",
		"init.done":                  "Done!",

		// Update
		"update.none_installed":   "No prompts installed here.",
		"update.run_init":         "Run `mg-prompts init` to install prompts.",
		"update.up_to_date":       "All prompts are up to date!",
		"update.available":        "%d update(s) available:",
		"update.local_changes":    "(local changes detected)",
		"update.modified_warning": "Some prompts have local modifications.",
		"update.use_force":        "Use --force to overwrite local changes.",
		"update.confirm_continue": "Continue with update (modified files will be skipped)?",
		"update.cancelled":        "Update cancelled.",
		"update.updated":          "Updated %d prompt(s)",
		"update.skipped_modified": "%d prompt(s) were skipped due to local modifications.",
		"update.complete":         "Update complete!",

		// List
		"list.available":        "Available prompts:",
		"list.installed":        "Installed prompts (%s):",
		"list.none_installed":   "No prompts installed.",
		"list.empty_catalog":    "The catalog is empty.",
		"list.modified":         "(modified)",
		"list.installed_at":     "installed %s",
		"list.unreferenced":     "(not referenced in CLAUDE.md)",
		"list.update_available": "(v%s available)",
		"list.tags":             "tags",
		"list.author":           "author",

		// Show
		"show.not_found": "prompt not found: %s",

		// Lock
		"lock.busy":         "another mg-prompts process (pid %d) is working on %s",
		"lock.busy_unknown": "another mg-prompts process is working on %s",

		// Settings
		"settings.title":          "Settings:",
		"settings.updated":        "%s set to: %s",
		"settings.default":        "(default)",
		"settings.builtin":        "(builtin)",
		"settings.invalid_format": "invalid format, expected key=value",
		"settings.unknown_key":    "unknown setting: %s (supported: %s)",
		"settings.key_required":   "please specify the setting name",

		// Backup
		"backup.none":     "No backups found.",
		"backup.list":     "Backups of CLAUDE.md:",
		"backup.restored": "Restored CLAUDE.md from backup %s",
		"backup.created":  "Backup created: %s",
	},
	"zh": {
		// Common
		"success": "成功",
		"failed":  "失败",
		"error":   "错误",
		"warning": "警告",

		// Prompts
		"prompt.yes_default":  "[Y/n]",
		"prompt.no_default":   "[y/N]",
		"prompt.select_title": "选择要安装的提示词",
		"prompt.select_help":  "↑/↓: 移动 • 空格: 选择 • a: 全选 • /: 过滤 • Enter: 确认 • ESC: 取消",
		"prompt.filter":       "过滤: ",
		"prompt.no_match":     "没有匹配的提示词",
		"prompt.selected":     "已选择 %d 项",
		"prompt.numbered":     "输入序号（逗号分隔），'a' 表示全部（默认: %s）:",
		"prompt.invalid":      "无效的选择: %s",

		// Confirm
		"confirm.yes":  "是",
		"confirm.no":   "否",
		"confirm.help": "y/n: 选择 • ←/→: 切换 • Enter: 确认 • ESC: 取消",

		// Init
		"init.target":                "安装到 %s",
		"init.conflicts":             "以下文件已存在:",
		"init.confirm_overwrite":     "覆盖已存在的文件？",
		"init.cancelled":             "已取消安装。",
		"init.no_selection":          "未选择任何提示词",
		"init.installed":             "已安装 %d 个提示词到 %s",
		"init.skipped_existing":      "跳过 %d 个已存在的文件: %s",
		"init.confirm_create_claude": "未找到 CLAUDE.md，是否创建并引用已安装的提示词？",
		"init.claude_updated":        "已更新 CLAUDE.md（## About You）",
		"init.claude_unchanged":      "CLAUDE.md 已是最新",
		"init.claude_skipped":        "未创建 CLAUDE.md",
		"init.claude_backup":         "已备份 CLAUDE.md（%s）",
		"init.global_note":           "全局安装：不会修改 CLAUDE.md",
		"init.done":                  "完成！",

		// Update
		"update.none_installed":   "这里还没有安装任何提示词。",
		"update.run_init":         "运行 `mg-prompts init` 安装提示词。",
		"update.up_to_date":       "所有提示词都是最新的！",
		"update.available":        "有 %d 个可用更新:",
		"update.local_changes":    "（检测到本地修改）",
		"update.modified_warning": "部分提示词存在本地修改。",
		"update.use_force":        "使用 --force 覆盖本地修改。",
		"update.confirm_continue": "继续更新（有本地修改的文件将被跳过）？",
		"update.cancelled":        "已取消更新。",
		"update.updated":          "已更新 %d 个提示词",
		"update.skipped_modified": "%d 个提示词因本地修改被跳过。",
		"update.complete":         "更新完成！",

		// List
		"list.available":        "可用提示词:",
		"list.installed":        "已安装的提示词（%s）:",
		"list.none_installed":   "尚未安装任何提示词。",
		"list.empty_catalog":    "目录为空。",
		"list.modified":         "（已修改）",
		"list.installed_at":     "安装于 %s",
		"list.unreferenced":     "（未在 CLAUDE.md 中引用）",
		"list.update_available": "（可更新到 v%s）",
		"list.tags":             "标签",
		"list.author":           "作者",

		// Show
		"show.not_found": "未找到提示词: %s",

		// Lock
		"lock.busy":         "另一个 mg-prompts 进程（pid %d）正在操作 %s",
		"lock.busy_unknown": "另一个 mg-prompts 进程正在操作 %s",

		// Settings
		"settings.title":          "应用设置:",
		"settings.updated":        "%s 已更新为: %s",
		"settings.default":        "（默认）",
		"settings.builtin":        "（内置）",
		"settings.invalid_format": "设置格式错误，应为: key=value",
		"settings.unknown_key":    "未知的设置项: %s (支持: %s)",
		"settings.key_required":   "请指定要获取的设置项名称",

		// Backup
		"backup.none":     "没有找到备份。",
		"backup.list":     "CLAUDE.md 的备份:",
		"backup.restored": "已从备份 %s 恢复 CLAUDE.md",
		"backup.created":  "已创建备份: %s",
	},
}

// Init 初始化语言设置
func Init() error {
	manager, err := settings.NewManager()
	if err != nil {
		// 如果加载设置失败，使用默认语言
		return nil
	}

	SetLanguage(manager.GetLanguage())
	return nil
}

// SetLanguage 设置当前语言
func SetLanguage(lang string) {
	if lang == "en" || lang == "zh" {
		currentLanguage = lang
	}
}

// GetLanguage 获取当前语言
func GetLanguage() string {
	return currentLanguage
}

// T 翻译消息 (Translation)
func T(key string, args ...interface{}) string {
	langMessages, ok := messages[currentLanguage]
	if !ok {
		langMessages = messages["en"] // 降级到英文
	}

	msg, ok := langMessages[key]
	if !ok {
		return key // 如果找不到翻译，返回 key 本身
	}

	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}

	return msg
}
