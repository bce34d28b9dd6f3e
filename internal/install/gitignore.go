package install

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/conn-castle/multi-agent-kit/internal/messages"
)

// IgnoreMarker heads the toolkit section of the target's root .gitignore.
const IgnoreMarker = "# Added by Multi-Agent Workflow Kit"

// IgnorePatterns are the root .gitignore lines the toolkit requires, in the
// order they are written.
var IgnorePatterns = []string{
	"/.agents",
	"/agents",
	"/.envrc",
	".claude/settings.local.json",
	".claude/*",
	"!.claude/commands/",
	".codex/*",
	"!.codex/prompts/",
	"!.codex/prompts/**",
	// Toolkit-generated prompt files.
	".claude/commands/maw.*",
	".codex/prompts/maw*.md",
}

func (inst *Installer) reconcileGitignore() error {
	path := filepath.Join(inst.root, ".gitignore")
	existing, err := inst.sys.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf(messages.InstallFailedReadFmt, path, err)
		}
		content := IgnoreMarker + "\n" + strings.Join(IgnorePatterns, "\n") + "\n"
		return inst.writeFile(path, []byte(content), filePerm)
	}

	updated, changed := appendIgnorePatterns(string(existing), IgnoreMarker, IgnorePatterns)
	if !changed {
		return nil
	}
	return inst.writeFile(path, []byte(updated), inst.modeOf(path))
}

// appendIgnorePatterns returns content with every required pattern that is not
// already present as a line appended at the end. Existing lines are never
// rewritten or reordered. The marker is added ahead of the appended patterns
// when the file does not already carry it.
func appendIgnorePatterns(content string, marker string, required []string) (string, bool) {
	present := make(map[string]struct{})
	for _, line := range strings.Split(content, "\n") {
		present[strings.TrimSpace(line)] = struct{}{}
	}

	var missing []string
	for _, pattern := range required {
		if _, ok := present[pattern]; ok {
			continue
		}
		present[pattern] = struct{}{}
		missing = append(missing, pattern)
	}
	if len(missing) == 0 {
		return content, false
	}

	var b strings.Builder
	b.WriteString(content)
	if content != "" && !strings.HasSuffix(content, "\n") {
		b.WriteString("\n")
	}
	if _, ok := present[marker]; !ok {
		if content != "" {
			b.WriteString("\n")
		}
		b.WriteString(marker)
		b.WriteString("\n")
	}
	b.WriteString(strings.Join(missing, "\n"))
	b.WriteString("\n")
	return b.String(), true
}
