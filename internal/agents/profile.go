package agents

import (
	"context"
	"fmt"
	"strings"

	"intervo/internal/config"
	"intervo/internal/llm"
	"intervo/internal/schema"
	"intervo/internal/structcall"
)

// ProfileExtractor pulls a candidate profile from the introduction message.
type ProfileExtractor struct {
	client   llm.Client
	settings *config.Settings
}

func NewProfileExtractor(client llm.Client, settings *config.Settings) *ProfileExtractor {
	return &ProfileExtractor{client: client, settings: settings}
}

// Extract parses the introduction message into a profile. The result is
// normalized (canonical level names, canonical skill spellings). On
// exhausted attempts an empty profile with an explicit assumption is
// returned.
func (p *ProfileExtractor) Extract(ctx context.Context, introduction string) (*schema.CandidateProfile, error) {
	messages := []llm.ChatMessage{
		{Role: llm.RoleSystem, Content: systemPrompt(config.RoleProfileExtractor)},
		{Role: llm.RoleUser, Content: fmt.Sprintf("Introduction message:\n%s", introduction)},
	}
	var out schema.CandidateProfile
	if err := structcall.ForJSON(ctx, p.client, messages, &out, callOptions(config.RoleProfileExtractor, p.settings)); err != nil {
		return ProfileFallback(), err
	}
	normalizeProfile(&out)
	return &out, nil
}

// ProfileFallback is the empty profile used when extraction fails.
func ProfileFallback() *schema.CandidateProfile {
	return &schema.CandidateProfile{
		Assumptions: []string{"LLM extraction failed"},
	}
}

var levelAliases = map[string]string{
	"intern": "junior",
	"jr":     "junior",
	"junior": "junior",
	"mid":    "middle",
	"middle": "middle",
	"sr":     "senior",
	"senior": "senior",
}

var skillAliases = map[string]string{
	"python":     "Python",
	"py":         "Python",
	"cpp":        "C++",
	"c++":        "C++",
	"js":         "JavaScript",
	"javascript": "JavaScript",
	"ts":         "TypeScript",
	"typescript": "TypeScript",
	"golang":     "Go",
	"go":         "Go",
	"sql":        "SQL",
	"postgres":   "PostgreSQL",
	"postgresql": "PostgreSQL",
	"git":        "Git",
}

func normalizeProfile(p *schema.CandidateProfile) {
	if canonical, ok := levelAliases[strings.ToLower(strings.TrimSpace(p.Level))]; ok {
		p.Level = canonical
	}
	seen := make(map[string]bool, len(p.Skills))
	var normalized []string
	for _, s := range p.Skills {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" {
			continue
		}
		canonical, ok := skillAliases[key]
		if !ok {
			canonical = strings.TrimSpace(s)
		}
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		normalized = append(normalized, canonical)
	}
	p.Skills = normalized
}
