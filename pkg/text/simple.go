package text

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/walteh/replaceall/pkg/replace"
	"gitlab.com/tozd/go/errors"
)

// SimpleTextReplacer implements TextReplacer on top of replace.ReplaceAll
type SimpleTextReplacer struct{}

// NewSimpleTextReplacer creates a new SimpleTextReplacer
func NewSimpleTextReplacer() *SimpleTextReplacer {
	return &SimpleTextReplacer{}
}

// ReplaceText implements TextReplacer.ReplaceText
func (r *SimpleTextReplacer) ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
	}

	currentContent := string(originalContent)
	for i, rule := range rules {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("replacing text: %w", err)
		}

		count := 0
		repl := rule.Replacement
		counted := replace.FuncE(func(m replace.Match) (string, error) {
			count++
			return replace.Evaluate(repl, m)
		})

		newContent, err := replace.ReplaceAll(currentContent, rule.Search, counted)
		if err != nil {
			return nil, errors.Errorf("applying rule %d: %w", i, err)
		}

		zerolog.Ctx(ctx).Trace().
			Int("rule", i).
			Str("search", searchText(rule.Search)).
			Int("matches", count).
			Msg("applied replacement rule")

		result.ReplacementCount += count
		currentContent = newContent
	}

	result.ModifiedContent = []byte(currentContent)
	result.WasModified = currentContent != string(originalContent)
	return result, nil
}

// ValidateRules implements TextReplacer.ValidateRules
func (r *SimpleTextReplacer) ValidateRules(rules []ReplacementRule) error {
	for i, rule := range rules {
		if rule.Search == nil || rule.Search.Text() == "" {
			return errors.Errorf("rule %d: search is required", i)
		}
		if rule.Replacement == nil {
			return errors.Errorf("rule %d: replacement is required", i)
		}
		if err := replace.CheckGlobal("replaceAll", rule.Search); err != nil {
			return errors.Errorf("rule %d: %w", i, err)
		}
	}
	return nil
}

func searchText(s replace.Search) string {
	if s == nil {
		return ""
	}
	return s.Text()
}
