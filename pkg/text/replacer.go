package text

import (
	"context"
	"io"

	"github.com/walteh/replaceall/pkg/replace"
)

// ReplacementRule defines a single text replacement operation
type ReplacementRule struct {
	// Search is what to look for: a replace.Literal or a compiled replace.Pattern
	Search replace.Search

	// Replacement is the literal text (with placeholders) or function to substitute
	Replacement replace.Replacement

	// FileFilterGlob limits the rule to matching files; empty matches every file
	FileFilterGlob string
}

// ReplacementResult contains the results of a text replacement operation
type ReplacementResult struct {
	// WasModified indicates if the content changed
	WasModified bool

	// ReplacementCount is the number of matches replaced across all rules
	ReplacementCount int

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements
	ModifiedContent []byte
}

// TextReplacer defines the interface for text replacement operations
type TextReplacer interface {
	// ReplaceText applies a set of replacement rules to the content, in order
	ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error)

	// ValidateRules checks that all rules are valid
	ValidateRules(rules []ReplacementRule) error
}
