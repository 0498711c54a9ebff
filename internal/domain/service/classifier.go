// Package service holds the domain services of the calibration pipeline.
package service

import (
	"strings"

	"github.com/vaultrisk/calibration/internal/domain/models"
)

// CategoryRule binds one category to its keyword list. Rules are evaluated in
// slice order with first match winning, so the precedence between categories
// is carried by the ordering of the rule table, not by control flow.
type CategoryRule struct {
	Category models.Category
	Keywords []string
}

// DefaultRules is the canonical precedence-ordered rule table.
//
// GOVERNANCE is checked first: rug-pull and admin-key terms are the most
// distinctive and would otherwise be masked by generic contract vocabulary.
// ORACLE precedes OPERATIONAL and CONTRACT because oracle-manipulation
// language is specific and would fall through to the broad CONTRACT bucket.
// CONTRACT is last and also the fallback.
func DefaultRules() []CategoryRule {
	return []CategoryRule{
		{
			Category: models.CategoryGovernance,
			Keywords: []string{
				"rug pull", "rugpull", "admin key", "malicious upgrade",
				"governance attack", "backdoor", "owner",
			},
		},
		{
			Category: models.CategoryOracle,
			Keywords: []string{
				"oracle manipulation", "price feed", "stale price", "twap",
				"oracle failure", "price oracle", "oracle", "price manipulation",
			},
		},
		{
			Category: models.CategoryOperational,
			Keywords: []string{
				"key compromise", "private key", "bridge", "frontend", "dns",
				"infrastructure", "social engineering", "insider", "supply chain",
				"compromised", "phishing", "stolen key", "hot wallet", "cold wallet",
				"internal", "employee", "credential",
			},
		},
		{
			Category: models.CategoryContract,
			Keywords: []string{
				"reentrancy", "access control", "logic error", "flash loan",
				"flashloan", "overflow", "underflow", "rounding", "protocol logic",
				"smart contract", "infinite mint", "integer", "input validation",
				"front-end", "uninitialized", "delegate", "self-destruct",
				"constructor", "signature", "replay", "compiler", "language",
			},
		},
	}
}

// Classifier assigns a root-cause category to an exploit's text fields.
// It is a pure function of its inputs; the rule table is immutable after
// construction.
type Classifier struct {
	rules    []CategoryRule
	fallback models.Category
}

// NewClassifier creates a classifier over the given precedence-ordered rules.
// Unmatched text falls back to CONTRACT: most unclassified incidents in this
// domain are code-level bugs.
func NewClassifier(rules []CategoryRule) *Classifier {
	return &Classifier{
		rules:    rules,
		fallback: models.CategoryContract,
	}
}

// NewDefaultClassifier creates a classifier with the canonical rule table.
func NewDefaultClassifier() *Classifier {
	return NewClassifier(DefaultRules())
}

// Classify maps the technique and target-type text of one exploit to a
// category. Matching is unanchored substring search over the lower-cased,
// space-joined text; the first rule with any matching keyword wins.
func (c *Classifier) Classify(technique, targetType string) models.Category {
	text := strings.ToLower(technique + " " + targetType)

	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule.Category
			}
		}
	}

	return c.fallback
}
