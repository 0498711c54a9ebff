package models

// Category is the closed root-cause classification of a DeFi exploit.
// The zero value means "not yet classified".
type Category string

const (
	// CategoryContract covers code-level exploits (reentrancy, overflow,
	// flash-loan logic abuse, and similar).
	CategoryContract Category = "CONTRACT"

	// CategoryOperational covers key, infrastructure and social-engineering
	// failures.
	CategoryOperational Category = "OPERATIONAL"

	// CategoryOracle covers price-feed and oracle manipulation.
	CategoryOracle Category = "ORACLE"

	// CategoryGovernance covers rug pulls, admin-key abuse and malicious
	// upgrades.
	CategoryGovernance Category = "GOVERNANCE"
)

// ReportOrder is the stable ordering used for all per-category reports and
// artifacts. It is unrelated to classification precedence, which is owned by
// the classifier's rule table.
var ReportOrder = []Category{
	CategoryContract,
	CategoryOperational,
	CategoryOracle,
	CategoryGovernance,
}

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryContract, CategoryOperational, CategoryOracle, CategoryGovernance:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}
