package topology

import "strings"

// EdgeKind classifies an edge by the prefix of its id.
type EdgeKind int

const (
	// EdgeKindPlain covers structural edges of the original topology and any
	// edge without a recognised prefix.
	EdgeKindPlain EdgeKind = iota
	// EdgeKindSubcategory is a relationship between two subcategories.
	EdgeKindSubcategory
	// EdgeKindCrossCategory is a relationship crossing category boundaries.
	EdgeKindCrossCategory
)

// Id prefixes renderers rely on to choose edge styling. Changing them breaks
// existing consumers.
const (
	SubcategoryRelationshipPrefix   = "c2_relationship"
	CrossCategoryRelationshipPrefix = "cross_c1_c2_rel"
)

// KindOf returns the kind encoded in an edge id.
func KindOf(id string) EdgeKind {
	switch {
	case strings.HasPrefix(id, SubcategoryRelationshipPrefix):
		return EdgeKindSubcategory
	case strings.HasPrefix(id, CrossCategoryRelationshipPrefix):
		return EdgeKindCrossCategory
	default:
		return EdgeKindPlain
	}
}

// String returns a short name for the kind.
func (k EdgeKind) String() string {
	switch k {
	case EdgeKindSubcategory:
		return "subcategory"
	case EdgeKindCrossCategory:
		return "cross-category"
	default:
		return "plain"
	}
}
