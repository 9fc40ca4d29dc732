package domain

import "strings"

// classificationRule assigns a category when every keyword appears in the
// normalized product name.
type classificationRule struct {
	keywords []string
	category Category
}

// classificationRules is evaluated in order; the first full match wins.
// The four rules are mutually exclusive by construction, so the order only
// fixes determinism. New categories are additions to this list.
var classificationRules = []classificationRule{
	{[]string{"GAS OIL", "GRADO 2"}, CategoryGasOil2},
	{[]string{"GAS OIL", "GRADO 3"}, CategoryGasOil3},
	{[]string{"NAFTA", "SUPER"}, CategoryNaftaSuper},
	{[]string{"NAFTA", "PREMIUM"}, CategoryNaftaPremium},
}

// ClassifyProduct maps a raw product name to its category, or
// CategoryUnknown when the product falls outside the taxonomy.
func ClassifyProduct(product string) Category {
	p := NormalizeText(product)
	for _, rule := range classificationRules {
		if containsAll(p, rule.keywords) {
			return rule.category
		}
	}
	return CategoryUnknown
}

func containsAll(text string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(text, kw) {
			return false
		}
	}
	return true
}
