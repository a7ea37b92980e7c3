package importer

import (
	"strings"

	"github.com/23sarmiento78/BOLUSHOP/internal/domain"
)

// CategoryRule scores one category: each keyword found as a substring of
// the row's text adds the rule's weight once.
type CategoryRule struct {
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
	Weight   int      `json:"weight"`
}

// DefaultCategoryRules returns the built-in keyword rules, tuned for the
// Spanish-language product names the supplier feeds use.
func DefaultCategoryRules() []CategoryRule {
	return []CategoryRule{
		{
			Category: "cocina",
			Keywords: []string{
				"sarten", "olla", "cuchillo", "afilador", "molde", "rallador", "picadora",
				"churrera", "batidora", "hornalla", "plato", "vajilla", "cocina", "asera",
				"silicona", "utensilio", "espumadera", "cucharon", "cubetera", "hielo", "mate",
			},
			Weight: 2,
		},
		{
			Category: "hogar",
			Keywords: []string{
				"organizador", "cepillo", "limpieza", "baño", "estuche", "mopa", "taza",
				"vaso", "termo", "canilla", "grifo", "ducha", "jabon", "toalla", "percha",
				"almohada", "saca pelusa", "dispenser", "rociador",
			},
			Weight: 1,
		},
		{
			Category: "tech",
			Keywords: []string{
				"reloj", "auricular", "cable", "cargador", "usb", "bluetooth", "parlante",
				"smart", "digital", "led", "foco", "lampara", "mouse", "teclado", "gamer",
				"celular", "funda", "soporte",
			},
			Weight: 2,
		},
		{
			Category: "aire-libre",
			Keywords: []string{
				"anafe", "camping", "carpa", "linterna", "botella", "vianda", "lonchera",
				"termico", "pesca", "jardin", "parrilla", "asado", "exterior", "mosquit",
			},
			Weight: 2,
		},
		{
			Category: "belleza",
			Keywords: []string{
				"maquillaje", "espejo", "cosmetico", "crema", "perfume", "masajeador",
				"facial", "uñas", "pelo", "secador", "depiladora",
			},
			Weight: 2,
		},
	}
}

// CategoryDetector assigns a category to uncategorized rows by keyword
// scoring over name plus description.
type CategoryDetector struct {
	rules []CategoryRule
}

// NewCategoryDetector creates a detector over the given rules; nil means
// the defaults.
func NewCategoryDetector(rules []CategoryRule) *CategoryDetector {
	if rules == nil {
		rules = DefaultCategoryRules()
	}
	return &CategoryDetector{rules: rules}
}

// Detect returns the best-scoring category, or the generic default when no
// rule matches. A new best must score strictly higher, so ties keep the
// earlier rule.
func (d *CategoryDetector) Detect(name, description string) string {
	text := strings.ToLower(name + " " + description)

	best := domain.DefaultCategory
	maxScore := 0
	for _, rule := range d.rules {
		score := 0
		for _, kw := range rule.Keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				score += rule.Weight
			}
		}
		if score > maxScore {
			maxScore = score
			best = rule.Category
		}
	}
	return best
}
