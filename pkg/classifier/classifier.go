// Package classifier guesses the inventory category of a product from its
// free-text name. Invoices arrive in a mix of English and Polish, so both
// keyword sets are carried.
package classifier

import (
	"strings"

	"github.com/opsdash/inventory-import/pkg/models"
)

type keywordSet struct {
	category models.Category
	keywords []string
	// strong keywords score 3 instead of 1
	strong map[string]bool
}

func strongSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// keywordSets is evaluated in order; ties between maximal scores resolve
// to the earliest entry.
var keywordSets = []keywordSet{
	{
		category: models.CategoryHardware,
		keywords: []string{
			"laptop", "monitor", "komputer", "pc", "desktop", "server",
			"printer", "drukarka", "klawiatura", "myszka", "mouse", "keyboard",
			"dysk", "drive", "ssd", "hdd", "ram", "procesor", "cpu", "motherboard",
			"karta graficzna", "gpu", "pamięć", "płyta główna",
		},
		strong: strongSet("laptop", "komputer", "monitor", "pc", "desktop", "server"),
	},
	{
		category: models.CategorySoftware,
		keywords: []string{
			"licencja", "license", "software", "system", "windows", "office",
			"program", "application", "app", "subskrypcja", "subscription",
			"oprogramowanie", "antywirus", "adobe", "autocad",
		},
		strong: strongSet("licencja", "license", "software", "windows", "office"),
	},
	{
		category: models.CategoryFurniture,
		keywords: []string{
			"biurko", "desk", "krzesło", "chair", "fotel", "armchair",
			"szafka", "cabinet", "półka", "shelf", "lampa", "lamp",
			"stół", "table", "meble", "furniture",
		},
		strong: strongSet("biurko", "desk", "krzesło", "chair", "fotel", "meble", "furniture"),
	},
	{
		category: models.CategoryAccessories,
		keywords: []string{
			"kabel", "cable", "adapter", "przejściówka", "torba", "bag",
			"etui", "case", "słuchawki", "headphones", "głośnik", "speaker",
			"ładowarka", "charger", "power bank", "powerbank", "bateria", "battery",
			"dock", "stacja", "pamięć usb", "pendrive",
		},
		strong: strongSet("kabel", "cable", "adapter", "słuchawki", "headphones", "ładowarka", "charger"),
	},
}

// Classify maps a product name to its most likely category. Matching is
// case-insensitive and by substring, not word boundary: a name containing
// "desk" inside a longer word still counts towards furniture. Existing
// inventory was categorized with these semantics, so they must not be
// tightened.
func Classify(name string) models.Category {
	if name == "" {
		return models.CategoryOther
	}
	name = strings.ToLower(name)

	best := models.CategoryOther
	bestScore := 0
	for _, set := range keywordSets {
		score := 0
		for _, kw := range set.keywords {
			if !strings.Contains(name, kw) {
				continue
			}
			score++
			if set.strong[kw] {
				score += 2
			}
		}
		if score > bestScore {
			bestScore = score
			best = set.category
		}
	}
	return best
}
