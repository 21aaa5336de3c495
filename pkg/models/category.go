package models

// Category is the classification bucket for inventory items. The values
// match what the equipment backend stores in its type column.
type Category string

const (
	CategoryHardware    Category = "hardware"
	CategorySoftware    Category = "software"
	CategoryFurniture   Category = "furniture"
	CategoryAccessories Category = "accessories"
	CategoryOther       Category = "other"
)

// Categories lists every bucket in declaration order. The order matters:
// the classifier breaks score ties by picking the first maximal bucket.
var Categories = []Category{
	CategoryHardware,
	CategorySoftware,
	CategoryFurniture,
	CategoryAccessories,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}
