package types

import (
	"time"
)

type Category string

const (
	CategoryPipeFitting          Category = "pipe fitting"
	CategoryPipeAccessories      Category = "pipe accessories"
	CategoryMechanicalEquipment  Category = "mechanical equipment"
	CategorySpecialtyEquipment   Category = "specialty equipment"
	CategoryStructuralStiffeners Category = "structural stiffeners"
	CategoryOthers               Category = "others"

	// CategoryAll is a UI-only pseudo-category. It is never stored on a
	// record and only widens the grid filter to every record.
	CategoryAll Category = "all"
)

// Categories is the fixed set of storable categories. The filter bar renders
// from this list, not from the data, so empty categories still show up.
var Categories = []Category{
	CategoryPipeFitting,
	CategoryPipeAccessories,
	CategoryMechanicalEquipment,
	CategorySpecialtyEquipment,
	CategoryStructuralStiffeners,
	CategoryOthers,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) Label() string {
	switch c {
	case CategoryAll:
		return "ALL FAMILY'S"
	case CategoryPipeFitting:
		return "PIPE FITTINGS"
	case CategoryPipeAccessories:
		return "PIPE ACCESSORIES"
	case CategoryMechanicalEquipment:
		return "MECHANICAL EQUIPMENT"
	case CategorySpecialtyEquipment:
		return "SPECIALTY EQUIPMENT"
	case CategoryStructuralStiffeners:
		return "STRUCTURAL STIFFENERS"
	case CategoryOthers:
		return "OTHERS"
	}
	return string(c)
}

type Family struct {
	ID         string    `db:"id"`
	FamilyName string    `db:"family_name" form:"family_name"`
	Category   Category  `db:"category" form:"category"`
	ImageURL   string    `db:"image_url"`
	RvtFileURL string    `db:"rvt_file_url"`
	Rating     float64   `db:"rating" form:"rating"`
	UserID     string    `db:"user_id" form:"user_id"`
	CreatedAt  time.Time `db:"created_at"`
}
