package task

const (
	// UncategorizedName is shown for tasks without a resolvable category.
	UncategorizedName = "Uncategorized"
	// DefaultCategoryColor is used for new categories and unresolved ones.
	DefaultCategoryColor = "#6366f1"
)

// Category groups tasks by subject.
type Category struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Color string `yaml:"color,omitempty" json:"color,omitempty"`
}

// ResolveCategory looks up id in categories. When id is empty or not found,
// it returns an "Uncategorized" category that keeps the requested id.
// A known category without a color gets DefaultCategoryColor.
func ResolveCategory(categories []Category, id string) Category {
	if id != "" {
		for _, c := range categories {
			if c.ID == id {
				if c.Color == "" {
					c.Color = DefaultCategoryColor
				}
				return c
			}
		}
	}
	return Category{ID: id, Name: UncategorizedName, Color: DefaultCategoryColor}
}

// FindCategory returns the index of the category with the given id, or -1.
func FindCategory(categories []Category, id string) int {
	for i, c := range categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}
