package entity

// Category states.
const (
	CategoryActive = 0
	CategoryHidden = 1
)

// Category groups menus in the catalog.
type Category struct {
	ID    int64
	Name  string
	State int
}

// NewCategory builds an unsaved category.
func NewCategory(name string, state int) *Category {
	return &Category{Name: name, State: state}
}
