package model

// Category rows form a tree through ParentID. Children are never stored on
// the parent; they are derived by looking up the parent index.
type Category struct {
	BaseModel
	Name        string  `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Description string  `gorm:"type:text" json:"description"`
	ParentID    *string `gorm:"type:varchar(40);index" json:"parentId"`
}

// CategoryNode is a derived, read-only tree view.
type CategoryNode struct {
	Category
	Children []*CategoryNode `json:"children"`
}

func (c *Category) Parent() string {
	if c.ParentID == nil {
		return ""
	}
	return *c.ParentID
}
