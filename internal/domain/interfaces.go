package domain

// ListItem is the polymorphic interface for rows displayed in list columns.
// Categories and cocktail summaries implement it directly.
type ListItem interface {
	// GetID returns the unique identifier for this item
	GetID() string

	// GetTitle returns the display title
	GetTitle() string

	// GetItemType returns the type identifier: "cocktail" or "category"
	GetItemType() string

	// CanDrillDown returns true if this item opens another column
	CanDrillDown() bool
}

func (s CocktailSummary) GetID() string       { return string(s.ID) }
func (s CocktailSummary) GetTitle() string    { return s.Name }
func (s CocktailSummary) GetItemType() string { return "cocktail" }
func (s CocktailSummary) CanDrillDown() bool  { return true }

func (c Category) GetID() string       { return c.Name }
func (c Category) GetTitle() string    { return c.Name }
func (c Category) GetItemType() string { return "category" }
func (c Category) CanDrillDown() bool  { return true }
