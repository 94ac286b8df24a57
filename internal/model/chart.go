package model

// Chart is the 3-level chart of accounts: ordered level-1 groups, each with
// ordered level-2 categories, each with an ordered sequence of level-3 names.
// Names are unique within their parent scope. Mutating the chart never
// rewrites classifications already stored on transactions; stale strings are
// tolerated and reported by validation, not auto-repaired.
type Chart struct {
	Groups []ChartGroup
}

// ChartGroup is a level-1 node.
type ChartGroup struct {
	Name       string
	Categories []ChartCategory
}

// ChartCategory is a level-2 node.
type ChartCategory struct {
	Name  string
	Items []string // level-3 names
}

// Group returns the level-1 node with the given name.
func (c *Chart) Group(name string) (*ChartGroup, bool) {
	for i := range c.Groups {
		if c.Groups[i].Name == name {
			return &c.Groups[i], true
		}
	}
	return nil, false
}

// Category returns the level-2 node under a level-1 name.
func (c *Chart) Category(level1, level2 string) (*ChartCategory, bool) {
	g, ok := c.Group(level1)
	if !ok {
		return nil, false
	}
	for i := range g.Categories {
		if g.Categories[i].Name == level2 {
			return &g.Categories[i], true
		}
	}
	return nil, false
}

// HasPath reports whether every non-empty level of the classification exists
// at that position in the chart.
func (c *Chart) HasPath(path Classification) bool {
	if path.Level1 == "" {
		return path.Level2 == "" && path.Level3 == ""
	}
	g, ok := c.Group(path.Level1)
	if !ok {
		return false
	}
	if path.Level2 == "" {
		return path.Level3 == ""
	}
	var cat *ChartCategory
	for i := range g.Categories {
		if g.Categories[i].Name == path.Level2 {
			cat = &g.Categories[i]
			break
		}
	}
	if cat == nil {
		return false
	}
	if path.Level3 == "" {
		return true
	}
	for _, item := range cat.Items {
		if item == path.Level3 {
			return true
		}
	}
	return false
}
