// Package chart provides lookup and mutation operations over the 3-level
// chart of accounts. Nodes are addressed by typed classification paths, not
// delimiter-joined strings.
package chart

import (
	"fmt"

	"github.com/fluxo-dev/fluxo/internal/model"
)

// Service wraps a Chart with ordered lookups and mutations. Mutations keep
// names unique within their parent scope and never rewrite classification
// strings already stored on transactions.
type Service struct {
	chart *model.Chart
}

// NewService creates a Service over an existing chart.
func NewService(c *model.Chart) *Service {
	return &Service{chart: c}
}

// Level1 returns the ordered level-1 names.
func (s *Service) Level1() []string {
	names := make([]string, 0, len(s.chart.Groups))
	for _, g := range s.chart.Groups {
		names = append(names, g.Name)
	}
	return names
}

// Level2 returns the ordered level-2 names under a level-1 node.
func (s *Service) Level2(level1 string) []string {
	g, ok := s.chart.Group(level1)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(g.Categories))
	for _, c := range g.Categories {
		names = append(names, c.Name)
	}
	return names
}

// Level3 returns the ordered level-3 names under a level-2 node.
func (s *Service) Level3(level1, level2 string) []string {
	c, ok := s.chart.Category(level1, level2)
	if !ok {
		return nil
	}
	items := make([]string, len(c.Items))
	copy(items, c.Items)
	return items
}

// HasPath reports whether the path exists in the chart.
func (s *Service) HasPath(path model.Classification) bool {
	return s.chart.HasPath(path)
}

// Add inserts a node at the depth of the path. The parent levels must
// already exist and the new name must be unique within its parent.
func (s *Service) Add(path model.Classification) error {
	switch path.Depth() {
	case 1:
		if _, ok := s.chart.Group(path.Level1); ok {
			return fmt.Errorf("level 1 %q already exists", path.Level1)
		}
		s.chart.Groups = append(s.chart.Groups, model.ChartGroup{Name: path.Level1})
	case 2:
		g, ok := s.chart.Group(path.Level1)
		if !ok {
			return fmt.Errorf("level 1 %q not found", path.Level1)
		}
		for _, c := range g.Categories {
			if c.Name == path.Level2 {
				return fmt.Errorf("level 2 %q already exists under %q", path.Level2, path.Level1)
			}
		}
		g.Categories = append(g.Categories, model.ChartCategory{Name: path.Level2})
	case 3:
		c, ok := s.chart.Category(path.Level1, path.Level2)
		if !ok {
			return fmt.Errorf("level 2 %q/%q not found", path.Level1, path.Level2)
		}
		for _, item := range c.Items {
			if item == path.Level3 {
				return fmt.Errorf("level 3 %q already exists under %q", path.Level3, path.Level2)
			}
		}
		c.Items = append(c.Items, path.Level3)
	default:
		return fmt.Errorf("empty path")
	}
	return nil
}

// Rename changes the name of the node addressed by path. Transactions
// classified under the old name keep their stale strings; validation reports
// them instead of auto-repairing.
func (s *Service) Rename(path model.Classification, newName string) error {
	if newName == "" {
		return fmt.Errorf("new name is empty")
	}
	switch path.Depth() {
	case 1:
		if _, ok := s.chart.Group(newName); ok {
			return fmt.Errorf("level 1 %q already exists", newName)
		}
		g, ok := s.chart.Group(path.Level1)
		if !ok {
			return fmt.Errorf("level 1 %q not found", path.Level1)
		}
		g.Name = newName
	case 2:
		g, ok := s.chart.Group(path.Level1)
		if !ok {
			return fmt.Errorf("level 1 %q not found", path.Level1)
		}
		for _, c := range g.Categories {
			if c.Name == newName {
				return fmt.Errorf("level 2 %q already exists under %q", newName, path.Level1)
			}
		}
		c, ok := s.chart.Category(path.Level1, path.Level2)
		if !ok {
			return fmt.Errorf("level 2 %q/%q not found", path.Level1, path.Level2)
		}
		c.Name = newName
	case 3:
		c, ok := s.chart.Category(path.Level1, path.Level2)
		if !ok {
			return fmt.Errorf("level 2 %q/%q not found", path.Level1, path.Level2)
		}
		for _, item := range c.Items {
			if item == newName {
				return fmt.Errorf("level 3 %q already exists under %q", newName, path.Level2)
			}
		}
		for i, item := range c.Items {
			if item == path.Level3 {
				c.Items[i] = newName
				return nil
			}
		}
		return fmt.Errorf("level 3 %q not found", path.Level3)
	default:
		return fmt.Errorf("empty path")
	}
	return nil
}

// Delete removes the node addressed by path, including its children.
func (s *Service) Delete(path model.Classification) error {
	switch path.Depth() {
	case 1:
		for i, g := range s.chart.Groups {
			if g.Name == path.Level1 {
				s.chart.Groups = append(s.chart.Groups[:i], s.chart.Groups[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("level 1 %q not found", path.Level1)
	case 2:
		g, ok := s.chart.Group(path.Level1)
		if !ok {
			return fmt.Errorf("level 1 %q not found", path.Level1)
		}
		for i, c := range g.Categories {
			if c.Name == path.Level2 {
				g.Categories = append(g.Categories[:i], g.Categories[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("level 2 %q not found under %q", path.Level2, path.Level1)
	case 3:
		c, ok := s.chart.Category(path.Level1, path.Level2)
		if !ok {
			return fmt.Errorf("level 2 %q/%q not found", path.Level1, path.Level2)
		}
		for i, item := range c.Items {
			if item == path.Level3 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("level 3 %q not found under %q", path.Level3, path.Level2)
	default:
		return fmt.Errorf("empty path")
	}
}
