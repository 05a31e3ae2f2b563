package service

import (
	"errors"
	"sync"

	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"
)

var (
	ErrCategoryNotFound       = errors.New("category not found")
	ErrParentCategoryNotFound = errors.New("parent category not found")
	ErrCategoryCycle          = errors.New("category cannot be moved under itself or a descendant")
)

type CategoryService interface {
	Create(req *model.Category, actor string) (*model.Category, error)
	Update(id string, req *model.Category, actor string) (*model.Category, error)
	// Delete removes the category and every descendant and returns the
	// removed IDs.
	Delete(id string) ([]string, error)
	Get(id string) (*model.Category, error)
	List() ([]model.Category, error)
	Tree() ([]*model.CategoryNode, error)
}

type categoryService struct {
	mu   sync.Mutex
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(req *model.Category, actor string) (*model.Category, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := *req
	c.BaseModel = model.BaseModel{ID: req.ID}
	c.ParentID = normalizeParent(req.ParentID)
	if c.ParentID != nil {
		if _, err := s.repo.FindByID(*c.ParentID); err != nil {
			return nil, notFound(err, ErrParentCategoryNotFound)
		}
	}
	c.Stamp(actor, now())
	if err := s.repo.Create(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *categoryService) Update(id string, req *model.Category, actor string) (*model.Category, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrCategoryNotFound)
	}

	parent := normalizeParent(req.ParentID)
	if parent != nil {
		all, err := s.repo.FindAll()
		if err != nil {
			return nil, err
		}
		idx := indexCategories(all)
		if _, ok := idx.byID[*parent]; !ok {
			return nil, ErrParentCategoryNotFound
		}
		if *parent == id || idx.isDescendant(*parent, id) {
			return nil, ErrCategoryCycle
		}
	}

	current.Name = req.Name
	current.Description = req.Description
	current.ParentID = parent
	current.Stamp(actor, now())
	if err := s.repo.Update(current); err != nil {
		return nil, notFound(err, ErrCategoryNotFound)
	}
	return current, nil
}

func (s *categoryService) Delete(id string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}
	idx := indexCategories(all)
	if _, ok := idx.byID[id]; !ok {
		return nil, ErrCategoryNotFound
	}

	ids := append([]string{id}, idx.descendants(id)...)
	if err := s.repo.Delete(ids...); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *categoryService) Get(id string) (*model.Category, error) {
	c, err := s.repo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrCategoryNotFound)
	}
	return c, nil
}

func (s *categoryService) List() ([]model.Category, error) {
	return s.repo.FindAll()
}

// Tree nests categories under their parents. Categories whose parent is
// missing are shown at the top level.
func (s *categoryService) Tree() ([]*model.CategoryNode, error) {
	all, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}
	return BuildCategoryTree(all), nil
}

func BuildCategoryTree(all []model.Category) []*model.CategoryNode {
	idx := indexCategories(all)
	var build func(c model.Category) *model.CategoryNode
	build = func(c model.Category) *model.CategoryNode {
		node := &model.CategoryNode{Category: c, Children: []*model.CategoryNode{}}
		for _, childID := range idx.children[c.ID] {
			node.Children = append(node.Children, build(idx.byID[childID]))
		}
		return node
	}

	roots := []*model.CategoryNode{}
	for _, c := range all {
		if _, ok := idx.byID[c.Parent()]; ok {
			continue
		}
		roots = append(roots, build(c))
	}
	return roots
}

type categoryIndex struct {
	byID     map[string]model.Category
	children map[string][]string
}

func indexCategories(all []model.Category) categoryIndex {
	idx := categoryIndex{
		byID:     make(map[string]model.Category, len(all)),
		children: make(map[string][]string),
	}
	for _, c := range all {
		idx.byID[c.ID] = c
	}
	for _, c := range all {
		if p := c.Parent(); p != "" {
			if _, ok := idx.byID[p]; ok {
				idx.children[p] = append(idx.children[p], c.ID)
			}
		}
	}
	return idx
}

// descendants lists every category below id, breadth first.
func (idx categoryIndex) descendants(id string) []string {
	var out []string
	seen := map[string]bool{id: true}
	queue := []string{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range idx.children[cur] {
			if seen[child] {
				continue
			}
			seen[child] = true
			out = append(out, child)
			queue = append(queue, child)
		}
	}
	return out
}

func (idx categoryIndex) isDescendant(candidate, ancestor string) bool {
	for _, d := range idx.descendants(ancestor) {
		if d == candidate {
			return true
		}
	}
	return false
}

func normalizeParent(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	v := *p
	return &v
}
