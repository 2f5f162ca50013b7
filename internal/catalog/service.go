package catalog

import "sort"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() []Product {
	return s.repo.List()
}

// Search runs the filter/sort engine over the full catalog. An empty result
// is normal, not an error.
func (s *Service) Search(f Filter) []Product {
	return f.Apply(s.repo.List())
}

func (s *Service) GetByID(id string) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(p Product) (Product, error) {
	return s.repo.Create(p)
}

func (s *Service) Update(id string, p Product) (Product, error) {
	return s.repo.Update(id, p)
}

func (s *Service) Delete(id string) error {
	return s.repo.Delete(id)
}

// Categories returns the distinct category names, sorted.
func (s *Service) Categories() []string {
	return distinct(s.repo.List(), func(p Product) string { return p.Category })
}

// Brands returns the distinct brand names, sorted.
func (s *Service) Brands() []string {
	return distinct(s.repo.List(), func(p Product) string { return p.Brand })
}

// Featured returns the top-rated products for the home page, at most n.
func (s *Service) Featured(n int) []Product {
	top := Filter{Sort: SortRating}.Apply(s.repo.List())
	if len(top) > n {
		top = top[:n]
	}
	return top
}

func distinct(products []Product, key func(Product) string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, p := range products {
		k := key(p)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
