package costing

import "github.com/jhoicas/Cocina-api/internal/domain/entity"

// ProductFinder búsqueda de productos por ID. ok=false si no existe.
type ProductFinder interface {
	FindProductByID(id string) (*entity.Product, bool)
}

// RecipeFinder búsqueda de recetas por ID. ok=false si no existe.
type RecipeFinder interface {
	FindRecipeByID(id string) (*entity.Recipe, bool)
}

// Catalog agrupa ambas búsquedas; es lo que consumen los motores.
type Catalog interface {
	ProductFinder
	RecipeFinder
}

// MemoryCatalog catálogo en memoria, inmutable durante un cálculo.
type MemoryCatalog struct {
	products map[string]*entity.Product
	recipes  map[string]*entity.Recipe
}

var _ Catalog = (*MemoryCatalog)(nil)

// NewMemoryCatalog indexa productos y recetas por ID. Los nil se ignoran.
func NewMemoryCatalog(products []*entity.Product, recipes []*entity.Recipe) *MemoryCatalog {
	c := &MemoryCatalog{
		products: make(map[string]*entity.Product, len(products)),
		recipes:  make(map[string]*entity.Recipe, len(recipes)),
	}
	for _, p := range products {
		if p != nil {
			c.products[p.ID] = p
		}
	}
	for _, r := range recipes {
		if r != nil {
			c.recipes[r.ID] = r
		}
	}
	return c
}

// FindProductByID implementa ProductFinder.
func (c *MemoryCatalog) FindProductByID(id string) (*entity.Product, bool) {
	p, ok := c.products[id]
	return p, ok
}

// FindRecipeByID implementa RecipeFinder.
func (c *MemoryCatalog) FindRecipeByID(id string) (*entity.Recipe, bool) {
	r, ok := c.recipes[id]
	return r, ok
}

