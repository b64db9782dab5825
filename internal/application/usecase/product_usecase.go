package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cocina-api/internal/application/dto"
	"github.com/jhoicas/Cocina-api/internal/application/ports"
	"github.com/jhoicas/Cocina-api/internal/domain"
	"github.com/jhoicas/Cocina-api/internal/domain/costing"
	"github.com/jhoicas/Cocina-api/internal/domain/entity"
	"github.com/jhoicas/Cocina-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Cualquier cambio invalida el costeo
// cacheado de la empresa.
type ProductUseCase struct {
	repo  repository.ProductRepository
	cache ports.CostCache
	log   zerolog.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, cache ports.CostCache, log zerolog.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, cache: cache, log: log}
}

// resolveYield prioriza yield_factor; si solo llega waste_percent lo convierte.
func resolveYield(yield, waste *decimal.Decimal) (decimal.Decimal, bool) {
	switch {
	case yield != nil:
		if yield.IsNegative() || yield.GreaterThan(decimal.NewFromInt(1)) {
			return decimal.Zero, false
		}
		return *yield, true
	case waste != nil:
		return costing.HandleWasteChange(*waste).YieldFactor, true
	default:
		return decimal.Zero, false
	}
}

// Create crea un nuevo producto. Sin rendimiento informado se asume 1 (sin merma).
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.BuyPriceGlobal.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	yield := decimal.NewFromInt(1)
	if in.YieldFactor != nil || in.WastePercent != nil {
		y, ok := resolveYield(in.YieldFactor, in.WastePercent)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		yield = y
	}
	opts, err := toPurchaseOptions(in.PurchaseOptions)
	if err != nil {
		return nil, err
	}
	baseUnit := strings.TrimSpace(in.BaseUnit)
	if baseUnit == "" {
		baseUnit = "gram"
	}
	now := time.Now()
	product := &entity.Product{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		Name:            name,
		Category:        strings.TrimSpace(in.Category),
		BuyPriceGlobal:  in.BuyPriceGlobal,
		BaseUnit:        baseUnit,
		YieldFactor:     yield,
		PurchaseOptions: opts,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto de la empresa. nil, nil si no existe o es de otra empresa.
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.find(ctx, companyID, id)
	if err != nil || product == nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

func (uc *ProductUseCase) find(ctx context.Context, companyID, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, nil
	}
	return product, nil
}

// Update actualización parcial. nil, nil si no existe.
func (uc *ProductUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.find(ctx, companyID, id)
	if err != nil || product == nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.BuyPriceGlobal != nil {
		if in.BuyPriceGlobal.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.BuyPriceGlobal = *in.BuyPriceGlobal
	}
	if in.BaseUnit != nil && strings.TrimSpace(*in.BaseUnit) != "" {
		product.BaseUnit = strings.TrimSpace(*in.BaseUnit)
	}
	if in.YieldFactor != nil || in.WastePercent != nil {
		y, ok := resolveYield(in.YieldFactor, in.WastePercent)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		product.YieldFactor = y
	}
	if in.PurchaseOptions != nil {
		opts, err := toPurchaseOptions(in.PurchaseOptions)
		if err != nil {
			return nil, err
		}
		product.PurchaseOptions = opts
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, companyID)
	return toProductResponse(product), nil
}

// List lista productos por empresa con paginación.
func (uc *ProductUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina el producto. Las recetas que lo usan no se tocan: esa línea pasa a costar 0.
func (uc *ProductUseCase) Delete(ctx context.Context, companyID, id string) error {
	product, err := uc.find(ctx, companyID, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, companyID)
	return nil
}

func (uc *ProductUseCase) invalidate(ctx context.Context, companyID string) {
	if err := uc.cache.Invalidate(ctx, companyID); err != nil {
		uc.log.Warn().Err(err).Str("company_id", companyID).Msg("no se pudo invalidar la caché de costos")
	}
}
