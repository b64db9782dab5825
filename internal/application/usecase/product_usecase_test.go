package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cocina-api/internal/application/dto"
	"github.com/jhoicas/Cocina-api/internal/application/usecase"
	"github.com/jhoicas/Cocina-api/internal/domain"
	"github.com/jhoicas/Cocina-api/internal/domain/entity"
)

func newProductUC() (*usecase.ProductUseCase, *productRepo, *spyCache) {
	repo := &productRepo{items: map[string]*entity.Product{}}
	cache := &spyCache{}
	return usecase.NewProductUseCase(repo, cache, zerolog.Nop()), repo, cache
}

func TestProductCreate_RendimientoPorDefectoYUnidadBase(t *testing.T) {
	uc, _, _ := newProductUC()

	out, err := uc.Create(context.Background(), "c1", dto.CreateProductRequest{Name: "  Cebolla ", BuyPriceGlobal: dec("3")})
	require.NoError(t, err)
	assert.Equal(t, "Cebolla", out.Name)
	assert.Equal(t, "gram", out.BaseUnit)
	assert.True(t, dec("1").Equal(out.YieldFactor))
	assert.True(t, out.WastePercent.IsZero())
	assert.NotEmpty(t, out.ID)
}

func TestProductCreate_YieldFactorTienePrioridadSobreMerma(t *testing.T) {
	uc, _, _ := newProductUC()

	out, err := uc.Create(context.Background(), "c1", dto.CreateProductRequest{
		Name: "Papa", YieldFactor: ptr(dec("0.8")), WastePercent: ptr(dec("50")),
	})
	require.NoError(t, err)
	assert.True(t, dec("0.8").Equal(out.YieldFactor))
	assert.True(t, dec("20").Equal(out.WastePercent))

	out, err = uc.Create(context.Background(), "c1", dto.CreateProductRequest{Name: "Yuca", WastePercent: ptr(dec("25"))})
	require.NoError(t, err)
	assert.True(t, dec("0.75").Equal(out.YieldFactor))
}

func TestProductCreate_EntradaInvalida(t *testing.T) {
	uc, _, _ := newProductUC()
	ctx := context.Background()

	tests := []struct {
		name string
		in   dto.CreateProductRequest
	}{
		{"sin nombre", dto.CreateProductRequest{Name: " "}},
		{"precio negativo", dto.CreateProductRequest{Name: "x", BuyPriceGlobal: dec("-1")}},
		{"rendimiento mayor a 1", dto.CreateProductRequest{Name: "x", YieldFactor: ptr(dec("1.2"))}},
		{"opción sin símbolo", dto.CreateProductRequest{Name: "x", PurchaseOptions: []dto.PurchaseOptionDTO{{ConversionRate: dec("1")}}}},
		{"override negativo", dto.CreateProductRequest{Name: "x", PurchaseOptions: []dto.PurchaseOptionDTO{
			{UnitSymbol: "caja", ConversionRate: dec("1"), PriceOverride: ptr(dec("-3"))},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(ctx, "c1", tt.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestProductUpdate_InvalidaCacheDeLaEmpresa(t *testing.T) {
	uc, _, cache := newProductUC()
	ctx := context.Background()
	created, err := uc.Create(ctx, "c1", dto.CreateProductRequest{Name: "Leche", BuyPriceGlobal: dec("2")})
	require.NoError(t, err)
	assert.Empty(t, cache.invalidated, "crear no afecta costos existentes")

	out, err := uc.Update(ctx, "c1", created.ID, dto.UpdateProductRequest{BuyPriceGlobal: ptr(dec("3"))})
	require.NoError(t, err)
	assert.True(t, dec("3").Equal(out.BuyPriceGlobal))
	assert.Equal(t, []string{"c1"}, cache.invalidated)
}

func TestProductUpdate_FalloDeCacheNoFallaLaOperacion(t *testing.T) {
	uc, _, cache := newProductUC()
	ctx := context.Background()
	created, err := uc.Create(ctx, "c1", dto.CreateProductRequest{Name: "Leche"})
	require.NoError(t, err)
	cache.err = errDB

	_, err = uc.Update(ctx, "c1", created.ID, dto.UpdateProductRequest{Name: ptr("Leche entera")})
	assert.NoError(t, err)
}

func TestProduct_OtraEmpresaEsNoEncontrado(t *testing.T) {
	uc, _, _ := newProductUC()
	ctx := context.Background()
	created, err := uc.Create(ctx, "c1", dto.CreateProductRequest{Name: "Sal"})
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, "c2", created.ID)
	assert.NoError(t, err)
	assert.Nil(t, got)

	upd, err := uc.Update(ctx, "c2", created.ID, dto.UpdateProductRequest{Name: ptr("robada")})
	assert.NoError(t, err)
	assert.Nil(t, upd)

	assert.ErrorIs(t, uc.Delete(ctx, "c2", created.ID), domain.ErrNotFound)
	assert.NoError(t, uc.Delete(ctx, "c1", created.ID))
}
