package usecase_test

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

const (
	brandID    = "aaaaaaaa-0000-0000-0000-000000000001"
	modelID    = "aaaaaaaa-0000-0000-0000-000000000002"
	categoryID = "aaaaaaaa-0000-0000-0000-000000000003"
)

type productFixture struct {
	uc        *usecase.ProductUseCase
	products  *fakeProducts
	images    *fakeImages
	movements *fakeMovements
}

func newProductFixture() productFixture {
	products, images := newFakeProducts(), newFakeImages()
	movements := &fakeMovements{countByProduct: map[string]int{}}
	brands := newLookup(func(b *entity.Brand) *string { return &b.ID })
	brands.items = []entity.Brand{{ID: brandID, Name: "Axis"}}
	uc := usecase.NewProductUseCase(usecase.ProductDeps{
		TxRunner:   fakeCatalogTx{products: products, images: images},
		Products:   products,
		Images:     images,
		Movements:  movements,
		Brands:     brands,
		Categories: newLookup(func(c *entity.Category) *string { return &c.ID }),
		Models:     newLookup(func(m *entity.Model) *string { return &m.ID }),
		Locations:  newLookup(func(l *entity.Location) *string { return &l.ID }),
	})
	return productFixture{uc: uc, products: products, images: images, movements: movements}
}

func image(mime string) dto.FileDTO {
	return dto.FileDTO{Filename: "photo", Mime: mime, Data: base64.StdEncoding.EncodeToString([]byte{0xFF, 0xD8, 0xFF})}
}

func validProduct() dto.ProductRequest {
	qty := 3
	return dto.ProductRequest{
		Name:          " Caméra dôme ",
		BrandID:       brandID,
		ModelID:       modelID,
		CategoryID:    categoryID,
		SKU:           "CAM-02",
		Quantity:      &qty,
		SerialNumbers: []string{"S1", "S2", "S1"},
		Images:        []dto.FileDTO{image("image/jpeg"), image("image/PNG")},
	}
}

func TestProductCreate_GuardaProductoEImagenes(t *testing.T) {
	f := newProductFixture()

	out, err := f.uc.Create(context.Background(), validProduct())
	require.NoError(t, err)

	assert.Equal(t, "Caméra dôme", out.Name)
	assert.Equal(t, 3, out.Quantity)
	assert.Equal(t, []string{"S1", "S2"}, out.SerialNumbers)
	require.Len(t, out.Images, 2)
	assert.Equal(t, 0, out.Images[0].Order)
	assert.Equal(t, "image/png", out.Images[1].Mime)
	require.NotNil(t, out.Images[0].Data)
}

func TestProductCreate_ValidaImagenes(t *testing.T) {
	cases := map[string][]dto.FileDTO{
		"sin imágenes":  nil,
		"más de seis":   {image("image/png"), image("image/png"), image("image/png"), image("image/png"), image("image/png"), image("image/png"), image("image/png")},
		"mime inválido": {image("application/pdf")},
		"base64 roto":   {{Filename: "x", Mime: "image/png", Data: "***"}},
	}
	for name, imgs := range cases {
		t.Run(name, func(t *testing.T) {
			f := newProductFixture()
			in := validProduct()
			in.Images = imgs

			_, err := f.uc.Create(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Empty(t, f.products.byID)
		})
	}
}

func TestProductUpdate_NoModificaCantidadNiSeriales(t *testing.T) {
	f := newProductFixture()
	created, err := f.uc.Create(context.Background(), validProduct())
	require.NoError(t, err)

	in := validProduct()
	in.Name = "Caméra bullet"
	zero := 0
	in.Quantity = &zero
	in.SerialNumbers = []string{"X"}
	in.Images = []dto.FileDTO{image("image/webp")}

	out, err := f.uc.Update(context.Background(), created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Caméra bullet", out.Name)
	assert.Equal(t, 3, out.Quantity)
	assert.Equal(t, []string{"S1", "S2"}, out.SerialNumbers)
	require.Len(t, out.Images, 1)
	assert.Equal(t, "image/webp", out.Images[0].Mime)
}

func TestProductUpdate_Inexistente(t *testing.T) {
	f := newProductFixture()
	_, err := f.uc.Update(context.Background(), "bbbbbbbb-0000-0000-0000-000000000000", validProduct())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductDelete_ConMovimientosEsConflicto(t *testing.T) {
	f := newProductFixture()
	created, err := f.uc.Create(context.Background(), validProduct())
	require.NoError(t, err)

	f.movements.countByProduct[created.ID] = 2
	assert.ErrorIs(t, f.uc.Delete(context.Background(), created.ID), domain.ErrConflict)

	f.movements.countByProduct[created.ID] = 0
	assert.NoError(t, f.uc.Delete(context.Background(), created.ID))

	_, err = f.uc.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductFormData(t *testing.T) {
	f := newProductFixture()

	out, err := f.uc.FormData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entity.Brand{{ID: brandID, Name: "Axis"}}, out.Brands)
}
