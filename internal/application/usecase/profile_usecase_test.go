package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/andea-legal/lawyers-api/internal/application/dto"
	"github.com/andea-legal/lawyers-api/internal/domain"
	"github.com/andea-legal/lawyers-api/internal/domain/entity"
	"github.com/andea-legal/lawyers-api/internal/domain/schema"
	"github.com/andea-legal/lawyers-api/internal/testutil"
	"github.com/andea-legal/lawyers-api/pkg/logger"
	"github.com/andea-legal/lawyers-api/pkg/mediaurl"
)

func newProfileUC(t *testing.T) (*ProfileUseCase, *testutil.ProfileStore) {
	t.Helper()
	store := testutil.NewProfileStore()
	rw := mediaurl.New("https://assets.example.com", "/media")
	log := logger.New(logger.Config{Level: "error"})
	return NewProfileUseCase(store, rw, log), store
}

func validContent(t *testing.T) entity.ContentData {
	t.Helper()
	cd, err := schema.ShapeContent(testutil.ValidContentDoc())
	require.NoError(t, err)
	return *cd
}

// ── Create ────────────────────────────────────────────────────────────────

func TestCreate_PerfilValido(t *testing.T) {
	uc, _ := newProfileUC(t)

	out, err := uc.Create(context.Background(), dto.CreateProfileRequest{
		Code:     "garcia-asociados",
		OwnerUID: "uid-1",
		Data:     validContent(t),
	})

	require.NoError(t, err)
	assert.Equal(t, "garcia-asociados", out.Code)
	assert.Equal(t, "uid-1", out.OwnerUID)
	require.NotNil(t, out.CreatedAt)
	require.NotNil(t, out.UpdatedAt)

	shaped, ok := out.Data.(*entity.ContentData)
	require.True(t, ok, "un documento completo debe salir tipado")
	assert.Equal(t, "light", shaped.Settings.Theme)
}

func TestCreate_RechazaDocumentoInvalido(t *testing.T) {
	uc, _ := newProfileUC(t)
	cd := validContent(t)
	cd.Settings.Theme = "sepia"

	_, err := uc.Create(context.Background(), dto.CreateProfileRequest{
		Code: "garcia-asociados",
		Data: cd,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.GetByCode(context.Background(), "garcia-asociados")
	assert.ErrorIs(t, err, domain.ErrNotFound, "un rechazo no debe dejar nada escrito")
}

// ── Lecturas ──────────────────────────────────────────────────────────────

func TestGetByCode_NoExiste(t *testing.T) {
	uc, _ := newProfileUC(t)

	_, err := uc.GetByCode(context.Background(), "no-existe")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetByCode_ReescribeImagenes(t *testing.T) {
	uc, store := newProfileUC(t)
	store.Seed(&entity.Profile{Code: "garcia-asociados", Data: testutil.ValidContentDoc()})

	out, err := uc.GetByCode(context.Background(), "garcia-asociados")

	require.NoError(t, err)
	shaped, ok := out.Data.(*entity.ContentData)
	require.True(t, ok)
	assert.Equal(t, "https://assets.example.com/media/hero-fondo", shaped.Content["es"].Hero.BackgroundImage)
}

func TestGetByCode_DocumentoParcialDevuelveCrudo(t *testing.T) {
	uc, store := newProfileUC(t)
	store.Seed(&entity.Profile{Code: "a-medias", Data: bson.M{
		"content": bson.M{"es": bson.M{"hero": bson.M{"backgroundImage": "hero-fondo"}}},
	}})

	out, err := uc.GetByCode(context.Background(), "a-medias")

	require.NoError(t, err)
	raw, ok := out.Data.(bson.M)
	require.True(t, ok, "un documento que no valida se devuelve crudo")
	hero := raw["content"].(bson.M)["es"].(bson.M)["hero"].(bson.M)
	assert.Equal(t, "https://assets.example.com/media/hero-fondo", hero["backgroundImage"])
}

func TestList_DevuelveTodos(t *testing.T) {
	uc, store := newProfileUC(t)
	store.Seed(&entity.Profile{Code: "uno", Data: testutil.ValidContentDoc()})
	store.Seed(&entity.Profile{Code: "dos", Data: testutil.ValidContentDoc()})

	out, err := uc.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)
	assert.Len(t, out.Items, 2)
}

// ── UpsertByCode ──────────────────────────────────────────────────────────

func TestUpsertByCode_CreaYLuegoMerge(t *testing.T) {
	uc, _ := newProfileUC(t)
	ctx := context.Background()

	first, err := uc.UpsertByCode(ctx, "garcia-asociados", dto.UpsertProfileRequest{
		Data: map[string]interface{}{
			"content": map[string]interface{}{"es": map[string]interface{}{
				"hero": map[string]interface{}{"title": "Defensa legal"},
			}},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, first.CreatedAt)

	second, err := uc.UpsertByCode(ctx, "garcia-asociados", dto.UpsertProfileRequest{
		Data: map[string]interface{}{
			"content": map[string]interface{}{"es": map[string]interface{}{
				"hero": map[string]interface{}{"subtitle": "Desde 2003"},
			}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, first.CreatedAt, second.CreatedAt, "createdAt se fija una sola vez")
	assert.True(t, second.UpdatedAt.After(*first.UpdatedAt))

	hero := second.Data.(bson.M)["content"].(bson.M)["es"].(bson.M)["hero"].(bson.M)
	assert.Equal(t, "Defensa legal", hero["title"], "el merge no pisa claves hermanas")
	assert.Equal(t, "Desde 2003", hero["subtitle"])
}

func TestUpsertByCode_ConflictoDePropietario(t *testing.T) {
	uc, store := newProfileUC(t)
	store.Seed(&entity.Profile{Code: "garcia-asociados", OwnerUID: "uid-A", Data: bson.M{"x": "original"}})

	_, err := uc.UpsertByCode(context.Background(), "garcia-asociados", dto.UpsertProfileRequest{
		OwnerUID: "uid-B",
		Data:     map[string]interface{}{"x": "pisado"},
	})

	assert.ErrorIs(t, err, domain.ErrOwnershipConflict)

	p, gerr := store.GetByCode(context.Background(), "garcia-asociados")
	require.NoError(t, gerr)
	assert.Equal(t, "original", p.Data["x"], "un conflicto no muta el documento")
	assert.Equal(t, "uid-A", p.OwnerUID)
}

func TestUpsertByCode_SinOwnerNoTocaElDueno(t *testing.T) {
	uc, store := newProfileUC(t)
	store.Seed(&entity.Profile{Code: "garcia-asociados", OwnerUID: "uid-A"})

	out, err := uc.UpsertByCode(context.Background(), "garcia-asociados", dto.UpsertProfileRequest{
		Data: map[string]interface{}{"x": "nuevo"},
	})

	require.NoError(t, err)
	assert.Equal(t, "uid-A", out.OwnerUID)
	p, _ := store.GetByCode(context.Background(), "garcia-asociados")
	assert.Equal(t, "nuevo", p.Data["x"])
}

// ── UpsertForCaller ───────────────────────────────────────────────────────

func TestUpsertForCaller_CreaConCodigoGenerado(t *testing.T) {
	uc, _ := newProfileUC(t)
	ctx := context.Background()

	first, err := uc.UpsertForCaller(ctx, "uid-1", "ana@example.com", map[string]interface{}{"x": 1})
	require.NoError(t, err)
	assert.NotEmpty(t, first.Code)
	assert.Equal(t, "uid-1", first.OwnerUID)
	assert.Equal(t, "ana@example.com", first.OwnerEmail)

	second, err := uc.UpsertForCaller(ctx, "uid-1", "ana@example.com", map[string]interface{}{"y": 2})
	require.NoError(t, err)
	assert.Equal(t, first.Code, second.Code, "el segundo upsert reutiliza el perfil existente")
}

func TestUpsertForCaller_NoPuedeEscribirPerfilAjeno(t *testing.T) {
	uc, store := newProfileUC(t)
	store.Seed(&entity.Profile{Code: "de-otro", OwnerUID: "uid-A"})

	out, err := uc.UpsertForCaller(context.Background(), "uid-B", "b@example.com", nil)

	require.NoError(t, err)
	assert.NotEqual(t, "de-otro", out.Code, "un caller sin perfil crea uno nuevo, nunca toca el ajeno")
	assert.Equal(t, "uid-B", out.OwnerUID)
}

// ── Claim ─────────────────────────────────────────────────────────────────

func TestClaim_CodigoInexistente(t *testing.T) {
	uc, _ := newProfileUC(t)

	_, err := uc.Claim(context.Background(), "no-existe", "uid-1", "a@example.com")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClaim_SinDuenoLoAsigna(t *testing.T) {
	uc, store := newProfileUC(t)
	store.Seed(&entity.Profile{Code: "garcia-asociados"})

	out, err := uc.Claim(context.Background(), "garcia-asociados", "uid-1", "ana@example.com")

	require.NoError(t, err)
	assert.Equal(t, "uid-1", out.OwnerUID)
	assert.Equal(t, "ana@example.com", out.OwnerEmail)

	// reclamar el perfil propio otra vez es idempotente
	again, err := uc.Claim(context.Background(), "garcia-asociados", "uid-1", "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", again.OwnerUID)
}

func TestClaim_ConDuenoAjenoFalla(t *testing.T) {
	uc, store := newProfileUC(t)
	store.Seed(&entity.Profile{Code: "garcia-asociados", OwnerUID: "uid-A", OwnerEmail: "a@example.com"})

	_, err := uc.Claim(context.Background(), "garcia-asociados", "uid-B", "b@example.com")

	assert.ErrorIs(t, err, domain.ErrOwnershipConflict)
	p, _ := store.GetByCode(context.Background(), "garcia-asociados")
	assert.Equal(t, "uid-A", p.OwnerUID, "un claim rechazado no cambia el dueño")
}
