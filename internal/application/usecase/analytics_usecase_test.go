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
	"github.com/andea-legal/lawyers-api/internal/testutil"
)

func seedTrackable(store *testutil.ProfileStore) {
	store.Seed(&entity.Profile{Code: "garcia-asociados", Data: testutil.ValidContentDoc()})
}

func analyticsOf(t *testing.T, store *testutil.ProfileStore, code string) bson.M {
	t.Helper()
	p, err := store.GetByCode(context.Background(), code)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Data["analytics"].(bson.M)
}

// ── Track ─────────────────────────────────────────────────────────────────

func TestTrack_VisitaIncrementaElContador(t *testing.T) {
	store := testutil.NewProfileStore()
	seedTrackable(store)
	uc := NewAnalyticsUseCase(store)

	for i := 0; i < 3; i++ {
		require.NoError(t, uc.Track(context.Background(), "garcia-asociados", dto.TrackRequest{Event: "visit"}))
	}

	assert.Equal(t, 3, analyticsOf(t, store, "garcia-asociados")["visitorCount"])
}

func TestTrack_ClicDePagina(t *testing.T) {
	store := testutil.NewProfileStore()
	seedTrackable(store)
	uc := NewAnalyticsUseCase(store)

	err := uc.Track(context.Background(), "garcia-asociados", dto.TrackRequest{Event: "page", Key: "services"})

	require.NoError(t, err)
	clicks := analyticsOf(t, store, "garcia-asociados")["pageClicks"].(bson.M)
	assert.Equal(t, 1, clicks["services"])
	assert.Equal(t, 0, clicks["hero"], "las demás secciones no se tocan")
}

func TestTrack_ClicDeContacto(t *testing.T) {
	store := testutil.NewProfileStore()
	seedTrackable(store)
	uc := NewAnalyticsUseCase(store)

	err := uc.Track(context.Background(), "garcia-asociados", dto.TrackRequest{Event: "contact", Key: "whatsapp"})

	require.NoError(t, err)
	clicks := analyticsOf(t, store, "garcia-asociados")["contactClicks"].(bson.M)
	assert.Equal(t, 1, clicks["whatsapp"])
}

// ── Rechazos ──────────────────────────────────────────────────────────────

func TestTrack_SeccionDesconocida(t *testing.T) {
	store := testutil.NewProfileStore()
	seedTrackable(store)
	uc := NewAnalyticsUseCase(store)

	err := uc.Track(context.Background(), "garcia-asociados", dto.TrackRequest{Event: "page", Key: "blog"})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTrack_CanalDesconocido(t *testing.T) {
	store := testutil.NewProfileStore()
	seedTrackable(store)
	uc := NewAnalyticsUseCase(store)

	err := uc.Track(context.Background(), "garcia-asociados", dto.TrackRequest{Event: "contact", Key: "telegram"})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTrack_EventoDesconocido(t *testing.T) {
	store := testutil.NewProfileStore()
	uc := NewAnalyticsUseCase(store)

	err := uc.Track(context.Background(), "garcia-asociados", dto.TrackRequest{Event: "scroll"})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTrack_PerfilInexistente(t *testing.T) {
	store := testutil.NewProfileStore()
	uc := NewAnalyticsUseCase(store)

	err := uc.Track(context.Background(), "no-existe", dto.TrackRequest{Event: "visit"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
