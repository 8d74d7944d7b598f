package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/andea-legal/lawyers-api/internal/domain"
	"github.com/andea-legal/lawyers-api/internal/domain/entity"
	"github.com/andea-legal/lawyers-api/internal/domain/repository"
)

const profilesCollection = "lawyers"

// Asegura que ProfileRepo implementa repository.ProfileRepository.
var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo implementación del puerto ProfileRepository sobre MongoDB.
// El _id del documento es el code del perfil.
//
// La invariante de propietario único se aplica con una escritura condicional:
// el filtro exige ownerUid ausente, vacío o igual al solicitado. Sobre un
// perfil con otro dueño, un upsert intenta insertar un _id duplicado (error
// de clave duplicada) y un claim no matchea; ambos casos se traducen a
// ErrOwnershipConflict. Así el check-then-set es un compare-and-swap real y
// dos claims simultáneos sobre un perfil libre no pueden ganar los dos.
type ProfileRepo struct {
	c   *mongo.Collection
	now func() time.Time
}

// NewProfileRepository construye el adaptador de persistencia de perfiles.
func NewProfileRepository(db *mongo.Database) *ProfileRepo {
	return &ProfileRepo{c: db.Collection(profilesCollection), now: time.Now}
}

// GetByCode obtiene un perfil por su código. (nil, nil) si no existe.
func (r *ProfileRepo) GetByCode(ctx context.Context, code string) (*entity.Profile, error) {
	var p entity.Profile
	err := r.c.FindOne(ctx, bson.M{"_id": code}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// GetByOwner obtiene el perfil cuyo ownerUid es el indicado (como mucho uno).
func (r *ProfileRepo) GetByOwner(ctx context.Context, ownerUID string) (*entity.Profile, error) {
	var p entity.Profile
	err := r.c.FindOne(ctx, bson.M{"ownerUid": ownerUID}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile by owner: %w", err)
	}
	return &p, nil
}

// List devuelve todos los perfiles. Sin orden garantizado.
func (r *ProfileRepo) List(ctx context.Context) ([]*entity.Profile, error) {
	cur, err := r.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer cur.Close(ctx)
	var profiles []*entity.Profile
	if err := cur.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	return profiles, nil
}

// Replace guarda el documento completo, conservando createdAt si el perfil ya
// existía y asignándolo si es alta.
func (r *ProfileRepo) Replace(ctx context.Context, p *entity.Profile) error {
	now := r.now().UTC()
	created := now
	if existing, err := r.GetByCode(ctx, p.Code); err != nil {
		return err
	} else if existing != nil && !existing.CreatedAt.IsZero() {
		created = existing.CreatedAt
	}

	doc := bson.M{
		"_id":       p.Code,
		"data":      p.Data,
		"createdAt": created,
		"updatedAt": now,
	}
	if p.OwnerUID != "" {
		doc["ownerUid"] = p.OwnerUID
	}
	if p.OwnerEmail != "" {
		doc["ownerEmail"] = p.OwnerEmail
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.c.ReplaceOne(ctx, bson.M{"_id": p.Code}, doc, opts); err != nil {
		return fmt.Errorf("replace profile: %w", err)
	}
	return nil
}

// Upsert hace merge de patch sobre el documento code con upsert condicional.
func (r *ProfileRepo) Upsert(ctx context.Context, code string, patch repository.ProfilePatch) (*entity.Profile, error) {
	filter := bson.M{"_id": code}
	if patch.OwnerUID != "" {
		filter["$or"] = ownerFreeOrEqual(patch.OwnerUID)
	}

	set := bson.M{}
	// El merge es campo a campo hasta las hojas (las listas se reemplazan
	// enteras): rutas con puntos para no pisar hermanos no incluidos.
	flattenInto(set, "data", patch.Data)
	if patch.OwnerUID != "" {
		set["ownerUid"] = patch.OwnerUID
	}
	if patch.OwnerEmail != "" {
		set["ownerEmail"] = patch.OwnerEmail
	}

	update := bson.M{
		"$setOnInsert": bson.M{"createdAt": r.now().UTC()},
		"$currentDate": bson.M{"updatedAt": true},
	}
	if len(set) > 0 {
		update["$set"] = set
	}

	_, err := r.c.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// El filtro condicional no matcheó un documento existente y el
			// upsert intentó insertar el mismo _id: hay otro propietario.
			return nil, domain.ErrOwnershipConflict
		}
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	p, err := r.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("upsert profile: documento ausente tras escribir")
	}
	return p, nil
}

// Claim asigna propietario sin upsert: el documento tiene que existir.
func (r *ProfileRepo) Claim(ctx context.Context, code, ownerUID, ownerEmail string) (*entity.Profile, error) {
	filter := bson.M{"_id": code, "$or": ownerFreeOrEqual(ownerUID)}
	update := bson.M{
		"$set":         bson.M{"ownerUid": ownerUID, "ownerEmail": ownerEmail},
		"$currentDate": bson.M{"updatedAt": true},
	}
	res, err := r.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("claim profile: %w", err)
	}
	if res.MatchedCount == 0 {
		// O no existe, o existe con otro dueño: hay que mirar cuál de los dos.
		p, err := r.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrOwnershipConflict
	}
	p, err := r.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// IncrementCounter suma delta al contador indicado. No toca updatedAt: los
// eventos de analytics no cuentan como edición de contenido.
func (r *ProfileRepo) IncrementCounter(ctx context.Context, code, field string, delta int) error {
	res, err := r.c.UpdateOne(ctx, bson.M{"_id": code}, bson.M{"$inc": bson.M{field: delta}})
	if err != nil {
		return fmt.Errorf("increment %s: %w", field, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ownerFreeOrEqual filtro: perfil sin dueño o ya del uid indicado.
func ownerFreeOrEqual(uid string) []bson.M {
	return []bson.M{
		{"ownerUid": bson.M{"$exists": false}},
		{"ownerUid": ""},
		{"ownerUid": uid},
	}
}

// flattenInto aplana un documento anidado en rutas con puntos bajo prefix,
// descendiendo solo por mapas. Escalares y listas son hojas.
func flattenInto(dst bson.M, prefix string, m bson.M) {
	for k, v := range m {
		path := prefix + "." + k
		switch nested := v.(type) {
		case bson.M:
			flattenInto(dst, path, nested)
		case map[string]interface{}:
			flattenInto(dst, path, bson.M(nested))
		default:
			dst[path] = v
		}
	}
}
