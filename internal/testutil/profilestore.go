// Package testutil contiene dobles de test compartidos entre paquetes.
package testutil

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/andea-legal/lawyers-api/internal/domain"
	"github.com/andea-legal/lawyers-api/internal/domain/entity"
	"github.com/andea-legal/lawyers-api/internal/domain/repository"
)

// Asegura que ProfileStore implementa el puerto.
var _ repository.ProfileRepository = (*ProfileStore)(nil)

// ProfileStore implementación en memoria de ProfileRepository para tests.
// Replica el contrato del adaptador de Mongo: merge campo a campo, CAS de
// propietario, createdAt una sola vez, updatedAt en cada escritura. El reloj
// es lógico (avanza un segundo por escritura) para aserciones deterministas.
type ProfileStore struct {
	mu    sync.Mutex
	docs  map[string]*entity.Profile
	clock time.Time
}

// NewProfileStore crea el almacén vacío.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		docs:  make(map[string]*entity.Profile),
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *ProfileStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *ProfileStore) GetByCode(_ context.Context, code string) (*entity.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.docs[code]
	if !ok {
		return nil, nil
	}
	return copyProfile(p), nil
}

func (s *ProfileStore) GetByOwner(_ context.Context, ownerUID string) (*entity.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.docs {
		if p.OwnerUID == ownerUID {
			return copyProfile(p), nil
		}
	}
	return nil, nil
}

func (s *ProfileStore) List(_ context.Context) ([]*entity.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.Profile, 0, len(s.docs))
	for _, p := range s.docs {
		out = append(out, copyProfile(p))
	}
	return out, nil
}

func (s *ProfileStore) Replace(_ context.Context, p *entity.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.tick()
	created := now
	if existing, ok := s.docs[p.Code]; ok && !existing.CreatedAt.IsZero() {
		created = existing.CreatedAt
	}
	stored := copyProfile(p)
	stored.CreatedAt = created
	stored.UpdatedAt = now
	s.docs[p.Code] = stored
	return nil
}

func (s *ProfileStore) Upsert(_ context.Context, code string, patch repository.ProfilePatch) (*entity.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.docs[code]
	if ok && patch.OwnerUID != "" && p.OwnerUID != "" && p.OwnerUID != patch.OwnerUID {
		return nil, domain.ErrOwnershipConflict
	}
	if !ok {
		p = &entity.Profile{Code: code, CreatedAt: s.tick()}
		s.docs[code] = p
	}
	if patch.Data != nil {
		if p.Data == nil {
			p.Data = bson.M{}
		}
		mergeDoc(p.Data, patch.Data)
	}
	if patch.OwnerUID != "" {
		p.OwnerUID = patch.OwnerUID
	}
	if patch.OwnerEmail != "" {
		p.OwnerEmail = patch.OwnerEmail
	}
	p.UpdatedAt = s.tick()
	return copyProfile(p), nil
}

func (s *ProfileStore) Claim(_ context.Context, code, ownerUID, ownerEmail string) (*entity.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.docs[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if p.OwnerUID != "" && p.OwnerUID != ownerUID {
		return nil, domain.ErrOwnershipConflict
	}
	p.OwnerUID = ownerUID
	p.OwnerEmail = ownerEmail
	p.UpdatedAt = s.tick()
	return copyProfile(p), nil
}

func (s *ProfileStore) IncrementCounter(_ context.Context, code, field string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.docs[code]
	if !ok {
		return domain.ErrNotFound
	}
	segments := strings.Split(field, ".")
	if segments[0] != "data" {
		return nil
	}
	if p.Data == nil {
		p.Data = bson.M{}
	}
	node := p.Data
	for _, seg := range segments[1 : len(segments)-1] {
		child, ok := node[seg].(bson.M)
		if !ok {
			child = bson.M{}
			node[seg] = child
		}
		node = child
	}
	last := segments[len(segments)-1]
	current, _ := toInt(node[last])
	node[last] = current + delta
	return nil
}

// Seed inserta un documento tal cual, para preparar escenarios.
func (s *ProfileStore) Seed(p *entity.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[p.Code] = copyProfile(p)
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func copyProfile(p *entity.Profile) *entity.Profile {
	cp := *p
	if p.Data != nil {
		cp.Data = copyDoc(p.Data)
	}
	return &cp
}

func copyDoc(m bson.M) bson.M {
	out := make(bson.M, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v interface{}) interface{} {
	switch n := v.(type) {
	case bson.M:
		return copyDoc(n)
	case map[string]interface{}:
		return copyDoc(bson.M(n))
	case bson.A:
		out := make(bson.A, len(n))
		for i, e := range n {
			out[i] = copyValue(e)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(n))
		for i, e := range n {
			out[i] = copyValue(e)
		}
		return out
	default:
		return v
	}
}

// mergeDoc replica el merge de Firestore/Mongo: mapas se fusionan recursivo,
// escalares y listas se reemplazan enteros.
func mergeDoc(dst, src bson.M) {
	for k, v := range src {
		srcMap, srcIsMap := asDoc(v)
		dstMap, dstIsMap := asDoc(dst[k])
		if srcIsMap && dstIsMap {
			mergeDoc(dstMap, srcMap)
			dst[k] = dstMap
			continue
		}
		dst[k] = copyValue(v)
	}
}

func asDoc(v interface{}) (bson.M, bool) {
	switch n := v.(type) {
	case bson.M:
		return n, true
	case map[string]interface{}:
		return bson.M(n), true
	default:
		return nil, false
	}
}
