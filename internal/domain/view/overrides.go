package view

import (
	"sync"

	"evolvagotchi/internal/domain/pets"
)

// Overrides es una sustitución parcial de stats para preview/demo. Es
// transitoria por diseño: vive solo en memoria y jamás se mezcla con el
// ledger (una sesión de demo no crea ni muta entries).
type Overrides struct {
	Age       *uint64
	Stage     *pets.Stage
	Happiness *int
	Hunger    *int
	Health    *int
}

func (o Overrides) Empty() bool {
	return o.Age == nil && o.Stage == nil && o.Happiness == nil && o.Hunger == nil && o.Health == nil
}

// OverrideStore guarda la sesión de demo por mascota. Solo memoria: un
// reinicio del proceso la descarta, que es exactamente lo que queremos.
type OverrideStore struct {
	mu   sync.RWMutex
	byID map[string]Overrides
}

func NewOverrideStore() *OverrideStore {
	return &OverrideStore{byID: make(map[string]Overrides)}
}

// Get devuelve nil si no hay sesión activa para la mascota.
func (s *OverrideStore) Get(petID string) *Overrides {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ov, ok := s.byID[petID]
	if !ok || ov.Empty() {
		return nil
	}
	// copia: el caller no puede mutar el store por referencia
	cp := ov
	return &cp
}

// Patch mezcla campos nuevos sobre la sesión existente (nil = no tocar).
func (s *OverrideStore) Patch(petID string, patch Overrides) Overrides {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.byID[petID]
	if patch.Age != nil {
		cur.Age = patch.Age
	}
	if patch.Stage != nil {
		cur.Stage = patch.Stage
	}
	if patch.Happiness != nil {
		cur.Happiness = patch.Happiness
	}
	if patch.Hunger != nil {
		cur.Hunger = patch.Hunger
	}
	if patch.Health != nil {
		cur.Health = patch.Health
	}
	s.byID[petID] = cur
	return cur
}

// Set reemplaza la sesión entera.
func (s *OverrideStore) Set(petID string, ov Overrides) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[petID] = ov
}

// Reset cierra la sesión de demo. Idempotente.
func (s *OverrideStore) Reset(petID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, petID)
}
