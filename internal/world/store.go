package world

import (
	"encoding/binary"
	"sync"

	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world/block"
	"github.com/cespare/xxhash/v2"
	"github.com/elliotchance/orderedmap/v2"
)

// Store - хранилище вокселей мира, индексированное по клетке решётки.
// Порядок обхода совпадает с порядком первой вставки клетки.
//
// Запись (генерация, оседание, пересчёт граней) идёт под эксклюзивной
// блокировкой, запросы физики - под разделяемой.
type Store struct {
	mu      sync.RWMutex
	voxels  *orderedmap.OrderedMap[vec.Vec3, *Voxel]
	dynamic map[vec.Vec3]struct{} // клетки с падающими вокселями
	version uint64                // растёт при каждом изменении занятости

	facesVersion uint64 // version на момент последнего пересчёта граней
	facesClean   bool
}

// NewStore создаёт пустое хранилище
func NewStore() *Store {
	return &Store{
		voxels:  orderedmap.NewOrderedMap[vec.Vec3, *Voxel](),
		dynamic: make(map[vec.Vec3]struct{}),
	}
}

// Place кладёт воксель в его клетку. Если клетка уже занята, прежний
// воксель заменяется (побеждает последняя запись). Возвращает true,
// если клетка была свободна.
func (s *Store) Place(v *Voxel) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.place(v)
}

// Set создаёт статичный воксель материала id в клетке pos
func (s *Store) Set(id block.BlockID, pos vec.Vec3) bool {
	return s.Place(NewVoxel(id, pos))
}

func (s *Store) place(v *Voxel) bool {
	if old, ok := s.voxels.Get(v.Pos); ok && old.Dynamic {
		delete(s.dynamic, v.Pos)
	}
	isNew := s.voxels.Set(v.Pos, v)
	if v.Dynamic {
		s.dynamic[v.Pos] = struct{}{}
	}
	s.version++
	return isNew
}

// At возвращает воксель в клетке pos
func (s *Store) At(pos vec.Vec3) (*Voxel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.voxels.Get(pos)
}

// BlockAt возвращает материал клетки, AirBlockID для пустой
func (s *Store) BlockAt(pos vec.Vec3) block.BlockID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.voxels.Get(pos); ok {
		return v.ID
	}
	return block.AirBlockID
}

// SolidAt проверяет, занята ли клетка твёрдым (не водой) вокселем
func (s *Store) SolidAt(pos vec.Vec3) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.solidAt(pos)
}

func (s *Store) solidAt(pos vec.Vec3) bool {
	v, ok := s.voxels.Get(pos)
	return ok && v.IsSolid()
}

// Len возвращает количество занятых клеток
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.voxels.Len()
}

// DynamicCount возвращает количество ещё не осевших вокселей
func (s *Store) DynamicCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.dynamic)
}

// Each обходит воксели в порядке хранилища, пока fn возвращает true.
// fn не должна изменять хранилище.
func (s *Store) Each(fn func(v *Voxel) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for el := s.voxels.Front(); el != nil; el = el.Next() {
		if !fn(el.Value) {
			return
		}
	}
}

// Voxels возвращает плоский список копий вокселей для рендера
func (s *Store) Voxels() []Voxel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Voxel, 0, s.voxels.Len())
	for el := s.voxels.Front(); el != nil; el = el.Next() {
		out = append(out, *el.Value)
	}
	return out
}

// Move переносит воксель из клетки from в to
func (s *Store) Move(from, to vec.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.move(from, to)
}

// move переносит воксель из from в to. Нетвёрдый воксель (вода) в клетке
// назначения меняется с ним местами. Вызывается под эксклюзивной блокировкой.
func (s *Store) move(from, to vec.Vec3) {
	v, ok := s.voxels.Get(from)
	if !ok || from == to {
		return
	}
	s.voxels.Delete(from)
	delete(s.dynamic, from)

	if displaced, ok := s.voxels.Get(to); ok {
		s.voxels.Delete(to)
		displaced.Pos = from
		s.voxels.Set(from, displaced)
	}

	v.Pos = to
	s.voxels.Set(to, v)
	if v.Dynamic {
		s.dynamic[to] = struct{}{}
	}
	s.version++
}

// Fingerprint возвращает хеш содержимого хранилища в порядке обхода.
// Одинаковые миры дают одинаковый отпечаток.
func (s *Store) Fingerprint() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h := xxhash.New()
	var buf [14]byte
	for el := s.voxels.Front(); el != nil; el = el.Next() {
		v := el.Value
		buf[0] = byte(v.ID)
		binary.LittleEndian.PutUint32(buf[1:], uint32(int32(v.Pos.X)))
		binary.LittleEndian.PutUint32(buf[5:], uint32(int32(v.Pos.Y)))
		binary.LittleEndian.PutUint32(buf[9:], uint32(int32(v.Pos.Z)))
		buf[13] = 0
		if v.Dynamic {
			buf[13] = 1
		}
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}
