package world

import (
	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world/block"
)

// RecomputeFaces пересчитывает видимость граней всех вокселей.
// Грань видима, если соседняя клетка пуста или занята водой.
func (s *Store) RecomputeFaces() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recomputeFaces()
}

// RecomputeFacesIfDirty пересчитывает грани, только если занятость
// менялась с прошлого пересчёта. Возвращает true, если пересчёт был.
func (s *Store) RecomputeFacesIfDirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.facesClean && s.facesVersion == s.version {
		return false
	}
	s.recomputeFaces()
	return true
}

func (s *Store) recomputeFaces() {
	for el := s.voxels.Front(); el != nil; el = el.Next() {
		v := el.Value
		for face, off := range vec.FaceOffsets {
			v.VisibleFaces[face] = !s.occludes(v.Pos.Add(off))
		}
	}
	s.facesVersion = s.version
	s.facesClean = true
}

func (s *Store) occludes(pos vec.Vec3) bool {
	n, ok := s.voxels.Get(pos)
	return ok && n.ID != block.WaterBlockID
}

// VisibleFaceCount возвращает количество видимых граней во всём мире
func (s *Store) VisibleFaceCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for el := s.voxels.Front(); el != nil; el = el.Next() {
		for _, visible := range el.Value.VisibleFaces {
			if visible {
				count++
			}
		}
	}
	return count
}
