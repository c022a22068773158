package game

import "errors"

// ErrUnknownMaterial возвращается DropVoxel для неизвестного материала или воздуха
var ErrUnknownMaterial = errors.New("game: неизвестный материал")
