package block

import "fmt"

// BlockID представляет идентификатор материала вокселя.
// Набор материалов закрыт: свойства каждого берутся из таблицы registry.
type BlockID uint8

// Константы ID блоков
const (
	AirBlockID     BlockID = iota // 0 - отсутствие блока, в хранилище не попадает
	BedrockBlockID                // 1
	StoneBlockID                  // 2
	DirtBlockID                   // 3
	GrassBlockID                  // 4
	SandBlockID                   // 5
	WaterBlockID                  // 6
	OakLogBlockID                 // 7
	OakLeavesBlockID              // 8

	blockCount // всегда последний
)

var registry [blockCount]Properties

// Register задаёт свойства материала
func Register(id BlockID, props Properties) {
	if id >= blockCount {
		panic(fmt.Sprintf("block: неизвестный ID %d", id))
	}
	props.ID = id
	registry[id] = props
}

// Get возвращает свойства для указанного ID
func Get(id BlockID) (Properties, bool) {
	if id >= blockCount || registry[id].Name == "" {
		return Properties{}, false
	}
	return registry[id], true
}

// IsValidBlockID проверяет, является ли ID допустимым идентификатором блока
func IsValidBlockID(id BlockID) bool {
	_, exists := Get(id)
	return exists
}

// IsSolid сообщает, участвует ли материал в столкновениях.
// Вода и воздух не твёрдые ни для генерации, ни для физики.
func (id BlockID) IsSolid() bool {
	return id < blockCount && registry[id].Solid
}

// IsLoose сообщает, осыпается ли материал под действием гравитации
func (id BlockID) IsLoose() bool {
	return id < blockCount && registry[id].Loose
}

// String возвращает строковый идентификатор материала
func (id BlockID) String() string {
	if props, ok := Get(id); ok {
		return props.Name
	}
	return fmt.Sprintf("unknown:%d", id)
}

// ByName ищет материал по строковому идентификатору
func ByName(name string) (BlockID, bool) {
	for i := range registry {
		if registry[i].Name == name {
			return BlockID(i), true
		}
	}
	return AirBlockID, false
}

// All возвращает все зарегистрированные материалы, кроме воздуха
func All() []BlockID {
	ids := make([]BlockID, 0, blockCount)
	for i := BlockID(1); i < blockCount; i++ {
		if IsValidBlockID(i) {
			ids = append(ids, i)
		}
	}
	return ids
}
