package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialSolidity(t *testing.T) {
	for _, id := range []BlockID{BedrockBlockID, StoneBlockID, DirtBlockID, GrassBlockID, SandBlockID, OakLogBlockID, OakLeavesBlockID} {
		assert.True(t, id.IsSolid(), "%s должен быть твёрдым", id)
	}
	assert.False(t, WaterBlockID.IsSolid(), "Вода не твёрдая")
	assert.False(t, AirBlockID.IsSolid(), "Воздух не твёрдый")
	assert.False(t, BlockID(200).IsSolid(), "Неизвестный ID не твёрдый")
}

func TestOnlySandIsLoose(t *testing.T) {
	for _, id := range All() {
		assert.Equal(t, id == SandBlockID, id.IsLoose(), "Сыпучесть %s", id)
	}
}

func TestByNameRoundTrip(t *testing.T) {
	for _, id := range All() {
		got, ok := ByName(id.String())
		require.True(t, ok, "Материал %s должен находиться по имени", id)
		assert.Equal(t, id, got)
	}

	_, ok := ByName("minecraft:diamond_block")
	assert.False(t, ok)
	assert.Equal(t, "unknown:200", BlockID(200).String())
}

func TestAllExcludesAir(t *testing.T) {
	ids := All()
	assert.NotContains(t, ids, AirBlockID)
	assert.Len(t, ids, int(blockCount)-1)
}

func TestGrassTextures(t *testing.T) {
	props, ok := Get(GrassBlockID)
	require.True(t, ok)

	assert.NotEqual(t, props.Textures[FaceTop], props.Textures[FaceSouth], "Верх травы отличается от боков")
	assert.NotEqual(t, props.Textures[FaceTop], props.Textures[FaceBottom])
	for _, id := range All() {
		p, _ := Get(id)
		for face, tex := range p.Textures {
			assert.NotEmpty(t, tex, "У %s нет текстуры грани %d", id, face)
		}
	}
}

func TestRegisterUnknownPanics(t *testing.T) {
	assert.Panics(t, func() { Register(blockCount, Properties{Name: "x"}) })
}
