package system

// System names used in After lists.
const (
	NameSpawn     = "spawn"
	NameAnimation = "animation"
	NameCombat    = "combat"
	NamePlayer    = "player"
	NameEnemy     = "enemy"
	NameAttack    = "attack"
	NamePhysics   = "physics"
	NameCamera    = "camera"
	NameMesh      = "mesh"
	NameRender    = "render"
)

// Resource names for access declarations. "entities" covers entity
// creation and destruction, which touches every store.
const (
	resEntities    = "entities"
	resTransform   = "transform"
	resTile        = "tile"
	resAnimation   = "animation"
	resCollider    = "collider"
	resAttack      = "attack"
	resAttackMaker = "attack_maker"
	resEnemy       = "enemy"
	resPlayer      = "player"
	resInput       = "input"
	resCamera      = "camera"
	resTileMap     = "tilemap"
	resGPU         = "gpu"
	resRand        = "rand"
)

// Sequence ids every actor atlas provides.
const (
	seqIdle   = "idle"
	seqWalk   = "walk"
	seqAttack = "attack"
)
