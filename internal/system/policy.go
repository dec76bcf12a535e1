package system

import (
	"go.uber.org/zap"

	"github.com/isoarena/game/internal/scripting"
)

// SpawnPolicy decides each enemy wave.
type SpawnPolicy interface {
	NextSpawn(ctx scripting.SpawnContext) scripting.SpawnPlan
}

// DefaultSpawnPolicy spawns one enemy of a fixed template per interval.
type DefaultSpawnPolicy struct {
	Template string
	Interval float64 // seconds
}

func (p DefaultSpawnPolicy) NextSpawn(ctx scripting.SpawnContext) scripting.SpawnPlan {
	return scripting.SpawnPlan{Count: 1, Template: p.Template, Interval: p.Interval}
}

type spawnScript interface {
	NextSpawn(ctx scripting.SpawnContext) (scripting.SpawnPlan, error)
}

// ScriptedSpawnPolicy asks the Lua next_spawn function and falls back to
// another policy when the script fails.
type ScriptedSpawnPolicy struct {
	script   spawnScript
	fallback SpawnPolicy
	log      *zap.Logger
}

func NewScriptedSpawnPolicy(script spawnScript, fallback SpawnPolicy, log *zap.Logger) *ScriptedSpawnPolicy {
	return &ScriptedSpawnPolicy{script: script, fallback: fallback, log: log}
}

func (p *ScriptedSpawnPolicy) NextSpawn(ctx scripting.SpawnContext) scripting.SpawnPlan {
	plan, err := p.script.NextSpawn(ctx)
	if err != nil {
		p.log.Error("spawn script failed, using default policy", zap.Error(err))
		return p.fallback.NextSpawn(ctx)
	}
	if plan.Template == "" {
		plan.Template = p.fallback.NextSpawn(ctx).Template
	}
	return plan
}
