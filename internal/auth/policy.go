package auth

// LevelPolicy decides whether a token's role level satisfies a route's
// required level.
type LevelPolicy func(tokenLevel, required int) bool

// ExactLevel allows access only when the token's level equals the required
// level: a route guarded at level 2 rejects a level-4 administrator. This
// mirrors the legacy access checks, where each protected route names the one
// role level it serves. Routes wanting hierarchy should mount MinimumLevel
// instead.
var ExactLevel LevelPolicy = func(tokenLevel, required int) bool {
	return tokenLevel == required
}

// MinimumLevel allows access when the token's level is at least the required
// level.
var MinimumLevel LevelPolicy = func(tokenLevel, required int) bool {
	return tokenLevel >= required
}
