package domain

// Well-known role names. Roles are seeded by migration and resolved by name
// during self-registration; their absence at runtime is a server
// misconfiguration, not a user error.
const (
	RoleAluno         = "Aluno"
	RoleEmpresa       = "Empresa"
	RoleRecrutador    = "Recrutador"
	RoleAdministrador = "Administrador"
)

// Privilege levels attached to the seeded roles. Higher means more privileged.
const (
	LevelAluno         = 1
	LevelEmpresa       = 2
	LevelRecrutador    = 3
	LevelAdministrador = 4
)

// Role is an ordinal privilege rank. Every principal holds exactly one role;
// tokens carry a snapshot of it taken at issuance time.
type Role struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Level  int    `json:"level"`
	Status int    `json:"status"`
}

// Snapshot returns the denormalized copy of the role embedded into token
// claims. Authorization decisions during a token's lifetime use this
// snapshot, not live role data.
func (r Role) Snapshot() RoleSnapshot {
	return RoleSnapshot{ID: r.ID, Name: r.Name, Level: r.Level}
}

// RoleSnapshot is the role copy carried inside token claims.
type RoleSnapshot struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}
