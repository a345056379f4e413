package model

import "github.com/google/uuid"

type Principal struct {
	UserID uuid.UUID
	Email  string
	Name   string
	Role   string
}

func (p Principal) IsGestor() bool {
	return p.Role == "GESTOR"
}

func (p Principal) IsFiscalTecnico() bool {
	return p.Role == "FISCAL_TECNICO"
}

func (p Principal) IsFiscalAdministrativo() bool {
	return p.Role == "FISCAL_ADMINISTRATIVO"
}

func (p Principal) IsConsulta() bool {
	return p.Role == "CONSULTA"
}
