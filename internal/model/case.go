package model

import "time"

// Stage is one step of the fixed admission sequence. Transitions are strictly
// sequential; terminal outcomes are expressed through CaseStatus, not Stage.
type Stage string

const (
	StageSolicitacaoVaga     Stage = "SOLICITACAO_VAGA"
	StageAprovacao           Stage = "APROVACAO"
	StageColetaDocumentos    Stage = "COLETA_DOCUMENTOS"
	StageValidacaoDocumentos Stage = "VALIDACAO_DOCUMENTOS"
	StageExameAdmissional    Stage = "EXAME_ADMISSIONAL"
	StageGeracaoContrato     Stage = "GERACAO_CONTRATO"
	StageAssinaturaDigital   Stage = "ASSINATURA_DIGITAL"
	StageEnvioEsocial        Stage = "ENVIO_ESOCIAL"
	StageIntegracaoThomson   Stage = "INTEGRACAO_THOMSON"
)

// stageOrder is the single source of truth for the admission sequence.
var stageOrder = []Stage{
	StageSolicitacaoVaga,
	StageAprovacao,
	StageColetaDocumentos,
	StageValidacaoDocumentos,
	StageExameAdmissional,
	StageGeracaoContrato,
	StageAssinaturaDigital,
	StageEnvioEsocial,
	StageIntegracaoThomson,
}

// Stages returns the full admission sequence in order.
func Stages() []Stage {
	out := make([]Stage, len(stageOrder))
	copy(out, stageOrder)
	return out
}

// Valid reports whether s is a known stage.
func (s Stage) Valid() bool {
	for _, st := range stageOrder {
		if st == s {
			return true
		}
	}
	return false
}

// Next returns the immediate successor of s. ok is false when s is the last
// stage or unknown.
func (s Stage) Next() (next Stage, ok bool) {
	for i, st := range stageOrder {
		if st == s {
			if i+1 < len(stageOrder) {
				return stageOrder[i+1], true
			}
			return "", false
		}
	}
	return "", false
}

// CaseStatus is the lifecycle status of an admission case.
type CaseStatus string

const (
	StatusEmAndamento CaseStatus = "EM_ANDAMENTO"
	StatusConcluida   CaseStatus = "CONCLUIDA"
	StatusCancelada   CaseStatus = "CANCELADA"
	StatusReprovada   CaseStatus = "REPROVADA"
)

// Terminal reports whether the status forbids any further stage or status
// mutation.
func (s CaseStatus) Terminal() bool {
	switch s {
	case StatusConcluida, StatusCancelada, StatusReprovada:
		return true
	default:
		return false
	}
}

// ContractType enumerates the supported hiring regimes.
type ContractType string

const (
	ContractCLT        ContractType = "CLT"
	ContractPJ         ContractType = "PJ"
	ContractEstagio    ContractType = "ESTAGIO"
	ContractTemporario ContractType = "TEMPORARIO"
)

// Valid reports whether t is a known contract type.
func (t ContractType) Valid() bool {
	switch t {
	case ContractCLT, ContractPJ, ContractEstagio, ContractTemporario:
		return true
	default:
		return false
	}
}

// AdmissionCase is one candidate's admission process. Stage and Status are
// mutated only through the workflow service; the Version column is the
// optimistic-concurrency guard for every mutation touching the case.
type AdmissionCase struct {
	ID             string       `json:"id"`
	CandidateName  string       `json:"candidate_name"`
	CandidateCPF   string       `json:"candidate_cpf"`
	CandidateEmail string       `json:"candidate_email"`
	CandidatePhone string       `json:"candidate_phone,omitempty"`
	JobTitle       string       `json:"job_title"`
	Department     string       `json:"department"`
	ContractType   ContractType `json:"contract_type"`
	ProposedSalary *float64     `json:"proposed_salary,omitempty"`
	StartDate      *time.Time   `json:"start_date,omitempty"`
	HasDependents  bool         `json:"has_dependents"`

	Stage        Stage      `json:"stage"`
	Status       CaseStatus `json:"status"`
	StatusReason string     `json:"status_reason,omitempty"`

	// ContractRef is set by the contract-generation collaborator and gates
	// entry into ASSINATURA_DIGITAL.
	ContractRef string `json:"contract_ref,omitempty"`

	DigitalSignatureConfirmed bool       `json:"digital_signature_confirmed"`
	PhysicallySigned          bool       `json:"physically_signed"`
	PhysicalSignatureDate     *time.Time `json:"physical_signature_date,omitempty"`

	Version     int64     `json:"version"`
	RequestedAt time.Time `json:"requested_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Signed reports whether either signature path of the ENVIO_ESOCIAL gate is
// satisfied.
func (c *AdmissionCase) Signed() bool {
	if c.DigitalSignatureConfirmed {
		return true
	}
	return c.PhysicallySigned && c.PhysicalSignatureDate != nil
}
