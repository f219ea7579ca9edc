package scheduler

import "errors"

// Failure kinds of a single task or target. All of them are local: the
// engine records the outcome and moves on.
var (
	ErrTargetNotFound    = errors.New("alvo da tarefa não encontrado")
	ErrInvalidTargetType = errors.New("tipo de alvo inválido")
	ErrNoProxyAvailable  = errors.New("nenhum computador online no laboratório para servir de proxy WoL")
	ErrNoMacAddress      = errors.New("computador alvo não possui endereço MAC registrado")
)
