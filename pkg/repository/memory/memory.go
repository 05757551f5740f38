package memory

import (
	"github.com/standup-lab/cadence/pkg/domain/interfaces"
)

// Memory is the in-memory repository used for development and tests
type Memory struct {
	update *updateRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		update: newUpdateRepository(),
	}
}

func (m *Memory) Update() interfaces.UpdateRepository {
	return m.update
}

func (m *Memory) Close() error {
	return nil
}
