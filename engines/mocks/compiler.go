package mocks

import (
	"github.com/stretchr/testify/mock"

	machineTypes "github.com/robbyt/go-polyhelpers/engines/types"
	"github.com/robbyt/go-polyhelpers/platform/script"
)

// Compiler is a mock implementation of script.Compiler for testing purposes.
type Compiler struct {
	mock.Mock
}

// Compile is a mock implementation of the Compile method.
func (m *Compiler) Compile(src script.Source) (script.Executable, error) {
	args := m.Called(src)
	exe, _ := args.Get(0).(script.Executable)
	return exe, args.Error(1)
}

// FallbackBody is a mock implementation of the FallbackBody method.
func (m *Compiler) FallbackBody() string {
	args := m.Called()
	return args.String(0)
}

// GetMachineType is a mock implementation of the GetMachineType method.
func (m *Compiler) GetMachineType() machineTypes.Type {
	args := m.Called()
	return args.Get(0).(machineTypes.Type)
}
