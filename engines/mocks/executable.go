package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	machineTypes "github.com/robbyt/go-polyhelpers/engines/types"
)

// Executable is a mock implementation of script.Executable for testing purposes.
type Executable struct {
	mock.Mock
}

// Call is a mock implementation of the Call method.
func (m *Executable) Call(ctx context.Context, args ...any) (any, error) {
	ret := m.Called(ctx, args)
	return ret.Get(0), ret.Error(1)
}

// GetID is a mock implementation of the GetID method.
func (m *Executable) GetID() string {
	args := m.Called()
	return args.String(0)
}

// GetSource is a mock implementation of the GetSource method.
func (m *Executable) GetSource() string {
	args := m.Called()
	return args.String(0)
}

// GetParameters is a mock implementation of the GetParameters method.
func (m *Executable) GetParameters() []string {
	args := m.Called()
	params, _ := args.Get(0).([]string)
	return params
}

// GetMachineType is a mock implementation of the GetMachineType method.
func (m *Executable) GetMachineType() machineTypes.Type {
	args := m.Called()
	return args.Get(0).(machineTypes.Type)
}
