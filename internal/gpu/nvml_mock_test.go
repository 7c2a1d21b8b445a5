//go:build cuda

package gpu

import (
	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// MockNVML is a mock implementation of NVMLInterface for testing
type MockNVML struct {
	InitReturn                   nvml.Return
	ShutdownReturn               nvml.Return
	DeviceCountReturn            nvml.Return
	DeviceGetHandleByIndexReturn nvml.Return
	Devices                      []MockDevice

	InitCalls     int
	ShutdownCalls int
}

// MockDevice represents a mock GPU device
type MockDevice struct {
	Name       string
	NameReturn nvml.Return
}

// NewMockNVML creates a mock with every call succeeding and no devices
func NewMockNVML(names ...string) *MockNVML {
	m := &MockNVML{
		InitReturn:                   nvml.SUCCESS,
		ShutdownReturn:               nvml.SUCCESS,
		DeviceCountReturn:            nvml.SUCCESS,
		DeviceGetHandleByIndexReturn: nvml.SUCCESS,
	}
	for _, name := range names {
		m.Devices = append(m.Devices, MockDevice{Name: name, NameReturn: nvml.SUCCESS})
	}
	return m
}

func (m *MockNVML) Init() nvml.Return {
	m.InitCalls++
	return m.InitReturn
}

func (m *MockNVML) Shutdown() nvml.Return {
	m.ShutdownCalls++
	return m.ShutdownReturn
}

func (m *MockNVML) DeviceGetCount() (int, nvml.Return) {
	return len(m.Devices), m.DeviceCountReturn
}

func (m *MockNVML) DeviceGetHandleByIndex(index int) (DeviceInterface, nvml.Return) {
	if index < 0 || index >= len(m.Devices) {
		return nil, nvml.ERROR_INVALID_ARGUMENT
	}
	if m.DeviceGetHandleByIndexReturn != nvml.SUCCESS {
		return nil, m.DeviceGetHandleByIndexReturn
	}
	return mockDeviceImpl{device: &m.Devices[index]}, nvml.SUCCESS
}

type mockDeviceImpl struct {
	device *MockDevice
}

func (m mockDeviceImpl) GetName() (string, nvml.Return) {
	return m.device.Name, m.device.NameReturn
}
