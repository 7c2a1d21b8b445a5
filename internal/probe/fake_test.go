package probe

import "errors"

// fakeQuery is a scripted gpu.DeviceQuery.
type fakeQuery struct {
	backend   string
	available bool
	names     []string
	countErr  error
	nameErr   error

	// countOverride replaces len(names) when non-nil.
	countOverride *int
	nameCalls     []int
}

func newFakeQuery(names ...string) *fakeQuery {
	return &fakeQuery{
		backend:   "fake",
		available: len(names) > 0,
		names:     names,
	}
}

func (f *fakeQuery) Backend() string { return f.backend }
func (f *fakeQuery) IsAvailable() bool { return f.available }

func (f *fakeQuery) DeviceCount() (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	if f.countOverride != nil {
		return *f.countOverride, nil
	}
	return len(f.names), nil
}

func (f *fakeQuery) DeviceName(index int) (string, error) {
	f.nameCalls = append(f.nameCalls, index)
	if f.nameErr != nil {
		return "", f.nameErr
	}
	if index < 0 || index >= len(f.names) {
		return "", errors.New("index out of range")
	}
	return f.names[index], nil
}
