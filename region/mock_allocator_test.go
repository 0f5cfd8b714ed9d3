package region_test

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockAllocator is a mock of the region.Allocator interface, hand-written
// in the shape go.uber.org/mock/mockgen would generate for it.
type MockAllocator struct {
	ctrl     *gomock.Controller
	recorder *MockAllocatorMockRecorder
}

type MockAllocatorMockRecorder struct {
	mock *MockAllocator
}

func NewMockAllocator(ctrl *gomock.Controller) *MockAllocator {
	mock := &MockAllocator{ctrl: ctrl}
	mock.recorder = &MockAllocatorMockRecorder{mock}
	return mock
}

func (m *MockAllocator) EXPECT() *MockAllocatorMockRecorder {
	return m.recorder
}

func (m *MockAllocator) Alloc(bytes int) ([]byte, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Alloc", bytes)
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockAllocatorMockRecorder) Alloc(bytes any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Alloc", reflect.TypeOf((*MockAllocator)(nil).Alloc), bytes)
}

func (m *MockAllocator) Free(raw []byte) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Free", raw)
}

func (mr *MockAllocatorMockRecorder) Free(raw any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Free", reflect.TypeOf((*MockAllocator)(nil).Free), raw)
}
